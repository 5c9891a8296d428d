package response

import (
	"net/http"
	"net/url"
	"strconv"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100

	// MaxPage keeps page*MaxPageSize far from integer overflow.
	MaxPage = 1_000_000
)

// Page is the list envelope shared by every list endpoint.
type Page struct {
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

// PageParams reads page and page_size from the query string, clamping bad values.
func PageParams(r *http.Request) (page, pageSize int) {
	q := r.URL.Query()
	page, _ = strconv.Atoi(q.Get("page"))
	pageSize, _ = strconv.Atoi(q.Get("page_size"))

	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// NewPage builds the envelope; next and previous keep every other query parameter.
func NewPage(r *http.Request, baseURL string, results interface{}, total int64, page, pageSize int) Page {
	p := Page{Count: total, Results: results}

	if int64(page)*int64(pageSize) < total {
		next := pageLink(r, baseURL, page+1)
		p.Next = &next
	}
	if page > 1 {
		prev := pageLink(r, baseURL, page-1)
		p.Previous = &prev
	}
	return p
}

func pageLink(r *http.Request, baseURL string, page int) string {
	u := url.URL{Path: r.URL.Path}
	q := r.URL.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return baseURL + u.String()
}
