package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"content-admin/internal/delivery/dto"
	"content-admin/internal/delivery/http/middleware"
	"content-admin/internal/domain/entity"
	"content-admin/pkg/apperror"
	"content-admin/pkg/jwt"
	"content-admin/pkg/response"

	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	"github.com/shopspring/decimal"
)

const defaultMaxMemory = 10 << 20

var (
	formDecoder = newFormDecoder()

	errBodyTooLarge = apperror.TooLarge("Request body too large.")
)

func newFormDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	d.RegisterConverter(decimal.Decimal{}, func(s string) reflect.Value {
		v, err := decimal.NewFromString(strings.TrimSpace(s))
		if err != nil {
			return reflect.Value{}
		}
		return reflect.ValueOf(v)
	})
	d.RegisterConverter(time.Time{}, func(s string) reflect.Value {
		t, err := parseTime(s)
		if err != nil {
			return reflect.Value{}
		}
		return reflect.ValueOf(t)
	})
	return d
}

var timeLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02 15:04:05", "2006-01-02"}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("invalid time")
}

// decodeRequest fills dst from a JSON body or from form values, depending on Content-Type.
func decodeRequest(r *http.Request, dst interface{}, maxMemory int64) error {
	contentType := r.Header.Get("Content-Type")

	switch {
	case strings.HasPrefix(contentType, "multipart/form-data"):
		if maxMemory <= 0 {
			maxMemory = defaultMaxMemory
		}
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			if tooLarge(err) {
				return errBodyTooLarge
			}
			return apperror.Validation("Multipart form parse error", nil)
		}
		return decodeForm(dst, r.MultipartForm.Value)
	case strings.HasPrefix(contentType, "application/x-www-form-urlencoded"):
		if err := r.ParseForm(); err != nil {
			if tooLarge(err) {
				return errBodyTooLarge
			}
			return apperror.Validation("Form parse error", nil)
		}
		return decodeForm(dst, r.PostForm)
	default:
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if tooLarge(err) {
				return errBodyTooLarge
			}
			return apperror.Validation("Invalid request body", nil)
		}
		return nil
	}
}

func tooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

func decodeForm(dst interface{}, values map[string][]string) error {
	err := formDecoder.Decode(dst, values)
	if err == nil {
		return nil
	}

	var multi schema.MultiError
	if errors.As(err, &multi) {
		fields := apperror.Fields{}
		for key := range multi {
			fields.Add(key, "Enter a valid value.")
		}
		return fields.Err()
	}
	return apperror.Validation("Invalid form data", nil)
}

// formFile returns the uploaded file for field, or nil when the request carries none.
func formFile(r *http.Request, field string) (*entity.Upload, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	headers := r.MultipartForm.File[field]
	if len(headers) == 0 {
		return nil, nil
	}

	fh := headers[0]
	f, err := fh.Open()
	if err != nil {
		return nil, apperror.Field(field, "The submitted file could not be read.")
	}
	return &entity.Upload{Field: field, Filename: fh.Filename, Size: fh.Size, Content: f}, nil
}

func closeUploads(uploads ...*entity.Upload) {
	for _, up := range uploads {
		if up == nil {
			continue
		}
		if c, ok := up.Content.(io.Closer); ok {
			c.Close()
		}
	}
}

func pathID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.NotFound("Not found.")
	}
	return uint(id), nil
}

// listQuery passes every single-valued query parameter through as a candidate filter.
func listQuery(r *http.Request) *dto.ListQuery {
	page, pageSize := response.PageParams(r)
	q := &dto.ListQuery{
		Filters:  map[string]string{},
		Search:   strings.TrimSpace(r.URL.Query().Get("search")),
		Page:     page,
		PageSize: pageSize,
	}
	for key, values := range r.URL.Query() {
		switch key {
		case "page", "page_size", "search":
			continue
		}
		if len(values) > 0 {
			q.Filters[key] = strings.TrimSpace(values[0])
		}
	}
	return q
}

func currentClaims(r *http.Request) (*jwt.Claims, error) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		return nil, apperror.Unauthorized("Authentication credentials were not provided.")
	}
	return claims, nil
}
