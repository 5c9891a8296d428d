package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"content-admin/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestFromError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", apperror.Field("otp", "Invalid otp"), http.StatusBadRequest, "Validation failed"},
		{"not found", apperror.NotFound("Book not found"), http.StatusNotFound, "Book not found"},
		{"unauthorized", apperror.Unauthorized("Token is blacklisted"), http.StatusUnauthorized, "Token is blacklisted"},
		{"too many", apperror.TooManyRequests("slow down"), http.StatusTooManyRequests, "slow down"},
		{"too large", apperror.TooLarge("Request body too large."), http.StatusRequestEntityTooLarge, "Request body too large."},
		{"unavailable hides cause", apperror.Unavailable("redis", errors.New("secret host")), http.StatusServiceUnavailable, "Service temporarily unavailable"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			FromError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			body := decode(t, rec)
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tt.message, body["message"])
		})
	}
}

func TestFromError_FieldErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	FromError(rec, apperror.Field("phone_no", "User not found"))

	body := decode(t, rec)
	fields, ok := body["error"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{"User not found"}, fields["phone_no"])
}

func TestNewPage(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/admin/books?search=go&page=2&page_size=10", nil)
	page, size := PageParams(r)
	assert.Equal(t, 2, page)
	assert.Equal(t, 10, size)

	p := NewPage(r, "http://localhost:8080", []int{1}, 25, page, size)
	require.NotNil(t, p.Next)
	require.NotNil(t, p.Previous)
	assert.Equal(t, "http://localhost:8080/api/v1/admin/books?page=3&page_size=10&search=go", *p.Next)
	assert.Equal(t, "http://localhost:8080/api/v1/admin/books?page=1&page_size=10&search=go", *p.Previous)

	last := NewPage(r, "", nil, 20, 2, 10)
	assert.Nil(t, last.Next)
}

func TestPageParams_Clamp(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?page=-3&page_size=1000", nil)
	page, size := PageParams(r)
	assert.Equal(t, 1, page)
	assert.Equal(t, MaxPageSize, size)

	r = httptest.NewRequest(http.MethodGet, "/?page=9223372036854775807&page_size=100", nil)
	page, size = PageParams(r)
	assert.Equal(t, MaxPage, page)
	assert.Equal(t, 100, size)
	assert.Positive(t, (page-1)*size)

	p := NewPage(r, "", nil, 5, page, size)
	assert.Nil(t, p.Next)
	require.NotNil(t, p.Previous)
}
