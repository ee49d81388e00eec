package binder_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velveproduce/site/pkg/binder"
)

type contactRequest struct {
	Name    string   `form:"user_name"`
	Email   string   `form:"user_email"`
	Phone   *string  `form:"user_phone"`
	Message string   `form:"message"`
	Page    string   `query:"page"`
	Ratio   float64  `query:"ratio"`
	Tags    []string `query:"tag"`
	Ignored string   `form:"-"`
}

func TestForm(t *testing.T) {
	t.Parallel()

	t.Run("urlencoded", func(t *testing.T) {
		t.Parallel()
		body := url.Values{
			"user_name":  {"Ana"},
			"user_email": {"ana@example.com"},
			"user_phone": {"+34 600"},
			"message":    {"Hola"},
			"Ignored":    {"x"},
		}
		r := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(body.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=utf-8")

		var req contactRequest
		require.NoError(t, binder.Form()(r, &req))
		assert.Equal(t, "Ana", req.Name)
		assert.Equal(t, "ana@example.com", req.Email)
		require.NotNil(t, req.Phone)
		assert.Equal(t, "+34 600", *req.Phone)
		assert.Equal(t, "Hola", req.Message)
		assert.Empty(t, req.Ignored)
	})

	t.Run("multipart", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("user_name", "Bob"))
		require.NoError(t, mw.WriteField("message", "Hi"))
		require.NoError(t, mw.Close())

		r := httptest.NewRequest(http.MethodPost, "/contact", &buf)
		r.Header.Set("Content-Type", mw.FormDataContentType())

		var req contactRequest
		require.NoError(t, binder.Form()(r, &req))
		assert.Equal(t, "Bob", req.Name)
		assert.Nil(t, req.Phone)
	})

	t.Run("not applicable", func(t *testing.T) {
		t.Parallel()
		for _, ct := range []string{"", "application/json"} {
			r := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader("{}"))
			if ct != "" {
				r.Header.Set("Content-Type", ct)
			}
			var req contactRequest
			assert.ErrorIs(t, binder.Form()(r, &req), binder.ErrBinderNotApplicable)
		}
	})

	t.Run("bad target", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("a=b"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		var s string
		assert.ErrorIs(t, binder.Form()(r, &s), binder.ErrInvalidForm)
	})
}

func TestQuery(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodPost, "/sections/visible?page=landing&ratio=0.75&tag=a&tag=b", nil)
	var req contactRequest
	require.NoError(t, binder.Query()(r, &req))
	assert.Equal(t, "landing", req.Page)
	assert.InDelta(t, 0.75, req.Ratio, 1e-9)
	assert.Equal(t, []string{"a", "b"}, req.Tags)

	r = httptest.NewRequest(http.MethodPost, "/sections/visible?ratio=lots", nil)
	assert.ErrorIs(t, binder.Query()(r, &req), binder.ErrInvalidQuery)
}
