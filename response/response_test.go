package response

import (
	"bytes"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/caelisco/form-client/options"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	opt := options.New()
	opt.SetCompression(options.CompressionBrotli)

	r := New("https://example.com/search", http.MethodPost, []byte("q=go"), opt)

	assert.NotEmpty(t, r.UniqueIdentifier)
	assert.Equal(t, http.MethodPost, r.Method)
	assert.Equal(t, options.CompressionBrotli, r.CompressionType)
	assert.Same(t, opt, r.Options)
}

func TestBody(t *testing.T) {
	var r Response
	assert.Nil(t, r.Bytes())
	assert.Equal(t, "", r.String())
	assert.Equal(t, int64(-1), r.Len())

	r.Body = options.WriteCloserBuffer{Buffer: bytes.NewBufferString("ok")}
	assert.Equal(t, []byte("ok"), r.Bytes())
	assert.Equal(t, "ok", r.String())
	assert.Equal(t, int64(2), r.Len())
}

func TestPopulateResponse(t *testing.T) {
	final, _ := url.Parse("https://example.com/done")
	resp := &http.Response{
		Status:     "200 OK",
		StatusCode: http.StatusOK,
		Proto:      "HTTP/1.1",
		Header:     http.Header{"Set-Cookie": {"id=1"}},
		Request:    &http.Request{URL: final},
	}

	r := New("https://example.com/start", http.MethodGet, nil, options.New())
	r.PopulateResponse(resp, time.Now())

	assert.Equal(t, http.StatusOK, r.StatusCode)
	assert.True(t, r.Redirected)
	assert.Equal(t, "https://example.com/done", r.Location)
	if assert.Len(t, r.Cookies, 1) {
		assert.Equal(t, "id", r.Cookies[0].Name)
	}
}
