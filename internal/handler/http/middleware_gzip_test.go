// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gzipped(t *testing.T, data string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	_, err := gw.Write([]byte(data))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	return &buf
}

func gunzip(t *testing.T, r io.Reader) string {
	t.Helper()
	gr, err := gzip.NewReader(r)
	require.NoError(t, err)
	defer gr.Close()

	out, err := io.ReadAll(gr)
	require.NoError(t, err)
	return string(out)
}

// echo answers with the (decoded) request body, or fixed text when empty.
var echo = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	if len(body) == 0 {
		body = []byte(`{"data":[1,2,3]}`)
	}
	w.WriteHeader(http.StatusOK)
	w.Write(body)
})

func TestGZip_Response(t *testing.T) {
	tests := []struct {
		name           string
		acceptEncoding string
		compressed     bool
	}{
		{name: "gzip", acceptEncoding: "gzip", compressed: true},
		{name: "gzip among others", acceptEncoding: "deflate, gzip;q=1.0, br", compressed: true},
		{name: "no accept-encoding", acceptEncoding: "", compressed: false},
		{name: "identity only", acceptEncoding: "identity", compressed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/posts", nil)
			if tt.acceptEncoding != "" {
				req.Header.Set("Accept-Encoding", tt.acceptEncoding)
			}
			rr := httptest.NewRecorder()

			withGZip(echo).ServeHTTP(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			if tt.compressed {
				assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
				assert.Equal(t, `{"data":[1,2,3]}`, gunzip(t, rr.Body))
			} else {
				assert.Empty(t, rr.Header().Get("Content-Encoding"))
				assert.Equal(t, `{"data":[1,2,3]}`, rr.Body.String())
			}
		})
	}
}

func TestGZip_RequestBody(t *testing.T) {
	for _, encoding := range []string{"gzip", "gzip, deflate"} {
		req := httptest.NewRequest(http.MethodPost, "/posts", gzipped(t, `{"name":"hello"}`))
		req.Header.Set("Content-Encoding", encoding)
		rr := httptest.NewRecorder()

		withGZip(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.Header.Get("Content-Encoding"))
			echo(w, r)
		})).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, `{"name":"hello"}`, rr.Body.String())
	}
}

func TestGZip_InvalidRequestBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/posts", strings.NewReader("not gzip"))
	req.Header.Set("Content-Encoding", "gzip")
	rr := httptest.NewRecorder()

	withGZip(echo).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGZip_ImplicitStatusAndRatio(t *testing.T) {
	data := strings.Repeat("repetitive content ", 1000)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(data))
	})

	req := httptest.NewRequest(http.MethodGet, "/posts", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()

	withGZip(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
	assert.Less(t, rr.Body.Len(), len(data)/10)
	assert.Equal(t, data, gunzip(t, rr.Body))
}

func TestGZip_NoContentIsNotCompressed(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodDelete, "/posts/p1", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()

	withGZip(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Header().Get("Content-Encoding"))
	assert.Zero(t, rr.Body.Len())
}

func TestGZip_ConcurrentRequests(t *testing.T) {
	handler := withGZip(echo)

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodGet, "/posts", nil)
			req.Header.Set("Accept-Encoding", "gzip")
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			gr, err := gzip.NewReader(rr.Body)
			if assert.NoError(t, err) {
				out, _ := io.ReadAll(gr)
				assert.Equal(t, `{"data":[1,2,3]}`, string(out))
			}
		}()
	}
	wg.Wait()
}

func TestWrappedReadCloser_Close(t *testing.T) {
	closed := false
	wrapped := &wrappedReadCloser{Reader: strings.NewReader("x"), OnClose: func() { closed = true }}

	assert.NoError(t, wrapped.Close())
	assert.True(t, closed)

	assert.NoError(t, (&wrappedReadCloser{Reader: strings.NewReader("x")}).Close())
}
