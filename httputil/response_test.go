package httputil_test

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xeptore/albumfetch/httputil"
)

func TestIsSuccess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code     int
		expected bool
	}{
		{199, false},
		{200, true},
		{201, true},
		{204, true},
		{299, true},
		{300, false},
		{304, false},
		{401, false},
		{404, false},
		{429, false},
		{500, false},
		{503, false},
	}
	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.code), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, httputil.IsSuccess(tt.code))
		})
	}
}

func TestReadResponseBody(t *testing.T) {
	t.Parallel()

	resp := &http.Response{Body: io.NopCloser(strings.NewReader(`{"id":"abc"}`))} //nolint:exhaustruct
	b, err := httputil.ReadResponseBody(resp)
	require.NoError(t, err)
	assert.Equal(t, `{"id":"abc"}`, string(b))
}

func TestReadResponseBodyError(t *testing.T) {
	t.Parallel()

	body := io.MultiReader(strings.NewReader(`{"id":`), iotest.ErrReader(io.ErrUnexpectedEOF))
	resp := &http.Response{Body: io.NopCloser(body)} //nolint:exhaustruct
	_, err := httputil.ReadResponseBody(resp)
	require.Error(t, err)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestReadResponseBodyEmpty(t *testing.T) {
	t.Parallel()

	resp := &http.Response{Body: http.NoBody} //nolint:exhaustruct
	_, err := httputil.ReadResponseBody(resp)
	require.ErrorIs(t, err, httputil.ErrEmptyResponseBody)
}
