package httputil

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

var ErrEmptyResponseBody = errors.New("unexpected empty response body")

func IsSuccess(code int) bool {
	return code >= http.StatusOK && code < http.StatusMultipleChoices
}

func ReadResponseBody(resp *http.Response) ([]byte, error) {
	respBody, err := io.ReadAll(resp.Body)
	if nil != err {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if len(respBody) == 0 {
		return nil, ErrEmptyResponseBody
	}

	return respBody, nil
}
