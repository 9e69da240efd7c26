package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"

	"github.com/xeptore/albumfetch/httputil"
	"github.com/xeptore/albumfetch/must"
)

const (
	DefaultBaseURL  = "https://api.spotify.com"
	albumPathFormat = "/v1/albums/%s"
	playlistsPath   = "/v1/me/playlists"
)

// ErrRequestFailed is returned for any response status outside [200, 300).
// It carries no status code, headers or body.
var ErrRequestFailed = errors.New("Failed to fetch album") //nolint:staticcheck

// ErrPlaylistsRequestFailed is ErrRequestFailed's counterpart for the
// playlists listing.
var ErrPlaylistsRequestFailed = errors.New("Failed to fetch playlists") //nolint:staticcheck

// TransportError wraps a failure of the underlying transport to complete the
// request. Its message is the transport's message, unchanged.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError wraps a failure to read or decode a success response body.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return e.Err.Error() }

func (e *DecodeError) Unwrap() error { return e.Err }

// Doer sends a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Fetcher looks up albums and playlists in the remote catalog. It holds no
// mutable state and is safe for concurrent use as long as its Doer is.
type Fetcher struct {
	client  Doer
	baseURL string
}

func NewFetcher(client Doer, baseURL string) (*Fetcher, error) {
	must.Be(nil != client, "catalog client must not be nil")

	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	if err := ValidateBaseURL(baseURL); nil != err {
		return nil, err
	}

	return &Fetcher{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// ValidateBaseURL accepts absolute http and https URLs with a host and
// without a query or fragment.
func ValidateBaseURL(baseURL string) error {
	u, err := url.Parse(baseURL)
	if nil != err {
		return fmt.Errorf("failed to parse base URL: %v", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base URL scheme must be http or https, got: %q", u.Scheme)
	}

	if u.Host == "" {
		return errors.New("base URL must have a host")
	}

	if u.RawQuery != "" || u.Fragment != "" || u.ForceQuery {
		return errors.New("base URL must not have a query or fragment")
	}

	return nil
}

func (f *Fetcher) AlbumURL(albumID string) string {
	return f.baseURL + fmt.Sprintf(albumPathFormat, url.PathEscape(albumID))
}

func (f *Fetcher) PlaylistsURL() string {
	return f.baseURL + playlistsPath
}

// FetchAlbum issues exactly one GET request for albumID and blocks until the
// response body has been decoded. It never retries and sets no timeout of its
// own; use ctx or the Doer for deadlines.
func (f *Fetcher) FetchAlbum(ctx context.Context, token, albumID string) (*Album, error) {
	raw, v, err := f.getJSON(ctx, token, f.AlbumURL(albumID), ErrRequestFailed)
	if nil != err {
		return nil, err
	}

	return &Album{Raw: raw, Value: v}, nil
}

// FetchPlaylists returns the first page of the token owner's playlists, with
// the catalog's default page size. Like FetchAlbum it sends exactly one
// request.
func (f *Fetcher) FetchPlaylists(ctx context.Context, token string) (*Playlists, error) {
	raw, v, err := f.getJSON(ctx, token, f.PlaylistsURL(), ErrPlaylistsRequestFailed)
	if nil != err {
		return nil, err
	}

	return &Playlists{Raw: raw, Value: v}, nil
}

// getJSON returns rejected as is for a non-success status. A failure to
// close the body is reported only alongside a success status.
func (f *Fetcher) getJSON(ctx context.Context, token, target string, rejected error) (raw []byte, v any, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if nil != err {
		return nil, nil, fmt.Errorf("failed to create get request: %v", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if nil != err {
		return nil, nil, &TransportError{Err: err}
	}
	defer func() {
		if closeErr := resp.Body.Close(); nil != closeErr && !errors.Is(err, rejected) {
			raw, v = nil, nil
			err = errors.Join(err, fmt.Errorf("failed to close get response body: %v", closeErr))
		}
	}()

	if !httputil.IsSuccess(resp.StatusCode) {
		return nil, nil, rejected
	}

	respBytes, err := httputil.ReadResponseBody(resp)
	if nil != err {
		return nil, nil, &DecodeError{Err: err}
	}

	var decoded any
	if err := json.Unmarshal(respBytes, &decoded); nil != err {
		return nil, nil, &DecodeError{Err: err}
	}

	return respBytes, decoded, nil
}
