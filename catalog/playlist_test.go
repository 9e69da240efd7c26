package catalog_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xeptore/albumfetch/catalog"
)

const playlistsBody = `{
	"href": "https://api.spotify.com/v1/me/playlists?offset=0&limit=20",
	"limit": 20,
	"offset": 0,
	"total": 3,
	"items": [
		{"id": "p1", "name": "Road Trip", "public": true, "owner": {"id": "u1", "display_name": "Mia"}, "tracks": {"total": 42}},
		{"id": "p2", "name": "Focus", "public": false, "owner": {"id": "u2", "display_name": null}, "tracks": {"total": 7}},
		null
	]
}`

func TestFetchPlaylistsSendsRequest(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/me/playlists", r.URL.Path)
		assert.Empty(t, r.URL.RawQuery)
		assert.Equal(t, "Bearer tok123", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_, _ = w.Write([]byte(playlistsBody))
	}))
	t.Cleanup(srv.Close)

	f, err := catalog.NewFetcher(srv.Client(), srv.URL+"/")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/v1/me/playlists", f.PlaylistsURL())

	playlists, err := f.FetchPlaylists(context.Background(), "tok123")
	require.NoError(t, err)
	assert.EqualValues(t, 1, hits.Load())
	assert.JSONEq(t, playlistsBody, string(playlists.Raw))
	assert.Equal(t, 3, playlists.Total())
	assert.Equal(t, []catalog.PlaylistSummary{
		{ID: "p1", Name: "Road Trip", Owner: "Mia", Tracks: 42, Public: true},
		{ID: "p2", Name: "Focus", Owner: "u2", Tracks: 7, Public: false},
	}, playlists.Items())
}

func TestFetchPlaylistsEmptyPage(t *testing.T) {
	t.Parallel()

	f := newFetcher(t, doerFunc(func(*http.Request) (*http.Response, error) {
		resp, _ := response(http.StatusOK, strings.NewReader(`{"items":[],"total":0}`))
		return resp, nil
	}))

	playlists, err := f.FetchPlaylists(context.Background(), "tok")
	require.NoError(t, err)
	assert.Empty(t, playlists.Items())
	assert.Zero(t, playlists.Total())
}

func TestFetchPlaylistsErrors(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")

	tests := []struct {
		name   string
		do     func() (*http.Response, error)
		assert func(t *testing.T, err error)
	}{
		{
			name: "request failed",
			do: func() (*http.Response, error) {
				resp, _ := response(http.StatusUnauthorized, strings.NewReader(`{"error":{"status":401}}`))
				return resp, nil
			},
			assert: func(t *testing.T, err error) {
				assert.Equal(t, catalog.ErrPlaylistsRequestFailed, err)
				assert.Equal(t, "Failed to fetch playlists", err.Error())
			},
		},
		{
			name: "request failed with close error",
			do: func() (*http.Response, error) {
				resp, body := response(http.StatusForbidden, strings.NewReader(`{}`))
				body.closeErr = errors.New("connection reset")
				return resp, nil
			},
			assert: func(t *testing.T, err error) {
				assert.Equal(t, catalog.ErrPlaylistsRequestFailed, err)
			},
		},
		{
			name: "transport failed",
			do: func() (*http.Response, error) {
				return nil, cause
			},
			assert: func(t *testing.T, err error) {
				var transportErr *catalog.TransportError
				require.ErrorAs(t, err, &transportErr)
				require.ErrorIs(t, err, cause)
				assert.Equal(t, cause.Error(), err.Error())
			},
		},
		{
			name: "decode failed",
			do: func() (*http.Response, error) {
				resp, _ := response(http.StatusOK, strings.NewReader(`{"items":[`))
				return resp, nil
			},
			assert: func(t *testing.T, err error) {
				var decodeErr *catalog.DecodeError
				require.ErrorAs(t, err, &decodeErr)
				assert.NotErrorIs(t, err, catalog.ErrRequestFailed)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var calls atomic.Int32
			f := newFetcher(t, doerFunc(func(*http.Request) (*http.Response, error) {
				calls.Add(1)
				return tt.do()
			}))

			playlists, err := f.FetchPlaylists(context.Background(), "tok")
			require.Error(t, err)
			assert.Nil(t, playlists)
			assert.EqualValues(t, 1, calls.Load())
			tt.assert(t, err)
		})
	}
}
