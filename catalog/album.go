package catalog

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Album is a decoded album lookup response. Its shape is whatever the remote
// catalog returned; nothing about it is validated.
type Album struct {
	// Raw is the response body exactly as received.
	Raw []byte
	// Value is Raw decoded into map[string]any, []any and scalar values.
	Value any
}

func (a *Album) Get(path string) gjson.Result {
	return gjson.GetBytes(a.Raw, path)
}

type Summary struct {
	ID          string
	Name        string
	Type        string
	Artists     []string
	ReleaseDate string
	TotalTracks int
	Label       string
}

func (s Summary) ArtistsString() string {
	return strings.Join(s.Artists, ", ")
}

// Summary projects the commonly displayed fields. Missing fields are left
// zero.
func (a *Album) Summary() Summary {
	res := gjson.GetManyBytes(a.Raw, "id", "name", "album_type", "artists.#.name", "release_date", "total_tracks", "label")

	var artists []string
	for _, v := range res[3].Array() {
		if v.Type == gjson.String {
			artists = append(artists, v.Str)
		}
	}

	return Summary{
		ID:          res[0].String(),
		Name:        res[1].String(),
		Type:        res[2].String(),
		Artists:     artists,
		ReleaseDate: res[4].String(),
		TotalTracks: int(res[5].Int()),
		Label:       res[6].String(),
	}
}
