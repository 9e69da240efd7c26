package catalog

import (
	"github.com/tidwall/gjson"
)

// Playlists is one page of the token owner's playlists as returned by the
// catalog.
type Playlists struct {
	Raw   []byte
	Value any
}

func (p *Playlists) Get(path string) gjson.Result {
	return gjson.GetBytes(p.Raw, path)
}

// Total is the number of playlists the owner has across all pages.
func (p *Playlists) Total() int {
	return int(p.Get("total").Int())
}

type PlaylistSummary struct {
	ID     string
	Name   string
	Owner  string
	Tracks int
	Public bool
}

// Items projects every entry of the page. Entries that are not objects are
// skipped.
func (p *Playlists) Items() []PlaylistSummary {
	var out []PlaylistSummary
	p.Get("items").ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			return true
		}

		owner := item.Get("owner.display_name")
		if !owner.Exists() || owner.Type == gjson.Null {
			owner = item.Get("owner.id")
		}

		out = append(out, PlaylistSummary{
			ID:     item.Get("id").String(),
			Name:   item.Get("name").String(),
			Owner:  owner.String(),
			Tracks: int(item.Get("tracks.total").Int()),
			Public: item.Get("public").Bool(),
		})

		return true
	})

	return out
}
