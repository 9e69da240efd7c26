package output

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"github.com/xeptore/albumfetch/catalog"
	"github.com/xeptore/albumfetch/must"
)

type Format string

const (
	FormatAuto  Format = "auto"
	FormatJSON  Format = "json"
	FormatTable Format = "table"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatAuto, FormatJSON, FormatTable:
		return f, nil
	default:
		return "", fmt.Errorf("output format must be one of: auto, json, table, got: %s", s)
	}
}

// Resolve turns FormatAuto into a concrete format: a table when fd is a
// terminal, JSON otherwise.
func Resolve(f Format, fd uintptr) Format {
	if f != FormatAuto {
		return f
	}

	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return FormatTable
	}

	return FormatJSON
}

// ResolveWriter is Resolve for w's file descriptor. Writers that are not
// backed by a file are never terminals.
func ResolveWriter(f Format, w io.Writer) Format {
	if file, ok := w.(interface{ Fd() uintptr }); ok {
		return Resolve(f, file.Fd())
	}

	if f == FormatAuto {
		return FormatJSON
	}

	return f
}

func Write(w io.Writer, f Format, albums []*catalog.Album) error {
	switch f {
	case FormatJSON:
		return writeJSON(w, albums)
	case FormatTable:
		return writeTable(w, albums)
	default:
		panic("unexpected output format: " + string(f))
	}
}

// writeJSON writes every album body as received, indented, one document per
// album.
func writeJSON(w io.Writer, albums []*catalog.Album) error {
	var buf bytes.Buffer
	for _, a := range albums {
		must.Be(nil != a, "album must not be nil")

		if err := json.Indent(&buf, a.Raw, "", "  "); nil != err {
			return fmt.Errorf("failed to indent album json: %v", err)
		}
		buf.WriteByte('\n')
	}

	if _, err := w.Write(buf.Bytes()); nil != err {
		return fmt.Errorf("failed to write albums json: %v", err)
	}

	return nil
}

func writeTable(w io.Writer, albums []*catalog.Album) error {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"ID", "Name", "Artists", "Type", "Released", "Tracks", "Label"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 6, Align: text.AlignRight}, //nolint:exhaustruct
	})

	for _, a := range albums {
		must.Be(nil != a, "album must not be nil")

		s := a.Summary()
		tw.AppendRow(table.Row{
			s.ID,
			s.Name,
			s.ArtistsString(),
			s.Type,
			s.ReleaseDate,
			strconv.Itoa(s.TotalTracks),
			s.Label,
		})
	}

	if _, err := io.WriteString(w, tw.Render()+"\n"); nil != err {
		return fmt.Errorf("failed to write albums table: %v", err)
	}

	return nil
}

func WritePlaylists(w io.Writer, f Format, playlists *catalog.Playlists) error {
	must.Be(nil != playlists, "playlists must not be nil")

	switch f {
	case FormatJSON:
		var buf bytes.Buffer
		if err := json.Indent(&buf, playlists.Raw, "", "  "); nil != err {
			return fmt.Errorf("failed to indent playlists json: %v", err)
		}
		buf.WriteByte('\n')

		if _, err := w.Write(buf.Bytes()); nil != err {
			return fmt.Errorf("failed to write playlists json: %v", err)
		}

		return nil
	case FormatTable:
		tw := table.NewWriter()
		tw.SetStyle(table.StyleLight)
		tw.AppendHeader(table.Row{"ID", "Name", "Owner", "Tracks", "Public"})
		tw.SetColumnConfigs([]table.ColumnConfig{
			{Number: 4, Align: text.AlignRight}, //nolint:exhaustruct
		})
		for _, p := range playlists.Items() {
			tw.AppendRow(table.Row{p.ID, p.Name, p.Owner, strconv.Itoa(p.Tracks), strconv.FormatBool(p.Public)})
		}
		tw.AppendFooter(table.Row{"", "", "Total", strconv.Itoa(playlists.Total()), ""})

		if _, err := io.WriteString(w, tw.Render()+"\n"); nil != err {
			return fmt.Errorf("failed to write playlists table: %v", err)
		}

		return nil
	default:
		panic("unexpected output format: " + string(f))
	}
}
