package export

import (
	"log"

	"github.com/pkg/errors"

	"github.com/rbxport/rbxport/internal/config"
	"github.com/rbxport/rbxport/internal/model"
	"github.com/rbxport/rbxport/internal/pdballoc"
	"github.com/rbxport/rbxport/internal/pdbrows"
)

// Planned is the result of organizing a library into row-encoder-ready
// tables plus the per-track metadata AnlzWriter needs afterward.
type Planned struct {
	Rows      map[pdballoc.TableType][]pdbrows.Row
	TrackAnlz map[int]TrackAnlz // keyed by track ID
}

// TrackAnlz carries what AnlzWriter needs for one track, computed once
// during planning so the PDB and ANLZ passes stay in lockstep (same
// analyze_path embedded in both the track row and the ANLZ directory).
type TrackAnlz struct {
	TrackID     int
	AnalyzePath string
	Bundle      model.AnalysisBundle
	Duration    int
}

// Plan assigns entity IDs, deduplicates artists/albums/genres/labels/keys,
// resolves artwork, computes ANLZ paths, and produces every row-bearing
// table's rows (spec.md §4.7).
func Plan(lib model.LibraryInput, cfg config.Config) (*Planned, error) {
	artists := newIDTable()
	albums := newIDTable()
	genres := newIDTable()
	labels := newIDTable()
	keys := newIDTable()
	artwork := NewArtworkDedup()

	rows := make(map[pdballoc.TableType][]pdbrows.Row)
	trackAnlz := make(map[int]TrackAnlz)

	for _, tr := range lib.Tracks {
		if tr.ID <= 0 {
			return nil, model.New(model.PlanningError, errors.Errorf("export: track %q has non-positive ID %d", tr.Title, tr.ID))
		}

		artistID := artists.id(tr.ArtistName)
		albumID := albums.id(tr.AlbumName)
		genreID := genres.id(tr.GenreName)
		labelID := labels.id(tr.LabelName)
		keys.id(tr.KeyName)

		var artworkID uint32
		if tr.Artwork != nil && len(tr.Artwork.JPEG80) > 0 {
			artworkID = artwork.IDFor(tr.Artwork.JPEG80)
		}

		bundle := tr.Analysis
		if bundle.TempoBPM == 0 && bundle.KeyID == 0 && len(bundle.Beats) == 0 {
			log.Printf("%+v", model.New(model.AnalysisUnavailable, errors.Errorf("track %d %q: no analysis bundle, exporting tempo/key stubs", tr.ID, tr.Title)))
		}
		tempo := uint32(bundle.TempoBPM * 100)
		if cfg.SkipBPM {
			tempo = 0
			bundle.TempoBPM = 0
			bundle.Beats = nil
		}
		keyField := uint32(bundle.KeyID)
		if cfg.SkipKey {
			keyField = 0
		}

		analyzePath := AnalyzePath(tr.AudioPath)

		row := pdbrows.TrackRow{
			ID:              tr.ID,
			SampleRate:      tr.SampleRate,
			FileSize:        tr.FileSize,
			ArtworkID:       artworkID,
			KeyID:           keyField,
			LabelID:         labelID,
			Bitrate:         tr.Bitrate,
			TrackNumber:     tr.TrackNumber,
			TempoBPM100:     tempo,
			GenreID:         genreID,
			AlbumID:         albumID,
			ArtistID:        artistID,
			DiscNumber:      tr.DiscNumber,
			PlayCount:       tr.PlayCount,
			Year:            tr.Year,
			SampleDepth:     tr.SampleDepth,
			DurationSeconds: tr.Duration,
			ColorID:         uint8(tr.ColorIndex),
			Rating:          tr.Rating,
			FileType:        uint16(tr.FileType),
			Title:           tr.Title,
			DateAdded:       tr.DateAdded,
			AnalyzePath:     "/" + analyzePath + "/ANLZ0000",
			Filename:        baseName(tr.AudioPath),
			FilePath:        tr.AudioPath,
			AutoloadHotcues: "ON",
		}
		rows[pdballoc.Tracks] = append(rows[pdballoc.Tracks], row)

		trackAnlz[tr.ID] = TrackAnlz{
			TrackID:     tr.ID,
			AnalyzePath: analyzePath,
			Bundle:      bundle,
			Duration:    int(tr.Duration),
		}
	}

	for i, name := range artists.names() {
		rows[pdballoc.Artists] = append(rows[pdballoc.Artists], pdbrows.ArtistRow{ID: uint32(i + 1), Name: name})
	}
	for i, name := range albums.names() {
		rows[pdballoc.Albums] = append(rows[pdballoc.Albums], pdbrows.AlbumRow{ID: uint32(i + 1), Name: name})
	}
	for i, name := range genres.names() {
		rows[pdballoc.Genres] = append(rows[pdballoc.Genres], pdbrows.GenreRow{ID: uint32(i + 1), Name: name})
	}
	for i, name := range labels.names() {
		rows[pdballoc.Labels] = append(rows[pdballoc.Labels], pdbrows.LabelRow{ID: uint32(i + 1), Name: name})
	}
	for i, name := range keys.names() {
		rows[pdballoc.Keys] = append(rows[pdballoc.Keys], pdbrows.KeyRow{ID: uint32(i + 1), Name: name})
	}
	for i, name := range pdbrows.ColorPresetNames {
		rows[pdballoc.Colors] = append(rows[pdballoc.Colors], pdbrows.ColorRow{ID: uint32(i + 1), Name: name})
	}
	for i := 1; i <= artwork.Count(); i++ {
		small, _ := Paths(uint32(i))
		rows[pdballoc.Artwork] = append(rows[pdballoc.Artwork], pdbrows.ArtworkRow{ID: uint32(i), Path: small})
	}

	for i, pl := range lib.Playlists {
		rows[pdballoc.Playlists] = append(rows[pdballoc.Playlists], pdbrows.PlaylistTreeRow{
			ID: uint32(i + 1), Sort: uint32(i), Name: pl.Name,
		})
		for j, trackID := range pl.TrackIDs {
			rows[pdballoc.PlaylistEntries] = append(rows[pdballoc.PlaylistEntries], pdbrows.PlaylistEntryRow{
				EntryIndex: uint32(j), TrackID: uint32(trackID), PlaylistID: uint32(i + 1),
			})
		}
	}

	return &Planned{Rows: rows, TrackAnlz: trackAnlz}, nil
}

func baseName(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' || path[i] == '\\' {
			return path[i+1:]
		}
	}
	return path
}
