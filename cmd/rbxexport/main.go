// Command rbxexport renders a Rekordbox USB export (export.pdb plus the
// per-track ANLZ directory tree) from a library description already
// decoded into the frozen input model.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/mewkiz/pkg/osutil"
	"github.com/pkg/errors"

	"github.com/rbxport/rbxport/internal/config"
	"github.com/rbxport/rbxport/internal/export"
	"github.com/rbxport/rbxport/internal/model"
	"github.com/rbxport/rbxport/internal/pdb"
)

func main() {
	var (
		libraryPath string
		outDir      string
		force       bool
		skipBPM     bool
		skipKey     bool
		minBPM      float64
		maxBPM      float64
		parallel    int
	)
	flag.StringVar(&libraryPath, "library", "", "path to a JSON-encoded LibraryInput")
	flag.StringVar(&outDir, "out", "", "output directory (device root)")
	flag.BoolVar(&force, "f", false, "force overwrite if export.pdb already exists")
	flag.BoolVar(&skipBPM, "skip-bpm", false, "write tempo=0 and a header-only PQTZ section")
	flag.BoolVar(&skipKey, "skip-key", false, "write key_id=0 for every track")
	flag.Float64Var(&minBPM, "min-bpm", 0, "passed through to the external analyzer only")
	flag.Float64Var(&maxBPM, "max-bpm", 0, "passed through to the external analyzer only")
	flag.IntVar(&parallel, "parallel", 4, "max concurrent ANLZ analyses")
	flag.Parse()

	if libraryPath == "" || outDir == "" {
		log.Fatal("usage: rbxexport -library <library.json> -out <device-root>")
	}

	cfg := config.Default()
	cfg.SkipBPM = skipBPM
	cfg.SkipKey = skipKey
	cfg.MinBPM = minBPM
	cfg.MaxBPM = maxBPM
	cfg.MaxParallelAnalyses = parallel

	if err := run(libraryPath, outDir, force, cfg); err != nil {
		log.Fatalf("%+v", err)
	}
}

func run(libraryPath, outDir string, force bool, cfg config.Config) error {
	pdbPath := filepath.Join(outDir, "PIONEER", "rekordbox", "export.pdb")
	if !force && osutil.Exists(pdbPath) {
		return errors.Errorf("%q already present; use -f flag to force overwrite", pdbPath)
	}

	lib, err := loadLibrary(libraryPath)
	if err != nil {
		return errors.Wrap(err, "loading library")
	}

	planned, err := export.Plan(lib, cfg)
	if err != nil {
		return errors.Wrap(err, "planning export")
	}

	rows := pdb.TableRows{}
	for t, rs := range planned.Rows {
		rows[t] = rs
	}
	aux := pdb.AuxBlobs{
		Columns:          lib.Aux.ColumnsPage,
		HistoryPlaylists: lib.Aux.HistoryPlaylistsPage,
		HistoryEntries:   lib.Aux.HistoryEntriesPage,
		History:          lib.Aux.HistoryPage,
		HistoryRowCount:  len(lib.Tracks),
	}

	if err := os.MkdirAll(filepath.Dir(pdbPath), 0o755); err != nil {
		return errors.Wrap(err, "creating PDB output directory")
	}
	if err := export.WritePDB(pdbPath, rows, aux); err != nil {
		return errors.Wrap(err, "writing export.pdb")
	}

	tracks := make([]export.TrackAnlz, 0, len(planned.TrackAnlz))
	for _, t := range planned.TrackAnlz {
		tracks = append(tracks, t)
	}
	if err := export.WriteAnlzFiles(context.Background(), outDir, tracks, cfg); err != nil {
		return errors.Wrap(err, "writing ANLZ files")
	}

	return nil
}

func loadLibrary(path string) (model.LibraryInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.LibraryInput{}, errors.WithStack(err)
	}
	defer f.Close()

	var lib model.LibraryInput
	if err := json.NewDecoder(f).Decode(&lib); err != nil {
		return model.LibraryInput{}, errors.Wrap(err, "decoding library JSON")
	}
	return lib, nil
}
