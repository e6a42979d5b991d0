package export

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/rbxport/rbxport/internal/anlz"
	"github.com/rbxport/rbxport/internal/config"
	"github.com/rbxport/rbxport/internal/model"
	"github.com/rbxport/rbxport/internal/pdb"
)

// WritePDB renders the full PDB image and installs it atomically: write to
// a temporary file in the destination directory, then rename into place.
// On any error the temporary file is removed (spec.md §7).
func WritePDB(path string, rows pdb.TableRows, aux pdb.AuxBlobs) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".export-*.pdb.tmp")
	if err != nil {
		return model.New(model.IoError, errors.Wrap(err, "export: creating temp PDB file"))
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if err = pdb.Write(tmp, rows, aux); err != nil {
		return errors.Wrap(err, "export: rendering PDB")
	}
	if err = tmp.Close(); err != nil {
		return model.New(model.IoError, errors.Wrap(err, "export: closing temp PDB file"))
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return model.New(model.IoError, errors.Wrap(err, "export: installing PDB file"))
	}
	return nil
}

// WriteAnlzFiles writes one .DAT+.EXT pair per track, bounded by
// cfg.MaxParallelAnalyses concurrent workers (spec.md §5). A track whose
// analysis failed upstream (AnalysisUnavailable) still produces stub
// files; only filesystem failures abort that track's pair. Cancellation
// via ctx deletes any partially written files for the in-flight track.
func WriteAnlzFiles(ctx context.Context, outDir string, tracks []TrackAnlz, cfg config.Config) error {
	workers := cfg.MaxParallelAnalyses
	if workers < 1 {
		workers = len(tracks)
	}
	sem := make(chan struct{}, workers)

	var wg sync.WaitGroup
	errs := make(chan error, len(tracks))

	for _, t := range tracks {
		t := t
		select {
		case <-ctx.Done():
			errs <- ctx.Err()
			continue
		default:
		}

		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			if err := writeOneTrack(ctx, outDir, t, cfg); err != nil {
				errs <- errors.Wrapf(err, "export: track %d", t.TrackID)
			}
		}()
	}

	wg.Wait()
	close(errs)

	var first error
	for err := range errs {
		if first == nil {
			first = err
		}
	}
	return first
}

func writeOneTrack(ctx context.Context, outDir string, t TrackAnlz, cfg config.Config) (err error) {
	fullDir := filepath.Join(outDir, t.AnalyzePath)
	if err = os.MkdirAll(fullDir, 0o755); err != nil {
		return model.New(model.IoError, errors.Wrap(err, "creating ANLZ directory"))
	}

	datPath := filepath.Join(fullDir, "ANLZ0000.DAT")
	extPath := filepath.Join(fullDir, "ANLZ0000.EXT")

	defer func() {
		if err != nil || ctx.Err() != nil {
			os.Remove(datPath)
			os.Remove(extPath)
		}
	}()

	datFile, err := os.Create(datPath)
	if err != nil {
		return model.New(model.IoError, errors.Wrap(err, "creating .DAT file"))
	}
	defer datFile.Close()
	if err = anlz.WriteDAT(datFile, t.AnalyzePath, t.Bundle, cfg); err != nil {
		return err
	}

	extFile, err := os.Create(extPath)
	if err != nil {
		return model.New(model.IoError, errors.Wrap(err, "creating .EXT file"))
	}
	defer extFile.Close()
	if err = anlz.WriteEXT(extFile, t.AnalyzePath, t.Bundle, t.Duration); err != nil {
		return err
	}
	return nil
}
