// Package consolidate orchestrates the full run: discover shards, load and
// normalize each one, fold them into a single dataset, and write the
// consolidated CSV back into the source directory.
package consolidate

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/lungoruscello/acled-concat/internal/acled"
	"github.com/lungoruscello/acled-concat/internal/merge"
	"github.com/lungoruscello/acled-concat/internal/shard"
)

// OutputName is the fixed name of the consolidated output file, written
// into the source directory.
const OutputName = shard.OutputPrefix + ".csv"

// Run consolidates every ACLED shard in sourceDir into OutputName and
// returns the final dataset. All shards are held in memory at once; peak
// usage is proportional to their combined size.
func Run(sourceDir string, log *zap.Logger) (*acled.Dataset, error) {
	paths, err := shard.SortedPaths(sourceDir)
	if err != nil {
		return nil, err
	}

	log.Info("loading shards", zap.Int("count", len(paths)))
	datasets := make([]*acled.Dataset, 0, len(paths))
	for _, path := range paths {
		ds, err := shard.Load(path)
		if err != nil {
			return nil, err
		}
		log.Info("loaded shard",
			zap.String("file", filepath.Base(path)),
			zap.Int("events", len(ds.Events)))
		datasets = append(datasets, ds)
	}

	log.Info("concatenating")
	consolidated, err := merge.Fold(datasets, func(step int, acc *acled.Dataset) {
		log.Info("merged shard",
			zap.Int("step", step),
			zap.Int("events", len(acc.Events)))
	})
	if err != nil {
		return nil, err
	}

	outPath := filepath.Join(sourceDir, OutputName)
	log.Info("writing result", zap.String("path", outPath))
	if err := writeCSV(outPath, consolidated); err != nil {
		return nil, err
	}

	log.Info("done",
		zap.Int("shards", len(paths)),
		zap.Int("events", len(consolidated.Events)))
	return consolidated, nil
}

// writeCSV persists the dataset with the retained columns in canonical
// order. The file is written to a temp sibling and renamed into place so a
// failed run never leaves a truncated output behind.
func writeCSV(path string, ds *acled.Dataset) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	w := csv.NewWriter(tmp)
	if err := w.Write(acled.RetainedColumns); err != nil {
		tmp.Close()
		return fmt.Errorf("writing output header: %w", err)
	}
	row := make([]string, len(acled.RetainedColumns))
	for _, e := range ds.Events {
		for i, col := range acled.RetainedColumns {
			row[i] = e.Fields[col]
		}
		if err := w.Write(row); err != nil {
			tmp.Close()
			return fmt.Errorf("writing output row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flushing output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("renaming output into place: %w", err)
	}
	return nil
}
