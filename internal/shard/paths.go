// Package shard discovers and loads ACLED export shards from a source
// directory. A shard is one periodic CSV export; consecutive exports
// overlap in their date coverage so the merge can verify there are no gaps.
package shard

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/lungoruscello/acled-concat/internal/acled"
)

// OutputPrefix marks consolidated output files, which discovery skips so a
// previous run's result is never treated as input.
const OutputPrefix = "consolidated_acled"

// namePattern is the required shard naming convention: a two-digit sequence
// prefix, the acled marker, an arbitrary description, and a .csv suffix.
// Higher prefixes cover later date ranges.
var namePattern = regexp.MustCompile(`^(\d{2})-acled.*\.csv$`)

// SortedPaths returns the valid shard paths in dir, sorted ascending by
// their two-digit numeric prefix. It fails if any non-output CSV file does
// not follow the naming convention (enumerating every offender) or if fewer
// than two valid shards exist.
func SortedPaths(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading source directory: %w", err)
	}

	type candidate struct {
		prefix int
		name   string
	}
	var valid []candidate
	var invalid []string

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".csv") {
			continue
		}
		if strings.HasPrefix(name, OutputPrefix) {
			continue // known output file from an earlier run
		}
		m := namePattern.FindStringSubmatch(name)
		if m == nil {
			invalid = append(invalid, name)
			continue
		}
		prefix, _ := strconv.Atoi(m[1])
		valid = append(valid, candidate{prefix: prefix, name: name})
	}

	if len(invalid) > 0 {
		sort.Strings(invalid)
		return nil, acled.Invalidf(
			"found %d invalid ACLED source file(s).\n"+
				"Each CSV file in the source directory (other than known output files "+
				"starting with %q) must follow the naming pattern:\n"+
				"    NN-acled_<description>.csv\n"+
				"Examples:\n"+
				"  - 01-acled_2021_download.csv\n"+
				"  - 02-acled_2022_update.csv\n"+
				"Invalid files found:\n%s",
			len(invalid), OutputPrefix, "  - "+strings.Join(invalid, "\n  - "))
	}

	if len(valid) < 2 {
		return nil, acled.Invalidf(
			"at least two valid ACLED source files are required, found %d", len(valid))
	}

	sort.Slice(valid, func(i, j int) bool {
		if valid[i].prefix != valid[j].prefix {
			return valid[i].prefix < valid[j].prefix
		}
		return valid[i].name < valid[j].name
	})

	paths := make([]string, len(valid))
	for i, c := range valid {
		paths[i] = filepath.Join(dir, c.name)
	}
	return paths, nil
}
