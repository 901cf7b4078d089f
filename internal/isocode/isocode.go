// Package isocode maps legacy ISO 3166-1 numeric country codes to their
// three-letter equivalents. Very old ACLED exports carry only the numeric
// code; the consolidated schema requires the alpha-3 column. The table is
// baked into the binary at compile time and never mutated.
package isocode

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data/iso_numeric.yaml
var rawTable []byte

var byNumeric map[int]string

func init() {
	if err := yaml.Unmarshal(rawTable, &byNumeric); err != nil {
		panic(fmt.Sprintf("isocode: embedded table is corrupt: %v", err))
	}
}

// Alpha3 returns the three-letter code for a numeric ISO 3166-1 code, and
// whether the code is known.
func Alpha3(numeric int) (string, bool) {
	alpha3, ok := byNumeric[numeric]
	return alpha3, ok
}

// Size returns the number of entries in the embedded table.
func Size() int { return len(byNumeric) }
