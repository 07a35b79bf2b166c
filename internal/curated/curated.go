// Package curated is the hand-maintained ground-truth database of verified
// drug/target associations. Curated entries sit in the highest trust tier:
// discovery never overrides them, and per-target exclusion lists suppress
// recurring false positives from condition-overlap trials.
package curated

import (
	"strings"

	"github.com/joelkehle/targetscout/internal/asset"
)

// DB wraps the static tables behind lookup methods so callers (and tests)
// hold an explicit handle rather than package state.
type DB struct {
	assets     map[string][]asset.KnownAsset
	exclusions map[string][]string
}

// Open returns the curated database. The underlying tables are compiled in
// and read-only; Open never fails.
func Open() *DB {
	return &DB{assets: knownAssets, exclusions: excludedDrugs}
}

func targetKey(target string) string {
	k := asset.FoldName(target)
	return strings.NewReplacer(".", "", "/", "").Replace(k)
}

// Find matches a drug name against the curated table for the given target,
// by primary name, code name, generic name, or alias, case and hyphen
// insensitive. Returns nil when nothing matches; absence is not an error.
func (db *DB) Find(name, target string) *asset.KnownAsset {
	folded := asset.FoldName(name)
	if folded == "" {
		return nil
	}
	table := db.assets[targetKey(target)]
	for i := range table {
		ka := &table[i]
		for _, candidate := range ka.Names() {
			c := asset.FoldName(candidate)
			if c == "" {
				continue
			}
			if folded == c || strings.Contains(folded, c) {
				return ka
			}
		}
	}
	return nil
}

// IsExcluded reports whether the drug is on the target's known-false-positive
// list: drugs that genuinely target something else but keep appearing in
// trials for the same conditions.
func (db *DB) IsExcluded(name, target string) bool {
	folded := asset.FoldName(name)
	if folded == "" {
		return false
	}
	for _, excl := range db.exclusions[targetKey(target)] {
		if strings.Contains(folded, asset.FoldName(excl)) {
			return true
		}
	}
	return false
}

// AssetsForTarget returns the full curated set for a target, in table order.
// The slice is a copy; callers may mutate it freely.
func (db *DB) AssetsForTarget(target string) []asset.KnownAsset {
	src := db.assets[targetKey(target)]
	out := make([]asset.KnownAsset, len(src))
	copy(out, src)
	return out
}
