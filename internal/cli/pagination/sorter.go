package pagination

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/rshade/coopview/internal/coop"
)

// ErrInvalidSortField is returned when a sort field does not name a table column.
var ErrInvalidSortField = errors.New("invalid sort field")

// SortKey identifies a sortable column of the cooperatives table.
type SortKey int

const (
	// SortByName sorts by cooperative name.
	SortByName SortKey = iota
	// SortByCNPJ sorts by the raw tax ID.
	SortByCNPJ
	// SortByState sorts by state abbreviation.
	SortByState
	// SortBySystem sorts by the parent cooperative system's name.
	SortBySystem
)

// NumSortKeys is the number of sortable columns.
const NumSortKeys = 4

// String returns the canonical field name used in flags and JSON output.
func (k SortKey) String() string {
	switch k {
	case SortByName:
		return "name"
	case SortByCNPJ:
		return "cnpj"
	case SortByState:
		return "state"
	case SortBySystem:
		return "coopSystem.name"
	default:
		return "unknown"
	}
}

// Value extracts the string this key compares on.
func (k SortKey) Value(c coop.Cooperativa) string {
	switch k {
	case SortByName:
		return c.Name
	case SortByCNPJ:
		return c.CNPJ
	case SortByState:
		return c.State
	case SortBySystem:
		return c.SystemName()
	default:
		return ""
	}
}

// ParseSortKey resolves a field name to a SortKey. Matching is case-insensitive.
func ParseSortKey(field string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(field)) {
	case "name":
		return SortByName, nil
	case "cnpj":
		return SortByCNPJ, nil
	case "state":
		return SortByState, nil
	case "coopsystem.name", "coopsystem", "system":
		return SortBySystem, nil
	default:
		return 0, fmt.Errorf("%w: %q (valid: %s)", ErrInvalidSortField, field,
			strings.Join(ValidSortFields(), ", "))
	}
}

// ValidSortFields returns the canonical names of all sortable columns.
func ValidSortFields() []string {
	fields := make([]string, 0, NumSortKeys)
	for k := SortKey(0); k < NumSortKeys; k++ {
		fields = append(fields, k.String())
	}
	return fields
}

// SortDirection is the tri-state direction of a column sort.
type SortDirection int

const (
	// SortNone keeps the order in which the API returned the rows.
	SortNone SortDirection = iota
	// SortAsc sorts ascending.
	SortAsc
	// SortDesc sorts descending.
	SortDesc
)

// String returns "none", "asc" or "desc".
func (d SortDirection) String() string {
	switch d {
	case SortAsc:
		return "asc"
	case SortDesc:
		return "desc"
	default:
		return "none"
	}
}

// SortConfig is the active sort column and its direction.
type SortConfig struct {
	Key       SortKey
	Direction SortDirection
}

// DefaultSortConfig returns the initial configuration: name column, no direction.
func DefaultSortConfig() SortConfig {
	return SortConfig{Key: SortByName, Direction: SortNone}
}

// Active reports whether rows are reordered at all.
func (c SortConfig) Active() bool {
	return c.Direction != SortNone
}

// Toggle returns the configuration after the user selects a column.
// Selecting the active column cycles asc, desc, none; any other column starts at asc.
func (c SortConfig) Toggle(key SortKey) SortConfig {
	if c.Key != key {
		return SortConfig{Key: key, Direction: SortAsc}
	}

	switch c.Direction {
	case SortAsc:
		return SortConfig{Key: key, Direction: SortDesc}
	case SortDesc:
		return SortConfig{Key: key, Direction: SortNone}
	default:
		return SortConfig{Key: key, Direction: SortAsc}
	}
}

// Indicator returns the header glyph for the given column.
func (c SortConfig) Indicator(key SortKey) string {
	if c.Key != key {
		return "↕"
	}
	switch c.Direction {
	case SortAsc:
		return "↑"
	case SortDesc:
		return "↓"
	default:
		return "↕"
	}
}

// String formats the configuration the way ParseSort accepts it.
func (c SortConfig) String() string {
	if !c.Active() {
		return ""
	}
	return c.Key.String() + ":" + c.Direction.String()
}

// collationTag is the locale used for string comparison. Cooperative names carry
// Portuguese diacritics, which must sort next to their base letters.
//
//nolint:gochecknoglobals // Immutable language tag.
var collationTag = language.BrazilianPortuguese

// Sort returns the rows ordered by cfg.
// It always returns a new slice and never modifies the input. With SortNone the
// copy keeps the original API order. Equal values keep their relative order.
func Sort(items []coop.Cooperativa, cfg SortConfig) []coop.Cooperativa {
	sorted := make([]coop.Cooperativa, len(items))
	copy(sorted, items)

	if !cfg.Active() {
		return sorted
	}

	// Collators keep internal buffers and are not safe for concurrent use.
	col := collate.New(collationTag)

	sort.SliceStable(sorted, func(i, j int) bool {
		// For descending order, swap i and j in comparisons to maintain stability
		if cfg.Direction == SortDesc {
			i, j = j, i
		}
		return col.CompareString(cfg.Key.Value(sorted[i]), cfg.Key.Value(sorted[j])) < 0
	})

	return sorted
}
