// Package deriver turns raw project facts into status, scores, and tags.
//
// Derivation is pure: the same Facts always produce the same View. The
// policy lives in a Rules value chosen once at startup, so scoring can change
// between generations without re-collecting facts.
package deriver

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// DefaultGeneration is the rule generation used when none is configured.
const DefaultGeneration = "v3"

// ErrUnknownRules is returned by Lookup for an unregistered generation.
var ErrUnknownRules = errors.New("unknown rule generation")

// StatusTier maps every daysInactive value up to and including MaxDays to
// Label.
type StatusTier struct {
	MaxDays int
	Label   string
}

// Rules is one self-consistent generation of the status and tagging policy.
// Day boundaries are the same in every generation; labels are not.
type Rules struct {
	Generation string

	// Tiers are checked in order; the first whose MaxDays is not exceeded wins.
	Tiers []StatusTier

	// Terminal is the status for projects with no commits or older than the
	// last tier.
	Terminal string

	// NameKeywordTags enables api/web/cli/library tags inferred from the
	// project directory name.
	NameKeywordTags bool
}

var generations = map[string]Rules{
	"v1": {
		Generation: "v1",
		Tiers: []StatusTier{
			{MaxDays: 14, Label: "active"},
			{MaxDays: 60, Label: "in-progress"},
			{MaxDays: 180, Label: "stale"},
		},
		Terminal:        "archived",
		NameKeywordTags: true,
	},
	"v2": {
		Generation: "v2",
		Tiers: []StatusTier{
			{MaxDays: 14, Label: "active"},
			{MaxDays: 60, Label: "paused"},
			{MaxDays: 180, Label: "stale"},
		},
		Terminal: "archived",
	},
	"v3": {
		Generation: "v3",
		Tiers: []StatusTier{
			{MaxDays: 14, Label: "active"},
			{MaxDays: 60, Label: "completed"},
			{MaxDays: 180, Label: "paused"},
		},
		Terminal: "archived",
	},
}

// Lookup returns the registered rule generation with the given name. An
// empty name selects DefaultGeneration.
func Lookup(name string) (Rules, error) {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		name = DefaultGeneration
	}
	r, ok := generations[name]
	if !ok {
		return Rules{}, fmt.Errorf("%w %q (known: %s)", ErrUnknownRules, name, strings.Join(Generations(), ", "))
	}
	return r, nil
}

// Generations lists the registered generation names in sorted order.
func Generations() []string {
	names := make([]string, 0, len(generations))
	for name := range generations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Status classifies a project by days since its last commit. A nil value
// means the project has no commits.
func (r Rules) Status(daysInactive *int) string {
	if daysInactive == nil {
		return r.Terminal
	}
	for _, tier := range r.Tiers {
		if *daysInactive <= tier.MaxDays {
			return tier.Label
		}
	}
	return r.Terminal
}
