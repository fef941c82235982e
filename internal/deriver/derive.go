package deriver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/blackwell-systems/repodash/internal/project"
)

// ErrMissingProjects is returned by Decode when the input document has no
// projects array.
var ErrMissingProjects = errors.New("input has no projects array")

// ErrMalformedInput is returned by Decode for documents that are not valid
// JSON, carry trailing data, or hold projects without identity fields.
var ErrMalformedInput = errors.New("malformed scan document")

// Deriver applies one rule generation to raw facts.
type Deriver struct {
	rules Rules
}

// New returns a Deriver bound to rules.
func New(rules Rules) *Deriver {
	return &Deriver{rules: rules}
}

// Rules returns the generation this Deriver applies.
func (d *Deriver) Rules() Rules {
	return d.rules
}

// Derive computes the view for a single project.
func (d *Deriver) Derive(f *project.Facts) project.View {
	hygiene, hygieneBreakdown := HygieneScore(f)
	momentum, momentumBreakdown := MomentumScore(f)

	return project.View{
		PathHash:      f.PathHash,
		Status:        d.rules.Status(f.DaysInactive),
		HealthScore:   HealthScore(hygiene, momentum),
		HygieneScore:  hygiene,
		MomentumScore: momentum,
		ScoreBreakdown: project.Breakdown{
			Hygiene:  hygieneBreakdown,
			Momentum: momentumBreakdown,
		},
		Tags: d.rules.Tags(f),
	}
}

// DeriveAll derives every project in order. The input's scannedAt is passed
// through as derivedAt.
func (d *Deriver) DeriveAll(in project.DeriveInput) project.DeriveReport {
	views := make([]project.View, len(in.Projects))
	for i := range in.Projects {
		views[i] = d.Derive(&in.Projects[i])
	}
	return project.DeriveReport{
		DerivedAt: in.ScannedAt,
		Projects:  views,
	}
}

// Decode reads a scan document. A malformed document, one without a
// projects array, or a project lacking name, path, or a unique pathHash is
// an error.
func Decode(r io.Reader) (project.DeriveInput, error) {
	dec := json.NewDecoder(r)

	var in project.DeriveInput
	if err := dec.Decode(&in); err != nil {
		return project.DeriveInput{}, fmt.Errorf("%w: %w", ErrMalformedInput, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return project.DeriveInput{}, fmt.Errorf("%w: trailing data after document", ErrMalformedInput)
	}
	if in.Projects == nil {
		return project.DeriveInput{}, ErrMissingProjects
	}

	seen := make(map[string]int, len(in.Projects))
	for i, p := range in.Projects {
		switch {
		case p.Name == "":
			return project.DeriveInput{}, fmt.Errorf("projects[%d] missing name: %w", i, ErrMalformedInput)
		case p.Path == "":
			return project.DeriveInput{}, fmt.Errorf("projects[%d] missing path: %w", i, ErrMalformedInput)
		case p.PathHash == "":
			return project.DeriveInput{}, fmt.Errorf("projects[%d] missing pathHash: %w", i, ErrMalformedInput)
		}
		if j, dup := seen[p.PathHash]; dup {
			return project.DeriveInput{}, fmt.Errorf("projects[%d] repeats pathHash of projects[%d]: %w", i, j, ErrMalformedInput)
		}
		seen[p.PathHash] = i
	}
	return in, nil
}
