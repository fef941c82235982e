package deriver

import "github.com/blackwell-systems/repodash/internal/project"

// signal is one contributor to a score axis.
type signal struct {
	name    string
	points  int
	present func(f *project.Facts) bool
}

// lowTodoThreshold is the exclusive upper bound on TODOs for the lowTodos
// hygiene bonus.
const lowTodoThreshold = 10

// maxBranches is the inclusive upper bound on local branches for the
// lowBranches momentum bonus.
const maxBranches = 3

// hygieneSignals are the slow-moving structural signals. Points sum to
// hygieneMax.
var hygieneSignals = []signal{
	{"readme", 15, func(f *project.Facts) bool { return f.Files.Readme }},
	{"tests", 20, func(f *project.Facts) bool { return f.Files.Tests }},
	{"cicd", 15, func(f *project.Facts) bool { return f.CICD.Any() }},
	{"remote", 10, func(f *project.Facts) bool { return f.RemoteURL != nil && *f.RemoteURL != "" }},
	{"lowTodos", 10, func(f *project.Facts) bool { return f.TodoCount < lowTodoThreshold }},
	{"deployment", 10, func(f *project.Facts) bool { return f.Deployment.Any() }},
	{"linter", 5, func(f *project.Facts) bool { return f.Files.LinterConfig }},
	{"license", 5, func(f *project.Facts) bool { return f.Files.License }},
	{"lockfile", 5, func(f *project.Facts) bool { return f.Files.Lockfile }},
}

const hygieneMax = 95

// recencyTier awards points when daysInactive is at most maxDays. Tiers are
// ordered by ascending maxDays and only the first match counts.
type recencyTier struct {
	maxDays int
	points  int
}

var recencyTiers = []recencyTier{
	{7, 25},
	{14, 20},
	{30, 15},
	{60, 5},
}

// momentumSignals are the fast-moving operational signals other than
// recency.
var momentumSignals = []signal{
	{"cleanTree", 20, func(f *project.Facts) bool { return !f.IsDirty }},
	{"pushedUp", 15, func(f *project.Facts) bool { return f.Ahead == 0 }},
	{"lowBranches", 10, func(f *project.Facts) bool { return f.BranchCount <= maxBranches }},
}

const momentumMax = 70

// Health weights, in percent.
const (
	hygieneWeight  = 65
	momentumWeight = 35
)

// HygieneScore returns the normalized 0-100 hygiene score and the points
// each present signal contributed.
func HygieneScore(f *project.Facts) (int, map[string]int) {
	breakdown := make(map[string]int)
	raw := 0
	for _, s := range hygieneSignals {
		if s.present(f) {
			breakdown[s.name] = s.points
			raw += s.points
		}
	}
	return normalize(raw, hygieneMax), breakdown
}

// MomentumScore returns the normalized 0-100 momentum score and its
// breakdown.
func MomentumScore(f *project.Facts) (int, map[string]int) {
	breakdown := make(map[string]int)
	raw := 0
	if f.DaysInactive != nil {
		for _, tier := range recencyTiers {
			if *f.DaysInactive <= tier.maxDays {
				breakdown["recency"] = tier.points
				raw += tier.points
				break
			}
		}
	}
	for _, s := range momentumSignals {
		if s.present(f) {
			breakdown[s.name] = s.points
			raw += s.points
		}
	}
	return normalize(raw, momentumMax), breakdown
}

// HealthScore combines hygiene and momentum into the composite score,
// round(0.65*hygiene + 0.35*momentum) with halves rounded up.
func HealthScore(hygiene, momentum int) int {
	return (hygieneWeight*hygiene + momentumWeight*momentum + 50) / 100
}

// normalize maps raw onto 0-100 as round(raw*100/max), clamped to 100.
func normalize(raw, max int) int {
	n := (raw*200 + max) / (2 * max)
	if n > 100 {
		return 100
	}
	return n
}
