package deriver

import (
	"fmt"

	"github.com/blackwell-systems/repodash/internal/project"
)

// Severity ranks an attention reason. Higher values are more urgent.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
)

func (s Severity) String() string {
	switch s {
	case SeverityHigh:
		return "high"
	case SeverityMedium:
		return "med"
	default:
		return "low"
	}
}

// Reason explains why a project needs attention.
type Reason struct {
	Code     string
	Label    string
	Severity Severity
}

const (
	lowHygieneThreshold    = 30
	staleMomentumThreshold = 25
	agingDays              = 7
	highTodoThreshold      = 20
)

type attentionRule func(f *project.Facts, v project.View, days int) (Reason, bool)

// attentionRules run in this order; every matching rule contributes a
// reason.
var attentionRules = []attentionRule{
	func(_ *project.Facts, v project.View, _ int) (Reason, bool) {
		return Reason{"LOW_HYGIENE", "Low hygiene score", SeverityHigh}, v.HygieneScore < lowHygieneThreshold
	},
	func(_ *project.Facts, v project.View, _ int) (Reason, bool) {
		return Reason{"STALE_MOMENTUM", "Stale momentum", SeverityMedium}, v.MomentumScore < staleMomentumThreshold
	},
	func(f *project.Facts, _ project.View, days int) (Reason, bool) {
		return Reason{"DIRTY_AGE_GT_7", "Dirty working tree for >7 days", SeverityMedium}, f.IsDirty && days > agingDays
	},
	func(f *project.Facts, _ project.View, days int) (Reason, bool) {
		return Reason{"UNPUSHED_CHANGES", "Unpushed commits aging >7 days", SeverityLow}, f.Ahead > 0 && days > agingDays
	},
	func(f *project.Facts, _ project.View, _ int) (Reason, bool) {
		label := fmt.Sprintf("%d TODOs in codebase", f.TodoCount)
		return Reason{"HIGH_TODO_COUNT", label, SeverityLow}, f.TodoCount >= highTodoThreshold
	},
}

// Attention returns the reasons a project needs attention, given its facts
// and derived view. Missing daysInactive counts as zero days. The result is
// empty, never nil, for a healthy project.
func Attention(f *project.Facts, v project.View) []Reason {
	days := 0
	if f.DaysInactive != nil {
		days = *f.DaysInactive
	}

	reasons := []Reason{}
	for _, rule := range attentionRules {
		if r, ok := rule(f, v, days); ok {
			reasons = append(reasons, r)
		}
	}
	return reasons
}

// MaxSeverity returns the most urgent severity among reasons, or
// SeverityLow when there are none.
func MaxSeverity(reasons []Reason) Severity {
	top := SeverityLow
	for _, r := range reasons {
		if r.Severity > top {
			top = r.Severity
		}
	}
	return top
}
