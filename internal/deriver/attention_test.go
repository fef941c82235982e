package deriver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blackwell-systems/repodash/internal/project"
)

func codes(reasons []Reason) []string {
	out := []string{}
	for _, r := range reasons {
		out = append(out, r.Code)
	}
	return out
}

func healthyView() project.View {
	return project.View{HygieneScore: 80, MomentumScore: 80}
}

func TestAttention_Healthy(t *testing.T) {
	reasons := Attention(&project.Facts{DaysInactive: intPtr(30)}, healthyView())
	assert.NotNil(t, reasons)
	assert.Empty(t, reasons)
	assert.Equal(t, SeverityLow, MaxSeverity(reasons))
}

func TestAttention_Rules(t *testing.T) {
	tests := []struct {
		name  string
		facts project.Facts
		view  project.View
		want  []string
	}{
		{"low hygiene", project.Facts{}, project.View{HygieneScore: 29, MomentumScore: 80}, []string{"LOW_HYGIENE"}},
		{"hygiene at threshold", project.Facts{}, project.View{HygieneScore: 30, MomentumScore: 80}, []string{}},
		{"stale momentum", project.Facts{}, project.View{HygieneScore: 80, MomentumScore: 24}, []string{"STALE_MOMENTUM"}},
		{"momentum at threshold", project.Facts{}, project.View{HygieneScore: 80, MomentumScore: 25}, []string{}},
		{"dirty for 8 days", project.Facts{IsDirty: true, DaysInactive: intPtr(8)}, healthyView(), []string{"DIRTY_AGE_GT_7"}},
		{"dirty for 7 days", project.Facts{IsDirty: true, DaysInactive: intPtr(7)}, healthyView(), []string{}},
		{"dirty without commits", project.Facts{IsDirty: true}, healthyView(), []string{}},
		{"unpushed for 8 days", project.Facts{Ahead: 1, DaysInactive: intPtr(8)}, healthyView(), []string{"UNPUSHED_CHANGES"}},
		{"unpushed today", project.Facts{Ahead: 3, DaysInactive: intPtr(0)}, healthyView(), []string{}},
		{"20 todos", project.Facts{TodoCount: 20}, healthyView(), []string{"HIGH_TODO_COUNT"}},
		{"19 todos", project.Facts{TodoCount: 19}, healthyView(), []string{}},
		{
			"everything",
			project.Facts{IsDirty: true, Ahead: 2, TodoCount: 50, DaysInactive: intPtr(90)},
			project.View{HygieneScore: 10, MomentumScore: 0},
			[]string{"LOW_HYGIENE", "STALE_MOMENTUM", "DIRTY_AGE_GT_7", "UNPUSHED_CHANGES", "HIGH_TODO_COUNT"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, codes(Attention(&tc.facts, tc.view)))
		})
	}
}

func TestAttention_TodoLabelCarriesCount(t *testing.T) {
	reasons := Attention(&project.Facts{TodoCount: 42}, healthyView())
	if assert.Len(t, reasons, 1) {
		assert.Equal(t, "42 TODOs in codebase", reasons[0].Label)
		assert.Equal(t, SeverityLow, reasons[0].Severity)
	}
}

func TestMaxSeverity(t *testing.T) {
	assert.Equal(t, SeverityLow, MaxSeverity(nil))
	assert.Equal(t, SeverityMedium, MaxSeverity([]Reason{{Severity: SeverityLow}, {Severity: SeverityMedium}}))
	assert.Equal(t, SeverityHigh, MaxSeverity([]Reason{{Severity: SeverityHigh}, {Severity: SeverityLow}}))
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "low", SeverityLow.String())
	assert.Equal(t, "med", SeverityMedium.String())
	assert.Equal(t, "high", SeverityHigh.String())
}
