package deriver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blackwell-systems/repodash/internal/project"
)

func TestHygieneScore_EmptyProject(t *testing.T) {
	score, breakdown := HygieneScore(&project.Facts{})
	assert.Equal(t, map[string]int{"lowTodos": 10}, breakdown)
	// round(10 * 100 / 95) = 11
	assert.Equal(t, 11, score)
}

func TestHygieneScore_FullProject(t *testing.T) {
	f := &project.Facts{
		Files: project.Files{
			Readme:       true,
			Tests:        true,
			LinterConfig: true,
			License:      true,
			Lockfile:     true,
		},
		CICD:       project.Flags{"github_actions": true},
		Deployment: project.Flags{"vercel": true},
		RemoteURL:  project.String("https://github.com/test/test"),
		TodoCount:  5,
	}

	score, breakdown := HygieneScore(f)
	assert.Equal(t, 100, score)
	assert.Equal(t, map[string]int{
		"readme":     15,
		"tests":      20,
		"cicd":       15,
		"remote":     10,
		"lowTodos":   10,
		"deployment": 10,
		"linter":     5,
		"license":    5,
		"lockfile":   5,
	}, breakdown)
}

func TestHygieneScore_TodoThreshold(t *testing.T) {
	tests := []struct {
		todos int
		bonus bool
	}{
		{0, true},
		{9, true},
		{10, false},
		{100, false},
	}

	for _, tc := range tests {
		_, breakdown := HygieneScore(&project.Facts{TodoCount: tc.todos})
		_, got := breakdown["lowTodos"]
		assert.Equal(t, tc.bonus, got, "todoCount=%d", tc.todos)
	}
}

func TestHygieneScore_FalseFlagsDoNotCount(t *testing.T) {
	f := &project.Facts{
		CICD:       project.Flags{"travis": false},
		Deployment: project.Flags{"fly": false},
		RemoteURL:  project.String(""),
		TodoCount:  50,
	}
	score, breakdown := HygieneScore(f)
	assert.Empty(t, breakdown)
	assert.Equal(t, 0, score)
}

func TestMomentumScore_RecencyTiers(t *testing.T) {
	tests := []struct {
		days    int
		recency int // 0 means absent
	}{
		{0, 25},
		{7, 25},
		{8, 20},
		{14, 20},
		{15, 15},
		{30, 15},
		{31, 5},
		{60, 5},
		{61, 0},
		{90, 0},
	}

	for _, tc := range tests {
		f := &project.Facts{DaysInactive: intPtr(tc.days), IsDirty: true, Ahead: 1, BranchCount: 5}
		_, breakdown := MomentumScore(f)
		got, ok := breakdown["recency"]
		if tc.recency == 0 {
			assert.False(t, ok, "days=%d should award no recency points", tc.days)
			continue
		}
		assert.Equal(t, tc.recency, got, "days=%d", tc.days)
	}
}

func TestMomentumScore_NilDaysNoRecency(t *testing.T) {
	_, breakdown := MomentumScore(&project.Facts{})
	_, ok := breakdown["recency"]
	assert.False(t, ok)
}

func TestMomentumScore_Signals(t *testing.T) {
	tests := []struct {
		name  string
		facts project.Facts
		key   string
		want  bool
	}{
		{"clean tree", project.Facts{IsDirty: false}, "cleanTree", true},
		{"dirty tree", project.Facts{IsDirty: true}, "cleanTree", false},
		{"pushed up", project.Facts{Ahead: 0, IsDirty: true, Behind: 4}, "pushedUp", true},
		{"unpushed", project.Facts{Ahead: 3}, "pushedUp", false},
		{"low branches", project.Facts{BranchCount: 3}, "lowBranches", true},
		{"many branches", project.Facts{BranchCount: 10}, "lowBranches", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, breakdown := MomentumScore(&tc.facts)
			_, got := breakdown[tc.key]
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMomentumScore_Max(t *testing.T) {
	score, _ := MomentumScore(&project.Facts{DaysInactive: intPtr(1)})
	assert.Equal(t, 100, score)
}

func TestMomentumScore_NoRecencyOnly(t *testing.T) {
	// cleanTree 20 + pushedUp 15 + lowBranches 10 = 45 -> round(4500/70) = 64
	score, _ := MomentumScore(&project.Facts{})
	assert.Equal(t, 64, score)
}

func TestHealthScore_WeightedAverage(t *testing.T) {
	tests := []struct {
		hygiene, momentum, want int
	}{
		{0, 0, 0},
		{100, 100, 100},
		{100, 0, 65},
		{0, 100, 35},
		{10, 0, 7}, // 6.5 rounds up
		{11, 64, 30},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, HealthScore(tc.hygiene, tc.momentum), "h=%d m=%d", tc.hygiene, tc.momentum)
	}
}

func TestHealthScore_AlwaysInRange(t *testing.T) {
	for h := 0; h <= 100; h += 3 {
		for m := 0; m <= 100; m += 7 {
			got := HealthScore(h, m)
			if got < 0 || got > 100 {
				t.Fatalf("HealthScore(%d, %d) = %d out of range", h, m, got)
			}
		}
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, 0, normalize(0, 95))
	assert.Equal(t, 11, normalize(10, 95))
	assert.Equal(t, 100, normalize(95, 95))
	assert.Equal(t, 100, normalize(120, 95))
	assert.Equal(t, 7, normalize(5, 70))
}
