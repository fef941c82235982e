// Package project defines the JSON contract shared by the scanner and the
// deriver: raw per-project facts, derived views, and the report envelopes.
package project

// Facts is the raw, judgment-free observation of one project directory at
// scan time. Pointer fields serialize as null when the fact is unavailable.
type Facts struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	PathHash string `json:"pathHash"`

	IsRepo            bool     `json:"isRepo"`
	LastCommitDate    *string  `json:"lastCommitDate"`
	LastCommitMessage *string  `json:"lastCommitMessage"`
	Branch            *string  `json:"branch"`
	RemoteURL         *string  `json:"remoteUrl"`
	CommitCount       int      `json:"commitCount"`
	DaysInactive      *int     `json:"daysInactive"`
	IsDirty           bool     `json:"isDirty"`
	UntrackedCount    int      `json:"untrackedCount"`
	ModifiedCount     int      `json:"modifiedCount"`
	StagedCount       int      `json:"stagedCount"`
	Ahead             int      `json:"ahead"`
	Behind            int      `json:"behind"`
	RecentCommits     []Commit `json:"recentCommits"`
	BranchCount       int      `json:"branchCount"`
	StashCount        int      `json:"stashCount"`

	Languages      Languages `json:"languages"`
	Files          Files     `json:"files"`
	CICD           Flags     `json:"cicd"`
	Deployment     Flags     `json:"deployment"`
	TodoCount      int       `json:"todoCount"`
	FixmeCount     int       `json:"fixmeCount"`
	Description    *string   `json:"description"`
	Framework      *string   `json:"framework"`
	LiveURL        *string   `json:"liveUrl"`
	Scripts        []string  `json:"scripts"`
	Services       []string  `json:"services"`
	LocEstimate    int       `json:"locEstimate"`
	PackageManager *string   `json:"packageManager"`
	License        bool      `json:"license"`
}

// Commit is one entry of a project's recent history.
type Commit struct {
	Hash    string `json:"hash"`
	Date    string `json:"date"`
	Message string `json:"message"`
}

// Languages holds the primary language and every language detected, in
// indicator-table order.
type Languages struct {
	Primary  *string  `json:"primary"`
	Detected []string `json:"detected"`
}

// Files holds presence flags for well-known project files.
type Files struct {
	Readme        bool `json:"readme"`
	Tests         bool `json:"tests"`
	Env           bool `json:"env"`
	EnvExample    bool `json:"envExample"`
	Dockerfile    bool `json:"dockerfile"`
	DockerCompose bool `json:"dockerCompose"`
	LinterConfig  bool `json:"linterConfig"`
	License       bool `json:"license"`
	Lockfile      bool `json:"lockfile"`
}

// Flags maps a provider key (e.g. "githubActions", "vercel") to whether it
// was detected. A map keeps the deriver indifferent to which providers a
// given scanner version knows about.
type Flags map[string]bool

// Any reports whether at least one flag is set.
func (f Flags) Any() bool {
	for _, v := range f {
		if v {
			return true
		}
	}
	return false
}

// View is the derived judgment about one project. It is a pure function of
// a Facts record and is joined back to it by PathHash.
type View struct {
	PathHash       string    `json:"pathHash"`
	Status         string    `json:"statusAuto"`
	HealthScore    int       `json:"healthScoreAuto"`
	HygieneScore   int       `json:"hygieneScoreAuto"`
	MomentumScore  int       `json:"momentumScoreAuto"`
	ScoreBreakdown Breakdown `json:"scoreBreakdownJson"`
	Tags           []string  `json:"tags"`
}

// Breakdown records the points each signal contributed, per axis. Signals
// that contributed nothing are omitted.
type Breakdown struct {
	Hygiene  map[string]int `json:"hygiene"`
	Momentum map[string]int `json:"momentum"`
}

// ScanReport is the document the scanner emits.
type ScanReport struct {
	ScannedAt    string  `json:"scannedAt"`
	ProjectCount int     `json:"projectCount"`
	Projects     []Facts `json:"projects"`
}

// DeriveInput is the subset of a ScanReport the deriver reads.
type DeriveInput struct {
	ScannedAt *string `json:"scannedAt"`
	Projects  []Facts `json:"projects"`
}

// DeriveReport is the document the deriver emits.
type DeriveReport struct {
	DerivedAt *string `json:"derivedAt"`
	Projects  []View  `json:"projects"`
}

// ErrorReport is emitted in place of a ScanReport when the scan cannot run.
type ErrorReport struct {
	Error string `json:"error"`
}
