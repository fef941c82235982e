package scanner

import (
	"context"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/blackwell-systems/repodash/internal/project"
)

// DefaultGitTimeout bounds each individual git query.
const DefaultGitTimeout = 5 * time.Second

// recentCommitLimit is the number of commits kept in Facts.RecentCommits.
const recentCommitLimit = 10

// GitResult is the outcome of one git query. OK is false when the query
// could not produce a value for any reason; callers fall back to a default.
type GitResult struct {
	Output string
	OK     bool
}

// Text returns the trimmed output, or "" when the query was unavailable.
func (r GitResult) Text() string {
	if !r.OK {
		return ""
	}
	return strings.TrimSpace(r.Output)
}

// GitRunner runs a git query in dir. Implementations never return errors;
// every failure is reported as an unavailable result.
type GitRunner interface {
	Run(ctx context.Context, dir string, args ...string) GitResult
}

// ExecGit runs queries with the git binary, each under its own timeout.
type ExecGit struct {
	// Binary is the git executable; empty means "git" from PATH.
	Binary string

	// Timeout bounds each query; zero means DefaultGitTimeout.
	Timeout time.Duration
}

// Run implements GitRunner.
func (g ExecGit) Run(ctx context.Context, dir string, args ...string) GitResult {
	timeout := g.Timeout
	if timeout <= 0 {
		timeout = DefaultGitTimeout
	}
	binary := g.Binary
	if binary == "" {
		binary = "git"
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0", "GIT_OPTIONAL_LOCKS=0")
	out, err := cmd.Output()
	if err != nil {
		return GitResult{}
	}
	return GitResult{Output: string(out), OK: true}
}

// collectGit fills the git facts of f. Each query degrades independently:
// an unavailable result leaves its field at the zero value.
func (s *Scanner) collectGit(ctx context.Context, dir string, f *project.Facts) {
	f.RecentCommits = []project.Commit{}
	if !exists(filepath.Join(dir, ".git")) {
		return
	}
	f.IsRepo = true

	query := func(args ...string) GitResult {
		res := s.git.Run(ctx, dir, args...)
		if !res.OK {
			s.log.Debug("git query unavailable", "dir", dir, "args", strings.Join(args, " "))
		}
		return res
	}

	lastDate := query("log", "-1", "--format=%aI").Text()
	f.LastCommitDate = project.String(lastDate)
	f.LastCommitMessage = project.String(query("log", "-1", "--format=%s").Text())
	f.Branch = project.String(query("rev-parse", "--abbrev-ref", "HEAD").Text())
	f.RemoteURL = project.String(query("remote", "get-url", "origin").Text())
	f.CommitCount = atoi(query("rev-list", "--count", "HEAD").Text())
	f.DaysInactive = daysSince(lastDate, s.now())

	if status := query("status", "--porcelain"); status.OK {
		parseStatus(status.Output, f)
	}

	if f.Branch != nil {
		f.Behind, f.Ahead = parseAheadBehind(query("rev-list", "--count", "--left-right", "@{upstream}...HEAD").Text())
	}

	f.RecentCommits = parseRecentCommits(query("log", "-"+strconv.Itoa(recentCommitLimit), "--format=%H|%aI|%s").Text())
	f.BranchCount = countLines(query("branch", "--list").Text())
	f.StashCount = countLines(query("stash", "list").Text())
}

// daysSince returns the whole days between an ISO 8601 commit timestamp and
// now, or nil when the timestamp is empty or unparseable.
func daysSince(timestamp string, now time.Time) *int {
	if timestamp == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return nil
	}
	days := int(math.Floor(now.UTC().Sub(t).Hours() / 24))
	return &days
}

// parseStatus counts porcelain v1 entries. Any entry marks the tree dirty.
func parseStatus(output string, f *project.Facts) {
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if len(line) < 2 {
			continue
		}
		f.IsDirty = true
		x, y := line[0], line[1]
		if x == '?' && y == '?' {
			f.UntrackedCount++
		}
		if x == 'M' || y == 'M' {
			f.ModifiedCount++
		}
		if strings.IndexByte("AMRD", x) >= 0 && y != '?' {
			f.StagedCount++
		}
	}
}

// parseAheadBehind reads "<behind>\t<ahead>" from rev-list --left-right.
func parseAheadBehind(output string) (behind, ahead int) {
	parts := strings.Fields(output)
	if len(parts) != 2 {
		return 0, 0
	}
	return atoi(parts[0]), atoi(parts[1])
}

func parseRecentCommits(output string) []project.Commit {
	commits := []project.Commit{}
	if output == "" {
		return commits
	}
	for _, line := range strings.Split(output, "\n") {
		parts := strings.SplitN(line, "|", 3)
		if len(parts) != 3 {
			continue
		}
		commits = append(commits, project.Commit{
			Hash:    parts[0],
			Date:    parts[1],
			Message: parts[2],
		})
	}
	return commits
}

func countLines(output string) int {
	if output == "" {
		return 0
	}
	return len(strings.Split(output, "\n"))
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
