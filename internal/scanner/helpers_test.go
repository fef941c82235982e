package scanner

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

// fakeGit answers queries from a table keyed by the joined arguments. A
// missing key is an unavailable result.
type fakeGit struct {
	mu      sync.Mutex
	answers map[string]string
	calls   []string
}

func (f *fakeGit) Run(_ context.Context, _ string, args ...string) GitResult {
	key := strings.Join(args, " ")
	f.mu.Lock()
	f.calls = append(f.calls, key)
	f.mu.Unlock()
	out, ok := f.answers[key]
	return GitResult{Output: out, OK: ok}
}

func (f *fakeGit) called(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == key {
			return true
		}
	}
	return false
}

var fixedNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func newTestScanner(git GitRunner, opts ...Option) *Scanner {
	base := []Option{WithGitRunner(git), WithClock(func() time.Time { return fixedNow })}
	return New(append(base, opts...)...)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func mkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatal(err)
	}
}

func intPtr(n int) *int { return &n }
