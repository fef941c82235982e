package scanner

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/blackwell-systems/repodash/internal/project"
)

// TimestampLayout formats scannedAt: UTC, millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// DefaultWorkers is the number of projects scanned concurrently.
const DefaultWorkers = 4

// Scanner produces Facts records. The zero value is not usable; call New.
type Scanner struct {
	git     GitRunner
	now     func() time.Time
	workers int
	log     *slog.Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithGitRunner replaces the git implementation.
func WithGitRunner(r GitRunner) Option {
	return func(s *Scanner) { s.git = r }
}

// WithClock replaces the clock used for daysInactive and scannedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Scanner) { s.now = now }
}

// WithWorkers bounds how many projects are scanned at once. Values below 1
// mean sequential scanning.
func WithWorkers(n int) Option {
	return func(s *Scanner) {
		if n < 1 {
			n = 1
		}
		s.workers = n
	}
}

// WithLogger sets the logger for degraded signals.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scanner) {
		if l != nil {
			s.log = l
		}
	}
}

// New returns a Scanner using the git binary, the wall clock, and
// DefaultWorkers unless overridden.
func New(opts ...Option) *Scanner {
	s := &Scanner{
		git:     ExecGit{Timeout: DefaultGitTimeout},
		now:     time.Now,
		workers: DefaultWorkers,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScanProject collects every fact for the project at dir. It never fails:
// signals that cannot be read fall back to their defaults.
func (s *Scanner) ScanProject(ctx context.Context, dir string) project.Facts {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}

	f := project.Facts{
		Name:     filepath.Base(dir),
		Path:     dir,
		PathHash: project.PathHash(dir),
	}

	s.collectGit(ctx, dir, &f)

	f.Languages = detectLanguages(dir)
	f.Files = checkFiles(dir)
	f.CICD = checkFlags(dir, ciProviders)
	f.Deployment = checkFlags(dir, deployTargets)
	f.License = f.Files.License
	f.PackageManager = project.String(detectPackageManager(dir))

	counts := countMarkers(dir)
	f.TodoCount = counts.todo
	f.FixmeCount = counts.fixme
	f.LocEstimate = counts.lines

	m := s.inferManifests(dir)
	f.Framework = project.String(m.framework)
	f.Services = m.services
	f.Description = project.String(m.description)
	f.LiveURL = project.String(m.liveURL)
	f.Scripts = m.scripts

	return f
}

// ScanAll enumerates the projects under root and scans each one. Output
// order matches ListProjectDirs regardless of worker count. The only
// errors are a missing root and context cancellation.
func (s *Scanner) ScanAll(ctx context.Context, root string, exclude []string) (*project.ScanReport, error) {
	dirs, err := ListProjectDirs(root, exclude)
	if err != nil {
		return nil, err
	}
	s.log.Debug("projects enumerated", "root", root, "count", len(dirs))

	facts := make([]project.Facts, len(dirs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, dir := range dirs {
		i, dir := i, dir
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			facts[i] = s.ScanProject(gctx, dir.Path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &project.ScanReport{
		ScannedAt:    s.now().UTC().Format(TimestampLayout),
		ProjectCount: len(facts),
		Projects:     facts,
	}, nil
}
