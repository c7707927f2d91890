package fixcmd

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/macropower/csprojfix/pkg/csproj"
	"github.com/macropower/csprojfix/pkg/paths"
	"github.com/macropower/csprojfix/pkg/settings"
	"github.com/macropower/csprojfix/pkg/syncutil"
)

// ProjectExt is the extension of the files the fixer edits.
const ProjectExt = ".csproj"

type Fixer struct {
	locks       *syncutil.KeyLock
	Root        string
	LangVersion string
	Contracts   ContractsMode
	Table       settings.Table
	subs        []func(any)
	Selector    csproj.Selector
	Jobs        int
	mu          sync.Mutex
}

type FixerOpts func(*Fixer)

func WithSelector(s csproj.Selector) FixerOpts {
	return func(f *Fixer) {
		f.Selector = s
	}
}

func WithLangVersion(version string) FixerOpts {
	return func(f *Fixer) {
		f.LangVersion = version
	}
}

// WithContracts applies or removes table in every file. A nil table selects
// the built-in Code Contracts table.
func WithContracts(mode ContractsMode, table settings.Table) FixerOpts {
	return func(f *Fixer) {
		f.Contracts = mode
		if table != nil {
			f.Table = table
		}
	}
}

// WithJobs sets how many files are edited concurrently.
func WithJobs(jobs int) FixerOpts {
	return func(f *Fixer) {
		f.Jobs = jobs
	}
}

func NewFixer(root string, opts ...FixerOpts) *Fixer {
	f := &Fixer{
		Root:        root,
		Selector:    csproj.SelectDebug,
		LangVersion: csproj.DefaultLangVersion,
		Contracts:   ContractsNone,
		Table:       settings.CodeContracts(),
		Jobs:        1,
		locks:       syncutil.NewKeyLock(),
		subs:        []func(any){},
	}
	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Subscribe registers fn to receive events. fn may be called from several
// goroutines, but never concurrently.
func (f *Fixer) Subscribe(fn func(any)) {
	f.subs = append(f.subs, fn)
}

func (f *Fixer) broadcastEvent(evt any) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, sub := range f.subs {
		sub(evt)
	}
}

// Run fixes every project file below [Fixer.Root]. The first failure stops
// the scan; files already saved stay saved.
func (f *Fixer) Run(ctx context.Context) error {
	err := f.run(ctx)
	f.broadcastEvent(EventDone{Err: err})

	return err
}

func (f *Fixer) run(ctx context.Context) error {
	logger := slog.With(
		slog.String("cmd", "fix"),
		slog.String("root", f.Root),
	)

	files, err := paths.FindFiles(f.Root, ProjectExt)
	if err != nil {
		return fmt.Errorf("find project files: %w", err)
	}

	logger.Info("found project files", slog.Int("count", len(files)))
	f.broadcastEvent(EventSetTotal(len(files)))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, f.Jobs))

	for _, file := range files {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err //nolint:wrapcheck // Cancellation cause is reported by the failing file.
			}

			_, err := f.FixFile(file)

			return err
		})
	}

	if err := g.Wait(); err != nil {
		return err //nolint:wrapcheck // Already wrapped by FixFile.
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("fix canceled: %w", err)
	}

	return nil
}

// FixFile runs one editing session on path and returns the resulting
// LangVersion.
func (f *Fixer) FixFile(path string) (string, error) {
	unlock := f.locks.Lock(paths.Canonical(path))
	defer unlock()

	f.broadcastEvent(EventFixing(path))

	var langVersion string

	err := csproj.Edit(path, func(e *csproj.Editor) error {
		switch f.Contracts {
		case ContractsApply:
			if err := e.ApplySettings(f.Table); err != nil {
				return fmt.Errorf("apply settings: %w", err)
			}
		case ContractsRemove:
			if err := e.RemoveSettings(f.Table); err != nil {
				return fmt.Errorf("remove settings: %w", err)
			}
		case ContractsNone:
		}

		if err := e.SetLangVersion(f.LangVersion); err != nil {
			return fmt.Errorf("set LangVersion: %w", err)
		}

		v, err := e.LangVersion()
		if err != nil {
			return fmt.Errorf("get LangVersion: %w", err)
		}

		langVersion = v

		return nil
	}, csproj.WithSelector(f.Selector))
	if err != nil {
		err = fmt.Errorf("fix %q: %w", path, err)
	}

	f.broadcastEvent(EventFixed{Path: path, LangVersion: langVersion, Err: err})

	if err != nil {
		return "", err
	}

	slog.Debug("fixed project file",
		slog.String("path", path),
		slog.String("lang_version", langVersion),
	)

	return langVersion, nil
}
