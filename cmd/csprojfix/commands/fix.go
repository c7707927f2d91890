package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/macropower/csprojfix/pkg/csproj"
	"github.com/macropower/csprojfix/pkg/fixcmd"
	"github.com/macropower/csprojfix/pkg/settings"
)

const (
	fixDesc = `Find every .csproj file below a directory and set its LangVersion

Each file is opened, optionally has the Code Contracts settings applied or
removed, gets its LangVersion set, and is saved. One line is printed per file:

  <filename> - <LangVersion>

The first file that cannot be edited stops the run.
`
	fixExample = `  # Reset LangVersion to "default" in the Debug group of every project below .
  csprojfix fix

  # Pin the Release group to C# 7.3 under ./src, four files at a time
  csprojfix fix ./src --config release --lang_version 7.3 --jobs 4

  # Strip the Code Contracts settings while fixing
  csprojfix fix --contracts remove
`
)

var ErrFixFailed = errors.New("fix failed")

// NewFixCmd returns the fix command.
func NewFixCmd(args *RootArgs) *cobra.Command {
	langVersion := new(string)
	contracts := new(string)
	settingsPath := new(string)
	jobs := new(int)

	cmd := &cobra.Command{
		Use:     "fix [dir]",
		Short:   "Set LangVersion in every project file below a directory",
		Long:    fixDesc,
		Example: fixExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cc *cobra.Command, posArgs []string) error {
			root := "."
			if len(posArgs) > 0 {
				root = posArgs[0]
			}

			var merr error

			selector, err := args.GetSelector()
			if err != nil {
				merr = multierror.Append(merr, err)
			}

			colorMode, err := args.GetColorMode()
			if err != nil {
				merr = multierror.Append(merr, err)
			}

			mode, err := fixcmd.ParseContractsMode(*contracts)
			if err != nil {
				merr = multierror.Append(merr, fmt.Errorf("contracts: %w", err))
			}

			table, err := loadTable(*settingsPath)
			if err != nil {
				merr = multierror.Append(merr, fmt.Errorf("settings: %w", err))
			}

			if *jobs < 1 {
				merr = multierror.Append(merr, fmt.Errorf("jobs: must be at least 1, got %d", *jobs))
			}

			if merr != nil {
				return fmt.Errorf("%w: %w", ErrInvalidArgument, merr)
			}

			f := fixcmd.NewFixer(root,
				fixcmd.WithSelector(selector),
				fixcmd.WithLangVersion(*langVersion),
				fixcmd.WithContracts(mode, table),
				fixcmd.WithJobs(*jobs),
			)

			p := newPrinter(cc.OutOrStdout(), colorMode)

			f.Subscribe(func(evt any) {
				switch e := evt.(type) {
				case fixcmd.EventSetTotal:
					slog.Debug("fixing project files", slog.Int("total", int(e)))
				case fixcmd.EventFixed:
					if e.Err == nil {
						p.Result(e.Path, e.LangVersion)
					}
				}
			})

			if err := f.Run(cc.Context()); err != nil {
				return fmt.Errorf("%w: %w", ErrFixFailed, err)
			}

			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(langVersion, "lang_version", csproj.DefaultLangVersion, "LangVersion to set")
	cmd.Flags().StringVar(contracts, "contracts", string(fixcmd.ContractsNone),
		"Code Contracts settings to change (none, apply, remove)")
	cmd.Flags().StringVar(settingsPath, "settings", "",
		"YAML settings table used by --contracts instead of the built-in one")
	cmd.Flags().IntVarP(jobs, "jobs", "j", 1, "Number of files to edit concurrently")

	if err := cmd.MarkFlagFilename("settings", "yaml", "yml"); err != nil {
		panic(err)
	}

	return cmd
}

// loadTable returns nil for an empty path, which selects the built-in table.
func loadTable(path string) (settings.Table, error) {
	if path == "" {
		return nil, nil
	}

	t, err := settings.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", path, err)
	}

	return t, nil
}
