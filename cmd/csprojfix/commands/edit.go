package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/macropower/csprojfix/pkg/csproj"
	"github.com/macropower/csprojfix/pkg/settings"
)

var (
	ErrGetFailed       = errors.New("get failed")
	ErrSetFailed       = errors.New("set failed")
	ErrContractsFailed = errors.New("contracts failed")
)

// NewGetCmd returns the get command.
func NewGetCmd(args *RootArgs) *cobra.Command {
	return &cobra.Command{
		Use:   "get <file>...",
		Short: "Print the LangVersion of project files",
		Example: `  csprojfix get App.csproj
  csprojfix get --config release src/*/*.csproj`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cc *cobra.Command, files []string) error {
			err := editFiles(cc, args, files, func(e *csproj.Editor) (string, error) {
				return e.LangVersion()
			})
			if err != nil {
				return fmt.Errorf("%w: %w", ErrGetFailed, err)
			}

			return nil
		},
		SilenceUsage: true,
	}
}

// NewSetCmd returns the set command.
func NewSetCmd(args *RootArgs) *cobra.Command {
	return &cobra.Command{
		Use:   "set <version> <file>...",
		Short: "Set the LangVersion of project files",
		Example: `  csprojfix set 7.3 App.csproj
  csprojfix set --config all latest src/*/*.csproj`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cc *cobra.Command, posArgs []string) error {
			langVersion := posArgs[0]

			err := editFiles(cc, args, posArgs[1:], func(e *csproj.Editor) (string, error) {
				if err := e.SetLangVersion(langVersion); err != nil {
					return "", err
				}

				return e.LangVersion()
			})
			if err != nil {
				return fmt.Errorf("%w: %w", ErrSetFailed, err)
			}

			return nil
		},
		SilenceUsage: true,
	}
}

// NewContractsCmd returns the contracts command.
func NewContractsCmd(args *RootArgs) *cobra.Command {
	settingsPath := new(string)

	cmd := &cobra.Command{
		Use:   "contracts",
		Short: "Apply or remove the Code Contracts settings",
		Long: `Apply or remove a batch of settings in the selected PropertyGroup.

By default the batch is the built-in Code Contracts table. Use --settings to
supply a YAML table of the form:

  settings:
    - name: CodeContractsEnableRuntimeChecking
      value: "True"
`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(settingsPath, "settings", "", "YAML settings table to use instead of the built-in one")

	if err := cmd.MarkPersistentFlagFilename("settings", "yaml", "yml"); err != nil {
		panic(err)
	}

	table := func() (settings.Table, error) {
		t, err := loadTable(*settingsPath)
		if err != nil {
			return nil, fmt.Errorf("%w: settings: %w", ErrInvalidArgument, err)
		}

		if t == nil {
			t = settings.CodeContracts()
		}

		return t, nil
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "apply <file>...",
		Short: "Add or update every setting of the table",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cc *cobra.Command, files []string) error {
			t, err := table()
			if err != nil {
				return err
			}

			err = editFiles(cc, args, files, func(e *csproj.Editor) (string, error) {
				if err := e.ApplySettings(t); err != nil {
					return "", err
				}

				return fmt.Sprintf("%d settings applied", len(t)), nil
			})
			if err != nil {
				return fmt.Errorf("%w: %w", ErrContractsFailed, err)
			}

			return nil
		},
		SilenceUsage: true,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <file>...",
		Short: "Remove every setting of the table",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cc *cobra.Command, files []string) error {
			t, err := table()
			if err != nil {
				return err
			}

			err = editFiles(cc, args, files, func(e *csproj.Editor) (string, error) {
				if err := e.RemoveSettings(t); err != nil {
					return "", err
				}

				return "settings removed", nil
			})
			if err != nil {
				return fmt.Errorf("%w: %w", ErrContractsFailed, err)
			}

			return nil
		},
		SilenceUsage: true,
	})

	return cmd
}

// editFiles runs one editing session per file and prints the result of fn.
// Files that fail are skipped and their errors returned together.
func editFiles(cc *cobra.Command, args *RootArgs, files []string, fn func(*csproj.Editor) (string, error)) error {
	selector, err := args.GetSelector()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	colorMode, err := args.GetColorMode()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	p := newPrinter(cc.OutOrStdout(), colorMode)

	var merr error

	for _, file := range files {
		var result string

		err := csproj.Edit(file, func(e *csproj.Editor) error {
			var err error

			result, err = fn(e)

			return err
		}, csproj.WithSelector(selector))
		if err != nil {
			slog.Info("edit failed", slog.String("path", file), slog.Any("err", err))
			merr = multierror.Append(merr, fmt.Errorf("%q: %w", file, err))

			continue
		}

		p.Result(file, result)
	}

	return merr
}
