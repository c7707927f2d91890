package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/macropower/csprojfix/pkg/log"
)

var (
	ErrLogHandlerFailed = errors.New("log handler failed")
	ErrInvalidArgument  = errors.New("invalid argument")
)

func NewRootCmd(name, shortDesc, longDesc string) *cobra.Command {
	args := NewRootArgs()

	cmd := &cobra.Command{
		Use:           name,
		Short:         shortDesc,
		Long:          longDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       GetVersionString(),
	}

	cmd.PersistentFlags().StringVar(args.logLevel, "log_level", "warn", "Set the log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(args.logFormat, "log_format", "text", "Set the log format (text, logfmt, json)")
	cmd.PersistentFlags().StringVarP(args.config, "config", "c", "debug",
		"Build configuration whose PropertyGroup is edited (all, debug, release)")
	cmd.PersistentFlags().StringVar(args.color, "color", string(ColorAuto), "Colorize output (auto, always, never)")

	cmd.PersistentPreRunE = func(cc *cobra.Command, _ []string) error {
		h, err := log.CreateHandlerWithStrings(
			cc.ErrOrStderr(),
			args.GetLogLevel(),
			args.GetLogFormat(),
		)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrLogHandlerFailed, err)
		}

		slog.SetDefault(slog.New(h))

		var merr error

		if _, err := args.GetSelector(); err != nil {
			merr = multierror.Append(merr, fmt.Errorf("config: %w", err))
		}

		if _, err := args.GetColorMode(); err != nil {
			merr = multierror.Append(merr, fmt.Errorf("color: %w", err))
		}

		if merr != nil {
			return fmt.Errorf("%w: %w", ErrInvalidArgument, merr)
		}

		slog.Debug("ready to go",
			slog.String("config", args.GetConfig()),
		)

		return nil
	}

	cmd.AddCommand(NewVersionCmd())
	cmd.AddCommand(NewFixCmd(args))
	cmd.AddCommand(NewGetCmd(args))
	cmd.AddCommand(NewSetCmd(args))
	cmd.AddCommand(NewContractsCmd(args))

	return cmd
}
