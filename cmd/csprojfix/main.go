package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/macropower/csprojfix/cmd/csprojfix/commands"
)

const (
	cmdName = "csprojfix"

	shortDesc = "Edit the build settings of .csproj files."
	longDesc  = `csprojfix edits MSBuild project files in place.

It reads and rewrites the LangVersion setting of the PropertyGroup selected by
a build configuration (all, debug or release), and can apply or remove the
Code Contracts settings in bulk. The fix command walks a directory tree and
resets LangVersion in every project file it finds.
`
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cmd := commands.NewRootCmd(cmdName, shortDesc, longDesc)

	err := cmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, strings.TrimLeft(err.Error(), "\n"))
		os.Exit(1)
	}
}
