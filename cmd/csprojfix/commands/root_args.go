package commands

import (
	"github.com/macropower/csprojfix/pkg/csproj"
)

type RootArgs struct {
	logLevel  *string
	logFormat *string
	config    *string
	color     *string
}

func NewRootArgs() *RootArgs {
	return &RootArgs{
		logLevel:  new(string),
		logFormat: new(string),
		config:    new(string),
		color:     new(string),
	}
}

func (a *RootArgs) GetLogLevel() string {
	return *a.logLevel
}

func (a *RootArgs) GetLogFormat() string {
	return *a.logFormat
}

func (a *RootArgs) GetConfig() string {
	return *a.config
}

func (a *RootArgs) GetColor() string {
	return *a.color
}

// GetSelector parses the --config flag.
func (a *RootArgs) GetSelector() (csproj.Selector, error) {
	return csproj.ParseSelector(a.GetConfig())
}

// GetColorMode parses the --color flag.
func (a *RootArgs) GetColorMode() (ColorMode, error) {
	return ParseColorMode(a.GetColor())
}
