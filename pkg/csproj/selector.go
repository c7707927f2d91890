package csproj

import (
	"fmt"
	"strings"

	"github.com/macropower/csprojfix/pkg/csprojerrors"
)

const (
	// DebugCondition is the Condition attribute value of the Debug|AnyCPU
	// PropertyGroup. The surrounding spaces are significant.
	DebugCondition = " '$(Configuration)|$(Platform)' == 'Debug|AnyCPU' "

	// ReleaseCondition is the Condition attribute value of the
	// Release|AnyCPU PropertyGroup.
	ReleaseCondition = " '$(Configuration)|$(Platform)' == 'Release|AnyCPU' "
)

// Selector chooses which PropertyGroup elements an [Editor] targets.
type Selector int

const (
	// SelectAll targets PropertyGroup elements without attributes.
	SelectAll Selector = iota
	// SelectDebug targets the Debug|AnyCPU PropertyGroup elements.
	SelectDebug
	// SelectRelease targets the Release|AnyCPU PropertyGroup elements.
	SelectRelease
)

// Selectors lists every valid [Selector].
var Selectors = []Selector{SelectAll, SelectDebug, SelectRelease}

func (s Selector) String() string {
	switch s {
	case SelectAll:
		return "All"
	case SelectDebug:
		return "Debug"
	case SelectRelease:
		return "Release"
	default:
		return fmt.Sprintf("Selector(%d)", int(s))
	}
}

// Valid reports whether s is one of [Selectors].
func (s Selector) Valid() bool {
	return s >= SelectAll && s <= SelectRelease
}

// ParseSelector parses a selector name, ignoring case.
func ParseSelector(name string) (Selector, error) {
	for _, s := range Selectors {
		if strings.EqualFold(name, s.String()) {
			return s, nil
		}
	}

	return 0, fmt.Errorf("%w: %q (expected all, debug or release)", csprojerrors.ErrInvalidSelector, name)
}
