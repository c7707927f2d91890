package fixcmd

import (
	"fmt"
	"strings"

	"github.com/macropower/csprojfix/pkg/csprojerrors"
)

// ContractsMode controls what happens to the settings table in each file.
type ContractsMode string

const (
	ContractsNone   ContractsMode = "none"
	ContractsApply  ContractsMode = "apply"
	ContractsRemove ContractsMode = "remove"
)

// ParseContractsMode parses a mode name, ignoring case. An empty name
// selects [ContractsNone].
func ParseContractsMode(mode string) (ContractsMode, error) {
	switch m := ContractsMode(strings.ToLower(mode)); m {
	case ContractsNone, ContractsApply, ContractsRemove:
		return m, nil
	case "":
		return ContractsNone, nil
	default:
		return "", fmt.Errorf("%w: contracts mode %q (expected none, apply or remove)",
			csprojerrors.ErrInvalidArguments, mode)
	}
}
