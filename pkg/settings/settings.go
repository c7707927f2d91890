package settings

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/macropower/csprojfix/pkg/csprojerrors"
)

//go:embed codecontracts.yaml
var codeContractsYAML []byte

// Element names accepted in a table: an XML name without a namespace prefix.
var nameRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.\-]*$`)

var codeContracts = sync.OnceValues(func() (Table, error) {
	return Parse(codeContractsYAML)
})

// Setting is a single element name and its text value.
type Setting struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// Table is an ordered list of settings.
type Table []Setting

type tableFile struct {
	Settings Table `yaml:"settings"`
}

// CodeContracts returns the built-in Code Contracts table.
func CodeContracts() Table {
	t, err := codeContracts()
	if err != nil {
		panic(fmt.Errorf("embedded code contracts table: %w", err))
	}

	return slices.Clone(t)
}

// Load reads and validates a table from a YAML file.
func Load(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings %q: %w", path, err)
	}

	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", path, err)
	}

	return t, nil
}

// Parse decodes and validates a table from YAML. Unknown keys are rejected.
// An empty document yields an empty, non-nil table.
func Parse(data []byte) (Table, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f tableFile
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: decode settings: %w", csprojerrors.ErrInvalidFormat, err)
	}

	if err := f.Settings.Validate(); err != nil {
		return nil, err
	}

	if f.Settings == nil {
		return Table{}, nil
	}

	return f.Settings, nil
}

// Validate checks that every name can be written as an element and that no
// name appears twice.
func (t Table) Validate() error {
	seen := make(map[string]struct{}, len(t))

	for i, s := range t {
		if err := ValidateName(s.Name); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}

		if _, ok := seen[s.Name]; ok {
			return fmt.Errorf("%w: duplicate name %q", csprojerrors.ErrInvalidSetting, s.Name)
		}

		seen[s.Name] = struct{}{}
	}

	return nil
}

// Names returns the setting names in table order.
func (t Table) Names() []string {
	names := make([]string, 0, len(t))
	for _, s := range t {
		names = append(names, s.Name)
	}

	return names
}

// ValidateName reports whether name is usable as an unprefixed element name.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", csprojerrors.ErrInvalidSetting)
	}

	if !nameRegexp.MatchString(name) {
		return fmt.Errorf("%w: %q is not a valid element name", csprojerrors.ErrInvalidSetting, name)
	}

	return nil
}
