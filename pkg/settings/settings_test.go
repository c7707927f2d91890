package settings_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/csprojfix/pkg/csprojerrors"
	"github.com/macropower/csprojfix/pkg/settings"
)

func TestCodeContracts(t *testing.T) {
	t.Parallel()

	table := settings.CodeContracts()
	require.Len(t, table, 43)
	require.NoError(t, table.Validate())

	assert.Equal(t, settings.Setting{Name: "CodeContractsEnableRuntimeChecking", Value: "True"}, table[0])
	assert.Equal(t, settings.Setting{Name: "CodeContractsAnalysisWarningLevel", Value: "0"}, table[len(table)-1])

	byName := map[string]string{}
	for _, s := range table {
		byName[s.Name] = s.Value
	}

	assert.Equal(t, "", byName["CodeContractsLibPaths"])
	assert.Equal(t, "Full", byName["CodeContractsRuntimeCheckingLevel"])
	assert.Equal(t, "Build", byName["CodeContractsReferenceAssembly"])
	assert.Contains(t, byName, "CodeContractsEmitXMLDocs")
	assert.Contains(t, byName, "CodeContractsSQLServerOption")

	// Callers get their own copy.
	table[0].Value = "False"
	assert.Equal(t, "True", settings.CodeContracts()[0].Value)
}

func TestParse(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  settings.Table
		err   error
	}{
		"valid": {
			input: `
settings:
  - name: Nullable
    value: enable
  - name: TreatWarningsAsErrors
    value: "True"
`,
			want: settings.Table{
				{Name: "Nullable", Value: "enable"},
				{Name: "TreatWarningsAsErrors", Value: "True"},
			},
		},
		"empty document": {
			input: "",
			want:  settings.Table{},
		},
		"empty value": {
			input: "settings:\n  - name: CodeContractsLibPaths\n    value: \"\"\n",
			want:  settings.Table{{Name: "CodeContractsLibPaths", Value: ""}},
		},
		"unknown key": {
			input: "settings:\n  - name: A\n    val: b\n",
			err:   csprojerrors.ErrInvalidFormat,
		},
		"empty name": {
			input: "settings:\n  - value: b\n",
			err:   csprojerrors.ErrInvalidSetting,
		},
		"invalid name": {
			input: "settings:\n  - name: \"Lang Version\"\n    value: b\n",
			err:   csprojerrors.ErrInvalidSetting,
		},
		"prefixed name": {
			input: "settings:\n  - name: \"x:LangVersion\"\n    value: b\n",
			err:   csprojerrors.ErrInvalidSetting,
		},
		"duplicate name": {
			input: "settings:\n  - name: A\n    value: b\n  - name: A\n    value: c\n",
			err:   csprojerrors.ErrInvalidSetting,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := settings.Parse([]byte(tc.input))
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("settings:\n  - name: Deterministic\n    value: \"true\"\n"), 0o600))

	table, err := settings.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Deterministic"}, table.Names())

	_, err = settings.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
