package projfile_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/csprojfix/pkg/csprojerrors"
	"github.com/macropower/csprojfix/pkg/projfile"
)

const simpleProject = `<?xml version="1.0" encoding="utf-8"?>
<Project xmlns="http://schemas.microsoft.com/developer/msbuild/2003">
  <!-- build settings -->
  <PropertyGroup Condition=" '$(Configuration)|$(Platform)' == 'Debug|AnyCPU' ">
    <DefineConstants>DEBUG;TRACE</DefineConstants>
    <LangVersion>5</LangVersion>
  </PropertyGroup>
  <Target Name="Check">
    <Message Text="a &amp; b"/>
    <Message Text="x">1 &lt; 2</Message>
    <Exec Command="echo"><![CDATA[raw <text>]]></Exec>
  </Target>
</Project>
`

// spacedProject uses Visual Studio's `<Tag />` style for empty elements.
const spacedProject = `<?xml version="1.0" encoding="utf-8"?>
<Project xmlns="http://schemas.microsoft.com/developer/msbuild/2003">
  <!-- keep <Foo/> as written -->
  <Import Project="a.props" />
  <Import Project="b.props" Condition="Exists('b/>')" />
  <ItemGroup>
    <None Include="App.config" />
  </ItemGroup>
</Project>
`

// legacyProject declares charset and stores "Café" in that charset.
func legacyProject(charset string) string {
	return `<?xml version="1.0" encoding="` + charset + `"?>
<Project xmlns="http://schemas.microsoft.com/developer/msbuild/2003">
  <PropertyGroup>
    <Company>Caf` + "\xE9" + `</Company>
  </PropertyGroup>
</Project>
`
}

func writeProject(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "project.csproj")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	return path
}

func TestOpen(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		err      error
		contents *string
		dir      bool
	}{
		"valid": {
			contents: ptr(simpleProject),
		},
		"missing file": {
			err: csprojerrors.ErrFileNotFound,
		},
		"directory": {
			dir: true,
			err: csprojerrors.ErrAccessDenied,
		},
		"mismatched end tag": {
			contents: ptr(`<Project><PropertyGroup></Project>`),
			err:      csprojerrors.ErrMalformedXML,
		},
		"not xml": {
			contents: ptr(`<Project attr=>`),
			err:      csprojerrors.ErrMalformedXML,
		},
		"empty file": {
			contents: ptr(""),
			err:      csprojerrors.ErrMalformedXML,
		},
		"windows-1252": {
			contents: ptr(legacyProject("windows-1252")),
		},
		"iso-8859-1": {
			contents: ptr(legacyProject("iso-8859-1")),
		},
		"us-ascii": {
			contents: ptr(legacyProject("us-ascii")),
		},
		"upper case utf-8": {
			contents: ptr(strings.Replace(simpleProject, "utf-8", "UTF-8", 1)),
		},
		"unknown charset": {
			contents: ptr(legacyProject("x-no-such-charset")),
			err:      csprojerrors.ErrMalformedXML,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "project.csproj")

			switch {
			case tc.dir:
				require.NoError(t, os.Mkdir(path, 0o750))
			case tc.contents != nil:
				require.NoError(t, os.WriteFile(path, []byte(*tc.contents), 0o600))
			}

			doc, err := projfile.Open(path)
			if tc.err != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Project", doc.Root().Tag)
			assert.Equal(t, path, doc.Path())
			require.NoError(t, doc.Close())
		})
	}
}

func TestOpenReadOnlyFile(t *testing.T) {
	t.Parallel()

	if os.Geteuid() == 0 {
		t.Skip("root bypasses file permissions")
	}

	path := writeProject(t, simpleProject)
	require.NoError(t, os.Chmod(path, 0o400))

	_, err := projfile.Open(path)
	require.ErrorIs(t, err, csprojerrors.ErrAccessDenied)
}

func TestCloseWritesTree(t *testing.T) {
	t.Parallel()

	path := writeProject(t, simpleProject)

	doc, err := projfile.Open(path)
	require.NoError(t, err)

	doc.Root().CreateAttr("ToolsVersion", "14.0")
	require.NoError(t, doc.Close())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(got), `<Project xmlns="http://schemas.microsoft.com/developer/msbuild/2003" ToolsVersion="14.0">`)

	err = doc.Close()
	require.ErrorIs(t, err, csprojerrors.ErrClosed)

	err = doc.Save()
	require.ErrorIs(t, err, csprojerrors.ErrClosed)
}

func TestCloseKeepsPermissions(t *testing.T) {
	t.Parallel()

	path := writeProject(t, simpleProject)
	require.NoError(t, os.Chmod(path, 0o640))

	doc, err := projfile.Open(path)
	require.NoError(t, err)
	require.NoError(t, doc.Close())

	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), fi.Mode().Perm())
}

func TestRoundTripPreservesLayout(t *testing.T) {
	t.Parallel()

	crlf := "\xEF\xBB\xBF" + string(bytes.ReplaceAll([]byte(simpleProject), []byte("\n"), []byte("\r\n")))

	tcs := map[string]struct {
		input string
	}{
		"lf":                {input: simpleProject},
		"crlf bom":          {input: crlf},
		"spaced empty tags": {input: spacedProject},
		"windows-1252":      {input: legacyProject("windows-1252")},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := writeProject(t, tc.input)

			doc, err := projfile.Open(path)
			require.NoError(t, err)
			require.NoError(t, doc.Close())

			got, err := os.ReadFile(path)
			require.NoError(t, err)

			if diff := cmp.Diff(tc.input, string(got)); diff != "" {
				t.Errorf("round trip changed the file (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLineEndingsFollowMajority(t *testing.T) {
	t.Parallel()

	allCRLF := strings.ReplaceAll(simpleProject, "\n", "\r\n")

	tcs := map[string]struct {
		input string
		want  string
	}{
		"mostly lf": {
			input: strings.Replace(simpleProject, "\n", "\r\n", 1),
			want:  simpleProject,
		},
		"mostly crlf": {
			input: strings.TrimSuffix(allCRLF, "\r\n") + "\n",
			want:  allCRLF,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := writeProject(t, tc.input)

			doc, err := projfile.Open(path)
			require.NoError(t, err)
			require.NoError(t, doc.Close())

			got, err := os.ReadFile(path)
			require.NoError(t, err)

			if diff := cmp.Diff(tc.want, string(got)); diff != "" {
				t.Errorf("line endings (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLegacyEncoding(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		charset string
	}{
		"windows-1252": {charset: "windows-1252"},
		"iso-8859-1":   {charset: "iso-8859-1"},
		"us-ascii":     {charset: "us-ascii"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := writeProject(t, legacyProject(tc.charset))

			err := projfile.Edit(path, func(doc *projfile.Document) error {
				company := doc.Root().FindElement("//Company")
				require.NotNil(t, company)
				assert.Equal(t, "Café", company.Text())

				company.SetText("naïve ✓")

				return nil
			})
			require.NoError(t, err)

			got, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Contains(t, string(got), `encoding="`+tc.charset+`"`)
			// ï fits in the code page, ✓ does not.
			assert.Contains(t, string(got), "<Company>na\xEFve &#10003;</Company>")

			doc, err := projfile.Open(path)
			require.NoError(t, err)
			assert.Equal(t, "naïve ✓", doc.Root().FindElement("//Company").Text())
			require.NoError(t, doc.Close())
		})
	}
}

func TestEdit(t *testing.T) {
	t.Parallel()

	errEdit := errors.New("edit failed")

	tcs := map[string]struct {
		fnErr error
	}{
		"success":      {},
		"edit failure": {fnErr: errEdit},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := writeProject(t, simpleProject)

			err := projfile.Edit(path, func(doc *projfile.Document) error {
				doc.Root().CreateAttr("DefaultTargets", "Build")

				return tc.fnErr
			})
			if tc.fnErr != nil {
				require.ErrorIs(t, err, tc.fnErr)
			} else {
				require.NoError(t, err)
			}

			// The document is persisted on both paths.
			got, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Contains(t, string(got), `DefaultTargets="Build"`)
		})
	}
}

func TestEditMissingFile(t *testing.T) {
	t.Parallel()

	called := false
	err := projfile.Edit(filepath.Join(t.TempDir(), "missing.csproj"), func(*projfile.Document) error {
		called = true

		return nil
	})
	require.ErrorIs(t, err, csprojerrors.ErrFileNotFound)
	assert.False(t, called)
}

func TestParse(t *testing.T) {
	t.Parallel()

	doc, err := projfile.Parse("in-memory.csproj", []byte(simpleProject))
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	_, err = doc.WriteTo(buf)
	require.NoError(t, err)
	assert.Equal(t, simpleProject, buf.String())
}

func ptr[T any](v T) *T {
	return &v
}
