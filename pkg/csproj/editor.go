package csproj

import (
	"fmt"
	"log/slog"

	"github.com/beevik/etree"

	"github.com/macropower/csprojfix/pkg/csprojerrors"
	"github.com/macropower/csprojfix/pkg/projfile"
	"github.com/macropower/csprojfix/pkg/settings"
)

const (
	PropertyGroupTag   = "PropertyGroup"
	ConditionAttr      = "Condition"
	LangVersionTag     = "LangVersion"
	DefaultLangVersion = "default"
)

// Editor reads and edits the settings of one open project file.
type Editor struct {
	doc *projfile.Document

	// Selector chooses the PropertyGroup elements subsequent calls target.
	Selector Selector
}

type EditorOpts func(*Editor)

// WithSelector sets the initial [Selector]. The default is [SelectDebug].
func WithSelector(s Selector) EditorOpts {
	return func(e *Editor) {
		e.Selector = s
	}
}

// NewEditor creates an [Editor] over an open document.
func NewEditor(doc *projfile.Document, opts ...EditorOpts) *Editor {
	e := &Editor{
		doc:      doc,
		Selector: SelectDebug,
	}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Open opens the project file at path and returns an [Editor] for it. The
// caller must call [Editor.Close] to persist the file.
func Open(path string, opts ...EditorOpts) (*Editor, error) {
	doc, err := projfile.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open project: %w", err)
	}

	return NewEditor(doc, opts...), nil
}

// Edit opens the project file at path, calls fn with an [Editor], and saves
// the file afterwards even if fn fails.
func Edit(path string, fn func(*Editor) error, opts ...EditorOpts) error {
	return projfile.Edit(path, func(doc *projfile.Document) error {
		return fn(NewEditor(doc, opts...))
	})
}

// Close saves the project file. It must be called exactly once.
func (e *Editor) Close() error {
	return e.doc.Close()
}

// Document returns the underlying document.
func (e *Editor) Document() *projfile.Document {
	return e.doc
}

// SelectGroups returns the PropertyGroup elements matching s, in document
// order. The result may be empty.
func (e *Editor) SelectGroups(s Selector) ([]*etree.Element, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %s", csprojerrors.ErrInvalidSelector, s)
	}

	var groups []*etree.Element

	for _, g := range descendants(e.doc.Root(), PropertyGroupTag) {
		if matches(g, s) {
			groups = append(groups, g)
		}
	}

	return groups, nil
}

// LangVersion returns the LangVersion of the first selected group, or
// [DefaultLangVersion] if the group does not set one.
func (e *Editor) LangVersion() (string, error) {
	v, ok, err := e.Setting(LangVersionTag)
	if err != nil {
		return "", err
	}

	if !ok {
		return DefaultLangVersion, nil
	}

	return v, nil
}

// SetLangVersion sets LangVersion in every selected group, creating the
// element where it is missing.
func (e *Editor) SetLangVersion(version string) error {
	return e.SetSetting(LangVersionTag, version)
}

// Setting returns the text of the named setting in the first selected group.
// The boolean reports whether the group has the setting.
func (e *Editor) Setting(name string) (string, bool, error) {
	groups, err := e.groups()
	if err != nil {
		return "", false, err
	}

	el := firstChild(groups[0], name)
	if el == nil {
		return "", false, nil
	}

	return innerText(el), true, nil
}

// SetSetting sets the named setting in every selected group.
func (e *Editor) SetSetting(name, value string) error {
	return e.ApplySettings(settings.Table{{Name: name, Value: value}})
}

// ApplySettings creates or updates every setting of t, in order, in every
// selected group.
func (e *Editor) ApplySettings(t settings.Table) error {
	if err := t.Validate(); err != nil {
		return err
	}

	groups, err := e.groups()
	if err != nil {
		return err
	}

	root := e.doc.Root()

	for _, g := range groups {
		for _, s := range t {
			if el := firstChild(g, s.Name); el != nil {
				setInnerText(el, s.Value)

				continue
			}

			newSetting(root, g, s.Name, s.Value)
		}
	}

	slog.Debug("applied settings",
		slog.String("path", e.doc.Path()),
		slog.String("selector", e.Selector.String()),
		slog.Int("groups", len(groups)),
		slog.Int("settings", len(t)),
	)

	return nil
}

// RemoveSettings deletes every element named in t from every selected
// group. Names that are absent are ignored.
func (e *Editor) RemoveSettings(t settings.Table) error {
	if err := t.Validate(); err != nil {
		return err
	}

	groups, err := e.groups()
	if err != nil {
		return err
	}

	removed := 0

	for _, g := range groups {
		for _, s := range t {
			for _, el := range children(g, s.Name) {
				removeIndented(el)

				removed++
			}
		}
	}

	slog.Debug("removed settings",
		slog.String("path", e.doc.Path()),
		slog.String("selector", e.Selector.String()),
		slog.Int("groups", len(groups)),
		slog.Int("removed", removed),
	)

	return nil
}

// groups returns the groups for the current selector, failing if there are
// none.
func (e *Editor) groups() ([]*etree.Element, error) {
	groups, err := e.SelectGroups(e.Selector)
	if err != nil {
		return nil, err
	}

	if len(groups) == 0 {
		return nil, fmt.Errorf("%w for %s configuration in %q",
			csprojerrors.ErrNoMatchingGroup, e.Selector, e.doc.Path())
	}

	return groups, nil
}

func matches(g *etree.Element, s Selector) bool {
	switch s {
	case SelectAll:
		return len(g.Attr) == 0
	case SelectDebug:
		return hasOnlyCondition(g, DebugCondition)
	case SelectRelease:
		return hasOnlyCondition(g, ReleaseCondition)
	default:
		return false
	}
}

func hasOnlyCondition(g *etree.Element, condition string) bool {
	if len(g.Attr) != 1 {
		return false
	}

	a := g.Attr[0]

	return a.Space == "" && a.Key == ConditionAttr && a.Value == condition
}
