package projfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"slices"

	"github.com/beevik/etree"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/text/encoding"

	"github.com/macropower/csprojfix/pkg/csprojerrors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Document is an open project file. It is not safe for concurrent use.
type Document struct {
	tree *etree.Document
	// enc is the declared non-UTF-8 encoding of the file, if any.
	enc        encoding.Encoding
	path       string
	bom        bool
	crlf       bool
	spaceEmpty bool
	closed     bool
}

// Open opens the file at path for reading and writing and parses it. The
// file handle is released before Open returns; the returned [Document] must
// be closed exactly once to persist it.
func Open(path string) (*Document, error) {
	logger := slog.With(slog.String("path", path))

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, openError(path, err)
	}
	defer f.Close() //nolint:errcheck // Read-only use of the handle.

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", csprojerrors.ErrAccessDenied, path, err)
	}

	d, err := Parse(path, data)
	if err != nil {
		return nil, err
	}

	logger.Debug("opened project file", slog.Int("bytes", len(data)))

	return d, nil
}

// Parse parses data as the contents of the project file at path without
// touching the filesystem. Closing the returned [Document] writes to path.
func Parse(path string, data []byte) (*Document, error) {
	d := &Document{
		path:       path,
		bom:        bytes.HasPrefix(data, utf8BOM),
		crlf:       dominantCRLF(data),
		spaceEmpty: dominantSpacedEmpty(data),
		tree:       etree.NewDocument(),
	}
	if d.bom {
		data = data[len(utf8BOM):]
	}

	d.tree.ReadSettings.PreserveCData = true
	d.tree.ReadSettings.CharsetReader = charsetReader
	d.tree.WriteSettings = etree.WriteSettings{
		CanonicalText:    true,
		CanonicalAttrVal: true,
	}

	charset, err := wellFormed(data)
	if err != nil {
		return nil, fmt.Errorf("%w in %q: %w", csprojerrors.ErrMalformedXML, path, err)
	}

	if charset != "" {
		// wellFormed has already resolved the label.
		d.enc, _ = lookupEncoding(charset)
	}

	if err := d.tree.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w in %q: %w", csprojerrors.ErrMalformedXML, path, err)
	}

	if n := len(d.tree.ChildElements()); n != 1 {
		return nil, fmt.Errorf("%w in %q: expected one root element, found %d",
			csprojerrors.ErrMalformedXML, path, n)
	}

	return d, nil
}

// Path returns the path the document was opened from.
func (d *Document) Path() string {
	return d.path
}

// Tree returns the parsed XML tree. Mutations are persisted on close.
func (d *Document) Tree() *etree.Document {
	return d.tree
}

// Root returns the document element.
func (d *Document) Root() *etree.Element {
	return d.tree.Root()
}

// WriteTo serializes the document to w. The byte order mark, the dominant
// line ending, the self-closing tag style and the declared encoding of the
// source file are kept.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	buf := &bytes.Buffer{}
	if _, err := d.tree.WriteTo(buf); err != nil {
		return 0, fmt.Errorf("serialize XML: %w", err)
	}

	out := buf.Bytes()
	if d.spaceEmpty {
		out = spaceSelfClosing(out)
	}

	if d.crlf {
		// The decoder normalizes line endings to LF.
		out = bytes.ReplaceAll(out, []byte("\n"), []byte("\r\n"))
	}

	if d.enc != nil {
		var err error

		out, err = encodeAs(d.enc, out)
		if err != nil {
			return 0, fmt.Errorf("serialize XML: %w", err)
		}
	}

	if d.bom {
		out = append(slices.Clip(utf8BOM), out...)
	}

	n, err := w.Write(out)
	if err != nil {
		return int64(n), fmt.Errorf("write XML: %w", err)
	}

	return int64(n), nil
}

// Save writes the document to its path without closing it.
func (d *Document) Save() error {
	if d.closed {
		return fmt.Errorf("%w: %q", csprojerrors.ErrClosed, d.path)
	}

	buf := &bytes.Buffer{}
	if _, err := d.WriteTo(buf); err != nil {
		return fmt.Errorf("%w %q: %w", csprojerrors.ErrWriteFile, d.path, err)
	}

	if err := writeFile(d.path, buf.Bytes()); err != nil {
		return fmt.Errorf("%w %q: %w", csprojerrors.ErrWriteFile, d.path, err)
	}

	slog.Debug("saved project file",
		slog.String("path", d.path),
		slog.Int("bytes", buf.Len()),
	)

	return nil
}

// Close saves the document and ends the session. Calling Close more than
// once returns [csprojerrors.ErrClosed].
func (d *Document) Close() error {
	if err := d.Save(); err != nil {
		return err
	}

	d.closed = true

	return nil
}

// Edit opens the file at path, calls fn, and closes the document whether or
// not fn succeeds. Errors from fn and from closing are both reported.
func Edit(path string, fn func(*Document) error) (err error) {
	d, err := Open(path)
	if err != nil {
		return err
	}

	defer func() {
		cerr := d.Close()
		if cerr == nil {
			return
		}

		if err == nil {
			err = cerr

			return
		}

		err = multierror.Append(err, cerr)
	}()

	return fn(d)
}

func openError(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w %q: %w", csprojerrors.ErrFileNotFound, path, err)
	}

	return fmt.Errorf("%w %q: %w", csprojerrors.ErrAccessDenied, path, err)
}
