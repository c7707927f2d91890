package projfile

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
)

var errUnsupportedCharset = errors.New("unsupported charset")

// lookupEncoding resolves the label of an XML encoding declaration, first as
// a WHATWG label and then as an IANA name.
func lookupEncoding(label string) (encoding.Encoding, error) {
	if enc, err := htmlindex.Get(label); err == nil {
		return enc, nil
	}

	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("%w %q", errUnsupportedCharset, label)
	}

	return enc, nil
}

// charsetReader decodes non-UTF-8 input to UTF-8 for encoding/xml and etree.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := lookupEncoding(label)
	if err != nil {
		return nil, err
	}

	return enc.NewDecoder().Reader(input), nil
}

// encodeAs converts UTF-8 data to enc. Characters enc cannot represent are
// written as numeric character references.
func encodeAs(enc encoding.Encoding, data []byte) ([]byte, error) {
	out, err := encoding.HTMLEscapeUnsupported(enc.NewEncoder()).Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}

	return out, nil
}
