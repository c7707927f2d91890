package projfile

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
)

// wellFormed runs a strict decode over data. The tree parser works on raw
// tokens, so it is not relied on to reject mismatched or unclosed elements.
// It returns the charset label of the XML declaration, or "" for UTF-8.
func wellFormed(data []byte) (string, error) {
	var charset string

	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = true
	dec.CharsetReader = func(label string, input io.Reader) (io.Reader, error) {
		charset = label

		return charsetReader(label, input)
	}

	for {
		_, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return charset, nil
		}

		if err != nil {
			return "", err //nolint:wrapcheck // Wrapped by the caller.
		}
	}
}
