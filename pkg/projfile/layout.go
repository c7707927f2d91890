package projfile

import "bytes"

// dominantCRLF reports whether most line breaks in data are CRLF.
func dominantCRLF(data []byte) bool {
	crlf := bytes.Count(data, []byte("\r\n"))
	lf := bytes.Count(data, []byte("\n")) - crlf

	return crlf > lf
}

// dominantSpacedEmpty reports whether most "/>" sequences in data are
// preceded by a space, as in Visual Studio's `<Import Project="a" />`.
func dominantSpacedEmpty(data []byte) bool {
	spaced := bytes.Count(data, []byte(" />"))
	unspaced := bytes.Count(data, []byte("/>")) - spaced

	return spaced > 0 && spaced >= unspaced
}

var (
	commentStart = []byte("<!--")
	commentEnd   = []byte("-->")
	cdataStart   = []byte("<![CDATA[")
	cdataEnd     = []byte("]]>")
	procInstEnd  = []byte("?>")
)

// spaceSelfClosing rewrites `<tag/>` as `<tag />` in serialized XML. Comments,
// CDATA sections, processing instructions and attribute values are copied
// unchanged.
func spaceSelfClosing(data []byte) []byte {
	out := make([]byte, 0, len(data)+len(data)/32)

	for i := 0; i < len(data); {
		rest := data[i:]

		var end int

		switch {
		case bytes.HasPrefix(rest, commentStart):
			end = skipPast(rest, commentEnd)
		case bytes.HasPrefix(rest, cdataStart):
			end = skipPast(rest, cdataEnd)
		case bytes.HasPrefix(rest, []byte("<?")):
			end = skipPast(rest, procInstEnd)
		case bytes.HasPrefix(rest, []byte("<!")):
			end = skipPast(rest, []byte(">"))
		case rest[0] == '<':
			out, end = appendTag(out, rest)
			i += end

			continue
		default:
			end = 1
		}

		out = append(out, rest[:end]...)
		i += end
	}

	return out
}

// appendTag copies the tag at the start of data to out, spacing a
// self-closing end, and returns the number of bytes consumed.
func appendTag(out, data []byte) ([]byte, int) {
	var quote byte

	for i := 0; i < len(data); i++ {
		c := data[i]

		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '/' && i+1 < len(data) && data[i+1] == '>':
			if len(out) > 0 && out[len(out)-1] != ' ' {
				out = append(out, ' ')
			}

			return append(out, '/', '>'), i + 2
		case c == '>':
			return append(out, c), i + 1
		}

		out = append(out, c)
	}

	return out, len(data)
}

func skipPast(data, sep []byte) int {
	if i := bytes.Index(data, sep); i >= 0 {
		return i + len(sep)
	}

	return len(data)
}
