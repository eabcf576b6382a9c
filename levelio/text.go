package levelio

import (
	"bytes"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var latin1 = charmap.ISO8859_1

// decodeString reads a NUL padded latin-1 field.
func decodeString(bs []byte) string {
	if n := bytes.IndexByte(bs, 0); n >= 0 {
		bs = bs[:n]
	}
	s, _, err := transform.Bytes(latin1.NewDecoder(), bs)
	if err != nil {
		return string(bs)
	}
	return string(s)
}

// encodeString renders s into a size byte field, truncated to leave room
// for the terminating NUL. Runes outside latin-1 become '?'.
func encodeString(s string, size int) []byte {
	out := make([]byte, size)
	s = strings.Map(func(r rune) rune {
		if r > 0xFF {
			return '?'
		}
		return r
	}, s)
	bs, _, err := transform.Bytes(latin1.NewEncoder(), []byte(s))
	if err != nil {
		bs = []byte(s)
	}
	copy(out[:size-1], bs)
	return out
}
