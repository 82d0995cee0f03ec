// Package docloader turns uploaded document bytes into text.
package docloader

import (
	"io"
	"strings"
	"unicode/utf8"
)

// Decode converts raw document bytes to a UTF-8 string. Invalid byte
// sequences are replaced with U+FFFD rather than reported; decoding always
// yields some string.
func Decode(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	var b strings.Builder
	b.Grow(len(data))
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			b.WriteRune(utf8.RuneError)
		} else {
			b.Write(data[:size])
		}
		data = data[size:]
	}
	return b.String()
}

// DecodeReader reads r to the end and decodes it like Decode. The only
// possible error is a read failure; decoding itself never fails.
func DecodeReader(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return Decode(data), nil
}
