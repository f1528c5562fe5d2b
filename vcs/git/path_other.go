//go:build !unix

package git

import "unicode/utf8"

// bytesToPath interprets raw bytes as a path. Paths must be valid UTF-8 text here.
func bytesToPath(raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", errInvalidUTF8
	}
	return string(raw), nil
}
