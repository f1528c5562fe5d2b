//go:build unix

package git

// bytesToPath interprets raw bytes as a path. Unix paths are arbitrary byte sequences.
func bytesToPath(raw []byte) (string, error) {
	return string(raw), nil
}
