package util

// TruncateBytes shortens b to n bytes for log output.
func TruncateBytes(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}
