//go:build !linux

package logger

import "os"

// IsTerminal reports whether f is a character device, which is the best
// guess available without termios.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	st, err := f.Stat()
	if err != nil {
		return false
	}
	return st.Mode()&os.ModeCharDevice != 0
}
