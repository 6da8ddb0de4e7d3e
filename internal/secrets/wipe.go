package secrets

// Wipe overwrites the contents of the provided byte slice with zeros.
// Callers use it to remove passwords from memory once the single call
// that needed them has run.
//
// If the slice is nil, the function does nothing.
func Wipe(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}
