package common

// WipeByteArray overwrites b with zeros. Used for passwords read from the
// terminal once they have been handed to the session layer. Nil-safe.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
