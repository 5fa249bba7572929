package bundle

import (
	"bytes"
)

// sniffSize is how much of a file is inspected by looksBinary.
const sniffSize = 512

// looksBinary reports whether content is likely not text: it holds a NUL
// byte or more than 30% non-printable bytes in its first sniffSize bytes.
func looksBinary(content []byte) bool {
	if len(content) > sniffSize {
		content = content[:sniffSize]
	}
	if len(content) == 0 {
		return false
	}
	if bytes.IndexByte(content, 0) >= 0 {
		return true
	}

	nonPrintable := 0
	for _, b := range content {
		if !isPrintable(b) {
			nonPrintable++
		}
	}
	return float64(nonPrintable)/float64(len(content)) > 0.3
}

// isPrintable accepts printable ASCII, whitespace controls and UTF-8 bytes.
func isPrintable(b byte) bool {
	return (b >= 32 && b <= 126) || b == '\n' || b == '\r' || b == '\t' || b >= 0x80
}
