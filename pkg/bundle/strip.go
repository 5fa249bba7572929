package bundle

import (
	"bytes"
)

// StripEmptyLines drops lines that are exactly empty. Whitespace-only lines
// are kept. "\n" and "\r\n" both end a line, and every kept line is written
// back with a "\n" terminator.
func StripEmptyLines(content []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(len(content))
	for _, line := range bytes.Split(content, []byte("\n")) {
		line = bytes.TrimSuffix(line, []byte("\r"))
		if len(line) == 0 {
			continue
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
