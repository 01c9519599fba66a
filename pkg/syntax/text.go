package syntax

import (
	"strings"
)

// LineStart returns the offset of the first byte of the line containing pos.
func LineStart(src []byte, pos uint) uint {
	for pos > 0 && src[pos-1] != '\n' {
		pos--
	}
	return pos
}

// LineEnd returns the offset of the newline ending the line containing pos,
// or len(src) on the last line.
func LineEnd(src []byte, pos uint) uint {
	for pos < uint(len(src)) && src[pos] != '\n' {
		pos++
	}
	return pos
}

// IndentAt returns the leading whitespace of the line containing pos.
func IndentAt(src []byte, pos uint) string {
	start := LineStart(src, pos)
	end := start
	for end < uint(len(src)) && (src[end] == ' ' || src[end] == '\t') {
		end++
	}
	return string(src[start:end])
}

func isBlank(b []byte) bool {
	return strings.TrimSpace(string(b)) == ""
}

// ExpandToLines widens [start, end) to whole lines when nothing but
// whitespace shares those lines with the range. When the removed lines
// sit between two blank lines (or a blank line and the end of the file)
// one of the blank lines is taken as well.
func ExpandToLines(src []byte, start, end uint) (uint, uint) {
	ls := LineStart(src, start)
	le := LineEnd(src, end)
	if !isBlank(src[ls:start]) || !isBlank(src[end:le]) {
		return start, end
	}
	if le < uint(len(src)) {
		le++
	}

	prevBlank := ls == 0 || isBlank(src[LineStart(src, ls-1):ls])
	switch {
	case !prevBlank:
	case le < uint(len(src)):
		next := LineEnd(src, le)
		if isBlank(src[le:next]) {
			if next < uint(len(src)) {
				next++
			}
			le = next
		}
	case ls > 0:
		// Last statement of the file: drop the blank line before it.
		ls = LineStart(src, ls-1)
	}
	return ls, le
}

// DetectIndent returns the indentation unit used by src: a tab, or the
// smallest run of leading spaces. Defaults to two spaces.
func DetectIndent(src []byte) string {
	smallest := 0
	for _, line := range strings.Split(string(src), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if line[0] == '\t' {
			return "\t"
		}
		n := len(line) - len(strings.TrimLeft(line, " "))
		if n > 0 && (smallest == 0 || n < smallest) {
			smallest = n
		}
	}
	if smallest == 0 {
		return "  "
	}
	return strings.Repeat(" ", smallest)
}

// Reindent moves a multi-line snippet from one base indentation to another.
// The first line is left alone since it continues whatever precedes it;
// every later line loses the from prefix (when present) and gains to.
func Reindent(text, from, to string) string {
	if from == to || !strings.Contains(text, "\n") {
		return text
	}
	lines := strings.Split(text, "\n")
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			lines[i] = ""
			continue
		}
		lines[i] = to + strings.TrimPrefix(lines[i], from)
	}
	return strings.Join(lines, "\n")
}
