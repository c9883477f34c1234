package inline

import "strings"

// isASCIIPunct reports whether b is printable ASCII punctuation, the set
// CommonMark's flanking-delimiter rules classify against.
func isASCIIPunct(b byte) bool {
	return strings.IndexByte("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~", b) >= 0
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

func isAlnum(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// byteBefore/byteAfter return 0 at the edges of text, matching CommonMark's
// treatment of the string boundary as whitespace for flanking purposes.
func byteBefore(text string, i int) byte {
	if i <= 0 {
		return 0
	}
	return text[i-1]
}

func byteAfter(text string, i int) byte {
	if i >= len(text) {
		return 0
	}
	return text[i]
}

// flanking computes CommonMark's left-/right-flanking classification for a
// delimiter run text[start:end], returning whether it can open and/or close
// emphasis (spec.md §4.4's "Emphasis resolution").
func flanking(text string, start, end int) (canOpen, canClose bool) {
	before, after := byteBefore(text, start), byteAfter(text, end)

	beforeIsSpace := before == 0 || isSpace(before)
	afterIsSpace := after == 0 || isSpace(after)
	beforeIsPunct := before != 0 && isASCIIPunct(before)
	afterIsPunct := after != 0 && isASCIIPunct(after)

	leftFlanking := !afterIsSpace && (!afterIsPunct || beforeIsSpace || beforeIsPunct)
	rightFlanking := !beforeIsSpace && (!beforeIsPunct || afterIsSpace || afterIsPunct)

	canOpen = leftFlanking
	canClose = rightFlanking
	return canOpen, canClose
}
