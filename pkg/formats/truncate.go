package formats

import "unicode/utf8"

// MaxDisplayLength is the cap applied to link labels by every built-in format.
const MaxDisplayLength = 500

// Ellipsis marks text shortened by Truncate.
const Ellipsis = "..."

// Truncate caps text at maxLength runes. Longer text keeps its first
// maxLength-3 runes followed by Ellipsis, so the result is exactly maxLength
// runes long. Text that already fits is returned as is.
//
// When maxLength is too small to hold the marker the text is cut to maxLength
// runes without one; a negative maxLength is treated as zero.
func Truncate(text string, maxLength int) string {
	if maxLength < 0 {
		maxLength = 0
	}
	if utf8.RuneCountInString(text) <= maxLength {
		return text
	}

	markerLen := utf8.RuneCountInString(Ellipsis)
	if maxLength < markerLen {
		return prefixRunes(text, maxLength)
	}
	return prefixRunes(text, maxLength-markerLen) + Ellipsis
}

func prefixRunes(text string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for offset := range text {
		if i == n {
			return text[:offset]
		}
		i++
	}
	return text
}
