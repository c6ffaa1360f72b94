package todo

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const keyValueSeparator = ':'

// extractTags returns the words introduced by prefix, in order of appearance.
//
// A prefix counts when it sits at the start of the scan window or right after
// a space. The window starts at the beginning of desc and moves to just past
// every prefix character examined, valid or not. A tag runs to the next space
// or to the end of desc; a bare prefix yields an empty tag.
func extractTags(prefix byte, desc string) []string {
	tags := []string{}
	window := 0
	for {
		rel := strings.IndexByte(desc[window:], prefix)
		if rel < 0 {
			return tags
		}
		i := window + rel
		window = i + 1

		if rel > 0 && desc[i-1] != ' ' {
			continue
		}

		end := strings.IndexByte(desc[window:], ' ')
		if end < 0 {
			tags = append(tags, desc[window:])
		} else {
			tags = append(tags, desc[window:window+end])
		}
	}
}

// extractKeyValueTags returns the key:value pairs found in desc.
//
// A colon is a separator unless it starts the scan window, follows
// whitespace, or is followed by another colon. The key runs back to the
// previous whitespace (never past the window start) and the value runs
// forward to the next whitespace. A colon with no value is skipped. Later
// keys overwrite earlier ones.
func extractKeyValueTags(desc string) map[string]string {
	tags := map[string]string{}
	window := 0
	for {
		rel := strings.IndexByte(desc[window:], keyValueSeparator)
		if rel < 0 {
			return tags
		}
		i := window + rel

		if rel == 0 || precededBySpace(desc[window:i]) ||
			(i < len(desc)-1 && desc[i+1] == keyValueSeparator) {
			window = i + 1
			continue
		}

		keyStart := i
		for keyStart > window {
			r, size := utf8.DecodeLastRuneInString(desc[window:keyStart])
			if unicode.IsSpace(r) {
				break
			}
			keyStart -= size
		}

		valueEnd := i + 1
		for valueEnd < len(desc) {
			r, size := utf8.DecodeRuneInString(desc[valueEnd:])
			if unicode.IsSpace(r) {
				break
			}
			valueEnd += size
		}

		if valueEnd == i+1 {
			window = i + 1
			continue
		}

		tags[desc[keyStart:i]] = desc[i+1 : valueEnd]
		window = valueEnd
	}
}

func precededBySpace(s string) bool {
	r, _ := utf8.DecodeLastRuneInString(s)
	return unicode.IsSpace(r)
}
