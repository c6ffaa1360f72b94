// Package utils holds small string helpers shared by the CLI and the
// validator.
package utils

import (
	"strconv"
	"strings"
)

// SplitAndTrim splits a flag value such as "home, +work" on sep and trims
// each entry. Blank entries are dropped, so the result may be empty but is
// never nil.
func SplitAndTrim(s, sep string) []string {
	result := []string{}
	for part := range strings.SplitSeq(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

var pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")

// JSONPointerToPath renders the JSON Pointer of a schema error inside a task
// document as a field path: "/tags/due" becomes "tags.due" and
// "#/projects/0" becomes "projects[0]".
func JSONPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(strings.TrimPrefix(ptr, "#"), "/")

	var b strings.Builder
	for token := range strings.SplitSeq(ptr, "/") {
		token = pointerUnescaper.Replace(token)
		if token == "" {
			continue
		}
		if idx, err := strconv.Atoi(token); err == nil {
			b.WriteString("[" + strconv.Itoa(idx) + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(token)
	}
	return b.String()
}
