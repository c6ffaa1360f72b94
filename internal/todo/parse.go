package todo

import (
	"unicode/utf8"
)

// Header positions, counted in characters from the start of the line.
const (
	completionDateStart = 2  // "x " YYYY-MM-DD
	completedDescStart  = 13 // "x YYYY-MM-DD "
	completedCreatedAt  = 13 // "x YYYY-MM-DD " YYYY-MM-DD
	completedFullStart  = 24 // "x YYYY-MM-DD YYYY-MM-DD "
	priorityDescStart   = 3  // "(A)"
	priorityCreatedAt   = 4  // "(A) " YYYY-MM-DD
	priorityFullStart   = 15 // "(A) YYYY-MM-DD "
	createdDescStart    = 11 // "YYYY-MM-DD "
	dateLen             = 10
)

// Parse decodes a single todo.txt line.
//
// The only failure is a completion marker without a valid completion date;
// every other irregularity is left in the description. Parse never modifies
// line and returns a new Task on every call.
func Parse(line string) (*Task, error) {
	t := &Task{
		Raw:      line,
		Projects: []string{},
		Contexts: []string{},
		Tags:     map[string]string{},
	}

	n := utf8.RuneCountInString(line)
	if n < 2 {
		t.Description = line
		return t, nil
	}

	start, err := t.parseHeader(line, n)
	if err != nil {
		return nil, &ParseError{Raw: line, Err: err}
	}
	if start >= n {
		return t, nil
	}

	t.Description = line[runeOffset(line, start):]
	t.Projects = extractTags('+', t.Description)
	t.Contexts = extractTags('@', t.Description)
	t.Tags = extractKeyValueTags(t.Description)
	return t, nil
}

// ParseBytes decodes a line held in a byte slice. A nil slice means there is
// no line at all and yields ErrInvalidArgument; an empty slice is an empty line.
func ParseBytes(line []byte) (*Task, error) {
	if line == nil {
		return nil, ErrInvalidArgument
	}
	return Parse(string(line))
}

// parseHeader fills the completion, priority and date fields and returns the
// character position where the description begins. n is the character count
// of line.
func (t *Task) parseHeader(line string, n int) (int, error) {
	start := 0

	if line[0] == 'x' && line[1] == ' ' {
		t.Completed = true

		if n < completionDateStart+dateLen {
			return 0, ErrMissingCompletionDate
		}
		done, ok := dateAt(line, completionDateStart)
		if !ok {
			return 0, ErrMissingCompletionDate
		}
		t.CompletionDate = &done
		start = completedDescStart

		if n >= completedCreatedAt+dateLen {
			if created, ok := dateAt(line, completedCreatedAt); ok {
				t.CreationDate = &created
				start = completedFullStart
			}
		}
		return start, nil
	}

	if n >= 3 && line[0] == '(' && isUpperASCII(line[1]) && line[2] == ')' {
		t.Priority = line[1:2]
		start = priorityDescStart
	}

	if t.Priority != "" && n >= priorityCreatedAt+dateLen {
		if created, ok := dateAt(line, priorityCreatedAt); ok {
			t.CreationDate = &created
			start = priorityFullStart
		}
	} else if n >= dateLen {
		if created, ok := dateAt(line, 0); ok {
			t.CreationDate = &created
			start = createdDescStart
		}
	}

	return start, nil
}

// dateAt parses the ten characters starting at character position pos.
func dateAt(line string, pos int) (Date, bool) {
	from := runeOffset(line, pos)
	to := runeOffset(line[from:], dateLen)
	return ParseDate(line[from : from+to])
}

// runeOffset returns the byte offset of the n-th character of s, or len(s)
// when s has fewer than n characters.
func runeOffset(s string, n int) int {
	off := 0
	for i := 0; i < n && off < len(s); i++ {
		if s[off] < utf8.RuneSelf {
			off++
			continue
		}
		_, size := utf8.DecodeRuneInString(s[off:])
		off += size
	}
	return off
}

func isUpperASCII(c byte) bool {
	return c >= 'A' && c <= 'Z'
}
