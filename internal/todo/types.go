// Package todo decodes todo.txt task lines.
package todo

import (
	"fmt"
	"time"
)

// DateLayout is the only date format todo.txt recognises.
const DateLayout = "2006-01-02"

// Date is a calendar date without a time component.
type Date struct {
	time.Time
}

// NewDate returns the date for the given year, month and day in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses s as a YYYY-MM-DD date. It reports false when s does not
// match the fixed ten character pattern or does not name a real calendar day.
// Year 0000 is not a calendar year.
func ParseDate(s string) (Date, bool) {
	if len(s) != len(DateLayout) {
		return Date{}, false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if i == 4 || i == 7 {
			if c != '-' {
				return Date{}, false
			}
			continue
		}
		if c < '0' || c > '9' {
			return Date{}, false
		}
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil || t.Year() < 1 {
		return Date{}, false
	}
	return Date{t}, true
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// MarshalJSON encodes the date as a YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a YYYY-MM-DD string.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("date must be a JSON string, got %s", s)
	}
	parsed, ok := ParseDate(s[1 : len(s)-1])
	if !ok {
		return fmt.Errorf("invalid date %s", s)
	}
	*d = parsed
	return nil
}

// MarshalYAML encodes the date as a YYYY-MM-DD scalar.
func (d Date) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

// Task is one decoded todo.txt line.
//
// A Task is produced by Parse and is not meant to be modified afterwards.
// Decoding Raw again always yields an equal Task.
type Task struct {
	Raw            string            `json:"raw" yaml:"raw"`
	Completed      bool              `json:"completed" yaml:"completed"`
	Priority       string            `json:"priority,omitempty" yaml:"priority,omitempty"`
	CompletionDate *Date             `json:"completion_date,omitempty" yaml:"completion_date,omitempty"`
	CreationDate   *Date             `json:"creation_date,omitempty" yaml:"creation_date,omitempty"`
	Description    string            `json:"description" yaml:"description"`
	Projects       []string          `json:"projects" yaml:"projects"`
	Contexts       []string          `json:"contexts" yaml:"contexts"`
	Tags           map[string]string `json:"tags" yaml:"tags"`
}

// String returns the original line the task was decoded from.
func (t *Task) String() string {
	return t.Raw
}

// HasPriority reports whether the task carries a (A)-(Z) priority.
func (t *Task) HasPriority() bool {
	return t.Priority != ""
}

// Tag returns the value of a key:value tag.
func (t *Task) Tag(key string) (string, bool) {
	v, ok := t.Tags[key]
	return v, ok
}

// HasProject reports whether +name appears in the description.
func (t *Task) HasProject(name string) bool {
	for _, p := range t.Projects {
		if p == name {
			return true
		}
	}
	return false
}

// HasContext reports whether @name appears in the description.
func (t *Task) HasContext(name string) bool {
	for _, c := range t.Contexts {
		if c == name {
			return true
		}
	}
	return false
}
