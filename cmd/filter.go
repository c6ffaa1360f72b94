package cmd

import (
	"fmt"
	"strings"

	"github.com/nibzard/todotxt-go/internal/todo"
	"github.com/nibzard/todotxt-go/internal/utils"
)

// taskFilter selects tasks for ls. Zero values match everything.
// Projects and contexts match when the task carries any of them.
type taskFilter struct {
	done     *bool
	projects []string
	contexts []string
	priority string
}

// newTaskFilter builds a filter from the ls flags. project and context take
// comma-separated lists; leading + and @ are optional.
func newTaskFilter(status, project, context, priority string) (taskFilter, error) {
	f := taskFilter{
		projects: tagList(project, "+"),
		contexts: tagList(context, "@"),
	}

	switch strings.ToLower(status) {
	case "":
	case "open", "todo", "pending":
		done := false
		f.done = &done
	case "done", "completed":
		done := true
		f.done = &done
	default:
		return f, fmt.Errorf("unknown status %q (expected open or done)", status)
	}

	if priority != "" {
		p := strings.ToUpper(priority)
		if len(p) != 1 || p[0] < 'A' || p[0] > 'Z' {
			return f, fmt.Errorf("invalid priority %q (expected a letter A-Z)", priority)
		}
		f.priority = p
	}
	return f, nil
}

func tagList(s, prefix string) []string {
	names := utils.SplitAndTrim(s, ",")
	for i, name := range names {
		names[i] = strings.TrimPrefix(name, prefix)
	}
	return names
}

func (f taskFilter) match(t *todo.Task) bool {
	if f.done != nil && t.Completed != *f.done {
		return false
	}
	if len(f.projects) > 0 && !anyOf(f.projects, t.HasProject) {
		return false
	}
	if len(f.contexts) > 0 && !anyOf(f.contexts, t.HasContext) {
		return false
	}
	if f.priority != "" && t.Priority != f.priority {
		return false
	}
	return true
}

func anyOf(names []string, has func(string) bool) bool {
	for _, name := range names {
		if has(name) {
			return true
		}
	}
	return false
}
