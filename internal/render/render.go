// Package render writes decoded tasks in the formats the CLI offers.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/nibzard/todotxt-go/internal/todo"
)

// Format selects an output encoding.
type Format string

const (
	FormatText  Format = "text"
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formats lists every supported format name.
func Formats() []Format {
	return []Format{FormatText, FormatTable, FormatJSON, FormatYAML}
}

// ParseFormat resolves a format name. The empty string selects FormatText.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatText, nil
	case FormatText, FormatTable, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (expected text, table, json or yaml)", s)
}

// Write renders tasks to w.
func Write(w io.Writer, tasks []*todo.Task, format Format) error {
	if tasks == nil {
		tasks = []*todo.Task{}
	}
	switch format {
	case FormatText, "":
		return writeText(w, tasks)
	case FormatTable:
		return writeTable(w, tasks)
	case FormatJSON:
		return writeJSON(w, tasks)
	case FormatYAML:
		return writeYAML(w, tasks)
	}
	return fmt.Errorf("unknown format %q", format)
}

func writeJSON(w io.Writer, tasks []*todo.Task) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tasks); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, tasks []*todo.Task) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(tasks); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

func writeTable(w io.Writer, tasks []*todo.Task) error {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Done", "Pri", "Completed", "Created", "Description", "Projects", "Contexts", "Tags"})
	for _, t := range tasks {
		done := ""
		if t.Completed {
			done = "x"
		}
		tw.AppendRow(table.Row{
			done,
			t.Priority,
			dateString(t.CompletionDate),
			dateString(t.CreationDate),
			t.Description,
			strings.Join(t.Projects, ", "),
			strings.Join(t.Contexts, ", "),
			formatTags(t.Tags),
		})
	}
	tw.Render()
	return nil
}

func dateString(d *todo.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}

// formatTags renders key-value tags as sorted key:value pairs.
func formatTags(tags map[string]string) string {
	if len(tags) == 0 {
		return ""
	}
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + ":" + tags[k]
	}
	return strings.Join(pairs, ", ")
}
