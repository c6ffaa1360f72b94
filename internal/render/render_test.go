package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/nibzard/todotxt-go/internal/todo"
)

func parseAll(t *testing.T, lines ...string) []*todo.Task {
	t.Helper()
	tasks := make([]*todo.Task, 0, len(lines))
	for _, l := range lines {
		task, err := todo.Parse(l)
		if err != nil {
			t.Fatalf("Parse(%q): %v", l, err)
		}
		tasks = append(tasks, task)
	}
	return tasks
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"TABLE", FormatTable, false},
		{" json ", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"xml", "", true},
		{"yml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q): got %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatsAreParseable(t *testing.T) {
	for _, f := range Formats() {
		got, err := ParseFormat(string(f))
		if err != nil || got != f {
			t.Errorf("ParseFormat(%q): got %q, %v", f, got, err)
		}
	}
}

func TestWriteText(t *testing.T) {
	tasks := parseAll(t,
		"(A) 2024-01-01 Call Mum +family @phone",
		"x 2024-01-03 2024-01-02 Pay rent due:2024-02-01",
		"plain  spaced   text",
	)

	var buf bytes.Buffer
	if err := Write(&buf, tasks, FormatText); err != nil {
		t.Fatalf("Write: %v", err)
	}

	want := strings.Join([]string{
		"[ ] (A) 2024-01-01 Call Mum +family @phone",
		"[x] 2024-01-03 2024-01-02 Pay rent due:2024-02-01",
		"[ ] plain  spaced   text",
	}, "\n") + "\n"

	if got := buf.String(); got != want {
		t.Errorf("text output mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriteTextPriorityOnly(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"(B) ", "[ ] (B)\n"},
		{"(A) Call Mum", "[ ] (A) Call Mum\n"},
		{"(Z) +proj", "[ ] (Z) +proj\n"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Write(&buf, parseAll(t, tt.line), FormatText); err != nil {
				t.Fatalf("Write: %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteTable(t *testing.T) {
	tasks := parseAll(t,
		"(A) Call Mum +family @phone due:tomorrow a:1",
		"x 2024-01-03 Done thing",
	)

	var buf bytes.Buffer
	if err := Write(&buf, tasks, FormatTable); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"DESCRIPTION", "Call Mum +family @phone due:tomorrow a:1", "family", "phone", "a:1, due:tomorrow", "2024-01-03", "Done thing"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	tasks := parseAll(t, "x 2024-01-03 2024-01-02 Pay rent +home")

	var buf bytes.Buffer
	if err := Write(&buf, tasks, FormatJSON); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if len(decoded) != 1 {
		t.Fatalf("expected 1 task, got %d", len(decoded))
	}
	got := decoded[0]
	if got["completion_date"] != "2024-01-03" || got["creation_date"] != "2024-01-02" {
		t.Errorf("dates: got %v / %v", got["completion_date"], got["creation_date"])
	}
	if _, ok := got["priority"]; ok {
		t.Error("priority should be omitted when absent")
	}
	if got["description"] != "Pay rent +home" {
		t.Errorf("description: got %v", got["description"])
	}
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, nil, FormatJSON); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Errorf("got %q, want []", got)
	}
}

func TestWriteYAML(t *testing.T) {
	tasks := parseAll(t, "(C) 2024-05-06 Water plants @home k:v")

	var buf bytes.Buffer
	if err := Write(&buf, tasks, FormatYAML); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var decoded []struct {
		Raw          string            `yaml:"raw"`
		Priority     string            `yaml:"priority"`
		CreationDate string            `yaml:"creation_date"`
		Contexts     []string          `yaml:"contexts"`
		Projects     []string          `yaml:"projects"`
		Tags         map[string]string `yaml:"tags"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid YAML: %v\n%s", err, buf.String())
	}
	if len(decoded) != 1 {
		t.Fatalf("expected 1 task, got %d", len(decoded))
	}
	got := decoded[0]
	if got.Raw != "(C) 2024-05-06 Water plants @home k:v" {
		t.Errorf("raw: got %q", got.Raw)
	}
	if got.Priority != "C" || got.CreationDate != "2024-05-06" {
		t.Errorf("header: got %q / %q", got.Priority, got.CreationDate)
	}
	if len(got.Contexts) != 1 || got.Contexts[0] != "home" {
		t.Errorf("contexts: got %v", got.Contexts)
	}
	if len(got.Projects) != 0 {
		t.Errorf("projects: got %v", got.Projects)
	}
	if got.Tags["k"] != "v" {
		t.Errorf("tags: got %v", got.Tags)
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, nil, Format("csv")); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestFormatTags(t *testing.T) {
	if got := formatTags(nil); got != "" {
		t.Errorf("formatTags(nil): got %q", got)
	}
	if got := formatTags(map[string]string{"z": "1", "a": "2"}); got != "a:2, z:1" {
		t.Errorf("formatTags: got %q", got)
	}
}
