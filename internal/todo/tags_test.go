package todo

import (
	"reflect"
	"testing"
)

func TestProjectAndContextTags(t *testing.T) {
	tests := []struct {
		name         string
		line         string
		wantProjects []string
		wantContexts []string
	}{
		{
			name:         "one project",
			line:         "x 2022-03-16 Call Mum +Family",
			wantProjects: []string{"Family"},
			wantContexts: []string{},
		},
		{
			name:         "project at start",
			line:         "+Family Call Mum",
			wantProjects: []string{"Family"},
			wantContexts: []string{},
		},
		{
			name:         "plus inside a word",
			line:         "Some+Family Call Mum",
			wantProjects: []string{},
			wantContexts: []string{},
		},
		{
			name:         "plus inside a word after header",
			line:         "x 2022-03-16 Call Mum Some+Family",
			wantProjects: []string{},
			wantContexts: []string{},
		},
		{
			name:         "invalid then valid project",
			line:         "x 2022-03-16 Call Mum Some+Family +Life",
			wantProjects: []string{"Life"},
			wantContexts: []string{},
		},
		{
			name:         "multiple projects",
			line:         "x 2022-03-16 Call Mum +Family +Life",
			wantProjects: []string{"Family", "Life"},
			wantContexts: []string{},
		},
		{
			name:         "duplicate projects are kept",
			line:         "Call Mum +Family +Family",
			wantProjects: []string{"Family", "Family"},
			wantContexts: []string{},
		},
		{
			name:         "one context",
			line:         "x 2022-03-16 Call Mum @phone",
			wantProjects: []string{},
			wantContexts: []string{"phone"},
		},
		{
			name:         "email address is not a context",
			line:         "x 2022-03-16 Call Mum someone@example.com",
			wantProjects: []string{},
			wantContexts: []string{},
		},
		{
			name:         "email address then context",
			line:         "x 2022-03-16 Call Mum someone@example.com @phone",
			wantProjects: []string{},
			wantContexts: []string{"phone"},
		},
		{
			name:         "contexts and projects",
			line:         "x 2022-03-16 Call Mum @phone @mobile +Life +Family",
			wantProjects: []string{"Life", "Family"},
			wantContexts: []string{"phone", "mobile"},
		},
		{
			name:         "tab does not introduce a tag",
			line:         "Call Mum\t+Family",
			wantProjects: []string{},
			wantContexts: []string{},
		},
		{
			name:         "tag runs to the next space only",
			line:         "Call Mum +Family\tLife @home,now",
			wantProjects: []string{"Family\tLife"},
			wantContexts: []string{"home,now"},
		},
		// A bare prefix yields an empty tag rather than being dropped.
		{
			name:         "bare prefix at end",
			line:         "Call Mum + @",
			wantProjects: []string{""},
			wantContexts: []string{""},
		},
		{
			name:         "bare prefix mid line",
			line:         "Call + Mum @ now",
			wantProjects: []string{""},
			wantContexts: []string{""},
		},
		// Each examined prefix moves the scan window past itself, so a
		// prefix right after another one starts a new tag.
		{
			name:         "doubled prefix at start",
			line:         "++a Call Mum",
			wantProjects: []string{"+a", "a"},
			wantContexts: []string{},
		},
		{
			name:         "doubled prefix inside a word",
			line:         "Call a++b",
			wantProjects: []string{"b"},
			wantContexts: []string{},
		},
		{
			name:         "prefix inside a tag",
			line:         "Call +a+b",
			wantProjects: []string{"a+b"},
			wantContexts: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := Parse(tt.line)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.line, err)
			}
			if !reflect.DeepEqual(task.Projects, tt.wantProjects) {
				t.Errorf("Projects: got %q, want %q", task.Projects, tt.wantProjects)
			}
			if !reflect.DeepEqual(task.Contexts, tt.wantContexts) {
				t.Errorf("Contexts: got %q, want %q", task.Contexts, tt.wantContexts)
			}
		})
	}
}

func TestTagsDoNotChangeDescription(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"x 2022-03-16 Call Mum +Family +Life", "Call Mum +Family +Life"},
		{"x 2022-03-16 Call Mum @phone @mobile", "Call Mum @phone @mobile"},
		{"+Family Call Mum", "+Family Call Mum"},
		{"Some+Family Call Mum", "Some+Family Call Mum"},
		{"key1:value1 My Task", "key1:value1 My Task"},
	}

	for _, tt := range tests {
		task, err := Parse(tt.line)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", tt.line, err)
		}
		if task.Description != tt.want {
			t.Errorf("Description: got %q, want %q", task.Description, tt.want)
		}
	}
}

func TestKeyValueTags(t *testing.T) {
	tests := []struct {
		name string
		line string
		want map[string]string
	}{
		{
			name: "one pair",
			line: "x 2022-03-16 Call Mum key1:value1",
			want: map[string]string{"key1": "value1"},
		},
		{
			name: "two pairs",
			line: "x 2022-03-16 Call Mum key1:value1 key2:value2",
			want: map[string]string{"key1": "value1", "key2": "value2"},
		},
		{
			name: "pair at start",
			line: "key1:value1 My Task",
			want: map[string]string{"key1": "value1"},
		},
		{
			name: "double colon",
			line: "x 2022-03-16 Call Mum key1::value1",
			want: map[string]string{},
		},
		{
			name: "double colon then pair",
			line: "a::b c:d",
			want: map[string]string{"c": "d"},
		},
		{
			name: "leading colon",
			line: ":value1",
			want: map[string]string{},
		},
		{
			name: "colon after space",
			line: "Call :x y:z",
			want: map[string]string{"y": "z"},
		},
		{
			name: "missing value",
			line: "due: soon",
			want: map[string]string{},
		},
		{
			name: "missing value at end",
			line: "Call Mum due:",
			want: map[string]string{},
		},
		{
			name: "value keeps later colons",
			line: "Call a:b:c",
			want: map[string]string{"a": "b:c"},
		},
		{
			name: "url",
			line: "Read http://example.com today",
			want: map[string]string{"http": "//example.com"},
		},
		{
			name: "later duplicate key wins",
			line: "Call k:1 k:2",
			want: map[string]string{"k": "2"},
		},
		{
			name: "tab separates pairs",
			line: "Call k:v\tx:y",
			want: map[string]string{"k": "v", "x": "y"},
		},
		{
			name: "unicode whitespace separates pairs",
			line: "Call k:v\u00a0x:y\u3000z:w",
			want: map[string]string{"k": "v", "x": "y", "z": "w"},
		},
		{
			name: "multi-byte key and value",
			line: "Call clé:été",
			want: map[string]string{"clé": "été"},
		},
		{
			name: "no description",
			line: "x 2022-03-16",
			want: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := Parse(tt.line)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.line, err)
			}
			if !reflect.DeepEqual(task.Tags, tt.want) {
				t.Errorf("Tags: got %v, want %v", task.Tags, tt.want)
			}
		})
	}
}

func TestColonOnlyLine(t *testing.T) {
	task, err := Parse(":")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if task.Description != ":" {
		t.Errorf("Description: got %q, want %q", task.Description, ":")
	}
	if _, ok := task.Tag("value1"); ok {
		t.Error("unexpected tag")
	}
}

func TestExtractTagsEmptyDescription(t *testing.T) {
	if got := extractTags('+', ""); got == nil || len(got) != 0 {
		t.Errorf("extractTags: got %v, want empty slice", got)
	}
	if got := extractKeyValueTags(""); got == nil || len(got) != 0 {
		t.Errorf("extractKeyValueTags: got %v, want empty map", got)
	}
}
