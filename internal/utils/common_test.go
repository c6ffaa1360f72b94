package utils

import (
	"reflect"
	"testing"
)

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{}},
		{"home", []string{"home"}},
		{" home , work ", []string{"home", "work"}},
		{"a,,b, ,", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := SplitAndTrim(tt.input, ","); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitAndTrim(%q): got %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

func TestJSONPointerToPath(t *testing.T) {
	tests := []struct {
		ptr  string
		want string
	}{
		{"", ""},
		{"#", ""},
		{"/priority", "priority"},
		{"#/tags/due", "tags.due"},
		{"/projects/0", "projects[0]"},
		{"/tags/a~1b", "tags.a/b"},
		{"/tags/a~0b", "tags.a~b"},
		{"/tags/a~01", "tags.a~1"},
		{"/projects/007", "projects[7]"},
	}

	for _, tt := range tests {
		t.Run(tt.ptr, func(t *testing.T) {
			if got := JSONPointerToPath(tt.ptr); got != tt.want {
				t.Errorf("JSONPointerToPath(%q): got %q, want %q", tt.ptr, got, tt.want)
			}
		})
	}
}
