package todo

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// maxLineSize bounds a single todo.txt line.
const maxLineSize = 1024 * 1024

// Line is one non-blank line of a todo.txt file.
type Line struct {
	Number int // 1-based physical line number
	Text   string
}

// File holds the decoded contents of a todo.txt file.
//
// Tasks and Lines run in parallel: Lines[i] is the line number Tasks[i] was
// decoded from. Lines that failed to decode are in Errors instead.
type File struct {
	Path   string
	Tasks  []*Task
	Lines  []int
	Errors []*ParseError
}

// ReadLines splits r into lines, dropping blank ones and trailing carriage returns.
func ReadLines(r io.Reader) ([]Line, error) {
	if r == nil {
		return nil, ErrInvalidArgument
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lines []Line
	number := 0
	for scanner.Scan() {
		number++
		text := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		lines = append(lines, Line{Number: number, Text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read todo lines: %w", err)
	}
	return lines, nil
}

// Decode parses every line in order. Failures are collected in File.Errors.
func Decode(lines []Line) *File {
	f := &File{}
	for _, line := range lines {
		f.Add(line, Parse)
	}
	return f
}

// Add decodes line with parse and records the task or the failure.
func (f *File) Add(line Line, parse func(string) (*Task, error)) {
	task, err := parse(line.Text)
	f.Record(line, task, err)
}

// Record stores the outcome of decoding line.
func (f *File) Record(line Line, task *Task, err error) {
	if err != nil {
		var pe *ParseError
		if !errors.As(err, &pe) {
			pe = &ParseError{Raw: line.Text, Err: err}
		}
		pe.Line = line.Number
		f.Errors = append(f.Errors, pe)
		return
	}
	f.Tasks = append(f.Tasks, task)
	f.Lines = append(f.Lines, line.Number)
}

// Read decodes a todo.txt stream.
func Read(r io.Reader) (*File, error) {
	lines, err := ReadLines(r)
	if err != nil {
		return nil, err
	}
	return Decode(lines), nil
}

// Load reads and decodes a todo.txt file from path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read todo file: %w", err)
	}

	f, err := Read(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse todo file: %w", err)
	}
	f.Path = path
	return f, nil
}

// Save writes the original text of every task to path, one per line.
// Lines that failed to decode are not written.
func (f *File) Save(path string) error {
	var buf bytes.Buffer
	for _, t := range f.Tasks {
		buf.WriteString(t.Raw)
		buf.WriteByte('\n')
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write todo file: %w", err)
	}

	return nil
}

// Valid reports whether every line decoded.
func (f *File) Valid() bool {
	return len(f.Errors) == 0
}
