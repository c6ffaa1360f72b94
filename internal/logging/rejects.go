package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/nibzard/todotxt-go/internal/todo"
)

// RejectEntry is one line of a reject log.
type RejectEntry struct {
	Time  time.Time `json:"time"`
	File  string    `json:"file,omitempty"`
	Line  int       `json:"line"`
	Raw   string    `json:"raw"`
	Error string    `json:"error"`
}

// RejectLog appends rejected todo.txt lines to a JSONL file.
type RejectLog struct {
	Path string

	mu    sync.Mutex
	file  *os.File
	enc   *json.Encoder
	count int
	now   func() time.Time
}

// NewRejectLog creates (or truncates) the JSONL file at path, creating
// parent directories as needed.
func NewRejectLog(path string) (*RejectLog, error) {
	if path == "" {
		return nil, fmt.Errorf("reject log path is empty")
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create reject log dir: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create reject log: %w", err)
	}

	return &RejectLog{
		Path: path,
		file: file,
		enc:  json.NewEncoder(file),
		now:  time.Now,
	}, nil
}

// Record appends one entry for a line that failed to decode.
// source names the file the line came from and may be empty.
func (r *RejectLog) Record(source string, pe *todo.ParseError) error {
	if r == nil || pe == nil {
		return nil
	}

	entry := RejectEntry{
		Time: r.now().UTC(),
		File: source,
		Line: pe.Line,
		Raw:  pe.Raw,
	}
	if pe.Err != nil {
		entry.Error = pe.Err.Error()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return fmt.Errorf("reject log %s is closed", r.Path)
	}
	if err := r.enc.Encode(entry); err != nil {
		return fmt.Errorf("write reject log: %w", err)
	}
	r.count++
	return nil
}

// Count returns the number of entries written so far.
func (r *RejectLog) Count() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Close closes the log file.
func (r *RejectLog) Close() error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// ReadRejects loads every entry of a reject log.
func ReadRejects(path string) ([]RejectEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open reject log: %w", err)
	}
	defer f.Close()

	var entries []RejectEntry
	dec := json.NewDecoder(f)
	for dec.More() {
		var e RejectEntry
		if err := dec.Decode(&e); err != nil {
			return nil, fmt.Errorf("decode reject log entry %d: %w", len(entries)+1, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
