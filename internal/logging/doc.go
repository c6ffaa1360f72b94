// Package logging provides the leveled console logger and the JSONL log of
// rejected todo.txt lines.
//
// Console output uses charmbracelet/log and goes to stderr so that rendered
// tasks on stdout stay machine-readable.
package logging
