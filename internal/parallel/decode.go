package parallel

import (
	"context"
	"fmt"

	"github.com/nibzard/todotxt-go/internal/todo"
)

// DefaultWorkers is used when Options.Workers is not positive.
const DefaultWorkers = 4

// Options controls a parallel decode.
type Options struct {
	// Workers bounds the number of lines decoded at once.
	Workers int
	// FailFast stops scheduling new lines after the first failure.
	FailFast bool
	// Parse decodes one line. Defaults to todo.Parse.
	Parse func(string) (*todo.Task, error)
}

// Decode parses lines concurrently and assembles the results in input order.
// Failed lines are recorded in File.Errors just as todo.Decode does. It
// returns ctx.Err() when ctx is cancelled before every line is decoded.
//
// With FailFast, any failed line makes Decode return the partial File
// together with an error wrapping the first failure. Lines that were never
// scheduled are absent from that File.
func Decode(ctx context.Context, lines []todo.Line, opts Options) (*todo.File, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	parse := opts.Parse
	if parse == nil {
		parse = todo.Parse
	}

	pool := NewWorkerPool(ctx, workers, len(lines), opts.FailFast)
	for _, line := range lines {
		text := line.Text
		scheduled := pool.Submit(line, func() (*todo.Task, error) {
			return parse(text)
		})
		if !scheduled {
			break
		}
	}
	results := pool.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f := &todo.File{}
	for _, r := range results {
		f.Record(r.Line, r.Task, r.Error)
	}
	if opts.FailFast && len(f.Errors) > 0 {
		return f, fmt.Errorf("decoding stopped, %d of %d line(s) decoded: %w", len(results), len(lines), f.Errors[0])
	}
	return f, nil
}
