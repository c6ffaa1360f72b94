// Package todo decodes todo.txt task lines.
//
// A todo.txt line looks like:
//
//	x 2011-03-03 2011-03-02 Call Mum +Family @phone due:2011-03-04
//	(A) 2011-03-02 Call Mum +Family @phone
//
// # Header
//
// The start of the line is read in a fixed order:
//
//  1. A completion marker, the two characters "x ". It must be followed by a
//     completion date; a missing or invalid date is a ParseError wrapping
//     ErrMissingCompletionDate.
//  2. For completed tasks, an optional creation date after the completion date.
//  3. For open tasks, an optional priority "(A)" to "(Z)" and an optional
//     creation date, either right after the priority or at the start of the line.
//
// Anything the header does not recognise is left in the description.
//
// # Tags
//
// Tags are read from the description without removing them from it:
//
//   - "+project" and "@context" when the prefix starts the line or follows a space
//   - "key:value" when the colon has a non-blank key and value and is not doubled
//
// # Files
//
// Load, Read and Decode apply Parse to each non-blank line of a todo.txt file and
// collect failures per line instead of aborting. Save writes the original lines
// back unchanged.
//
// # Validation
//
// File.Validate checks decoded tasks against a JSON Schema (draft 2020-12). An
// embedded schema describing the decoded record is used unless a schema path is
// given. When the schema cannot be loaded, minimal structural checks are used.
package todo
