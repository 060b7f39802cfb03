// Package diag collects per-invocation diagnostic messages.
//
// The pipeline attaches one Log to each measurement call and threads it
// through every stage. Entries are human-readable rejection reasons and
// stage summaries intended for threshold tuning; correctness never depends
// on them, and a nil Log silently discards everything.
package diag

import "fmt"

// Log is an append-only list of diagnostic messages for one invocation.
// It is not safe for concurrent use; one invocation owns one Log.
type Log struct {
	entries []string
}

// New returns an empty log.
func New() *Log { return &Log{} }

// Addf formats and appends one message. Safe on a nil receiver.
func (l *Log) Addf(format string, args ...any) {
	if l == nil {
		return
	}
	l.entries = append(l.entries, fmt.Sprintf(format, args...))
}

// Entries returns the collected messages in append order.
func (l *Log) Entries() []string {
	if l == nil {
		return nil
	}
	return l.entries
}
