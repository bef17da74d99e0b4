package context

import (
	"context"
)

const contextKeyCommandSeq = contextKey("commandSeq")

// CommandSeqFromContext extracts the command sequence number from the context.
// Returns the sequence number and true if present, or zero and false if not present.
func CommandSeqFromContext(ctx context.Context) (uint64, bool) {
	seq, ok := ctx.Value(contextKeyCommandSeq).(uint64)

	return seq, ok
}

// WithCommandSeq creates a new context carrying the sequence number of the
// currently dispatched command. It can be used to correlate all log records
// produced while a single menu command executes.
func WithCommandSeq(ctx context.Context, seq uint64) context.Context {
	return context.WithValue(ctx, contextKeyCommandSeq, seq)
}
