package calltrace

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/goliatone/go-cache-trace/store"
)

// Replayer renders the histories recorded by Counted and Recorded as a text
// transcript, one line per call.
type Replayer struct {
	store  store.Store
	logger *zap.Logger
}

// ReplayerOption configures a Replayer.
type ReplayerOption func(*Replayer)

// WithLogger sets the logger used to report history anomalies.
func WithLogger(logger *zap.Logger) ReplayerOption {
	return func(r *Replayer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewReplayer creates a Replayer reading from s.
func NewReplayer(s store.Store, opts ...ReplayerOption) *Replayer {
	r := &Replayer{
		store:  s,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Replay writes the full transcript for identity to w. The first line states
// the call count, then each recorded call renders as
//
//	<identity>(*<input tuple>) -> <output>
//
// When the inputs and outputs histories differ in length, the transcript is
// truncated to the aligned prefix and the mismatch is logged.
func (r *Replayer) Replay(ctx context.Context, identity string, w io.Writer) error {
	if err := ValidateIdentity(identity); err != nil {
		return err
	}

	count, err := CallCount(ctx, r.store, identity)
	if err != nil {
		return err
	}

	inputs, err := r.store.ListRange(ctx, InputsKey(identity), 0, -1)
	if err != nil {
		return fmt.Errorf("read inputs %s: %w", identity, err)
	}
	outputs, err := r.store.ListRange(ctx, OutputsKey(identity), 0, -1)
	if err != nil {
		return fmt.Errorf("read outputs %s: %w", identity, err)
	}

	n := min(len(inputs), len(outputs))
	if len(inputs) != len(outputs) {
		r.logger.Warn("history length mismatch",
			zap.String("identity", identity),
			zap.Int("inputs", len(inputs)),
			zap.Int("outputs", len(outputs)),
		)
	}

	if _, err := fmt.Fprintf(w, "%s was called %d times:\n", identity, count); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	for i := 0; i < n; i++ {
		if _, err := fmt.Fprintf(w, "%s(*%s) -> %s\n", identity, inputs[i], outputs[i]); err != nil {
			return fmt.Errorf("write transcript: %w", err)
		}
	}
	return nil
}

// ReplayPage writes one page of the transcript for identity to w. Pages are
// 1-based windows of pageSize calls over the aligned history; a page past the
// end renders the header with no call lines. The header also states which
// page of how many was rendered.
func (r *Replayer) ReplayPage(ctx context.Context, identity string, page, pageSize int, w io.Writer) error {
	if err := ValidateIdentity(identity); err != nil {
		return err
	}
	if page < 1 {
		return fmt.Errorf("page must be >= 1, got %d", page)
	}
	if pageSize < 1 {
		return fmt.Errorf("page size must be >= 1, got %d", pageSize)
	}

	count, err := CallCount(ctx, r.store, identity)
	if err != nil {
		return err
	}

	inLen, err := r.store.ListLen(ctx, InputsKey(identity))
	if err != nil {
		return fmt.Errorf("read inputs %s: %w", identity, err)
	}
	outLen, err := r.store.ListLen(ctx, OutputsKey(identity))
	if err != nil {
		return fmt.Errorf("read outputs %s: %w", identity, err)
	}

	aligned := min(inLen, outLen)
	if inLen != outLen {
		r.logger.Warn("history length mismatch",
			zap.String("identity", identity),
			zap.Int64("inputs", inLen),
			zap.Int64("outputs", outLen),
		)
	}

	totalPages := int(aligned+int64(pageSize)-1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if _, err := fmt.Fprintf(w, "%s was called %d times (page %d/%d):\n", identity, count, page, totalPages); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}

	start, end := IndexRange(page, pageSize)
	if int64(start) >= aligned {
		return nil
	}
	stop := min(int64(end), aligned)

	inputs, err := r.store.ListRange(ctx, InputsKey(identity), int64(start), stop-1)
	if err != nil {
		return fmt.Errorf("read inputs %s: %w", identity, err)
	}
	outputs, err := r.store.ListRange(ctx, OutputsKey(identity), int64(start), stop-1)
	if err != nil {
		return fmt.Errorf("read outputs %s: %w", identity, err)
	}

	n := min(len(inputs), len(outputs))
	for i := 0; i < n; i++ {
		if _, err := fmt.Fprintf(w, "%s(*%s) -> %s\n", identity, inputs[i], outputs[i]); err != nil {
			return fmt.Errorf("write transcript: %w", err)
		}
	}
	return nil
}

// IndexRange converts a 1-based page number and page size into the half-open
// index window [start, end) covered by that page.
func IndexRange(page, pageSize int) (start, end int) {
	start = (page - 1) * pageSize
	return start, start + pageSize
}
