package calltrace

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-cache-trace/pkg/testsupport"
	"github.com/goliatone/go-cache-trace/store"
)

// seedGreetHistory runs a counted and recorded greeting operation through two
// successes and one failure.
func seedGreetHistory(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()

	base := func(ctx context.Context, name string) (string, error) {
		if name == "" {
			return "", errors.New("nobody to greet")
		}
		return "hello " + name, nil
	}
	op := Counted(s, "greet", Recorded(s, "greet", nil, base))

	if _, err := op(ctx, "world"); err != nil {
		t.Fatalf("seeding call failed: %v", err)
	}
	if _, err := op(ctx, "go"); err != nil {
		t.Fatalf("seeding call failed: %v", err)
	}
	if _, err := op(ctx, ""); err == nil {
		t.Fatal("expected the seeded failure call to fail")
	}
}

func TestReplayer_Replay(t *testing.T) {
	s := store.NewMemoryStore()
	seedGreetHistory(t, s)

	var buf bytes.Buffer
	r := NewReplayer(s, WithLogger(zaptest.NewLogger(t)))
	if err := r.Replay(context.Background(), "greet", &buf); err != nil {
		t.Fatalf("Replay failed: %v", err)
	}

	testsupport.CompareWithGolden(t, testsupport.GoldenPath("replay_greet.txt"), buf.Bytes())
}

func TestReplayer_Replay_Idempotent(t *testing.T) {
	s := store.NewMemoryStore()
	seedGreetHistory(t, s)

	r := NewReplayer(s)
	ctx := context.Background()

	var first, second bytes.Buffer
	if err := r.Replay(ctx, "greet", &first); err != nil {
		t.Fatalf("Replay failed: %v", err)
	}
	if err := r.Replay(ctx, "greet", &second); err != nil {
		t.Fatalf("Replay failed: %v", err)
	}

	if first.String() != second.String() {
		t.Errorf("replaying twice should render identical transcripts:\nfirst:\n%s\nsecond:\n%s",
			first.String(), second.String())
	}

	inLen, err := s.ListLen(ctx, InputsKey("greet"))
	if err != nil {
		t.Fatalf("ListLen failed: %v", err)
	}
	if inLen != 3 {
		t.Errorf("replay must not mutate the history, inputs length is now %d", inLen)
	}
}

func TestReplayer_Replay_NeverCalled(t *testing.T) {
	s := store.NewMemoryStore()

	var buf bytes.Buffer
	r := NewReplayer(s)
	if err := r.Replay(context.Background(), "quiet", &buf); err != nil {
		t.Fatalf("Replay failed: %v", err)
	}

	want := "quiet was called 0 times:\n"
	if buf.String() != want {
		t.Errorf("expected transcript %q, got %q", want, buf.String())
	}
}

func TestReplayer_Replay_InvalidIdentity(t *testing.T) {
	r := NewReplayer(store.NewMemoryStore())

	err := r.Replay(context.Background(), "bad:name", &bytes.Buffer{})
	var idErr *IdentityError
	if !errors.As(err, &idErr) {
		t.Fatalf("expected IdentityError, got %v", err)
	}
}

func TestReplayer_Replay_CorruptCounter(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	if err := s.Set(ctx, "greet", []byte("abc")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	r := NewReplayer(s)
	if err := r.Replay(ctx, "greet", &bytes.Buffer{}); err == nil {
		t.Error("expected error for a corrupt counter")
	}
}

func TestReplayer_Replay_TruncatesMisalignedHistories(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	// Two recorded inputs but only one output, as if a crash interrupted
	// recording.
	for i := 0; i < 2; i++ {
		if _, err := s.Incr(ctx, "torn"); err != nil {
			t.Fatalf("Incr failed: %v", err)
		}
		if err := s.ListAppend(ctx, InputsKey("torn"), []byte(fmt.Sprintf("(%d)", i))); err != nil {
			t.Fatalf("ListAppend failed: %v", err)
		}
	}
	if err := s.ListAppend(ctx, OutputsKey("torn"), []byte("0")); err != nil {
		t.Fatalf("ListAppend failed: %v", err)
	}

	core, logs := observer.New(zapcore.WarnLevel)
	r := NewReplayer(s, WithLogger(zap.New(core)))

	var buf bytes.Buffer
	if err := r.Replay(ctx, "torn", &buf); err != nil {
		t.Fatalf("Replay failed: %v", err)
	}

	want := "torn was called 2 times:\ntorn(*(0)) -> 0\n"
	if buf.String() != want {
		t.Errorf("expected truncated transcript %q, got %q", want, buf.String())
	}

	if logs.FilterMessage("history length mismatch").Len() != 1 {
		t.Errorf("expected a history length mismatch warning, got %d entries", logs.Len())
	}
}

// seedPagerHistory records five calls of a doubling operation.
func seedPagerHistory(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()

	op := Counted(s, "pager", Recorded(s, "pager", nil, func(ctx context.Context, n int) (int, error) {
		return n * 10, nil
	}))
	for i := 1; i <= 5; i++ {
		if _, err := op(ctx, i); err != nil {
			t.Fatalf("seeding call failed: %v", err)
		}
	}
}

func TestReplayer_ReplayPage(t *testing.T) {
	s := store.NewMemoryStore()
	seedPagerHistory(t, s)
	r := NewReplayer(s)
	ctx := context.Background()

	tests := []struct {
		name     string
		page     int
		pageSize int
		want     []string
	}{
		{
			name:     "first page",
			page:     1,
			pageSize: 2,
			want: []string{
				"pager was called 5 times (page 1/3):",
				"pager(*(1)) -> 10",
				"pager(*(2)) -> 20",
			},
		},
		{
			name:     "middle page",
			page:     2,
			pageSize: 2,
			want: []string{
				"pager was called 5 times (page 2/3):",
				"pager(*(3)) -> 30",
				"pager(*(4)) -> 40",
			},
		},
		{
			name:     "short last page",
			page:     3,
			pageSize: 2,
			want: []string{
				"pager was called 5 times (page 3/3):",
				"pager(*(5)) -> 50",
			},
		},
		{
			name:     "page past the end",
			page:     4,
			pageSize: 2,
			want: []string{
				"pager was called 5 times (page 4/3):",
			},
		},
		{
			name:     "single page covers everything",
			page:     1,
			pageSize: 10,
			want: []string{
				"pager was called 5 times (page 1/1):",
				"pager(*(1)) -> 10",
				"pager(*(2)) -> 20",
				"pager(*(3)) -> 30",
				"pager(*(4)) -> 40",
				"pager(*(5)) -> 50",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := r.ReplayPage(ctx, "pager", tt.page, tt.pageSize, &buf); err != nil {
				t.Fatalf("ReplayPage failed: %v", err)
			}

			want := strings.Join(tt.want, "\n") + "\n"
			if buf.String() != want {
				t.Errorf("expected page transcript:\n%s\ngot:\n%s", want, buf.String())
			}
		})
	}
}

func TestReplayer_ReplayPage_EmptyHistory(t *testing.T) {
	r := NewReplayer(store.NewMemoryStore())

	var buf bytes.Buffer
	if err := r.ReplayPage(context.Background(), "quiet", 1, 3, &buf); err != nil {
		t.Fatalf("ReplayPage failed: %v", err)
	}

	want := "quiet was called 0 times (page 1/1):\n"
	if buf.String() != want {
		t.Errorf("expected transcript %q, got %q", want, buf.String())
	}
}

func TestReplayer_ReplayPage_InvalidWindow(t *testing.T) {
	r := NewReplayer(store.NewMemoryStore())
	ctx := context.Background()

	if err := r.ReplayPage(ctx, "pager", 0, 3, &bytes.Buffer{}); err == nil {
		t.Error("expected error for page 0")
	}
	if err := r.ReplayPage(ctx, "pager", 1, 0, &bytes.Buffer{}); err == nil {
		t.Error("expected error for page size 0")
	}
	if err := r.ReplayPage(ctx, "pager", -2, -1, &bytes.Buffer{}); err == nil {
		t.Error("expected error for negative window")
	}
}

func TestIndexRange(t *testing.T) {
	tests := []struct {
		page      int
		pageSize  int
		wantStart int
		wantEnd   int
	}{
		{page: 1, pageSize: 7, wantStart: 0, wantEnd: 7},
		{page: 3, pageSize: 15, wantStart: 30, wantEnd: 45},
		{page: 2, pageSize: 2, wantStart: 2, wantEnd: 4},
		{page: 1, pageSize: 1, wantStart: 0, wantEnd: 1},
	}

	for _, tt := range tests {
		start, end := IndexRange(tt.page, tt.pageSize)
		if start != tt.wantStart || end != tt.wantEnd {
			t.Errorf("IndexRange(%d, %d) = (%d, %d), want (%d, %d)",
				tt.page, tt.pageSize, start, end, tt.wantStart, tt.wantEnd)
		}
	}
}
