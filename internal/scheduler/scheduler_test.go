package scheduler

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoyeonchoKMOU/IsPiNormalNumber/internal/digitstats"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPublisherLatestOverwrite(t *testing.T) {
	t.Parallel()

	pub := NewPublisher()

	_, seq := pub.Latest()
	assert.Zero(t, seq)

	pub.Publish(digitstats.Snapshot{Digits: 10, Running: true})
	pub.Publish(digitstats.Snapshot{Digits: 25, Running: true})

	snap, seq := pub.Latest()

	// Only the most recent snapshot is retained.
	assert.Equal(t, uint64(25), snap.Digits)
	assert.Equal(t, uint64(2), seq)
}

func TestPublisherChangedSignals(t *testing.T) {
	t.Parallel()

	pub := NewPublisher()
	changed := pub.Changed()

	select {
	case <-changed:
		t.Fatal("changed channel closed before publish")
	default:
	}

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()
		<-changed
	}()

	pub.Publish(digitstats.Snapshot{Digits: 1})
	wg.Wait()
}

// A throttled consumer re-arms the channel before reading Latest, so a
// publish landing between the two steps is never lost: it either shows
// up in the read or leaves the new channel already closed.
func TestPublisherChangedRearmBeforeRead(t *testing.T) {
	t.Parallel()

	pub := NewPublisher()

	pub.Publish(digitstats.Snapshot{Digits: 5})

	pending := pub.Changed()
	snap, _ := pub.Latest()
	assert.Equal(t, uint64(5), snap.Digits)

	// Publish racing with the read: the re-armed channel reports it.
	pub.Publish(digitstats.Snapshot{Digits: 12})

	select {
	case <-pending:
	default:
		t.Fatal("publish after re-arm not signalled")
	}

	pending = pub.Changed()
	snap, _ = pub.Latest()
	assert.Equal(t, uint64(12), snap.Digits)

	// No publish since the last re-arm: nothing pending, the consumer
	// skips the frame.
	select {
	case <-pending:
		t.Fatal("changed channel closed without a publish")
	default:
	}
}

func TestRunStopsAtDigitLimit(t *testing.T) {
	t.Parallel()

	sched := New(Config{
		StartBatchTerms: 8,
		MaxBatchTerms:   64,
		MaxDigits:       500,
	}, testLogger(), nil)

	require.Equal(t, Idle, sched.State())

	err := sched.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, Stopped, sched.State())

	snap, _ := sched.Publisher().Latest()

	assert.False(t, snap.Running)
	assert.GreaterOrEqual(t, snap.Digits, uint64(500))
}

func TestRunSnapshotsMonotonic(t *testing.T) {
	t.Parallel()

	sched := New(Config{
		StartBatchTerms: 4,
		MaxBatchTerms:   32,
		MaxDigits:       2_000,
	}, testLogger(), nil)

	pub := sched.Publisher()

	done := make(chan struct{})

	var (
		digitSeq   []uint64
		historyLen []int
	)

	go func() {
		defer close(done)

		var lastSeq uint64

		for {
			snap, seq := pub.Latest()
			if seq != lastSeq {
				lastSeq = seq

				digitSeq = append(digitSeq, snap.Digits)
				historyLen = append(historyLen, len(snap.History))
			}

			if seq != 0 && !snap.Running {
				return
			}
		}
	}()

	err := sched.Run(context.Background())
	require.NoError(t, err)

	<-done

	require.NotEmpty(t, digitSeq)

	for i := 1; i < len(digitSeq); i++ {
		assert.GreaterOrEqual(t, digitSeq[i], digitSeq[i-1], "digit counts must never roll back")
		assert.GreaterOrEqual(t, historyLen[i], historyLen[i-1], "history must never shrink between observed snapshots")
	}
}

func TestRunCancellationPublishesCompleteState(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())

	sched := New(Config{StartBatchTerms: 4, MaxBatchTerms: 16}, testLogger(), nil)

	done := make(chan error, 1)

	go func() {
		done <- sched.Run(ctx)
	}()

	// Let at least one batch land, then cancel mid-run.
	deadline := time.After(5 * time.Second)

	for {
		snap, _ := sched.Publisher().Latest()
		if snap.Digits > 0 {
			break
		}

		select {
		case <-deadline:
			t.Fatal("no digits produced before deadline")
		default:
		}
	}

	cancel()

	require.NoError(t, <-done)

	snap, _ := sched.Publisher().Latest()

	// The final snapshot reflects fully completed batches only: the
	// histogram is internally consistent and marked stopped.
	var sum uint64
	for _, c := range snap.Counts {
		sum += c
	}

	assert.Equal(t, snap.Digits, sum)
	assert.False(t, snap.Running)
}

func TestRunHistogramConservation(t *testing.T) {
	t.Parallel()

	sched := New(Config{
		StartBatchTerms: 8,
		MaxBatchTerms:   32,
		MaxDigits:       1_000,
	}, testLogger(), nil)

	err := sched.Run(context.Background())
	require.NoError(t, err)

	snap, _ := sched.Publisher().Latest()

	var sum uint64
	for _, c := range snap.Counts {
		sum += c
	}

	assert.Equal(t, snap.Digits, sum)
	assert.NotEmpty(t, snap.History)
	assert.Equal(t, []byte{1, 4, 1, 5, 9}, snap.First[:5])
}

func TestNextBatchGeometricWithCap(t *testing.T) {
	t.Parallel()

	sched := New(Config{StartBatchTerms: 1_000, MaxBatchTerms: 3_000}, testLogger(), nil)

	assert.Equal(t, uint64(2_000), sched.nextBatch(1_000))
	assert.Equal(t, uint64(3_000), sched.nextBatch(2_000))
	assert.Equal(t, uint64(3_000), sched.nextBatch(3_000))
}

func TestStateString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "stopped", Stopped.String())
}
