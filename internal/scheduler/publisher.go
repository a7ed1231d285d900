package scheduler

import (
	"sync"

	"github.com/hoyeonchoKMOU/IsPiNormalNumber/internal/digitstats"
)

// Publisher is a single-slot, overwrite-on-publish handoff from the
// computation loop to the display loop. Publishing never blocks;
// intermediate snapshots a slow consumer misses are simply dropped,
// since the display only ever cares about the most recent state.
type Publisher struct {
	mu      sync.Mutex
	latest  digitstats.Snapshot
	seq     uint64
	changed chan struct{}
}

// NewPublisher creates an empty publisher. Latest returns a zero
// snapshot until the first Publish.
func NewPublisher() *Publisher {
	return &Publisher{changed: make(chan struct{})}
}

// Publish overwrites the latest snapshot and wakes any waiting
// consumers.
func (p *Publisher) Publish(snap digitstats.Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.latest = snap
	p.seq++

	close(p.changed)
	p.changed = make(chan struct{})
}

// Latest returns the most recent snapshot and its sequence number. The
// sequence is strictly increasing across publishes, so a consumer can
// detect whether anything changed since its last read.
func (p *Publisher) Latest() (digitstats.Snapshot, uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.latest, p.seq
}

// Changed returns a channel that is closed on the next publish.
func (p *Publisher) Changed() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.changed
}
