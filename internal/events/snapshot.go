package events

import (
	"sync"
	"time"

	"github.com/vadiminshakov/predictor/internal/domain"
)

// Snapshot is what a surface needs to render the controller at one point in time.
type Snapshot struct {
	Seq       uint64              `json:"seq"`
	Timestamp time.Time           `json:"ts"`
	Symbol    domain.Symbol       `json:"symbol"`
	Mode      domain.Mode         `json:"mode"`
	State     domain.DisplayState `json:"state"`
}

// SnapshotBroadcaster fans out snapshots to all subscribers via buffered channels.
type SnapshotBroadcaster struct {
	mu     sync.RWMutex
	subs   map[chan Snapshot]struct{}
	buffer int
}

// NewSnapshotBroadcaster creates a broadcaster with the given per-subscriber buffer.
func NewSnapshotBroadcaster(buffer int) *SnapshotBroadcaster {
	if buffer < 1 {
		buffer = 64
	}
	return &SnapshotBroadcaster{
		subs:   make(map[chan Snapshot]struct{}),
		buffer: buffer,
	}
}

// Publish sends the snapshot to all subscribers, dropping if a reader is slow.
func (b *SnapshotBroadcaster) Publish(s Snapshot) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subs {
		select {
		case ch <- s:
		default:
			// drop slow consumer
		}
	}
}

// Subscribe returns a channel that receives snapshots until Unsubscribe is called.
func (b *SnapshotBroadcaster) Subscribe() chan Snapshot {
	ch := make(chan Snapshot, b.buffer)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes the channel and closes it.
func (b *SnapshotBroadcaster) Unsubscribe(ch chan Snapshot) {
	b.mu.Lock()
	if _, ok := b.subs[ch]; ok {
		delete(b.subs, ch)
		close(ch)
	}
	b.mu.Unlock()
}
