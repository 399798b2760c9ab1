package engine

import "time"

// Options tunes the engine's background behavior.
type Options struct {
	// SnapshotInterval is how often the snapshot manager wakes up.
	SnapshotInterval time.Duration
	// SnapshotOffsetDelta is the minimum number of consumed instructions
	// between stored snapshots.
	SnapshotOffsetDelta int64
}

// DefaultEngineOptions returns the default engine options.
func DefaultEngineOptions() *Options {
	return &Options{
		SnapshotInterval:    30 * time.Second,
		SnapshotOffsetDelta: 100,
	}
}
