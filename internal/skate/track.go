package skate

import (
	"fmt"

	"github.com/vovakirdan/nightskate/internal/config"
)

// SegmentHook is called for every segment placed on the track.
type SegmentHook func(x, z float64, initial bool)

// Track is the fixed-size window of road segments ahead of the skater.
// Segments live in a ring: head is the rearmost tile and recycling only
// rewrites it and moves head forward.
type Track struct {
	ring    []Segment
	head    int
	cursor  float64 // Rear edge of the frontmost segment
	length  float64
	trigger float64
}

// NewTrack creates an empty track for the given geometry. Call Init before
// the first Advance.
func NewTrack(cfg config.TrackConfig) *Track {
	return &Track{
		ring:    make([]Segment, cfg.VisibleSegments),
		length:  cfg.SegmentLength,
		trigger: cfg.RecycleTrigger,
	}
}

// Init lays out the whole window starting at Z=0 and walking toward -Z.
func (t *Track) Init(onNew SegmentHook) {
	t.head = 0
	t.cursor = 0
	for i := range t.ring {
		if i > 0 {
			t.cursor -= t.length
		}
		t.ring[i] = Segment{Z: t.cursor}
		if onNew != nil {
			onNew(0, t.cursor, true)
		}
	}
}

// Advance recycles every segment whose rear edge has fallen more than the
// trigger distance behind skaterZ and returns how many were recycled.
func (t *Track) Advance(skaterZ float64, onNew SegmentHook) int {
	recycled := 0
	for len(t.ring) > 0 && t.ring[t.head].Z > skaterZ+t.trigger {
		nextZ := t.cursor - t.length
		t.ring[t.head].Z = nextZ
		t.head = (t.head + 1) % len(t.ring)
		t.cursor = nextZ
		recycled++
		if onNew != nil {
			onNew(0, nextZ, false)
		}
	}
	if recycled > 0 {
		assert(t.Front().Z == t.cursor, "track: front segment drifted from cursor")
	}
	return recycled
}

// Len returns the number of segments in the window.
func (t *Track) Len() int {
	return len(t.ring)
}

// Rear returns the rearmost segment.
func (t *Track) Rear() Segment {
	return t.ring[t.head]
}

// Front returns the frontmost segment.
func (t *Track) Front() Segment {
	return t.ring[(t.head+len(t.ring)-1)%len(t.ring)]
}

// Cursor returns the rear edge of the frontmost segment.
func (t *Track) Cursor() float64 {
	return t.cursor
}

// SegmentLength returns the length of one tile.
func (t *Track) SegmentLength() float64 {
	return t.length
}

// Span returns the Z range [front, rear) covered by the window.
func (t *Track) Span() (front, rear float64) {
	return t.Front().Z - t.length, t.Rear().Z
}

// Segments returns a copy of the window ordered rear to front.
func (t *Track) Segments() []Segment {
	out := make([]Segment, len(t.ring))
	for i := range out {
		out[i] = t.ring[(t.head+i)%len(t.ring)]
	}
	return out
}

// CheckContiguous verifies that consecutive segments touch exactly.
func (t *Track) CheckContiguous() error {
	segs := t.Segments()
	for i := 1; i < len(segs); i++ {
		gap := segs[i-1].Z - t.length - segs[i].Z
		if gap > 1e-9 || gap < -1e-9 {
			return fmt.Errorf("track: segments %d and %d are %v apart", i-1, i, gap)
		}
	}
	return nil
}

// assert panics on an internal invariant violation. Only used where the
// invariant is guaranteed by construction.
func assert(cond bool, msg string) {
	if !cond {
		panic(msg)
	}
}
