// Package skate implements the night-city skating simulation: a sliding
// window of road segments, hazard spawning and pruning, the skater's
// locomotion state machine and the collision checks that end a run.
package skate

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Lane is one of the two traffic lanes.
type Lane int

const (
	LaneLeft Lane = iota
	LaneRight
)

// Sign returns -1 for the left lane and +1 for the right lane.
func (l Lane) Sign() float64 {
	if l == LaneLeft {
		return -1
	}
	return 1
}

func (l Lane) String() string {
	if l == LaneLeft {
		return "left"
	}
	return "right"
}

// Side is the roadside a decoration stands on.
type Side int

const (
	SideLeft  Side = -1
	SideRight Side = 1
)

// EntityKind tags the variants of Trackable.
type EntityKind int

const (
	KindDecoration EntityKind = iota
	KindBarrier
	KindCrack
	KindObstacle
)

func (k EntityKind) String() string {
	switch k {
	case KindDecoration:
		return "decoration"
	case KindBarrier:
		return "barrier"
	case KindCrack:
		return "crack"
	case KindObstacle:
		return "obstacle"
	default:
		return "unknown"
	}
}

// Trackable is any entity that lives on the track and is pruned once it
// falls behind the skater.
type Trackable interface {
	Kind() EntityKind
	Position() mgl64.Vec3
}

// Segment is one road tile. Z is its rear edge; the tile covers [Z-L, Z).
type Segment struct {
	Z float64
}

// Obstacle is a car in one of the traffic lanes.
type Obstacle struct {
	X, Z        float64
	Speed       float64 // Units per tick
	Lane        Lane
	Approaching bool // Moves toward +Z, i.e. against the skater
	Paint       int  // Cosmetic palette index
}

func (o Obstacle) Kind() EntityKind { return KindObstacle }

func (o Obstacle) Position() mgl64.Vec3 { return mgl64.Vec3{o.X, 0, o.Z} }

// Barrier is the road-centered divider spanning one segment.
type Barrier struct {
	ZStart, ZEnd float64 // ZStart is the front edge (smaller Z)
	Width        float64
	Height       float64 // Minimum jump height that clears it
	Fenced       bool
}

func (b Barrier) Kind() EntityKind { return KindBarrier }

// Center returns the longitudinal midpoint of the barrier.
func (b Barrier) Center() float64 { return (b.ZStart + b.ZEnd) / 2 }

func (b Barrier) Position() mgl64.Vec3 { return mgl64.Vec3{0, 0, b.Center()} }

// Crack is a cosmetic surface marker. It is never collided with.
type Crack struct {
	X, Z float64
}

func (c Crack) Kind() EntityKind { return KindCrack }

func (c Crack) Position() mgl64.Vec3 { return mgl64.Vec3{c.X, 0, c.Z} }

// DecorationKind selects the roadside prop.
type DecorationKind int

const (
	Building DecorationKind = iota
	Streetlamp
)

// Decoration is roadside scenery. It never affects the run.
type Decoration struct {
	X, Z   float64
	Side   Side
	Prop   DecorationKind
	Height float64
	Width  float64
	Paint  int
}

func (d Decoration) Kind() EntityKind { return KindDecoration }

func (d Decoration) Position() mgl64.Vec3 { return mgl64.Vec3{d.X, 0, d.Z} }

// Entities holds the live hazard and scenery collections.
type Entities struct {
	Decorations []Decoration
	Barriers    []Barrier
	Cracks      []Crack
	Obstacles   []Obstacle
}

// Clear empties every collection, keeping capacity.
func (e *Entities) Clear() {
	e.Decorations = e.Decorations[:0]
	e.Barriers = e.Barriers[:0]
	e.Cracks = e.Cracks[:0]
	e.Obstacles = e.Obstacles[:0]
}

// Count returns the total number of live entities.
func (e *Entities) Count() int {
	return len(e.Decorations) + len(e.Barriers) + len(e.Cracks) + len(e.Obstacles)
}

// Hazards returns the number of barriers, cracks and obstacles.
func (e *Entities) Hazards() int {
	return len(e.Barriers) + len(e.Cracks) + len(e.Obstacles)
}
