// Package phototable provides an ambient photo table for Go.
//
// # Overview
//
// A Table keeps a bounded pile of photos on a surface. New photos are loaded
// in the background, tossed onto the table at a random spot and angle, and
// the oldest ones fade away once the table is full. Tapping a photo picks it
// up, scaling it to fill the surface; tapping again, or waiting ten seconds,
// drops it back on the pile.
//
// # Quick Start
//
//	import "github.com/gogpu/phototable"
//
//	canvas := phototable.NewCanvas(1280, 720)
//	table, err := phototable.New(phototable.DefaultConfig(), src, canvas)
//	if err != nil {
//		return err
//	}
//	table.Post(func() { table.OnLayout(0, 0, 1280, 720) })
//	err = table.Run(ctx, func() { show(canvas.Render()) })
//
// # Architecture
//
// The library is organized into:
//   - Table: selection state machine, layout reaction, orchestration
//   - Loader: single-flight, retrying background acquisition from a Source
//   - Placement: randomized drop and pick-up motions
//   - Animator: per-photo tweens with eased progress
//   - Scheduler: single-slot, cancel-and-replace launch timer
//   - Evictor: FIFO eviction with fade-out and recycling
//   - Canvas: software Host that composites photos into an image.RGBA
//
// # Concurrency
//
// One control goroutine, started by Table.Run, owns every photo and the
// table state. Loads and timers never touch that state directly: they post
// closures to the control goroutine. Hosts calling into a running Table must
// do the same through Table.Post.
//
// # Coordinate System
//
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Photo rotation in degrees, increasing clockwise, around the photo center
package phototable

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
