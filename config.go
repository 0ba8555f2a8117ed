package phototable

import (
	"errors"
	"fmt"
	"time"
)

// SelectionTimeout is how long a picked-up photo stays up before the next
// launch drops it back on the table.
const SelectionTimeout = 10 * time.Second

// ErrInvalidConfig is returned when a Config fails validation.
var ErrInvalidConfig = errors.New("phototable: invalid config")

// Config holds the table tuning. It is resolved once and never changes
// while the table runs.
type Config struct {
	// DropPeriod is the standard interval between launches.
	DropPeriod time.Duration
	// FastDropPeriod replaces DropPeriod while the table is below capacity.
	FastDropPeriod time.Duration
	// NowDropDelay is the delay before replacing a discarded photo.
	NowDropDelay time.Duration
	// FadeDuration is how long an evicted photo takes to fade out.
	FadeDuration time.Duration
	// FramePeriod is the animation step interval of the control loop.
	FramePeriod time.Duration

	// ImageRatio sizes decoded images relative to the long and short
	// sides of the table.
	ImageRatio float64
	// TableRatio sizes dropped photos relative to the table long side.
	TableRatio float64
	// MaxRotation bounds the drop rotation, in degrees either way.
	MaxRotation float64

	// Capacity is the number of photos kept on the table.
	Capacity int
	// Inset is the frame width in pixels around every photo.
	Inset int
	// TapToExit ends the session on a tap when nothing is picked up.
	TapToExit bool
}

// DefaultConfig returns the stock table tuning.
func DefaultConfig() Config {
	return Config{
		DropPeriod:     5 * time.Second,
		FastDropPeriod: time.Second,
		NowDropDelay:   100 * time.Millisecond,
		FadeDuration:   time.Second,
		FramePeriod:    33 * time.Millisecond,
		ImageRatio:     0.5,
		TableRatio:     0.3,
		MaxRotation:    45,
		Capacity:       10,
		Inset:          4,
		TapToExit:      true,
	}
}

// Validate reports the first unusable setting, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case c.DropPeriod <= 0:
		return fmt.Errorf("%w: drop period %v must be positive", ErrInvalidConfig, c.DropPeriod)
	case c.FastDropPeriod <= 0:
		return fmt.Errorf("%w: fast drop period %v must be positive", ErrInvalidConfig, c.FastDropPeriod)
	case c.NowDropDelay < 0:
		return fmt.Errorf("%w: now drop delay %v must not be negative", ErrInvalidConfig, c.NowDropDelay)
	case c.FadeDuration < 0:
		return fmt.Errorf("%w: fade duration %v must not be negative", ErrInvalidConfig, c.FadeDuration)
	case c.FramePeriod <= 0:
		return fmt.Errorf("%w: frame period %v must be positive", ErrInvalidConfig, c.FramePeriod)
	case c.ImageRatio <= 0:
		return fmt.Errorf("%w: image ratio %v must be positive", ErrInvalidConfig, c.ImageRatio)
	case c.TableRatio <= 0:
		return fmt.Errorf("%w: table ratio %v must be positive", ErrInvalidConfig, c.TableRatio)
	case c.MaxRotation < 0:
		return fmt.Errorf("%w: max rotation %v must not be negative", ErrInvalidConfig, c.MaxRotation)
	case c.Capacity <= 0:
		return fmt.Errorf("%w: capacity %d must be positive", ErrInvalidConfig, c.Capacity)
	case c.Inset < 0:
		return fmt.Errorf("%w: inset %d must not be negative", ErrInvalidConfig, c.Inset)
	}
	return nil
}

// Geometry holds the table metrics derived from the latest layout.
type Geometry struct {
	Width, Height int
	// LongSide and ShortSide bound decoded images, in pixels.
	LongSide, ShortSide int
	Landscape           bool
}

// geometryFor derives the metrics of a w x h table.
func geometryFor(c Config, w, h int) Geometry {
	return Geometry{
		Width:     w,
		Height:    h,
		LongSide:  int(c.ImageRatio * float64(max(w, h))),
		ShortSide: int(c.ImageRatio * float64(min(w, h))),
		Landscape: w > h,
	}
}
