package phototable

import (
	"context"
	"image"
)

// MaxLoadAttempts bounds the decode attempts of one load cycle.
const MaxLoadAttempts = 3

// scratchSize is the size of the decode scratch buffer shared across loads.
const scratchSize = 32 * 1024

// DecodeOptions carries decode hints in and the decode result out of a Source.
type DecodeOptions struct {
	// TempStorage is scratch space a Source may use while decoding.
	// It is reused across calls.
	TempStorage []byte

	// OutWidth and OutHeight report the decoded size. A non-positive value
	// marks a failed decode.
	OutWidth, OutHeight int
	// OutName optionally reports a caption for the image.
	OutName string
}

func (o *DecodeOptions) reset() {
	o.OutWidth = 0
	o.OutHeight = 0
	o.OutName = ""
}

// Source produces the next image to show, scaled to fit maxLong x maxShort
// in either orientation. It reports the result size through opts.
// Next is called off the control goroutine, one call at a time.
type Source interface {
	Next(opts *DecodeOptions, maxLong, maxShort int) image.Image
}

// SourceFunc adapts a function to Source.
type SourceFunc func(opts *DecodeOptions, maxLong, maxShort int) image.Image

// Next calls f.
func (f SourceFunc) Next(opts *DecodeOptions, maxLong, maxShort int) image.Image {
	return f(opts, maxLong, maxShort)
}

// Loader acquires photos in the background, one request at a time.
//
// A request retries failed decodes in place up to MaxLoadAttempts times.
// Completion, successful or not, is posted to the control goroutine.
type Loader struct {
	src   Source
	inset int
	post  func(func())
	onTap func(*Photo)

	// ctx cancels pending retries. Set on the control goroutine.
	ctx  context.Context
	opts DecodeOptions
	busy bool
	seq  uint64
}

// NewLoader creates a loader framing images with inset pixels of border.
// Loaded photos call onTap when tapped.
func NewLoader(src Source, inset int, post func(func()), onTap func(*Photo)) *Loader {
	return &Loader{
		src:   src,
		inset: inset,
		post:  post,
		onTap: onTap,
		ctx:   context.Background(),
		opts:  DecodeOptions{TempStorage: make([]byte, scratchSize)},
	}
}

// Busy reports whether a request is in flight.
func (l *Loader) Busy() bool { return l.busy }

// RequestNext starts loading the next photo bounded by long x short.
// done runs on the control goroutine with the photo, or with nil after
// MaxLoadAttempts failures or cancellation. RequestNext returns false without
// starting anything while another request is in flight.
func (l *Loader) RequestNext(long, short int, done func(*Photo)) bool {
	if l.busy {
		return false
	}
	l.busy = true

	ctx := l.ctx
	go func() {
		p := l.load(ctx, long, short)
		l.post(func() {
			l.busy = false
			if p != nil {
				l.seq++
				p.id = l.seq
			}
			done(p)
		})
	}()
	return true
}

// load runs off the control goroutine. Only one load runs at a time, so the
// shared options are not contended.
func (l *Loader) load(ctx context.Context, long, short int) *Photo {
	for attempt := 1; attempt <= MaxLoadAttempts; attempt++ {
		if ctx.Err() != nil {
			return nil
		}
		l.opts.reset()
		img := l.src.Next(&l.opts, long, short)
		if img != nil && l.opts.OutWidth > 0 && l.opts.OutHeight > 0 {
			return &Photo{
				name:      l.opts.OutName,
				width:     l.opts.OutWidth,
				height:    l.opts.OutHeight,
				image:     compose(img, l.inset),
				transform: IdentityTransform(),
				onTap:     l.onTap,
			}
		}
		Logger().Debug("phototable: decode failed", "attempt", attempt, "of", MaxLoadAttempts)
	}
	Logger().Warn("phototable: giving up on load", "attempts", MaxLoadAttempts)
	return nil
}
