package source

import (
	"image"

	"github.com/gogpu/phototable"
)

// Multi takes turns between sources. A failing source only costs one
// attempt: the retry goes to the next source.
type Multi struct {
	sources []phototable.Source
	next    int
}

// NewMulti creates a multiplexer over sources.
func NewMulti(sources ...phototable.Source) *Multi {
	return &Multi{sources: sources}
}

// Next asks the next source in turn.
func (m *Multi) Next(opts *phototable.DecodeOptions, maxLong, maxShort int) image.Image {
	if len(m.sources) == 0 {
		return nil
	}
	s := m.sources[m.next%len(m.sources)]
	m.next++
	return s.Next(opts, maxLong, maxShort)
}
