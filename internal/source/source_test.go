package source

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/gogpu/phototable"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	return img
}

func writeImage(t *testing.T, path string, encode func(io.Writer, image.Image) error, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, encode(f, img))
	require.NoError(t, f.Close())
}

func newOptions() *phototable.DecodeOptions {
	return &phototable.DecodeOptions{TempStorage: make([]byte, 32*1024)}
}

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestFit(t *testing.T) {
	tests := []struct {
		name              string
		w, h, long, short int
		wantW, wantH      int
	}{
		{"landscape shrinks", 2000, 1000, 500, 300, 500, 250},
		{"portrait uses rotated bounds", 1000, 2000, 500, 300, 250, 500},
		{"short side binds", 1000, 900, 500, 300, 333, 300},
		{"never enlarges", 100, 50, 500, 300, 100, 50},
		{"no bounds", 640, 480, 0, 0, 640, 480},
		{"never collapses", 10000, 1, 100, 50, 100, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := fit(tt.w, tt.h, tt.long, tt.short)
			assert.Equal(t, tt.wantW, w, "width")
			assert.Equal(t, tt.wantH, h, "height")
		})
	}
}

func TestResize(t *testing.T) {
	src := testImage(200, 100)

	same := resize(src, 400, 300)
	assert.Same(t, src, same)

	small := resize(src, 100, 80)
	assert.Equal(t, image.Rect(0, 0, 100, 50), small.Bounds())
}

func TestNewDir(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))

	writeImage(t, filepath.Join(root, "a.png"), png.Encode, testImage(4, 4))
	writeImage(t, filepath.Join(sub, "b.JPG"), func(w io.Writer, m image.Image) error { return jpeg.Encode(w, m, nil) }, testImage(4, 4))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("hi"), 0o600))

	d, err := NewDir(seeded(), root)
	require.NoError(t, err)
	assert.Equal(t, 2, d.Len())
}

func TestNewDir_Errors(t *testing.T) {
	empty := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(empty, "readme.md"), nil, 0o600))

	_, err := NewDir(seeded(), empty)
	require.ErrorIs(t, err, ErrNoImages)

	_, err = NewDir(seeded(), filepath.Join(empty, "missing"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoImages)
}

func TestDirDecodesFormats(t *testing.T) {
	tests := []struct {
		file   string
		encode func(io.Writer, image.Image) error
	}{
		{"card.png", png.Encode},
		{"card.jpeg", func(w io.Writer, m image.Image) error { return jpeg.Encode(w, m, nil) }},
		{"card.gif", func(w io.Writer, m image.Image) error { return gif.Encode(w, m, nil) }},
		{"card.bmp", bmp.Encode},
		{"card.tiff", func(w io.Writer, m image.Image) error { return tiff.Encode(w, m, nil) }},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			root := t.TempDir()
			writeImage(t, filepath.Join(root, tt.file), tt.encode, testImage(120, 60))

			d, err := NewDir(seeded(), root)
			require.NoError(t, err)

			opts := newOptions()
			img := d.Next(opts, 60, 40)
			require.NotNil(t, img)
			assert.Equal(t, 60, opts.OutWidth)
			assert.Equal(t, 30, opts.OutHeight)
			assert.Equal(t, "card", opts.OutName)
			assert.Equal(t, image.Rect(0, 0, 60, 30), img.Bounds())
		})
	}
}

func TestDirBrokenFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "broken.png"), []byte("not a png"), 0o600))

	d, err := NewDir(seeded(), root)
	require.NoError(t, err)

	opts := newOptions()
	assert.Nil(t, d.Next(opts, 100, 100))
	assert.Zero(t, opts.OutWidth)
	assert.Zero(t, opts.OutHeight)
}

func TestDirCyclesThroughEveryFile(t *testing.T) {
	root := t.TempDir()
	names := []string{"one", "two", "three"}
	for _, n := range names {
		writeImage(t, filepath.Join(root, n+".png"), png.Encode, testImage(8, 8))
	}

	d, err := NewDir(seeded(), root)
	require.NoError(t, err)

	for pass := range 2 {
		seen := map[string]bool{}
		for range names {
			opts := newOptions()
			require.NotNil(t, d.Next(opts, 100, 100))
			seen[opts.OutName] = true
		}
		assert.Len(t, seen, len(names), "pass %d should show every image once", pass)
	}
}

func TestDirNameIsNFC(t *testing.T) {
	root := t.TempDir()
	// "Café" with a combining acute accent.
	writeImage(t, filepath.Join(root, "Cafe\u0301.png"), png.Encode, testImage(8, 8))

	d, err := NewDir(seeded(), root)
	require.NoError(t, err)

	opts := newOptions()
	require.NotNil(t, d.Next(opts, 100, 100))
	assert.Equal(t, "Caf\u00e9", opts.OutName)
}

func TestDirWithoutScratch(t *testing.T) {
	root := t.TempDir()
	writeImage(t, filepath.Join(root, "a.png"), png.Encode, testImage(16, 16))

	d, err := NewDir(seeded(), root)
	require.NoError(t, err)

	opts := &phototable.DecodeOptions{}
	require.NotNil(t, d.Next(opts, 100, 100))
	assert.Equal(t, 16, opts.OutWidth)
}

// withAPP1 inserts an APP1 segment of n bytes right after the JPEG SOI marker,
// pushing the frame header n bytes further into the file.
func withAPP1(t *testing.T, img image.Image, n int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	b := buf.Bytes()

	seg := make([]byte, 4+n-2)
	seg[0], seg[1] = 0xFF, 0xE1
	binary.BigEndian.PutUint16(seg[2:], uint16(n))
	copy(seg[4:], "Exif\x00\x00")

	out := append([]byte{}, b[:2]...)
	out = append(out, seg...)
	return append(out, b[2:]...)
}

// pngHeader returns a PNG signature and IHDR chunk declaring w x h RGB pixels
// with no image data behind it.
func pngHeader(w, h uint32) []byte {
	ihdr := make([]byte, 4+13)
	copy(ihdr, "IHDR")
	binary.BigEndian.PutUint32(ihdr[4:], w)
	binary.BigEndian.PutUint32(ihdr[8:], h)
	ihdr[12] = 8 // bit depth
	ihdr[13] = 2 // truecolor

	out := []byte("\x89PNG\r\n\x1a\n")
	out = binary.BigEndian.AppendUint32(out, 13)
	out = append(out, ihdr...)
	return binary.BigEndian.AppendUint32(out, crc32.ChecksumIEEE(ihdr))
}

func TestDirHeaderBeyondScratch(t *testing.T) {
	root := t.TempDir()
	data := withAPP1(t, testImage(120, 60), 40*1024)
	require.NoError(t, os.WriteFile(filepath.Join(root, "exif.jpg"), data, 0o600))

	d, err := NewDir(seeded(), root)
	require.NoError(t, err)

	opts := newOptions()
	require.Less(t, len(opts.TempStorage), 40*1024)
	img := d.Next(opts, 60, 40)
	require.NotNil(t, img)
	assert.Equal(t, 60, opts.OutWidth)
	assert.Equal(t, 30, opts.OutHeight)
}

func TestDecodeFileRejectsOversized(t *testing.T) {
	root := t.TempDir()
	huge := filepath.Join(root, "huge.png")
	require.NoError(t, os.WriteFile(huge, pngHeader(10000, 10000), 0o600))
	small := filepath.Join(root, "small.png")
	writeImage(t, small, png.Encode, testImage(20, 10))

	tests := []struct {
		name    string
		scratch int
	}{
		{"header in scratch", 32 * 1024},
		{"header past scratch", 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeFile(huge, make([]byte, tt.scratch))
			require.ErrorIs(t, err, ErrTooLarge)

			img, err := decodeFile(small, make([]byte, tt.scratch))
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 20, 10), img.Bounds())
		})
	}
}

type countingSource struct {
	calls int
	ok    bool
}

func (c *countingSource) Next(opts *phototable.DecodeOptions, _, _ int) image.Image {
	c.calls++
	if !c.ok {
		return nil
	}
	opts.OutWidth, opts.OutHeight = 1, 1
	return testImage(1, 1)
}

func TestMulti(t *testing.T) {
	a, b := &countingSource{ok: true}, &countingSource{}
	m := NewMulti(a, b)

	for range 4 {
		m.Next(newOptions(), 10, 10)
	}
	assert.Equal(t, 2, a.calls)
	assert.Equal(t, 2, b.calls)

	assert.Nil(t, NewMulti().Next(newOptions(), 10, 10))
}

func TestPattern(t *testing.T) {
	p := NewPattern(seeded())

	for i := range 10 {
		opts := newOptions()
		img := p.Next(opts, 200, 120)
		require.NotNil(t, img)

		w, h := opts.OutWidth, opts.OutHeight
		assert.Equal(t, image.Rect(0, 0, w, h), img.Bounds())
		assert.LessOrEqual(t, max(w, h), 200)
		assert.LessOrEqual(t, min(w, h), 120)
		assert.Positive(t, min(w, h))
		assert.NotEmpty(t, opts.OutName, "card %d", i)
	}
}

func TestPatternDeterministic(t *testing.T) {
	a, b := NewPattern(seeded()), NewPattern(seeded())
	ia := a.Next(newOptions(), 64, 48).(*image.RGBA)
	ib := b.Next(newOptions(), 64, 48).(*image.RGBA)
	assert.Equal(t, ia.Pix, ib.Pix)
}

// The source plugs into a table and produces photos.
func TestPatternFeedsTable(t *testing.T) {
	var src phototable.Source = NewMulti(NewPattern(seeded()))
	opts := newOptions()
	require.NotNil(t, src.Next(opts, 50, 30))
	assert.Positive(t, opts.OutWidth)
}
