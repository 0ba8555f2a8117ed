package source

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/phototable"
)

// ErrNoImages is returned when a directory source finds nothing to show.
var ErrNoImages = errors.New("source: no images found")

// ErrTooLarge is returned for images over MaxPixels or with no pixels.
var ErrTooLarge = errors.New("source: unsupported image size")

// MaxPixels bounds the decoded size of a single image.
const MaxPixels = 64 << 20

// extensions lists the file types the directory source decodes.
var extensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".webp": true, ".bmp": true, ".tif": true, ".tiff": true,
}

// Dir shows the images found under a set of directories in shuffled order,
// reshuffling after every pass.
type Dir struct {
	rng   *rand.Rand
	files []string
	next  int
}

// NewDir walks roots for image files.
func NewDir(rng *rand.Rand, roots ...string) (*Dir, error) {
	d := &Dir{rng: rng}
	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, e fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if e.Type().IsRegular() && extensions[strings.ToLower(filepath.Ext(path))] {
				d.files = append(d.files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("source: walk %s: %w", root, err)
		}
	}
	if len(d.files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoImages, strings.Join(roots, ", "))
	}
	d.shuffle()
	phototable.Logger().Info("source: directory scanned", "images", len(d.files))
	return d, nil
}

// Len returns the number of images found.
func (d *Dir) Len() int { return len(d.files) }

func (d *Dir) shuffle() {
	d.rng.Shuffle(len(d.files), func(i, j int) {
		d.files[i], d.files[j] = d.files[j], d.files[i]
	})
	d.next = 0
}

// Next decodes the next file and scales it to fit the bounds.
func (d *Dir) Next(opts *phototable.DecodeOptions, maxLong, maxShort int) image.Image {
	if d.next >= len(d.files) {
		d.shuffle()
	}
	path := d.files[d.next]
	d.next++

	img, err := decodeFile(path, opts.TempStorage)
	if err != nil {
		phototable.Logger().Warn("source: decode failed", "path", path, "err", err)
		return nil
	}
	img = resize(img, maxLong, maxShort)
	b := img.Bounds()
	opts.OutWidth, opts.OutHeight = b.Dx(), b.Dy()
	opts.OutName = displayName(path)
	return img
}

// decodeFile reads the header into scratch to check the image size before
// decoding the whole file.
func decodeFile(path string, scratch []byte) (image.Image, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the directory walk
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	if len(scratch) == 0 {
		scratch = make([]byte, 512)
	}
	n, err := io.ReadFull(f, scratch)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, err
	}
	head := scratch[:n]

	body := io.MultiReader(bytes.NewReader(head), f)
	cfg, _, err := image.DecodeConfig(bytes.NewReader(head))
	if err != nil {
		// The header did not fit in scratch: read it from the file.
		if cfg, _, err = image.DecodeConfig(body); err != nil {
			return nil, err
		}
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
		body = f
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width*cfg.Height > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooLarge, cfg.Width, cfg.Height)
	}

	img, _, err := image.Decode(body)
	return img, err
}

// displayName is the file name without extension, in NFC.
func displayName(path string) string {
	base := filepath.Base(path)
	return norm.NFC.String(strings.TrimSuffix(base, filepath.Ext(base)))
}
