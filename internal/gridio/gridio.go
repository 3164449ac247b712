// Package gridio reads and writes 8-bit grids and structuring elements.
//
// PGM (P2 and P5) is handled directly so mask values survive unchanged.
// Every other format goes through the image codecs registered with the
// image package (PNG, JPEG, GIF, BMP, TIFF) and is converted to grey.
package gridio

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"go.uber.org/multierr"
	_ "golang.org/x/image/bmp" // register BMP
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register TIFF

	"github.com/gogpu/morpho"
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned for file extensions no encoder handles.
	ErrUnsupportedFormat = errors.New("gridio: unsupported format")

	// ErrEmptyData is returned when there is nothing to decode.
	ErrEmptyData = errors.New("gridio: empty data")
)

// Load reads a grid from path. The format is detected from the content.
func Load(path string) (*morpho.Gray8, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("gridio: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// LoadBytes decodes a grid held in memory.
func LoadBytes(data []byte) (*morpho.Gray8, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	return Decode(bytes.NewReader(data))
}

// Decode reads a grid from r. PGM data is recognised by its magic number;
// anything else is decoded with EXIF orientation applied and converted to
// grey.
func Decode(r io.Reader) (*morpho.Gray8, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyData
		}
		return nil, fmt.Errorf("gridio: read: %w", err)
	}
	if magic[0] == 'P' && (magic[1] == '2' || magic[1] == '5') {
		return decodePGM(br)
	}

	img, err := imaging.Decode(br, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("gridio: decode: %w", err)
	}
	return FromImage(img), nil
}

// Save writes g to path. A .pgm extension writes binary PGM; other
// extensions pick the matching encoder (.png, .jpg, .gif, .bmp, .tif).
func Save(path string, g *morpho.Gray8) error {
	if err := g.Validate(); err != nil {
		return fmt.Errorf("gridio: save: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".pgm") {
		return savePGM(filepath.Clean(path), g, false)
	}
	if _, err := imaging.FormatFromFilename(path); err != nil {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err := imaging.Save(ToImage(g), filepath.Clean(path)); err != nil {
		return fmt.Errorf("gridio: save: %w", err)
	}
	return nil
}

// SavePlain writes g as ASCII (P2) PGM.
func SavePlain(path string, g *morpho.Gray8) error {
	if err := g.Validate(); err != nil {
		return fmt.Errorf("gridio: save: %w", err)
	}
	return savePGM(filepath.Clean(path), g, true)
}

func savePGM(path string, g *morpho.Gray8, plain bool) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("gridio: create file: %w", err)
	}
	defer func() { err = multierr.Append(err, f.Close()) }()

	w := bufio.NewWriter(f)
	if err := EncodePGM(w, g, plain); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("gridio: write: %w", err)
	}
	return nil
}

// FromImage converts any image to a grid of luma samples.
func FromImage(img image.Image) *morpho.Gray8 {
	b := img.Bounds()
	g := morpho.NewGray8(b.Dx(), b.Dy())

	gray, ok := img.(*image.Gray)
	if !ok {
		gray = image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Copy(gray, image.Point{}, img, b, draw.Src, nil)
		b = gray.Bounds()
	}
	for y := range g.Height {
		off := gray.PixOffset(b.Min.X, b.Min.Y+y)
		copy(g.Pix[y*g.Width:(y+1)*g.Width], gray.Pix[off:off+g.Width])
	}
	return g
}

// ToImage wraps a copy of g as an *image.Gray.
func ToImage(g *morpho.Gray8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.Width, g.Height))
	copy(img.Pix, g.Pix)
	return img
}
