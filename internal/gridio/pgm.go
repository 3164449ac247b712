package gridio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/gogpu/morpho"
)

// ErrMalformedPGM is returned for PGM data that does not follow the netpbm
// layout, or uses a maximum value above 255.
var ErrMalformedPGM = errors.New("gridio: malformed PGM")

// Plain PGM lines should stay under 70 characters.
const plainPerLine = 17

// maxPixels bounds the raster a header may announce.
const maxPixels = 1 << 28

// DecodePGM reads a P2 or P5 grid. Samples are stored as read, without
// rescaling to the maximum value, so structuring-function weights keep
// their meaning.
func DecodePGM(r io.Reader) (*morpho.Gray8, error) {
	return decodePGM(bufio.NewReader(r))
}

func decodePGM(br *bufio.Reader) (*morpho.Gray8, error) {
	magic, err := token(br)
	if err != nil {
		return nil, err
	}
	if magic != "P2" && magic != "P5" {
		return nil, fmt.Errorf("%w: magic %q", ErrMalformedPGM, magic)
	}

	var dims [3]int
	for i := range dims {
		tok, err := token(br)
		if err != nil {
			return nil, err
		}
		n, err := strconv.Atoi(tok)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%w: header field %q", ErrMalformedPGM, tok)
		}
		dims[i] = n
	}
	width, height, maxval := dims[0], dims[1], dims[2]
	if maxval > 255 {
		return nil, fmt.Errorf("%w: maxval %d", ErrMalformedPGM, maxval)
	}
	if width > maxPixels/height {
		return nil, fmt.Errorf("%w: %dx%d raster exceeds %d pixels", ErrMalformedPGM, width, height, maxPixels)
	}

	g := morpho.NewGray8(width, height)
	if magic == "P5" {
		// token consumed the single whitespace byte ending the header.
		if _, err := io.ReadFull(br, g.Pix); err != nil {
			return nil, fmt.Errorf("%w: raster: %w", ErrMalformedPGM, err)
		}
		return g, nil
	}

	for i := range g.Pix {
		tok, err := token(br)
		if err != nil {
			return nil, err
		}
		v, err := strconv.Atoi(tok)
		if err != nil || v < 0 || v > maxval {
			return nil, fmt.Errorf("%w: sample %q", ErrMalformedPGM, tok)
		}
		g.Pix[i] = uint8(v)
	}
	return g, nil
}

// token returns the next whitespace-separated header or P2 token, skipping
// '#' comments.
func token(br *bufio.Reader) (string, error) {
	var buf []byte
	for {
		c, err := br.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) && len(buf) > 0 {
				return string(buf), nil
			}
			return "", fmt.Errorf("%w: %w", ErrMalformedPGM, io.ErrUnexpectedEOF)
		}
		switch {
		case c == '#' && len(buf) == 0:
			if _, err := br.ReadString('\n'); err != nil && !errors.Is(err, io.EOF) {
				return "", fmt.Errorf("gridio: read: %w", err)
			}
		case isSpace(c):
			if len(buf) > 0 {
				return string(buf), nil
			}
		default:
			buf = append(buf, c)
		}
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

// EncodePGM writes g as binary P5, or as ASCII P2 when plain is set.
func EncodePGM(w io.Writer, g *morpho.Gray8, plain bool) error {
	if err := g.Validate(); err != nil {
		return fmt.Errorf("gridio: encode: %w", err)
	}

	magic := "P5"
	if plain {
		magic = "P2"
	}
	if _, err := fmt.Fprintf(w, "%s\n%d %d\n255\n", magic, g.Width, g.Height); err != nil {
		return fmt.Errorf("gridio: write header: %w", err)
	}
	if !plain {
		if _, err := w.Write(g.Pix); err != nil {
			return fmt.Errorf("gridio: write raster: %w", err)
		}
		return nil
	}

	line := make([]byte, 0, 4*plainPerLine)
	for y := range g.Height {
		row := g.Pix[y*g.Width : (y+1)*g.Width]
		for i, v := range row {
			if i > 0 && i%plainPerLine != 0 {
				line = append(line, ' ')
			}
			line = strconv.AppendInt(line, int64(v), 10)
			if (i+1)%plainPerLine == 0 || i == len(row)-1 {
				line = append(line, '\n')
				if _, err := w.Write(line); err != nil {
					return fmt.Errorf("gridio: write raster: %w", err)
				}
				line = line[:0]
			}
		}
	}
	return nil
}
