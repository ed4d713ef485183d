// Package raster holds the RGB pixel grid consumed by the quadtree builder.
//
// A Raster is an immutable-by-convention, row-major grid of 8-bit RGB triples.
// It can be created directly, converted from any image.Image, or decoded from
// an encoded image stream. Decoding understands binary PPM (P6) through
// github.com/lmittmann/ppm and QOI through github.com/xfmoulet/qoi, plus PNG
// from the standard library.
package raster

import (
	"fmt"
	"image"
	"image/color"

	"github.com/arloliu/quadpack/errs"
)

// Color is an 8-bit RGB triple.
type Color struct {
	R, G, B uint8
}

// RGBA implements color.Color. Colors are always fully opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8

	return r, g, b, 0xffff
}

// ColorFrom converts any color.Color to Color, dropping alpha.
func ColorFrom(c color.Color) Color {
	n, _ := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B}
}

// Raster is a rows x cols grid of Color.
type Raster struct {
	rows, cols int
	pix        []Color
}

// New creates a black raster with the given dimensions.
func New(rows, cols int) (*Raster, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: raster %dx%d", errs.ErrInvalidDimensions, rows, cols)
	}

	return &Raster{
		rows: rows,
		cols: cols,
		pix:  make([]Color, rows*cols),
	}, nil
}

// FromPixels wraps a row-major pixel slice. len(pix) must equal rows*cols.
func FromPixels(rows, cols int, pix []Color) (*Raster, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: raster %dx%d", errs.ErrInvalidDimensions, rows, cols)
	}
	if len(pix) != rows*cols {
		return nil, fmt.Errorf("%w: %d pixels for a %dx%d raster", errs.ErrMalformedInput, len(pix), rows, cols)
	}

	return &Raster{rows: rows, cols: cols, pix: pix}, nil
}

// Fill creates a raster where every pixel is c.
func Fill(rows, cols int, c Color) (*Raster, error) {
	r, err := New(rows, cols)
	if err != nil {
		return nil, err
	}
	for i := range r.pix {
		r.pix[i] = c
	}

	return r, nil
}

// FromImage copies img into a new Raster. Row 0 is the top of img's bounds.
func FromImage(img image.Image) (*Raster, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", errs.ErrMalformedInput)
	}

	b := img.Bounds()
	r, err := New(b.Dy(), b.Dx())
	if err != nil {
		return nil, err
	}

	switch src := img.(type) {
	case *image.RGBA:
		copyPix(r, src.Pix, src.Stride, src.PixOffset(b.Min.X, b.Min.Y))
	case *image.NRGBA:
		copyPix(r, src.Pix, src.Stride, src.PixOffset(b.Min.X, b.Min.Y))
	default:
		for y := 0; y < r.rows; y++ {
			for x := 0; x < r.cols; x++ {
				r.pix[y*r.cols+x] = ColorFrom(img.At(b.Min.X+x, b.Min.Y+y))
			}
		}
	}

	return r, nil
}

// copyPix reads 4-byte RGBA pixels. Opaque images are the expected input, so
// the premultiplied and straight layouts are treated alike.
func copyPix(r *Raster, pix []uint8, stride, offset int) {
	for y := 0; y < r.rows; y++ {
		row := pix[offset+y*stride:]
		for x := 0; x < r.cols; x++ {
			p := row[x*4 : x*4+3]
			r.pix[y*r.cols+x] = Color{R: p[0], G: p[1], B: p[2]}
		}
	}
}

// Rows returns the number of pixel rows (image height).
func (r *Raster) Rows() int { return r.rows }

// Cols returns the number of pixel columns (image width).
func (r *Raster) Cols() int { return r.cols }

// Square returns the side of the largest top-left square, min(rows, cols).
func (r *Raster) Square() int {
	return min(r.rows, r.cols)
}

// Excluded returns the number of pixels outside the top-left square.
func (r *Raster) Excluded() int {
	side := r.Square()
	return r.rows*r.cols - side*side
}

// At returns the pixel at (row, col). It panics when out of range.
func (r *Raster) At(row, col int) Color {
	return r.pix[row*r.cols+col]
}

// Set stores c at (row, col). It panics when out of range.
func (r *Raster) Set(row, col int, c Color) {
	r.pix[row*r.cols+col] = c
}

// Contains reports whether the square [top, top+size) x [left, left+size)
// lies inside the raster.
func (r *Raster) Contains(top, left, size int) bool {
	return top >= 0 && left >= 0 && size > 0 && top+size <= r.rows && left+size <= r.cols
}

// Row returns the pixels of one row. The slice aliases the raster.
func (r *Raster) Row(row int) []Color {
	return r.pix[row*r.cols : (row+1)*r.cols]
}

// ToImage copies the raster into an *image.RGBA.
func (r *Raster) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.cols, r.rows))
	for y := 0; y < r.rows; y++ {
		for x, c := range r.Row(y) {
			i := img.PixOffset(x, y)
			img.Pix[i+0] = c.R
			img.Pix[i+1] = c.G
			img.Pix[i+2] = c.B
			img.Pix[i+3] = 0xff
		}
	}

	return img
}
