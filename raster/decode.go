package raster

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	_ "image/png" // register png
	"io"
	"os"

	"github.com/arloliu/quadpack/errs"
	_ "github.com/lmittmann/ppm" // register ppm
	_ "github.com/xfmoulet/qoi"  // register qoi
)

// Decode reads an encoded image (PPM, QOI or PNG) and returns its raster and
// the detected format name.
//
// A failure of rd itself is reported as errs.ErrIO. Any decoding failure,
// including a truncated pixel section, is reported as errs.ErrMalformedInput.
// No partially filled raster is ever returned.
func Decode(rd io.Reader) (*Raster, string, error) {
	src := &errReader{r: rd}
	img, name, err := image.Decode(bufio.NewReader(src))
	if err != nil {
		if src.err != nil {
			return nil, "", fmt.Errorf("%w: read image: %w", errs.ErrIO, src.err)
		}
		if errors.Is(err, image.ErrFormat) {
			return nil, "", fmt.Errorf("%w: unrecognized image format", errs.ErrMalformedInput)
		}

		return nil, "", fmt.Errorf("%w: decode %s: %w", errs.ErrMalformedInput, name, err)
	}

	r, err := FromImage(img)
	if err != nil {
		return nil, "", err
	}

	return r, name, nil
}

// DecodeFile opens path and decodes it with Decode. Filesystem failures are
// reported as errs.ErrIO.
func DecodeFile(path string) (*Raster, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("%w: open %s: %w", errs.ErrIO, path, err)
	}
	defer f.Close()

	return Decode(f)
}

// errReader records the first non-EOF error of the underlying reader, so it
// can be told apart from a decoder complaining about the bytes it got.
type errReader struct {
	r   io.Reader
	err error
}

func (e *errReader) Read(p []byte) (int, error) {
	n, err := e.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) && e.err == nil {
		e.err = err
	}

	return n, err
}
