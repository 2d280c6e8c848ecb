package content

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	"golang.org/x/image/draw"
)

const (
	maxCoverWidth = 1200
	jpegQuality   = 82
)

// Cover describes a processed cover image.
type Cover struct {
	Filename string
	Width    int
	Height   int
	Size     int
}

// ProcessCover decodes a GIF, PNG or JPEG cover, downscales it to at most
// maxCoverWidth and re-encodes it as JPEG named after slug.
func ProcessCover(src io.Reader, slug string) (Cover, []byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return Cover{}, nil, fmt.Errorf("decode cover: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxCoverWidth {
		newH := h * maxCoverWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxCoverWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		w, h = maxCoverWidth, newH
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return Cover{}, nil, fmt.Errorf("encode cover: %w", err)
	}
	return Cover{
		Filename: slug + ".jpg",
		Width:    w,
		Height:   h,
		Size:     buf.Len(),
	}, buf.Bytes(), nil
}
