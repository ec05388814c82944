package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	_ "image/gif"
	_ "image/png"

	"github.com/disintegration/imaging"
)

// ImageProcessor validates notification image uploads and re-encodes
// them to JPEG, so the stored <code>.jpeg object is always a real JPEG
// regardless of the uploaded format.
type ImageProcessor struct {
	MaxSize int64 // bytes
	MaxDim  int   // longest edge after resize
}

func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{
		MaxSize: 5 * 1024 * 1024, // 5MB
		MaxDim:  1600,
	}
}

// ValidateImage checks size and that the payload decodes as JPEG or PNG.
func (p *ImageProcessor) ValidateImage(data []byte) error {
	if int64(len(data)) > p.MaxSize {
		return fmt.Errorf("image exceeds %dMB", p.MaxSize/(1024*1024))
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("not an image: %w", err)
	}
	switch format {
	case "jpeg", "png":
		return nil
	default:
		return fmt.Errorf("image format %s not allowed (only jpeg/png)", format)
	}
}

// TranscodeJPEG decodes the upload, bounds it to MaxDim and encodes
// JPEG quality 90.
func (p *ImageProcessor) TranscodeJPEG(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("cannot decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > p.MaxDim || bounds.Dy() > p.MaxDim {
		img = imaging.Fit(img, p.MaxDim, p.MaxDim, imaging.Lanczos)
	}

	b := new(bytes.Buffer)
	if err := jpeg.Encode(b, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("cannot encode jpeg: %w", err)
	}
	return b.Bytes(), nil
}
