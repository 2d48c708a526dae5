package service

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"net/http"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

const (
	PhotoSize        = 256
	PhotoContentType = "image/webp"
	MaxPhotoBytes    = 5 << 20

	photoQuality = 80
)

var (
	ErrEmptyPhoto       = errors.New("photo is empty")
	ErrPhotoTooLarge    = errors.New("photo exceeds 5MB")
	ErrUnsupportedPhoto = errors.New("unsupported image format")
)

// ProcessPhoto decodes a jpeg/png/gif/webp upload, applies the EXIF orientation,
// crops it to a centred PhotoSize square and re-encodes it as WebP.
func ProcessPhoto(raw []byte) ([]byte, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyPhoto
	}
	if len(raw) > MaxPhotoBytes {
		return nil, ErrPhotoTooLarge
	}

	img, err := decodePhoto(raw)
	if err != nil {
		return nil, err
	}

	square := imaging.Fill(img, PhotoSize, PhotoSize, imaging.Center, imaging.Lanczos)

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, square, &webp.Options{Quality: photoQuality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}

func decodePhoto(raw []byte) (image.Image, error) {
	head := raw
	if len(head) > 512 {
		head = head[:512]
	}
	ct := http.DetectContentType(head)

	switch {
	case strings.Contains(ct, "webp"):
		img, err := webp.Decode(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedPhoto, err)
		}
		return img, nil
	case strings.HasPrefix(ct, "image/"):
		img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedPhoto, err)
		}
		return img, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPhoto, ct)
	}
}
