package posters

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

// thumbnailMaxEdge bounds the longest side of a gallery thumbnail.
const thumbnailMaxEdge = 480

// MakeThumbnail decodes an uploaded image and re-encodes it as a JPEG
// thumbnail bounded to thumbnailMaxEdge on the longest side. Images
// already within bounds re-encode at their original size.
func MakeThumbnail(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > thumbnailMaxEdge || bounds.Dy() > thumbnailMaxEdge {
		img = imaging.Fit(img, thumbnailMaxEdge, thumbnailMaxEdge, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
