package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
)

const thumbnailQuality = 85

var ErrNotImage = errors.New("content is not a decodable image")

// Thumbnail decodes data and returns a JPEG that fits in a maxSize x maxSize box.
// Images already smaller than the box are re-encoded at their own size.
func Thumbnail(data []byte, maxSize uint) ([]byte, error) {
	if maxSize == 0 {
		return nil, errors.New("thumbnail size must be positive")
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotImage, err)
	}

	thumb := resize.Thumbnail(maxSize, maxSize, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: thumbnailQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
