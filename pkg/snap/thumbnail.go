package snap

import (
	"bytes"
	"image"

	_ "image/jpeg" // decoders for Thumbnail
	_ "image/png"

	"github.com/disintegration/imaging"

	"github.com/snapkit/snapcard/pkg/errors"
)

// ThumbnailEdge is the preview bounding box the render API uses.
const ThumbnailEdge = 256

// Thumbnail decodes an encoded snap and scales it to fit within a
// maxEdge x maxEdge box, preserving aspect ratio. The webp decoder
// registers itself via the encoder import in encode.go.
func Thumbnail(e *EncodedImage, maxEdge int) (image.Image, error) {
	if maxEdge <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "thumbnail edge must be positive (got %d)", maxEdge)
	}
	img, _, err := image.Decode(bytes.NewReader(e.Data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeEncode, err, "decode %s snap", e.MIME)
	}
	return imaging.Fit(img, maxEdge, maxEdge, imaging.Lanczos), nil
}

// EncodeThumbnail produces a PNG preview of an encoded snap fitting
// within maxEdge. Previews are always PNG regardless of the snap's
// own format.
func EncodeThumbnail(e *EncodedImage, maxEdge int) (*EncodedImage, error) {
	img, err := Thumbnail(e, maxEdge)
	if err != nil {
		return nil, err
	}
	data, err := encode(img, FormatPNG, 0)
	if err != nil {
		return nil, err
	}
	return &EncodedImage{Data: data, MIME: MIMEType(FormatPNG)}, nil
}
