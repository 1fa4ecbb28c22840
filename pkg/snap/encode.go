package snap

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/chai2010/webp"

	"github.com/snapkit/snapcard/pkg/errors"
)

// EncodedImage is a rendered snap: encoded bytes plus their MIME type.
type EncodedImage struct {
	Data []byte `json:"-"`
	MIME string `json:"mime"`
}

// DataURI returns the image as a base64 data URI
// (data:image/<format>;base64,...), the form the web editor hands to a
// download link or the clipboard.
func (e *EncodedImage) DataURI() string {
	return fmt.Sprintf("data:%s;base64,%s", e.MIME, base64.StdEncoding.EncodeToString(e.Data))
}

// encode serializes img in the requested format. Quality is clamped to
// [0,1] here rather than validated upstream; png ignores it.
func encode(img image.Image, format string, quality float64) ([]byte, error) {
	quality = clampQuality(quality)

	var buf bytes.Buffer
	var err error
	switch format {
	case FormatPNG:
		err = png.Encode(&buf, img)
	case FormatJPEG:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality(quality)})
	case FormatWebP:
		err = webp.Encode(&buf, img, &webp.Options{Quality: float32(quality * 100)})
	default:
		return nil, ValidateFormat(format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeEncode, err, "encode %s", format)
	}
	return buf.Bytes(), nil
}

func clampQuality(q float64) float64 {
	if q < 0 {
		return 0
	}
	if q > 1 {
		return 1
	}
	return q
}

// jpegQuality maps [0,1] to the encoder's 1..100 range.
func jpegQuality(q float64) int {
	jq := int(q * 100)
	if jq < 1 {
		jq = 1
	}
	return jq
}
