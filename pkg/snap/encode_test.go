package snap

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 32), G: uint8(y * 32), B: 128, A: 255})
		}
	}
	return img
}

func TestEncodeFormats(t *testing.T) {
	img := testImage()

	for _, format := range []string{FormatPNG, FormatJPEG, FormatWebP} {
		data, err := encode(img, format, 0.92)
		if err != nil {
			t.Errorf("encode(%s): %v", format, err)
			continue
		}
		if len(data) == 0 {
			t.Errorf("encode(%s): empty output", format)
		}
	}

	if _, err := encode(img, "tiff", 0.92); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestEncodeQualityClamp(t *testing.T) {
	img := testImage()

	// Out-of-range qualities are clamped, not rejected.
	for _, q := range []float64{-1, 0, 0.5, 1, 2} {
		if _, err := encode(img, FormatJPEG, q); err != nil {
			t.Errorf("encode(jpeg, %v): %v", q, err)
		}
	}
}

func TestJPEGQuality(t *testing.T) {
	tests := []struct {
		q    float64
		want int
	}{
		{0, 1}, // floor: the encoder rejects 0
		{0.005, 1},
		{0.5, 50},
		{0.92, 92},
		{1, 100},
	}
	for _, tt := range tests {
		if got := jpegQuality(tt.q); got != tt.want {
			t.Errorf("jpegQuality(%v) = %d, want %d", tt.q, got, tt.want)
		}
	}
}

func TestDataURI(t *testing.T) {
	e := &EncodedImage{Data: []byte("fake"), MIME: "image/png"}

	uri := e.DataURI()
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Errorf("DataURI = %q, want data:image/png;base64, prefix", uri)
	}
	if uri != "data:image/png;base64,ZmFrZQ==" {
		t.Errorf("DataURI = %q", uri)
	}
}

func TestThumbnail(t *testing.T) {
	data, err := encode(testImage(), FormatPNG, 1)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	e := &EncodedImage{Data: data, MIME: "image/png"}

	thumb, err := Thumbnail(e, 4)
	if err != nil {
		t.Fatalf("Thumbnail: %v", err)
	}
	b := thumb.Bounds()
	if b.Dx() > 4 || b.Dy() > 4 {
		t.Errorf("thumbnail = %dx%d, want within 4x4", b.Dx(), b.Dy())
	}

	if _, err := Thumbnail(e, 0); err == nil {
		t.Error("non-positive edge should fail")
	}
	if _, err := Thumbnail(&EncodedImage{Data: []byte("junk"), MIME: "image/png"}, 4); err == nil {
		t.Error("undecodable data should fail")
	}
}

func TestEncodeThumbnail(t *testing.T) {
	data, err := encode(testImage(), FormatJPEG, 0.9)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	e := &EncodedImage{Data: data, MIME: "image/jpeg"}

	thumb, err := EncodeThumbnail(e, 4)
	if err != nil {
		t.Fatalf("EncodeThumbnail: %v", err)
	}
	// Previews are PNG even for jpeg snaps.
	if thumb.MIME != "image/png" {
		t.Errorf("MIME = %q, want image/png", thumb.MIME)
	}
	img, err := png.Decode(bytes.NewReader(thumb.Data))
	if err != nil {
		t.Fatalf("decode preview: %v", err)
	}
	b := img.Bounds()
	if b.Dx() > 4 || b.Dy() > 4 {
		t.Errorf("preview = %dx%d, want within 4x4", b.Dx(), b.Dy())
	}
}
