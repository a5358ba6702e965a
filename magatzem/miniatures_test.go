package magatzem

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func imatgePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("codificant PNG de prova: %v", err)
	}
	return buf.Bytes()
}

// TestMiniaturaRedueix: una imatge gran queda dins del costat màxim
// mantenint la proporció.
func TestMiniaturaRedueix(t *testing.T) {
	out, err := Miniatura(imatgePNG(t, 1024, 512), MidaMiniatura)
	if err != nil {
		t.Fatalf("Miniatura: %v", err)
	}

	img, format, err := image.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("descodificant la miniatura: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("format = %q, vull jpeg", format)
	}
	b := img.Bounds()
	if b.Dx() != MidaMiniatura {
		t.Errorf("amplada = %d, vull %d", b.Dx(), MidaMiniatura)
	}
	if b.Dy() != MidaMiniatura/2 {
		t.Errorf("alçada = %d, vull %d (proporció 2:1)", b.Dy(), MidaMiniatura/2)
	}
}

// TestMiniaturaPetita: si ja cap, no s'escala, només es recodifica.
func TestMiniaturaPetita(t *testing.T) {
	out, err := Miniatura(imatgePNG(t, 100, 80), MidaMiniatura)
	if err != nil {
		t.Fatalf("Miniatura: %v", err)
	}
	img, _, err := image.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("descodificant: %v", err)
	}
	if img.Bounds().Dx() != 100 || img.Bounds().Dy() != 80 {
		t.Errorf("mides = %dx%d, vull 100x80", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestMiniaturaInvalida(t *testing.T) {
	if _, err := Miniatura([]byte("això no és cap imatge"), MidaMiniatura); err == nil {
		t.Error("esperava error amb dades que no són imatge")
	}
}
