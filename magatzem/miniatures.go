package magatzem

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// MidaMiniatura és el costat màxim de les miniatures de les llistes.
const MidaMiniatura = 320

// Miniatura redueix la imatge perquè el costat més llarg no superi maxCostat
// i la retorna com a JPEG. Si ja és prou petita, només es recodifica.
func Miniatura(data []byte, maxCostat int) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("descodificant la imatge: %w", err)
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > maxCostat || h > maxCostat {
		if w >= h {
			h = h * maxCostat / w
			w = maxCostat
		} else {
			w = w * maxCostat / h
			h = maxCostat
		}
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
		src = dst
	}

	var out bytes.Buffer
	if err := jpeg.Encode(&out, src, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("codificant la miniatura: %w", err)
	}
	return out.Bytes(), nil
}
