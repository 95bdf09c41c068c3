package compositor

import (
	"image"
)

// PackRGB24 flattens a composed frame into the raw 3-bytes-per-pixel
// layout the encoder's frame pipe expects (len = width*height*3).
func PackRGB24(img *image.NRGBA) []byte {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := make([]byte, w*h*3)

	di := 0
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := 0; x < w*4; x += 4 {
			out[di+0] = row[x+0]
			out[di+1] = row[x+1]
			out[di+2] = row[x+2]
			di += 3
		}
	}
	return out
}
