package viz

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"io"
)

const (
	cellW = 8
	cellH = 16
)

// Rasterize paints the braille dots of c onto a two-colour image, one
// cellW x cellH block per character. Text labels are not rendered.
func Rasterize(c *Canvas, fg color.Color) *image.Paletted {
	imgW, imgH := c.Width*cellW, c.Height*cellH
	img := image.NewPaletted(image.Rect(0, 0, imgW, imgH), color.Palette{color.Black, fg})
	dotW, dotH := cellW/2, cellH/4
	pw, ph := c.PixelSize()
	for y := 0; y < ph; y++ {
		for x := 0; x < pw; x++ {
			if !c.IsSet(x, y) {
				continue
			}
			for py := 0; py < dotH; py++ {
				for px := 0; px < dotW; px++ {
					img.SetColorIndex(x*dotW+px, y*dotH+py, 1)
				}
			}
		}
	}
	return img
}

// EncodeGIF writes images as a looping animation with delay hundredths of
// a second between frames.
func EncodeGIF(w io.Writer, images []*image.Paletted, delay int) error {
	if len(images) == 0 {
		return errors.New("viz: no frames to encode")
	}
	if delay < 1 {
		delay = 1
	}
	anim := gif.GIF{LoopCount: 0}
	for _, img := range images {
		anim.Image = append(anim.Image, img)
		anim.Delay = append(anim.Delay, delay)
	}
	return gif.EncodeAll(w, &anim)
}

// WriteGIF rasterizes frames and encodes them at fps.
func WriteGIF(w io.Writer, frames []*Canvas, fps int) error {
	if fps <= 0 {
		fps = 10
	}
	images := make([]*image.Paletted, len(frames))
	for i, f := range frames {
		images[i] = Rasterize(f, color.White)
	}
	return EncodeGIF(w, images, 100/fps)
}
