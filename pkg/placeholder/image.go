package placeholder

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// PNG draws the placeholder: a filled background with a framed cross in the
// foreground color and, when set, the text centered on a background band.
func PNG(s Params) ([]byte, error) {
	s = s.Normalized()
	bg, err := ParseColor(s.Background)
	if err != nil {
		return nil, err
	}
	fg, err := ParseColor(s.Foreground)
	if err != nil {
		return nil, err
	}

	img := imaging.New(s.Width, s.Height, bg)
	drawFrame(img, fg)
	drawLabel(img, s.Text, bg, fg)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("placeholder: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseColor parses a 3 or 6 digit hex color without the leading '#'.
func ParseColor(value string) (color.NRGBA, error) {
	if !hexColorPattern.MatchString(value) {
		return color.NRGBA{}, fmt.Errorf("placeholder: invalid color %q", value)
	}
	if len(value) == 3 {
		value = string([]byte{value[0], value[0], value[1], value[1], value[2], value[2]})
	}
	n, err := strconv.ParseUint(value, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("placeholder: invalid color %q: %w", value, err)
	}
	return color.NRGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 0xff}, nil
}

func drawFrame(img *image.NRGBA, c color.NRGBA) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	for x := 0; x < w; x++ {
		img.SetNRGBA(x, 0, c)
		img.SetNRGBA(x, h-1, c)
	}
	for y := 0; y < h; y++ {
		img.SetNRGBA(0, y, c)
		img.SetNRGBA(w-1, y, c)
	}
	steps := w
	if h > steps {
		steps = h
	}
	for i := 0; i < steps; i++ {
		x := i * (w - 1) / max(steps-1, 1)
		y := i * (h - 1) / max(steps-1, 1)
		img.SetNRGBA(x, y, c)
		img.SetNRGBA(w-1-x, y, c)
	}
}

// drawLabel writes text centered in img with the 7x13 bitmap face. Text
// wider than the image is clipped.
func drawLabel(img *image.NRGBA, text string, bg, fg color.NRGBA) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	face := basicfont.Face7x13
	d := &font.Drawer{Dst: img, Src: image.NewUniform(fg), Face: face}

	bounds := img.Bounds()
	width := d.MeasureString(text).Ceil()
	height := face.Ascent + face.Descent
	x := (bounds.Dx() - width) / 2
	y := (bounds.Dy() - height) / 2

	band := image.Rect(x-2, y-2, x+width+2, y+height+2).Intersect(bounds)
	draw.Draw(img, band, image.NewUniform(bg), image.Point{}, draw.Src)

	d.Dot = fixed.P(x, y+face.Ascent)
	d.DrawString(text)
}
