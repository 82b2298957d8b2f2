package placeholder

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/goliatone/go-cardforge/pkg/model"
)

func TestURL(t *testing.T) {
	cases := []struct {
		name   string
		base   string
		params Params
		want   string
	}{
		{
			name:   "box size with text",
			params: ForBox("240px", "140px").WithConfig(&model.PlaceholderConfig{BgColor: "#334155", Text: "Art"}),
			want:   "https://placehold.co/240x140/334155/475569?text=Art",
		},
		{
			name:   "unparsable box defaults",
			base:   "http://localhost:8080/placeholder/",
			params: ForBox("auto", "50%"),
			want:   "http://localhost:8080/placeholder/100x100/e2e8f0/475569",
		},
		{
			name:   "config dimensions win",
			params: ForBox("10px", "10px").WithConfig(&model.PlaceholderConfig{Width: 64, Height: 32, TextColor: "FFF"}),
			want:   "https://placehold.co/64x32/e2e8f0/fff",
		},
		{
			name:   "escaped text",
			params: Params{Width: 20, Height: 20, Background: "not-a-color", Text: InvalidSourceText},
			want:   "https://placehold.co/20x20/e2e8f0/475569?text=Invalid+Source",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := URL(tc.base, tc.params); got != tc.want {
				t.Fatalf("URL() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestForElement(t *testing.T) {
	cfg := &model.PlaceholderConfig{Width: 300, Height: 200, BgColor: "000", Text: "Art"}

	if got := ForElement("240px", "140px", cfg); got.Width != 240 || got.Height != 140 || got.Text != "Art" || got.Background != "000" {
		t.Fatalf("box should win: %+v", got)
	}
	if got := ForElement("auto", "", cfg); got.Width != 300 || got.Height != 200 {
		t.Fatalf("config dims expected: %+v", got)
	}
	if got := ForElement("auto", "", nil); got.Width != DefaultSize || got.Height != DefaultSize {
		t.Fatalf("default dims expected: %+v", got)
	}
}

func TestParseSize(t *testing.T) {
	if w, h, err := ParseSize("240x140"); err != nil || w != 240 || h != 140 {
		t.Fatalf("ParseSize = %d, %d, %v", w, h, err)
	}
	for _, bad := range []string{"", "0x10", "10", "9999x10", "axb"} {
		if _, _, err := ParseSize(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestPNG(t *testing.T) {
	data, err := PNG(Params{Width: 40, Height: 20, Background: "ff0000", Foreground: "00ff00"})
	if err != nil {
		t.Fatalf("png: %v", err)
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 20 {
		t.Fatalf("unexpected bounds %v", b)
	}
	if got := color.NRGBAModel.Convert(img.At(0, 0)).(color.NRGBA); got != (color.NRGBA{G: 0xff, A: 0xff}) {
		t.Fatalf("frame pixel = %v", got)
	}
	if got := color.NRGBAModel.Convert(img.At(20, 3)).(color.NRGBA); got != (color.NRGBA{R: 0xff, A: 0xff}) {
		t.Fatalf("background pixel = %v", got)
	}
}

func TestPNG_DrawsText(t *testing.T) {
	bg := color.NRGBA{R: 0xff, A: 0xff}
	fg := color.NRGBA{G: 0xff, A: 0xff}
	countForeground := func(text string) int {
		t.Helper()
		data, err := PNG(Params{Width: 160, Height: 40, Background: "ff0000", Foreground: "00ff00", Text: text})
		if err != nil {
			t.Fatalf("png: %v", err)
		}
		img, err := imaging.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		// The label band spans the middle of the image; the frame and cross
		// are excluded by looking only at columns away from the diagonals.
		count := 0
		for y := 14; y < 27; y++ {
			for _, x := range []int{35, 40, 45, 115, 120, 125} {
				got := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
				switch got {
				case fg:
					count++
				case bg:
				default:
					t.Fatalf("unexpected pixel %v at %d,%d", got, x, y)
				}
			}
		}
		return count
	}

	if n := countForeground(""); n != 0 {
		t.Fatalf("no text should leave the band empty, got %d pixels", n)
	}
	if n := countForeground(InvalidSourceText); n == 0 {
		t.Fatalf("expected %q to be drawn", InvalidSourceText)
	}
}

func TestParseColor(t *testing.T) {
	got, err := ParseColor("0af")
	if err != nil || got != (color.NRGBA{R: 0x00, G: 0xaa, B: 0xff, A: 0xff}) {
		t.Fatalf("ParseColor = %v, %v", got, err)
	}
	if _, err := ParseColor("zzz"); err == nil {
		t.Fatalf("expected error")
	}
}
