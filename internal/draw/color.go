package draw

import (
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
)

// ANSI attribute sequences.
const (
	ColorReset = "\033[0m"
	Bold       = "\033[1m"
)

// Common colours.
var (
	White = colorful.Color{R: 1, G: 1, B: 1}
	Black = colorful.Color{}
	Grey  = colorful.Color{R: 0.55, G: 0.55, B: 0.6}
)

// Hex parses a "#rrggbb" colour. Malformed input yields white.
func Hex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return White
	}
	return c
}

// Fade blends c over bg by alpha in [0,1].
func Fade(c, bg colorful.Color, alpha float64) colorful.Color {
	switch {
	case alpha <= 0:
		return bg
	case alpha >= 1:
		return c
	}
	return bg.BlendRgb(c, alpha).Clamped()
}

// rgb is a quantized colour, comparable between frames.
type rgb struct {
	r, g, b uint8
}

func toRGB(c colorful.Color) rgb {
	r, g, b := c.Clamped().RGB255()
	return rgb{r: r, g: g, b: b}
}

// FgSeq returns the 24-bit foreground escape for c.
func FgSeq(c colorful.Color) string {
	return string(appendColor(nil, toRGB(c), 38))
}

// appendColor appends an SGR truecolor sequence. layer is 38 (fg) or 48 (bg).
func appendColor(dst []byte, c rgb, layer int) []byte {
	dst = append(dst, "\033["...)
	dst = strconv.AppendInt(dst, int64(layer), 10)
	dst = append(dst, ";2;"...)
	dst = strconv.AppendInt(dst, int64(c.r), 10)
	dst = append(dst, ';')
	dst = strconv.AppendInt(dst, int64(c.g), 10)
	dst = append(dst, ';')
	dst = strconv.AppendInt(dst, int64(c.b), 10)
	return append(dst, 'm')
}
