package theme

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type rgb struct{ r, g, b float64 }

func parseHex(hex string) (rgb, bool) {
	h := strings.TrimPrefix(hex, "#")
	if len(h) != 6 {
		return rgb{}, false
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return rgb{}, false
	}
	return rgb{float64(v >> 16 & 0xff), float64(v >> 8 & 0xff), float64(v & 0xff)}, true
}

func (c rgb) hex() string {
	clamp := func(v float64) int {
		return int(math.Max(0, math.Min(255, math.Round(v))))
	}
	return fmt.Sprintf("#%02x%02x%02x", clamp(c.r), clamp(c.g), clamp(c.b))
}

// mix moves c toward target by t in [0,1].
func (c rgb) mix(target rgb, t float64) rgb {
	return rgb{
		c.r + (target.r-c.r)*t,
		c.g + (target.g-c.g)*t,
		c.b + (target.b-c.b)*t,
	}
}

func linear(channel float64) float64 {
	v := channel / 255
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// Luminance is the WCAG relative luminance, 0 for black and 1 for white.
// Invalid colors count as black.
func Luminance(hex string) float64 {
	c, ok := parseHex(hex)
	if !ok {
		return 0
	}
	return 0.2126*linear(c.r) + 0.7152*linear(c.g) + 0.0722*linear(c.b)
}

// ContrastRatio is the WCAG ratio between two colors, from 1 to 21.
func ContrastRatio(a, b string) float64 {
	l1, l2 := Luminance(a), Luminance(b)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// IsLight reports whether a color reads as a light background.
func IsLight(hex string) bool {
	return Luminance(hex) > 0.5
}

var (
	white = rgb{255, 255, 255}
	black = rgb{0, 0, 0}
)

// EnsureContrast pushes fg away from bg until minRatio is met, ending at
// black or white if needed. Use 4.5 for WCAG AA.
func EnsureContrast(fg, bg string, minRatio float64) string {
	if ContrastRatio(fg, bg) >= minRatio {
		return fg
	}
	c, ok := parseHex(fg)
	if !ok {
		c = black
	}
	target := white
	if IsLight(bg) {
		target = black
	}
	for step := 1; step <= 10; step++ {
		candidate := c.mix(target, float64(step)/10).hex()
		if ContrastRatio(candidate, bg) >= minRatio {
			return candidate
		}
	}
	if IsLight(bg) {
		return "#000000"
	}
	return "#ffffff"
}
