package contrast

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// RGB is an opaque sRGB color with 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as #rrggbb.
func (c RGB) Hex() string {
	const digits = "0123456789abcdef"
	b := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, v := range []uint8{c.R, c.G, c.B} {
		b[1+2*i] = digits[v>>4]
		b[2+2*i] = digits[v&0x0f]
	}
	return string(b)
}

// ParseColor parses a CSS color value. Only fully opaque colors resolve;
// transparent, partially transparent, keyword-only and malformed values
// report false.
func ParseColor(value string) (RGB, bool) {
	v := strings.ToLower(strings.TrimSpace(value))
	switch {
	case v == "":
		return RGB{}, false
	case strings.HasPrefix(v, "#"):
		return parseHex(v[1:])
	case strings.HasPrefix(v, "rgb(") || strings.HasPrefix(v, "rgba("):
		return parseRGBFunc(v)
	}
	if c, ok := colornames.Map[v]; ok {
		return RGB{R: c.R, G: c.G, B: c.B}, true
	}
	return RGB{}, false
}

func parseHex(h string) (RGB, bool) {
	switch len(h) {
	case 3, 4:
		expanded := make([]byte, 0, 2*len(h))
		for i := 0; i < len(h); i++ {
			expanded = append(expanded, h[i], h[i])
		}
		h = string(expanded)
	case 6, 8:
	default:
		return RGB{}, false
	}
	n, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, false
	}
	if len(h) == 8 {
		if n&0xff != 0xff {
			return RGB{}, false
		}
		n >>= 8
	}
	return RGB{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n)}, true
}

// parseRGBFunc handles rgb()/rgba() in both the comma and the space
// separated syntax, with numeric or percentage channels.
func parseRGBFunc(v string) (RGB, bool) {
	open := strings.IndexByte(v, '(')
	if open < 0 || !strings.HasSuffix(v, ")") {
		return RGB{}, false
	}
	body := v[open+1 : len(v)-1]
	alpha := ""
	if slash := strings.IndexByte(body, '/'); slash >= 0 {
		alpha = strings.TrimSpace(body[slash+1:])
		body = body[:slash]
	}
	parts := strings.FieldsFunc(body, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	switch len(parts) {
	case 3:
	case 4:
		if alpha != "" {
			return RGB{}, false
		}
		alpha = parts[3]
		parts = parts[:3]
	default:
		return RGB{}, false
	}
	if alpha != "" && !isOpaque(alpha) {
		return RGB{}, false
	}

	var ch [3]uint8
	for i, p := range parts {
		c, ok := parseChannel(p)
		if !ok {
			return RGB{}, false
		}
		ch[i] = c
	}
	return RGB{R: ch[0], G: ch[1], B: ch[2]}, true
}

func parseChannel(s string) (uint8, bool) {
	pct := strings.HasSuffix(s, "%")
	f, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	if pct {
		f = f * 255 / 100
	}
	return uint8(math.Round(math.Max(0, math.Min(255, f)))), true
}

func isOpaque(alpha string) bool {
	pct := strings.HasSuffix(alpha, "%")
	f, err := strconv.ParseFloat(strings.TrimSuffix(alpha, "%"), 64)
	if err != nil {
		return false
	}
	if pct {
		return f >= 100
	}
	return f >= 1
}
