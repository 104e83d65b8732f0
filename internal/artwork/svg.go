// Package artwork draws the SVG image of a GeoShape. The image depends only on
// the token id and its geometry, so every client renders identical bytes.
package artwork

import (
	"strconv"
	"strings"

	"github.com/yizeng/geoshapes/internal/domain"
)

const (
	canvasSize  = 400
	baseSize    = 200
	sizeSpread  = 150
	strokeWidth = 4
)

type point struct {
	x, y float64
}

// Polygon vertices as multiples of the shape size, centered on the origin.
var polygons = map[domain.Shape][]point{
	domain.ShapeTriangle: {{0, -0.5}, {-0.43, 0.25}, {0.43, 0.25}},
	domain.ShapePentagon: {{0, -0.5}, {-0.48, -0.15}, {-0.29, 0.41}, {0.29, 0.41}, {0.48, -0.15}},
	domain.ShapeHexagon:  {{0, -0.5}, {-0.43, -0.25}, {-0.43, 0.25}, {0, 0.5}, {0.43, 0.25}, {0.43, -0.25}},
	domain.ShapeOctagon:  {{0, -0.5}, {-0.35, -0.35}, {-0.5, 0}, {-0.35, 0.35}, {0, 0.5}, {0.35, 0.35}, {0.5, 0}, {0.35, -0.35}},
	domain.ShapeStar: {
		{0, -0.5}, {-0.11, -0.15}, {-0.48, -0.15}, {-0.18, 0.06}, {-0.29, 0.41},
		{0, 0.2}, {0.29, 0.41}, {0.18, 0.06}, {0.48, -0.15}, {0.11, -0.15},
	},
	domain.ShapeDiamond: {{0, -0.5}, {-0.35, 0}, {0, 0.5}, {0.35, 0}},
}

// ShapeSize is the edge length of the bounding box of the token's shape.
func ShapeSize(t domain.TokenID) int {
	return baseSize + t.Mod(sizeSpread)
}

// Render returns the SVG document for t. Shapes without a template leave the
// centered group empty.
func Render(t domain.TokenID, g domain.Geometry) []byte {
	size := float64(ShapeSize(t))

	canvas := strconv.Itoa(canvasSize)
	center := strconv.Itoa(canvasSize / 2)

	var b strings.Builder
	b.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 ` + canvas + ` ` + canvas + `">`)
	b.WriteString(`<defs><radialGradient id="bgGradient" cx="50%" cy="50%" r="70%">`)
	b.WriteString(`<stop offset="0%" stop-color="#2a2a4a"/>`)
	b.WriteString(`<stop offset="100%" stop-color="#1a1a2e"/>`)
	b.WriteString(`</radialGradient></defs>`)
	b.WriteString(`<rect width="` + canvas + `" height="` + canvas + `" fill="url(#bgGradient)"/>`)
	b.WriteString(`<g transform="translate(` + center + `,` + center + `)">`)
	writeShape(&b, g, size)
	b.WriteString(`</g></svg>`)

	return []byte(b.String())
}

func writeShape(b *strings.Builder, g domain.Geometry, size float64) {
	paint := ` fill="` + g.Colors.Primary + `" stroke="` + g.Colors.Secondary + `" stroke-width="` + strconv.Itoa(strokeWidth) + `"/>`

	switch g.Shape {
	case domain.ShapeCircle:
		b.WriteString(`<circle cx="0" cy="0" r="` + num(size/2) + `"` + paint)
	case domain.ShapeSquare:
		b.WriteString(`<rect x="` + num(-size/2) + `" y="` + num(-size/2) +
			`" width="` + num(size) + `" height="` + num(size) + `"` + paint)
	default:
		pts, ok := polygons[g.Shape]
		if !ok {
			return
		}
		b.WriteString(`<polygon points="` + points(pts, size) + `"` + paint)
	}
}

func points(pts []point, size float64) string {
	parts := make([]string, 0, len(pts))
	for _, p := range pts {
		parts = append(parts, num(p.x*size)+","+num(p.y*size))
	}
	return strings.Join(parts, " ")
}

func num(f float64) string {
	if f == 0 {
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
