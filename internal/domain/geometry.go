package domain

type Shape string

const (
	ShapeCircle   Shape = "Circle"
	ShapeTriangle Shape = "Triangle"
	ShapeSquare   Shape = "Square"
	ShapePentagon Shape = "Pentagon"
	ShapeHexagon  Shape = "Hexagon"
	ShapeOctagon  Shape = "Octagon"
	ShapeStar     Shape = "Star"
	ShapeDiamond  Shape = "Diamond"
)

// Shapes and Colors are indexed by token id mod 8. Their order is part of the
// collection's artwork and must not change.
var (
	Shapes = [8]Shape{
		ShapeCircle,
		ShapeTriangle,
		ShapeSquare,
		ShapePentagon,
		ShapeHexagon,
		ShapeOctagon,
		ShapeStar,
		ShapeDiamond,
	}

	Colors = [8]string{
		"#FF6B6B",
		"#4ECDC4",
		"#45B7D1",
		"#96CEB4",
		"#FFEAA7",
		"#DDA0DD",
		"#98D8C8",
		"#F7DC6F",
	}
)

type Palette struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}

type Geometry struct {
	Shape  Shape   `json:"shape_type"`
	Colors Palette `json:"colors"`
}

// DeriveGeometry maps a token id to its shape and colors. The secondary color
// is the primary color of the next token id.
func DeriveGeometry(t TokenID) Geometry {
	return Geometry{
		Shape: Shapes[t.Mod(len(Shapes))],
		Colors: Palette{
			Primary:   Colors[t.Mod(len(Colors))],
			Secondary: Colors[t.Next().Mod(len(Colors))],
		},
	}
}
