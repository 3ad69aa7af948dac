package tarcog

import "math"

// ピラーの断面形状
type PillarShape int

const (
	PillarShapeCircular    PillarShape = iota // 円形
	PillarShapeRectangular                    // 長方形
	PillarShapeTriangular                     // 正三角形
)

func (s PillarShape) String() string {
	return [...]string{"circular", "rectangular", "triangular"}[s]
}

/*
正方格子に配置されたピラー

	Notes:
		真空ガラスのように中空層内でガラス間を直接つなぐ熱橋となる。
*/
type PillarArray struct {
	Shape        PillarShape
	Conductivity float64 // ピラーの熱伝導率, W/mK
	Spacing      float64 // 配置間隔, m
	Radius       float64 // 円形の半径, m
	Length       float64 // 長方形の辺, m
	Width        float64 // 長方形の辺 / 三角形の一辺, m
}

func CircularPillars(conductivity, spacing, radius float64) PillarArray {
	return PillarArray{Shape: PillarShapeCircular, Conductivity: conductivity, Spacing: spacing, Radius: radius}
}

func RectangularPillars(conductivity, spacing, length, width float64) PillarArray {
	return PillarArray{Shape: PillarShapeRectangular, Conductivity: conductivity, Spacing: spacing, Length: length, Width: width}
}

func TriangularPillars(conductivity, spacing, side float64) PillarArray {
	return PillarArray{Shape: PillarShapeTriangular, Conductivity: conductivity, Spacing: spacing, Width: side}
}

// 断面積, m2
func (p PillarArray) area() float64 {
	switch p.Shape {
	case PillarShapeCircular:
		return math.Pi * p.Radius * p.Radius
	case PillarShapeRectangular:
		return p.Length * p.Width
	case PillarShapeTriangular:
		return math.Sqrt(3) / 4 * p.Width * p.Width
	default:
		panic("invalid pillar shape")
	}
}

// 断面積が等しい円の半径, m
func (p PillarArray) contactRadius() float64 {
	if p.Shape == PillarShapeCircular {
		return p.Radius
	}
	return math.Sqrt(p.area() / math.Pi)
}

/*
ピラー配列の熱コンダクタンスを計算する。

	Args:
		height: ピラーの高さ（中空層の幅）, m
		glassConductivity: 両側ガラスの平均熱伝導率, W/mK

	Returns:
		熱コンダクタンス, W/m2K

	Notes:
		C = 2 k_g a / p^2 / (1 + 2 h k_g / (π a k_p))
		ガラス内の広がり抵抗とピラー自体の伝導抵抗の直列。
		Collins & Fischer-Cripps (1991) の真空ガラスのピラーモデル
*/
func (p PillarArray) conductance(height, glassConductivity float64) float64 {
	a := p.contactRadius()
	c := 2 * glassConductivity * a / (p.Spacing * p.Spacing)
	return c / (1 + 2*height*glassConductivity/(math.Pi*a*p.Conductivity))
}
