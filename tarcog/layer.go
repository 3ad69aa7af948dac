package tarcog

import (
	"errors"

	"tarcog/gas"
)

var (
	ErrNotGap           = errors.New("tarcog: layer is not a gap")
	ErrInvalidThickness = errors.New("tarcog: layer thickness must be positive")
)

// 層の種類
type LayerKind int

const (
	LayerKindSolid         LayerKind = iota // ガラス等の固体層
	LayerKindGap                            // 中空層
	LayerKindVentilatedGap                  // 通気層
	LayerKindPillaredGap                    // スペーサー（ピラー）付き中空層
	LayerKindSealedGap                      // 密閉中空層
)

func (k LayerKind) String() string {
	return [...]string{"solid", "gap", "ventilated_gap", "pillared_gap", "sealed_gap"}[k]
}

func (k LayerKind) IsGap() bool {
	return k != LayerKindSolid
}

// 固体層のパラメータ
type solidLayer struct {
	conductivity     float64 // 熱伝導率, W/mK
	solarAbsorptance float64 // 日射吸収率, -
	youngsModulus    float64 // ヤング率, Pa
	poissonRatio     float64 // ポアソン比, -
	density          float64 // 密度, kg/m3
}

// 中空層のパラメータ
type gapLayer struct {
	gas      *gas.Gas
	pressure float64 // 封入圧力, Pa

	ventilation *Ventilation
	pillars     *PillarArray
	seal        *Seal

	// 計算中に更新される状態
	meanWidth       float64 // たわみを考慮した平均幅, m
	maxWidth        float64 // たわみを考慮した中央幅, m
	currentPressure float64 // 現在の圧力, Pa
	airflow         airflowState
}

// 密閉中空層の封入状態
type Seal struct {
	FillTemperature float64 // 封入時温度, K
	FillPressure    float64 // 封入時圧力, Pa
}

/*
グレージングを構成する層

	Notes:
		種類ごとのパラメータは solid または gap に保持する。
		表面は層が占有し、front が室外側、back が室内側。
*/
type Layer struct {
	kind      LayerKind
	thickness float64
	surfaces  [2]Surface

	solid *solidLayer
	gap   *gapLayer
}

/*
固体層を作成する。表面は放射率 0.84、透過率 0。

	Args:
		thickness: 厚さ, m
		conductivity: 熱伝導率, W/mK
*/
func NewSolidLayer(thickness, conductivity float64) *Layer {
	return NewSolidLayerWithSurfaces(thickness, conductivity, defaultSurface(), defaultSurface())
}

/*
	Args:
		thickness: 厚さ, m
		conductivity: 熱伝導率, W/mK
		front: 室外側表面
		back: 室内側表面
*/
func NewSolidLayerWithSurfaces(thickness, conductivity float64, front, back Surface) *Layer {
	return &Layer{
		kind:      LayerKindSolid,
		thickness: thickness,
		surfaces:  [2]Surface{front, back},
		solid: &solidLayer{
			conductivity:  conductivity,
			youngsModulus: DefaultYoungsModulus,
			poissonRatio:  DefaultPoissonRatio,
			density:       DefaultGlassDensity,
		},
	}
}

/*
空気の中空層を作成する。

	Args:
		thickness: 幅, m
		pressure: 圧力, Pa
*/
func NewGapLayer(thickness, pressure float64) *Layer {
	return NewGapLayerWithGas(thickness, pressure, gas.Pure(gas.Air))
}

/*
	Args:
		thickness: 幅, m
		pressure: 圧力, Pa
		g: 封入気体
*/
func NewGapLayerWithGas(thickness, pressure float64, g *gas.Gas) *Layer {
	return &Layer{
		kind:      LayerKindGap,
		thickness: thickness,
		surfaces:  [2]Surface{defaultSurface(), defaultSurface()},
		gap: &gapLayer{
			gas:             g,
			pressure:        pressure,
			meanWidth:       thickness,
			maxWidth:        thickness,
			currentPressure: pressure,
		},
	}
}

// 中空層に通気を与える。
func NewVentilatedGap(l *Layer, v Ventilation) (*Layer, error) {
	if !l.kind.IsGap() {
		return nil, ErrNotGap
	}
	c := l.clone()
	c.kind = LayerKindVentilatedGap
	c.gap.ventilation = &v
	return c, nil
}

// 中空層にピラーを配置する。
func NewPillaredGap(l *Layer, p PillarArray) (*Layer, error) {
	if !l.kind.IsGap() {
		return nil, ErrNotGap
	}
	c := l.clone()
	c.kind = LayerKindPillaredGap
	c.gap.pillars = &p
	return c, nil
}

/*
中空層を密閉する。圧力は封入状態から理想気体の状態方程式で求める。

	Args:
		fillTemperature: 封入時温度, K
		fillPressure: 封入時圧力, Pa
*/
func NewSealedGap(l *Layer, fillTemperature, fillPressure float64) (*Layer, error) {
	if !l.kind.IsGap() {
		return nil, ErrNotGap
	}
	c := l.clone()
	c.kind = LayerKindSealedGap
	c.gap.seal = &Seal{FillTemperature: fillTemperature, FillPressure: fillPressure}
	return c, nil
}

func (l *Layer) Kind() LayerKind {
	return l.kind
}

func (l *Layer) IsGap() bool {
	return l.kind.IsGap()
}

// 厚さ（たわみを考慮しない）, m
func (l *Layer) Thickness() float64 {
	return l.thickness
}

func (l *Layer) Surface(side Side) *Surface {
	return &l.surfaces[side]
}

func (l *Layer) Temperature(side Side) float64 {
	return l.surfaces[side].temperature
}

func (l *Layer) J(side Side) float64 {
	return l.surfaces[side].j
}

func (l *Layer) Emissivity(side Side) float64 {
	return l.surfaces[side].Emissivity()
}

func (l *Layer) Transmittance(side Side) float64 {
	return l.surfaces[side].Transmittance()
}

// 両表面の平均温度, K
func (l *Layer) MeanTemperature() float64 {
	return (l.surfaces[Front].temperature + l.surfaces[Back].temperature) / 2.0
}

// 固体層の熱伝導率, W/mK（中空層は 0）
func (l *Layer) Conductivity() float64 {
	if l.solid == nil {
		return 0.0
	}
	return l.solid.conductivity
}

// 固体層の日射吸収率, -
func (l *Layer) SolarAbsorptance() float64 {
	if l.solid == nil {
		return 0.0
	}
	return l.solid.solarAbsorptance
}

func (l *Layer) SetSolarAbsorptance(a float64) {
	if l.solid != nil {
		l.solid.solarAbsorptance = a
	}
}

/*
固体層の弾性係数を設定する。

	Args:
		youngsModulus: ヤング率, Pa
		poissonRatio: ポアソン比, -
		density: 密度, kg/m3
*/
func (l *Layer) SetMechanicalProperties(youngsModulus, poissonRatio, density float64) {
	if l.solid != nil {
		l.solid.youngsModulus = youngsModulus
		l.solid.poissonRatio = poissonRatio
		l.solid.density = density
	}
}

// 中空層の封入気体（固体層は nil）
func (l *Layer) Gas() *gas.Gas {
	if l.gap == nil {
		return nil
	}
	return l.gap.gas
}

// 中空層の平均幅（たわみ考慮）, m
func (l *Layer) EffectiveThickness() float64 {
	if l.gap == nil {
		return l.thickness
	}
	return l.gap.meanWidth
}

// 中空層の現在の圧力, Pa
func (l *Layer) Pressure() float64 {
	if l.gap == nil {
		return 0.0
	}
	return l.gap.currentPressure
}

// 通気層の流速, m/s
func (l *Layer) AirSpeed() float64 {
	if l.gap == nil {
		return 0.0
	}
	return l.gap.airflow.speed
}

// 通気による熱取得, W/m2
func (l *Layer) GainFlow() float64 {
	if l.gap == nil {
		return 0.0
	}
	return l.gap.airflow.gain
}

// 通気層内空気の平均温度, K
func (l *Layer) GapAirTemperature() float64 {
	if l.gap == nil || l.gap.ventilation == nil {
		return l.MeanTemperature()
	}
	return l.gap.airflow.gapTemperature
}

func (l *Layer) clone() *Layer {
	c := &Layer{
		kind:      l.kind,
		thickness: l.thickness,
		surfaces:  l.surfaces,
	}
	if l.solid != nil {
		s := *l.solid
		c.solid = &s
	}
	if l.gap != nil {
		g := *l.gap
		if l.gap.ventilation != nil {
			v := *l.gap.ventilation
			g.ventilation = &v
		}
		if l.gap.pillars != nil {
			p := *l.gap.pillars
			g.pillars = &p
		}
		if l.gap.seal != nil {
			s := *l.gap.seal
			g.seal = &s
		}
		c.gap = &g
	}
	return c
}
