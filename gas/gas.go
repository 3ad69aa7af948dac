package gas

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

var (
	ErrUnknownGas    = errors.New("gas: unknown gas")
	ErrFractionSum   = errors.New("gas: mole fractions must sum to 1")
	ErrNoComponent   = errors.New("gas: mixture has no component")
	ErrInvalidFormat = errors.New("gas: invalid mixture description")
)

const fractionTolerance = 1e-6

// 混合気体の成分
type Component struct {
	Fraction float64 // モル分率, -
	Data     Data
}

// 気体の状態量
type Properties struct {
	ThermalConductivity float64 // 熱伝導率, W/mK
	Viscosity           float64 // 粘性係数, Pa s
	SpecificHeat        float64 // 定圧比熱, J/kgK
	Density             float64 // 密度, kg/m3
	MolecularWeight     float64 // 分子量, kg/kmol
	PrandtlNumber       float64 // プラントル数, -
}

// 純気体または混合気体
type Gas struct {
	components []Component

	// 表面の熱適応係数（低圧域で使用）, -
	accommodation [2]float64
}

// 純気体
func Pure(d Data) *Gas {
	return &Gas{
		components:    []Component{{Fraction: 1.0, Data: d}},
		accommodation: [2]float64{0.5, 0.5},
	}
}

/*
混合気体を作成する。

	Args:
		components: 成分, モル分率の合計は 1
*/
func NewGas(components ...Component) (*Gas, error) {
	if len(components) == 0 {
		return nil, ErrNoComponent
	}
	sum := 0.0
	for _, c := range components {
		sum += c.Fraction
	}
	if math.Abs(sum-1.0) > fractionTolerance {
		return nil, ErrFractionSum
	}
	cs := make([]Component, len(components))
	copy(cs, components)
	return &Gas{
		components:    cs,
		accommodation: [2]float64{0.5, 0.5},
	}, nil
}

/*
"argon:0.9;air:0.1" 形式の記述から気体を作成する。
成分が1つの場合はモル分率を省略できる（"krypton"）。
*/
func Parse(s string) (*Gas, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Pure(Air), nil
	}
	parts := strings.Split(s, ";")
	cs := make([]Component, 0, len(parts))
	for _, p := range parts {
		kv := strings.SplitN(strings.TrimSpace(p), ":", 2)
		d, err := DataFromString(strings.ToLower(strings.TrimSpace(kv[0])))
		if err != nil {
			return nil, err
		}
		fraction := 1.0
		if len(kv) == 2 {
			fraction, err = strconv.ParseFloat(strings.TrimSpace(kv[1]), 64)
			if err != nil {
				return nil, ErrInvalidFormat
			}
		}
		cs = append(cs, Component{Fraction: fraction, Data: d})
	}
	return NewGas(cs...)
}

// 両側表面の熱適応係数を設定する。
func (g *Gas) SetAccommodationCoefficients(front, back float64) {
	g.accommodation = [2]float64{front, back}
}

func (g *Gas) Components() []Component {
	cs := make([]Component, len(g.components))
	copy(cs, g.components)
	return cs
}

/*
気体の状態量を計算する。

	Args:
		t: 温度, K
		p: 圧力, Pa

	Returns:
		状態量

	Notes:
		ISO 15099 B.2 の混合則
*/
func (g *Gas) Properties(t, p float64) Properties {
	if len(g.components) == 1 {
		return pureProperties(g.components[0].Data, t, p)
	}

	n := len(g.components)
	x := make([]float64, n)
	m := make([]float64, n)
	mu := make([]float64, n)
	lambda := make([]float64, n)
	cp := make([]float64, n)
	for i, c := range g.components {
		x[i] = c.Fraction
		m[i] = c.Data.MolecularWeight
		mu[i] = c.Data.Viscosity.at(t)
		lambda[i] = c.Data.Conductivity.at(t)
		cp[i] = c.Data.SpecificHeat.at(t)
	}

	// 分子量
	mMix := 0.0
	for i := range x {
		mMix += x[i] * m[i]
	}

	// 定圧比熱（モル比熱の加重平均）
	cpMolar := 0.0
	for i := range x {
		cpMolar += x[i] * cp[i] * m[i]
	}
	cpMix := cpMolar / mMix

	// 粘性係数
	muMix := 0.0
	for i := 0; i < n; i++ {
		if x[i] == 0 {
			continue
		}
		denominator := 1.0
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			denominator += phiViscosity(mu[i], mu[j], m[i], m[j]) * x[j] / x[i]
		}
		muMix += mu[i] / denominator
	}

	// 熱伝導率（単原子成分 λ' と内部自由度成分 λ''）
	lambda1 := make([]float64, n)
	lambda2 := make([]float64, n)
	for i := range x {
		lambda1[i] = 15.0 / 4.0 * UniversalGasConstant / m[i] * mu[i]
		lambda2[i] = lambda[i] - lambda1[i]
	}
	lambda1Mix := 0.0
	lambda2Mix := 0.0
	for i := 0; i < n; i++ {
		if x[i] == 0 {
			continue
		}
		d1 := 1.0
		d2 := 1.0
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			phi := phiConductivity(lambda1[i], lambda1[j], m[i], m[j])
			psi := phi * (1.0 + 2.41*(m[i]-m[j])*(m[i]-0.142*m[j])/math.Pow(m[i]+m[j], 2))
			d1 += psi * x[j] / x[i]
			d2 += phi * x[j] / x[i]
		}
		lambda1Mix += lambda1[i] / d1
		lambda2Mix += lambda2[i] / d2
	}
	lambdaMix := lambda1Mix + lambda2Mix

	return Properties{
		ThermalConductivity: lambdaMix,
		Viscosity:           muMix,
		SpecificHeat:        cpMix,
		Density:             density(p, mMix, t),
		MolecularWeight:     mMix,
		PrandtlNumber:       cpMix * muMix / lambdaMix,
	}
}

/*
低圧域（分子流）の気体の熱コンダクタンスを計算する。

	Args:
		t: 温度, K
		p: 圧力, Pa

	Returns:
		熱コンダクタンス, W/m2K

	Notes:
		h = α (γ+1)/(γ-1) sqrt(R/(8 π M T)) P
*/
func (g *Gas) LowPressureConductance(t, p float64) float64 {
	a1, a2 := g.accommodation[0], g.accommodation[1]
	alpha := a1 * a2 / (a2 + a1*(1.0-a2))

	props := g.Properties(t, p)
	gamma := g.specificHeatRatio(props)

	return alpha * (gamma + 1.0) / (gamma - 1.0) *
		math.Sqrt(UniversalGasConstant/(8.0*math.Pi*props.MolecularWeight*t)) * p
}

func (g *Gas) specificHeatRatio(props Properties) float64 {
	if len(g.components) == 1 {
		return g.components[0].Data.SpecificHeatRatio
	}
	cv := props.SpecificHeat - UniversalGasConstant/props.MolecularWeight
	return props.SpecificHeat / cv
}

func pureProperties(d Data, t, p float64) Properties {
	lambda := d.Conductivity.at(t)
	mu := d.Viscosity.at(t)
	cp := d.SpecificHeat.at(t)
	return Properties{
		ThermalConductivity: lambda,
		Viscosity:           mu,
		SpecificHeat:        cp,
		Density:             density(p, d.MolecularWeight, t),
		MolecularWeight:     d.MolecularWeight,
		PrandtlNumber:       cp * mu / lambda,
	}
}

// 理想気体の密度, kg/m3
func density(p, m, t float64) float64 {
	return p * m / (UniversalGasConstant * t)
}

func phiViscosity(muI, muJ, mI, mJ float64) float64 {
	num := math.Pow(1.0+math.Sqrt(muI/muJ)*math.Pow(mJ/mI, 0.25), 2)
	return num / (2.0 * math.Sqrt2 * math.Sqrt(1.0+mI/mJ))
}

func phiConductivity(lI, lJ, mI, mJ float64) float64 {
	num := math.Pow(1.0+math.Sqrt(lI/lJ)*math.Pow(mI/mJ, 0.25), 2)
	return num / (2.0 * math.Sqrt2 * math.Sqrt(1.0+mI/mJ))
}
