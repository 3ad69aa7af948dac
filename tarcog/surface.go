package tarcog

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// 層の面
type Side int

const (
	Front Side = iota // 室外側
	Back              // 室内側
)

func (s Side) String() string {
	return [...]string{"front", "back"}[s]
}

func (s Side) Opposite() Side {
	if s == Front {
		return Back
	}
	return Front
}

// 温度と物性値の組
type TablePoint struct {
	Temperature float64 // K
	Value       float64
}

/*
表面の物性値（放射率・透過率）

	Notes:
		table が空の場合は定数。
		table がある場合は温度で線形補間し、範囲外は端点の値とする（外挿しない）。
*/
type Property struct {
	value        float64
	temperatures []float64
	values       []float64
}

func ConstantProperty(v float64) Property {
	return Property{value: v}
}

// 温度依存の物性値（サーモクロミック）
func TableProperty(points []TablePoint) Property {
	ps := make([]TablePoint, len(points))
	copy(ps, points)
	sort.Slice(ps, func(i, j int) bool { return ps[i].Temperature < ps[j].Temperature })

	p := Property{
		temperatures: make([]float64, len(ps)),
		values:       make([]float64, len(ps)),
	}
	for i, tp := range ps {
		p.temperatures[i] = tp.Temperature
		p.values[i] = tp.Value
	}
	if len(ps) > 0 {
		p.value = ps[0].Value
	}
	return p
}

func (p Property) IsTemperatureDependent() bool {
	return len(p.temperatures) > 1
}

/*
温度 t における値

	Args:
		t: 温度, K
*/
func (p Property) At(t float64) float64 {
	n := len(p.temperatures)
	if n < 2 {
		return p.value
	}
	if t <= p.temperatures[0] {
		return p.values[0]
	}
	if t >= p.temperatures[n-1] {
		return p.values[n-1]
	}
	i := floats.Within(p.temperatures, t)
	if i < 0 {
		// NaN
		return p.value
	}
	t0, t1 := p.temperatures[i], p.temperatures[i+1]
	v0, v1 := p.values[i], p.values[i+1]
	return v0 + (v1-v0)*(t-t0)/(t1-t0)
}

// 層の表面
type Surface struct {
	emissivity    Property
	transmittance Property

	temperature float64 // 表面温度, K
	j           float64 // ラジオシティ, W/m2

	meanDeflection float64 // 平均たわみ, m
	maxDeflection  float64 // 最大たわみ, m
}

/*
	Args:
		emissivity: 長波長放射率, -
		transmittance: 長波長透過率, -
*/
func NewSurface(emissivity, transmittance float64) Surface {
	return Surface{
		emissivity:    ConstantProperty(emissivity),
		transmittance: ConstantProperty(transmittance),
	}
}

// 放射率・透過率が温度に依存する表面
func NewThermochromicSurface(emissivity, transmittance Property) Surface {
	return Surface{
		emissivity:    emissivity,
		transmittance: transmittance,
	}
}

func defaultSurface() Surface {
	return NewSurface(DefaultEmissivity, 0.0)
}

// 現在の表面温度における放射率, -
func (s *Surface) Emissivity() float64 {
	return s.emissivity.At(s.temperature)
}

// 現在の表面温度における透過率, -
func (s *Surface) Transmittance() float64 {
	return s.transmittance.At(s.temperature)
}

// 反射率, -
func (s *Surface) Reflectance() float64 {
	return 1.0 - s.Emissivity() - s.Transmittance()
}

func (s *Surface) Temperature() float64 {
	return s.temperature
}

func (s *Surface) SetTemperature(t float64) {
	s.temperature = t
}

func (s *Surface) J() float64 {
	return s.j
}

func (s *Surface) SetJ(j float64) {
	s.j = j
}

func (s *Surface) MeanDeflection() float64 {
	return s.meanDeflection
}

func (s *Surface) MaxDeflection() float64 {
	return s.maxDeflection
}

// 放射の線形化係数 ε σ T^3, W/m2K
func (s *Surface) emissivePowerTerm() float64 {
	return s.Emissivity() * StefanBoltzmann * math.Pow(s.temperature, 3)
}
