package tarcog

// 中空層の対流・伝導熱伝達（ISO 15099 5.3）

import (
	"math"
)

/*
中空層のヌセルト数を計算する。

	Args:
		tilt: 傾斜角, degree
		ra: レイリー数, -
		aspectRatio: 高さと幅の比, -

	Returns:
		ヌセルト数, -

	Notes:
		ISO 15099 5.3.3.1 - 5.3.3.5
*/
func nusseltNumber(tilt, ra, aspectRatio float64) float64 {
	switch {
	case tilt >= 0 && tilt < 60:
		return nusseltBelow60(tilt, ra)
	case tilt == 60:
		return nusselt60(ra, aspectRatio)
	case tilt > 60 && tilt < 90:
		return ((90-tilt)*nusselt60(ra, aspectRatio) + (tilt-60)*nusselt90(ra, aspectRatio)) / 30
	case tilt == 90:
		return nusselt90(ra, aspectRatio)
	case tilt > 90 && tilt <= 180:
		return 1 + (nusselt90(ra, aspectRatio)-1)*math.Sin(tilt*math.Pi/180)
	default:
		panic("invalid tilt")
	}
}

func nusseltBelow60(tilt, ra float64) float64 {
	t := tilt * math.Pi / 180
	raCos := ra * math.Cos(t)
	if raCos <= 0 {
		return 1.0
	}
	a := math.Max(0, 1-1708/raCos)
	b := 1 - 1708*math.Pow(math.Sin(1.8*t), 1.6)/raCos
	c := math.Max(0, math.Pow(raCos/5830, 1.0/3.0)-1)
	return 1 + 1.44*a*b + c
}

func nusselt60(ra, aspectRatio float64) float64 {
	g := 0.5 / math.Pow(1+math.Pow(ra/3160, 20.6), 0.1)
	nu1 := math.Pow(1+math.Pow(0.0936*math.Pow(ra, 0.314)/(1+g), 7), 1.0/7.0)
	nu2 := (0.104 + 0.175/aspectRatio) * math.Pow(ra, 0.283)
	return math.Max(nu1, nu2)
}

func nusselt90(ra, aspectRatio float64) float64 {
	var nu1 float64
	switch {
	case ra > 5e4:
		nu1 = 0.0673838 * math.Pow(ra, 1.0/3.0)
	case ra > 1e4:
		nu1 = 0.028154 * math.Pow(ra, 0.4134)
	default:
		nu1 = 1 + 1.7596678e-10*math.Pow(ra, 2.2984755)
	}
	nu2 := 0.242 * math.Pow(ra/aspectRatio, 0.272)
	return math.Max(nu1, nu2)
}

/*
中空層のレイリー数を計算する。

	Args:
		width: 中空層の幅, m
		deltaT: 両表面の温度差, K
		temperature: 気体の平均温度, K
		density: 密度, kg/m3
		viscosity: 粘性係数, Pa s
		specificHeat: 定圧比熱, J/kgK
		conductivity: 熱伝導率, W/mK

	Returns:
		レイリー数, -
*/
func rayleighNumber(width, deltaT, temperature float64, density, viscosity, specificHeat, conductivity float64) float64 {
	if viscosity == 0 || conductivity == 0 {
		return 0.0
	}
	return GravityConstant * math.Pow(width, 3) * deltaT * specificHeat * density * density /
		(temperature * viscosity * conductivity)
}

/*
中空層の対流（伝導）熱伝達率を計算する。

	Args:
		l: 中空層
		height: 窓の高さ, m
		tilt: 傾斜角, degree
		temperature: 気体の物性値を評価する温度, K

	Returns:
		対流熱伝達率, W/m2K
*/
func gapConvection(l *Layer, height, tilt, temperature float64) float64 {
	g := l.gap
	width := g.meanWidth
	pressure := g.currentPressure

	if pressure < VacuumPressure {
		return g.gas.LowPressureConductance(temperature, pressure)
	}

	props := g.gas.Properties(temperature, pressure)
	deltaT := math.Abs(l.surfaces[Back].temperature - l.surfaces[Front].temperature)
	ra := rayleighNumber(width, deltaT, temperature,
		props.Density, props.Viscosity, props.SpecificHeat, props.ThermalConductivity)

	return nusseltNumber(tilt, ra, height/width) * props.ThermalConductivity / width
}
