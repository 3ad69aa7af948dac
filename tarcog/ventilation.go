package tarcog

// 通気層（ISO 15099 7）

import (
	"math"
)

// 通気の駆動方法
type VentilationMode int

const (
	VentilationForced  VentilationMode = iota // 流速を与える
	VentilationNatural                        // 浮力と圧力損失の釣り合いから流速を求める
)

func (m VentilationMode) String() string {
	return [...]string{"forced", "natural"}[m]
}

// 通気条件
type Ventilation struct {
	Mode             VentilationMode
	AirSpeed         float64 // 流速（強制通気）, m/s
	InletTemperature float64 // 流入空気温度, K
	InletLoss        float64 // 流入口の圧力損失係数, -
	OutletLoss       float64 // 流出口の圧力損失係数, -
}

/*
	Args:
		airSpeed: 流速, m/s
		inletTemperature: 流入空気温度, K
*/
func ForcedVentilation(airSpeed, inletTemperature float64) Ventilation {
	return Ventilation{Mode: VentilationForced, AirSpeed: airSpeed, InletTemperature: inletTemperature}
}

/*
	Args:
		inletTemperature: 流入空気温度, K
		inletLoss: 流入口の圧力損失係数, -
		outletLoss: 流出口の圧力損失係数, -
*/
func NaturalVentilation(inletTemperature, inletLoss, outletLoss float64) Ventilation {
	return Ventilation{
		Mode:             VentilationNatural,
		InletTemperature: inletTemperature,
		InletLoss:        inletLoss,
		OutletLoss:       outletLoss,
	}
}

// 気流の収束状態（気流基準点）
type airflowState struct {
	speed             float64 // 流速, m/s
	gapTemperature    float64 // 層内空気の平均温度, K
	outletTemperature float64 // 流出空気温度, K
	gain              float64 // 両表面への熱取得の合計, W/m2
	hc                float64 // 表面と層の対流熱伝達率, W/m2K
	iterations        int
}

/*
通気層の気流を収束計算する。

	Args:
		l: 通気層
		height: 窓の高さ, m
		tilt: 傾斜角, degree

	Returns:
		気流の状態

	Notes:
		T_av = (T_f + T_b) / 2
		H_0 = ρ c_p s v / (2 h_cv),  h_cv = 2 h_c + 4 v
		T_out = T_av - (T_av - T_in) exp(-H / H_0)
		T_gap = T_av - (H_0 / H) (T_out - T_in)
		流速 0 では T_gap = T_av となり通気のない中空層に一致する。
*/
func solveAirflow(l *Layer, height, tilt float64) airflowState {
	v := l.gap.ventilation
	tAv := l.MeanTemperature()
	tIn := v.InletTemperature
	width := l.gap.meanWidth
	pressure := l.gap.currentPressure

	speed := v.AirSpeed
	if v.Mode == VentilationNatural {
		speed = l.gap.airflow.speed
	}

	s := airflowState{gapTemperature: tAv, outletTemperature: tAv}
	for i := 0; i < MaxAirflowIterations; i++ {
		s.iterations = i + 1
		hc := gapConvection(l, height, tilt, s.gapTemperature)

		speedChange := 0.0
		if v.Mode == VentilationNatural {
			next := buoyancyDrivenSpeed(l, height, tilt, s.gapTemperature)
			updated := AirflowRelaxation*next + (1-AirflowRelaxation)*speed
			speedChange = math.Abs(updated - speed)
			speed = updated
		}

		tOut, tGap := tAv, tAv
		if speed > 0 {
			props := l.gap.gas.Properties(s.gapTemperature, pressure)
			h0 := props.Density * props.SpecificHeat * width * speed / (2 * (2*hc + 4*speed))
			tOut = tAv - (tAv-tIn)*math.Exp(-height/h0)
			tGap = tAv - h0/height*(tOut-tIn)
		}

		change := math.Abs(tGap - s.gapTemperature)
		s.gapTemperature = tGap
		s.outletTemperature = tOut
		s.hc = hc
		if change < AirflowTolerance && speedChange < AirflowTolerance {
			break
		}
	}

	s.speed = speed
	if speed > 0 {
		props := l.gap.gas.Properties(s.gapTemperature, pressure)
		s.gain = props.Density * props.SpecificHeat * width * speed * (tIn - s.outletTemperature) / height
	}
	return s
}

/*
浮力による駆動圧と圧力損失が釣り合う流速を求める。

	Args:
		l: 通気層
		height: 窓の高さ, m
		tilt: 傾斜角, degree
		gapTemperature: 層内空気の平均温度, K

	Returns:
		流速, m/s

	Notes:
		ΔP_T = ρ_in g H sin(tilt) |T_gap - T_in| / T_gap
		ΔP_T = ρ (1 + Z_in + Z_out) v^2 / 2 + 12 μ H v / s^2
*/
func buoyancyDrivenSpeed(l *Layer, height, tilt, gapTemperature float64) float64 {
	v := l.gap.ventilation
	width := l.gap.meanWidth
	pressure := l.gap.currentPressure

	inlet := l.gap.gas.Properties(v.InletTemperature, pressure)
	props := l.gap.gas.Properties(gapTemperature, pressure)

	driving := inlet.Density * GravityConstant * height * math.Sin(tilt*math.Pi/180) *
		math.Abs(gapTemperature-v.InletTemperature) / gapTemperature

	a := props.Density * (1 + v.InletLoss + v.OutletLoss) / 2
	b := 12 * props.Viscosity * height / (width * width)

	return (-b + math.Sqrt(b*b+4*a*driving)) / (2 * a)
}
