package tarcog

// 室内・室外の境界条件（ISO 15099 8）

import (
	"errors"
	"math"

	"tarcog/gas"
)

var ErrInvalidModel = errors.New("tarcog: invalid model name")

// 環境の種類
type EnvironmentSide int

const (
	Outdoor EnvironmentSide = iota
	Indoor
)

func (e EnvironmentSide) String() string {
	return [...]string{"outdoor", "indoor"}[e]
}

// 表面熱伝達率の与え方
type BoundaryConditionsModel int

const (
	CalculateH   BoundaryConditionsModel = iota // 相関式から対流熱伝達率を計算する
	HPrescribed                                 // 総合熱伝達率を与える
	HcPrescribed                                // 対流熱伝達率を与える
)

func (m BoundaryConditionsModel) String() string {
	return [...]string{"calculate_h", "h_prescribed", "hc_prescribed"}[m]
}

func BoundaryConditionsModelFromString(str string) (BoundaryConditionsModel, error) {
	switch str {
	case "calculate_h":
		return CalculateH, nil
	case "h_prescribed":
		return HPrescribed, nil
	case "hc_prescribed":
		return HcPrescribed, nil
	default:
		return 0, ErrInvalidModel
	}
}

// 天空放射のモデル
type SkyModel int

const (
	AllSpecified  SkyModel = iota // 天空温度と天空放射率を与える
	TSkySpecified                 // 天空温度を与える（放射率 1）
	Swinbank                      // 外気温度から天空温度を推定する
)

func (m SkyModel) String() string {
	return [...]string{"all_specified", "tsky_specified", "swinbank"}[m]
}

func SkyModelFromString(str string) (SkyModel, error) {
	switch str {
	case "all_specified":
		return AllSpecified, nil
	case "tsky_specified":
		return TSkySpecified, nil
	case "swinbank":
		return Swinbank, nil
	default:
		return 0, ErrInvalidModel
	}
}

// 風向
type AirHorizontalDirection int

const (
	Windward AirHorizontalDirection = iota // 風上
	Leeward                                // 風下
)

func (d AirHorizontalDirection) String() string {
	return [...]string{"windward", "leeward"}[d]
}

func AirHorizontalDirectionFromString(str string) (AirHorizontalDirection, error) {
	switch str {
	case "windward":
		return Windward, nil
	case "leeward":
		return Leeward, nil
	default:
		return 0, ErrInvalidModel
	}
}

// 室内または室外の環境
type Environment struct {
	side           EnvironmentSide
	airTemperature float64 // 空気温度, K
	pressure       float64 // 気圧, Pa

	// 室外
	airSpeed       float64 // 風速, m/s
	direction      AirHorizontalDirection
	solarRadiation float64 // 日射量, W/m2
	skyTemperature float64 // 天空温度, K
	skyEmissivity  float64 // 天空放射率, -
	skyModel       SkyModel

	// 室内の放射温度, K
	radiationTemperature float64

	hModel BoundaryConditionsModel
	hInput float64 // 与えられた熱伝達率, W/m2K

	irFixed bool
	ir      float64 // 与えられた入射長波長放射, W/m2

	// 計算結果
	hc                 float64 // 対流熱伝達率, W/m2K
	tilt               float64 // degree
	surfaceTemperature float64 // 隣接表面温度, K
	surfaceJ           float64 // 隣接表面ラジオシティ, W/m2
	surfaceEmissivity  float64
}

/*
室外環境を作成する。

	Args:
		airTemperature: 外気温度, K
		airSpeed: 風速, m/s
		solarRadiation: 日射量, W/m2
		skyTemperature: 天空温度, K
		skyModel: 天空放射のモデル
*/
func NewOutdoorEnvironment(airTemperature, airSpeed, solarRadiation, skyTemperature float64, skyModel SkyModel) *Environment {
	return &Environment{
		side:           Outdoor,
		airTemperature: airTemperature,
		pressure:       DefaultPressure,
		airSpeed:       airSpeed,
		direction:      Windward,
		solarRadiation: solarRadiation,
		skyTemperature: skyTemperature,
		skyEmissivity:  1.0,
		skyModel:       skyModel,
		hModel:         CalculateH,
		tilt:           DefaultTilt,
	}
}

/*
室内環境を作成する。放射温度は室温とする。

	Args:
		roomTemperature: 室温, K
*/
func NewIndoorEnvironment(roomTemperature float64) *Environment {
	return &Environment{
		side:                 Indoor,
		airTemperature:       roomTemperature,
		pressure:             DefaultPressure,
		radiationTemperature: roomTemperature,
		skyEmissivity:        1.0,
		hModel:               CalculateH,
		tilt:                 DefaultTilt,
	}
}

func (e *Environment) Side() EnvironmentSide {
	return e.side
}

func (e *Environment) AirTemperature() float64 {
	return e.airTemperature
}

func (e *Environment) Pressure() float64 {
	return e.pressure
}

func (e *Environment) SetPressure(p float64) {
	e.pressure = p
}

func (e *Environment) SetWindDirection(d AirHorizontalDirection) {
	e.direction = d
}

func (e *Environment) SolarRadiation() float64 {
	return e.solarRadiation
}

func (e *Environment) SetSolarRadiation(v float64) {
	e.solarRadiation = v
}

func (e *Environment) SetSkyEmissivity(v float64) {
	e.skyEmissivity = v
}

// 室内の放射温度を設定する, K
func (e *Environment) SetRadiationTemperature(t float64) {
	e.radiationTemperature = t
}

/*
表面熱伝達率の与え方を設定する。

	Args:
		model: 与え方
		value: HPrescribed の場合は総合熱伝達率、HcPrescribed の場合は対流熱伝達率, W/m2K
*/
func (e *Environment) SetHCoeffModel(model BoundaryConditionsModel, value float64) {
	e.hModel = model
	e.hInput = value
}

// 隣接表面への入射長波長放射を固定する, W/m2
func (e *Environment) SetEnvironmentIR(value float64) {
	e.irFixed = true
	e.ir = value
}

/*
天空温度

	Returns:
		天空温度, K
*/
func (e *Environment) SkyTemperature() float64 {
	switch e.skyModel {
	case AllSpecified, TSkySpecified:
		return e.skyTemperature
	case Swinbank:
		return 0.0552 * math.Pow(e.airTemperature, 1.5)
	default:
		panic("invalid sky model")
	}
}

func (e *Environment) skyRadiation() float64 {
	emissivity := 1.0
	if e.skyModel == AllSpecified {
		emissivity = e.skyEmissivity
	}
	return emissivity * StefanBoltzmann * math.Pow(e.SkyTemperature(), 4)
}

/*
隣接表面への入射長波長放射, W/m2

	Notes:
		室外は天空と地面（外気温度、放射率 1）を形態係数で合成する。
		総合熱伝達率を与えた場合の放射温度は空気温度とする。
*/
func (e *Environment) IR() float64 {
	if e.irFixed {
		return e.ir
	}
	if e.hModel == HPrescribed {
		return StefanBoltzmann * math.Pow(e.airTemperature, 4)
	}
	if e.side == Indoor {
		return StefanBoltzmann * math.Pow(e.radiationTemperature, 4)
	}
	fSky := (1 + math.Cos(e.tilt*math.Pi/180)) / 2
	fGround := 1 - fSky
	return fSky*e.skyRadiation() + fGround*StefanBoltzmann*math.Pow(e.airTemperature, 4)
}

// 放射温度, K
func (e *Environment) RadiationTemperature() float64 {
	return math.Pow(e.IR()/StefanBoltzmann, 0.25)
}

/*
対流熱伝達率を計算する。

	Args:
		surface: 環境に接する表面
		height: 窓の高さ, m
		tilt: 傾斜角, degree

	Returns:
		対流熱伝達率, W/m2K
*/
func (e *Environment) convectionCoefficient(surface *Surface, height, tilt float64) float64 {
	switch e.hModel {
	case HcPrescribed:
		return e.hInput
	case HPrescribed:
		return e.hInput - e.linearizedHr(surface)
	case CalculateH:
		if e.side == Outdoor {
			return outdoorConvection(e.airSpeed, e.direction)
		}
		return indoorConvection(e.airTemperature, surface.temperature, e.pressure, height, tilt)
	default:
		panic("invalid boundary conditions model")
	}
}

// 黒体環境との放射熱伝達率 ε σ (Ts^2 + Tr^2)(Ts + Tr), W/m2K
func (e *Environment) linearizedHr(surface *Surface) float64 {
	ts := surface.temperature
	tr := e.RadiationTemperature()
	return surface.Emissivity() * StefanBoltzmann * (ts*ts + tr*tr) * (ts + tr)
}

/*
室外側の対流熱伝達率

	Args:
		airSpeed: 風速, m/s
		direction: 風向

	Returns:
		対流熱伝達率, W/m2K

	Notes:
		風上 h = 4 + 4 V
		風下は有効風速 0.3 + 0.05 V を用いる。
*/
func outdoorConvection(airSpeed float64, direction AirHorizontalDirection) float64 {
	switch direction {
	case Windward:
		return 4 + 4*airSpeed
	case Leeward:
		return 4 + 4*(0.3+0.05*airSpeed)
	default:
		panic("invalid wind direction")
	}
}

/*
室内側の自然対流熱伝達率

	Args:
		airTemperature: 室温, K
		surfaceTemperature: 表面温度, K
		pressure: 気圧, Pa
		height: 窓の高さ, m
		tilt: 傾斜角, degree

	Returns:
		対流熱伝達率, W/m2K

	Notes:
		ISO 15099 8.3.2
		物性値は T_m = T_air + (T_s - T_air) / 4 で評価する。
*/
func indoorConvection(airTemperature, surfaceTemperature, pressure, height, tilt float64) float64 {
	tMean := airTemperature + 0.25*(surfaceTemperature-airTemperature)
	deltaT := math.Abs(surfaceTemperature - airTemperature)
	props := gas.Pure(gas.Air).Properties(tMean, pressure)

	ra := rayleighNumber(height, deltaT, tMean,
		props.Density, props.Viscosity, props.SpecificHeat, props.ThermalConductivity)

	t := tilt * math.Pi / 180
	raCrit := 2.5e5 * math.Pow(math.Exp(0.72*tilt)/math.Sin(t), 0.2)

	var nu float64
	switch {
	case tilt >= 0 && tilt < 15:
		nu = 0.13 * math.Pow(ra, 1.0/3.0)
	case tilt >= 15 && tilt <= 90:
		if ra <= raCrit {
			nu = 0.56 * math.Pow(ra*math.Sin(t), 0.25)
		} else {
			nu = 0.13*(math.Pow(ra, 1.0/3.0)-math.Pow(raCrit, 1.0/3.0)) + 0.56*math.Pow(raCrit*math.Sin(t), 0.25)
		}
	case tilt > 90 && tilt <= 179:
		nu = 0.56 * math.Pow(ra*math.Sin(t), 0.25)
	case tilt > 179 && tilt <= 180:
		nu = 0.58 * math.Pow(ra, 1.0/3.0)
	default:
		panic("invalid tilt")
	}

	return nu * props.ThermalConductivity / height
}

// 解析後の状態を記録する。
func (e *Environment) record(surface *Surface, hc float64) {
	e.surfaceTemperature = surface.temperature
	e.surfaceJ = surface.j
	e.surfaceEmissivity = surface.Emissivity()
	e.hc = hc
}

// 対流熱伝達率, W/m2K
func (e *Environment) Hc() float64 {
	return e.hc
}

/*
室内から室外へ向かう対流熱流, W/m2
*/
func (e *Environment) ConvectionFlow() float64 {
	if e.side == Indoor {
		return e.hc * (e.airTemperature - e.surfaceTemperature)
	}
	return e.hc * (e.surfaceTemperature - e.airTemperature)
}

/*
室内から室外へ向かう放射熱流, W/m2
*/
func (e *Environment) RadiationFlow() float64 {
	if e.side == Indoor {
		return e.IR() - e.surfaceJ
	}
	return e.surfaceJ - e.IR()
}

// 室内から室外へ向かう熱流, W/m2
func (e *Environment) HeatFlow() float64 {
	return e.ConvectionFlow() + e.RadiationFlow()
}

/*
放射熱伝達率

	Returns:
		放射熱伝達率, W/m2K
*/
func (e *Environment) Hr() float64 {
	tr := e.RadiationTemperature()
	dt := e.surfaceTemperature - tr
	if math.Abs(dt) < 1e-12 {
		return 4 * e.surfaceEmissivity * StefanBoltzmann * math.Pow(tr, 3)
	}
	if e.side == Indoor {
		return e.RadiationFlow() / (tr - e.surfaceTemperature)
	}
	return e.RadiationFlow() / dt
}

/*
環境温度（空気温度と放射温度の熱伝達率による加重平均）

	Returns:
		環境温度, K
*/
func (e *Environment) AmbientTemperature() float64 {
	hc := e.hc
	hr := e.Hr()
	return (hc*e.airTemperature + hr*e.RadiationTemperature()) / (hc + hr)
}

func (e *Environment) clone() *Environment {
	c := *e
	return &c
}
