package tarcog

// ステファンボルツマン定数, W/m2K4
const StefanBoltzmann = 5.6697e-8

// 重力加速度, m/s2
const GravityConstant = 9.807

// 標準大気圧, Pa
const DefaultPressure = 101325.0

// 窓の幅・高さの既定値, m
const (
	DefaultWindowWidth  = 1.0
	DefaultWindowHeight = 1.0
)

// 傾斜角の既定値（鉛直）, degree
const DefaultTilt = 90.0

// ガラス表面の長波長放射率の既定値, -
const DefaultEmissivity = 0.84

// この圧力未満の中空層は分子流として扱う, Pa
const VacuumPressure = 13.33

// ガラスの物性値
const (
	DefaultYoungsModulus = 7.2e10 // ヤング率, Pa
	DefaultPoissonRatio  = 0.22   // ポアソン比, -
	DefaultGlassDensity  = 2500.0 // 密度, kg/m3
)

// 非線形ソルバーの反復制御
const (
	MaxIterations           = 1000
	ConvergenceTolerance    = 1e-8
	RelaxationParameterMax  = 0.65
	RelaxationParameterMin  = 0.05
	RelaxationParameterStep = 0.05
)

// 通気層の気流計算
const (
	MaxAirflowIterations = 200
	AirflowTolerance     = 1e-6
	AirflowRelaxation    = 0.5
)

// たわみ計算
const (
	MaxDeflectionIterations = 50
	DeflectionTolerance     = 1e-9 // m
	plateSeriesTerms        = 25
)

// 夏期の相対熱取得の評価条件
const (
	relativeHeatGainDeltaT    = 7.8   // K
	relativeHeatGainRadiation = 630.0 // W/m2
)
