package tarcog

import (
	"math"

	log "github.com/sirupsen/logrus"
)

/*
ひとつの境界条件に対する複層ガラスの熱収支

	Notes:
		IGU と環境は作成時に複製し、呼び出し側のオブジェクトは変更しない。
*/
type SingleSystem struct {
	igu     *IGU
	indoor  *Environment
	outdoor *Environment
	solver  *NonLinearSolver

	deflectionIterations int
}

/*
	Args:
		igu: 複層ガラス
		indoor: 室内環境
		outdoor: 室外環境
*/
func NewSingleSystem(igu *IGU, indoor, outdoor *Environment) (*SingleSystem, error) {
	if err := igu.validate(); err != nil {
		return nil, err
	}
	s := &SingleSystem{
		igu:     igu.clone(),
		indoor:  indoor.clone(),
		outdoor: outdoor.clone(),
		solver:  NewNonLinearSolver(),
	}
	s.indoor.tilt = s.igu.tilt
	s.outdoor.tilt = s.igu.tilt
	s.igu.initializeStartValues(s.outdoor.airTemperature, s.indoor.airTemperature)
	s.igu.updateGapPressures()
	return s, nil
}

/*
熱収支を解く。

	Notes:
		封入状態からたわみを求める場合は、中空層の幅の変化が収まるまで熱収支とたわみを交互に解く。
		測定した中空層幅を与える場合は温度に依存しないので、先にたわみを求める。
*/
func (s *SingleSystem) Solve() error {
	pOut, pIn := s.outdoor.pressure, s.indoor.pressure

	switch s.igu.deflection.mode {
	case DeflectionOff:
		_, _, err := s.solver.Solve(s.igu, s.indoor, s.outdoor)
		return err

	case DeflectionMeasured:
		if _, err := s.igu.updateDeflection(pOut, pIn); err != nil {
			return err
		}
		_, _, err := s.solver.Solve(s.igu, s.indoor, s.outdoor)
		return err

	case DeflectionFromState:
		s.deflectionIterations = 0
		for s.deflectionIterations < MaxDeflectionIterations {
			s.deflectionIterations++
			if _, _, err := s.solver.Solve(s.igu, s.indoor, s.outdoor); err != nil {
				return err
			}
			change, err := s.igu.updateDeflection(pOut, pIn)
			if err != nil {
				return err
			}
			if change < DeflectionTolerance {
				break
			}
		}
		// 最終的な幅で熱収支を解き直す
		_, _, err := s.solver.Solve(s.igu, s.indoor, s.outdoor)
		log.WithFields(log.Fields{
			"iterations": s.deflectionIterations,
		}).Debug("deflection converged")
		return err

	default:
		panic("invalid deflection mode")
	}
}

// 表面温度の初期値を与える, K, [2 × 固体層数]
func (s *SingleSystem) SetInitialGuess(temperatures []float64) error {
	return s.igu.setInitialTemperatures(temperatures)
}

func (s *SingleSystem) SetSolarRadiation(v float64) {
	s.outdoor.solarRadiation = v
}

func (s *SingleSystem) SolarRadiation() float64 {
	return s.outdoor.solarRadiation
}

func (s *SingleSystem) SetAbsorptances(absorptances []float64) error {
	return s.igu.SetAbsorptances(absorptances)
}

// 反復回数の上限を設定する。
func (s *SingleSystem) SetMaxIterations(n int) {
	s.solver.SetMaxIterations(n)
}

func (s *SingleSystem) IGU() *IGU {
	return s.igu
}

func (s *SingleSystem) Environment(side EnvironmentSide) *Environment {
	if side == Indoor {
		return s.indoor
	}
	return s.outdoor
}

// 固体層の表面温度（室外側から）, K
func (s *SingleSystem) Temperatures() []float64 {
	return s.igu.Temperatures()
}

// 固体層の表面ラジオシティ（室外側から）, W/m2
func (s *SingleSystem) Radiosities() []float64 {
	return s.igu.Radiosities()
}

// 環境と表面の間の熱流（室内から室外を正）, W/m2
func (s *SingleSystem) HeatFlow(side EnvironmentSide) float64 {
	return s.Environment(side).HeatFlow()
}

func (s *SingleSystem) ConvectiveHeatFlow(side EnvironmentSide) float64 {
	return s.Environment(side).ConvectionFlow()
}

func (s *SingleSystem) RadiationHeatFlow(side EnvironmentSide) float64 {
	return s.Environment(side).RadiationFlow()
}

func (s *SingleSystem) H(side EnvironmentSide) float64 {
	e := s.Environment(side)
	return e.Hc() + e.Hr()
}

func (s *SingleSystem) Hc(side EnvironmentSide) float64 {
	return s.Environment(side).Hc()
}

func (s *SingleSystem) Hr(side EnvironmentSide) float64 {
	return s.Environment(side).Hr()
}

func (s *SingleSystem) AmbientTemperature(side EnvironmentSide) float64 {
	return s.Environment(side).AmbientTemperature()
}

// 最後の熱収支計算の反復回数
func (s *SingleSystem) NumberOfIterations() int {
	return s.solver.Iterations()
}

func (s *SingleSystem) Converged() bool {
	return s.solver.Converged()
}

func (s *SingleSystem) State() SolverState {
	return s.solver.State()
}

func (s *SingleSystem) DeflectionIterations() int {
	return s.deflectionIterations
}

/*
熱貫流率

	Returns:
		熱貫流率, W/m2K

	Notes:
		U = q_in / (T_amb,in - T_amb,out)
*/
func (s *SingleSystem) UValue() float64 {
	return s.HeatFlow(Indoor) / (s.AmbientTemperature(Indoor) - s.AmbientTemperature(Outdoor))
}

// 全体の厚さ（たわみを考慮）, m
func (s *SingleSystem) Thickness() float64 {
	return s.igu.Thickness()
}

/*
IGU 全体の等価熱伝導率, W/mK

	Notes:
		k = q_in L / (T_b,last - T_f,first)
*/
func (s *SingleSystem) EffectiveSystemConductivity() float64 {
	ts := s.Temperatures()
	dt := ts[len(ts)-1] - ts[0]
	if math.Abs(dt) < 1e-12 {
		return 0.0
	}
	return s.HeatFlow(Indoor) * s.Thickness() / dt
}

/*
層ごとの等価熱伝導率, W/mK

	Notes:
		中空層は対流と表面間放射の合計 q = h (T_b - T_f) + (J_b - J_f) から求める。
*/
func (s *SingleSystem) EffectiveLayerConductivities() []float64 {
	ks := make([]float64, len(s.igu.layers))
	for i, l := range s.igu.layers {
		if !l.IsGap() {
			ks[i] = l.solid.conductivity
			continue
		}
		var h float64
		if l.kind == LayerKindVentilatedGap {
			// 最後の反復で求めた気流を用い、状態は変更しない
			h = l.gap.airflow.hc + 2*l.gap.airflow.speed
		} else {
			h, _ = layerFlow(s.igu, i, 0)
		}
		dt := l.surfaces[Back].temperature - l.surfaces[Front].temperature
		if math.Abs(dt) < 1e-12 {
			ks[i] = h * l.gap.meanWidth
			continue
		}
		q := h*dt + l.surfaces[Back].j - l.surfaces[Front].j
		ks[i] = q * l.gap.meanWidth / dt
	}
	return ks
}

// 固体層の中央たわみ（室内側を正）, m
func (s *SingleSystem) MaxLayerDeflections() []float64 {
	solids := s.igu.SolidLayers()
	ws := make([]float64, len(solids))
	for i, l := range solids {
		ws[i] = l.surfaces[Front].maxDeflection
	}
	return ws
}

// 固体層の平均たわみ（室内側を正）, m
func (s *SingleSystem) MeanLayerDeflections() []float64 {
	solids := s.igu.SolidLayers()
	ws := make([]float64, len(solids))
	for i, l := range solids {
		ws[i] = l.surfaces[Front].meanDeflection
	}
	return ws
}

// 中空層の中央幅の変化量, m
func (s *SingleSystem) MaxGapDeflections() []float64 {
	gaps := s.igu.GapLayers()
	ws := make([]float64, len(gaps))
	for j, g := range gaps {
		ws[j] = g.gap.maxWidth - g.thickness
	}
	return ws
}

// 中空層の平均幅の変化量, m
func (s *SingleSystem) MeanGapDeflections() []float64 {
	gaps := s.igu.GapLayers()
	ws := make([]float64, len(gaps))
	for j, g := range gaps {
		ws[j] = g.gap.meanWidth - g.thickness
	}
	return ws
}

// 中空層の中央幅, m
func (s *SingleSystem) GapWidths() []float64 {
	gaps := s.igu.GapLayers()
	ws := make([]float64, len(gaps))
	for j, g := range gaps {
		ws[j] = g.gap.maxWidth
	}
	return ws
}

// 中空層の圧力, Pa
func (s *SingleSystem) GapPressures() []float64 {
	gaps := s.igu.GapLayers()
	ps := make([]float64, len(gaps))
	for j, g := range gaps {
		ps[j] = g.gap.currentPressure
	}
	return ps
}
