package tarcog

import (
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"
)

// 計算条件の種類
type RunType int

const (
	RunUValue RunType = iota // 日射なし
	RunSHGC                  // 日射あり
)

func (r RunType) String() string {
	return [...]string{"u_value", "shgc"}[r]
}

var runTypes = [...]RunType{RunUValue, RunSHGC}

type Option func(*System)

// U 値計算と SHGC 計算を並行に解く。
func WithConcurrentRuns() Option {
	return func(s *System) {
		s.concurrent = true
	}
}

// 反復回数の上限
func WithMaxIterations(n int) Option {
	return func(s *System) {
		s.maxIterations = n
	}
}

/*
U 値計算（日射 0）と SHGC 計算（与えられた日射）の組

	Notes:
		両者は同じ IGU と環境の複製を用い、状態を共有しない。
*/
type System struct {
	runs          [2]*SingleSystem
	concurrent    bool
	maxIterations int
}

/*
作成と同時に両方の計算条件を解く。

	Args:
		igu: 複層ガラス
		indoor: 室内環境
		outdoor: 室外環境（日射量は SHGC 計算に用いる）
		opts: オプション
*/
func NewSystem(igu *IGU, indoor, outdoor *Environment, opts ...Option) (*System, error) {
	s := &System{maxIterations: MaxIterations}
	for _, opt := range opts {
		opt(s)
	}

	for _, run := range runTypes {
		single, err := NewSingleSystem(igu, indoor, outdoor)
		if err != nil {
			return nil, err
		}
		single.SetMaxIterations(s.maxIterations)
		s.runs[run] = single
	}
	s.runs[RunUValue].SetSolarRadiation(0)

	if err := s.solve(runTypes[:]...); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *System) solve(runs ...RunType) error {
	if !s.concurrent {
		for _, run := range runs {
			if err := s.runs[run].Solve(); err != nil {
				return err
			}
		}
		s.logRuns(runs)
		return nil
	}

	errs := make([]error, len(runs))
	var wg sync.WaitGroup
	for i, run := range runs {
		wg.Add(1)
		go func(i int, run RunType) {
			defer wg.Done()
			errs[i] = s.runs[run].Solve()
		}(i, run)
	}
	wg.Wait()
	if err := errors.Join(errs...); err != nil {
		return err
	}
	s.logRuns(runs)
	return nil
}

func (s *System) logRuns(runs []RunType) {
	for _, run := range runs {
		r := s.runs[run]
		log.WithFields(log.Fields{
			"run":        run,
			"iterations": r.NumberOfIterations(),
			"converged":  r.Converged(),
		}).Debug("heat balance solved")
	}
}

func (s *System) Run(run RunType) *SingleSystem {
	return s.runs[run]
}

/*
固体層ごとの日射吸収率を設定し、SHGC 計算を解き直す。

	Args:
		absorptances: 日射吸収率, -, [固体層数]
*/
func (s *System) SetAbsorptances(absorptances []float64) error {
	if err := s.runs[RunSHGC].SetAbsorptances(absorptances); err != nil {
		return err
	}
	if err := s.runs[RunUValue].SetAbsorptances(absorptances); err != nil {
		return err
	}
	return s.solve(RunSHGC)
}

// 日射量を設定し、SHGC 計算を解き直す, W/m2
func (s *System) SetSolarRadiation(v float64) error {
	s.runs[RunSHGC].SetSolarRadiation(v)
	return s.solve(RunSHGC)
}

func (s *System) Temperatures(run RunType) []float64 {
	return s.runs[run].Temperatures()
}

func (s *System) Radiosities(run RunType) []float64 {
	return s.runs[run].Radiosities()
}

func (s *System) HeatFlow(run RunType, side EnvironmentSide) float64 {
	return s.runs[run].HeatFlow(side)
}

func (s *System) H(run RunType, side EnvironmentSide) float64 {
	return s.runs[run].H(side)
}

func (s *System) NumberOfIterations(run RunType) int {
	return s.runs[run].NumberOfIterations()
}

func (s *System) Converged(run RunType) bool {
	return s.runs[run].Converged()
}

func (s *System) Thickness(run RunType) float64 {
	return s.runs[run].Thickness()
}

func (s *System) EffectiveSystemConductivity(run RunType) float64 {
	return s.runs[run].EffectiveSystemConductivity()
}

func (s *System) EffectiveLayerConductivities(run RunType) []float64 {
	return s.runs[run].EffectiveLayerConductivities()
}

func (s *System) MaxLayerDeflections(run RunType) []float64 {
	return s.runs[run].MaxLayerDeflections()
}

func (s *System) MeanLayerDeflections(run RunType) []float64 {
	return s.runs[run].MeanLayerDeflections()
}

func (s *System) MaxGapDeflections(run RunType) []float64 {
	return s.runs[run].MaxGapDeflections()
}

func (s *System) MeanGapDeflections(run RunType) []float64 {
	return s.runs[run].MeanGapDeflections()
}

// 熱貫流率（U 値計算）, W/m2K
func (s *System) UValue() float64 {
	return s.runs[RunUValue].UValue()
}

/*
日射熱取得率

	Args:
		totalSolarTransmittance: 日射透過率, -

	Returns:
		日射熱取得率, -

	Notes:
		SHGC = τ_sol - (q_in,SHGC - q_in,U) / I_sol
		日射量が 0 の場合は τ_sol
*/
func (s *System) SHGC(totalSolarTransmittance float64) float64 {
	solar := s.runs[RunSHGC].SolarRadiation()
	if solar == 0 {
		return totalSolarTransmittance
	}
	dq := s.runs[RunSHGC].HeatFlow(Indoor) - s.runs[RunUValue].HeatFlow(Indoor)
	return totalSolarTransmittance - dq/solar
}

/*
相対熱取得（夏期の評価条件）

	Returns:
		相対熱取得, W/m2

	Notes:
		RHG = 7.8 U + 630 SHGC
*/
func (s *System) RelativeHeatGain(totalSolarTransmittance float64) float64 {
	return relativeHeatGainDeltaT*s.UValue() + relativeHeatGainRadiation*s.SHGC(totalSolarTransmittance)
}
