package tarcog

import (
	"math"

	log "github.com/sirupsen/logrus"

	"tarcog/linear"
)

// 非線形ソルバーの状態
type SolverState int

const (
	SolverInitialized           SolverState = iota // 初期値を設定した
	SolverIterating                                // 反復中
	SolverConverged                                // 収束した
	SolverMaxIterationsExceeded                    // 反復回数の上限に達した
)

func (s SolverState) String() string {
	return [...]string{"initialized", "iterating", "converged", "max_iterations_exceeded"}[s]
}

/*
表面温度とラジオシティの反復解法

	Notes:
		毎回の反復で係数を現在の状態で評価して線形方程式を解き、緩和して状態を更新する。
		変化量が前回より減らなかった場合は緩和係数を下げる。
*/
type NonLinearSolver struct {
	tolerance     float64
	maxIterations int
	relaxation    float64
	iterations    int
	state         SolverState
}

func NewNonLinearSolver() *NonLinearSolver {
	return &NonLinearSolver{
		tolerance:     ConvergenceTolerance,
		maxIterations: MaxIterations,
		relaxation:    RelaxationParameterMax,
		state:         SolverInitialized,
	}
}

func (s *NonLinearSolver) State() SolverState {
	return s.state
}

func (s *NonLinearSolver) Iterations() int {
	return s.iterations
}

func (s *NonLinearSolver) RelaxationParameter() float64 {
	return s.relaxation
}

func (s *NonLinearSolver) Converged() bool {
	return s.state == SolverConverged
}

/*
収束するまで反復する。

	Args:
		igu: 複層ガラス（表面の状態を初期値として用い、結果を書き戻す）
		indoor: 室内環境
		outdoor: 室外環境

	Returns:
		(1) 室外側の対流熱伝達率, W/m2K
		(2) 室内側の対流熱伝達率, W/m2K
		(3) エラー

	Notes:
		反復回数の上限に達してもエラーにはせず、最後の状態を残す。
*/
func (s *NonLinearSolver) Solve(igu *IGU, indoor, outdoor *Environment) (float64, float64, error) {
	s.iterations = 0
	s.relaxation = RelaxationParameterMax
	s.state = SolverIterating

	x := igu.state()
	prev := math.Inf(1)

	for s.iterations < s.maxIterations {
		s.iterations++
		igu.updateGapPressures()

		a, b, _, _ := heatBalance(igu, indoor, outdoor)
		sol, err := linear.Solve(a, b)
		if err != nil {
			return 0, 0, err
		}

		change := stateDistance(sol, x)
		x.ScaleVec(1-s.relaxation, x)
		x.AddScaledVec(x, s.relaxation, sol)
		igu.setState(x)

		if change < s.tolerance {
			s.state = SolverConverged
			break
		}
		if change >= prev {
			s.relaxation = math.Max(RelaxationParameterMin, s.relaxation-RelaxationParameterStep)
			log.WithFields(log.Fields{
				"iteration":  s.iterations,
				"change":     change,
				"relaxation": s.relaxation,
			}).Debug("relaxation parameter decreased")
		}
		prev = change
	}

	if s.state != SolverConverged {
		s.state = SolverMaxIterationsExceeded
		log.WithFields(log.Fields{
			"iterations": s.iterations,
			"change":     prev,
		}).Warn("heat balance did not converge")
	}

	// 最後の状態で熱伝達率と気流を評価し直す
	igu.updateGapPressures()
	_, _, hcOut, hcIn := heatBalance(igu, indoor, outdoor)
	solids := igu.SolidLayers()
	outdoor.record(&solids[0].surfaces[Front], hcOut)
	indoor.record(&solids[len(solids)-1].surfaces[Back], hcIn)
	return hcOut, hcIn, nil
}

// 反復回数の上限を設定する。
func (s *NonLinearSolver) SetMaxIterations(n int) {
	s.maxIterations = n
}
