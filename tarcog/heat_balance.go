package tarcog

// 表面熱収支とラジオシティの連立方程式

import (
	"gonum.org/v1/gonum/mat"
)

/*
層の熱コンダクタンスと表面への熱取得を計算する。

	Args:
		igu: 複層ガラス
		i: 層の添字
		solar: 日射量, W/m2

	Returns:
		(1) 両表面間の熱コンダクタンス, W/m2K
		(2) 両表面への熱取得の合計, W/m2
*/
func layerFlow(igu *IGU, i int, solar float64) (float64, float64) {
	l := igu.layers[i]
	switch l.kind {
	case LayerKindSolid:
		return l.solid.conductivity / l.thickness, l.solid.solarAbsorptance * solar

	case LayerKindGap, LayerKindSealedGap:
		return gapConvection(l, igu.height, igu.tilt, gapGasTemperature(l)), 0.0

	case LayerKindPillaredGap:
		h := gapConvection(l, igu.height, igu.tilt, gapGasTemperature(l))
		prev, next := igu.neighbours(i)
		kg := (prev.Conductivity() + next.Conductivity()) / 2
		return h + l.gap.pillars.conductance(l.gap.meanWidth, kg), 0.0

	case LayerKindVentilatedGap:
		s := solveAirflow(l, igu.height, igu.tilt)
		l.gap.airflow = s
		return s.hc + 2*s.speed, s.gain

	default:
		panic("invalid layer kind")
	}
}

/*
表面熱収支とラジオシティの連立方程式を作成する。

	Args:
		igu: 複層ガラス
		indoor: 室内環境
		outdoor: 室外環境

	Returns:
		(1) 係数行列 [4N, 4N]
		(2) 右辺ベクトル [4N]
		(3) 室外側の対流熱伝達率, W/m2K
		(4) 室内側の対流熱伝達率, W/m2K

	Notes:
		固体層 k の未知数は p = 4k から (T_f, J_f, J_b, T_b)。
		h_prev (T_f - T_prev) + h_gl (T_f - T_b) + ε_f σ T_f^3 T_f - ε_f G_f = S/2 + Q_prev/2
		J_f = ε_f σ T_f^3 T_f + ρ_f G_f + τ_b G_b
		J_b = ε_b σ T_b^3 T_b + ρ_b G_b + τ_f G_f
		h_next (T_b - T_next) + h_gl (T_b - T_f) + ε_b σ T_b^3 T_b - ε_b G_b = S/2 + Q_next/2
		G_f は室外側の層の J_b（端では室外環境の入射放射）、G_b は室内側の層の J_f。
		T^3 の項は前回の反復値で評価する。
*/
func heatBalance(igu *IGU, indoor, outdoor *Environment) (*mat.Dense, *mat.VecDense, float64, float64) {
	solids := igu.SolidLayers()
	n := 4 * len(solids)
	a := mat.NewDense(n, n, nil)
	b := mat.NewVecDense(n, nil)

	solar := outdoor.solarRadiation
	first, last := solids[0], solids[len(solids)-1]
	hcOut := outdoor.convectionCoefficient(&first.surfaces[Front], igu.height, igu.tilt)
	hcIn := indoor.convectionCoefficient(&last.surfaces[Back], igu.height, igu.tilt)
	gOut := outdoor.IR()
	gIn := indoor.IR()

	add := func(r, c int, v float64) {
		a.Set(r, c, a.At(r, c)+v)
	}
	addB := func(r int, v float64) {
		b.SetVec(r, b.AtVec(r)+v)
	}

	h := make([]float64, len(igu.layers))
	gain := make([]float64, len(igu.layers))
	for i := range igu.layers {
		h[i], gain[i] = layerFlow(igu, i, solar)
	}

	for k := range solids {
		li := 2 * k
		l := igu.layers[li]
		p := 4 * k

		front, back := &l.surfaces[Front], &l.surfaces[Back]
		ef, tf, rf := front.Emissivity(), front.Transmittance(), front.Reflectance()
		eb, tb, rb := back.Emissivity(), back.Transmittance(), back.Reflectance()
		radFront := front.emissivePowerTerm()
		radBack := back.emissivePowerTerm()

		hgl, s := h[li], gain[li]

		var hPrev, gainPrev, hNext, gainNext float64
		if k == 0 {
			hPrev = hcOut
		} else {
			hPrev, gainPrev = h[li-1], gain[li-1]
		}
		if k == len(solids)-1 {
			hNext = hcIn
		} else {
			hNext, gainNext = h[li+1], gain[li+1]
		}

		add(p, p, hPrev+hgl+radFront)
		add(p, p+3, -hgl)
		addB(p, s/2+gainPrev/2)

		add(p+1, p+1, 1)
		add(p+1, p, -radFront)

		add(p+2, p+2, 1)
		add(p+2, p+3, -radBack)

		add(p+3, p+3, hNext+hgl+radBack)
		add(p+3, p, -hgl)
		addB(p+3, s/2+gainNext/2)

		if k == 0 {
			addB(p, hPrev*outdoor.airTemperature+ef*gOut)
			addB(p+1, rf*gOut)
			addB(p+2, tf*gOut)
		} else {
			add(p, p-1, -hPrev)
			add(p, p-2, -ef)
			add(p+1, p-2, -rf)
			add(p+2, p-2, -tf)
		}

		if k == len(solids)-1 {
			addB(p+3, hNext*indoor.airTemperature+eb*gIn)
			addB(p+2, rb*gIn)
			addB(p+1, tb*gIn)
		} else {
			add(p+3, p+4, -hNext)
			add(p+3, p+5, -eb)
			add(p+2, p+5, -rb)
			add(p+1, p+5, -tb)
		}
	}
	return a, b, hcOut, hcIn
}
