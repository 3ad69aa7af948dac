package tarcog

// ガラスのたわみと中空層の幅・圧力

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"tarcog/linear"
)

/*
四辺単純支持の矩形板の単位荷重あたりのたわみ係数

	Args:
		width: 幅, m
		height: 高さ, m
		thickness: 板厚, m
		youngsModulus: ヤング率, Pa
		poissonRatio: ポアソン比, -

	Returns:
		(1) 平均たわみ係数, m/Pa
		(2) 中央（最大）たわみ係数, m/Pa

	Notes:
		D = E t^3 / (12 (1 - ν^2))
		C_max = 16 / (π^6 D) Σ (-1)^((m+n)/2-1) / (m n (m^2/a^2 + n^2/b^2)^2)
		C_mean = 64 / (π^8 D) Σ 1 / (m^2 n^2 (m^2/a^2 + n^2/b^2)^2)
		m, n は奇数
		Timoshenko & Woinowsky-Krieger, Theory of Plates and Shells の Navier 解
*/
func plateCoefficients(width, height, thickness, youngsModulus, poissonRatio float64) (float64, float64) {
	d := youngsModulus * math.Pow(thickness, 3) / (12 * (1 - poissonRatio*poissonRatio))

	sumMax, sumMean := 0.0, 0.0
	for m := 1; m <= plateSeriesTerms; m += 2 {
		for n := 1; n <= plateSeriesTerms; n += 2 {
			fm, fn := float64(m), float64(n)
			k := fm*fm/(width*width) + fn*fn/(height*height)
			sign := 1.0
			if ((m+n)/2-1)%2 != 0 {
				sign = -1.0
			}
			sumMax += sign / (fm * fn * k * k)
			sumMean += 1 / (fm * fm * fn * fn * k * k)
		}
	}
	cMean := 64 / (math.Pow(math.Pi, 8) * d) * sumMean
	cMax := 16 / (math.Pow(math.Pi, 6) * d) * sumMax
	return cMean, cMax
}

// 固体層ごとのたわみ係数
func (igu *IGU) plateCoefficients() ([]float64, []float64) {
	solids := igu.SolidLayers()
	cMean := make([]float64, len(solids))
	cMax := make([]float64, len(solids))
	for i, l := range solids {
		cMean[i], cMax[i] = plateCoefficients(igu.width, igu.height, l.thickness,
			l.solid.youngsModulus, l.solid.poissonRatio)
	}
	return cMean, cMax
}

/*
固体層ごとの外力（外力の指定値と自重）, Pa

	Notes:
		室外側から室内側へ向かう方向を正とする。
		自重は ρ g t cos(tilt)
*/
func (igu *IGU) paneLoads() []float64 {
	solids := igu.SolidLayers()
	q := make([]float64, len(solids))
	for i, l := range solids {
		q[i] = l.solid.density * GravityConstant * l.thickness * math.Cos(igu.tilt*math.Pi/180)
		if igu.deflection.hasAppliedLoad {
			q[i] += igu.deflection.appliedLoad[i]
		}
	}
	return q
}

// 中空層の気体の平均温度, K
func gapGasTemperature(l *Layer) float64 {
	if l.gap.ventilation != nil && l.gap.airflow.gapTemperature > 0 {
		return l.gap.airflow.gapTemperature
	}
	return stat.Mean([]float64{l.surfaces[Front].temperature, l.surfaces[Back].temperature}, nil)
}

/*
中空層の気体の封入状態

	Returns:
		(1) 封入時温度, K
		(2) 封入時圧力, Pa
		(3) 理想気体として扱うかどうか
*/
func (igu *IGU) gapFillState(l *Layer) (float64, float64, bool) {
	if l.gap.seal != nil {
		return l.gap.seal.FillTemperature, l.gap.seal.FillPressure, true
	}
	if igu.deflection.mode == DeflectionFromState && l.gap.ventilation == nil {
		return igu.deflection.tRef, igu.deflection.pRef, true
	}
	return 0, l.gap.pressure, false
}

/*
現在の温度と幅から中空層の圧力を更新する。

	Notes:
		P = P_fill (T / T_fill) (L_0 / L_mean)
*/
func (igu *IGU) updateGapPressures() {
	for _, l := range igu.GapLayers() {
		tFill, pFill, sealed := igu.gapFillState(l)
		if !sealed {
			l.gap.currentPressure = pFill
			continue
		}
		l.gap.currentPressure = pFill * (gapGasTemperature(l) / tFill) * (l.thickness / l.gap.meanWidth)
	}
}

/*
たわみを計算し、表面のたわみと中空層の幅を更新する。

	Args:
		outdoorPressure: 室外の気圧, Pa
		indoorPressure: 室内の気圧, Pa

	Returns:
		中空層の平均幅の最大変化量, m
*/
func (igu *IGU) updateDeflection(outdoorPressure, indoorPressure float64) (float64, error) {
	var (
		wMean []float64
		err   error
	)
	switch igu.deflection.mode {
	case DeflectionOff:
		return 0, nil
	case DeflectionFromState:
		wMean, err = igu.deflectionFromState(outdoorPressure, indoorPressure)
	case DeflectionMeasured:
		wMean, err = igu.deflectionFromMeasuredGaps(outdoorPressure, indoorPressure)
	default:
		panic("invalid deflection mode")
	}
	if err != nil {
		return 0, err
	}
	return igu.applyDeflection(wMean), nil
}

/*
封入状態からたわみを計算する。

	Notes:
		中空層 j の圧力を現在の幅 L_c のまわりで線形化する。
		P_j = α_j + β_j (w_j - w_{j+1}),  β = P_c / L_c,  α = P_c (2 - L_0 / L_c)
		固体層 i の平均たわみ w_i = C_i (P_{i-1} - P_i + q_i) は三重対角の連立方程式となる。
		線形化点が収束するまで繰り返す。
*/
func (igu *IGU) deflectionFromState(outdoorPressure, indoorPressure float64) ([]float64, error) {
	solids := igu.SolidLayers()
	gaps := igu.GapLayers()
	n := len(solids)
	cMean, _ := igu.plateCoefficients()
	q := igu.paneLoads()

	widths := make([]float64, len(gaps))
	for j, g := range gaps {
		widths[j] = g.gap.meanWidth
	}

	w := make([]float64, n)
	for it := 0; it < MaxDeflectionIterations; it++ {
		// 環境側は α = 気圧, β = 0
		alpha := make([]float64, n+1)
		beta := make([]float64, n+1)
		alpha[0] = outdoorPressure
		alpha[n] = indoorPressure
		for j, g := range gaps {
			tFill, pFill, sealed := igu.gapFillState(g)
			if !sealed {
				alpha[j+1] = pFill
				continue
			}
			pc := pFill * (gapGasTemperature(g) / tFill) * (g.thickness / widths[j])
			beta[j+1] = pc / widths[j]
			alpha[j+1] = pc * (2 - g.thickness/widths[j])
		}

		a := mat.NewDense(n, n, nil)
		b := mat.NewVecDense(n, nil)
		for i := 0; i < n; i++ {
			a.Set(i, i, 1+cMean[i]*(beta[i]+beta[i+1]))
			if i > 0 {
				a.Set(i, i-1, -cMean[i]*beta[i])
			}
			if i < n-1 {
				a.Set(i, i+1, -cMean[i]*beta[i+1])
			}
			b.SetVec(i, cMean[i]*(q[i]+alpha[i]-alpha[i+1]))
		}
		x, err := linear.Solve(a, b)
		if err != nil {
			return nil, err
		}
		for i := range w {
			w[i] = x.AtVec(i)
		}

		change := 0.0
		for j, g := range gaps {
			next := g.thickness - w[j] + w[j+1]
			change = math.Max(change, math.Abs(next-widths[j]))
			widths[j] = next
		}
		if change < DeflectionTolerance {
			break
		}
	}
	return w, nil
}

/*
測定した中空層の中央幅からたわみを計算する。

	Notes:
		中央たわみ w_i について
		w_j - w_{j+1} = L_0,j - L_m,j （中空層ごと）
		Σ w_i / C_max,i = P_out - P_in + Σ q_i （荷重の釣り合い）
		平均たわみは w_i C_mean,i / C_max,i
*/
func (igu *IGU) deflectionFromMeasuredGaps(outdoorPressure, indoorPressure float64) ([]float64, error) {
	solids := igu.SolidLayers()
	gaps := igu.GapLayers()
	n := len(solids)
	cMean, cMax := igu.plateCoefficients()
	q := igu.paneLoads()

	a := mat.NewDense(n, n, nil)
	b := mat.NewVecDense(n, nil)
	for j, g := range gaps {
		a.Set(j, j, 1)
		a.Set(j, j+1, -1)
		b.SetVec(j, g.thickness-igu.deflection.measuredGaps[j])
	}
	load := outdoorPressure - indoorPressure
	for i := 0; i < n; i++ {
		a.Set(n-1, i, 1/cMax[i])
		load += q[i]
	}
	b.SetVec(n-1, load)

	x, err := linear.Solve(a, b)
	if err != nil {
		return nil, err
	}
	w := make([]float64, n)
	for i := range w {
		w[i] = x.AtVec(i) * cMean[i] / cMax[i]
	}
	return w, nil
}

/*
平均たわみを表面と中空層に反映する。

	Returns:
		中空層の平均幅の最大変化量, m
*/
func (igu *IGU) applyDeflection(wMean []float64) float64 {
	solids := igu.SolidLayers()
	gaps := igu.GapLayers()
	cMean, cMax := igu.plateCoefficients()

	wMax := make([]float64, len(wMean))
	for i, l := range solids {
		wMax[i] = wMean[i] * cMax[i] / cMean[i]
		for _, side := range []Side{Front, Back} {
			l.surfaces[side].meanDeflection = wMean[i]
			l.surfaces[side].maxDeflection = wMax[i]
		}
	}

	change := 0.0
	for j, g := range gaps {
		mean := g.thickness - wMean[j] + wMean[j+1]
		change = math.Max(change, math.Abs(mean-g.gap.meanWidth))
		g.gap.meanWidth = mean
		g.gap.maxWidth = g.thickness - wMax[j] + wMax[j+1]
		g.surfaces[Front].meanDeflection = wMean[j]
		g.surfaces[Front].maxDeflection = wMax[j]
		g.surfaces[Back].meanDeflection = wMean[j+1]
		g.surfaces[Back].maxDeflection = wMax[j+1]
	}
	return change
}

// 中空層の中央幅, m
func (l *Layer) MaxWidth() float64 {
	if l.gap == nil {
		return l.thickness
	}
	return l.gap.maxWidth
}
