package tarcog

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrLayerOrder   = errors.New("tarcog: invalid layer order")
	ErrSizeMismatch = errors.New("tarcog: input size does not match layer count")
	ErrEmptyIGU     = errors.New("tarcog: IGU has no solid layer")
)

// たわみの計算方法
type DeflectionMode int

const (
	DeflectionOff      DeflectionMode = iota // たわみを考慮しない
	DeflectionFromState                      // 封入時の温度・圧力から計算する
	DeflectionMeasured                       // 測定した中空層幅を与える
)

func (m DeflectionMode) String() string {
	return [...]string{"off", "from_state", "measured"}[m]
}

type deflectionSettings struct {
	mode           DeflectionMode
	tRef           float64   // 封入時温度, K
	pRef           float64   // 封入時圧力, Pa
	measuredGaps   []float64 // 測定した中空層の中央幅, m
	appliedLoad    []float64 // 固体層ごとの外力, Pa
	hasAppliedLoad bool
}

/*
複層ガラス（IGU）

	Notes:
		層は室外側から室内側の順に並ぶ。固体層と中空層は交互に配置し、
		両端は固体層とする。隣接する層は添字で参照する。
*/
type IGU struct {
	width  float64 // 幅, m
	height float64 // 高さ, m
	tilt   float64 // 傾斜角, degree

	layers     []*Layer
	deflection deflectionSettings
}

/*
	Args:
		width: 窓の幅, m
		height: 窓の高さ, m
*/
func NewIGU(width, height float64) *IGU {
	return &IGU{
		width:  width,
		height: height,
		tilt:   DefaultTilt,
	}
}

func (igu *IGU) Width() float64 {
	return igu.width
}

func (igu *IGU) Height() float64 {
	return igu.height
}

func (igu *IGU) Tilt() float64 {
	return igu.tilt
}

// 傾斜角を設定する, degree
func (igu *IGU) SetTilt(tilt float64) {
	igu.tilt = tilt
}

/*
層を室内側に追加する。

	Notes:
		最初の層が中空層の場合、または同じ種類の層が連続する場合はエラーとする。
*/
func (igu *IGU) AddLayer(l *Layer) error {
	if l.thickness <= 0 {
		return ErrInvalidThickness
	}
	n := len(igu.layers)
	if n == 0 && l.IsGap() {
		return fmt.Errorf("%w: first layer must be solid, got %s", ErrLayerOrder, l.kind)
	}
	if n > 0 && igu.layers[n-1].IsGap() == l.IsGap() {
		return fmt.Errorf("%w: %s follows %s at position %d", ErrLayerOrder, l.kind, igu.layers[n-1].kind, n)
	}
	igu.layers = append(igu.layers, l)
	return nil
}

func (igu *IGU) AddLayers(ls ...*Layer) error {
	for _, l := range ls {
		if err := igu.AddLayer(l); err != nil {
			return err
		}
	}
	return nil
}

func (igu *IGU) Layers() []*Layer {
	return igu.layers
}

func (igu *IGU) NumberOfLayers() int {
	return len(igu.layers)
}

func (igu *IGU) SolidLayers() []*Layer {
	ls := make([]*Layer, 0, len(igu.layers)/2+1)
	for _, l := range igu.layers {
		if !l.IsGap() {
			ls = append(ls, l)
		}
	}
	return ls
}

func (igu *IGU) GapLayers() []*Layer {
	ls := make([]*Layer, 0, len(igu.layers)/2)
	for _, l := range igu.layers {
		if l.IsGap() {
			ls = append(ls, l)
		}
	}
	return ls
}

// 全体の厚さ（たわみを考慮）, m
func (igu *IGU) Thickness() float64 {
	t := 0.0
	for _, l := range igu.layers {
		t += l.EffectiveThickness()
	}
	return t
}

/*
固体層ごとの日射吸収率を設定する。

	Args:
		absorptances: 日射吸収率, -, [固体層数]
*/
func (igu *IGU) SetAbsorptances(absorptances []float64) error {
	solids := igu.SolidLayers()
	if len(absorptances) != len(solids) {
		return fmt.Errorf("%w: %d absorptances for %d solid layers", ErrSizeMismatch, len(absorptances), len(solids))
	}
	for i, l := range solids {
		l.SetSolarAbsorptance(absorptances[i])
	}
	return nil
}

/*
封入時の温度・圧力からたわみを計算する。

	Args:
		tRef: 封入時温度, K
		pRef: 封入時圧力, Pa
*/
func (igu *IGU) SetDeflectionProperties(tRef, pRef float64) {
	igu.deflection.mode = DeflectionFromState
	igu.deflection.tRef = tRef
	igu.deflection.pRef = pRef
}

/*
測定した中空層の中央幅からたわみを計算する。

	Args:
		widths: 中空層の中央幅, m, [中空層数]
*/
func (igu *IGU) SetDeflectionFromMeasuredGaps(widths []float64) error {
	gaps := igu.GapLayers()
	if len(widths) != len(gaps) {
		return fmt.Errorf("%w: %d measured widths for %d gaps", ErrSizeMismatch, len(widths), len(gaps))
	}
	igu.deflection.mode = DeflectionMeasured
	igu.deflection.measuredGaps = append([]float64(nil), widths...)
	return nil
}

/*
固体層ごとの外力（室外側から室内側を正）を設定する。

	Args:
		load: 外力, Pa, [固体層数]
*/
func (igu *IGU) SetAppliedLoad(load []float64) error {
	solids := igu.SolidLayers()
	if len(load) != len(solids) {
		return fmt.Errorf("%w: %d loads for %d solid layers", ErrSizeMismatch, len(load), len(solids))
	}
	igu.deflection.appliedLoad = append([]float64(nil), load...)
	igu.deflection.hasAppliedLoad = true
	return nil
}

func (igu *IGU) DeflectionMode() DeflectionMode {
	return igu.deflection.mode
}

/*
両端が固体層であることと、たわみの入力が現在の層数と一致することを確認する。

	Notes:
		外力や測定幅を与えた後に層を追加した場合もここで検出する。
*/
func (igu *IGU) validate() error {
	n := len(igu.layers)
	if n == 0 {
		return ErrEmptyIGU
	}
	if igu.layers[n-1].IsGap() {
		return fmt.Errorf("%w: last layer must be solid", ErrLayerOrder)
	}
	if solids := len(igu.SolidLayers()); igu.deflection.hasAppliedLoad && len(igu.deflection.appliedLoad) != solids {
		return fmt.Errorf("%w: %d loads for %d solid layers", ErrSizeMismatch, len(igu.deflection.appliedLoad), solids)
	}
	if gaps := len(igu.GapLayers()); igu.deflection.mode == DeflectionMeasured && len(igu.deflection.measuredGaps) != gaps {
		return fmt.Errorf("%w: %d measured widths for %d gaps", ErrSizeMismatch, len(igu.deflection.measuredGaps), gaps)
	}
	return nil
}

/*
層の添字から前後の層を取得する。

	Returns:
		前の層（室外側）、後の層（室内側）。端の場合は nil
*/
func (igu *IGU) neighbours(i int) (*Layer, *Layer) {
	var prev, next *Layer
	if i > 0 {
		prev = igu.layers[i-1]
	}
	if i < len(igu.layers)-1 {
		next = igu.layers[i+1]
	}
	return prev, next
}

/*
初期値を設定する。固体層ごとに、厚さ方向の中心位置で室外と室内の空気温度を線形補間した温度を
両表面に与え、ラジオシティは σ T^4 とする。

	Args:
		outdoor: 室外側の温度, K
		indoor: 室内側の温度, K
*/
func (igu *IGU) initializeStartValues(outdoor, indoor float64) {
	total := igu.Thickness()
	solids := igu.SolidLayers()
	temperatures := make([]float64, 0, 2*len(solids))
	pos := 0.0
	for _, l := range igu.layers {
		if !l.IsGap() {
			t := outdoor + (indoor-outdoor)*(pos+l.thickness/2)/total
			temperatures = append(temperatures, t, t)
		}
		pos += l.EffectiveThickness()
	}
	// 長さは固体層数から作っているので失敗しない
	_ = igu.setInitialTemperatures(temperatures)
}

/*
表面温度の初期値を与える。

	Args:
		temperatures: 固体層の表面温度（室外側から）, K, [2 × 固体層数]
*/
func (igu *IGU) setInitialTemperatures(temperatures []float64) error {
	solids := igu.SolidLayers()
	if len(temperatures) != 2*len(solids) {
		return fmt.Errorf("%w: %d temperatures for %d surfaces", ErrSizeMismatch, len(temperatures), 2*len(solids))
	}
	x := mat.NewVecDense(4*len(solids), nil)
	for i := range solids {
		tf, tb := temperatures[2*i], temperatures[2*i+1]
		x.SetVec(4*i, tf)
		x.SetVec(4*i+1, StefanBoltzmann*tf*tf*tf*tf)
		x.SetVec(4*i+2, StefanBoltzmann*tb*tb*tb*tb)
		x.SetVec(4*i+3, tb)
	}
	igu.setState(x)
	return nil
}

/*
未知数ベクトルを取得する。

	Returns:
		固体層ごとに (T_f, J_f, J_b, T_b), [4 × 固体層数]
*/
func (igu *IGU) state() *mat.VecDense {
	solids := igu.SolidLayers()
	x := mat.NewVecDense(4*len(solids), nil)
	for i, l := range solids {
		x.SetVec(4*i, l.surfaces[Front].temperature)
		x.SetVec(4*i+1, l.surfaces[Front].j)
		x.SetVec(4*i+2, l.surfaces[Back].j)
		x.SetVec(4*i+3, l.surfaces[Back].temperature)
	}
	return x
}

/*
未知数ベクトルを表面に反映する。中空層の表面は隣接する固体層の表面と一致させる。
*/
func (igu *IGU) setState(x *mat.VecDense) {
	k := 0
	for i, l := range igu.layers {
		if l.IsGap() {
			continue
		}
		l.surfaces[Front].temperature = x.AtVec(4 * k)
		l.surfaces[Front].j = x.AtVec(4*k + 1)
		l.surfaces[Back].j = x.AtVec(4*k + 2)
		l.surfaces[Back].temperature = x.AtVec(4*k + 3)
		prev, next := igu.neighbours(i)
		if prev != nil {
			prev.surfaces[Back].temperature = l.surfaces[Front].temperature
			prev.surfaces[Back].j = l.surfaces[Front].j
		}
		if next != nil {
			next.surfaces[Front].temperature = l.surfaces[Back].temperature
			next.surfaces[Front].j = l.surfaces[Back].j
		}
		k++
	}
}

// 固体層の表面温度（室外側から）, K
func (igu *IGU) Temperatures() []float64 {
	solids := igu.SolidLayers()
	ts := make([]float64, 0, 2*len(solids))
	for _, l := range solids {
		ts = append(ts, l.surfaces[Front].temperature, l.surfaces[Back].temperature)
	}
	return ts
}

// 固体層の表面ラジオシティ（室外側から）, W/m2
func (igu *IGU) Radiosities() []float64 {
	solids := igu.SolidLayers()
	js := make([]float64, 0, 2*len(solids))
	for _, l := range solids {
		js = append(js, l.surfaces[Front].j, l.surfaces[Back].j)
	}
	return js
}

// 全表面の温度とラジオシティの最大変化量
func stateDistance(a, b *mat.VecDense) float64 {
	return floats.Distance(a.RawVector().Data, b.RawVector().Data, math.Inf(1))
}

func (igu *IGU) clone() *IGU {
	c := &IGU{
		width:  igu.width,
		height: igu.height,
		tilt:   igu.tilt,
		layers: make([]*Layer, len(igu.layers)),
		deflection: deflectionSettings{
			mode:           igu.deflection.mode,
			tRef:           igu.deflection.tRef,
			pRef:           igu.deflection.pRef,
			measuredGaps:   append([]float64(nil), igu.deflection.measuredGaps...),
			appliedLoad:    append([]float64(nil), igu.deflection.appliedLoad...),
			hasAppliedLoad: igu.deflection.hasAppliedLoad,
		},
	}
	for i, l := range igu.layers {
		c.layers[i] = l.clone()
	}
	return c
}
