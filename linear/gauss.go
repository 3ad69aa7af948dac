package linear

// 連立一次方程式の直接解法（部分ピボット選択付きガウスの消去法）

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Epsilon replaces a pivot whose magnitude falls below it.
const Epsilon = 1e-15

var ErrShape = errors.New("linear: matrix and vector dimensions do not match")

/*
A x = b を解く。

	Args:
		a: 係数行列, [n, n]
		b: 右辺ベクトル, [n]

	Returns:
		解ベクトル, [n]

	Notes:
		a と b は変更しない。
		ピボットの絶対値が Epsilon を下回った場合は Epsilon に置き換えて消去を続ける。
		特異な系でも有限の（摂動を受けた）解を返す。
*/
func Solve(a mat.Matrix, b mat.Vector) (*mat.VecDense, error) {
	n, c := a.Dims()
	if n != c || b.Len() != n {
		return nil, ErrShape
	}

	m := mat.DenseCopyOf(a)
	x := mat.VecDenseCopyOf(b)

	for k := 0; k < n; k++ {
		p := pivotRow(m, k)
		if p != k {
			swapRows(m, x, k, p)
		}

		pivot := m.At(k, k)
		if math.Abs(pivot) < Epsilon {
			pivot = Epsilon
			m.Set(k, k, pivot)
		}

		for i := k + 1; i < n; i++ {
			f := m.At(i, k) / pivot
			if f == 0 {
				continue
			}
			for j := k; j < n; j++ {
				m.Set(i, j, m.At(i, j)-f*m.At(k, j))
			}
			x.SetVec(i, x.AtVec(i)-f*x.AtVec(k))
		}
	}

	// 後退代入
	for i := n - 1; i >= 0; i-- {
		s := x.AtVec(i)
		for j := i + 1; j < n; j++ {
			s -= m.At(i, j) * x.AtVec(j)
		}
		x.SetVec(i, s/m.At(i, i))
	}

	return x, nil
}

// 列 k で絶対値最大の行
func pivotRow(m *mat.Dense, k int) int {
	n, _ := m.Dims()
	p := k
	max := math.Abs(m.At(k, k))
	for i := k + 1; i < n; i++ {
		if v := math.Abs(m.At(i, k)); v > max {
			max = v
			p = i
		}
	}
	return p
}

func swapRows(m *mat.Dense, x *mat.VecDense, i, j int) {
	ri := m.RawRowView(i)
	rj := m.RawRowView(j)
	for c := range ri {
		ri[c], rj[c] = rj[c], ri[c]
	}
	xi, xj := x.AtVec(i), x.AtVec(j)
	x.SetVec(i, xj)
	x.SetVec(j, xi)
}
