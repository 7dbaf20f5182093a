/*
 * v3.go, part of molkit.
 *
 * Copyright 2024 Raul Mera <rmeraa{at}academicosdotutadotcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package v3 provides a container for sets of vectors in 3D space,
// backed by a gonum Dense matrix with 3 columns. Within the package it
// is understood that a "vector" is a row of the matrix, i.e. the
// cartesian coordinates of a point.
package v3

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Matrix is a set of vectors in 3D space, one per row.
type Matrix struct {
	*mat.Dense
}

// Dense2Matrix returns a Matrix sharing the data of the given Dense,
// which must have 3 columns.
func Dense2Matrix(A *mat.Dense) (*Matrix, error) {
	_, c := A.Dims()
	if c != 3 {
		return nil, fmt.Errorf("v3.Dense2Matrix: matrix has %d columns, need 3", c)
	}
	return &Matrix{A}, nil
}

// Matrix2Dense returns the gonum Dense underlying A.
func Matrix2Dense(A *Matrix) *mat.Dense {
	return A.Dense
}

// NewMatrix builds a Matrix with 3 columns from data, in row-major
// order. It returns an error if len(data) is not a multiple of 3.
func NewMatrix(data []float64) (*Matrix, error) {
	const cols int = 3
	l := len(data)
	if l%cols != 0 {
		return nil, fmt.Errorf("v3.NewMatrix: input slice length %d not divisible by %d", l, cols)
	}
	return &Matrix{mat.NewDense(l/cols, cols, data)}, nil
}

// Zeros returns a zero-filled Matrix with vecs vectors.
func Zeros(vecs int) *Matrix {
	return &Matrix{mat.NewDense(vecs, 3, nil)}
}

// NVecs returns the number of vectors in the matrix.
func (F *Matrix) NVecs() int {
	r, _ := F.Dims()
	return r
}

// VecView returns a view of the ith vector of the matrix. Changes in
// the view are reflected in F and vice-versa.
func (F *Matrix) VecView(i int) *Matrix {
	r := F.Dense.Slice(i, i+1, 0, 3).(*mat.Dense)
	return &Matrix{r}
}

// View returns a view of F spanning rows [i,i+r).
func (F *Matrix) View(i, r int) *Matrix {
	ret := F.Dense.Slice(i, i+r, 0, 3).(*mat.Dense)
	return &Matrix{ret}
}

// Copy returns a new Matrix with the contents of F.
func (F *Matrix) Copy() *Matrix {
	r := F.NVecs()
	ret := Zeros(r)
	ret.Dense.Copy(F.Dense)
	return ret
}

// SetVecs sets the vectors of F in the positions given by which to the
// vectors of A, in order. It panics if out of range, as ill-defined
// indexes here are a programming error.
func (F *Matrix) SetVecs(A *Matrix, which []int) {
	for k, j := range which {
		if j >= F.NVecs() {
			panic(fmt.Sprintf("v3: vector %d (%d) out of range", k, j))
		}
		F.Set(j, 0, A.At(k, 0))
		F.Set(j, 1, A.At(k, 1))
		F.Set(j, 2, A.At(k, 2))
	}
}

// Sub puts in the receiver the difference A-B. The receiver may be one
// of the arguments.
func (F *Matrix) Sub(A, B *Matrix) {
	F.Dense.Sub(A.Dense, B.Dense)
}

// Add puts in the receiver the sum A+B.
func (F *Matrix) Add(A, B *Matrix) {
	F.Dense.Add(A.Dense, B.Dense)
}

// Scale puts in the receiver A scaled by v.
func (F *Matrix) Scale(v float64, A *Matrix) {
	F.Dense.Scale(v, A.Dense)
}

// SubVec subtracts the single vector vec from every vector of A,
// putting the result in the receiver.
func (F *Matrix) SubVec(A, vec *Matrix) {
	r := A.NVecs()
	for i := 0; i < r; i++ {
		for j := 0; j < 3; j++ {
			F.Set(i, j, A.At(i, j)-vec.At(0, j))
		}
	}
}

// Norm returns the euclidean norm of the vector in the first row of F.
func (F *Matrix) Norm() float64 {
	return math.Sqrt(F.At(0, 0)*F.At(0, 0) + F.At(0, 1)*F.At(0, 1) + F.At(0, 2)*F.At(0, 2))
}

// Unit puts in the receiver the unit vector parallel to the first row
// of A. It returns an error for a zero vector.
func (F *Matrix) Unit(A *Matrix) error {
	n := A.Norm()
	if n == 0 {
		return fmt.Errorf("v3.Unit: can't normalize the zero vector")
	}
	F.Scale(1/n, A)
	return nil
}

// Dot returns the dot product of the first rows of F and B.
func (F *Matrix) Dot(B *Matrix) float64 {
	return F.At(0, 0)*B.At(0, 0) + F.At(0, 1)*B.At(0, 1) + F.At(0, 2)*B.At(0, 2)
}

// Cross puts in the receiver the cross product of the first rows of A
// and B. The receiver must not be one of the arguments.
func (F *Matrix) Cross(A, B *Matrix) {
	F.Set(0, 0, A.At(0, 1)*B.At(0, 2)-A.At(0, 2)*B.At(0, 1))
	F.Set(0, 1, A.At(0, 2)*B.At(0, 0)-A.At(0, 0)*B.At(0, 2))
	F.Set(0, 2, A.At(0, 0)*B.At(0, 1)-A.At(0, 1)*B.At(0, 0))
}

// Row returns the ith vector as a newly allocated slice.
func (F *Matrix) Row(i int) []float64 {
	return []float64{F.At(i, 0), F.At(i, 1), F.At(i, 2)}
}
