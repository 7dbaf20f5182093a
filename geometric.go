/*
 * geometric.go, part of molkit.
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

package molkit

import (
	"fmt"
	"math"

	v3 "github.com/rmera/molkit/v3"
	"gonum.org/v1/gonum/mat"
)

// Distance returns the distance between the vectors in the first rows
// of a and b.
func Distance(a, b *v3.Matrix) float64 {
	d := v3.Zeros(1)
	d.Sub(a, b)
	return d.Norm()
}

// AtomDistance returns the distance between the atoms id1 and id2 in
// the given set of coordinates.
func AtomDistance(coords *v3.Matrix, id1, id2 int) float64 {
	return Distance(coords.VecView(id1), coords.VecView(id2))
}

// VectorAngle returns the angle between two vectors, in radians. The
// cosine is clamped to [-1,1] to prevent NaN returns from floating
// point inaccuracy.
func VectorAngle(v1, v2 *v3.Matrix) float64 {
	den := v1.Norm() * v2.Norm()
	if den == 0 {
		return 0
	}
	term := v1.Dot(v2) / den
	if term >= 1 {
		return 0
	}
	if term <= -1 {
		return math.Pi
	}
	return math.Acos(term)
}

// Angle returns the angle defined by three points, centered in p2, in
// degrees.
func Angle(p1, p2, p3 *v3.Matrix) float64 {
	a := v3.Zeros(1)
	b := v3.Zeros(1)
	a.Sub(p1, p2)
	b.Sub(p3, p2)
	return VectorAngle(a, b) * Rad2Deg
}

// Dihedral returns the dihedral angle defined by four points, in
// degrees, in the range (-180, 180]. It uses the Praxeolitic formula:
// one square root, one cross product.
func Dihedral(p1, p2, p3, p4 *v3.Matrix) float64 {
	b0 := v3.Zeros(1)
	b1 := v3.Zeros(1)
	b2 := v3.Zeros(1)
	b0.Sub(p1, p2) //-1.0*(p2-p1)
	b1.Sub(p3, p2)
	b2.Sub(p4, p3)
	//normalize b1 so that it does not influence the magnitude of the
	//vector rejections that come next
	b1.Scale(1/b1.Norm(), b1)
	//v = projection of b0 onto the plane perpendicular to b1
	//w = projection of b2 onto the same plane
	v := v3.Zeros(1)
	w := v3.Zeros(1)
	t := v3.Zeros(1)
	t.Scale(b0.Dot(b1), b1)
	v.Sub(b0, t)
	t.Scale(b2.Dot(b1), b1)
	w.Sub(b2, t)
	//the angle between v and w in that plane is the torsion angle.
	//v and w may not be normalized but that's fine since tan is y/x
	x := v.Dot(w)
	cross := v3.Zeros(1)
	cross.Cross(b1, v)
	y := cross.Dot(w)
	return math.Atan2(y, x) * Rad2Deg
}

// Centroid returns the centroid of the points in coords.
func Centroid(coords *v3.Matrix) *v3.Matrix {
	r := coords.NVecs()
	c := v3.Zeros(1)
	for i := 0; i < r; i++ {
		c.Add(c, coords.VecView(i))
	}
	c.Scale(1/float64(r), c)
	return c
}

// PlaneNormal returns the normal of the best-fit plane through the
// given points, obtained from the SVD of the centered coordinates. It
// needs at least 3 points.
func PlaneNormal(points *v3.Matrix) (*v3.Matrix, error) {
	errid := "molkit.PlaneNormal"
	r := points.NVecs()
	if r < 3 {
		return nil, fmt.Errorf("%s: need at least 3 points, got %d", errid, r)
	}
	centered := v3.Zeros(r)
	centered.SubVec(points, Centroid(points))
	var svd mat.SVD
	if ok := svd.Factorize(centered.Dense, mat.SVDThin); !ok {
		return nil, fmt.Errorf("%s: SVD factorization failed", errid)
	}
	var v mat.Dense
	svd.VTo(&v)
	//The right singular vector of the smallest singular value is the
	//normal of the fitted plane.
	normal := v3.Zeros(1)
	for j := 0; j < 3; j++ {
		normal.Set(0, j, v.At(j, 2))
	}
	return normal, nil
}
