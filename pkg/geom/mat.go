package geom

import (
	"fmt"
	"math"
	"strings"
)

// Mat4 is a 4x4 matrix in row-major order acting on column vectors in
// homogeneous coordinates. The affine operators built in this module
// keep the bottom row at [0 0 0 1].
type Mat4 [4][4]float64

// Identity returns the 4x4 identity matrix.
func Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Translation returns the matrix that moves points by v.
func Translation(v Vec3) Mat4 {
	m := Identity()
	m[0][3], m[1][3], m[2][3] = v.X, v.Y, v.Z
	return m
}

// Scaling returns the diagonal matrix scaling each axis by v.
func Scaling(v Vec3) Mat4 {
	m := Identity()
	m[0][0], m[1][1], m[2][2] = v.X, v.Y, v.Z
	return m
}

// FromLinear builds an affine matrix from a 3x3 linear part and a
// translation.
func FromLinear(l [3][3]float64, t Vec3) Mat4 {
	return Mat4{
		{l[0][0], l[0][1], l[0][2], t.X},
		{l[1][0], l[1][1], l[1][2], t.Y},
		{l[2][0], l[2][1], l[2][2], t.Z},
		{0, 0, 0, 1},
	}
}

// Mul returns m·n. Applied to a point, n acts first.
func (m Mat4) Mul(n Mat4) Mat4 {
	var r Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var s float64
			for k := 0; k < 4; k++ {
				s += m[i][k] * n[k][j]
			}
			r[i][j] = s
		}
	}
	return r
}

// Then returns the matrix that applies m first and next second, next·m.
func (m Mat4) Then(next Mat4) Mat4 {
	return next.Mul(m)
}

// Chain composes matrices listed in application order: the result
// applies ms[0] first and ms[len-1] last. An empty chain is the identity.
func Chain(ms ...Mat4) Mat4 {
	r := Identity()
	for _, m := range ms {
		r = m.Mul(r)
	}
	return r
}

// Apply transforms the point p, treating it as [x y z 1]. A non-unit w
// from a projective matrix is divided out.
func (m Mat4) Apply(p Vec3) Vec3 {
	x := m[0][0]*p.X + m[0][1]*p.Y + m[0][2]*p.Z + m[0][3]
	y := m[1][0]*p.X + m[1][1]*p.Y + m[1][2]*p.Z + m[1][3]
	z := m[2][0]*p.X + m[2][1]*p.Y + m[2][2]*p.Z + m[2][3]
	w := m[3][0]*p.X + m[3][1]*p.Y + m[3][2]*p.Z + m[3][3]
	if w != 1 && w != 0 {
		return Vec3{x / w, y / w, z / w}
	}
	return Vec3{x, y, z}
}

// ApplyVector transforms the direction v, ignoring translation.
func (m Mat4) ApplyVector(v Vec3) Vec3 {
	return Vec3{
		m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// ApplyAll transforms every point in ps into a new slice.
func (m Mat4) ApplyAll(ps []Vec3) []Vec3 {
	out := make([]Vec3, len(ps))
	for i, p := range ps {
		out[i] = m.Apply(p)
	}
	return out
}

func (m Mat4) Transpose() Mat4 {
	var r Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			r[i][j] = m[j][i]
		}
	}
	return r
}

// Linear returns the upper-left 3x3 block.
func (m Mat4) Linear() [3][3]float64 {
	return [3][3]float64{
		{m[0][0], m[0][1], m[0][2]},
		{m[1][0], m[1][1], m[1][2]},
		{m[2][0], m[2][1], m[2][2]},
	}
}

// Translation returns the translation column.
func (m Mat4) Translation() Vec3 {
	return Vec3{m[0][3], m[1][3], m[2][3]}
}

// Det3 returns the determinant of the linear part.
func (m Mat4) Det3() float64 {
	return m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
}

// Determinant returns the full 4x4 determinant by cofactor expansion
// along the bottom row.
func (m Mat4) Determinant() float64 {
	var det float64
	for j := 0; j < 4; j++ {
		if m[3][j] == 0 {
			continue
		}
		sign := 1.0
		if (3+j)%2 == 1 {
			sign = -1
		}
		det += sign * m[3][j] * m.minor3(3, j)
	}
	return det
}

func (m Mat4) minor3(row, col int) float64 {
	var s [3][3]float64
	r := 0
	for i := 0; i < 4; i++ {
		if i == row {
			continue
		}
		c := 0
		for j := 0; j < 4; j++ {
			if j == col {
				continue
			}
			s[r][c] = m[i][j]
			c++
		}
		r++
	}
	return s[0][0]*(s[1][1]*s[2][2]-s[1][2]*s[2][1]) -
		s[0][1]*(s[1][0]*s[2][2]-s[1][2]*s[2][0]) +
		s[0][2]*(s[1][0]*s[2][1]-s[1][1]*s[2][0])
}

// IsAffine reports whether the bottom row is exactly [0 0 0 1].
func (m Mat4) IsAffine() bool {
	return m[3][0] == 0 && m[3][1] == 0 && m[3][2] == 0 && m[3][3] == 1
}

// ApproxEqual reports whether every entry of m and n differs by at most
// eps.
func (m Mat4) ApproxEqual(n Mat4, eps float64) bool {
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if math.Abs(m[i][j]-n[i][j]) > eps {
				return false
			}
		}
	}
	return true
}

// String renders the matrix as four bracketed rows of fixed-width
// columns with four decimals.
func (m Mat4) String() string {
	var b strings.Builder
	for i, row := range m {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("[")
		for _, v := range row {
			// Avoid printing -0.0000.
			if math.Abs(v) < 5e-5 {
				v = 0
			}
			fmt.Fprintf(&b, "%9.4f", v)
		}
		b.WriteString(" ]")
	}
	return b.String()
}
