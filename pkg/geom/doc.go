// Package geom holds the value types shared by every stage of the
// transform pipeline: 3D vectors, 4x4 homogeneous matrices, lines and
// planes. Everything here is pure arithmetic with no allocation beyond
// return values.
package geom
