package quill

import "math"

// Mat4 is a 4x4 transform stored as four columns. Column 3 holds the
// translation.
type Mat4 [4][4]float64

// identityMat4 is the identity transform.
var identityMat4 = Mat4{
	{1, 0, 0, 0},
	{0, 1, 0, 0},
	{0, 0, 1, 0},
	{0, 0, 0, 1},
}

// LocEulSizeToMat4 builds translate * rotate * scale, with rot given as XYZ
// Euler angles in radians.
//
// Composition order:
//
//	Scale -> RotateX -> RotateY -> RotateZ -> Translate(loc)
func LocEulSizeToMat4(loc, rot, size Vec3) Mat4 {
	si, ci := math.Sincos(rot.X)
	sj, cj := math.Sincos(rot.Y)
	sh, ch := math.Sincos(rot.Z)
	cc, cs := ci*ch, ci*sh
	sc, ss := si*ch, si*sh

	var m Mat4
	m[0] = [4]float64{cj * ch * size.X, cj * sh * size.X, -sj * size.X, 0}
	m[1] = [4]float64{(sj*sc - cs) * size.Y, (sj*ss + cc) * size.Y, cj * si * size.Y, 0}
	m[2] = [4]float64{(sj*cc + ss) * size.Z, (sj*cs - sc) * size.Z, cj * ci * size.Z, 0}
	m[3] = [4]float64{loc.X, loc.Y, loc.Z, 1}
	return m
}

// MulPoint applies m to p, including translation.
func (m *Mat4) MulPoint(p Vec3) Vec3 {
	return Vec3{
		m[0][0]*p.X + m[1][0]*p.Y + m[2][0]*p.Z + m[3][0],
		m[0][1]*p.X + m[1][1]*p.Y + m[2][1]*p.Z + m[3][1],
		m[0][2]*p.X + m[1][2]*p.Y + m[2][2]*p.Z + m[3][2],
	}
}

// Mul returns m * o.
func (m *Mat4) Mul(o *Mat4) Mat4 {
	var r Mat4
	for c := 0; c < 4; c++ {
		for row := 0; row < 4; row++ {
			r[c][row] = m[0][row]*o[c][0] + m[1][row]*o[c][1] + m[2][row]*o[c][2] + m[3][row]*o[c][3]
		}
	}
	return r
}

// --- 2D view transforms ---

// viewTransform maps stroke space into a target of size w×h so that the
// rectangle [minX,maxX]×[minY,maxY] fits with margin pixels on every side.
// Y is flipped so that stroke-space up is screen-space up.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func viewTransform(minX, minY, maxX, maxY float64, w, h int, margin float64) [6]float64 {
	bw, bh := maxX-minX, maxY-minY
	if bw <= 0 || bh <= 0 {
		return [6]float64{1, 0, 0, -1, margin, float64(h) - margin}
	}
	s := math.Min((float64(w)-2*margin)/bw, (float64(h)-2*margin)/bh)
	return [6]float64{s, 0, 0, -s, margin - minX*s, float64(h) - margin + minY*s}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}
