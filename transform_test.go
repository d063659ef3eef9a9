package quill

import (
	"math"
	"testing"
)

func assertMat4(t *testing.T, name string, got, want Mat4) {
	t.Helper()
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			if !approxEqual(got[c][r], want[c][r], 1e-9) {
				t.Errorf("%s[%d][%d] = %v, want %v", name, c, r, got[c][r], want[c][r])
			}
		}
	}
}

// --- LocEulSizeToMat4 ---

func TestLocEulSizeIdentity(t *testing.T) {
	m := LocEulSizeToMat4(Vec3{}, Vec3{}, Vec3{1, 1, 1})
	assertMat4(t, "identity", m, identityMat4)
}

func TestLocEulSizeTranslate(t *testing.T) {
	m := LocEulSizeToMat4(Vec3{1, 2, 3}, Vec3{}, Vec3{1, 1, 1})
	assertVec3(t, "origin", m.MulPoint(Vec3{}), Vec3{1, 2, 3})
}

func TestLocEulSizeRotateZ(t *testing.T) {
	m := LocEulSizeToMat4(Vec3{}, Vec3{0, 0, math.Pi / 2}, Vec3{1, 1, 1})
	assertVec3(t, "x axis", m.MulPoint(Vec3{1, 0, 0}), Vec3{0, 1, 0})
	assertVec3(t, "y axis", m.MulPoint(Vec3{0, 1, 0}), Vec3{-1, 0, 0})
}

func TestLocEulSizeRotateX(t *testing.T) {
	m := LocEulSizeToMat4(Vec3{}, Vec3{math.Pi / 2, 0, 0}, Vec3{1, 1, 1})
	assertVec3(t, "y axis", m.MulPoint(Vec3{0, 1, 0}), Vec3{0, 0, 1})
}

func TestLocEulSizeScaleThenTranslate(t *testing.T) {
	m := LocEulSizeToMat4(Vec3{10, 0, 0}, Vec3{0, 0, math.Pi / 2}, Vec3{2, 2, 2})
	// scale, then rotate, then translate
	assertVec3(t, "point", m.MulPoint(Vec3{1, 0, 0}), Vec3{10, 2, 0})
}

// --- Mul ---

func TestMat4Mul(t *testing.T) {
	a := LocEulSizeToMat4(Vec3{1, 0, 0}, Vec3{}, Vec3{1, 1, 1})
	b := LocEulSizeToMat4(Vec3{}, Vec3{}, Vec3{2, 2, 2})
	ab := a.Mul(&b)
	// b applies first
	assertVec3(t, "a*b", ab.MulPoint(Vec3{1, 1, 1}), Vec3{3, 2, 2})

	id := identityMat4
	assertMat4(t, "a*I", a.Mul(&id), a)
}
