package math

import (
	gomath "math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-6

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 || m[12] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	id := Identity()

	for n := 0; n < 50; n++ {
		m := randomMat(rng, false)
		left := id.Mul(m)
		right := m.Mul(id)
		for i := 0; i < 16; i++ {
			if absf(left[i]-m[i]) > eps {
				t.Fatalf("I * M element %d: got %f, want %f", i, left[i], m[i])
			}
			if absf(right[i]-m[i]) > eps {
				t.Fatalf("M * I element %d: got %f, want %f", i, right[i], m[i])
			}
		}
	}
}

func TestMulAssociative(t *testing.T) {
	// Small integer entries keep every float32 product exact.
	rng := rand.New(rand.NewSource(7))

	for n := 0; n < 50; n++ {
		a, b, c := randomMat(rng, true), randomMat(rng, true), randomMat(rng, true)
		lhs := a.Mul(b.Mul(c))
		rhs := a.Mul(b).Mul(c)
		for i := 0; i < 16; i++ {
			if absf(lhs[i]-rhs[i]) > eps {
				t.Fatalf("A(BC) != (AB)C at %d: %f vs %f", i, lhs[i], rhs[i])
			}
		}
	}
}

func TestMulOrder(t *testing.T) {
	// Translate * Scale scales first, then moves.
	m := Translate(10, 0, 0).Mul(Scale(2, 2, 2))
	got := m.TransformPoint(Vec3{1, 0, 0})
	if got != (Vec3{12, 0, 0}) {
		t.Errorf("T*S applied to (1,0,0) = %v, want (12,0,0)", got)
	}

	m = Scale(2, 2, 2).Mul(Translate(10, 0, 0))
	got = m.TransformPoint(Vec3{1, 0, 0})
	if got != (Vec3{22, 0, 0}) {
		t.Errorf("S*T applied to (1,0,0) = %v, want (22,0,0)", got)
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation should be in column 4 (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
	if m.Translation() != (Vec3{5, 10, 15}) {
		t.Errorf("Translation() = %v", m.Translation())
	}
}

func TestScale(t *testing.T) {
	m := Scale(2, 3, 4)

	if m[0] != 2 || m[5] != 3 || m[10] != 4 {
		t.Errorf("Scale diagonal: got (%f, %f, %f), want (2, 3, 4)", m[0], m[5], m[10])
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(10, 20, 30)
	result := m.TransformPoint(Vec3{1, 2, 3})

	expected := Vec3{11, 22, 33}
	if result != expected {
		t.Errorf("TransformPoint: got %v, want %v", result, expected)
	}
}

func TestRotateYLayout(t *testing.T) {
	m := RotateY(0.3)
	c := float32(gomath.Cos(0.3))
	s := float32(gomath.Sin(0.3))
	want := Mat4{
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
		0, 0, 0, 1,
	}
	for i := range want {
		if absf(m[i]-want[i]) > eps {
			t.Fatalf("RotateY element %d: got %f, want %f", i, m[i], want[i])
		}
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(float32(gomath.Pi / 2))
	result := m.TransformPoint(Vec3{1, 0, 0})

	// Column 0 is (cos, 0, sin): +X lands on +Z.
	if absf(result.X) > 0.001 || absf(result.Y) > 0.001 || absf(result.Z-1) > 0.001 {
		t.Errorf("RotateY 90: got %v, want (0, 0, 1)", result)
	}
}

func TestRotateYMatchesMathGLNegated(t *testing.T) {
	for _, angle := range []float32{-2, -0.5, 0, 0.25, 1, 3} {
		got := RotateY(angle)
		ref := mgl32.HomogRotate3DY(-angle)
		for i := 0; i < 16; i++ {
			if absf(got[i]-ref[i]) > 1e-5 {
				t.Fatalf("RotateY(%f)[%d] = %f, mgl32 = %f", angle, i, got[i], ref[i])
			}
		}
	}
}

func TestPerspective(t *testing.T) {
	fov := float32(gomath.Pi / 4)
	m := Perspective(fov, 1.5, 0.1, 100)

	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}

	ref := mgl32.Perspective(fov, 1.5, 0.1, 100)
	for i := 0; i < 16; i++ {
		if absf(m[i]-ref[i]) > 1e-5 {
			t.Errorf("Perspective[%d] = %f, mgl32 = %f", i, m[i], ref[i])
		}
	}
}

func TestLookAt(t *testing.T) {
	tests := []struct {
		name            string
		eye, center, up Vec3
	}{
		{"on z axis", Vec3{0, 0, 5}, Vec3{}, Vec3{0, 1, 0}},
		{"oblique", Vec3{3, 2, -4}, Vec3{0.5, 0, 1}, Vec3{0, 1, 0}},
		{"below", Vec3{-1, -3, 2}, Vec3{}, Vec3{0, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := LookAt(tt.eye, tt.center, tt.up)
			if m[15] != 1 {
				t.Errorf("LookAt [15] should be 1, got %f", m[15])
			}

			ref := mgl32.LookAtV(
				mgl32.Vec3{tt.eye.X, tt.eye.Y, tt.eye.Z},
				mgl32.Vec3{tt.center.X, tt.center.Y, tt.center.Z},
				mgl32.Vec3{tt.up.X, tt.up.Y, tt.up.Z},
			)
			for i := 0; i < 16; i++ {
				if absf(m[i]-ref[i]) > 1e-5 {
					t.Errorf("LookAt[%d] = %f, mgl32 = %f", i, m[i], ref[i])
				}
			}

			// The eye maps to the origin and the center onto -Z.
			e := m.TransformPoint(tt.eye)
			if e.Length() > 1e-4 {
				t.Errorf("eye in view space = %v, want origin", e)
			}
			c := m.TransformPoint(tt.center)
			if absf(c.X) > 1e-4 || absf(c.Y) > 1e-4 || c.Z >= 0 {
				t.Errorf("center in view space = %v, want on -Z", c)
			}
		})
	}
}

func randomMat(rng *rand.Rand, integral bool) Mat4 {
	var m Mat4
	for i := range m {
		if integral {
			m[i] = float32(rng.Intn(9) - 4)
		} else {
			m[i] = rng.Float32()*2 - 1
		}
	}
	return m
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
