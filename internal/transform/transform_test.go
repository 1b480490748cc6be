package transform

import (
	"math"
	"testing"

	"github.com/adinfinit/g"
	m "github.com/go-gl/mathgl/mgl32"
)

const epsilon = 1e-5

// maxDiff is the largest absolute difference between entries of a and b.
func maxDiff(a, b m.Mat4) float64 {
	diff := 0.0
	for i := range a {
		diff = math.Max(diff, math.Abs(float64(a[i]-b[i])))
	}
	return diff
}

func approx(t *testing.T, name string, got, want m.Mat4) {
	t.Helper()
	if diff := maxDiff(got, want); diff > epsilon {
		t.Errorf("%s off by %v =\n%v\nwant\n%v", name, diff, got, want)
	}
}

func TestAdvance(t *testing.T) {
	tests := []struct {
		name   string
		times  []float64
		delta  float64
		angles []float64
	}{
		{"first frame at zero", []float64{0}, 0, []float64{0}},
		{"one second", []float64{0, 1}, 1, []float64{0, 1}},
		{"uneven frames", []float64{0.5, 0.516, 0.6}, 0.084, []float64{0.5, 0.516, 0.6}},
		{"late start", []float64{10, 10.25}, 0.25, []float64{10, 10.25}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			transformer := New(g.V2(800, 600))
			var delta, angle float64
			for i, now := range test.times {
				before := transformer.Angle
				previous := transformer.Previous
				delta, angle = transformer.Advance(now)

				if math.Abs(delta-(now-previous)) > 1e-12 {
					t.Errorf("step %d: delta = %v, want %v", i, delta, now-previous)
				}
				if math.Abs(angle-(before+delta)) > 1e-12 {
					t.Errorf("step %d: angle = %v, want %v", i, angle, before+delta)
				}
				if math.Abs(angle-test.angles[i]) > 1e-9 {
					t.Errorf("step %d: angle = %v, want %v", i, angle, test.angles[i])
				}
				if transformer.Previous != now {
					t.Errorf("step %d: previous = %v, want %v", i, transformer.Previous, now)
				}
			}
			if math.Abs(delta-test.delta) > 1e-9 {
				t.Errorf("final delta = %v, want %v", delta, test.delta)
			}
		})
	}
}

func TestModelViewAtPi(t *testing.T) {
	want := m.Mat4{
		0.587785, 0, -0.809017, 0,
		-0.654508, -0.587785, -0.475528, 0,
		-0.475528, 0.809017, -0.345492, 0,
		0, 0, -6, 1,
	}
	approx(t, "ModelView(π)", ModelView(math.Pi), want)
}

func TestModelViewOrder(t *testing.T) {
	const angle = 1.3
	zyx := m.Translate3D(0, 0, -6).
		Mul4(m.HomogRotate3DZ(angle)).
		Mul4(m.HomogRotate3DY(angle * 0.7)).
		Mul4(m.HomogRotate3DX(angle * 0.3))
	approx(t, "ModelView", ModelView(angle), zyx)

	xyz := m.Translate3D(0, 0, -6).
		Mul4(m.HomogRotate3DX(angle * 0.3)).
		Mul4(m.HomogRotate3DY(angle * 0.7)).
		Mul4(m.HomogRotate3DZ(angle))
	if maxDiff(ModelView(angle), xyz) <= epsilon {
		t.Errorf("rotation order does not matter, test angle is degenerate")
	}
}

func TestMaxDiffIsAbsolute(t *testing.T) {
	// float32 rotations leave entries around 5e-8 where the exact value is 0.
	rounded := m.Ident4()
	rounded[1] = 5e-8
	if diff := maxDiff(rounded, m.Ident4()); diff > epsilon {
		t.Errorf("rounding noise near zero rejected: %v", diff)
	}
	rounded[5] = 1.001
	if diff := maxDiff(rounded, m.Ident4()); diff <= epsilon {
		t.Errorf("real difference accepted: %v", diff)
	}
}

func TestNormalMatrix(t *testing.T) {
	tests := []struct {
		name      string
		modelView m.Mat4
	}{
		{"rotation", m.HomogRotate3DY(0.4).Mul4(m.HomogRotate3DX(1.1))},
		{"rotation and translation", ModelView(2.5)},
		{"scaled", m.Translate3D(1, 2, 3).Mul4(m.Scale3D(2, 0.5, 1))},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			normal := NormalMatrix(test.modelView)
			approx(t, "normal", normal, test.modelView.Inv().Transpose())
			approx(t, "normalᵀ·modelView", normal.Transpose().Mul4(test.modelView), m.Ident4())
		})
	}

	// Pure rotations are orthonormal, so the normal matrix is the rotation itself.
	rotation := m.HomogRotate3DZ(0.8)
	approx(t, "rotation normal", NormalMatrix(rotation), rotation)
}

func TestProjection(t *testing.T) {
	transformer := New(g.V2(800, 600))
	transformer.Advance(0)
	transformer.Advance(1)

	if transformer.DeltaTime != 1 || transformer.Angle != 1 {
		t.Fatalf("delta, angle = %v, %v, want 1, 1", transformer.DeltaTime, transformer.Angle)
	}

	want := m.Mat4{
		1.8106602, 0, 0, 0,
		0, 2.4142136, 0, 0,
		0, 0, -1.002002, -1,
		0, 0, -0.2002002, 0,
	}
	matrices := transformer.Matrices()
	approx(t, "projection", matrices.Projection, want)
	approx(t, "model-view", matrices.ModelView, ModelView(1))
	approx(t, "normal", matrices.Normal, NormalMatrix(ModelView(1)))
}

func TestUpdateViewport(t *testing.T) {
	transformer := New(g.V2(800, 600))
	before := transformer.Matrices().Projection

	if transformer.UpdateViewport(g.V2(800, 600)) {
		t.Errorf("unchanged viewport reported a change")
	}
	if transformer.UpdateViewport(g.V2(800, 0)) {
		t.Errorf("zero-height viewport accepted")
	}
	approx(t, "projection after empty viewport", transformer.Matrices().Projection, before)

	if !transformer.UpdateViewport(g.V2(600, 600)) {
		t.Fatalf("resize not reported")
	}
	approx(t, "square projection", transformer.Matrices().Projection, Projection(1))
}
