package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const tolerance = float32(1.0e-5)

func assertMat4Equal(t *testing.T, expected, actual Mat4) {
	t.Helper()
	for i := 0; i < 16; i++ {
		assert.InDelta(t, expected.Data[i], actual.Data[i], float64(tolerance), "element %d", i)
	}
}

func TestVec3Ops(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, 5, 6)

	assert.Equal(t, NewVec3(5, 7, 9), a.Add(b))
	assert.Equal(t, NewVec3(-3, -3, -3), a.Sub(b))
	assert.Equal(t, NewVec3(4, 10, 18), a.Mul(b))
	assert.Equal(t, NewVec3(2, 4, 6), a.MulScalar(2))
	assert.InDelta(t, 32.0, float64(a.Dot(b)), float64(tolerance))
	assert.Equal(t, NewVec3(-3, 6, -3), a.Cross(b))

	n := NewVec3(3, 0, 4).Normalized()
	assert.InDelta(t, 1.0, float64(n.Length()), float64(tolerance))
	assert.True(t, n.Compare(NewVec3(0.6, 0, 0.8), tolerance))
	assert.False(t, n.Compare(NewVec3(1, 0, 0), tolerance))
}

func TestMat4IdentityMul(t *testing.T) {
	id := NewMat4Identity()
	m := NewMat4Translation(NewVec3(1, 2, 3))

	assertMat4Equal(t, m, id.Mul(m))
	assertMat4Equal(t, m, m.Mul(id))
}

func TestMat4TranslationComposes(t *testing.T) {
	a := NewMat4Translation(NewVec3(1, 2, 3))
	b := NewMat4Translation(NewVec3(10, 20, 30))

	composed := a.Mul(b)
	assert.Equal(t, float32(11), composed.Data[12])
	assert.Equal(t, float32(22), composed.Data[13])
	assert.Equal(t, float32(33), composed.Data[14])
}

func TestMat4Inverse(t *testing.T) {
	translation := NewMat4Translation(NewVec3(5, -3, 2))
	assertMat4Equal(t, NewMat4Translation(NewVec3(-5, 3, -2)), translation.Inverse())

	m := NewMat4Translation(NewVec3(1, 2, 3)).
		Mul(NewMat4EulerXYZ(0.3, -0.7, 1.1)).
		Mul(NewMat4Scale(NewVec3(2, 2, 2)))
	assertMat4Equal(t, NewMat4Identity(), m.Mul(m.Inverse()))
}

func TestMat4EulerZeroIsIdentity(t *testing.T) {
	assertMat4Equal(t, NewMat4Identity(), NewMat4EulerXYZ(0, 0, 0))
}

func TestMat4Projections(t *testing.T) {
	persp := NewMat4Perspective(45*DegToRad, 16.0/9.0, 0.1, 1000.0)
	assert.Equal(t, float32(-1), persp.Data[11])
	assert.NotEqual(t, float32(0), persp.Data[0])
	assert.NotEqual(t, float32(0), persp.Data[5])

	ortho := NewMat4Orthographic(-1, 1, -1, 1, 0.1, 100)
	assert.InDelta(t, 1.0, float64(ortho.Data[0]), float64(tolerance))
	assert.InDelta(t, 1.0, float64(ortho.Data[5]), float64(tolerance))
	assert.Equal(t, float32(1), ortho.Data[15])
}

func TestTransformLazyRebuild(t *testing.T) {
	tr := TransformCreate()
	assertMat4Equal(t, NewMat4Identity(), tr.GetLocal())
	assert.False(t, tr.IsDirty)

	tr.SetPosition(NewVec3(1, 2, 3))
	assert.True(t, tr.IsDirty)

	local := tr.GetLocal()
	assert.Equal(t, float32(1), local.Data[12])
	assert.Equal(t, float32(2), local.Data[13])
	assert.Equal(t, float32(3), local.Data[14])
	assert.False(t, tr.IsDirty)

	tr.Translate(NewVec3(1, 1, 1))
	local = tr.GetLocal()
	assert.Equal(t, float32(2), local.Data[12])
}

func TestTransformFromPosition(t *testing.T) {
	tr := TransformFromPosition(NewVec3(7, 8, 9))
	local := tr.GetLocal()
	assert.Equal(t, float32(7), local.Data[12])
	assert.Equal(t, float32(8), local.Data[13])
	assert.Equal(t, float32(9), local.Data[14])
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 5, Clamp(10, 0, 5))
	assert.Equal(t, 0, Clamp(-1, 0, 5))
	assert.Equal(t, 3, Clamp(3, 0, 5))
	assert.Equal(t, float32(1.5), Clamp(float32(1.5), float32(0), float32(2)))
}

func TestDegRadRoundTrip(t *testing.T) {
	assert.InDelta(t, 180.0, float64(180*DegToRad*RadToDeg), float64(tolerance))
	assert.InDelta(t, float64(PI), float64(180*DegToRad), float64(tolerance))
}
