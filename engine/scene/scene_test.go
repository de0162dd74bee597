package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier3d/atelier/engine/core"
	"github.com/atelier3d/atelier/engine/math"
	"github.com/atelier3d/atelier/engine/renderer"
)

func TestCameraProjectionKinds(t *testing.T) {
	persp := NewPerspectiveCamera("p", 45*math.DegToRad, 16.0/9.0, 0.1, 1000)
	assert.Equal(t, CameraKindPerspective, persp.Kind)
	assert.Equal(t, float32(-1), persp.Projection().Data[11])

	ortho := NewOrthographicCamera("o", -1, 1, -1, 1, 0.1, 100)
	assert.Equal(t, CameraKindOrthographic, ortho.Kind)
	assert.Equal(t, float32(1), ortho.Projection().Data[15])
}

func TestCameraViewInvertsPlacement(t *testing.T) {
	cam := NewPerspectiveCamera("p", 45*math.DegToRad, 1, 0.1, 100)
	cam.Position = math.NewVec3(0, 0, 5)

	view := cam.View()
	assert.InDelta(t, -5.0, float64(view.Data[14]), 1e-5)
}

func TestSceneCameraSelection(t *testing.T) {
	s := NewScene("main")
	assert.Nil(t, s.Camera())

	idx := s.AddCamera(NewPerspectiveCamera("editor", 0.8, 1, 0.1, 100))
	assert.Equal(t, 0, idx)
	require.NotNil(t, s.Camera())
	assert.Equal(t, "editor", s.Camera().Name)
}

func TestSceneScripts(t *testing.T) {
	s := NewScene("main")
	s.SetScript("spin", "rotate(self, dt)")
	assert.Equal(t, "rotate(self, dt)", s.Scripts["spin"])

	s.RemoveScript("spin")
	_, ok := s.Scripts["spin"]
	assert.False(t, ok)
}

func TestSceneRemoveMeshDestroysRenderData(t *testing.T) {
	tables, handle := integratedCube(t)
	backend := renderer.NewNullBackend()

	s := NewScene("main")
	instance, err := NewStaticMesh(backend, "hero", handle, tables)
	require.NoError(t, err)
	idx := s.AddStaticMesh(instance)

	require.Equal(t, 2, backend.AliveAllocations())
	require.NoError(t, s.RemoveStaticMesh(backend, idx))
	assert.Equal(t, 0, backend.AliveAllocations())
	assert.Empty(t, s.StaticMeshes)

	assert.Error(t, s.RemoveStaticMesh(backend, 5))
}

func TestSceneRenderWithoutCameraIsNoop(t *testing.T) {
	tables, handle := integratedCube(t)
	backend := renderer.NewNullBackend()

	s := NewScene("main")
	instance, err := NewStaticMesh(backend, "hero", handle, tables)
	require.NoError(t, err)
	s.AddStaticMesh(instance)

	s.Render(backend)
	assert.Equal(t, 0, backend.DrawCalls)

	s.AddCamera(NewPerspectiveCamera("cam", 0.8, 1, 0.1, 100))
	s.Render(backend)
	assert.Equal(t, 2, backend.DrawCalls)
}

func TestSceneGraphCurrentAndSwitch(t *testing.T) {
	g := NewSceneGraph()
	assert.Nil(t, g.CurrentScene())

	first := g.AddScene(NewScene("first"))
	second := g.AddScene(NewScene("second"))
	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
	assert.Equal(t, "first", g.CurrentScene().Name)

	require.NoError(t, g.SwitchTo(second))
	assert.Equal(t, "second", g.CurrentScene().Name)
	assert.Equal(t, SelectedKindNone, g.Selected.Kind)

	assert.Error(t, g.SwitchTo(9))
}

func TestSceneGraphSelectFiresEvent(t *testing.T) {
	require.True(t, core.EventInitialize())
	defer core.EventShutdown()

	var got core.EventContext
	fired := false
	handler := func(code core.SystemEventCode, sender interface{}, listenerInst interface{}, data core.EventContext) bool {
		fired = true
		got = data
		return true
	}
	require.True(t, core.EventRegister(core.EVENT_CODE_SELECTION_CHANGED, nil, handler))
	defer core.EventUnregister(core.EVENT_CODE_SELECTION_CHANGED, nil, handler)

	g := NewSceneGraph()
	g.AddScene(NewScene("main"))
	g.Select(SelectedObject{Kind: SelectedKindStaticMesh, Index: 3})

	assert.True(t, fired)
	assert.Equal(t, uint32(SelectedKindStaticMesh), got.Data.U32[0])
	assert.Equal(t, uint32(3), got.Data.U32[1])
	assert.Equal(t, SelectedKindStaticMesh, g.Selected.Kind)
	assert.Equal(t, 3, g.Selected.Index)
}

func TestSceneGraphRemoveScene(t *testing.T) {
	backend := renderer.NewNullBackend()

	g := NewSceneGraph()
	g.AddScene(NewScene("a"))
	g.AddScene(NewScene("b"))
	require.NoError(t, g.SwitchTo(1))

	require.NoError(t, g.RemoveScene(backend, 1))
	assert.Equal(t, "a", g.CurrentScene().Name)

	require.NoError(t, g.RemoveScene(backend, 0))
	assert.Nil(t, g.CurrentScene())
}
