package scene

import (
	"fmt"

	"github.com/atelier3d/atelier/engine/core"
	"github.com/atelier3d/atelier/engine/renderer"
)

// SelectedKind tags what kind of object is currently selected in the editor.
type SelectedKind uint8

const (
	SelectedKindNone SelectedKind = iota
	SelectedKindCamera
	SelectedKindStaticMesh
	SelectedKindDynamicMesh
)

// SelectedObject points at one object inside the current scene by kind and
// slot index. A stale index is the selector's problem; removal clears the
// selection when it matches.
type SelectedObject struct {
	Kind  SelectedKind
	Index int
}

// Scene is one editable world: cameras, mesh instances and attached script
// sources, all by value-slot.
type Scene struct {
	Name          string
	Cameras       []*Camera
	ActiveCamera  int
	StaticMeshes  []*StaticMesh
	DynamicMeshes []*DynamicMesh
	// Scripts maps a script name to its source text. Execution is a host
	// concern; the scene only stores and round-trips the text.
	Scripts map[string]string
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:    name,
		Scripts: map[string]string{},
	}
}

// Camera returns the active camera, or nil when the scene has none.
func (s *Scene) Camera() *Camera {
	if s.ActiveCamera < 0 || s.ActiveCamera >= len(s.Cameras) {
		return nil
	}
	return s.Cameras[s.ActiveCamera]
}

func (s *Scene) AddCamera(c *Camera) int {
	s.Cameras = append(s.Cameras, c)
	return len(s.Cameras) - 1
}

func (s *Scene) AddStaticMesh(m *StaticMesh) int {
	s.StaticMeshes = append(s.StaticMeshes, m)
	return len(s.StaticMeshes) - 1
}

func (s *Scene) AddDynamicMesh(m *DynamicMesh) int {
	s.DynamicMeshes = append(s.DynamicMeshes, m)
	return len(s.DynamicMeshes) - 1
}

func (s *Scene) SetScript(name, source string) {
	s.Scripts[name] = source
}

func (s *Scene) RemoveScript(name string) {
	delete(s.Scripts, name)
}

// RemoveStaticMesh destroys the instance's render data and removes it from
// the scene, preserving the order of the remaining instances.
func (s *Scene) RemoveStaticMesh(backend renderer.Backend, index int) error {
	if index < 0 || index >= len(s.StaticMeshes) {
		return fmt.Errorf("scene %q: static mesh index %d out of range", s.Name, index)
	}
	s.StaticMeshes[index].Destroy(backend)
	s.StaticMeshes = append(s.StaticMeshes[:index], s.StaticMeshes[index+1:]...)
	return nil
}

func (s *Scene) RemoveDynamicMesh(backend renderer.Backend, index int) error {
	if index < 0 || index >= len(s.DynamicMeshes) {
		return fmt.Errorf("scene %q: dynamic mesh index %d out of range", s.Name, index)
	}
	s.DynamicMeshes[index].Destroy(backend)
	s.DynamicMeshes = append(s.DynamicMeshes[:index], s.DynamicMeshes[index+1:]...)
	return nil
}

// Render draws every mesh instance through the active camera. A scene with
// no camera renders nothing.
func (s *Scene) Render(backend renderer.Backend) {
	cam := s.Camera()
	if cam == nil {
		return
	}
	view := cam.View()
	projection := cam.Projection()

	for _, m := range s.StaticMeshes {
		m.Render(backend, view, projection)
	}
	for _, m := range s.DynamicMeshes {
		m.Render(backend, view, projection)
	}
}

// Destroy releases the render data of every instance in the scene.
func (s *Scene) Destroy(backend renderer.Backend) {
	for _, m := range s.StaticMeshes {
		m.Destroy(backend)
	}
	for _, m := range s.DynamicMeshes {
		m.Destroy(backend)
	}
	s.StaticMeshes = nil
	s.DynamicMeshes = nil
}

/**
 * @brief The collection of scenes the editor has open, plus which one is
 * current and which object in it is selected.
 */
type SceneGraph struct {
	Scenes   []*Scene
	Current  int
	Selected SelectedObject
}

func NewSceneGraph() *SceneGraph {
	return &SceneGraph{Current: -1}
}

// CurrentScene returns the current scene, or nil when none is open.
func (g *SceneGraph) CurrentScene() *Scene {
	if g.Current < 0 || g.Current >= len(g.Scenes) {
		return nil
	}
	return g.Scenes[g.Current]
}

// AddScene appends a scene and makes it current if none was.
func (g *SceneGraph) AddScene(s *Scene) int {
	g.Scenes = append(g.Scenes, s)
	if g.Current < 0 {
		g.Current = len(g.Scenes) - 1
	}
	return len(g.Scenes) - 1
}

// SwitchTo changes the current scene and clears the selection.
func (g *SceneGraph) SwitchTo(index int) error {
	if index < 0 || index >= len(g.Scenes) {
		return fmt.Errorf("scene index %d out of range", index)
	}
	g.Current = index
	g.Select(SelectedObject{Kind: SelectedKindNone})
	return nil
}

// Select updates the selection and notifies listeners.
func (g *SceneGraph) Select(sel SelectedObject) {
	g.Selected = sel

	var data core.EventContext
	data.Data.U32[0] = uint32(sel.Kind)
	data.Data.U32[1] = uint32(sel.Index)
	core.EventFire(core.EVENT_CODE_SELECTION_CHANGED, g, data)
}

// RemoveScene destroys the scene's instances and removes it. The current
// index moves to the previous scene, or -1 when none remain.
func (g *SceneGraph) RemoveScene(backend renderer.Backend, index int) error {
	if index < 0 || index >= len(g.Scenes) {
		return fmt.Errorf("scene index %d out of range", index)
	}
	g.Scenes[index].Destroy(backend)
	g.Scenes = append(g.Scenes[:index], g.Scenes[index+1:]...)

	switch {
	case len(g.Scenes) == 0:
		g.Current = -1
	case g.Current >= len(g.Scenes):
		g.Current = len(g.Scenes) - 1
	}
	return nil
}

// Render draws the current scene.
func (g *SceneGraph) Render(backend renderer.Backend) {
	if s := g.CurrentScene(); s != nil {
		s.Render(backend)
	}
}

// Destroy releases every scene.
func (g *SceneGraph) Destroy(backend renderer.Backend) {
	for _, s := range g.Scenes {
		s.Destroy(backend)
	}
	g.Scenes = nil
	g.Current = -1
}
