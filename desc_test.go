package arbor

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const testSceneYAML = `
tps: 30
camera:
  eye: [0, 0, 5]
  target: [0, 0, 0]
  fov: 90
  near: 1
  far: 10
  aspect: 1
nodes:
  - name: body
    translation: [0, 0, -1]
    min: [-0.5, -0.5, -0.5]
    max: [0.5, 0.5, 0.5]
    shader: 2
    textures: [7, 3]
  - name: arm
    parent: body
    translation: [1, 0, 0]
    rotation: [0, 0, 0.7071068, 0.7071068]
    scale: [2, 2, 2]
    min: [-0.1, -0.1, -0.1]
    max: [0.1, 0.1, 0.1]
    shader: 1
  - name: lamp
    translation: [0, 0, 20]
`

func TestBuildSceneDesc(t *testing.T) {
	desc, err := LoadSceneDesc([]byte(testSceneYAML))
	if err != nil {
		t.Fatal(err)
	}
	s, err := desc.Build()
	if err != nil {
		t.Fatal(err)
	}

	if s.Clock().tps() != 30 {
		t.Errorf("tps = %d, want 30", s.Clock().tps())
	}
	root := s.Root()
	if root.NumChildren() != 2 {
		t.Fatalf("root children = %d, want 2", root.NumChildren())
	}
	body, lamp := root.ChildAt(0), root.ChildAt(1)
	if body.Reference() != "body" || lamp.Reference() != "lamp" || body.Name != "body" {
		t.Fatalf("root children = %v, %v", body.Reference(), lamp.Reference())
	}
	if body.NumChildren() != 1 || body.ChildAt(0).Reference() != "arm" {
		t.Fatal("arm should be attached to body")
	}
	arm := body.ChildAt(0)

	if got := body.Material().Textures(); len(got) != 2 || got[0] != 3 || got[1] != 7 {
		t.Errorf("body textures = %v, want [3 7]", got)
	}
	if body.Material().Shader() != 2 {
		t.Errorf("body shader = %d, want 2", body.Material().Shader())
	}
	if arm.Transform().CurrentScale() != (mgl32.Vec3{2, 2, 2}) {
		t.Errorf("arm scale = %v", arm.Transform().CurrentScale())
	}
	assertNear(t, "arm rotation w", arm.Transform().CurrentRotation().W, 0.7071068)
	if lamp.Transform().CurrentScale() != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("lamp scale = %v, want default (1,1,1)", lamp.Transform().CurrentScale())
	}
	if arm.Min() != (mgl32.Vec3{-0.1, -0.1, -0.1}) {
		t.Errorf("arm min = %v", arm.Min())
	}

	// The described camera matches the hand-built one.
	cam := newTestCamera()
	assertMatrix(t, "View", s.Camera().View(), cam.View())
	assertMatrix(t, "Projection", s.Camera().Projection(), cam.Projection())

	// Root box is empty at the origin and therefore visible; the lamp is
	// behind the camera.
	assertRefs(t, s.Visible(OrderMaterial, 1), "root", "arm", "body")
}

func TestBuildCameraDefaults(t *testing.T) {
	desc, err := LoadSceneDesc([]byte("camera:\n  fov: 60\n"))
	if err != nil {
		t.Fatal(err)
	}
	s, err := desc.Build()
	if err != nil {
		t.Fatal(err)
	}
	want := mgl32.Perspective(mgl32.DegToRad(60), defaultAspect, defaultNear, defaultFar)
	assertMatrix(t, "Projection", s.Camera().Projection(), want)
	assertMatrix(t, "View", s.Camera().View(), mgl32.Ident4())
}

func TestBuildSceneDescErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"missing name", "nodes:\n  - parent: x\n", "missing name"},
		{"duplicate name", "nodes:\n  - name: a\n  - name: a\n", "duplicate name"},
		{"root name taken", "nodes:\n  - name: root\n", "duplicate name"},
		{"unknown parent", "nodes:\n  - name: a\n    parent: ghost\n", `unknown parent "ghost"`},
		{"parent declared later", "nodes:\n  - name: a\n    parent: b\n  - name: b\n", `unknown parent "b"`},
		{"rotation arity", "nodes:\n  - name: a\n    rotation: [0, 0, 1]\n", "rotation"},
		{"translation arity", "nodes:\n  - name: a\n    translation: [1, 2]\n", "translation"},
		{"camera arity", "camera:\n  eye: [1, 2]\n", "eye"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc, err := LoadSceneDesc([]byte(tt.yaml))
			if err != nil {
				t.Fatal(err)
			}
			_, err = desc.Build()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestBuildArityErrorIsWrapped(t *testing.T) {
	desc := &SceneDesc{Nodes: []NodeDesc{{Name: "a", Scale: []float32{1}}}}
	_, err := desc.Build()
	if !errors.Is(err, errVectorArity) {
		t.Errorf("error = %v, want errVectorArity", err)
	}
}

func TestLoadSceneDescInvalidYAML(t *testing.T) {
	_, err := LoadSceneDesc([]byte("nodes: [name: {"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.HasPrefix(err.Error(), "arbor: unmarshal scene") {
		t.Errorf("error = %q", err)
	}
}

func TestLoadSceneFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte(testSceneYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	desc, err := LoadSceneFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(desc.Nodes) != 3 || desc.TPS != 30 {
		t.Errorf("desc = %+v", desc)
	}
}

func TestLoadSceneFileMissing(t *testing.T) {
	_, err := LoadSceneFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want os.ErrNotExist", err)
	}
}
