package arbor

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// SceneDesc is a YAML description of a scene: a camera and a flat list of
// nodes. Parents must be declared before their children; nodes without a
// parent are attached to the scene root. Each built node's reference is its
// name.
//
//	tps: 30
//	camera:
//	  eye: [0, 4, 10]
//	  target: [0, 0, 0]
//	  fov: 60
//	  near: 0.1
//	  far: 100
//	  aspect: 1.333
//	nodes:
//	  - name: crate
//	    translation: [1, 0, -2]
//	    rotation: [0, 0, 0, 1]
//	    min: [-0.5, -0.5, -0.5]
//	    max: [0.5, 0.5, 0.5]
//	    shader: 2
//	    textures: [7, 3]
type SceneDesc struct {
	TPS    int        `yaml:"tps"`
	Camera CameraDesc `yaml:"camera"`
	Nodes  []NodeDesc `yaml:"nodes"`
}

// CameraDesc describes a look-at view and a perspective projection.
// The view is left as identity when Eye is empty, the projection when FOV
// is zero.
type CameraDesc struct {
	Eye    []float32 `yaml:"eye"`
	Target []float32 `yaml:"target"`
	Up     []float32 `yaml:"up"`
	FOV    float32   `yaml:"fov"` // vertical, in degrees
	Near   float32   `yaml:"near"`
	Far    float32   `yaml:"far"`
	Aspect float32   `yaml:"aspect"`
}

// NodeDesc describes one node.
type NodeDesc struct {
	Name        string    `yaml:"name"`
	Parent      string    `yaml:"parent"`
	Translation []float32 `yaml:"translation"`
	Rotation    []float32 `yaml:"rotation"` // x, y, z, w
	Scale       []float32 `yaml:"scale"`
	Min         []float32 `yaml:"min"`
	Max         []float32 `yaml:"max"`
	Shader      int       `yaml:"shader"`
	Textures    []int     `yaml:"textures"`
}

// Camera defaults applied to a described camera.
const (
	defaultNear   = 0.1
	defaultFar    = 100
	defaultAspect = 4.0 / 3.0
)

// LoadSceneDesc parses a YAML scene description.
func LoadSceneDesc(data []byte) (*SceneDesc, error) {
	var desc SceneDesc
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("arbor: unmarshal scene: %w", err)
	}
	return &desc, nil
}

// LoadSceneFile reads and parses a YAML scene description file.
func LoadSceneFile(path string) (*SceneDesc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("arbor: load %s: %w", path, err)
	}
	desc, err := LoadSceneDesc(data)
	if err != nil {
		return nil, fmt.Errorf("arbor: load %s: %w", path, err)
	}
	return desc, nil
}

// errVectorArity is returned for vectors with the wrong number of components.
var errVectorArity = errors.New("wrong number of components")

// Build creates a scene from the description.
func (d *SceneDesc) Build() (*Scene, error) {
	s := NewScene(d.TPS)
	if err := d.Camera.apply(s.camera); err != nil {
		return nil, fmt.Errorf("arbor: camera: %w", err)
	}

	byName := map[string]*Node{s.root.Name: s.root}
	for i := range d.Nodes {
		nd := &d.Nodes[i]
		if nd.Name == "" {
			return nil, fmt.Errorf("arbor: node %d: missing name", i)
		}
		if _, ok := byName[nd.Name]; ok {
			return nil, fmt.Errorf("arbor: node %q: duplicate name", nd.Name)
		}
		parent := s.root
		if nd.Parent != "" {
			p, ok := byName[nd.Parent]
			if !ok {
				return nil, fmt.Errorf("arbor: node %q: unknown parent %q", nd.Name, nd.Parent)
			}
			parent = p
		}
		n, err := nd.build()
		if err != nil {
			return nil, fmt.Errorf("arbor: node %q: %w", nd.Name, err)
		}
		n.SetParent(parent)
		byName[nd.Name] = n
	}
	return s, nil
}

func (nd *NodeDesc) build() (*Node, error) {
	n := NewNode(nd.Name)
	n.Name = nd.Name

	t, err := vec3("translation", nd.Translation, mgl32.Vec3{})
	if err != nil {
		return nil, err
	}
	sc, err := vec3("scale", nd.Scale, mgl32.Vec3{1, 1, 1})
	if err != nil {
		return nil, err
	}
	lo, err := vec3("min", nd.Min, mgl32.Vec3{})
	if err != nil {
		return nil, err
	}
	hi, err := vec3("max", nd.Max, mgl32.Vec3{})
	if err != nil {
		return nil, err
	}

	tr := n.transform
	tr.SetCurrentTranslation(t[0], t[1], t[2])
	tr.SetCurrentScale(sc[0], sc[1], sc[2])
	switch len(nd.Rotation) {
	case 0:
	case 4:
		r := nd.Rotation
		tr.SetCurrentRotation(r[0], r[1], r[2], r[3])
	default:
		return nil, fmt.Errorf("rotation: %w: have %d, want 4", errVectorArity, len(nd.Rotation))
	}

	n.bounds = Box{Min: lo, Max: hi}
	n.material.SetShader(nd.Shader)
	n.material.SetTextures(nd.Textures...)
	return n, nil
}

func (cd *CameraDesc) apply(c *Camera) error {
	if len(cd.Eye) > 0 {
		eye, err := vec3("eye", cd.Eye, mgl32.Vec3{})
		if err != nil {
			return err
		}
		target, err := vec3("target", cd.Target, mgl32.Vec3{})
		if err != nil {
			return err
		}
		up, err := vec3("up", cd.Up, mgl32.Vec3{0, 1, 0})
		if err != nil {
			return err
		}
		c.LookAt(eye, target, up)
	}
	if cd.FOV != 0 {
		near, far, aspect := cd.Near, cd.Far, cd.Aspect
		if near == 0 {
			near = defaultNear
		}
		if far == 0 {
			far = defaultFar
		}
		if aspect == 0 {
			aspect = defaultAspect
		}
		c.SetPerspective(mgl32.DegToRad(cd.FOV), aspect, near, far)
	}
	return nil
}

// vec3 converts a described vector, returning def when v is empty.
func vec3(field string, v []float32, def mgl32.Vec3) (mgl32.Vec3, error) {
	switch len(v) {
	case 0:
		return def, nil
	case 3:
		return mgl32.Vec3{v[0], v[1], v[2]}, nil
	default:
		return def, fmt.Errorf("%s: %w: have %d, want 3", field, errVectorArity, len(v))
	}
}
