package arbor

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// scriptStep is a single action in a script. Node names refer to Node.Name.
type scriptStep struct {
	Action string    `yaml:"action"`
	Label  string    `yaml:"label,omitempty"`
	Node   string    `yaml:"node,omitempty"`
	To     []float32 `yaml:"to,omitempty"`
	Frames int       `yaml:"frames,omitempty"`
}

type script struct {
	Steps []scriptStep `yaml:"steps"`
}

// ScriptRunner plays a sequence of scene mutations and screenshots, one
// step per simulation tick, for automated visual checks. Attach it to a
// Scene with SetScriptRunner. Scripts are YAML (or JSON) documents:
//
//	steps:
//	  - {action: screenshot, label: initial}
//	  - {action: translate, node: crate, to: [0, 2, 0]}
//	  - {action: wait, frames: 10}
//	  - {action: screenshot, label: moved}
//
// Supported actions: screenshot, wait, translate, scale, rotate (to is
// x, y, z, w).
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
	err       error
}

// LoadScript parses a script and returns a runner ready to be attached to
// a Scene via SetScriptRunner.
func LoadScript(data []byte) (*ScriptRunner, error) {
	var sc script
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("arbor: parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, errors.New("arbor: parse script: no steps")
	}
	for i, st := range sc.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("arbor: parse script: step %d: %w", i, err)
		}
	}
	return &ScriptRunner{steps: sc.Steps}, nil
}

func (st *scriptStep) validate() error {
	switch st.Action {
	case "screenshot", "wait":
		return nil
	case "translate", "scale":
		if len(st.To) != 3 {
			return fmt.Errorf("%s: %w: have %d, want 3", st.Action, errVectorArity, len(st.To))
		}
	case "rotate":
		if len(st.To) != 4 {
			return fmt.Errorf("%s: %w: have %d, want 4", st.Action, errVectorArity, len(st.To))
		}
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	if st.Node == "" {
		return fmt.Errorf("%s: missing node", st.Action)
	}
	return nil
}

// SetScriptRunner attaches a ScriptRunner to the scene. The runner advances
// once per Update, after transforms are ticked and before the update
// callback runs.
func (s *Scene) SetScriptRunner(runner *ScriptRunner) {
	s.script = runner
}

// Done reports whether all steps have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Err returns the first step failure, such as a missing node. A failed
// runner is done.
func (r *ScriptRunner) Err() error {
	return r.err
}

// step advances the runner by one tick.
func (r *ScriptRunner) step(s *Scene) {
	if r.done {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		s.Screenshot(st.Label)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this tick counts as one
		}
	default:
		n := s.root.Find(st.Node)
		if n == nil {
			r.err = fmt.Errorf("arbor: script step %d: node %q not found", r.cursor-1, st.Node)
			r.done = true
			return
		}
		v := st.To
		switch st.Action {
		case "translate":
			n.transform.SetCurrentTranslation(v[0], v[1], v[2])
		case "scale":
			n.transform.SetCurrentScale(v[0], v[1], v[2])
		case "rotate":
			n.transform.SetCurrentRotation(v[0], v[1], v[2], v[3])
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 {
		r.done = true
	}
}
