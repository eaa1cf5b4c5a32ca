package arbor

import "slices"

// Material is the render-state key of a node: a shader handle and the set
// of texture handles it samples. Handles are opaque to arbor.
//
// Materials are ordered so that nodes sharing render state end up adjacent
// after a material walk, which minimizes state changes between draws.
type Material struct {
	shader   int
	textures []int
}

// Shader returns the shader handle.
func (m *Material) Shader() int {
	return m.shader
}

// SetShader sets the shader handle.
func (m *Material) SetShader(id int) {
	m.shader = id
}

// Textures returns a copy of the texture handles in ascending order.
func (m *Material) Textures() []int {
	return slices.Clone(m.textures)
}

// NumTextures returns the number of texture handles.
func (m *Material) NumTextures() int {
	return len(m.textures)
}

// SetTextures replaces the texture handles and sorts them ascending.
func (m *Material) SetTextures(ids ...int) {
	m.textures = append(m.textures[:0], ids...)
	slices.Sort(m.textures)
}

// Less reports whether m orders before other.
func (m *Material) Less(other *Material) bool {
	return CompareMaterials(m, other) < 0
}

// CompareMaterials returns -1, 0 or +1 depending on whether a orders
// before, equal to, or after b. Materials order by shader handle, then by
// texture count (fewer first), then lexicographically by texture handle.
func CompareMaterials(a, b *Material) int {
	switch {
	case a.shader < b.shader:
		return -1
	case a.shader > b.shader:
		return 1
	}
	switch {
	case len(a.textures) < len(b.textures):
		return -1
	case len(a.textures) > len(b.textures):
		return 1
	}
	return slices.Compare(a.textures, b.textures)
}

// countBatches counts contiguous groups of nodes sharing the same material.
// This reports how many render-state changes a renderer would see when
// drawing nodes in the given order.
func countBatches(nodes []*Node) int {
	if len(nodes) == 0 {
		return 0
	}
	count := 1
	for i := 1; i < len(nodes); i++ {
		if CompareMaterials(&nodes[i-1].material, &nodes[i].material) != 0 {
			count++
		}
	}
	return count
}
