package scene

import (
	"github.com/atul-mourya/RayTracing-sub004/types"
)

// Node is the closed set of scene graph variants. A node is either a Group,
// a Mesh or a DirectionalLight; traversal code switches exhaustively over
// these three concrete types.
type Node interface {
	// The node's transform relative to its parent.
	LocalTransform() types.Mat4

	// Marker method restricting implementations to this package.
	sceneNode()
}

// A group aggregates child nodes under a common transform.
type Group struct {
	Name     string
	Local    types.Mat4
	Children []Node
}

// Create an empty group with an identity transform.
func NewGroup(name string) *Group {
	return &Group{
		Name:     name,
		Local:    types.Ident4(),
		Children: make([]Node, 0),
	}
}

// Append a child node.
func (g *Group) Add(nodes ...Node) *Group {
	g.Children = append(g.Children, nodes...)
	return g
}

func (g *Group) LocalTransform() types.Mat4 { return g.Local }
func (g *Group) sceneNode()                 {}

// A mesh node binds a geometry to a material under a transform.
type Mesh struct {
	Name     string
	Local    types.Mat4
	Geometry *Geometry
	Material *Material
}

// Create a mesh node with an identity transform.
func NewMesh(name string, geom *Geometry, mat *Material) *Mesh {
	return &Mesh{
		Name:     name,
		Local:    types.Ident4(),
		Geometry: geom,
		Material: mat,
	}
}

func (m *Mesh) LocalTransform() types.Mat4 { return m.Local }
func (m *Mesh) sceneNode()                 {}

// A directional light. The direction is expressed in the node's local space
// and transformed into world space during extraction.
type DirectionalLight struct {
	Name      string
	Local     types.Mat4
	Direction types.Vec3
	Color     types.Vec3
	Intensity float32
}

// Create a directional light with an identity transform.
func NewDirectionalLight(name string, dir, color types.Vec3, intensity float32) *DirectionalLight {
	return &DirectionalLight{
		Name:      name,
		Local:     types.Ident4(),
		Direction: dir,
		Color:     color,
		Intensity: intensity,
	}
}

func (l *DirectionalLight) LocalTransform() types.Mat4 { return l.Local }
func (l *DirectionalLight) sceneNode()                 {}
