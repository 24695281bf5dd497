// Package plugin declares the node kinds the flow editor can place. Each kind is a
// Descriptor: it wires sockets onto a host container, classifies start nodes and
// hands out the editor template.
package plugin

import (
	"flowstudio/internal/api/models"
	"flowstudio/internal/editor/node"
	"flowstudio/internal/editor/socket"
)

// SocketRegistry is the lookup a descriptor resolves its socket kinds through.
type SocketRegistry interface {
	GetSocket(kind string) (*socket.Socket, error)
}

type Descriptor interface {
	Kind() models.NodeKind
	// Title is the component name the editor shows for the kind.
	Title() string
	Topology() Topology
	// Build attaches the kind's sockets to n, sets n.IsStartNode from dbNode and
	// stores dbNode on n. dbNode may be nil.
	Build(n *node.Node, dbNode *models.FlowNode) (*node.Node, error)
	Template() (string, error)
	// Worker runs when the editor previews the node.
	Worker(n *node.Node, inputs map[string]any, outputs map[string]any)
}

// Port declares one socket slot of a kind.
type Port struct {
	Title    string `json:"title" yaml:"title"`
	Socket   string `json:"socket" yaml:"socket"`
	Multiple bool   `json:"multiple" yaml:"multiple"`
}

type Topology struct {
	Inputs  []Port `json:"inputs" yaml:"inputs"`
	Outputs []Port `json:"outputs" yaml:"outputs"`
}

// IsStartNode reports whether dbNode is flagged as the entry point of its
// container. Presence of the attribute is all that counts.
func IsStartNode(dbNode *models.FlowNode) bool {
	return dbNode != nil && dbNode.IsStartNodeOfContainer.Present()
}

// Component is a Descriptor defined entirely by its topology.
type Component struct {
	kind     models.NodeKind
	title    string
	topology Topology
	sockets  SocketRegistry
	engine   *TemplateEngine
}

func (slf *Component) Kind() models.NodeKind {
	return slf.kind
}

func (slf *Component) Title() string {
	return slf.title
}

func (slf *Component) Topology() Topology {
	return slf.topology
}

func (slf *Component) Build(n *node.Node, dbNode *models.FlowNode) (*node.Node, error) {
	// Resolve everything before touching n so a registry fault leaves it as it was.
	inputs := make([]*node.Input, 0, len(slf.topology.Inputs))
	for _, p := range slf.topology.Inputs {
		s, err := slf.sockets.GetSocket(p.Socket)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, node.NewInput(p.Title, s, p.Multiple))
	}
	outputs := make([]*node.Output, 0, len(slf.topology.Outputs))
	for _, p := range slf.topology.Outputs {
		s, err := slf.sockets.GetSocket(p.Socket)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, node.NewOutput(p.Title, s))
	}

	n.IsStartNode = IsStartNode(dbNode)
	if n.Data == nil {
		n.Data = make(map[string]any)
	}
	n.Data[node.DBNodeKey] = dbNode

	for _, in := range inputs {
		n.AddInput(in)
	}
	for _, out := range outputs {
		n.AddOutput(out)
	}
	return n, nil
}

func (slf *Component) Template() (string, error) {
	return slf.engine.Render(TemplateData{
		Kind:       string(slf.kind),
		HasOutputs: len(slf.topology.Outputs) > 0,
	})
}

// Worker does nothing: iteration and data flow run in the flow engine, which
// interprets the static topology on its own.
func (slf *Component) Worker(n *node.Node, inputs map[string]any, outputs map[string]any) {
}
