// Package node is the server-side mirror of an editor node container: an ordered
// set of inputs, outputs and controls plus the flags the editor template reads.
package node

import (
	"fmt"

	"flowstudio/internal/editor/socket"
)

// DBNodeKey is the Data key under which descriptors store the backing domain node.
const DBNodeKey = "dbNode"

type Node struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	IsStartNode bool           `json:"isStartNode"`
	Controls    []*Control     `json:"controls"`
	Inputs      []*Input       `json:"inputs"`
	Outputs     []*Output      `json:"outputs"`
	Data        map[string]any `json:"data"`
}

func New(id, title string) *Node {
	return &Node{
		ID:       id,
		Title:    title,
		Controls: []*Control{},
		Inputs:   []*Input{},
		Outputs:  []*Output{},
		Data:     make(map[string]any),
	}
}

// Control is an inline editor widget. Height and margin are layout hints only.
type Control struct {
	Key    string `json:"key"`
	Kind   string `json:"kind"`
	Value  any    `json:"value,omitempty"`
	Height int    `json:"height"`
	Margin int    `json:"margin"`
}

type Input struct {
	Key                 string         `json:"key"`
	Title               string         `json:"title"`
	Socket              *socket.Socket `json:"socket"`
	MultipleConnections bool           `json:"multipleConnections"`
	Connections         []*Connection  `json:"connections"`
	Control             *Control       `json:"control,omitempty"`

	node *Node
}

// NewInput mirrors the editor's input constructor; the title doubles as the key.
func NewInput(title string, s *socket.Socket, multiple bool) *Input {
	return &Input{
		Key:                 title,
		Title:               title,
		Socket:              s,
		MultipleConnections: multiple,
		Connections:         []*Connection{},
	}
}

// ShowControl reports whether the inline control replaces the input title.
func (slf *Input) ShowControl() bool {
	return slf.Control != nil && len(slf.Connections) == 0
}

func (slf *Input) Node() *Node {
	return slf.node
}

type Output struct {
	Key         string         `json:"key"`
	Title       string         `json:"title"`
	Socket      *socket.Socket `json:"socket"`
	Connections []*Connection  `json:"connections"`

	node *Node
}

func NewOutput(title string, s *socket.Socket) *Output {
	return &Output{
		Key:         title,
		Title:       title,
		Socket:      s,
		Connections: []*Connection{},
	}
}

func (slf *Output) Node() *Node {
	return slf.node
}

// AddInput appends in after the existing inputs. Adding a key twice is a
// descriptor bug and panics.
func (slf *Node) AddInput(in *Input) *Node {
	if slf.Input(in.Key) != nil {
		panic(fmt.Sprintf("node %s: duplicate input %q", slf.ID, in.Key))
	}
	in.node = slf
	slf.Inputs = append(slf.Inputs, in)
	return slf
}

func (slf *Node) AddOutput(out *Output) *Node {
	if slf.Output(out.Key) != nil {
		panic(fmt.Sprintf("node %s: duplicate output %q", slf.ID, out.Key))
	}
	out.node = slf
	slf.Outputs = append(slf.Outputs, out)
	return slf
}

func (slf *Node) AddControl(c *Control) *Node {
	slf.Controls = append(slf.Controls, c)
	return slf
}

func (slf *Node) Input(key string) *Input {
	for _, in := range slf.Inputs {
		if in.Key == key {
			return in
		}
	}
	return nil
}

func (slf *Node) Output(key string) *Output {
	for _, out := range slf.Outputs {
		if out.Key == key {
			return out
		}
	}
	return nil
}

// Connections returns every connection touching the node, inputs first.
func (slf *Node) Connections() []*Connection {
	var all []*Connection
	for _, in := range slf.Inputs {
		all = append(all, in.Connections...)
	}
	for _, out := range slf.Outputs {
		all = append(all, out.Connections...)
	}
	return all
}
