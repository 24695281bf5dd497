package node

import (
	"encoding/json"
	"errors"
	"slices"
)

var (
	ErrIncompatibleSockets = errors.New("sockets are not compatible")
	ErrInputOccupied       = errors.New("input accepts a single connection")
)

type Connection struct {
	Output *Output
	Input  *Input
}

type connectionJSON struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// MarshalJSON flattens both ends to "<node id>.<key>" so the node graph does not
// recurse through its back references.
func (slf *Connection) MarshalJSON() ([]byte, error) {
	return json.Marshal(connectionJSON{
		From: endpoint(slf.Output.node, slf.Output.Key),
		To:   endpoint(slf.Input.node, slf.Input.Key),
	})
}

func endpoint(n *Node, key string) string {
	if n == nil {
		return key
	}
	return n.ID + "." + key
}

// Connect links out to in, enforcing socket compatibility and the input's
// multiplicity.
func Connect(out *Output, in *Input) (*Connection, error) {
	if !out.Socket.CompatibleWith(in.Socket) {
		return nil, ErrIncompatibleSockets
	}
	if !in.MultipleConnections && len(in.Connections) > 0 {
		return nil, ErrInputOccupied
	}

	c := &Connection{Output: out, Input: in}
	out.Connections = append(out.Connections, c)
	in.Connections = append(in.Connections, c)
	return c, nil
}

func Disconnect(c *Connection) {
	c.Output.Connections = slices.DeleteFunc(c.Output.Connections, func(x *Connection) bool { return x == c })
	c.Input.Connections = slices.DeleteFunc(c.Input.Connections, func(x *Connection) bool { return x == c })
}
