// Package socket holds the typed connection points shared by every node kind.
package socket

// Kind names used by the flow node kinds.
const (
	Prev       = "prev"
	Next       = "next"
	DataSource = "dataSource"
	DataTarget = "dataTarget"
	LoopBody   = "loopBody"
)

// Socket identifies a typed connection point. Instances are owned by a Registry
// and compared by pointer or ID, never copied into nodes.
type Socket struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Hint string `json:"hint"`

	compatible map[string]bool
}

func newSocket(id, name, hint string) *Socket {
	return &Socket{
		ID:         id,
		Name:       name,
		Hint:       hint,
		compatible: make(map[string]bool),
	}
}

// CompatibleWith reports whether an output carrying this socket may connect to an
// input carrying other.
func (slf *Socket) CompatibleWith(other *Socket) bool {
	if slf == nil || other == nil {
		return false
	}
	return slf.ID == other.ID || slf.compatible[other.ID]
}
