package socket

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var ErrUnknownSocket = errors.New("unknown socket kind")

// Registry resolves socket kinds to stable socket instances.
type Registry struct {
	mu      sync.RWMutex
	sockets map[string]*Socket
}

func NewRegistry() *Registry {
	return &Registry{sockets: make(map[string]*Socket)}
}

// NewFlowSockets returns a registry with the flow kinds and their combinations.
func NewFlowSockets() *Registry {
	r := NewRegistry()
	r.Register(Prev, "Previous", "Execution predecessor")
	r.Register(Next, "Next", "Execution successor")
	r.Register(DataSource, "Data Source", "Incoming data")
	r.Register(DataTarget, "Data Target", "Outgoing data")
	r.Register(LoopBody, "Loop Body", "First action of each iteration")

	r.mustCombine(Next, Prev)
	r.mustCombine(LoopBody, Prev)
	r.mustCombine(DataTarget, DataSource)
	return r
}

// Register adds a kind. Registering an existing kind keeps the first instance so
// that pointers handed out earlier stay valid.
func (slf *Registry) Register(kind, name, hint string) *Socket {
	slf.mu.Lock()
	defer slf.mu.Unlock()

	if s, ok := slf.sockets[kind]; ok {
		return s
	}
	s := newSocket(kind, name, hint)
	slf.sockets[kind] = s
	return s
}

// Combine allows outputs of kind `from` to connect to inputs of kind `to`.
func (slf *Registry) Combine(from, to string) error {
	slf.mu.Lock()
	defer slf.mu.Unlock()

	src, ok := slf.sockets[from]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSocket, from)
	}
	if _, ok = slf.sockets[to]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSocket, to)
	}
	src.compatible[to] = true
	return nil
}

func (slf *Registry) mustCombine(from, to string) {
	if err := slf.Combine(from, to); err != nil {
		panic(err)
	}
}

// GetSocket returns the socket registered for kind.
func (slf *Registry) GetSocket(kind string) (*Socket, error) {
	slf.mu.RLock()
	defer slf.mu.RUnlock()

	s, ok := slf.sockets[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSocket, kind)
	}
	return s, nil
}

func (slf *Registry) Kinds() []string {
	slf.mu.RLock()
	defer slf.mu.RUnlock()

	kinds := make([]string, 0, len(slf.sockets))
	for k := range slf.sockets {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
