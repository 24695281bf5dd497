package plugin

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"flowstudio/internal/api/models"
)

var (
	ErrUnknownKind   = errors.New("unknown node kind")
	ErrDuplicateKind = errors.New("node kind already registered")
)

// Registry maps node-kind names to their descriptors.
type Registry struct {
	mu          sync.RWMutex
	descriptors map[models.NodeKind]Descriptor
}

func NewRegistry() *Registry {
	return &Registry{descriptors: make(map[models.NodeKind]Descriptor)}
}

// NewDefaultRegistry registers every built-in kind against sockets.
func NewDefaultRegistry(sockets SocketRegistry, engine *TemplateEngine) *Registry {
	r := NewRegistry()
	for _, d := range []Descriptor{
		NewForEach(sockets, engine),
		NewAction(sockets, engine),
		NewReturn(sockets, engine),
	} {
		if err := r.Register(d); err != nil {
			panic(err)
		}
	}
	return r
}

func (slf *Registry) Register(d Descriptor) error {
	slf.mu.Lock()
	defer slf.mu.Unlock()

	if _, ok := slf.descriptors[d.Kind()]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateKind, d.Kind())
	}
	slf.descriptors[d.Kind()] = d
	return nil
}

func (slf *Registry) Lookup(kind models.NodeKind) (Descriptor, error) {
	slf.mu.RLock()
	defer slf.mu.RUnlock()

	d, ok := slf.descriptors[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	return d, nil
}

func (slf *Registry) Kinds() []models.NodeKind {
	slf.mu.RLock()
	defer slf.mu.RUnlock()

	kinds := make([]models.NodeKind, 0, len(slf.descriptors))
	for k := range slf.descriptors {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
