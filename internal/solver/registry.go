package solver

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/danmuck/bitsctl/internal/protocol"
)

var (
	ErrSolverExists    = errors.New("solver already exists")
	ErrSolverNil       = errors.New("solver is nil")
	ErrInvalidMetadata = errors.New("invalid solver metadata")
)

// Registry stores solvers by stable identifier and by part number.
type Registry struct {
	items map[string]Solver
	parts map[int]string
}

// NewRegistry creates an empty solver registry.
func NewRegistry() *Registry {
	return &Registry{
		items: make(map[string]Solver),
		parts: make(map[int]string),
	}
}

// DefaultRegistry registers the version-sum and evaluation solvers.
func DefaultRegistry(limits protocol.Limits) *Registry {
	r := NewRegistry()
	for _, s := range []Solver{NewVersionSum(limits), NewEvaluate(limits)} {
		if err := r.Register(s); err != nil {
			panic("solver: default registry: " + err.Error())
		}
	}
	return r
}

// ValidateMetadata checks required metadata fields and id format.
func ValidateMetadata(meta Metadata) error {
	id := strings.TrimSpace(meta.ID)
	name := strings.TrimSpace(meta.Name)
	desc := strings.TrimSpace(meta.Description)
	if id == "" || name == "" || desc == "" {
		return fmt.Errorf("%w: id, name, and description are required", ErrInvalidMetadata)
	}
	if !isValidID(id) {
		return fmt.Errorf("%w: invalid id format %q", ErrInvalidMetadata, id)
	}
	if meta.Part < 0 {
		return fmt.Errorf("%w: negative part %d", ErrInvalidMetadata, meta.Part)
	}
	return nil
}

// Register adds a solver to the registry. A positive part number must be
// unique too.
func (r *Registry) Register(s Solver) error {
	if s == nil {
		return ErrSolverNil
	}

	meta := s.Metadata()
	if err := ValidateMetadata(meta); err != nil {
		return err
	}

	if _, ok := r.items[meta.ID]; ok {
		return ErrSolverExists
	}
	if _, ok := r.parts[meta.Part]; ok && meta.Part > 0 {
		return fmt.Errorf("%w: part %d", ErrSolverExists, meta.Part)
	}
	r.items[meta.ID] = s
	if meta.Part > 0 {
		r.parts[meta.Part] = meta.ID
	}
	return nil
}

// Resolve returns a solver by id or by part number.
func (r *Registry) Resolve(key string) (Solver, bool) {
	key = strings.TrimSpace(key)
	if s, ok := r.items[key]; ok {
		return s, true
	}
	part, err := strconv.Atoi(key)
	if err != nil {
		return nil, false
	}
	id, ok := r.parts[part]
	if !ok {
		return nil, false
	}
	return r.items[id], true
}

// ListMetadata returns deterministic metadata ordering by part, then id.
func (r *Registry) ListMetadata() []Metadata {
	list := make([]Metadata, 0, len(r.items))
	for _, s := range r.items {
		list = append(list, s.Metadata())
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Part != list[j].Part {
			return list[i].Part < list[j].Part
		}
		return list[i].ID < list[j].ID
	})
	return list
}

func isValidID(id string) bool {
	if id == "" {
		return false
	}
	lastSep := false
	for i := 0; i < len(id); i++ {
		c := id[i]
		isLower := c >= 'a' && c <= 'z'
		isDigit := c >= '0' && c <= '9'
		isSep := c == '.' || c == '-' || c == '_'
		if !(isLower || isDigit || isSep) {
			return false
		}
		if i == 0 || i == len(id)-1 {
			if isSep {
				return false
			}
		}
		if isSep && lastSep {
			return false
		}
		lastSep = isSep
	}
	return true
}
