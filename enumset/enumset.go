// Package enumset provides enum-like value sets: ordered tables of named
// constants with parsing and validation, derivable from plain Go structs by
// reflection. A process-wide registry allows sets to be looked up by name.
package enumset

import (
	"fmt"
	"reflect"
	"strings"
)

// Pair associates an enum name with its value.
type Pair[T comparable] struct {
	Name  string
	Value T
}

// Set is an immutable, ordered collection of named values.
type Set[T comparable] struct {
	names  []string
	byName map[string]T
	byVal  map[T]string
}

// UnknownValueError reports a name or value that is not part of a set.
type UnknownValueError struct {
	// What failed to resolve: a name passed to Parse or the string form of
	// a value passed to Valid.
	Input string
	// Names lists the members of the set, in declaration order.
	Names []string
}

// Error implements the error interface.
func (e *UnknownValueError) Error() string {
	return fmt.Sprintf("enumset: %q is not one of [%s]", e.Input, strings.Join(e.Names, " "))
}

// New builds a Set from name/value pairs, preserving their order. Duplicate
// names or values are rejected.
func New[T comparable](pairs ...Pair[T]) (*Set[T], error) {
	if len(pairs) == 0 {
		return nil, fmt.Errorf("enumset: a set needs at least one value")
	}
	s := &Set[T]{
		names:  make([]string, 0, len(pairs)),
		byName: make(map[string]T, len(pairs)),
		byVal:  make(map[T]string, len(pairs)),
	}
	for _, p := range pairs {
		if p.Name == "" {
			return nil, fmt.Errorf("enumset: empty name for value %v", p.Value)
		}
		if _, ok := s.byName[p.Name]; ok {
			return nil, fmt.Errorf("enumset: duplicate name %q", p.Name)
		}
		if prev, ok := s.byVal[p.Value]; ok {
			return nil, fmt.Errorf("enumset: value %v already named %q", p.Value, prev)
		}
		s.names = append(s.names, p.Name)
		s.byName[p.Name] = p.Value
		s.byVal[p.Value] = p.Name
	}
	return s, nil
}

// Must is like New but panics on error. Intended for package-level tables.
func Must[T comparable](pairs ...Pair[T]) *Set[T] {
	s, err := New(pairs...)
	if err != nil {
		panic(err)
	}
	return s
}

// FromStruct derives a Set from the exported fields of a struct value: the
// field name becomes the enum name and the field value the enum value. All
// fields must be exported and assignable to T; any other field is an error,
// so a constant table cannot silently lose members.
func FromStruct[T comparable](v any) (*Set[T], error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("enumset: FromStruct wants a struct, got %T", v)
	}

	want := reflect.TypeOf((*T)(nil)).Elem()
	rt := rv.Type()
	pairs := make([]Pair[T], 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			return nil, fmt.Errorf("enumset: field %s.%s is unexported", rt.Name(), field.Name)
		}
		if !field.Type.AssignableTo(want) {
			return nil, fmt.Errorf("enumset: field %s.%s has type %s, want %s",
				rt.Name(), field.Name, field.Type, want)
		}
		pairs = append(pairs, Pair[T]{
			Name:  field.Name,
			Value: rv.Field(i).Interface().(T),
		})
	}
	return New(pairs...)
}

// Len returns the number of values in the set.
func (s *Set[T]) Len() int { return len(s.names) }

// Names returns the enum names in declaration order.
func (s *Set[T]) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Values returns the enum values in declaration order.
func (s *Set[T]) Values() []T {
	out := make([]T, 0, len(s.names))
	for _, n := range s.names {
		out = append(out, s.byName[n])
	}
	return out
}

// Contains reports whether v is a member of the set.
func (s *Set[T]) Contains(v T) bool {
	_, ok := s.byVal[v]
	return ok
}

// Name returns the name of v, or false when v is not a member.
func (s *Set[T]) Name(v T) (string, bool) {
	n, ok := s.byVal[v]
	return n, ok
}

// Parse resolves a name to its value. Unknown names return an
// *UnknownValueError.
func (s *Set[T]) Parse(name string) (T, error) {
	v, ok := s.byName[name]
	if !ok {
		return v, &UnknownValueError{Input: name, Names: s.Names()}
	}
	return v, nil
}

// MustParse is like Parse but panics on unknown names.
func (s *Set[T]) MustParse(name string) T {
	v, err := s.Parse(name)
	if err != nil {
		panic(err)
	}
	return v
}

// Valid returns nil when v is a member of the set and an
// *UnknownValueError otherwise.
func (s *Set[T]) Valid(v T) error {
	if s.Contains(v) {
		return nil
	}
	return &UnknownValueError{Input: fmt.Sprint(v), Names: s.Names()}
}
