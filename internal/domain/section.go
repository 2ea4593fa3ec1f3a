package domain

import (
	"errors"
	"fmt"
)

const (
	keyNotes   = "notes"
	keyEntries = "entries"
)

var (
	ErrEmptyPath   = errors.New("path is empty")
	ErrReservedKey = errors.New("path targets a reserved section key")
	ErrPathBlocked = errors.New("path element is not an object")
)

// Section is one category of a project. Notes and Entries have fixed
// meaning; every other key is free-form and kept in Fields.
type Section struct {
	Notes []string
	// Entries is nil until the first structured item is added, so documents
	// that never had entries do not grow an empty list on save.
	Entries []Value
	Fields  *Object
}

func NewSection() *Section {
	return &Section{Notes: []string{}}
}

// AddEntry appends a structured record, creating the entries list if needed.
func (s *Section) AddEntry(v Value) {
	if s.Entries == nil {
		s.Entries = []Value{}
	}
	s.Entries = append(s.Entries, v)
}

// Lookup walks path through the free-form keys.
func (s *Section) Lookup(path []string) (Value, bool) {
	if len(path) == 0 || s.Fields == nil {
		return Value{}, false
	}
	cur := s.Fields
	for i, key := range path {
		v, ok := cur.Get(key)
		if !ok {
			return Value{}, false
		}
		if i == len(path)-1 {
			return v, true
		}
		next, ok := v.Obj()
		if !ok {
			return Value{}, false
		}
		cur = next
	}
	return Value{}, false
}

// CheckPath reports whether SetPath could write at path without replacing
// a non-object value along the way.
func (s *Section) CheckPath(path []string) error {
	if len(path) == 0 {
		return ErrEmptyPath
	}
	if path[0] == keyNotes || path[0] == keyEntries {
		return fmt.Errorf("%w: %q", ErrReservedKey, path[0])
	}
	if s.Fields == nil {
		return nil
	}
	cur := s.Fields
	for _, key := range path[:len(path)-1] {
		existing, ok := cur.Get(key)
		if !ok {
			return nil
		}
		next, isObj := existing.Obj()
		if !isObj {
			return fmt.Errorf("%w: %q holds a %s", ErrPathBlocked, key, existing.Kind())
		}
		cur = next
	}
	return nil
}

// SetPath writes v at path, creating intermediate objects as needed.
func (s *Section) SetPath(path []string, v Value) error {
	if err := s.CheckPath(path); err != nil {
		return err
	}
	if s.Fields == nil {
		s.Fields = NewObject()
	}
	cur := s.Fields
	for _, key := range path[:len(path)-1] {
		existing, ok := cur.Get(key)
		if !ok {
			next := NewObject()
			cur.Set(key, ObjectValue(next))
			cur = next
			continue
		}
		cur, _ = existing.Obj()
	}
	cur.Set(path[len(path)-1], v)
	return nil
}

// Value converts the section back into its document form.
func (s *Section) Value() Value {
	obj := NewObject()
	notes := make([]Value, len(s.Notes))
	for i, n := range s.Notes {
		notes[i] = String(n)
	}
	obj.Set(keyNotes, List(notes...))
	if s.Entries != nil {
		obj.Set(keyEntries, List(s.Entries...))
	}
	for _, k := range s.Fields.Keys() {
		v, _ := s.Fields.Get(k)
		obj.Set(k, v)
	}
	return ObjectValue(obj)
}

func sectionFromValue(v Value) (*Section, error) {
	obj, ok := v.Obj()
	if !ok {
		return nil, fmt.Errorf("section must be an object, got %s", v.Kind())
	}
	s := NewSection()
	for _, k := range obj.Keys() {
		val, _ := obj.Get(k)
		switch k {
		case keyNotes:
			if val.Kind() != KindList {
				return nil, fmt.Errorf("notes must be a list, got %s", val.Kind())
			}
			for _, item := range val.Items() {
				str, ok := item.Str()
				if !ok {
					return nil, fmt.Errorf("note must be a string, got %s", item.Kind())
				}
				s.Notes = append(s.Notes, str)
			}
		case keyEntries:
			if val.Kind() != KindList {
				return nil, fmt.Errorf("entries must be a list, got %s", val.Kind())
			}
			s.Entries = append([]Value{}, val.Items()...)
		default:
			if s.Fields == nil {
				s.Fields = NewObject()
			}
			s.Fields.Set(k, val)
		}
	}
	return s, nil
}

func (s *Section) MarshalJSON() ([]byte, error) {
	return s.Value().MarshalJSON()
}

func (s *Section) UnmarshalJSON(data []byte) error {
	var v Value
	if err := v.UnmarshalJSON(data); err != nil {
		return err
	}
	parsed, err := sectionFromValue(v)
	if err != nil {
		return err
	}
	*s = *parsed
	return nil
}

// Sections maps category names to sections, preserving key order.
type Sections struct {
	names []string
	byKey map[string]*Section
}

// NewSections returns every taxonomy category with an empty notes list.
func NewSections() *Sections {
	ss := &Sections{byKey: make(map[string]*Section)}
	for _, name := range SectionNames() {
		ss.put(name, NewSection())
	}
	return ss
}

func (ss *Sections) put(name string, s *Section) {
	if ss.byKey == nil {
		ss.byKey = make(map[string]*Section)
	}
	if _, ok := ss.byKey[name]; !ok {
		ss.names = append(ss.names, name)
	}
	ss.byKey[name] = s
}

func (ss *Sections) Get(name string) (*Section, bool) {
	if ss == nil {
		return nil, false
	}
	s, ok := ss.byKey[name]
	return s, ok
}

// Ensure returns the named section, creating it with empty notes if absent.
func (ss *Sections) Ensure(name string) *Section {
	if s, ok := ss.byKey[name]; ok {
		return s
	}
	s := NewSection()
	ss.put(name, s)
	return s
}

func (ss *Sections) Names() []string {
	if ss == nil {
		return nil
	}
	out := make([]string, len(ss.names))
	copy(out, ss.names)
	return out
}

func (ss *Sections) MarshalJSON() ([]byte, error) {
	obj := NewObject()
	for _, name := range ss.names {
		obj.Set(name, ss.byKey[name].Value())
	}
	return obj.MarshalJSON()
}

func (ss *Sections) UnmarshalJSON(data []byte) error {
	var v Value
	if err := v.UnmarshalJSON(data); err != nil {
		return err
	}
	obj, ok := v.Obj()
	if !ok {
		return fmt.Errorf("sections must be an object, got %s", v.Kind())
	}
	parsed := &Sections{byKey: make(map[string]*Section)}
	for _, name := range obj.Keys() {
		raw, _ := obj.Get(name)
		s, err := sectionFromValue(raw)
		if err != nil {
			return fmt.Errorf("section %q: %w", name, err)
		}
		parsed.put(name, s)
	}
	*ss = *parsed
	return nil
}
