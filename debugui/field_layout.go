package debugui

import (
	"fmt"
	"reflect"
	"sync"
)

// FieldKind selects the widget the inspector uses for a field.
type FieldKind int

const (
	FieldReadOnly FieldKind = iota
	FieldInt
	FieldFloat
	FieldBool
	FieldString
)

// FieldPath is one leaf of a component's layout. Nested structs are
// flattened into dotted paths; embedded structs add no path segment, so a
// BoundingBox{Rect} shows Min.X rather than Rect.Min.X.
type FieldPath struct {
	Path  string
	Index []int
	Type  reflect.Type
	Kind  FieldKind
}

// Value returns the field of component this path points at.
func (f FieldPath) Value(component reflect.Value) reflect.Value {
	if len(f.Index) == 0 {
		return component
	}
	return component.FieldByIndex(f.Index)
}

var stringerType = reflect.TypeFor[fmt.Stringer]()

// LayoutCache memoizes component layouts so the inspector doesn't walk
// reflect.Type every frame.
type LayoutCache struct {
	mu      sync.RWMutex
	layouts map[reflect.Type][]FieldPath
}

func NewLayoutCache() *LayoutCache {
	return &LayoutCache{layouts: make(map[reflect.Type][]FieldPath)}
}

// Layout returns the leaf fields of t in declaration order. A non-struct
// component is a single leaf with an empty path.
func (lc *LayoutCache) Layout(t reflect.Type) []FieldPath {
	lc.mu.RLock()
	layout, ok := lc.layouts[t]
	lc.mu.RUnlock()
	if ok {
		return layout
	}

	lc.mu.Lock()
	defer lc.mu.Unlock()
	if layout, ok := lc.layouts[t]; ok {
		return layout
	}

	if t.Kind() == reflect.Struct && !isStringer(t) {
		layout = flatten(t, "", nil, layout)
	} else {
		layout = []FieldPath{{Type: t, Kind: kindOf(t)}}
	}
	lc.layouts[t] = layout
	return layout
}

func flatten(t reflect.Type, prefix string, index []int, out []FieldPath) []FieldPath {
	for i := range t.NumField() {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		path := prefix + field.Name
		fieldIndex := append(append([]int(nil), index...), i)

		if field.Type.Kind() == reflect.Struct && !isStringer(field.Type) {
			nested := path + "."
			if field.Anonymous {
				nested = prefix
			}
			out = flatten(field.Type, nested, fieldIndex, out)
			continue
		}

		out = append(out, FieldPath{
			Path:  path,
			Index: fieldIndex,
			Type:  field.Type,
			Kind:  kindOf(field.Type),
		})
	}
	return out
}

// kindOf maps a type to an edit widget. Enums with a String method are shown
// by name and not edited, so a Direction can't be set to an invalid value.
func kindOf(t reflect.Type) FieldKind {
	if isStringer(t) {
		return FieldReadOnly
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return FieldInt
	case reflect.Float32, reflect.Float64:
		return FieldFloat
	case reflect.Bool:
		return FieldBool
	case reflect.String:
		return FieldString
	}
	return FieldReadOnly
}

func isStringer(t reflect.Type) bool {
	return t.Implements(stringerType) || reflect.PointerTo(t).Implements(stringerType)
}
