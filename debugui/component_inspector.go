package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/gearjump/ecs"
)

func NewComponentInspectorPanel(world *ecs.World) *ComponentInspectorPanel {
	return &ComponentInspectorPanel{
		world:   world,
		layouts: NewLayoutCache(),
	}
}

// Render shows every component of the selected entity as a flat list of
// fields. Numeric, bool and string fields are editable in place.
func (ci *ComponentInspectorPanel) Render(selected ecs.EntityId) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if selected.IsZero() {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	if !ci.world.Alive(selected) {
		imgui.Text(fmt.Sprintf("Entity %d is gone", selected.Index()))
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity %d (generation %d)", selected.Index(), selected.Generation()))
	imgui.Separator()

	for name, component := range ci.world.Components(selected) {
		if imgui.TreeNodeStr(name) {
			ci.renderComponent(name, reflect.ValueOf(component).Elem())
			imgui.TreePop()
		}
	}

	imgui.End()
}

func (ci *ComponentInspectorPanel) renderComponent(name string, component reflect.Value) {
	for _, field := range ci.layouts.Layout(component.Type()) {
		label := field.Path
		if label == "" {
			label = name
		}
		ci.renderField(label, field, field.Value(component))
	}
}

func (ci *ComponentInspectorPanel) renderField(label string, field FieldPath, val reflect.Value) {
	id := "##" + label
	switch field.Kind {
	case FieldInt:
		v := int32(val.Int())
		imgui.Text(label + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(id, &v) && val.CanSet() {
			val.SetInt(int64(v))
		}

	case FieldFloat:
		v := float32(val.Float())
		imgui.Text(label + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(id, &v) && val.CanSet() {
			val.SetFloat(float64(v))
		}

	case FieldBool:
		v := val.Bool()
		if imgui.Checkbox(label, &v) && val.CanSet() {
			val.SetBool(v)
		}

	case FieldString:
		v := val.String()
		imgui.Text(label + ":")
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(id, "", &v, imgui.InputTextFlagsNone, nil) && val.CanSet() {
			val.SetString(v)
		}

	default:
		imgui.Text(fmt.Sprintf("%s: %s", label, describe(val)))
	}
}

func describe(val reflect.Value) string {
	switch val.Kind() {
	case reflect.Pointer:
		if val.IsNil() {
			return "nil"
		}
		return fmt.Sprintf("&%+v", val.Elem().Interface())
	case reflect.Slice, reflect.Map:
		return fmt.Sprintf("[%d items]", val.Len())
	}
	if stringer, ok := val.Interface().(fmt.Stringer); ok {
		return stringer.String()
	}
	return fmt.Sprintf("%v", val.Interface())
}
