package schema

// Widget hints tell the canvas which input control to generate for a field.
const (
	WidgetText     = "text"
	WidgetTextarea = "textarea"
	WidgetSelect   = "select"
	WidgetCheckbox = "checkbox"
	WidgetNumber   = "number"
	WidgetList     = "list"
)

// Field couples a value type with its widget hint and optional metadata.
type Field struct {
	Type     Type
	Widget   string
	Required bool
	Default  any
}

// WidgetFor returns the default widget for a type, used when a field
// declares no explicit hint.
func WidgetFor(t Type) string {
	switch t.(type) {
	case *BoolType:
		return WidgetCheckbox
	case *IntType, *FloatType:
		return WidgetNumber
	case *SliceType:
		return WidgetList
	case *EnumType:
		return WidgetSelect
	default:
		return WidgetText
	}
}

// Describe flattens a schema into a canvas-consumable description:
// field name -> {type, widget, required, default, options}.
func Describe(s Schema) map[string]map[string]any {
	out := make(map[string]map[string]any, len(s))
	for name, f := range s {
		widget := f.Widget
		if widget == "" {
			widget = WidgetFor(f.Type)
		}
		desc := map[string]any{
			"type":     f.Type.Name(),
			"widget":   widget,
			"required": f.Required,
		}
		if f.Default != nil {
			desc["default"] = f.Default
		}
		if enum, ok := f.Type.(*EnumType); ok {
			desc["options"] = enum.Options()
		}
		out[name] = desc
	}
	return out
}
