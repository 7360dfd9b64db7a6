package widgets

import "strings"

// AddFieldClass appends the field CSS classes: `<type>-field`, `required`
// for required fields and `error` when the request carries errors for the
// field. Repeated calls do not duplicate classes.
func (w *SelectWidget) AddFieldClass() {
	classes := append([]string(nil), w.Classes...)
	if kind := strings.TrimSpace(string(w.field.Type)); kind != "" {
		classes = append(classes, strings.ToLower(kind)+"-field")
	}
	if w.Required {
		classes = append(classes, "required")
	}
	if len(w.request.FieldErrors(w.field.Name)) > 0 {
		classes = append(classes, "error")
	}
	w.Classes = mergeClasses(classes)
}

func mergeClasses(classes []string) []string {
	seen := make(map[string]struct{}, len(classes))
	out := make([]string, 0, len(classes))
	for _, class := range classes {
		class = strings.TrimSpace(class)
		if class == "" {
			continue
		}
		if _, ok := seen[class]; ok {
			continue
		}
		seen[class] = struct{}{}
		out = append(out, class)
	}
	return out
}
