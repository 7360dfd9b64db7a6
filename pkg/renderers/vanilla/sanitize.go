package vanilla

// Keys holding translated text. Templates print them unescaped after they
// pass through the sanitizer policy.
var textKeys = map[string]struct{}{
	"content":       {},
	"title":         {},
	"contents":      {},
	"display_value": {},
}

func (r *Renderer) sanitizeData(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for key, value := range data {
		out[key] = r.sanitizeValue(key, value)
	}
	return out
}

func (r *Renderer) sanitizeValue(key string, value any) any {
	_, text := textKeys[key]
	switch typed := value.(type) {
	case string:
		if text {
			return r.policy.Sanitize(typed)
		}
		return typed
	case []string:
		if !text {
			return typed
		}
		out := make([]string, len(typed))
		for idx, item := range typed {
			out[idx] = r.policy.Sanitize(item)
		}
		return out
	case map[string]any:
		return r.sanitizeData(typed)
	case []map[string]any:
		out := make([]map[string]any, len(typed))
		for idx, item := range typed {
			out[idx] = r.sanitizeData(item)
		}
		return out
	default:
		return value
	}
}
