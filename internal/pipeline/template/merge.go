package template

import (
	"sort"
	"strings"

	commonerrors "camara-gateway/internal/common/errors"
	"camara-gateway/internal/pipeline/schema"
)

// Merge projects a ValidatedRequest onto its operation's template and
// returns the merged payload. The template itself is never mutated.
//
// Merge rules, applied recursively at every nesting level:
//   - a field marked present (value or explicit null) overwrites its slot;
//   - an absent field leaves the slot untouched, so a template default
//     survives and a slot-less key never appears in the output at all;
//   - a "{{placeholder}}" slot still unfilled after the merge is a
//     TemplateIncompleteError.
//
// Merging the same request into the same template twice yields identical
// payloads; there is no hidden state.
func Merge(operation string, tpl Template, req *schema.ValidatedRequest) (map[string]interface{}, error) {
	if tpl == nil {
		return nil, commonerrors.NewTemplateNotFoundError(operation)
	}

	payload := deepCopy(map[string]interface{}(tpl))
	mergeFields(payload, req.Fields)

	if unfilled := findPlaceholders("", payload); len(unfilled) > 0 {
		return nil, commonerrors.NewTemplateIncompleteError(operation, unfilled)
	}

	return payload, nil
}

func mergeFields(dst map[string]interface{}, fields map[string]schema.Field) {
	for name, field := range fields {
		switch field.Presence {
		case schema.PresenceUnset:
			// Untouched: the template default, if any, stands.
		case schema.PresenceNull:
			dst[name] = nil
		case schema.PresenceValue:
			if nested, ok := field.Value.(map[string]schema.Field); ok {
				slot, hasSlot := dst[name].(map[string]interface{})
				if !hasSlot {
					slot = make(map[string]interface{})
				} else {
					slot = deepCopy(slot)
				}
				mergeFields(slot, nested)
				dst[name] = slot
				continue
			}
			dst[name] = field.Value
		}
	}
}

// findPlaceholders collects the paths of residual {{...}} markers.
func findPlaceholders(prefix string, value interface{}) []string {
	var found []string

	switch v := value.(type) {
	case string:
		if isPlaceholder(v) {
			found = append(found, prefix+":"+v)
		}
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			path := k
			if prefix != "" {
				path = prefix + "." + k
			}
			found = append(found, findPlaceholders(path, v[k])...)
		}
	case []interface{}:
		for _, item := range v {
			found = append(found, findPlaceholders(prefix+"[]", item)...)
		}
	}

	return found
}

func isPlaceholder(s string) bool {
	return len(s) > 4 && strings.HasPrefix(s, "{{") && strings.HasSuffix(s, "}}")
}

func deepCopy(src map[string]interface{}) map[string]interface{} {
	dst := make(map[string]interface{}, len(src))
	for k, v := range src {
		dst[k] = deepCopyValue(v)
	}
	return dst
}

func deepCopyValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		return deepCopy(val)
	case []interface{}:
		cp := make([]interface{}, len(val))
		for i, item := range val {
			cp[i] = deepCopyValue(item)
		}
		return cp
	default:
		return val
	}
}
