// Package response implements the final stage of the translation pipeline:
// the backend's raw JSON reply is classified against an ordered list of
// declared variants and re-typed into the first full match.
package response

import (
	commonerrors "camara-gateway/internal/common/errors"
	"camara-gateway/internal/pipeline/schema"
)

// FieldSpec declares one field of a response variant.
type FieldSpec struct {
	Name string
	Kind schema.Kind
}

// Variant is one possible typed shape of a backend response. Variants are
// registered most-specific first; when a response satisfies several, the
// richer interpretation wins by ordering.
type Variant struct {
	Name     string
	Required []FieldSpec
	Optional []FieldSpec
}

// Matches reports whether every required field is present, non-null and
// kind-correct in the raw response.
func (v Variant) Matches(raw map[string]interface{}) bool {
	for _, spec := range v.Required {
		value, ok := raw[spec.Name]
		if !ok || value == nil {
			return false
		}
		if !schema.MatchesKind(value, spec.Kind) {
			return false
		}
	}
	return true
}

// TypedResponse is the shaped result handed back to the caller. Ownership
// transfers fully: the field map is a private copy of the raw response.
type TypedResponse struct {
	Operation string                 `json:"operation"`
	Variant   string                 `json:"variant"`
	Fields    map[string]interface{} `json:"fields"`
}

// Type selects the first variant (in registration order) whose required
// fields are all satisfied by the raw response, and projects the response
// onto that variant's declared fields. Unknown backend fields are dropped
// silently. No match is fatal for the call.
func Type(operation string, raw map[string]interface{}, variants []Variant) (*TypedResponse, error) {
	for _, variant := range variants {
		if !variant.Matches(raw) {
			continue
		}
		return &TypedResponse{
			Operation: operation,
			Variant:   variant.Name,
			Fields:    project(raw, variant),
		}, nil
	}

	names := make([]string, len(variants))
	for i, v := range variants {
		names[i] = v.Name
	}
	return nil, commonerrors.NewUnrecognizedResponseShapeError(operation, names)
}

// project copies only the variant's declared fields out of the raw response.
func project(raw map[string]interface{}, variant Variant) map[string]interface{} {
	out := make(map[string]interface{})
	for _, spec := range variant.Required {
		out[spec.Name] = copyValue(raw[spec.Name])
	}
	for _, spec := range variant.Optional {
		if value, ok := raw[spec.Name]; ok {
			out[spec.Name] = copyValue(value)
		}
	}
	return out
}

func copyValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		cp := make(map[string]interface{}, len(val))
		for k, item := range val {
			cp[k] = copyValue(item)
		}
		return cp
	case []interface{}:
		cp := make([]interface{}, len(val))
		for i, item := range val {
			cp[i] = copyValue(item)
		}
		return cp
	default:
		return val
	}
}
