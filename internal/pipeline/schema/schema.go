// Package schema implements the typed validation stage of the translation
// pipeline: raw untyped input is checked against a declared OperationSchema
// and re-shaped into a ValidatedRequest carrying per-field provenance.
package schema

import (
	"math"

	commonerrors "camara-gateway/internal/common/errors"
)

// Kind is the semantic type of a declared field.
type Kind string

const (
	KindString  Kind = "string"
	KindInteger Kind = "integer"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindObject  Kind = "object"
	KindArray   Kind = "array"
)

// FieldSpec declares one field of an operation.
type FieldSpec struct {
	Name     string
	Kind     Kind
	Required bool
	Enum     []string

	// Schema is an optional JSON Schema fragment applied to object kinds
	// for structural validation of their interior.
	Schema map[string]interface{}

	// Fields lists declared sub-fields for object kinds. When non-empty,
	// the object's value is tracked as a nested three-state field map and
	// undeclared sub-keys are dropped.
	Fields []FieldSpec
}

// Rule is a named pure predicate over the full validated field set,
// evaluated after all per-field checks pass. A nil result means satisfied.
type Rule struct {
	Name  string
	Check func(fields map[string]Field) *commonerrors.PipelineError
}

// OperationSchema is the named, versioned field declaration for one operation.
type OperationSchema struct {
	Operation string
	Version   string
	Fields    []FieldSpec
	Rules     []Rule
}

// FieldNames returns the declared field names in declaration order.
func (s OperationSchema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// ExactlyOneOf builds the canonical identifier rule: across the designated
// set of mutually exclusive fields, exactly one must be present and
// non-null. The set is inspected inside the named object field, or at the
// top level when objectField is empty.
func ExactlyOneOf(objectField string, set []string) Rule {
	return Rule{
		Name: "exactly-one-of",
		Check: func(fields map[string]Field) *commonerrors.PipelineError {
			scope := fields
			if objectField != "" {
				parent, ok := fields[objectField]
				if !ok || parent.Presence != PresenceValue {
					// Absent parent object is the required-field check's
					// problem, not this rule's.
					return nil
				}
				nested, ok := parent.Value.(map[string]Field)
				if !ok {
					return nil
				}
				scope = nested
			}

			present := 0
			for _, name := range set {
				if f, ok := scope[name]; ok && f.Presence == PresenceValue {
					present++
				}
			}
			if present != 1 {
				return commonerrors.NewAmbiguousIdentifierError(set, present)
			}
			return nil
		},
	}
}

// MatchesKind reports whether a decoded JSON value satisfies the declared
// kind without coercion. Numeric text never counts as a number, and a float
// with a fractional part never counts as an integer.
func MatchesKind(value interface{}, kind Kind) bool {
	switch kind {
	case KindString:
		_, ok := value.(string)
		return ok
	case KindInteger:
		switch n := value.(type) {
		case int, int32, int64:
			return true
		case float64:
			return n == math.Trunc(n)
		}
		return false
	case KindNumber:
		switch value.(type) {
		case int, int32, int64, float64:
			return true
		}
		return false
	case KindBoolean:
		_, ok := value.(bool)
		return ok
	case KindObject:
		_, ok := value.(map[string]interface{})
		return ok
	case KindArray:
		_, ok := value.([]interface{})
		return ok
	}
	return false
}
