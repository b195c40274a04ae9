package schema

import (
	"fmt"
	"time"

	"github.com/xeipuuv/gojsonschema"

	commonerrors "camara-gateway/internal/common/errors"
)

// Validate checks raw untyped input against an OperationSchema and produces
// a ValidatedRequest, or a ValidationErrors listing every violated rule.
// Pure function of its inputs; no side effects.
//
// Undeclared top-level fields are dropped: a ValidatedRequest's fields are
// always a subset of the schema's declared fields.
func Validate(raw map[string]interface{}, s OperationSchema) (*ValidatedRequest, error) {
	var errs commonerrors.ValidationErrors

	fields := make(map[string]Field, len(s.Fields))
	for _, spec := range s.Fields {
		value, present := raw[spec.Name]

		if !present {
			if spec.Required {
				errs = append(errs, commonerrors.NewMissingFieldError(spec.Name))
				continue
			}
			fields[spec.Name] = Field{Presence: PresenceUnset}
			continue
		}

		if value == nil {
			if spec.Required {
				errs = append(errs, commonerrors.NewTypeMismatchError(spec.Name, string(spec.Kind), nil))
				continue
			}
			fields[spec.Name] = Field{Presence: PresenceNull}
			continue
		}

		field, fieldErrs := validateValue(spec.Name, value, spec)
		if len(fieldErrs) > 0 {
			errs = append(errs, fieldErrs...)
			continue
		}
		fields[spec.Name] = field
	}

	// Cross-field rules run only once every per-field check passed.
	if len(errs) == 0 {
		for _, rule := range s.Rules {
			if ruleErr := rule.Check(fields); ruleErr != nil {
				errs = append(errs, ruleErr)
			}
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return &ValidatedRequest{Operation: s.Operation, Fields: fields}, nil
}

func validateValue(name string, value interface{}, spec FieldSpec) (Field, commonerrors.ValidationErrors) {
	var errs commonerrors.ValidationErrors

	if !MatchesKind(value, spec.Kind) {
		errs = append(errs, commonerrors.NewTypeMismatchError(name, string(spec.Kind), value))
		return Field{}, errs
	}

	if len(spec.Enum) > 0 {
		strVal, _ := value.(string)
		found := false
		for _, allowed := range spec.Enum {
			if strVal == allowed {
				found = true
				break
			}
		}
		if !found {
			errs = append(errs, &commonerrors.PipelineError{
				Code:      commonerrors.ErrCodeTypeMismatch,
				Message:   fmt.Sprintf("value %q is not one of %v", strVal, spec.Enum),
				Field:     name,
				Retryable: false,
				Timestamp: time.Now().UTC(),
			})
			return Field{}, errs
		}
	}

	if spec.Kind == KindObject {
		objVal := value.(map[string]interface{})

		if len(spec.Schema) > 0 {
			if schemaErrs := validateAgainstJSONSchema(name, objVal, spec.Schema); len(schemaErrs) > 0 {
				return Field{}, schemaErrs
			}
		}

		if len(spec.Fields) > 0 {
			nested := make(map[string]Field, len(spec.Fields))
			for _, sub := range spec.Fields {
				subVal, subPresent := objVal[sub.Name]
				switch {
				case !subPresent:
					if sub.Required {
						errs = append(errs, commonerrors.NewMissingFieldError(name+"."+sub.Name))
						continue
					}
					nested[sub.Name] = Field{Presence: PresenceUnset}
				case subVal == nil:
					if sub.Required {
						errs = append(errs, commonerrors.NewTypeMismatchError(name+"."+sub.Name, string(sub.Kind), nil))
						continue
					}
					nested[sub.Name] = Field{Presence: PresenceNull}
				default:
					subField, subErrs := validateValue(name+"."+sub.Name, subVal, sub)
					if len(subErrs) > 0 {
						errs = append(errs, subErrs...)
						continue
					}
					// Key nested fields by their local name; the dotted
					// path is only for error reporting.
					nested[sub.Name] = subField
				}
			}
			if len(errs) > 0 {
				return Field{}, errs
			}
			return Field{Presence: PresenceValue, Value: nested}, nil
		}
	}

	return Field{Presence: PresenceValue, Value: value}, nil
}

// validateAgainstJSONSchema applies a declared JSON Schema fragment to an
// object value and maps each violation onto the pipeline error taxonomy.
func validateAgainstJSONSchema(name string, value map[string]interface{}, fragment map[string]interface{}) commonerrors.ValidationErrors {
	schemaLoader := gojsonschema.NewGoLoader(fragment)
	documentLoader := gojsonschema.NewGoLoader(value)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return commonerrors.ValidationErrors{{
			Code:      commonerrors.ErrCodeTypeMismatch,
			Message:   fmt.Sprintf("schema validation error: %v", err),
			Field:     name,
			Retryable: false,
			Timestamp: time.Now().UTC(),
		}}
	}
	if result.Valid() {
		return nil
	}

	errs := make(commonerrors.ValidationErrors, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		field := name
		if desc.Field() != "(root)" {
			field = name + "." + desc.Field()
		}
		errs = append(errs, &commonerrors.PipelineError{
			Code:      commonerrors.ErrCodeTypeMismatch,
			Message:   desc.Description(),
			Field:     field,
			Retryable: false,
			Timestamp: time.Now().UTC(),
		})
	}
	return errs
}
