package schema

// Presence is the three-state provenance of one input field. The distinction
// between an absent field and an explicit null survives into template
// merging, so it is carried explicitly rather than through a sentinel value.
type Presence int

const (
	PresenceUnset Presence = iota
	PresenceNull
	PresenceValue
)

func (p Presence) String() string {
	switch p {
	case PresenceNull:
		return "null"
	case PresenceValue:
		return "value"
	default:
		return "unset"
	}
}

// Field is one validated input field together with its provenance. For
// object kinds with declared sub-fields, Value holds a map[string]Field so
// the three-state rule applies at every nesting level.
type Field struct {
	Presence Presence
	Value    interface{}
}

// ValidatedRequest is the result of successfully validating raw input
// against an OperationSchema. Every field present satisfies its declared
// kind and every cross-field rule evaluated true.
type ValidatedRequest struct {
	Operation string
	Fields    map[string]Field
}

// Get returns the named field; absent names report PresenceUnset.
func (v *ValidatedRequest) Get(name string) Field {
	if f, ok := v.Fields[name]; ok {
		return f
	}
	return Field{Presence: PresenceUnset}
}

// IsSet reports whether the field carries a non-null value.
func (v *ValidatedRequest) IsSet(name string) bool {
	return v.Get(name).Presence == PresenceValue
}
