package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "camara-gateway/internal/common/errors"
	"camara-gateway/internal/pipeline/schema"
)

// ==========================
// Test Helper Functions
// ==========================

func sessionVariants() []Variant {
	return []Variant{
		{
			Name: "session-full",
			Required: []FieldSpec{
				{Name: "sessionId", Kind: schema.KindString},
				{Name: "device", Kind: schema.KindObject},
				{Name: "qosProfile", Kind: schema.KindString},
				{Name: "duration", Kind: schema.KindInteger},
				{Name: "qosStatus", Kind: schema.KindString},
			},
			Optional: []FieldSpec{
				{Name: "startedAt", Kind: schema.KindString},
			},
		},
		{
			Name: "session-minimal",
			Required: []FieldSpec{
				{Name: "sessionId", Kind: schema.KindString},
				{Name: "qosStatus", Kind: schema.KindString},
			},
		},
	}
}

// ==========================
// Variant Selection Tests
// ==========================

func TestType_MinimalMatch(t *testing.T) {
	raw := map[string]interface{}{
		"sessionId": "abc123",
		"qosStatus": "active",
	}

	typed, err := Type("create-session", raw, sessionVariants())
	require.NoError(t, err)

	assert.Equal(t, "create-session", typed.Operation)
	assert.Equal(t, "session-minimal", typed.Variant)
	assert.Equal(t, raw, typed.Fields)
}

func TestType_FullWinsOverMinimal(t *testing.T) {
	// Satisfies both variants; ordering must pick the richer one.
	raw := map[string]interface{}{
		"sessionId":  "abc123",
		"device":     map[string]interface{}{"phoneNumber": "+123456789"},
		"qosProfile": "voice",
		"duration":   float64(3600),
		"qosStatus":  "active",
		"startedAt":  "2025-01-01T00:00:00Z",
	}

	typed, err := Type("create-session", raw, sessionVariants())
	require.NoError(t, err)

	assert.Equal(t, "session-full", typed.Variant)
	assert.Equal(t, "2025-01-01T00:00:00Z", typed.Fields["startedAt"])
}

func TestType_NullRequiredFieldDoesNotMatch(t *testing.T) {
	raw := map[string]interface{}{
		"sessionId":  "abc123",
		"device":     nil,
		"qosProfile": "voice",
		"duration":   float64(3600),
		"qosStatus":  "active",
	}

	typed, err := Type("create-session", raw, sessionVariants())
	require.NoError(t, err)
	assert.Equal(t, "session-minimal", typed.Variant)
}

func TestType_KindMismatchDoesNotMatch(t *testing.T) {
	raw := map[string]interface{}{
		"sessionId":  "abc123",
		"device":     map[string]interface{}{},
		"qosProfile": "voice",
		"duration":   "3600", // string, not integer
		"qosStatus":  "active",
	}

	typed, err := Type("create-session", raw, sessionVariants())
	require.NoError(t, err)
	assert.Equal(t, "session-minimal", typed.Variant)
}

func TestType_NoMatch(t *testing.T) {
	raw := map[string]interface{}{"unexpected": true}

	typed, err := Type("create-session", raw, sessionVariants())
	require.Error(t, err)
	assert.Nil(t, typed)

	var perr *commonerrors.PipelineError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, commonerrors.ErrCodeUnrecognizedShape, perr.Code)
}

func TestType_EmptyRequiredMatchesAnything(t *testing.T) {
	variants := []Variant{{Name: "delete-accepted"}}

	typed, err := Type("delete-session", map[string]interface{}{}, variants)
	require.NoError(t, err)
	assert.Equal(t, "delete-accepted", typed.Variant)
	assert.Empty(t, typed.Fields)
}

// ==========================
// Projection Tests
// ==========================

func TestType_DropsUndeclaredFields(t *testing.T) {
	raw := map[string]interface{}{
		"sessionId":     "abc123",
		"qosStatus":     "active",
		"internalDebug": "should not escape",
	}

	typed, err := Type("create-session", raw, sessionVariants())
	require.NoError(t, err)

	assert.NotContains(t, typed.Fields, "internalDebug")
	assert.Len(t, typed.Fields, 2)
}

func TestType_AbsentOptionalStaysAbsent(t *testing.T) {
	raw := map[string]interface{}{
		"sessionId":  "abc123",
		"device":     map[string]interface{}{},
		"qosProfile": "voice",
		"duration":   float64(3600),
		"qosStatus":  "active",
	}

	typed, err := Type("create-session", raw, sessionVariants())
	require.NoError(t, err)

	assert.Equal(t, "session-full", typed.Variant)
	_, present := typed.Fields["startedAt"]
	assert.False(t, present)
}

func TestType_FieldsAreCopies(t *testing.T) {
	device := map[string]interface{}{"phoneNumber": "+123456789"}
	raw := map[string]interface{}{
		"sessionId":  "abc123",
		"device":     device,
		"qosProfile": "voice",
		"duration":   float64(3600),
		"qosStatus":  "active",
	}

	typed, err := Type("create-session", raw, sessionVariants())
	require.NoError(t, err)

	typed.Fields["device"].(map[string]interface{})["phoneNumber"] = "mutated"
	assert.Equal(t, "+123456789", device["phoneNumber"], "typed response must not alias the raw response")
}
