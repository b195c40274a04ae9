package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "camara-gateway/internal/common/errors"
	"camara-gateway/internal/common/logger"
	"camara-gateway/internal/pipeline/dispatch"
	"camara-gateway/internal/pipeline/response"
	"camara-gateway/internal/pipeline/schema"
	"camara-gateway/internal/pipeline/template"
)

// ==========================
// Test Helper Functions
// ==========================

func createSessionDefinition() Definition {
	return Definition{
		Operation: "create-session",
		Schema: schema.OperationSchema{
			Operation: "create-session",
			Fields: []schema.FieldSpec{
				{
					Name:     "device",
					Kind:     schema.KindObject,
					Required: true,
					Fields: []schema.FieldSpec{
						{Name: "phoneNumber", Kind: schema.KindString},
						{Name: "ipv4Address", Kind: schema.KindObject},
					},
				},
				{Name: "qosProfile", Kind: schema.KindString, Required: true},
				{Name: "duration", Kind: schema.KindInteger, Required: true},
			},
			Rules: []schema.Rule{
				schema.ExactlyOneOf("device", []string{"phoneNumber", "ipv4Address"}),
			},
		},
		Endpoint: dispatch.Endpoint{
			Method: http.MethodPost,
			Path:   "/apis/quality-on-demand/v1/sessions",
		},
		Variants: []response.Variant{
			{
				Name: "session-full",
				Required: []response.FieldSpec{
					{Name: "sessionId", Kind: schema.KindString},
					{Name: "device", Kind: schema.KindObject},
					{Name: "qosProfile", Kind: schema.KindString},
					{Name: "duration", Kind: schema.KindInteger},
					{Name: "qosStatus", Kind: schema.KindString},
				},
			},
			{
				Name: "session-minimal",
				Required: []response.FieldSpec{
					{Name: "sessionId", Kind: schema.KindString},
					{Name: "qosStatus", Kind: schema.KindString},
				},
			},
		},
	}
}

func createSessionTemplate() template.Template {
	return template.Template{
		"device":     map[string]interface{}{},
		"qosProfile": "{{qosProfile}}",
		"duration":   "{{duration}}",
	}
}

func newTestPipeline(t *testing.T, backend *httptest.Server) *Pipeline {
	t.Helper()
	d := dispatch.NewDispatcher(backend.URL, 2*time.Second, logger.NewNoOpLogger())
	return New(createSessionDefinition(), createSessionTemplate(), d, nil, logger.NewTestLogger(t))
}

// ==========================
// End-to-End Pipeline Tests
// ==========================

func TestExecute_HappyPath(t *testing.T) {
	var gotBody map[string]interface{}

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"sessionId": "abc123", "qosStatus": "active"}`))
	}))
	defer backend.Close()

	p := newTestPipeline(t, backend)
	typed, err := p.Execute(context.Background(), map[string]interface{}{
		"device":     map[string]interface{}{"phoneNumber": "+123456789"},
		"qosProfile": "voice",
		"duration":   float64(3600),
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]interface{}{
		"device":     map[string]interface{}{"phoneNumber": "+123456789"},
		"qosProfile": "voice",
		"duration":   float64(3600),
	}, gotBody)

	assert.Equal(t, "session-minimal", typed.Variant)
	assert.Equal(t, map[string]interface{}{
		"sessionId": "abc123",
		"qosStatus": "active",
	}, typed.Fields)
}

func TestExecute_ValidationFailureNeverReachesBackend(t *testing.T) {
	var requests int64
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&requests, 1)
	}))
	defer backend.Close()

	p := newTestPipeline(t, backend)

	tests := []struct {
		name     string
		input    map[string]interface{}
		wantCode commonerrors.ErrorCode
	}{
		{
			name: "missing required field",
			input: map[string]interface{}{
				"device":     map[string]interface{}{"phoneNumber": "+123456789"},
				"qosProfile": "voice",
			},
			wantCode: commonerrors.ErrCodeMissingField,
		},
		{
			name: "type mismatch",
			input: map[string]interface{}{
				"device":     map[string]interface{}{"phoneNumber": "+123456789"},
				"qosProfile": "voice",
				"duration":   "3600",
			},
			wantCode: commonerrors.ErrCodeTypeMismatch,
		},
		{
			name: "ambiguous device identifiers",
			input: map[string]interface{}{
				"device": map[string]interface{}{
					"phoneNumber": "+123456789",
					"ipv4Address": map[string]interface{}{"publicAddress": "1.2.3.4", "publicPort": float64(80)},
				},
				"qosProfile": "voice",
				"duration":   float64(3600),
			},
			wantCode: commonerrors.ErrCodeAmbiguousIdentifier,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Execute(context.Background(), tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, commonerrors.CodeOf(err))
		})
	}

	assert.Zero(t, atomic.LoadInt64(&requests), "rejected inputs must produce no backend traffic")
}

func TestExecute_BackendRejectionSurfaces(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error": "unknown qosProfile"}`))
	}))
	defer backend.Close()

	p := newTestPipeline(t, backend)
	_, err := p.Execute(context.Background(), map[string]interface{}{
		"device":     map[string]interface{}{"phoneNumber": "+123456789"},
		"qosProfile": "bogus",
		"duration":   float64(3600),
	})

	var perr *commonerrors.PipelineError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, commonerrors.ErrCodeBackendRejected, perr.Code)
	assert.Equal(t, http.StatusUnprocessableEntity, perr.Status)
	assert.Contains(t, perr.Body, "unknown qosProfile")
}

func TestExecute_UnrecognizedShapeFails(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"totally": "unexpected"}`))
	}))
	defer backend.Close()

	p := newTestPipeline(t, backend)
	_, err := p.Execute(context.Background(), map[string]interface{}{
		"device":     map[string]interface{}{"phoneNumber": "+123456789"},
		"qosProfile": "voice",
		"duration":   float64(3600),
	})

	require.Error(t, err)
	assert.Equal(t, commonerrors.ErrCodeUnrecognizedShape, commonerrors.CodeOf(err))
}

func TestExecute_FullVariantPreferred(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"sessionId": "abc123",
			"device": {"phoneNumber": "+123456789"},
			"qosProfile": "voice",
			"duration": 3600,
			"qosStatus": "active"
		}`))
	}))
	defer backend.Close()

	p := newTestPipeline(t, backend)
	typed, err := p.Execute(context.Background(), map[string]interface{}{
		"device":     map[string]interface{}{"phoneNumber": "+123456789"},
		"qosProfile": "voice",
		"duration":   float64(3600),
	})
	require.NoError(t, err)
	assert.Equal(t, "session-full", typed.Variant)
}
