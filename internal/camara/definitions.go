package camara

import (
	"net/http"

	"camara-gateway/internal/pipeline"
	"camara-gateway/internal/pipeline/dispatch"
)

// Definitions returns the full operation catalog, one pipeline Definition
// per exposed operation. Endpoint paths follow the backend's CAMARA-style
// layout; {sessionId} segments are filled from the merged payload.
func Definitions() []pipeline.Definition {
	return []pipeline.Definition{
		{
			Operation: OpCreateSession,
			Schema:    createSessionSchema(),
			Endpoint: dispatch.Endpoint{
				Method: http.MethodPost,
				Path:   "/apis/quality-on-demand/v1/sessions",
			},
			Variants: sessionVariants(),
		},
		{
			Operation: OpGetSession,
			Schema:    sessionIDSchema(OpGetSession),
			Endpoint: dispatch.Endpoint{
				Method: http.MethodGet,
				Path:   "/apis/quality-on-demand/v1/sessions/{sessionId}",
			},
			Variants: sessionVariants(),
		},
		{
			Operation: OpDeleteSession,
			Schema:    sessionIDSchema(OpDeleteSession),
			Endpoint: dispatch.Endpoint{
				Method: http.MethodDelete,
				Path:   "/apis/quality-on-demand/v1/sessions/{sessionId}",
			},
			Variants: deleteSessionVariants(),
		},
		{
			Operation: OpGetLocation,
			Schema:    deviceIDSchema(OpGetLocation),
			Endpoint: dispatch.Endpoint{
				Method: http.MethodGet,
				Path:   "/apis/device-location/v1/location",
			},
			Variants: locationVariants(),
		},
		{
			Operation: OpSendSMS,
			Schema:    sendSMSSchema(),
			Endpoint: dispatch.Endpoint{
				Method: http.MethodPost,
				Path:   "/apis/sms-messaging/v1/send",
			},
			Variants: smsVariants(),
		},
		{
			Operation: OpCheckReachability,
			Schema:    deviceIDSchema(OpCheckReachability),
			Endpoint: dispatch.Endpoint{
				Method: http.MethodGet,
				Path:   "/apis/device-reachability/v1/check",
			},
			Variants: reachabilityVariants(),
		},
		{
			Operation: OpVerifyNumber,
			Schema:    verifyNumberSchema(),
			Endpoint: dispatch.Endpoint{
				Method: http.MethodGet,
				Path:   "/apis/number-verification/v1/verify",
			},
			Variants: verificationVariants(),
		},
		{
			Operation: OpGetAppDefinitions,
			Schema:    emptySchema(OpGetAppDefinitions),
			Endpoint: dispatch.Endpoint{
				Method:        http.MethodGet,
				Path:          "/apps",
				WrapListField: "applications",
			},
			Variants:  appDefinitionsVariants(),
			Cacheable: true,
		},
		{
			Operation: OpGetCatalog,
			Schema:    emptySchema(OpGetCatalog),
			Endpoint: dispatch.Endpoint{
				Method: http.MethodGet,
				Path:   "/catalog",
			},
			Variants:  catalogVariants(),
			Cacheable: true,
		},
	}
}
