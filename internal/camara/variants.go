package camara

import (
	"camara-gateway/internal/pipeline/response"
	"camara-gateway/internal/pipeline/schema"
)

// sessionVariants orders the QoD session shapes most-specific first: a
// response satisfying both is typed as the full session.
func sessionVariants() []response.Variant {
	return []response.Variant{
		{
			Name: "session-full",
			Required: []response.FieldSpec{
				{Name: "sessionId", Kind: schema.KindString},
				{Name: "device", Kind: schema.KindObject},
				{Name: "applicationServer", Kind: schema.KindObject},
				{Name: "qosProfile", Kind: schema.KindString},
				{Name: "duration", Kind: schema.KindInteger},
				{Name: "qosStatus", Kind: schema.KindString},
			},
			Optional: []response.FieldSpec{
				{Name: "devicePorts", Kind: schema.KindObject},
				{Name: "applicationServerPorts", Kind: schema.KindObject},
				{Name: "sink", Kind: schema.KindString},
				{Name: "sinkCredential", Kind: schema.KindObject},
				{Name: "startedAt", Kind: schema.KindString},
				{Name: "expiresAt", Kind: schema.KindString},
			},
		},
		{
			Name: "session-minimal",
			Required: []response.FieldSpec{
				{Name: "sessionId", Kind: schema.KindString},
				{Name: "qosStatus", Kind: schema.KindString},
			},
		},
	}
}

// deleteSessionVariants accepts either a released-session body or an empty
// 204 reply. The terminal variant has no required fields and therefore
// matches anything, which is the intended fallback for a bare 204.
func deleteSessionVariants() []response.Variant {
	return []response.Variant{
		{
			Name: "session-released",
			Required: []response.FieldSpec{
				{Name: "sessionId", Kind: schema.KindString},
				{Name: "status", Kind: schema.KindString},
			},
			Optional: []response.FieldSpec{
				{Name: "releasedAt", Kind: schema.KindString},
			},
		},
		{
			Name: "delete-accepted",
		},
	}
}

func locationVariants() []response.Variant {
	return []response.Variant{
		{
			Name: "location",
			Required: []response.FieldSpec{
				{Name: "deviceId", Kind: schema.KindString},
				{Name: "latitude", Kind: schema.KindNumber},
				{Name: "longitude", Kind: schema.KindNumber},
			},
			Optional: []response.FieldSpec{
				{Name: "timestamp", Kind: schema.KindString},
			},
		},
	}
}

func smsVariants() []response.Variant {
	return []response.Variant{
		{
			Name: "sms-delivery",
			Required: []response.FieldSpec{
				{Name: "messageId", Kind: schema.KindString},
				{Name: "status", Kind: schema.KindString},
			},
			Optional: []response.FieldSpec{
				{Name: "to", Kind: schema.KindString},
				{Name: "content", Kind: schema.KindString},
			},
		},
	}
}

func reachabilityVariants() []response.Variant {
	return []response.Variant{
		{
			Name: "reachability",
			Required: []response.FieldSpec{
				{Name: "deviceId", Kind: schema.KindString},
				{Name: "reachable", Kind: schema.KindBoolean},
			},
			Optional: []response.FieldSpec{
				{Name: "checkedAt", Kind: schema.KindString},
			},
		},
	}
}

func verificationVariants() []response.Variant {
	return []response.Variant{
		{
			Name: "verification",
			Required: []response.FieldSpec{
				{Name: "phoneNumber", Kind: schema.KindString},
				{Name: "verified", Kind: schema.KindBoolean},
			},
			Optional: []response.FieldSpec{
				{Name: "method", Kind: schema.KindString},
				{Name: "verifiedAt", Kind: schema.KindString},
			},
		},
	}
}

func appDefinitionsVariants() []response.Variant {
	return []response.Variant{
		{
			Name: "app-definitions",
			Required: []response.FieldSpec{
				{Name: "applications", Kind: schema.KindArray},
			},
		},
	}
}

func catalogVariants() []response.Variant {
	return []response.Variant{
		{
			Name: "catalog",
			Required: []response.FieldSpec{
				{Name: "services", Kind: schema.KindArray},
			},
		},
	}
}
