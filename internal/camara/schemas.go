// Package camara declares the operation catalog the gateway exposes:
// per-operation input schemas, backend endpoints and response variants for
// the CAMARA-style network APIs.
package camara

import (
	"camara-gateway/internal/pipeline/schema"
)

// Operation names, as bound in the tool registry.
const (
	OpCreateSession     = "create-session"
	OpGetSession        = "get-session"
	OpDeleteSession     = "delete-session"
	OpGetLocation       = "get-location"
	OpSendSMS           = "send-sms"
	OpCheckReachability = "check-reachability"
	OpVerifyNumber      = "verify-number"
	OpGetAppDefinitions = "get-app-definitions"
	OpGetCatalog        = "get-catalog"
)

// DeviceIdentifiers is the mutually exclusive identifier set of a device
// object: exactly one must be present and non-null.
var DeviceIdentifiers = []string{
	"phoneNumber",
	"networkAccessIdentifier",
	"ipv4Address",
	"ipv6Address",
}

// deviceFieldSpec declares the device object shared by session operations.
// The ipv4Address interior is structurally checked via its JSON Schema
// fragment; the identifier sub-fields are tracked three-state so unset
// identifiers never reach the wire.
func deviceFieldSpec() schema.FieldSpec {
	return schema.FieldSpec{
		Name:     "device",
		Kind:     schema.KindObject,
		Required: true,
		Fields: []schema.FieldSpec{
			{Name: "phoneNumber", Kind: schema.KindString},
			{Name: "networkAccessIdentifier", Kind: schema.KindString},
			{
				Name: "ipv4Address",
				Kind: schema.KindObject,
				Schema: map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"publicAddress": map[string]interface{}{"type": "string"},
						"publicPort":    map[string]interface{}{"type": "integer"},
					},
					"required": []interface{}{"publicAddress", "publicPort"},
				},
			},
			{Name: "ipv6Address", Kind: schema.KindString},
		},
	}
}

func createSessionSchema() schema.OperationSchema {
	return schema.OperationSchema{
		Operation: OpCreateSession,
		Version:   "v1",
		Fields: []schema.FieldSpec{
			deviceFieldSpec(),
			{Name: "qosProfile", Kind: schema.KindString, Required: true},
			{Name: "duration", Kind: schema.KindInteger, Required: true},
		},
		Rules: []schema.Rule{
			schema.ExactlyOneOf("device", DeviceIdentifiers),
		},
	}
}

func sessionIDSchema(operation string) schema.OperationSchema {
	return schema.OperationSchema{
		Operation: operation,
		Version:   "v1",
		Fields: []schema.FieldSpec{
			{Name: "sessionId", Kind: schema.KindString, Required: true},
		},
	}
}

func deviceIDSchema(operation string) schema.OperationSchema {
	return schema.OperationSchema{
		Operation: operation,
		Version:   "v1",
		Fields: []schema.FieldSpec{
			{Name: "deviceId", Kind: schema.KindString, Required: true},
		},
	}
}

func sendSMSSchema() schema.OperationSchema {
	return schema.OperationSchema{
		Operation: OpSendSMS,
		Version:   "v1",
		Fields: []schema.FieldSpec{
			{Name: "to", Kind: schema.KindString, Required: true},
			{Name: "content", Kind: schema.KindString, Required: true},
		},
	}
}

func verifyNumberSchema() schema.OperationSchema {
	return schema.OperationSchema{
		Operation: OpVerifyNumber,
		Version:   "v1",
		Fields: []schema.FieldSpec{
			{Name: "phoneNumber", Kind: schema.KindString, Required: true},
		},
	}
}

func emptySchema(operation string) schema.OperationSchema {
	return schema.OperationSchema{
		Operation: operation,
		Version:   "v1",
	}
}
