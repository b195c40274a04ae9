// Package dispatch implements the wire stage of the translation pipeline:
// exactly one outbound backend call per invocation, with the failure
// classified into the pipeline error taxonomy.
package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	commonerrors "camara-gateway/internal/common/errors"
	commonhttp "camara-gateway/internal/common/http"
	"camara-gateway/internal/common/logger"
	"camara-gateway/internal/common/metrics"
)

// Endpoint describes one operation's backend target. Path segments of the
// form {field} are filled from the merged payload; the consumed field is
// removed from the body/query.
type Endpoint struct {
	Method string
	Path   string

	// WrapListField, when set, wraps a top-level JSON array response into
	// an object under this key so the typer always sees an object.
	WrapListField string
}

// Dispatcher sends merged payloads to the backend. The only shared resource
// underneath is the process-wide HTTP connection pool, safe for concurrent
// use; the dispatcher itself keeps no per-call state.
type Dispatcher struct {
	client  *commonhttp.Client
	baseURL string
	logger  logger.Logger
}

func NewDispatcher(baseURL string, timeout time.Duration, log logger.Logger) *Dispatcher {
	return &Dispatcher{
		client:  commonhttp.NewClient(timeout),
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  log,
	}
}

// Dispatch performs the single backend call for one pipeline invocation and
// returns the decoded JSON response. A 204 reply yields an empty object.
func (d *Dispatcher) Dispatch(ctx context.Context, operation string, ep Endpoint, payload map[string]interface{}) (map[string]interface{}, error) {
	remaining := make(map[string]interface{}, len(payload))
	for k, v := range payload {
		remaining[k] = v
	}

	path, err := fillPathParams(operation, ep.Path, remaining)
	if err != nil {
		return nil, err
	}

	req, err := d.buildRequest(ctx, operation, ep.Method, path, remaining)
	if err != nil {
		return nil, err
	}

	resp, err := d.client.Do(req)
	if err != nil {
		// Caller-initiated cancellation is not a backend failure.
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(ctxErr, context.Canceled) {
			return nil, ctxErr
		}
		return nil, commonerrors.NewTransportError(operation, err)
	}
	defer resp.Body.Close()

	metrics.BackendRequests.WithLabelValues(operation, strconv.Itoa(resp.StatusCode)).Inc()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, commonerrors.NewTransportError(operation, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		d.logger.Warn("backend rejected request", map[string]interface{}{
			"operation": operation,
			"status":    resp.StatusCode,
		})
		return nil, commonerrors.NewBackendError(operation, resp.StatusCode, string(body))
	}

	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(body)) == 0 {
		return map[string]interface{}{}, nil
	}

	return decodeResponse(operation, body, ep.WrapListField)
}

func (d *Dispatcher) buildRequest(ctx context.Context, operation, method, path string, payload map[string]interface{}) (*http.Request, error) {
	target := d.baseURL + path

	var bodyReader io.Reader
	switch method {
	case http.MethodGet, http.MethodDelete:
		if len(payload) > 0 {
			q := url.Values{}
			for k, v := range payload {
				q.Set(k, queryValue(v))
			}
			target += "?" + q.Encode()
		}
	default:
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, commonerrors.NewTransportError(operation, fmt.Errorf("encode payload: %w", err))
		}
		bodyReader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return nil, commonerrors.NewTransportError(operation, err)
	}
	req.Header.Set("Accept", "application/json")
	if bodyReader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// fillPathParams substitutes {field} segments from the payload, consuming
// each used field so it does not also appear on the wire.
func fillPathParams(operation, path string, payload map[string]interface{}) (string, error) {
	var missing []string
	for {
		start := strings.Index(path, "{")
		if start < 0 {
			break
		}
		end := strings.Index(path[start:], "}")
		if end < 0 {
			break
		}
		name := path[start+1 : start+end]
		value, ok := payload[name]
		if !ok || value == nil {
			missing = append(missing, name)
			break
		}
		delete(payload, name)
		path = path[:start] + url.PathEscape(queryValue(value)) + path[start+end+1:]
	}
	if len(missing) > 0 {
		return "", commonerrors.NewTemplateIncompleteError(operation, missing)
	}
	return path, nil
}

func queryValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		// Render integral floats without the trailing ".0" JSON decoding adds.
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

func decodeResponse(operation string, body []byte, wrapListField string) (map[string]interface{}, error) {
	var decoded interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, commonerrors.NewMalformedResponseError(operation, err)
	}

	switch v := decoded.(type) {
	case map[string]interface{}:
		return v, nil
	case []interface{}:
		if wrapListField != "" {
			return map[string]interface{}{wrapListField: v}, nil
		}
		return nil, commonerrors.NewMalformedResponseError(operation, fmt.Errorf("unexpected top-level JSON array"))
	default:
		return nil, commonerrors.NewMalformedResponseError(operation, fmt.Errorf("unexpected top-level JSON value %T", decoded))
	}
}
