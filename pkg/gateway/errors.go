package gateway

import "errors"

// ErrModelUnavailable marks the distinguished "entity not found /
// unauthorized" failure: the selected credential cannot reach the requested
// model (404, 403, PERMISSION_DENIED). Callers treat it as actionable;
// every other Gateway failure is generic.
var ErrModelUnavailable = errors.New("gateway: model unavailable for selected credential")

func IsModelUnavailable(err error) bool {
	return errors.Is(err, ErrModelUnavailable)
}
