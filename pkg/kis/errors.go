package kis

import "github.com/pkg/errors"

// Failure taxonomy. Callers match with errors.Is; detail rides on the wrap
// message. None of these are retried inside this package.
var (
	// ErrAuth means token acquisition or refresh failed.
	ErrAuth = errors.New("kis: token acquisition failed")
	// ErrSign means the hashkey endpoint failed for a mutating payload.
	ErrSign = errors.New("kis: hashkey computation failed")
	// ErrUpstream means a trading or quote call failed at the transport level.
	ErrUpstream = errors.New("kis: gateway request failed")
	// ErrInvalidOrder means the order request failed local validation; no
	// network call was made.
	ErrInvalidOrder = errors.New("kis: invalid order request")
	// ErrUnknownOp means a logical operation has no transaction code in the
	// resolved deployment table. This is a programming error, not a runtime
	// condition.
	ErrUnknownOp = errors.New("kis: unknown operation")
	// ErrBadInput means a lookup argument failed local validation.
	ErrBadInput = errors.New("kis: invalid input")
)
