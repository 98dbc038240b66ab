package assessment

import "errors"

var (
	ErrUnknownStatus = errors.New("unknown assessment status")
	ErrInvalidStage  = errors.New("invalid review stage")

	ErrLogisticsMethodRequired = errors.New("logistics method is required")
	ErrReasonRequired          = errors.New("reason is required")

	// ErrGuardViolation means the current status does not permit the
	// requested transition. Wrapped errors carry the action and status.
	ErrGuardViolation = errors.New("transition not allowed")
)
