package errors

import (
	stderrors "errors"

	"github.com/Tmalone1250/mtk-sale/jsonx"
)

// LedgerErrorCode represents standardized error codes for ledger and exchange operations
type LedgerErrorCode string

const (
	// General errors
	ErrCodeInternal LedgerErrorCode = "internal_error"

	// Validation errors
	ErrCodeZeroAmount     LedgerErrorCode = "zero_amount"
	ErrCodeZeroAddress    LedgerErrorCode = "zero_address"
	ErrCodeUnknownPayload LedgerErrorCode = "unknown_payload"

	// Supply and balance errors
	ErrCodeMaxSupplyReached      LedgerErrorCode = "max_supply_reached"
	ErrCodeInsufficientBalance   LedgerErrorCode = "insufficient_balance"
	ErrCodeInsufficientAllowance LedgerErrorCode = "insufficient_allowance"
	ErrCodeInsufficientReserve   LedgerErrorCode = "insufficient_reserve"

	// Access control errors
	ErrCodeUnauthorized LedgerErrorCode = "unauthorized"
	ErrCodeTooEarly     LedgerErrorCode = "too_early"

	// State errors
	ErrCodePaused        LedgerErrorCode = "paused"
	ErrCodeNotPaused     LedgerErrorCode = "not_paused"
	ErrCodeReentrantCall LedgerErrorCode = "reentrant_call"
	ErrCodeNoPendingRec  LedgerErrorCode = "no_pending_record"
)

// LedgerError represents a standardized ledger error
type LedgerError struct {
	Code    LedgerErrorCode `json:"code"`
	Message string          `json:"message"`
}

// Error implements the error interface
func (e *LedgerError) Error() string {
	err, _ := jsonx.Marshal(LedgerError{
		Code:    e.Code,
		Message: e.Message,
	})
	return string(err)
}

// Is makes sentinel comparison work through errors.Is by matching on the code
func (e *LedgerError) Is(target error) bool {
	var other *LedgerError
	if !stderrors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// Error message constants - user-friendly and concise
const (
	ErrMsgZeroAmount            = "Amount is zero or rounds down to zero"
	ErrMsgZeroAddress           = "Destination principal is the null principal"
	ErrMsgUnknownPayload        = "Call carries unrecognized payload data"
	ErrMsgMaxSupplyReached      = "Mint would exceed the maximum supply"
	ErrMsgInsufficientBalance   = "Not enough token balance"
	ErrMsgInsufficientAllowance = "Spender allowance is too small"
	ErrMsgInsufficientReserve   = "Exchange reserve cannot cover this amount"
	ErrMsgUnauthorized          = "Caller lacks the required permission"
	ErrMsgTooEarly              = "Transfer cannot be accepted before its delay elapses"
	ErrMsgPaused                = "Transfers are paused"
	ErrMsgNotPaused             = "Transfers are not paused"
	ErrMsgReentrantCall         = "Nested call into a guarded operation"
	ErrMsgNoPendingRecord       = "No pending transfer record exists"
)

// Sentinel errors for every failure kind. Call sites wrap these with
// fmt.Errorf("...: %w", err) context; tests match with errors.Is.
var (
	ErrZeroAmount            = NewError(ErrCodeZeroAmount, ErrMsgZeroAmount)
	ErrZeroAddress           = NewError(ErrCodeZeroAddress, ErrMsgZeroAddress)
	ErrUnknownPayload        = NewError(ErrCodeUnknownPayload, ErrMsgUnknownPayload)
	ErrMaxSupplyReached      = NewError(ErrCodeMaxSupplyReached, ErrMsgMaxSupplyReached)
	ErrInsufficientBalance   = NewError(ErrCodeInsufficientBalance, ErrMsgInsufficientBalance)
	ErrInsufficientAllowance = NewError(ErrCodeInsufficientAllowance, ErrMsgInsufficientAllowance)
	ErrInsufficientReserve   = NewError(ErrCodeInsufficientReserve, ErrMsgInsufficientReserve)
	ErrUnauthorized          = NewError(ErrCodeUnauthorized, ErrMsgUnauthorized)
	ErrTooEarly              = NewError(ErrCodeTooEarly, ErrMsgTooEarly)
	ErrPaused                = NewError(ErrCodePaused, ErrMsgPaused)
	ErrNotPaused             = NewError(ErrCodeNotPaused, ErrMsgNotPaused)
	ErrReentrantCall         = NewError(ErrCodeReentrantCall, ErrMsgReentrantCall)
	ErrNoPendingRecord       = NewError(ErrCodeNoPendingRec, ErrMsgNoPendingRecord)
)

// NewError creates a new LedgerError and returns it as error interface
func NewError(code LedgerErrorCode, message string) error {
	return &LedgerError{
		Code:    code,
		Message: message,
	}
}
