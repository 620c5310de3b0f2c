package utils

import "errors"

// Common application errors used across services.
var (
	ErrInvalidToken       = errors.New("INVALID_TOKEN")
	ErrInvalidCredentials = errors.New("INVALID_CREDENTIALS")
	ErrAccountInactive    = errors.New("ACCOUNT_INACTIVE")
	ErrTenantForbidden    = errors.New("TENANT_FORBIDDEN")
	ErrAggregateWrite     = errors.New("AGGREGATE_WRITE")
	ErrNotFound           = errors.New("NOT_FOUND")
	ErrSaleImmutable      = errors.New("SALE_IMMUTABLE")
	ErrConfirmMismatch    = errors.New("CONFIRM_MISMATCH")
	ErrUploadNoURL        = errors.New("UPLOAD_NO_URL")
	ErrUploadDisabled     = errors.New("UPLOAD_DISABLED")
	ErrSeedInProgress     = errors.New("SEED_IN_PROGRESS")
	ErrUnknownCollection  = errors.New("UNKNOWN_COLLECTION")
)
