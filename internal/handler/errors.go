package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/strandshq/strands-api/internal/utils"
)

// handleError maps service errors onto the response envelope. Anything not in
// the taxonomy becomes a 500 without leaking internals.
func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, utils.ErrInvalidCredentials):
		utils.Error(c, 401, "INVALID_CREDENTIALS", "Invalid email or password")
	case errors.Is(err, utils.ErrAccountInactive):
		utils.Error(c, 403, "ACCOUNT_INACTIVE", "Account is not active")
	case errors.Is(err, utils.ErrInvalidToken):
		utils.Error(c, 401, "INVALID_TOKEN", "Invalid or expired token")
	case errors.Is(err, utils.ErrTenantForbidden):
		utils.Error(c, 403, "TENANT_FORBIDDEN", "Not authorized for the requested salon")
	case errors.Is(err, utils.ErrAggregateWrite):
		utils.Error(c, 403, "AGGREGATE_WRITE", "Writes are not allowed in the aggregate view")
	case errors.Is(err, utils.ErrNotFound):
		utils.Error(c, 404, "NOT_FOUND", "Resource not found")
	case errors.Is(err, utils.ErrSaleImmutable):
		utils.Error(c, 409, "SALE_IMMUTABLE", "Recorded sales cannot be modified")
	case errors.Is(err, utils.ErrConfirmMismatch):
		utils.Error(c, 400, "CONFIRM_MISMATCH", "Confirmation phrase does not match")
	case errors.Is(err, utils.ErrSeedInProgress):
		utils.Error(c, 409, "SEED_IN_PROGRESS", "A seeding run is already active")
	case errors.Is(err, utils.ErrUnknownCollection):
		utils.Error(c, 400, "UNKNOWN_COLLECTION", "Unknown collection name")
	case errors.Is(err, utils.ErrUploadDisabled):
		utils.Error(c, 503, "UPLOAD_DISABLED", "Image uploads are not configured")
	case errors.Is(err, utils.ErrUploadNoURL):
		utils.Error(c, 502, "UPLOAD_NO_URL", "Upload endpoint returned no usable URL")
	default:
		utils.Error(c, 500, "INTERNAL_ERROR", "Internal server error")
	}
}
