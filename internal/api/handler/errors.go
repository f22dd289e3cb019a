package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/colson89/ambulance-planning-sub001/pkg/apperrors"
	"github.com/colson89/ambulance-planning-sub001/pkg/response"
)

// writeError maps a business error onto the envelope. base is the
// module's code block (e.g. 13000 for exchanges); the offset encodes the
// error kind. Infrastructure errors stay opaque.
func writeError(c *gin.Context, base int, err error) {
	if errors.Is(err, apperrors.ErrOptimisticLock) {
		response.Conflict(c, base+3, "record was changed by a concurrent operation, reload and retry")
		return
	}
	if kind, ok := apperrors.KindOf(err); ok {
		switch kind {
		case apperrors.KindValidation:
			response.BadRequest(c, base+1, err.Error())
		case apperrors.KindNotFound:
			response.NotFound(c, base+2, err.Error())
		case apperrors.KindInvalidState:
			response.Conflict(c, base+3, err.Error())
		case apperrors.KindUnauthorized:
			response.Forbidden(c, base+4, err.Error())
		}
		return
	}
	response.InternalError(c)
}
