package handlers

import (
	"errors"
	"net/http"

	"theray/services/scheduling"
	"theray/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// KindInvalidRequest is reported when the request fails binding.
const KindInvalidRequest = "InvalidRequest"

var errorStatus = map[scheduling.ErrorKind]int{
	scheduling.KindProviderNotFound:        http.StatusNotFound,
	scheduling.KindInvalidInterval:         http.StatusBadRequest,
	scheduling.KindSlotUnavailable:         http.StatusBadRequest,
	scheduling.KindAccessDenied:            http.StatusForbidden,
	scheduling.KindAlreadyTerminal:         http.StatusBadRequest,
	scheduling.KindProviderProfileNotFound: http.StatusNotFound,
	scheduling.KindNotFound:                http.StatusNotFound,
	scheduling.KindStorageError:            http.StatusInternalServerError,
}

// respondError writes the JSON error body for a service error. Storage
// causes are logged and never returned to the caller.
func respondError(c *gin.Context, err error) {
	var se *scheduling.Error
	if !errors.As(err, &se) {
		getLogger(c).Error("Unclassified service error", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "InternalServerError", "An unexpected error occurred. Please try again later.")
		return
	}

	status, ok := errorStatus[se.Kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	if status >= http.StatusInternalServerError {
		getLogger(c).Error("Service failure", zap.String("kind", string(se.Kind)), zap.Error(se))
		utils.JSONError(c, status, string(se.Kind), "An internal error occurred. Please try again later.")
		return
	}
	utils.JSONError(c, status, string(se.Kind), se.Message)
}

func respondBindingError(c *gin.Context, err error) {
	utils.JSONError(c, http.StatusBadRequest, KindInvalidRequest, describeBindingError(err))
}
