package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"cinema-tickets/internal/data/entity"
	"cinema-tickets/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError maps a service error onto an HTTP response. Business
// rule violations keep their exact message and return 400.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	for _, business := range entity.BusinessErrors {
		if errors.Is(err, business) {
			log.Warn(operation+" rejected",
				zap.Error(err),
				zap.String("operation", operation))
			utils.ResponseBadRequest(w, err.Error(), nil)
			return
		}
	}

	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "validation failed"):
		log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "invalid credentials"):
		log.Warn(operation+" failed - invalid credentials",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseUnauthorized(w, errMsg)

	case strings.Contains(errMsg, "invalid"):
		log.Warn("Invalid input for "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "already taken"):
		log.Warn(operation+" failed - conflict",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
