package transport

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/muhammadheryan/community-market/constant"
	"github.com/muhammadheryan/community-market/model"
	"github.com/muhammadheryan/community-market/utils/errors"
	"github.com/muhammadheryan/community-market/utils/logger"
	validatorx "github.com/muhammadheryan/community-market/utils/validator"
	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, resp model.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("[writeJSON] encode response", zap.String("error", err.Error()))
	}
}

func writeSuccess(w http.ResponseWriter, data interface{}) {
	writeData(w, http.StatusOK, data)
}

func writeCreated(w http.ResponseWriter, data interface{}) {
	writeData(w, http.StatusCreated, data)
}

func writeData(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, model.Response{
		Success:   true,
		Message:   constant.ErrorTypeMessage[constant.Successful],
		Code:      constant.ErrorTypeCode[constant.Successful],
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
}

// writeError renders a CustomError with its status and code. Anything else is
// reported as an internal error without leaking its text.
func writeError(w http.ResponseWriter, err error) {
	var ce errors.CustomError
	if !stderrors.As(err, &ce) {
		logger.Error("[writeError] unmapped error", zap.String("error", err.Error()))
		ce = errors.SetCustomError(constant.ErrInternal)
	}

	writeJSON(w, ce.ErrorHTTPCode(), model.Response{
		Success:   false,
		Message:   ce.Error(),
		Code:      ce.ErrorCode(),
		Timestamp: time.Now().UTC(),
	})
}

// writeValidationError reports which fields failed which rule
func writeValidationError(w http.ResponseWriter, err error) {
	ce := errors.SetCustomError(constant.ErrInvalidRequest)
	resp := model.Response{
		Success:   false,
		Message:   ce.Error(),
		Code:      ce.ErrorCode(),
		Timestamp: time.Now().UTC(),
	}
	if fields := validatorx.FieldErrors(err); len(fields) > 0 {
		resp.Data = fields
	}
	writeJSON(w, ce.ErrorHTTPCode(), resp)
}
