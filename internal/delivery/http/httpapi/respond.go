package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode response", "error", err.Error())
	}
}

func writeError(w http.ResponseWriter, err error) {
	var invalidTransition *domain.InvalidTransitionError
	var unauthorized *domain.AuthorizationError

	switch {
	case errors.Is(err, domain.ErrTransactionNotFound),
		errors.Is(err, domain.ErrDisputeNotFound),
		errors.Is(err, domain.ErrUserNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.As(err, &invalidTransition):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.As(err, &unauthorized):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: err.Error()})
	default:
		if st, ok := status.FromError(err); ok && st.Code() == codes.InvalidArgument {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: st.Message()})
			return
		}
		slog.Error("request failed", "error", err.Error())
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
