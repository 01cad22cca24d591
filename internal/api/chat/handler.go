package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ai-discovery/discovery-backend/internal/entity"
	"github.com/ai-discovery/discovery-backend/internal/pkg/logger"
	"github.com/ai-discovery/discovery-backend/internal/pkg/response"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	usecase   ChatUsecase
	validator ChatValidator
}

func NewHandler(usecase ChatUsecase, validator ChatValidator) *Handler {
	return &Handler{
		usecase:   usecase,
		validator: validator,
	}
}

// Chat handles POST /chat
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Chat")

	var req entity.ChatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	if err := h.validator.ValidateChat(&req); err != nil {
		h.respondError(ctx, w, http.StatusUnprocessableEntity, err)
		return
	}

	ctx = logger.AddFields(ctx,
		zap.Int("message_count", len(req.Messages)),
		zap.Int("max_tokens", req.TokenBudget()),
	)
	ctxzap.Info(ctx, "handling chat request")

	resp, err := h.usecase.Chat(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "chat request completed",
		zap.Int("response_length", len(resp.Response)),
		zap.Int("reference_count", len(resp.References)),
	)
	response.Success(w, resp)
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		ctxzap.Error(ctx, "chat request failed", zap.Int("status", status), zap.Error(err))
	} else {
		ctxzap.Warn(ctx, "chat request rejected", zap.Int("status", status), zap.Error(err))
	}
	response.Error(w, status, err.Error())
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	// The router's timeout middleware answers 504 once the deadline has passed.
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		ctxzap.Warn(ctx, "chat request timed out", zap.Error(err))
		return
	}

	if errors.Is(err, entity.ErrMissingField) || errors.Is(err, entity.ErrInvalidParameter) || errors.Is(err, entity.ErrInvalidRole) {
		h.respondError(ctx, w, http.StatusUnprocessableEntity, err)
	} else {
		h.respondError(ctx, w, http.StatusInternalServerError, err)
	}
}
