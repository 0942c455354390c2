package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/offmind/offmind-backend/internal/board"
	boardsvc "github.com/offmind/offmind-backend/internal/service/board"
)

type boardService interface {
	Drop(ctx context.Context, input boardsvc.DropInput) (board.Outcome, error)
}

type moveObserver interface {
	ObserveMove(move string, failed bool)
}

// BoardHandler serves the drag-and-drop endpoint.
type BoardHandler struct {
	svc     boardService
	metrics moveObserver
	log     *slog.Logger
}

// NewBoardHandler creates a BoardHandler.
func NewBoardHandler(svc boardService, metrics moveObserver, logger *slog.Logger) *BoardHandler {
	return &BoardHandler{svc: svc, metrics: metrics, log: logger.With("handler", "board")}
}

type dropRequest struct {
	ItemID uuid.UUID `json:"item_id"`
	Target struct {
		Kind string `json:"kind"`
		ID   string `json:"id"`
	} `json:"target"`
}

type dropResponse struct {
	Move  string       `json:"move"`
	Item  itemResponse `json:"item"`
	Error *errorBody   `json:"error,omitempty"`
}

// Drop handles POST /board/drop. When persisting the move fails the
// response carries the error status, the error and the card as it was
// before the drop.
func (h *BoardHandler) Drop(w http.ResponseWriter, r *http.Request) {
	var req dropRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, h.log, err)
		return
	}

	out, err := h.svc.Drop(r.Context(), boardsvc.DropInput{
		ItemID:     req.ItemID,
		TargetKind: req.Target.Kind,
		TargetID:   req.Target.ID,
	})
	if err != nil {
		respondError(w, r, h.log, err)
		return
	}
	h.metrics.ObserveMove(out.Move.Kind.String(), out.Err != nil)

	resp := dropResponse{Move: out.Move.Kind.String(), Item: toItemResponse(&out.Card)}
	if out.Err != nil {
		status, body := errorStatus(out.Err)
		if status >= http.StatusInternalServerError {
			h.log.ErrorContext(r.Context(), "drop failed", slog.String("error", out.Err.Error()))
		}
		resp.Error = &body
		writeJSON(w, status, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
