package timeline

import (
	"net/http"
	"statuspage/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Timeline(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	days, err := utils.QueryInt(r, "days", h.service.DefaultDays())
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	tl, err := h.service.Build(ctx, chi.URLParam(r, "orgRef"), days)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, reqID, "incident timeline", tl)
}
