package organization

import (
	"net/http"
	"statuspage/pkg/utils"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type PublicHandler struct {
	pages          *StatusPages
	streamInterval time.Duration
	logger         *zerolog.Logger
}

func NewPublicHandler(pages *StatusPages, streamInterval time.Duration, logger *zerolog.Logger) *PublicHandler {
	return &PublicHandler{
		pages:          pages,
		streamInterval: streamInterval,
		logger:         logger,
	}
}

func (h *PublicHandler) Directory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	entries, err := h.pages.Directory(ctx)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reqID, "organizations retrieved", entries)
}

func (h *PublicHandler) Status(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	snap, err := h.pages.Status(ctx, chi.URLParam(r, "orgRef"))
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reqID, utils.StatusPageRetrieved, snap)
}

func (h *PublicHandler) Services(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	snap, err := h.pages.Status(ctx, chi.URLParam(r, "orgRef"))
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reqID, "services retrieved", snap.Services)
}

func (h *PublicHandler) Incidents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	snap, err := h.pages.Status(ctx, chi.URLParam(r, "orgRef"))
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reqID, "incidents retrieved", snap.Incidents)
}

func (h *PublicHandler) PageByHost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	page, err := h.pages.PageByHost(ctx, chi.URLParam(r, "subdomain"))
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reqID, utils.StatusPageRetrieved, page)
}

func (h *PublicHandler) PageByOrgID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	orgID, err := utils.PathUUID(r, "orgID")
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	page, err := h.pages.PageByOrgID(ctx, orgID)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reqID, utils.StatusPageRetrieved, page)
}
