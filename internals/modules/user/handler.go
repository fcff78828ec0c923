package user

import (
	"net/http"
	middle "statuspage/internals/middleware"
	"statuspage/pkg/apperror"
	"statuspage/pkg/utils"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service, validator *validator.Validate) *Handler {
	return &Handler{
		service:   service,
		validator: validator,
	}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	var req RegisterRequest
	if err := utils.DecodeAndValidate(r, h.validator, &req); err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	u, err := h.service.Register(ctx, RegisterCmd{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Password:       req.Password,
		OrganizationID: uuid.MustParse(req.OrganizationID), // validated above
	})
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, reqID, utils.UserRegistered, toProfile(u))
}

func (h *Handler) LogIn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	var req LogInRequest
	if err := utils.DecodeAndValidate(r, h.validator, &req); err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	h.issue(w, r, LogInCmd{Email: req.Email, Password: req.Password})
}

// Token is the OAuth2 password-grant shaped login: form fields username and password.
func (h *Handler) Token(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	if err := r.ParseForm(); err != nil {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "invalid form body")
		return
	}
	username, password := r.PostForm.Get("username"), r.PostForm.Get("password")
	if username == "" || password == "" {
		utils.WriteError(w, http.StatusBadRequest, reqID, apperror.InvalidInput, "username and password are required")
		return
	}

	h.issue(w, r, LogInCmd{Email: username, Password: password})
}

func (h *Handler) issue(w http.ResponseWriter, r *http.Request, cmd LogInCmd) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)

	token, err := h.service.LogIn(ctx, cmd)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, reqID, utils.UserLoggedIn, toTokenResponse(token))
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := middleware.GetReqID(ctx)
	user, ok := middle.CurrentUser(w, r)
	if !ok {
		return
	}

	u, err := h.service.GetProfile(ctx, user.UserID)
	if err != nil {
		utils.FromAppError(w, reqID, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, reqID, "profile retrieved", toProfile(u))
}
