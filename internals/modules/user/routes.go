package user

import (
	middle "statuspage/internals/middleware"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, authMW *middle.AuthMiddleware) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.Register)
	r.Post("/login", h.LogIn)
	r.Post("/token", h.Token)
	r.With(authMW.Handle).Get("/me", h.Me)

	return r
}

/*
- POST: /auth/register  -> register a member (pending, viewer)
	req auth : false
	body : RegisterRequest
	resp : ProfileResponse

- POST: /auth/login   -> login
	req auth : false
	body : LogInRequest
	resp : TokenResponse

- POST: /auth/token   -> login with form fields username, password
	req auth : false
	resp : TokenResponse

- GET: /auth/me -> current profile
	req auth : true
	resp : ProfileResponse
*/
