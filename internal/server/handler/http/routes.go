package http

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/mbagrov/chatshell/internal/middleware"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs the HTTP handler serving the chat shell API.
//
// Routes:
//
//	POST /api/register      → create credentials
//	POST /api/login         → authenticate, start a session
//	GET  /api/view          → recompute the current view
//	POST /api/navigate      → page switch (Logout target included)
//	POST /api/chats         → new chat session
//	POST /api/chats/select  → switch active session
//	POST /api/messages      → one chat turn
//	POST /api/upload        → multipart upload (name/size echo)
//	POST /api/logout        → reset the session context
//
// Middleware chain (applied in order):
//  1. WithRequestLogging(logger) — logs each request
//  2. WithSession(shell.Registry) — attaches the session token cookie
//  3. AllowContentType("application/json") on the JSON routes only; the
//     upload endpoint takes multipart form data
func NewRouter(shell *ShellHandler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithRequestLogging(logger))
	r.Use(middleware.WithSession(shell.Registry))

	r.Route("/api", func(r chi.Router) {
		r.Get("/view", shell.Render)

		r.Group(func(r chi.Router) {
			r.Use(chiMiddleware.AllowContentType("application/json"))

			r.Post("/register", shell.Register)
			r.Post("/login", shell.Login)
			r.Post("/navigate", shell.Navigate)
			r.Post("/chats", shell.NewChat)
			r.Post("/chats/select", shell.SelectSession)
			r.Post("/messages", shell.Send)
			r.Post("/logout", shell.Logout)
		})

		r.Post("/upload", shell.Upload)
	})

	return r
}
