package web

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/cardregisters/internal/core"
)

type ctxKey int

const (
	ctxKeyWorkspace ctxKey = iota
	ctxKeyRegister
)

// WithRequestMetadata adds IP and User-Agent to context for audit logging.
func WithRequestMetadata(ctx context.Context, r *http.Request) context.Context {
	ip := r.RemoteAddr // already resolved by TrustedRealIP
	ua := r.Header.Get("User-Agent")
	ctx = core.ContextWithIPAddress(ctx, ip)
	ctx = core.ContextWithUserAgent(ctx, ua)
	return ctx
}

// workspaceFrom returns the workspace attached by sessionMiddleware.
func workspaceFrom(ctx context.Context) *core.Workspace {
	ws, _ := ctx.Value(ctxKeyWorkspace).(*core.Workspace)
	return ws
}

// registerFrom returns the register resolved by registerMiddleware.
func registerFrom(ctx context.Context) core.Register {
	reg, _ := ctx.Value(ctxKeyRegister).(core.Register)
	return reg
}

// sessionMiddleware resolves the browser's workspace from its session
// cookie, creating a new workspace and cookie when there is none.
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(s.cfg.Session.CookieName); err == nil {
			id = c.Value
		}

		ws, created := s.service.Sessions().Open(id)
		if created {
			http.SetCookie(w, &http.Cookie{
				Name:     s.cfg.Session.CookieName,
				Value:    ws.ID,
				Path:     "/",
				MaxAge:   int(s.cfg.Session.TTL.Seconds()),
				HttpOnly: true,
				Secure:   s.cfg.Session.SecureCookie,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := core.ContextWithSessionID(r.Context(), ws.ID)
		ctx = WithRequestMetadata(ctx, r)
		ctx = context.WithValue(ctx, ctxKeyWorkspace, ws)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// registerMiddleware resolves the {register} route parameter.
func (s *Server) registerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reg, err := core.ParseRegister(chi.URLParam(r, "register"))
		if err != nil {
			s.respondError(w, r, err, http.StatusNotFound)
			return
		}
		ctx := context.WithValue(r.Context(), ctxKeyRegister, reg)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
