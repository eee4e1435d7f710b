package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/itchan-dev/simpleboard/shared/api"
	"github.com/itchan-dev/simpleboard/shared/domain"
	jwt_internal "github.com/itchan-dev/simpleboard/shared/jwt"
	"github.com/itchan-dev/simpleboard/shared/logger"
	"github.com/itchan-dev/simpleboard/shared/utils"
)

// Key to store the viewer in the request context
type key int

const ViewerKey key = 0

// Auth resolves who is calling: the identity header and, optionally, an
// admin bearer token.
type Auth struct {
	jwtService jwt_internal.JwtService
}

func NewAuth(jwtService jwt_internal.JwtService) *Auth {
	return &Auth{jwtService: jwtService}
}

// Viewer populates the request context with the caller. A missing or invalid
// admin token leaves the caller a plain identity.
func (a *Auth) Viewer() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			viewer := domain.Viewer{Identity: identityFromHeader(r)}
			if admin, err := a.extractAdmin(r); err == nil {
				viewer.Admin = admin
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ViewerKey, viewer)))
		})
	}
}

// NeedIdentity rejects requests without a usable identity token.
func (a *Auth) NeedIdentity() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			viewer := GetViewerFromContext(r)
			if viewer.Identity == "" && !viewer.IsAdmin() {
				http.Error(w, "Missing "+api.IdentityHeader+" header", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AdminOnly returns middleware that requires admin authentication
func (a *Auth) AdminOnly() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			admin, err := a.extractAdmin(r)
			if err != nil {
				switch err {
				case errNoToken:
					http.Error(w, "Please sign-in", http.StatusUnauthorized)
				case errInvalidClaims:
					logger.Log.Warn("token without admin claims")
					http.Error(w, "Access denied. Only for admin", http.StatusForbidden)
				default:
					utils.WriteErrorAndStatusCode(w, err)
				}
				return
			}

			viewer := domain.Viewer{Identity: identityFromHeader(r), Admin: admin}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ViewerKey, viewer)))
		})
	}
}

func (a *Auth) extractAdmin(r *http.Request) (*domain.Admin, error) {
	var tokenString string
	if c, err := r.Cookie("accessToken"); err == nil {
		tokenString = c.Value
	} else if token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found {
		tokenString = token
	}
	if tokenString == "" {
		return nil, errNoToken
	}

	token, err := a.jwtService.DecodeToken(tokenString)
	if err != nil {
		return nil, err
	}
	admin, ok := jwt_internal.AdminFromToken(token)
	if !ok {
		return nil, errInvalidClaims
	}
	return admin, nil
}

func identityFromHeader(r *http.Request) domain.Identity {
	id := strings.TrimSpace(r.Header.Get(api.IdentityHeader))
	if len(id) > api.MaxIdentityLen {
		return ""
	}
	return id
}

var (
	errNoToken       = errorString("no token")
	errInvalidClaims = errorString("invalid claims")
)

type errorString string

func (e errorString) Error() string { return string(e) }

// GetViewerFromContext returns the caller, zero Viewer if no auth middleware ran.
func GetViewerFromContext(r *http.Request) domain.Viewer {
	viewer, _ := r.Context().Value(ViewerKey).(domain.Viewer)
	return viewer
}
