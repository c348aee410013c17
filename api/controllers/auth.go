package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/angelmondragon/stationdesk-backend/api/middleware"
	"github.com/angelmondragon/stationdesk-backend/api/responses"
	"github.com/angelmondragon/stationdesk-backend/api/validators"
	"github.com/angelmondragon/stationdesk-backend/internal/auth"
	"github.com/angelmondragon/stationdesk-backend/internal/users"
	"github.com/angelmondragon/stationdesk-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/stationdesk-backend/pkg/errors"
	"github.com/angelmondragon/stationdesk-backend/pkg/logger"
)

type authUserResponse struct {
	Success bool           `json:"success"`
	User    *users.UserDTO `json:"user"`
}

type successResponse struct {
	Success bool `json:"success"`
}

func callerFrom(ctx context.Context) (auth.Caller, error) {
	id, err := uuid.Parse(middleware.UserIDFromContext(ctx))
	if err != nil {
		return auth.Caller{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	return auth.Caller{UserID: id, Role: enums.UserRole(middleware.RoleFromContext(ctx))}, nil
}

// AuthMe returns the signed-in user, or null for anonymous callers and
// sessions whose user has been removed.
func AuthMe(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := callerFrom(r.Context())
		if err != nil {
			responses.WriteSuccess(w, nil)
			return
		}
		user, err := svc.Me(r.Context(), caller.UserID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if user == nil {
			responses.WriteSuccess(w, nil)
			return
		}
		responses.WriteSuccess(w, user)
	}
}

func AuthLogin(svc auth.Service, cookie CookieSettings, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req auth.LoginRequest
		if err := validators.DecodeInput(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		res, err := svc.Login(r.Context(), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		setSessionCookie(w, r, cookie, res.Token)
		responses.WriteSuccess(w, authUserResponse{Success: true, User: res.User})
	}
}

// AuthLogout clears the cookie and revokes the presented session. It always
// succeeds.
func AuthLogout(svc auth.Service, cookie CookieSettings, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Logout(r.Context(), middleware.SessionTokenFromContext(r.Context())); err != nil && logg != nil {
			logg.Warn(logg.WithField(r.Context(), "error", err.Error()), "logout failed")
		}
		clearSessionCookie(w, r, cookie)
		responses.WriteSuccess(w, successResponse{Success: true})
	}
}

func AuthCreateUser(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := callerFrom(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req auth.CreateUserRequest
		if err := validators.DecodeInput(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.CreateUser(r.Context(), caller, req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, authUserResponse{Success: true, User: user})
	}
}

func AuthListUsers(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := callerFrom(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		list, err := svc.ListUsers(r.Context(), caller)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// AuthProcedures serves the auth namespace.
func AuthProcedures(svc auth.Service, cookie CookieSettings, logg *logger.Logger) []Procedure {
	return []Procedure{
		{Name: "auth.me", Kind: Query, Access: Public, Handler: AuthMe(svc, logg)},
		{Name: "auth.login", Kind: Mutation, Access: Public, Handler: AuthLogin(svc, cookie, logg)},
		{Name: "auth.logout", Kind: Mutation, Access: Public, Handler: AuthLogout(svc, cookie, logg)},
		{Name: "auth.createUser", Kind: Mutation, Access: Admin, Handler: AuthCreateUser(svc, logg)},
		{Name: "auth.listUsers", Kind: Query, Access: Admin, Handler: AuthListUsers(svc, logg)},
	}
}
