package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/subslot/subslot-backend/api/middleware"
	"github.com/subslot/subslot-backend/api/responses"
	"github.com/subslot/subslot-backend/api/validators"
	"github.com/subslot/subslot-backend/internal/auth"
	"github.com/subslot/subslot-backend/pkg/enums"
	pkgerrors "github.com/subslot/subslot-backend/pkg/errors"
	"github.com/subslot/subslot-backend/pkg/logger"
)

// UserRegister wires user signup into the HTTP layer.
func UserRegister(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body auth.RegisterUserRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.RegisterUser(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, http.StatusCreated, "User registered successfully", user)
	}
}

// UserLogin wires user login into the HTTP layer.
func UserLogin(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.LoginUser(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSession(w, http.StatusOK, "Login successful", result.Token, result.Account)
	}
}

// UserVerifyOTP confirms a pending signup and logs the account in.
func UserVerifyOTP(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return verifyOTP(svc, enums.RoleUser, logg)
}

// UserResendOTP reissues a verification code for a user account.
func UserResendOTP(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return resendOTP(svc, enums.RoleUser, logg)
}

// AuthMe returns the authenticated account for either kind.
func AuthMe(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		id, role, err := actorFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		account, err := svc.Me(r.Context(), role, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteData(w, http.StatusOK, account)
	}
}

// AuthLogout acknowledges logout. Tokens are stateless so the client simply
// discards its copy.
func AuthLogout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteMessage(w, http.StatusOK, "Logout successful. Please delete the token from client side.", nil)
	}
}

func verifyOTP(svc auth.Service, role enums.Role, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body auth.VerifyOTPRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.VerifyOTP(r.Context(), role, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSession(w, http.StatusOK, "OTP verified successfully", result.Token, result.Account)
	}
}

func resendOTP(svc auth.Service, role enums.Role, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body auth.ResendOTPRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.ResendOTP(r.Context(), role, body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, "OTP resent successfully", nil)
	}
}

// actorFromContext resolves the authenticated account id and role seeded by
// the auth middleware.
func actorFromContext(r *http.Request) (uuid.UUID, enums.Role, error) {
	id, err := uuid.Parse(middleware.UserIDFromContext(r.Context()))
	if err != nil {
		return uuid.Nil, "", pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	role := enums.Role(middleware.RoleFromContext(r.Context()))
	if !role.IsValid() {
		return uuid.Nil, "", pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	return id, role, nil
}
