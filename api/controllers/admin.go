package controllers

import (
	"net/http"

	"github.com/subslot/subslot-backend/api/responses"
	"github.com/subslot/subslot-backend/api/validators"
	"github.com/subslot/subslot-backend/internal/accounts"
	"github.com/subslot/subslot-backend/internal/auth"
	"github.com/subslot/subslot-backend/pkg/enums"
	pkgerrors "github.com/subslot/subslot-backend/pkg/errors"
	"github.com/subslot/subslot-backend/pkg/logger"
)

// AdminRegister wires admin signup into the HTTP layer.
func AdminRegister(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body auth.RegisterAdminRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		admin, err := svc.RegisterAdmin(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteMessage(w, http.StatusCreated, "Admin registered successfully. OTP sent to email.", admin)
	}
}

// AdminLogin wires admin login into the HTTP layer.
func AdminLogin(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
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

		result, err := svc.LoginAdmin(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSession(w, http.StatusOK, "Login successful", result.Token, result.Account)
	}
}

// AdminVerifyOTP confirms a pending admin signup and logs the account in.
func AdminVerifyOTP(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return verifyOTP(svc, enums.RoleAdmin, logg)
}

// AdminResendOTP reissues a verification code for an admin account.
func AdminResendOTP(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return resendOTP(svc, enums.RoleAdmin, logg)
}

// AdminListUsers returns a page of registered users, newest first.
func AdminListUsers(dir accounts.Directory, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if dir == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "account directory unavailable"))
			return
		}

		page, err := validators.ParseQueryInt(r, "page", 1, 1, 1000000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		users, meta, err := dir.ListUsers(r.Context(), page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WritePage(w, users, meta)
	}
}
