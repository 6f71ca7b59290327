package controllers

import (
	"net/http"

	"github.com/subslot/subslot-backend/api/responses"
	"github.com/subslot/subslot-backend/api/validators"
	"github.com/subslot/subslot-backend/internal/ads"
	"github.com/subslot/subslot-backend/pkg/enums"
	pkgerrors "github.com/subslot/subslot-backend/pkg/errors"
	"github.com/subslot/subslot-backend/pkg/logger"
)

// maxSearchQueryLen caps the title search term before it reaches the repo.
const maxSearchQueryLen = 100

// PublicAds lists active listings, optionally filtered by a literal title
// search via ?query=.
func PublicAds(svc ads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ads service unavailable"))
			return
		}

		query := validators.SanitizeString(r.URL.Query().Get("query"), maxSearchQueryLen)
		list, err := svc.ListPublic(r.Context(), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteData(w, http.StatusOK, list)
	}
}

// PublicAdsByUnit lists the newest active listings in one duration bucket.
func PublicAdsByUnit(svc ads.Service, unit enums.DurationUnit, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ads service unavailable"))
			return
		}

		list, err := svc.ListByDurationUnit(r.Context(), unit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteData(w, http.StatusOK, list)
	}
}

// AdByID resolves a single listing by the id carried in the request body.
// Deactivated listings remain reachable here.
func AdByID(svc ads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ads service unavailable"))
			return
		}

		var body ads.GetAdByIDRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ad, err := svc.GetByID(r.Context(), body.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteData(w, http.StatusOK, ad)
	}
}

// AdDetailsByID resolves a listing together with its poster's profile.
func AdDetailsByID(svc ads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ads service unavailable"))
			return
		}

		var body ads.GetAdByIDRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		details, err := svc.GetDetailsByID(r.Context(), body.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteData(w, http.StatusOK, details)
	}
}
