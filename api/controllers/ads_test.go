package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/subslot/subslot-backend/api/middleware"
	"github.com/subslot/subslot-backend/internal/ads"
	"github.com/subslot/subslot-backend/pkg/enums"
	pkgerrors "github.com/subslot/subslot-backend/pkg/errors"
)

type stubAdsService struct {
	postFn       func(context.Context, uuid.UUID, ads.PostAdRequest) (*ads.AdDTO, error)
	listPublicFn func(context.Context, string) ([]*ads.AdDTO, error)
	byUnitFn     func(context.Context, enums.DurationUnit) ([]*ads.AdDTO, error)
	getByIDFn    func(context.Context, string) (*ads.AdDTO, error)
	deactivateFn func(context.Context, uuid.UUID, string) error
}

func (s *stubAdsService) Post(ctx context.Context, owner uuid.UUID, req ads.PostAdRequest) (*ads.AdDTO, error) {
	if s.postFn != nil {
		return s.postFn(ctx, owner, req)
	}
	return &ads.AdDTO{}, nil
}

func (s *stubAdsService) ListPublic(ctx context.Context, query string) ([]*ads.AdDTO, error) {
	if s.listPublicFn != nil {
		return s.listPublicFn(ctx, query)
	}
	return nil, nil
}

func (s *stubAdsService) ListByDurationUnit(ctx context.Context, unit enums.DurationUnit) ([]*ads.AdDTO, error) {
	if s.byUnitFn != nil {
		return s.byUnitFn(ctx, unit)
	}
	return nil, nil
}

func (s *stubAdsService) GetByID(ctx context.Context, id string) (*ads.AdDTO, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return &ads.AdDTO{}, nil
}

func (s *stubAdsService) GetDetailsByID(ctx context.Context, id string) (*ads.AdDetailsDTO, error) {
	return &ads.AdDetailsDTO{}, nil
}

func (s *stubAdsService) Mine(ctx context.Context, owner uuid.UUID) ([]*ads.AdDTO, error) {
	return nil, nil
}

func (s *stubAdsService) MineByID(ctx context.Context, owner uuid.UUID, id string) (*ads.AdDTO, error) {
	return &ads.AdDTO{}, nil
}

func (s *stubAdsService) Update(ctx context.Context, owner uuid.UUID, id string, req ads.UpdateAdRequest) (*ads.AdDTO, error) {
	return &ads.AdDTO{}, nil
}

func (s *stubAdsService) Deactivate(ctx context.Context, owner uuid.UUID, id string) error {
	if s.deactivateFn != nil {
		return s.deactivateFn(ctx, owner, id)
	}
	return nil
}

func authedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	ctx := middleware.WithUserID(req.Context(), uuid.NewString())
	ctx = middleware.WithRole(ctx, string(enums.RoleUser))
	return req.WithContext(ctx)
}

func TestUserPostAdCreated(t *testing.T) {
	var gotOwner uuid.UUID
	svc := &stubAdsService{
		postFn: func(ctx context.Context, owner uuid.UUID, req ads.PostAdRequest) (*ads.AdDTO, error) {
			gotOwner = owner
			return &ads.AdDTO{Title: req.Title}, nil
		},
	}

	payload := `{"title":"Netflix slot","description":"One seat","platform":"` + uuid.NewString() + `","price":"4.99","duration":{"value":1,"unit":"month"},"contactEmail":"jane@example.com"}`
	req := authedRequest(http.MethodPost, "/users/postAd", payload)
	rec := httptest.NewRecorder()
	UserPostAd(svc, nil)(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", rec.Code)
	}
	if gotOwner == uuid.Nil {
		t.Fatal("owner was not taken from the request context")
	}
	body := decodeEnvelope(t, rec)
	if body["message"] != "Ad posted successfully" {
		t.Fatalf("unexpected message %v", body["message"])
	}
}

func TestUserPostAdRequiresAuthContext(t *testing.T) {
	svc := &stubAdsService{}

	req := httptest.NewRequest(http.MethodPost, "/users/postAd", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	UserPostAd(svc, nil)(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestPublicAdsForwardsQuery(t *testing.T) {
	var gotQuery string
	svc := &stubAdsService{
		listPublicFn: func(ctx context.Context, query string) ([]*ads.AdDTO, error) {
			gotQuery = query
			return []*ads.AdDTO{{Title: "Netflix slot"}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/public/allAds?query=netflix", nil)
	rec := httptest.NewRecorder()
	PublicAds(svc, nil)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if gotQuery != "netflix" {
		t.Fatalf("expected query forwarded, got %q", gotQuery)
	}
}

func TestPublicAdsSanitizesQuery(t *testing.T) {
	var gotQuery string
	svc := &stubAdsService{
		listPublicFn: func(ctx context.Context, query string) ([]*ads.AdDTO, error) {
			gotQuery = query
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/public/allAds?query=%20%20netflix%20%20", nil)
	rec := httptest.NewRecorder()
	PublicAds(svc, nil)(rec, req)
	if gotQuery != "netflix" {
		t.Fatalf("expected trimmed query, got %q", gotQuery)
	}

	long := strings.Repeat("a", 150)
	req = httptest.NewRequest(http.MethodGet, "/public/allAds?query="+long, nil)
	rec = httptest.NewRecorder()
	PublicAds(svc, nil)(rec, req)
	if len(gotQuery) != 100 {
		t.Fatalf("expected query capped at 100 characters, got %d", len(gotQuery))
	}
}

func TestPublicAdsByUnitUsesBoundUnit(t *testing.T) {
	var gotUnit enums.DurationUnit
	svc := &stubAdsService{
		byUnitFn: func(ctx context.Context, unit enums.DurationUnit) ([]*ads.AdDTO, error) {
			gotUnit = unit
			return nil, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/public/dayAds", nil)
	rec := httptest.NewRecorder()
	PublicAdsByUnit(svc, enums.DurationHour, nil)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if gotUnit != enums.DurationHour {
		t.Fatalf("expected hour bucket, got %s", gotUnit)
	}
}

func TestAdByIDNotFound(t *testing.T) {
	svc := &stubAdsService{
		getByIDFn: func(ctx context.Context, id string) (*ads.AdDTO, error) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Ad not found")
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/ads/getAdbyId", strings.NewReader(`{"id":"`+uuid.NewString()+`"}`))
	rec := httptest.NewRecorder()
	AdByID(svc, nil)(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	if body["message"] != "Ad not found" {
		t.Fatalf("unexpected message %v", body["message"])
	}
}

func TestUserDeleteAdUsesURLParam(t *testing.T) {
	adID := uuid.NewString()
	var gotID string
	svc := &stubAdsService{
		deactivateFn: func(ctx context.Context, owner uuid.UUID, id string) error {
			gotID = id
			return nil
		},
	}

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", adID)
	req := authedRequest(http.MethodDelete, "/users/ads/"+adID, "")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rec := httptest.NewRecorder()
	UserDeleteAd(svc, nil)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if gotID != adID {
		t.Fatalf("expected id %s got %s", adID, gotID)
	}
	body := decodeEnvelope(t, rec)
	if body["message"] != "Ad deleted successfully" {
		t.Fatalf("unexpected message %v", body["message"])
	}
}
