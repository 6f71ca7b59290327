package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/subslot/subslot-backend/internal/accounts"
	"github.com/subslot/subslot-backend/internal/ads"
	"github.com/subslot/subslot-backend/internal/auth"
	"github.com/subslot/subslot-backend/internal/categories"
	pkgAuth "github.com/subslot/subslot-backend/pkg/auth"
	"github.com/subslot/subslot-backend/pkg/config"
	"github.com/subslot/subslot-backend/pkg/enums"
	"github.com/subslot/subslot-backend/pkg/types"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubAuthService struct{}

func (stubAuthService) RegisterUser(context.Context, auth.RegisterUserRequest) (*accounts.UserDTO, error) {
	return &accounts.UserDTO{}, nil
}

func (stubAuthService) RegisterAdmin(context.Context, auth.RegisterAdminRequest) (*accounts.AdminDTO, error) {
	return &accounts.AdminDTO{}, nil
}

func (stubAuthService) VerifyOTP(context.Context, enums.Role, auth.VerifyOTPRequest) (*auth.SessionResult, error) {
	return &auth.SessionResult{Token: "token"}, nil
}

func (stubAuthService) ResendOTP(context.Context, enums.Role, auth.ResendOTPRequest) error {
	return nil
}

func (stubAuthService) LoginUser(context.Context, auth.LoginRequest) (*auth.SessionResult, error) {
	return &auth.SessionResult{Token: "token"}, nil
}

func (stubAuthService) LoginAdmin(context.Context, auth.LoginRequest) (*auth.SessionResult, error) {
	return &auth.SessionResult{Token: "token"}, nil
}

func (stubAuthService) Me(context.Context, enums.Role, uuid.UUID) (any, error) {
	return &accounts.UserDTO{}, nil
}

func (stubAuthService) UpdateProfile(context.Context, uuid.UUID, auth.UpdateProfileRequest) (*accounts.UserDTO, error) {
	return &accounts.UserDTO{}, nil
}

type stubDirectory struct{}

func (stubDirectory) ListUsers(context.Context, int) ([]*accounts.UserDTO, types.Pagination, error) {
	return nil, types.Pagination{}, nil
}

type stubAdsService struct{}

func (stubAdsService) Post(context.Context, uuid.UUID, ads.PostAdRequest) (*ads.AdDTO, error) {
	return &ads.AdDTO{}, nil
}

func (stubAdsService) ListPublic(context.Context, string) ([]*ads.AdDTO, error) {
	return nil, nil
}

func (stubAdsService) ListByDurationUnit(context.Context, enums.DurationUnit) ([]*ads.AdDTO, error) {
	return nil, nil
}

func (stubAdsService) GetByID(context.Context, string) (*ads.AdDTO, error) {
	return &ads.AdDTO{}, nil
}

func (stubAdsService) GetDetailsByID(context.Context, string) (*ads.AdDetailsDTO, error) {
	return &ads.AdDetailsDTO{}, nil
}

func (stubAdsService) Mine(context.Context, uuid.UUID) ([]*ads.AdDTO, error) {
	return nil, nil
}

func (stubAdsService) MineByID(context.Context, uuid.UUID, string) (*ads.AdDTO, error) {
	return &ads.AdDTO{}, nil
}

func (stubAdsService) Update(context.Context, uuid.UUID, string, ads.UpdateAdRequest) (*ads.AdDTO, error) {
	return &ads.AdDTO{}, nil
}

func (stubAdsService) Deactivate(context.Context, uuid.UUID, string) error {
	return nil
}

type stubCategoriesService struct{}

func (stubCategoriesService) Add(context.Context, uuid.UUID, categories.AddCategoryRequest) (*categories.CategoryDTO, error) {
	return &categories.CategoryDTO{}, nil
}

func (stubCategoriesService) ListPage(context.Context, int) ([]*categories.CategoryDTO, types.Pagination, error) {
	return nil, types.Pagination{}, nil
}

func (stubCategoriesService) ListAllPublic(context.Context) ([]*categories.CategoryDTO, error) {
	return nil, nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.JWT = config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 60}
	return cfg
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	return NewRouter(RouterParams{
		Config:      testConfig(),
		Logger:      nil,
		DB:          stubPinger{},
		Redis:       stubPinger{},
		AuthService: stubAuthService{},
		Directory:   stubDirectory{},
		AdsService:  stubAdsService{},
		Categories:  stubCategoriesService{},
	})
}

func mintToken(t *testing.T, role enums.Role) string {
	t.Helper()
	cfg := config.JWTConfig{Secret: "secret", Issuer: "issuer", ExpirationMinutes: 60}
	token, err := pkgAuth.MintAccessToken(cfg, time.Now(), pkgAuth.AccessTokenPayload{
		AccountID: uuid.New(),
		Role:      role,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestPublicRoutesAreMounted(t *testing.T) {
	router := newTestRouter(t)

	public := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/health/live", ""},
		{http.MethodGet, "/health/ready", ""},
		{http.MethodGet, "/metrics", ""},
		{http.MethodGet, "/public/categories", ""},
		{http.MethodGet, "/public/allAds", ""},
		{http.MethodGet, "/public/dayAds", ""},
		{http.MethodGet, "/public/weekAds", ""},
		{http.MethodGet, "/public/monthAds", ""},
		{http.MethodGet, "/public/yearAds", ""},
		{http.MethodPost, "/api/auth/login", `{"email":"a@b.c","password":"secret1"}`},
		{http.MethodPost, "/users/login", `{"email":"a@b.c","password":"secret1"}`},
		{http.MethodPost, "/admin/login", `{"email":"a@b.c","password":"secret1"}`},
		{http.MethodPost, "/ads/getAdbyId", `{"id":"x"}`},
	}

	for _, tc := range public {
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
		if tc.body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code == http.StatusNotFound || resp.Code == http.StatusMethodNotAllowed {
			t.Fatalf("%s %s: route not mounted (status %d)", tc.method, tc.path, resp.Code)
		}
		if resp.Code == http.StatusUnauthorized {
			t.Fatalf("%s %s: public route demands auth", tc.method, tc.path)
		}
	}
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	router := newTestRouter(t)

	protected := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/auth/me"},
		{http.MethodPost, "/api/auth/logout"},
		{http.MethodGet, "/users/me"},
		{http.MethodPut, "/users/me"},
		{http.MethodPost, "/users/postAd"},
		{http.MethodGet, "/users/ads/mine"},
		{http.MethodPost, "/category/add"},
		{http.MethodGet, "/category/all"},
		{http.MethodGet, "/admin/users/all"},
		{http.MethodPost, "/ads/getDetailsById"},
	}

	for _, tc := range protected {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401 got %d", tc.method, tc.path, resp.Code)
		}
	}
}

func TestAdminRouteRequiresAdminRole(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/users/all", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, enums.RoleUser))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/admin/users/all", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, enums.RoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestAuthedUserCanReachOwnedAdRoutes(t *testing.T) {
	router := newTestRouter(t)
	token := mintToken(t, enums.RoleUser)

	req := httptest.NewRequest(http.MethodGet, "/users/ads/"+uuid.NewString(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/users/ads/"+uuid.NewString(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}
