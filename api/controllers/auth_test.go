package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/subslot/subslot-backend/api/middleware"
	"github.com/subslot/subslot-backend/internal/accounts"
	"github.com/subslot/subslot-backend/internal/auth"
	"github.com/subslot/subslot-backend/pkg/enums"
	pkgerrors "github.com/subslot/subslot-backend/pkg/errors"
)

type stubAuthService struct {
	registerUserFn func(context.Context, auth.RegisterUserRequest) (*accounts.UserDTO, error)
	loginUserFn    func(context.Context, auth.LoginRequest) (*auth.SessionResult, error)
	verifyFn       func(context.Context, enums.Role, auth.VerifyOTPRequest) (*auth.SessionResult, error)
	resendFn       func(context.Context, enums.Role, auth.ResendOTPRequest) error
	meFn           func(context.Context, enums.Role, uuid.UUID) (any, error)
}

func (s *stubAuthService) RegisterUser(ctx context.Context, req auth.RegisterUserRequest) (*accounts.UserDTO, error) {
	if s.registerUserFn != nil {
		return s.registerUserFn(ctx, req)
	}
	return &accounts.UserDTO{}, nil
}

func (s *stubAuthService) RegisterAdmin(ctx context.Context, req auth.RegisterAdminRequest) (*accounts.AdminDTO, error) {
	return &accounts.AdminDTO{}, nil
}

func (s *stubAuthService) VerifyOTP(ctx context.Context, role enums.Role, req auth.VerifyOTPRequest) (*auth.SessionResult, error) {
	if s.verifyFn != nil {
		return s.verifyFn(ctx, role, req)
	}
	return &auth.SessionResult{Token: "token"}, nil
}

func (s *stubAuthService) ResendOTP(ctx context.Context, role enums.Role, req auth.ResendOTPRequest) error {
	if s.resendFn != nil {
		return s.resendFn(ctx, role, req)
	}
	return nil
}

func (s *stubAuthService) LoginUser(ctx context.Context, req auth.LoginRequest) (*auth.SessionResult, error) {
	if s.loginUserFn != nil {
		return s.loginUserFn(ctx, req)
	}
	return &auth.SessionResult{Token: "token"}, nil
}

func (s *stubAuthService) LoginAdmin(ctx context.Context, req auth.LoginRequest) (*auth.SessionResult, error) {
	return &auth.SessionResult{Token: "token"}, nil
}

func (s *stubAuthService) Me(ctx context.Context, role enums.Role, id uuid.UUID) (any, error) {
	if s.meFn != nil {
		return s.meFn(ctx, role, id)
	}
	return &accounts.UserDTO{ID: id}, nil
}

func (s *stubAuthService) UpdateProfile(ctx context.Context, id uuid.UUID, req auth.UpdateProfileRequest) (*accounts.UserDTO, error) {
	return &accounts.UserDTO{ID: id}, nil
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	return body
}

func TestUserRegisterCreated(t *testing.T) {
	var got auth.RegisterUserRequest
	svc := &stubAuthService{
		registerUserFn: func(ctx context.Context, req auth.RegisterUserRequest) (*accounts.UserDTO, error) {
			got = req
			return &accounts.UserDTO{Email: "jane@example.com"}, nil
		},
	}

	payload := `{"firstName":"Jane","lastName":"Doe","email":"jane@example.com","mobile":"1234567890","password":"secret1","confirmPassword":"secret1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	UserRegister(svc, nil)(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	if body["message"] != "User registered successfully" {
		t.Fatalf("unexpected message %v", body["message"])
	}
	if got.Email != "jane@example.com" {
		t.Fatalf("service did not receive the payload: %+v", got)
	}
}

func TestUserRegisterValidationError(t *testing.T) {
	svc := &stubAuthService{
		registerUserFn: func(ctx context.Context, req auth.RegisterUserRequest) (*accounts.UserDTO, error) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Please provide all required fields")
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	UserRegister(svc, nil)(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	if body["success"] != false {
		t.Fatalf("expected success=false")
	}
	if body["message"] != "Please provide all required fields" {
		t.Fatalf("unexpected message %v", body["message"])
	}
}

func TestUserLoginReturnsToken(t *testing.T) {
	svc := &stubAuthService{
		loginUserFn: func(ctx context.Context, req auth.LoginRequest) (*auth.SessionResult, error) {
			return &auth.SessionResult{Token: "signed", Account: &accounts.UserDTO{Email: req.Email}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"jane@example.com","password":"secret1"}`))
	rec := httptest.NewRecorder()
	UserLogin(svc, nil)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	if body["token"] != "signed" {
		t.Fatalf("expected token in envelope, got %v", body["token"])
	}
	if body["message"] != "Login successful" {
		t.Fatalf("unexpected message %v", body["message"])
	}
}

func TestUserLoginUnauthorized(t *testing.T) {
	svc := &stubAuthService{
		loginUserFn: func(ctx context.Context, req auth.LoginRequest) (*auth.SessionResult, error) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Invalid credentials")
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"jane@example.com","password":"wrong12"}`))
	rec := httptest.NewRecorder()
	UserLogin(svc, nil)(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	if body["message"] != "Invalid credentials" {
		t.Fatalf("unexpected message %v", body["message"])
	}
}

func TestVerifyOTPPassesRole(t *testing.T) {
	var gotRole enums.Role
	svc := &stubAuthService{
		verifyFn: func(ctx context.Context, role enums.Role, req auth.VerifyOTPRequest) (*auth.SessionResult, error) {
			gotRole = role
			return &auth.SessionResult{Token: "signed"}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/admin/verifyOtp", strings.NewReader(`{"email":"a@b.c","otp":"1234"}`))
	rec := httptest.NewRecorder()
	AdminVerifyOTP(svc, nil)(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if gotRole != enums.RoleAdmin {
		t.Fatalf("expected admin role, got %s", gotRole)
	}
	body := decodeEnvelope(t, rec)
	if body["message"] != "OTP verified successfully" {
		t.Fatalf("unexpected message %v", body["message"])
	}
}

func TestResendOTPNotFound(t *testing.T) {
	svc := &stubAuthService{
		resendFn: func(ctx context.Context, role enums.Role, req auth.ResendOTPRequest) error {
			return pkgerrors.New(pkgerrors.CodeNotFound, "Please enter correct email")
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/resendOtp", strings.NewReader(`{"email":"a@b.c"}`))
	rec := httptest.NewRecorder()
	UserResendOTP(svc, nil)(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	if body["message"] != "Please enter correct email" {
		t.Fatalf("unexpected message %v", body["message"])
	}
}

func TestAuthMeRequiresContext(t *testing.T) {
	svc := &stubAuthService{}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	AuthMe(svc, nil)(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}

	id := uuid.New()
	ctx := middleware.WithUserID(context.Background(), id.String())
	ctx = middleware.WithRole(ctx, string(enums.RoleUser))
	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil).WithContext(ctx)
	rec = httptest.NewRecorder()
	AuthMe(svc, nil)(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}

func TestAuthLogoutMessage(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()
	AuthLogout()(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	if body["message"] != "Logout successful. Please delete the token from client side." {
		t.Fatalf("unexpected message %v", body["message"])
	}
}
