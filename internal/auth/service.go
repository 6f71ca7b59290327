package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/subslot/subslot-backend/internal/accounts"
	pkgAuth "github.com/subslot/subslot-backend/pkg/auth"
	"github.com/subslot/subslot-backend/pkg/config"
	"github.com/subslot/subslot-backend/pkg/db"
	"github.com/subslot/subslot-backend/pkg/enums"
	pkgerrors "github.com/subslot/subslot-backend/pkg/errors"
	"github.com/subslot/subslot-backend/pkg/otp"
	"github.com/subslot/subslot-backend/pkg/security"
)

const (
	msgProvideAllFields       = "Please provide all required fields"
	msgProvideAdminFields     = "Please provide fullName, email, and password"
	msgProvideEmailPassword   = "Please provide email and password"
	msgProvideEmailOTP        = "Please provide email and otp"
	msgProvideEmail           = "Please provide email"
	msgPasswordsDoNotMatch    = "Passwords do not match"
	msgPasswordTooShort       = "Password must be at least 6 characters"
	msgUserExists             = "User already exists with this email"
	msgAdminExists            = "Admin already exists with this email"
	msgInvalidCredentials     = "Invalid credentials"
	msgInvalidEmailOrPassword = "Invalid email or password"
	msgAccountDeactivated     = "Your account has been deactivated"
	msgNotVerified            = "Please verify your account before logging in"
	msgInvalidOrExpiredOTP    = "Invalid or expired OTP"
	msgEnterCorrectEmail      = "Please enter correct email"
	msgCurrentPasswordWrong   = "Current password is incorrect"
)

const minPasswordLength = 6

// OTPMailer dispatches verification codes.
type OTPMailer interface {
	SendOTP(ctx context.Context, recipient, code string, expiryMinutes int) error
}

// Service defines the behavior needed by the auth controllers.
type Service interface {
	RegisterUser(ctx context.Context, req RegisterUserRequest) (*accounts.UserDTO, error)
	RegisterAdmin(ctx context.Context, req RegisterAdminRequest) (*accounts.AdminDTO, error)
	VerifyOTP(ctx context.Context, role enums.Role, req VerifyOTPRequest) (*SessionResult, error)
	ResendOTP(ctx context.Context, role enums.Role, req ResendOTPRequest) error
	LoginUser(ctx context.Context, req LoginRequest) (*SessionResult, error)
	LoginAdmin(ctx context.Context, req LoginRequest) (*SessionResult, error)
	Me(ctx context.Context, role enums.Role, id uuid.UUID) (any, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*accounts.UserDTO, error)
}

type service struct {
	users       UserStore
	admins      AdminStore
	mail        OTPMailer
	jwtCfg      config.JWTConfig
	passwordCfg config.PasswordConfig
	otpCfg      config.OTPConfig
	now         func() time.Time
	generateOTP func() (string, error)
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	Users          UserStore
	Admins         AdminStore
	Mailer         OTPMailer
	JWTConfig      config.JWTConfig
	PasswordConfig config.PasswordConfig
	OTPConfig      config.OTPConfig

	// Now and GenerateOTP are overridable for tests.
	Now         func() time.Time
	GenerateOTP func() (string, error)
}

// NewService constructs an auth service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Users == nil {
		return nil, fmt.Errorf("user store is required")
	}
	if params.Admins == nil {
		return nil, fmt.Errorf("admin store is required")
	}
	if params.Mailer == nil {
		return nil, fmt.Errorf("mailer is required")
	}
	now := params.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	gen := params.GenerateOTP
	if gen == nil {
		gen = otp.Generate
	}
	return &service{
		users:       params.Users,
		admins:      params.Admins,
		mail:        params.Mailer,
		jwtCfg:      params.JWTConfig,
		passwordCfg: params.PasswordConfig,
		otpCfg:      params.OTPConfig,
		now:         now,
		generateOTP: gen,
	}, nil
}

func (s *service) RegisterUser(ctx context.Context, req RegisterUserRequest) (*accounts.UserDTO, error) {
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Mobile == "" ||
		req.Password == "" || req.ConfirmPassword == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, msgProvideAllFields)
	}
	if req.Password != req.ConfirmPassword {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, msgPasswordsDoNotMatch)
	}
	if len(req.Password) < minPasswordLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, msgPasswordTooShort)
	}

	email := normalizeEmail(req.Email)
	if err := s.ensureEmailFree(ctx, userKind{s.users}, email, msgUserExists); err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	code, expires, err := s.issueOTP(ctx, email)
	if err != nil {
		return nil, err
	}

	mobile := req.Mobile
	user, err := s.users.Create(ctx, accounts.CreateUserDTO{
		Email:        email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        &mobile,
		OTP:          &code,
		OTPExpires:   &expires,
	})
	if err != nil {
		// The pre-check above is racy; the unique index is the authority.
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeDuplicate, msgUserExists)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
	}
	return accounts.FromUserModel(user), nil
}

func (s *service) RegisterAdmin(ctx context.Context, req RegisterAdminRequest) (*accounts.AdminDTO, error) {
	if req.FullName == "" || req.Email == "" || req.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, msgProvideAdminFields)
	}
	if len(req.Password) < minPasswordLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, msgPasswordTooShort)
	}

	email := normalizeEmail(req.Email)
	if err := s.ensureEmailFree(ctx, adminKind{s.admins}, email, msgAdminExists); err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	code, expires, err := s.issueOTP(ctx, email)
	if err != nil {
		return nil, err
	}

	admin, err := s.admins.Create(ctx, accounts.CreateAdminDTO{
		Email:        email,
		PasswordHash: hash,
		FullName:     req.FullName,
		OTP:          &code,
		OTPExpires:   &expires,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeDuplicate, msgAdminExists)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create admin")
	}
	return accounts.FromAdminModel(admin), nil
}

func (s *service) VerifyOTP(ctx context.Context, role enums.Role, req VerifyOTPRequest) (*SessionResult, error) {
	if req.Email == "" || req.OTP == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, msgProvideEmailOTP)
	}

	kind, err := s.kindFor(role)
	if err != nil {
		return nil, err
	}

	acct, err := kind.findByOTP(ctx, normalizeEmail(req.Email), req.OTP)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, msgInvalidOrExpiredOTP)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup account")
	}
	if otp.Expired(acct.otpExpires, s.now()) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, msgInvalidOrExpiredOTP)
	}

	acct.markVerified()
	if err := acct.save(ctx); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist verification")
	}

	token, err := s.mint(acct.id, kind.role())
	if err != nil {
		return nil, err
	}
	return &SessionResult{Token: token, Account: acct.dto()}, nil
}

func (s *service) ResendOTP(ctx context.Context, role enums.Role, req ResendOTPRequest) error {
	if req.Email == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, msgProvideEmail)
	}

	kind, err := s.kindFor(role)
	if err != nil {
		return err
	}

	email := normalizeEmail(req.Email)
	acct, err := kind.find(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, msgEnterCorrectEmail)
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup account")
	}

	code, expires, err := s.issueOTP(ctx, email)
	if err != nil {
		return err
	}

	// Resend always drops the account back to unverified, matching the
	// established API behavior even for already-verified accounts.
	acct.reissueOTP(code, expires)
	if err := acct.save(ctx); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist otp")
	}
	return nil
}

func (s *service) LoginUser(ctx context.Context, req LoginRequest) (*SessionResult, error) {
	return s.login(ctx, userKind{s.users}, req)
}

func (s *service) LoginAdmin(ctx context.Context, req LoginRequest) (*SessionResult, error) {
	return s.login(ctx, adminKind{s.admins}, req)
}

func (s *service) login(ctx context.Context, kind accountKind, req LoginRequest) (*SessionResult, error) {
	if req.Email == "" || req.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, msgProvideEmailPassword)
	}

	acct, err := kind.find(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, kind.credentialsMessage())
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup account")
	}

	valid, err := security.VerifyPassword(req.Password, acct.passwordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, kind.credentialsMessage())
	}
	if !acct.verified {
		return nil, pkgerrors.New(pkgerrors.CodeNotVerified, msgNotVerified)
	}
	if !acct.active {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, msgAccountDeactivated)
	}

	token, err := s.mint(acct.id, kind.role())
	if err != nil {
		return nil, err
	}
	return &SessionResult{Token: token, Account: acct.dto()}, nil
}

func (s *service) Me(ctx context.Context, role enums.Role, id uuid.UUID) (any, error) {
	kind, err := s.kindFor(role)
	if err != nil {
		return nil, err
	}
	acct, err := kind.findByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Account not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup account")
	}
	return acct.dto(), nil
}

func (s *service) UpdateProfile(ctx context.Context, id uuid.UUID, req UpdateProfileRequest) (*accounts.UserDTO, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Account not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	if req.Email != nil && normalizeEmail(*req.Email) != user.Email {
		email := normalizeEmail(*req.Email)
		taken, err := s.users.EmailTakenByOther(ctx, email, user.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check email")
		}
		if taken {
			return nil, pkgerrors.New(pkgerrors.CodeDuplicate, msgUserExists)
		}
		user.Email = email
	}

	if req.NewPassword != nil {
		if req.CurrentPassword == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, msgCurrentPasswordWrong)
		}
		valid, err := security.VerifyPassword(*req.CurrentPassword, user.PasswordHash)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
		}
		if !valid {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, msgCurrentPasswordWrong)
		}
		if len(*req.NewPassword) < minPasswordLength {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, msgPasswordTooShort)
		}
		hash, err := security.HashPassword(*req.NewPassword, s.passwordCfg)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
		}
		user.PasswordHash = hash
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Phone != nil {
		user.Phone = req.Phone
	}
	if req.Address != nil {
		user.Address = req.Address
	}
	if req.City != nil {
		user.City = req.City
	}
	if req.State != nil {
		user.State = req.State
	}
	if req.Zip != nil {
		user.Zip = req.Zip
	}

	if err := s.users.Save(ctx, user); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeDuplicate, msgUserExists)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist profile")
	}
	return accounts.FromUserModel(user), nil
}

// issueOTP generates a code and sends it. The email must go out before any
// record is created or mutated so a transport failure leaves no account stuck
// without a deliverable code.
func (s *service) issueOTP(ctx context.Context, email string) (string, time.Time, error) {
	code, err := s.generateOTP()
	if err != nil {
		return "", time.Time{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate otp")
	}
	expires := otp.ExpiryFrom(s.now(), s.otpCfg.Expiry())
	if err := s.mail.SendOTP(ctx, email, code, s.otpCfg.ExpiryMinutes); err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return "", time.Time{}, typed
		}
		return "", time.Time{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send otp email")
	}
	return code, expires, nil
}

func (s *service) ensureEmailFree(ctx context.Context, kind accountKind, email, takenMessage string) error {
	_, err := kind.find(ctx, email)
	if err == nil {
		return pkgerrors.New(pkgerrors.CodeDuplicate, takenMessage)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup account")
}

func (s *service) mint(id uuid.UUID, role enums.Role) (string, error) {
	token, err := pkgAuth.MintAccessToken(s.jwtCfg, s.now(), pkgAuth.AccessTokenPayload{
		AccountID: id,
		Role:      role,
	})
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	return token, nil
}

func (s *service) kindFor(role enums.Role) (accountKind, error) {
	switch role {
	case enums.RoleUser:
		return userKind{s.users}, nil
	case enums.RoleAdmin:
		return adminKind{s.admins}, nil
	default:
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "unknown account role")
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
