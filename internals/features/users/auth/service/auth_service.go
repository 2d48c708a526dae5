package service

import (
	"context"
	"errors"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"readingroom_backend/internals/constants"
	database "readingroom_backend/internals/databases"
	"readingroom_backend/internals/features/users/auth/dto"
	authHelper "readingroom_backend/internals/features/users/auth/helper"
	authRepo "readingroom_backend/internals/features/users/auth/repository"
	userModel "readingroom_backend/internals/features/users/user/model"
)

// GoogleIdentity is what a verified Google ID token tells us about the caller.
type GoogleIdentity struct {
	Sub           string
	Email         string
	EmailVerified bool
	Name          string
}

type GoogleVerifier interface {
	Verify(idToken, clientID string) (*GoogleIdentity, error)
}

// googleTokenVerifier checks the token against Google's published certs.
type googleTokenVerifier struct{}

func (googleTokenVerifier) Verify(idToken, clientID string) (*GoogleIdentity, error) {
	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, []string{clientID}); err != nil {
		return nil, err
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return nil, err
	}
	return &GoogleIdentity{
		Sub:           claimSet.Sub,
		Email:         claimSet.Email,
		EmailVerified: claimSet.EmailVerified,
		Name:          claimSet.Name,
	}, nil
}

type AuthService struct {
	Users          authRepo.UserRepository
	Tokens         authRepo.TokenRepository
	JWTSecret      string
	RefreshSecret  string
	GoogleClientID string
	Google         GoogleVerifier
	Now            func() time.Time
	Log            *zap.Logger
}

func NewAuthService(users authRepo.UserRepository, tokens authRepo.TokenRepository, jwtSecret, refreshSecret, googleClientID string, log *zap.Logger) *AuthService {
	return &AuthService{
		Users:          users,
		Tokens:         tokens,
		JWTSecret:      jwtSecret,
		RefreshSecret:  refreshSecret,
		GoogleClientID: googleClientID,
		Google:         googleTokenVerifier{},
		Now:            func() time.Time { return time.Now().UTC() },
		Log:            log,
	}
}

// ClientInfo is stored next to refresh tokens.
type ClientInfo struct {
	UserAgent string
	IP        string
}

type LoginResult struct {
	User   *userModel.UserModel
	Tokens *TokenPair
}

/* ==========================
   REGISTER
========================== */

func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*userModel.UserModel, error) {
	req.Normalize()
	if err := authHelper.ValidateRegisterInput(req.UserName, req.Email, req.Password); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	hash, err := authHelper.HashPassword(req.Password)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Password hashing failed")
	}

	now := s.Now()
	user := &userModel.UserModel{
		ID:        uuid.NewString(),
		UserName:  req.UserName,
		Email:     req.Email,
		Password:  hash,
		FullName:  req.FullName,
		Phone:     req.Phone,
		Role:      constants.RoleStaff,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Users.Create(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, fiber.NewError(fiber.StatusConflict, "Email or user name already registered")
		}
		return nil, err
	}
	return user, nil
}

/* ==========================
   LOGIN
========================== */

func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest, client ClientInfo) (*LoginResult, error) {
	req.Identifier = strings.TrimSpace(req.Identifier)
	if err := authHelper.ValidateLoginInput(req.Identifier, req.Password); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	user, err := s.Users.FindByIdentifier(ctx, req.Identifier)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid identifier or password")
		}
		return nil, err
	}
	if err := authHelper.CheckPasswordHash(user.Password, req.Password); err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid identifier or password")
	}
	if !user.IsActive {
		return nil, fiber.NewError(fiber.StatusForbidden, "Your account has been deactivated")
	}

	pair, err := s.issueTokens(ctx, user, client)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, Tokens: pair}, nil
}

/* ==========================
   LOGIN GOOGLE
========================== */

func (s *AuthService) LoginGoogle(ctx context.Context, idToken string, client ClientInfo) (*LoginResult, error) {
	if strings.TrimSpace(idToken) == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "id_token is required")
	}
	if s.GoogleClientID == "" {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "Google login is not configured")
	}

	ident, err := s.Google.Verify(idToken, s.GoogleClientID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid Google ID Token")
	}

	user, err := s.Users.FindByGoogleID(ctx, ident.Sub)
	switch {
	case err == nil:
	case errors.Is(err, database.ErrNotFound):
		user, err = s.linkOrCreateGoogleUser(ctx, ident)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if !user.IsActive {
		return nil, fiber.NewError(fiber.StatusForbidden, "Your account has been deactivated")
	}
	pair, err := s.issueTokens(ctx, user, client)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, Tokens: pair}, nil
}

func (s *AuthService) linkOrCreateGoogleUser(ctx context.Context, ident *GoogleIdentity) (*userModel.UserModel, error) {
	googleID := ident.Sub

	// existing account with the same email gets the google id attached,
	// but only when Google vouches for the address
	if existing, err := s.Users.FindByEmail(ctx, ident.Email); err == nil {
		if !ident.EmailVerified {
			return nil, fiber.NewError(fiber.StatusConflict, "Email already registered")
		}
		return s.Users.Update(ctx, existing.ID, bson.M{"google_id": googleID, "updated_at": s.Now()})
	} else if !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}

	// random password: the account can only log in through Google until it is changed
	hash, err := authHelper.HashPassword(uuid.NewString())
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Password hashing failed")
	}
	now := s.Now()
	user := &userModel.UserModel{
		ID:        uuid.NewString(),
		UserName:  googleUserName(ident),
		Email:     ident.Email,
		Password:  hash,
		FullName:  ident.Name,
		Role:      constants.RoleStaff,
		GoogleID:  &googleID,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Users.Create(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, fiber.NewError(fiber.StatusConflict, "Email already registered")
		}
		return nil, err
	}
	return user, nil
}

func googleUserName(ident *GoogleIdentity) string {
	base := ident.Email
	if i := strings.IndexByte(base, '@'); i > 0 {
		base = base[:i]
	}
	if len(base) < 3 {
		base = "user"
	}
	return base + "-" + uuid.NewString()[:8]
}

/* ==========================
   CURRENT USER / PROFILE
========================== */

func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*userModel.UserModel, error) {
	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*userModel.UserModel, error) {
	patch := req.ToPatch()
	if len(patch) == 0 {
		return s.CurrentUser(ctx, userID)
	}
	patch["updated_at"] = s.Now()

	user, err := s.Users.Update(ctx, userID, patch)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrNotFound):
			return nil, fiber.NewError(fiber.StatusNotFound, "User not found")
		case errors.Is(err, database.ErrDuplicate):
			return nil, fiber.NewError(fiber.StatusConflict, "User name already taken")
		}
		return nil, err
	}
	return user, nil
}

/* ==========================
   PASSWORD
========================== */

func (s *AuthService) ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error {
	user, err := s.CurrentUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := authHelper.CheckPasswordHash(user.Password, req.CurrentPassword); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Current password incorrect")
	}
	if err := authHelper.ValidatePassword(req.NewPassword); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if req.NewPassword == req.CurrentPassword {
		return fiber.NewError(fiber.StatusBadRequest, "New password must differ from the current one")
	}

	hash, err := authHelper.HashPassword(req.NewPassword)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to hash new password")
	}
	_, err = s.Users.Update(ctx, userID, bson.M{"password": hash, "updated_at": s.Now()})
	return err
}
