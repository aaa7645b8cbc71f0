package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/fitnest/fitnest-api/internal/domain/user"
	"github.com/fitnest/fitnest-api/internal/pkg/jwt"
	"github.com/fitnest/fitnest-api/internal/pkg/password"
)

// Service handles authentication business logic
type Service struct {
	userRepo   user.Repository
	jwtService *jwt.Service
	redis      *redis.Client // nil if Redis disabled
}

// NewService creates auth service
func NewService(userRepo user.Repository, jwtService *jwt.Service, redis *redis.Client) *Service {
	return &Service{
		userRepo:   userRepo,
		jwtService: jwtService,
		redis:      redis,
	}
}

// Register creates new user account
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)
	req.Username = normalizeUsername(req.Username)

	// 1. Check duplicates up front for friendlier errors
	if existing, _ := s.userRepo.GetByEmail(ctx, req.Email); existing != nil {
		return nil, ErrEmailAlreadyExists
	}
	if existing, _ := s.userRepo.GetByUsername(ctx, req.Username); existing != nil {
		return nil, ErrUsernameAlreadyExists
	}

	// 2. Hash password
	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	// 3. Create user
	now := time.Now()
	u := &user.User{
		ID:           uuid.New(),
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		// A racing registration can still hit the unique index
		return nil, mapCreateUserError(err)
	}

	// 4. Generate tokens
	return s.generateTokens(ctx, u)
}

// Login authenticates user by username and password
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	req.Username = normalizeUsername(req.Username)

	u, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}

	if !password.Verify(req.Password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.generateTokens(ctx, u)
}

// Refresh refreshes access token using refresh token
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	if refreshToken == "" {
		return nil, ErrRefreshTokenRequired
	}

	// 1. Validate refresh token in Redis (we store hash(refresh))
	refreshHash := jwt.HashRefreshToken(refreshToken)
	userID, err := s.getRefreshToken(ctx, refreshHash)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	// 2. Get user
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}

	// 3. Delete old refresh token (token rotation)
	_ = s.deleteRefreshToken(ctx, refreshHash)

	// 4. Generate new tokens
	return s.generateTokens(ctx, u)
}

// Logout invalidates refresh token
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil // Nothing to logout
	}

	refreshHash := jwt.HashRefreshToken(refreshToken)
	return s.deleteRefreshToken(ctx, refreshHash)
}

// GetCurrentUser returns current user by ID
func (s *Service) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}

	resp := NewUserResponse(u.ID, u.Email, u.Username, u.CreatedAt)
	return &resp, nil
}

// generateTokens creates access and refresh tokens
func (s *Service) generateTokens(ctx context.Context, u *user.User) (*AuthResponse, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(u.ID, u.Username)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtService.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	// Store hash(refresh) in Redis
	refreshHash := jwt.HashRefreshToken(refreshToken)
	if err := s.storeRefreshToken(ctx, refreshHash, u.ID); err != nil {
		return nil, err
	}

	return &AuthResponse{
		User: NewUserResponse(u.ID, u.Email, u.Username, u.CreatedAt),
		Tokens: TokensResponse{
			AccessToken:  accessToken,
			RefreshToken: refreshToken, // return raw refresh to client
			ExpiresIn:    int(s.jwtService.GetAccessTTL().Seconds()),
		},
	}, nil
}

// Redis helpers (handle nil redis gracefully)
func (s *Service) storeRefreshToken(ctx context.Context, tokenHash string, userID uuid.UUID) error {
	if s.redis == nil {
		return nil // Skip if Redis not configured
	}
	return s.redis.Set(ctx, "refresh:"+tokenHash, userID.String(), s.jwtService.GetRefreshTTL()).Err()
}

func (s *Service) getRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	if s.redis == nil {
		// Without Redis, refresh tokens don't work
		return uuid.Nil, ErrInvalidRefreshToken
	}
	val, err := s.redis.Get(ctx, "refresh:"+tokenHash).Result()
	if err != nil {
		return uuid.Nil, ErrInvalidRefreshToken
	}
	return uuid.Parse(val)
}

func (s *Service) deleteRefreshToken(ctx context.Context, tokenHash string) error {
	if s.redis == nil {
		return nil
	}
	return s.redis.Del(ctx, "refresh:"+tokenHash).Err()
}
