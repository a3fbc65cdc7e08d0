package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"uzazi-salama-backend/models"
	"uzazi-salama-backend/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository is the persistence the auth service needs
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

// AuthService registers users, checks passwords and issues tokens
type AuthService struct {
	users    UserRepository
	tokens   *TokenIssuer
	validate *validator.Validate
	cost     int
}

// AuthServiceOption is a functional option for AuthService
type AuthServiceOption func(*AuthService)

// WithUserRepository sets the user repository
func WithUserRepository(repo UserRepository) AuthServiceOption {
	return func(s *AuthService) {
		s.users = repo
	}
}

// WithTokenIssuer sets the token issuer
func WithTokenIssuer(tokens *TokenIssuer) AuthServiceOption {
	return func(s *AuthService) {
		s.tokens = tokens
	}
}

// WithBcryptCost overrides the password hashing cost
func WithBcryptCost(cost int) AuthServiceOption {
	return func(s *AuthService) {
		s.cost = cost
	}
}

// NewAuthService creates a new auth service
func NewAuthService(opts ...AuthServiceOption) *AuthService {
	s := &AuthService{
		validate: validator.New(),
		cost:     bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Request types are shared with API clients
type (
	RegisterRequest      = models.RegisterRequest
	LoginRequest         = models.LoginRequest
	UpdateProfileRequest = models.UpdateProfileRequest
)

// AuthResult represents a successful register or login
type AuthResult struct {
	Token string
	User  *models.User
}

func (s *AuthService) ready() error {
	if s.users == nil {
		return errors.New("user repository not set")
	}
	if s.tokens == nil {
		return errors.New("token issuer not set")
	}
	return nil
}

func (s *AuthService) check(req any) error {
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

// Register creates a user with a bcrypt password hash and returns a token
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.check(req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:          strings.TrimSpace(req.Name),
		Email:         req.Email,
		Phone:         req.Phone,
		PasswordHash:  string(hash),
		PregnancyWeek: req.PregnancyWeek,
		DueDate:       req.DueDate,
		Language:      req.Language,
	}
	if user.PregnancyWeek == 0 {
		user.PregnancyWeek = models.DefaultPregnancyWeek
	}
	if user.Language == "" {
		user.Language = models.DefaultLanguage
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

// Login checks the password and returns a token
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.check(req); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

// Authenticate resolves a bearer token to a user id
func (s *AuthService) Authenticate(token string) (uuid.UUID, error) {
	if s.tokens == nil {
		return uuid.Nil, errors.New("token issuer not set")
	}
	return s.tokens.Parse(token)
}

// Me returns the profile of userID
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

// UpdateProfile applies the non-nil fields of req
func (s *AuthService) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*models.User, error) {
	if err := s.check(req); err != nil {
		return nil, err
	}
	user, err := s.Me(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.PregnancyWeek != nil {
		user.PregnancyWeek = *req.PregnancyWeek
	}
	if req.DueDate != nil {
		user.DueDate = req.DueDate
	}
	if req.Language != nil {
		user.Language = *req.Language
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
