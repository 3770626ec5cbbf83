package app

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"appfab/internal/model"
	"appfab/internal/pkg/jwtutil"
	"appfab/internal/pkg/passhash"
	"appfab/internal/repository"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrEmailExists       = errors.New("email already registered")
	ErrInvalidCredential = errors.New("invalid email or password")
	ErrUserNotFound      = errors.New("user not found")
)

type AuthService struct {
	userRepo      *repository.UserRepository
	hasher        passhash.Hasher
	signupCredits int
	jwtSecret     string
	jwtExpiration time.Duration
}

type RegisterInput struct {
	Email    string
	Password string
	Username string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	Token string
	User  *model.User
}

func NewAuthService(
	userRepo *repository.UserRepository,
	hasher passhash.Hasher,
	signupCredits int,
	jwtSecret string,
	jwtExpiration time.Duration,
) *AuthService {
	if signupCredits <= 0 {
		signupCredits = model.SignupCredits
	}
	return &AuthService{
		userRepo:      userRepo,
		hasher:        hasher,
		signupCredits: signupCredits,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

func (s *AuthService) Register(input RegisterInput) (*AuthResult, error) {
	email := strings.TrimSpace(input.Email)
	password := strings.TrimSpace(input.Password)
	username := strings.TrimSpace(input.Username)

	if email == "" || password == "" || username == "" {
		return nil, ErrInvalidInput
	}

	existing, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		UserID:       "user_" + uuid.NewString(),
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		Credits:      s.signupCredits,
		IsPro:        false,
	}
	if err := s.userRepo.Create(user); err != nil {
		// the unique index is authoritative when two registrations race
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	token, err := jwtutil.GenerateToken(s.jwtSecret, s.jwtExpiration, user.UserID, user.Username)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

// Login deliberately reports one error for unknown email and wrong password.
func (s *AuthService) Login(input LoginInput) (*AuthResult, error) {
	email := strings.TrimSpace(input.Email)
	password := strings.TrimSpace(input.Password)
	if email == "" || password == "" {
		return nil, ErrInvalidInput
	}

	var user *model.User
	var err error
	if s.hasher.Deterministic() {
		hash, hashErr := s.hasher.Hash(password)
		if hashErr != nil {
			return nil, hashErr
		}
		user, err = s.userRepo.GetByEmailAndHash(email, hash)
		if err != nil {
			return nil, err
		}
	} else {
		user, err = s.userRepo.GetByEmail(email)
		if err != nil {
			return nil, err
		}
		if user != nil && !s.hasher.Verify(user.PasswordHash, password) {
			user = nil
		}
	}
	if user == nil {
		return nil, ErrInvalidCredential
	}

	token, err := jwtutil.GenerateToken(s.jwtSecret, s.jwtExpiration, user.UserID, user.Username)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) GetUserByID(userID string) (*model.User, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.userRepo.GetByID(userID)
}

// UpgradeToPro flips the pro flag; pro accounts generate without spending
// credits.
func (s *AuthService) UpgradeToPro(userID string) (*model.User, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	updated, err := s.userRepo.SetPro(userID)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrUserNotFound
	}
	return s.userRepo.GetByID(userID)
}
