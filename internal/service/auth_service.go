package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/adamcernik/biketime-public-sub000/internal/dto"
	"github.com/adamcernik/biketime-public-sub000/internal/repository"
)

// ErrInvalidCredentials covers both unknown accounts and wrong passwords so
// the login endpoint never leaks which one it was.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService issues dealer access tokens.
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	dealers   repository.DealerRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(dealers repository.DealerRepository, jwtSecret string, tokenTTL time.Duration) AuthService {
	return &authService{dealers: dealers, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	dealer, err := s.dealers.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(dealer.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"dealer_id": dealer.ID.Hex(),
		"email":     dealer.Email,
		"tier":      dealer.Tier,
		"role":      dealer.Role,
		"iat":       now.Unix(),
		"exp":       now.Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.tokenTTL.Seconds()),
		Dealer: dto.DealerInfo{
			ID:    dealer.ID.Hex(),
			Email: dealer.Email,
			Name:  dealer.Name,
			Tier:  dealer.Tier,
			Role:  dealer.Role,
		},
	}, nil
}
