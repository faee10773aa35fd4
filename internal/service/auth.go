package service

import (
	"context"

	"mealmatch/pkg/auth"
)

type AuthServiceImpl struct {
	tokens *auth.TokenManager
}

func NewAuthService(tokens *auth.TokenManager) *AuthServiceImpl {
	return &AuthServiceImpl{tokens: tokens}
}

func (s *AuthServiceImpl) ParseToken(ctx context.Context, token string) (int64, string, error) {
	claims, err := s.tokens.ParseToken(token)
	if err != nil {
		return 0, "", err
	}
	return claims.UserID, claims.Role, nil
}
