package testhelpers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/menuqr/backend/internal/types"
)

// MockTokenValidator is a testify mock of the bearer token check used by the
// auth middleware.
type MockTokenValidator struct {
	mock.Mock
}

func (m *MockTokenValidator) ValidateToken(ctx context.Context, token string) (*types.TokenClaims, error) {
	args := m.Called(ctx, token)
	claims, _ := args.Get(0).(*types.TokenClaims)
	return claims, args.Error(1)
}
