package testhelpers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/vegandiet/backend/internal/types"
)

// MockTokenValidator is a mock implementation of middleware.TokenValidator
type MockTokenValidator struct {
	mock.Mock
}

func (m *MockTokenValidator) ValidateToken(ctx context.Context, token string) (*types.TokenClaims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}

// AcceptToken makes the mock accept token as uid
func (m *MockTokenValidator) AcceptToken(token, uid string) *mock.Call {
	return m.On("ValidateToken", mock.Anything, token).Return(&types.TokenClaims{UserID: uid}, nil)
}

// MockAccountRemover is a mock implementation of service.AccountRemover
type MockAccountRemover struct {
	mock.Mock
}

func (m *MockAccountRemover) DeleteUser(ctx context.Context, uid string) error {
	return m.Called(ctx, uid).Error(0)
}
