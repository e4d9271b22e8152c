package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Oracle is a testify mock for model.Oracle.
type Oracle struct {
	mock.Mock
}

func (m *Oracle) CheckUsername(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}
