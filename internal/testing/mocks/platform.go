package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Guliveer/autostarter/internal/intent"
)

// MockPlatform is a testify mock for platform.Platform.
type MockPlatform struct {
	mock.Mock
}

// Name is not recorded; it is only used for log fields.
func (m *MockPlatform) Name() string { return "mock" }

func (m *MockPlatform) Brand(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	//nolint:wrapcheck // mock
	return args.String(0), args.Error(1)
}

func (m *MockPlatform) PackageInstalled(ctx context.Context, pkg string) (bool, error) {
	args := m.Called(ctx, pkg)
	//nolint:wrapcheck // mock
	return args.Bool(0), args.Error(1)
}

func (m *MockPlatform) ActivityFound(ctx context.Context, in intent.Intent) (bool, error) {
	args := m.Called(ctx, in)
	//nolint:wrapcheck // mock
	return args.Bool(0), args.Error(1)
}

func (m *MockPlatform) StartActivity(ctx context.Context, in intent.Intent) error {
	args := m.Called(ctx, in)
	//nolint:wrapcheck // mock
	return args.Error(0)
}
