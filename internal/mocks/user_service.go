package mocks

import (
	"context"

	"github.com/google/uuid"
)

// MockUserService implements service.UserService for testing.
type MockUserService struct {
	// Custom behavior functions
	ChangePasswordFn func(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error
	DeleteAccountFn  func(ctx context.Context, userID uuid.UUID, password string) error

	// Err is returned by both operations when no function field is set.
	Err error

	// Call tracking for verification
	ChangePasswordCalls int
	DeleteAccountCalls  int
}

// ChangePassword implements the service.UserService interface.
func (m *MockUserService) ChangePassword(
	ctx context.Context,
	userID uuid.UUID,
	currentPassword, newPassword string,
) error {
	m.ChangePasswordCalls++
	if m.ChangePasswordFn != nil {
		return m.ChangePasswordFn(ctx, userID, currentPassword, newPassword)
	}
	return m.Err
}

// DeleteAccount implements the service.UserService interface.
func (m *MockUserService) DeleteAccount(
	ctx context.Context,
	userID uuid.UUID,
	password string,
) error {
	m.DeleteAccountCalls++
	if m.DeleteAccountFn != nil {
		return m.DeleteAccountFn(ctx, userID, password)
	}
	return m.Err
}
