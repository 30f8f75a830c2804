package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/yaolab/liuyao-api/internal/service/auth"
	"github.com/yaolab/liuyao-api/internal/store"
)

// UserService provides account management for authenticated users. Both
// operations re-check the caller's password against the stored hash, so a
// stolen access token alone is not enough to take over or destroy an account.
type UserService interface {
	// ChangePassword verifies currentPassword and replaces the stored hash
	// with one derived from newPassword.
	// Returns ErrWrongPassword if currentPassword does not match.
	ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error

	// DeleteAccount verifies password and permanently removes the account.
	// Archived readings are removed with it.
	// Returns ErrWrongPassword if password does not match.
	DeleteAccount(ctx context.Context, userID uuid.UUID, password string) error
}

// userServiceImpl implements the UserService interface
type userServiceImpl struct {
	db               *sql.DB
	userStore        store.UserStore
	passwordVerifier auth.PasswordVerifier
	logger           *slog.Logger
}

// NewUserService creates a new UserService. The *sql.DB is the transaction
// source; the user store is bound to each transaction through WithTx.
func NewUserService(
	db *sql.DB,
	userStore store.UserStore,
	passwordVerifier auth.PasswordVerifier,
	logger *slog.Logger,
) UserService {
	if logger == nil {
		logger = slog.Default()
	}

	return &userServiceImpl{
		db:               db,
		userStore:        userStore,
		passwordVerifier: passwordVerifier,
		logger:           logger.With("component", "user_service"),
	}
}

// ChangePassword verifies the current password and writes the new one. The
// read and the write share one transaction, so two concurrent changes cannot
// interleave between the check and the update.
func (s *userServiceImpl) ChangePassword(
	ctx context.Context,
	userID uuid.UUID,
	currentPassword, newPassword string,
) error {
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, err := txStore.GetByID(ctx, userID)
		if err != nil {
			s.logger.Error("failed to retrieve user for password change",
				"error", err,
				"user_id", userID)
			return fmt.Errorf("failed to retrieve user for password change: %w", err)
		}

		if err := s.passwordVerifier.Compare(user.HashedPassword, currentPassword); err != nil {
			s.logger.Debug("password change rejected, current password mismatch",
				"user_id", userID)
			return ErrWrongPassword
		}

		// The store hashes the plaintext password during Update.
		user.Password = newPassword
		if err := txStore.Update(ctx, user); err != nil {
			s.logger.Error("failed to update password",
				"error", err,
				"user_id", userID)
			return fmt.Errorf("failed to update password: %w", err)
		}

		s.logger.Info("password changed", "user_id", userID)
		return nil
	})
}

// DeleteAccount verifies the password and deletes the user row. The readings
// table cascades on user delete, so the archive goes with it.
func (s *userServiceImpl) DeleteAccount(
	ctx context.Context,
	userID uuid.UUID,
	password string,
) error {
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, err := txStore.GetByID(ctx, userID)
		if err != nil {
			s.logger.Error("failed to retrieve user for account deletion",
				"error", err,
				"user_id", userID)
			return fmt.Errorf("failed to retrieve user for account deletion: %w", err)
		}

		if err := s.passwordVerifier.Compare(user.HashedPassword, password); err != nil {
			s.logger.Debug("account deletion rejected, password mismatch",
				"user_id", userID)
			return ErrWrongPassword
		}

		if err := txStore.Delete(ctx, userID); err != nil {
			s.logger.Error("failed to delete user",
				"error", err,
				"user_id", userID)
			return fmt.Errorf("failed to delete user: %w", err)
		}

		s.logger.Info("user account deleted", "user_id", userID)
		return nil
	})
}
