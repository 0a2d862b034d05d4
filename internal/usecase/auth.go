package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/shortly-app/shortly/internal/entity"

	"golang.org/x/crypto/bcrypt"
)

type userRepository interface {
	Save(ctx context.Context, name, email, passwordHash string) (*entity.User, error)
	SaveFederated(ctx context.Context, googleID, name, email string) (*entity.User, error)
	RetrieveByID(ctx context.Context, id int64) (*entity.User, error)
	RetrieveByEmail(ctx context.Context, email string) (*entity.User, error)
	RetrieveByGoogleID(ctx context.Context, googleID string) (*entity.User, error)
}

// AuthUseCase implements registration, credential checks and external
// identity federation. Token issuance lives in the delivery layer; this
// type only decides who the caller is.
type AuthUseCase struct {
	userRepo userRepository
}

func NewAuthUseCase(userRepo userRepository) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo}
}

// Register creates a password-backed account. The raw password is never
// stored, only its bcrypt hash.
func (uc *AuthUseCase) Register(ctx context.Context, name, email, password string) (*entity.User, error) {
	const op = "usecase.AuthUseCase.Register"

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to hash password: %w", op, err)
	}

	user, err := uc.userRepo.Save(ctx, name, email, string(hash))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to save user: %w", op, err)
	}

	return user, nil
}

// Login verifies the email/password pair. An unknown email, a
// federated-only account without a password and a hash mismatch all look
// the same to the caller: entity.ErrInvalidCredentials.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*entity.User, error) {
	const op = "usecase.AuthUseCase.Login"

	user, err := uc.userRepo.RetrieveByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrInvalidCredentials)
		}

		return nil, fmt.Errorf("%s: failed to retrieve user: %w", op, err)
	}

	if user.PasswordHash == "" {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrInvalidCredentials)
	}

	return user, nil
}

// GetUser returns the user behind a verified token subject.
func (uc *AuthUseCase) GetUser(ctx context.Context, userID int64) (*entity.User, error) {
	const op = "usecase.AuthUseCase.GetUser"

	user, err := uc.userRepo.RetrieveByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to retrieve user: %w", op, err)
	}

	return user, nil
}

// FederateGoogle exchanges a Google profile for a local user,
// creating one on first login keyed by the Google id.
func (uc *AuthUseCase) FederateGoogle(ctx context.Context, googleID, name, email string) (*entity.User, error) {
	const op = "usecase.AuthUseCase.FederateGoogle"

	user, err := uc.userRepo.RetrieveByGoogleID(ctx, googleID)
	if err == nil {
		return user, nil
	}

	if !errors.Is(err, entity.ErrUserNotFound) {
		return nil, fmt.Errorf("%s: failed to retrieve user: %w", op, err)
	}

	user, err = uc.userRepo.SaveFederated(ctx, googleID, name, email)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to save federated user: %w", op, err)
	}

	return user, nil
}
