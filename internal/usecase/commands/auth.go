package commands

import (
	"context"

	"tutorin/internal/domain/user"
	"tutorin/internal/infra"
	"tutorin/internal/pkg/errs"
	"tutorin/internal/pkg/jwt"
	"tutorin/internal/pkg/password"
	"tutorin/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// the response does not reveal which one failed.
	ErrInvalidCredentials = errs.New("invalid email or password")
	ErrAccountBlocked     = errs.New("account is blocked")
)

// CredentialStore is the read port the login flow verifies against.
type CredentialStore interface {
	FindAccountByEmail(ctx context.Context, email string) (*shared.AccountSnapshot, error)
}

type LoginResult struct {
	AccessToken string
	UserID      uuid.UUID
	Name        string
	Role        user.Role
}

type AuthCommands interface {
	Login(ctx context.Context, email, plain string) (*LoginResult, error)
}

type authUseCaseImpl struct {
	accounts CredentialStore
	tokens   *jwt.Service
}

func NewAuthUseCase(accounts CredentialStore, tokens *jwt.Service) AuthCommands {
	return &authUseCaseImpl{accounts: accounts, tokens: tokens}
}

func (uc *authUseCaseImpl) Login(ctx context.Context, email, plain string) (*LoginResult, error) {
	account, err := uc.accounts.FindAccountByEmail(ctx, email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if account.Blocked {
		return nil, ErrAccountBlocked
	}

	if err := password.Compare(account.PasswordHash, plain); err != nil {
		return nil, errs.Mark(err, ErrInvalidCredentials)
	}

	role, err := user.NewRole(account.Role)
	if err != nil {
		return nil, err
	}

	token, err := uc.tokens.GenerateToken(account.ID, role)
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate access token")
	}

	return &LoginResult{
		AccessToken: token,
		UserID:      account.ID,
		Name:        account.Name,
		Role:        role,
	}, nil
}
