package readstore

import (
	"context"

	"tutorin/internal/infra"
	"tutorin/internal/infra/db"
	"tutorin/internal/pkg/pgconv"
	"tutorin/internal/usecase/shared"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

const findAccountByEmailQuery = `
SELECT id, email, name, role, password, blocked
FROM users
WHERE email = $1`

func (r *UserReadStore) FindAccountByEmail(ctx context.Context, email string) (*shared.AccountSnapshot, error) {
	var s shared.AccountSnapshot
	err := r.db.QueryRow(ctx, findAccountByEmailQuery, email).Scan(
		&s.ID, &s.Email, &s.Name, &s.Role, &s.PasswordHash, &s.Blocked,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("account not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find account", err)
	}
	return &s, nil
}
