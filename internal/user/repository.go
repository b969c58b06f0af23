// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/accounts-api/internal/config"
	"github.com/carterperez-dev/accounts-api/internal/core"
)

type Repository interface {
	CreateWithCredential(ctx context.Context, user *User, hash string) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetCredential(ctx context.Context, credentialsID int64) (*Credential, error)
	Update(ctx context.Context, user *User, newHash *string) error
	SoftDelete(ctx context.Context, id int64) error
	List(ctx context.Context, params ListUsersParams) ([]User, int, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type repository struct {
	db         *sqlx.DB
	pagination config.PaginationConfig
}

func NewRepository(db *sqlx.DB, pagination config.PaginationConfig) Repository {
	return &repository{db: db, pagination: pagination}
}

const userColumns = `
	id, name, email, email_confirmed, is_admin, deleted,
	created_at, updated_at, credentials_id`

// CreateWithCredential inserts the credential row first (the user row
// references it), then the user row, in one transaction. A failed user
// insert rolls the credential back, so no orphan can survive.
func (r *repository) CreateWithCredential(
	ctx context.Context,
	user *User,
	hash string,
) error {
	err := core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		credQuery := `
			INSERT INTO credentials (hash)
			VALUES ($1)
			RETURNING id`

		if err := tx.GetContext(ctx, &user.CredentialsID, credQuery, hash); err != nil {
			return fmt.Errorf("create credential: %w", err)
		}

		userQuery := `
			INSERT INTO users (name, email, email_confirmed, is_admin, credentials_id)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, deleted, created_at, updated_at`

		err := tx.QueryRowxContext(ctx, userQuery,
			user.Name,
			user.Email,
			user.EmailConfirmed,
			user.IsAdmin,
			user.CredentialsID,
		).Scan(
			&user.ID,
			&user.Deleted,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			if core.IsDuplicateKeyError(err) {
				return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
			}
			return fmt.Errorf("create user: %w", err)
		}

		return nil
	})

	return err
}

// GetByID returns the row even when soft-deleted; callers that need a live
// account check the Deleted flag.
func (r *repository) GetByID(ctx context.Context, id int64) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE id = $1`, userColumns)

	var user User
	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE email = $1 AND deleted = false`, userColumns)

	var user User
	err := r.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}

func (r *repository) GetCredential(
	ctx context.Context,
	credentialsID int64,
) (*Credential, error) {
	query := `SELECT id, hash FROM credentials WHERE id = $1`

	var cred Credential
	err := r.db.GetContext(ctx, &cred, query, credentialsID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get credential: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get credential: %w", err)
	}

	return &cred, nil
}

// Update writes the user fields and, when newHash is present, the linked
// credential row inside the same transaction. A credential update that
// affects no row is surfaced as an error rather than silently succeeding.
func (r *repository) Update(
	ctx context.Context,
	user *User,
	newHash *string,
) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		userQuery := `
			UPDATE users
			SET name = $2, email = $3, updated_at = NOW()
			WHERE id = $1 AND deleted = false
			RETURNING updated_at`

		err := tx.GetContext(ctx, &user.UpdatedAt, userQuery,
			user.ID,
			user.Name,
			user.Email,
		)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("update user: %w", core.ErrNotFound)
		}
		if err != nil {
			if core.IsDuplicateKeyError(err) {
				return fmt.Errorf("update user: %w", core.ErrDuplicateKey)
			}
			return fmt.Errorf("update user: %w", err)
		}

		if newHash == nil {
			return nil
		}

		credQuery := `
			UPDATE credentials
			SET hash = $2
			WHERE id = $1`

		result, err := tx.ExecContext(ctx, credQuery, user.CredentialsID, *newHash)
		if err != nil {
			return fmt.Errorf("update credential: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("update credential: %w", err)
		}

		if rows == 0 {
			return fmt.Errorf("update credential: no credential row for user %d", user.ID)
		}

		return nil
	})
}

// SoftDelete removes the credential row and mutates the user row to the
// deleted state as one atomic unit. The user row itself is never removed.
func (r *repository) SoftDelete(ctx context.Context, id int64) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var credentialsID int64
		lookupQuery := `
			SELECT credentials_id
			FROM users
			WHERE id = $1 AND deleted = false`

		err := tx.GetContext(ctx, &credentialsID, lookupQuery, id)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("delete user: %w", core.ErrNotFound)
		}
		if err != nil {
			return fmt.Errorf("delete user: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM credentials WHERE id = $1`, credentialsID); err != nil {
			return fmt.Errorf("delete credential: %w", err)
		}

		updateQuery := `
			UPDATE users
			SET name = $2, email = NULL, deleted = true, updated_at = NOW()
			WHERE id = $1`

		if _, err := tx.ExecContext(ctx, updateQuery, id, DeletedUserName); err != nil {
			return fmt.Errorf("mark user deleted: %w", err)
		}

		return nil
	})
}

func (r *repository) List(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	params.Normalize(r.pagination)

	whereClause, args := buildListFilter(params)

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM users WHERE %s",
		whereClause,
	)

	countQuery, countArgs, err := sqlx.In(countQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := r.db.GetContext(
		ctx, &total, r.db.Rebind(countQuery), countArgs...,
	); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM users
		WHERE %s
		ORDER BY %s %s
		LIMIT ? OFFSET ?`,
		userColumns,
		whereClause,
		sortColumns[params.SortBy],
		strings.ToUpper(params.Sort),
	)

	listArgs := append(append([]any{}, args...), params.Limit, params.Offset)

	listQuery, listArgs, err = sqlx.In(listQuery, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	var users []User
	if err := r.db.SelectContext(
		ctx, &users, r.db.Rebind(listQuery), listArgs...,
	); err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	return users, total, nil
}

// buildListFilter translates ListUsersParams into a WHERE clause with ?
// placeholders (rebound per driver). Name matching is a case-sensitive
// substring; email is an exact match on the normalized value.
func buildListFilter(params ListUsersParams) (string, []any) {
	var conditions []string
	var args []any

	if len(params.IDs) > 0 {
		conditions = append(conditions, "id IN (?)")
		args = append(args, params.IDs)
	}

	if params.Name != "" {
		conditions = append(conditions, "name LIKE ?")
		args = append(args, "%"+escapeLike(params.Name)+"%")
	}

	if params.Email != "" {
		conditions = append(conditions, "email = ?")
		args = append(args, strings.ToLower(params.Email))
	}

	if params.EmailConfirmed != nil {
		conditions = append(conditions, "email_confirmed = ?")
		args = append(args, *params.EmailConfirmed)
	}

	if params.IsAdmin != nil {
		conditions = append(conditions, "is_admin = ?")
		args = append(args, *params.IsAdmin)
	}

	if params.UpdatedSince != nil {
		conditions = append(conditions, "updated_at >= ?")
		args = append(args, *params.UpdatedSince)
	}

	if !params.IncludeDeleted {
		conditions = append(conditions, "deleted = false")
	}

	if len(conditions) == 0 {
		return "TRUE", args
	}

	return strings.Join(conditions, " AND "), args
}

func (r *repository) ExistsByEmail(
	ctx context.Context,
	email string,
) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND deleted = false)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}

	return exists, nil
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
