package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"phone-auth-service/internal/user/domain"
)

const uniqueViolation = "23505"

// PostgresRepository persists users via database/sql on the pgx stdlib driver.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a user repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, phone, COALESCE(username, ''), email, first_name, last_name,
	authentication_code, invite_code, COALESCE(invited_by, ''), is_admin, created_at, updated_at`

func scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Phone, &u.Username, &u.Email, &u.FirstName, &u.LastName,
		&u.AuthenticationCode, &u.InviteCode, &u.InvitedByID, &u.IsAdmin,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// GetByID returns the user for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// GetByPhone returns the user with the given phone, or nil if not found.
func (r *PostgresRepository) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE phone = $1`, phone)
	return scanUser(row)
}

// GetByInviteCode returns the user owning the given invite code, or nil if not found.
func (r *PostgresRepository) GetByInviteCode(ctx context.Context, code string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE invite_code = $1`, code)
	return scanUser(row)
}

// Create persists the user. The user must have ID and InviteCode set; they are
// not assigned by this method. Unique violations map to ErrDuplicatePhone,
// ErrDuplicateInviteCode, or ErrDuplicateUsername.
func (r *PostgresRepository) Create(ctx context.Context, u *domain.User) error {
	username := sql.NullString{String: u.Username, Valid: u.Username != ""}
	invitedBy := sql.NullString{String: u.InvitedByID, Valid: u.InvitedByID != ""}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, phone, username, email, first_name, last_name,
			authentication_code, invite_code, invited_by, is_admin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		u.ID, u.Phone, username, u.Email, u.FirstName, u.LastName,
		u.AuthenticationCode, u.InviteCode, invitedBy, u.IsAdmin, u.CreatedAt, u.UpdatedAt,
	)
	return mapUniqueViolation(err)
}

// SetAuthenticationCode overwrites the user's outstanding one-time code.
func (r *PostgresRepository) SetAuthenticationCode(ctx context.Context, id, code string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET authentication_code = $2, updated_at = $3 WHERE id = $1`,
		id, code, time.Now().UTC(),
	)
	return err
}

// ClearAuthenticationCode unsets the user's outstanding one-time code.
func (r *PostgresRepository) ClearAuthenticationCode(ctx context.Context, id string) error {
	return r.SetAuthenticationCode(ctx, id, "")
}

// SetInvitedBy links the user to inviterID only when invited_by is still null.
// The conditional update closes the race between concurrent activation attempts:
// exactly one of them observes a changed row.
func (r *PostgresRepository) SetInvitedBy(ctx context.Context, id, inviterID string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET invited_by = $2, updated_at = $3 WHERE id = $1 AND invited_by IS NULL`,
		id, inviterID, time.Now().UTC(),
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListInvitedPhones returns the phones of all users whose invited_by points at inviterID.
func (r *PostgresRepository) ListInvitedPhones(ctx context.Context, inviterID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT phone FROM users WHERE invited_by = $1 ORDER BY created_at`, inviterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	phones := []string{}
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		phones = append(phones, p)
	}
	return phones, rows.Err()
}

// UpdateProfile applies the non-nil fields of upd to the user row. A no-op
// when upd carries nothing. Unique username violations map to ErrDuplicateUsername.
func (r *PostgresRepository) UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) error {
	set := []string{}
	args := []interface{}{id}
	add := func(col string, val interface{}) {
		args = append(args, val)
		set = append(set, col+" = $"+strconv.Itoa(len(args)))
	}
	if upd.Username != nil {
		if *upd.Username == "" {
			set = append(set, "username = NULL")
		} else {
			add("username", *upd.Username)
		}
	}
	if upd.Email != nil {
		add("email", *upd.Email)
	}
	if upd.FirstName != nil {
		add("first_name", *upd.FirstName)
	}
	if upd.LastName != nil {
		add("last_name", *upd.LastName)
	}
	if len(set) == 0 {
		return nil
	}
	add("updated_at", time.Now().UTC())
	query := `UPDATE users SET ` + strings.Join(set, ", ") + ` WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, args...)
	return mapUniqueViolation(err)
}

// mapUniqueViolation translates Postgres unique-constraint failures into the
// repository's sentinel errors, keyed on the violated constraint name.
func mapUniqueViolation(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return err
	}
	switch {
	case strings.Contains(pgErr.ConstraintName, "phone"):
		return ErrDuplicatePhone
	case strings.Contains(pgErr.ConstraintName, "invite_code"):
		return ErrDuplicateInviteCode
	case strings.Contains(pgErr.ConstraintName, "username"):
		return ErrDuplicateUsername
	default:
		return err
	}
}
