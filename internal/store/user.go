package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"clinic-appointment-api/internal/apperr"
	"clinic-appointment-api/internal/model"
)

const userCols = `id, email, password_hash, full_name, role, specialization,
	license_number, approval_status, admin_notes, approved_at, approved_by,
	created_at, updated_at`

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Role,
		&u.Specialization, &u.LicenseNumber, &u.ApprovalStatus, &u.AdminNotes,
		&u.ApprovedAt, &u.ApprovedBy, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Store) CreateUser(ctx context.Context, u *model.User) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, full_name, role,
		   specialization, license_number, approval_status)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		u.ID, u.Email, u.PasswordHash, u.FullName, u.Role,
		u.Specialization, u.LicenseNumber, u.ApprovalStatus,
	)
	return err
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	return scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE email = $1`, email))
}

func (s *Store) UserByID(ctx context.Context, id string) (*model.User, error) {
	return scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE id = $1`, id))
}

func (s *Store) collectUsers(ctx context.Context, query string, args ...any) ([]model.User, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName,
			&u.Role, &u.Specialization, &u.LicenseNumber, &u.ApprovalStatus,
			&u.AdminNotes, &u.ApprovedAt, &u.ApprovedBy, &u.CreatedAt,
			&u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *Store) AllUsers(ctx context.Context) ([]model.User, error) {
	return s.collectUsers(ctx,
		`SELECT `+userCols+` FROM users ORDER BY created_at`)
}

func (s *Store) UsersInRole(ctx context.Context, role string) ([]model.User, error) {
	return s.collectUsers(ctx,
		`SELECT `+userCols+` FROM users WHERE role = $1 ORDER BY full_name`, role)
}

// DoctorsByDepartment matches specialization case-insensitively. Approval
// status is not filtered, matching the booking form's roster behavior.
func (s *Store) DoctorsByDepartment(ctx context.Context, department string) ([]model.User, error) {
	return s.collectUsers(ctx,
		`SELECT `+userCols+` FROM users
		 WHERE role = $1 AND LOWER(specialization) = LOWER($2)
		 ORDER BY full_name`, model.RoleDoctor, department)
}

func (s *Store) PendingUsers(ctx context.Context) ([]model.User, error) {
	return s.collectUsers(ctx,
		`SELECT `+userCols+` FROM users
		 WHERE approval_status = $1 ORDER BY created_at`, model.ApprovalPending)
}

func (s *Store) CountPendingUsers(ctx context.Context) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE approval_status = $1`,
		model.ApprovalPending).Scan(&n)
	return n, err
}

// ApproveUser records who approved the account and when. No guard against
// re-approving or flipping a rejected account back.
func (s *Store) ApproveUser(ctx context.Context, id, approvedBy string, notes *string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users
		 SET approval_status = $1, approved_at = NOW(), approved_by = $2,
		     admin_notes = $3, updated_at = NOW()
		 WHERE id = $4`,
		model.ApprovalApproved, approvedBy, notes, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (s *Store) RejectUser(ctx context.Context, id string, notes *string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE users
		 SET approval_status = $1, admin_notes = $2, updated_at = NOW()
		 WHERE id = $3`,
		model.ApprovalRejected, notes, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}
