package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"clinic-appointment-api/internal/apperr"
	"clinic-appointment-api/internal/model"
)

// MaxAppointmentID returns the stored ID with the highest numeric suffix,
// or "" when the table is empty. Ordering is numeric, not lexicographic:
// string ordering puts BF00-9 above BF00-10 and the allocator would then
// hand out BF00-10 a second time.
func (s *Store) MaxAppointmentID(ctx context.Context) (string, error) {
	var id string
	err := s.pool.QueryRow(ctx,
		`SELECT appointment_id FROM appointments
		 ORDER BY (substring(appointment_id from '-(\d+)$'))::int DESC NULLS LAST
		 LIMIT 1`,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO appointments (appointment_id, patient_name, department,
		   appointment_date, doctor_id, client_user_id, status)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		a.ID, a.PatientName, a.Department, a.Date, a.DoctorID, a.ClientUserID, a.Status,
	)
	return err
}

// UpdateStatus sets the status of an appointment owned by the given doctor.
// Ownership and existence are checked in the same statement; an appointment
// assigned to someone else is indistinguishable from a missing one.
func (s *Store) UpdateStatus(ctx context.Context, id, doctorID, status string) (*model.Appointment, error) {
	a := &model.Appointment{}
	err := s.pool.QueryRow(ctx,
		`UPDATE appointments SET status = $1, updated_at = NOW()
		 WHERE appointment_id = $2 AND doctor_id = $3
		 RETURNING appointment_id, patient_name, department, appointment_date,
		           doctor_id, client_user_id, status, created_at, updated_at`,
		status, id, doctorID,
	).Scan(&a.ID, &a.PatientName, &a.Department, &a.Date,
		&a.DoctorID, &a.ClientUserID, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// DeleteForClient removes an appointment owned by the given client.
// Cancellation is a hard delete, whatever the current status.
func (s *Store) DeleteForClient(ctx context.Context, id, clientID string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM appointments WHERE appointment_id = $1 AND client_user_id = $2`,
		id, clientID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// UpdateAppointment rewrites every editable column of a record. Admin use
// only; there is no ownership clause.
func (s *Store) UpdateAppointment(ctx context.Context, a *model.Appointment) error {
	err := s.pool.QueryRow(ctx,
		`UPDATE appointments
		 SET patient_name = $1, department = $2, appointment_date = $3,
		     doctor_id = $4, status = $5, updated_at = NOW()
		 WHERE appointment_id = $6
		 RETURNING client_user_id, created_at, updated_at`,
		a.PatientName, a.Department, a.Date, a.DoctorID, a.Status, a.ID,
	).Scan(&a.ClientUserID, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.ErrNotFound
	}
	return err
}

// DeleteAppointment removes a record by ID alone, whoever owns it.
func (s *Store) DeleteAppointment(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM appointments WHERE appointment_id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

const detailCols = `a.appointment_id, a.patient_name, a.department,
	a.appointment_date, a.doctor_id, a.client_user_id, a.status,
	a.created_at, a.updated_at, d.full_name, c.full_name`

const detailJoin = `FROM appointments a
	LEFT JOIN users d ON d.id = a.doctor_id
	LEFT JOIN users c ON c.id = a.client_user_id`

func (s *Store) collectDetails(ctx context.Context, query string, args ...any) ([]model.AppointmentDetail, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.AppointmentDetail
	for rows.Next() {
		var a model.AppointmentDetail
		if err := rows.Scan(&a.ID, &a.PatientName, &a.Department, &a.Date,
			&a.DoctorID, &a.ClientUserID, &a.Status, &a.CreatedAt, &a.UpdatedAt,
			&a.DoctorName, &a.ClientName); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ListForDoctor returns the doctor's appointments, newest scheduled first.
// Bounds are optional; lower is inclusive, upper exclusive.
func (s *Store) ListForDoctor(ctx context.Context, doctorID string, from, to *time.Time) ([]model.AppointmentDetail, error) {
	q := `SELECT ` + detailCols + ` ` + detailJoin + ` WHERE a.doctor_id = $1`
	args := []any{doctorID}

	if from != nil {
		args = append(args, *from)
		q += ` AND a.appointment_date >= $2`
	}
	if to != nil {
		args = append(args, *to)
		if from != nil {
			q += ` AND a.appointment_date < $3`
		} else {
			q += ` AND a.appointment_date < $2`
		}
	}
	q += ` ORDER BY a.appointment_date DESC`

	return s.collectDetails(ctx, q, args...)
}

func (s *Store) UpcomingForDoctor(ctx context.Context, doctorID string, after time.Time, limit int) ([]model.AppointmentDetail, error) {
	return s.collectDetails(ctx,
		`SELECT `+detailCols+` `+detailJoin+`
		 WHERE a.doctor_id = $1 AND a.appointment_date >= $2
		 ORDER BY a.appointment_date
		 LIMIT $3`, doctorID, after, limit)
}

func (s *Store) CountForDoctor(ctx context.Context, doctorID string) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM appointments WHERE doctor_id = $1`, doctorID).Scan(&n)
	return n, err
}

func (s *Store) ListForClient(ctx context.Context, clientID string) ([]model.AppointmentDetail, error) {
	return s.collectDetails(ctx,
		`SELECT `+detailCols+` `+detailJoin+`
		 WHERE a.client_user_id = $1
		 ORDER BY a.created_at DESC`, clientID)
}

func (s *Store) UpcomingForClient(ctx context.Context, clientID string, from time.Time, limit int) ([]model.AppointmentDetail, error) {
	return s.collectDetails(ctx,
		`SELECT `+detailCols+` `+detailJoin+`
		 WHERE a.client_user_id = $1 AND a.appointment_date >= $2
		 ORDER BY a.appointment_date
		 LIMIT $3`, clientID, from, limit)
}

func (s *Store) RecentForClient(ctx context.Context, clientID string, limit int) ([]model.AppointmentDetail, error) {
	return s.collectDetails(ctx,
		`SELECT `+detailCols+` `+detailJoin+`
		 WHERE a.client_user_id = $1
		 ORDER BY a.created_at DESC
		 LIMIT $2`, clientID, limit)
}

// ListAll returns every appointment for the admin view, with an optional
// substring search over patient name and department.
func (s *Store) ListAll(ctx context.Context, search string) ([]model.AppointmentDetail, error) {
	if search == "" {
		return s.collectDetails(ctx,
			`SELECT `+detailCols+` `+detailJoin+` ORDER BY a.created_at DESC`)
	}
	return s.collectDetails(ctx,
		`SELECT `+detailCols+` `+detailJoin+`
		 WHERE a.patient_name ILIKE '%' || $1 || '%'
		    OR a.department ILIKE '%' || $1 || '%'
		 ORDER BY a.created_at DESC`, search)
}

func (s *Store) RecentAll(ctx context.Context, limit int) ([]model.AppointmentDetail, error) {
	return s.collectDetails(ctx,
		`SELECT `+detailCols+` `+detailJoin+`
		 ORDER BY a.created_at DESC
		 LIMIT $1`, limit)
}

func (s *Store) CountAppointments(ctx context.Context) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM appointments`).Scan(&n)
	return n, err
}
