package employees

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("employee not found")

// Employee is a staff row. The employee id doubles as the register PIN.
// ActiveStatus is tri-state: true (needs help / active), false (cleared),
// NULL (terminated).
type Employee struct {
	EmployeeID   int        `json:"employee_id"`
	Name         string     `json:"name"`
	Role         string     `json:"role"`
	ClockIn      *time.Time `json:"clock_in"`
	ClockOut     *time.Time `json:"clock_out"`
	ActiveStatus *bool      `json:"active_status"`
}

type Repo struct {
	DB *pgxpool.Pool

	// Timezone is the store's reference timezone used when stamping
	// clock-in times.
	Timezone string
}

func (r *Repo) List(ctx context.Context) ([]Employee, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT employee_id, name, role, clock_in, clock_out, active_status FROM employees`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Employee
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.EmployeeID, &e.Name, &e.Role, &e.ClockIn, &e.ClockOut, &e.ActiveStatus); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Get looks an employee up by id (the PIN typed at the register).
func (r *Repo) Get(ctx context.Context, id int) (*Employee, error) {
	var e Employee
	e.EmployeeID = id
	err := r.DB.QueryRow(ctx, `
		SELECT name, role, active_status FROM employees WHERE employee_id = $1`, id).
		Scan(&e.Name, &e.Role, &e.ActiveStatus)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *Repo) Create(ctx context.Context, name, role string, active *bool) (*Employee, error) {
	var e Employee
	err := r.DB.QueryRow(ctx, `
		INSERT INTO employees (name, role, active_status)
		VALUES ($1, $2, $3)
		RETURNING employee_id, name, role, active_status`,
		name, role, active).
		Scan(&e.EmployeeID, &e.Name, &e.Role, &e.ActiveStatus)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *Repo) Update(ctx context.Context, id int, name, role string, active *bool) (*Employee, error) {
	var e Employee
	err := r.DB.QueryRow(ctx, `
		UPDATE employees SET name = $1, role = $2, active_status = $3
		WHERE employee_id = $4
		RETURNING employee_id, name, role, active_status`,
		name, role, active, id).
		Scan(&e.EmployeeID, &e.Name, &e.Role, &e.ActiveStatus)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Terminate marks an employee as no longer employed by NULLing the active
// status; the row is kept for payroll history.
func (r *Repo) Terminate(ctx context.Context, id int) (*Employee, error) {
	var e Employee
	err := r.DB.QueryRow(ctx, `
		UPDATE employees SET active_status = NULL WHERE employee_id = $1
		RETURNING employee_id, name, role, active_status`, id).
		Scan(&e.EmployeeID, &e.Name, &e.Role, &e.ActiveStatus)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// RequestHelp raises the help flag on the help-desk row and stamps the
// request time.
func (r *Repo) RequestHelp(ctx context.Context, id int) error {
	ct, err := r.DB.Exec(ctx, `
		UPDATE employees
		SET active_status = TRUE,
		    clock_in = (CURRENT_TIMESTAMP AT TIME ZONE $1) AT TIME ZONE 'UTC'
		WHERE employee_id = $2`,
		r.Timezone, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repo) ClearHelp(ctx context.Context, id int) error {
	ct, err := r.DB.Exec(ctx, `
		UPDATE employees SET active_status = FALSE WHERE employee_id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// HelpStatus returns the help flag and the UTC request time.
func (r *Repo) HelpStatus(ctx context.Context, id int) (active *bool, clockIn *time.Time, err error) {
	err = r.DB.QueryRow(ctx, `
		SELECT clock_in AT TIME ZONE 'UTC', active_status
		FROM employees WHERE employee_id = $1`, id).
		Scan(&clockIn, &active)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, ErrNotFound
	}
	return active, clockIn, err
}
