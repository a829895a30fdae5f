package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/hr-org-service/internal/core/department"
	pgdb "github.com/ogurasousui/hr-org-service/internal/platform/db/postgres"
)

// DepartmentRepository は PostgreSQL を利用した部門永続化の実装です。
type DepartmentRepository struct {
	pool pgdb.Queryer
}

// NewDepartmentRepository は DepartmentRepository を生成します。
func NewDepartmentRepository(pool pgdb.Queryer) *DepartmentRepository {
	return &DepartmentRepository{pool: pool}
}

// Create は部門を新規作成します。
func (r *DepartmentRepository) Create(ctx context.Context, d *department.Department) (*department.Department, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        WITH inserted AS (
            INSERT INTO departments (name, status, manager_id, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5)
            RETURNING id, name, status, manager_id, created_at, updated_at
        )
        SELECT i.id, i.name, i.status, i.manager_id, i.created_at, i.updated_at,
               m.id, m.first_name, m.last_name, m.email
          FROM inserted i
          JOIN employees m ON m.id = i.manager_id
    `,
		d.Name,
		string(d.Status),
		d.ManagerID,
		d.CreatedAt,
		d.UpdatedAt,
	)

	created, err := scanDepartment(row)
	if err != nil {
		return nil, translateDepartmentPgError(err)
	}
	return created, nil
}

// Update は部門情報を更新します。
func (r *DepartmentRepository) Update(ctx context.Context, d *department.Department) (*department.Department, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        WITH updated AS (
            UPDATE departments
               SET name = $1,
                   status = $2,
                   manager_id = $3,
                   updated_at = $4
             WHERE id = $5
            RETURNING id, name, status, manager_id, created_at, updated_at
        )
        SELECT u.id, u.name, u.status, u.manager_id, u.created_at, u.updated_at,
               m.id, m.first_name, m.last_name, m.email
          FROM updated u
          JOIN employees m ON m.id = u.manager_id
    `,
		d.Name,
		string(d.Status),
		d.ManagerID,
		d.UpdatedAt,
		d.ID,
	)

	updated, err := scanDepartment(row)
	if err != nil {
		return nil, translateDepartmentPgError(err)
	}
	return updated, nil
}

// FindByID は ID で部門を取得します。
func (r *DepartmentRepository) FindByID(ctx context.Context, id int64) (*department.Department, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT d.id,
               d.name,
               d.status,
               d.manager_id,
               d.created_at,
               d.updated_at,
               m.id,
               m.first_name,
               m.last_name,
               m.email
          FROM departments d
          JOIN employees m ON m.id = d.manager_id
         WHERE d.id = $1
         LIMIT 1
    `, id)

	found, err := scanDepartment(row)
	if err != nil {
		return nil, translateDepartmentPgError(err)
	}
	return found, nil
}

// List は部門の一覧を取得します。
func (r *DepartmentRepository) List(ctx context.Context, filter department.ListDepartmentsFilter) ([]*department.Department, error) {
	query := `
        SELECT d.id,
               d.name,
               d.status,
               d.manager_id,
               d.created_at,
               d.updated_at,
               m.id,
               m.first_name,
               m.last_name,
               m.email
          FROM departments d
          JOIN employees m ON m.id = d.manager_id
    `

	args := make([]any, 0, 1)
	if filter.ManagerID != nil {
		query += ` WHERE d.manager_id = $1`
		args = append(args, *filter.ManagerID)
	}
	query += ` ORDER BY d.created_at DESC, d.id DESC`

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, translateDepartmentPgError(err)
	}
	defer rows.Close()

	departments := make([]*department.Department, 0)
	for rows.Next() {
		dept, err := scanDepartment(rows)
		if err != nil {
			return nil, translateDepartmentPgError(err)
		}
		departments = append(departments, dept)
	}

	if err := rows.Err(); err != nil {
		return nil, translateDepartmentPgError(err)
	}

	return departments, nil
}

// ManagerExists は社員が存在するか判定します。
func (r *DepartmentRepository) ManagerExists(ctx context.Context, employeeID int64) (bool, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM employees WHERE id = $1)`, employeeID)

	var exists bool
	if err := row.Scan(&exists); err != nil {
		return false, translateDepartmentPgError(err)
	}
	return exists, nil
}

// UpsertMembership は管理者の部門所属を作成します。既にあれば何もしません。
func (r *DepartmentRepository) UpsertMembership(ctx context.Context, employeeID, departmentID int64) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	_, err := exec.Exec(ctx, `
        INSERT INTO department_memberships (employee_id, department_id)
        VALUES ($1, $2)
        ON CONFLICT (employee_id, department_id) DO NOTHING
    `, employeeID, departmentID)
	if err != nil {
		return translateDepartmentPgError(err)
	}
	return nil
}

func scanDepartment(row pgx.Row) (*department.Department, error) {
	var (
		id               int64
		name             string
		status           string
		managerID        int64
		createdAt        time.Time
		updatedAt        time.Time
		managerJoinedID  int64
		managerFirstName string
		managerLastName  string
		managerEmail     string
	)

	if err := row.Scan(
		&id,
		&name,
		&status,
		&managerID,
		&createdAt,
		&updatedAt,
		&managerJoinedID,
		&managerFirstName,
		&managerLastName,
		&managerEmail,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, department.ErrDepartmentNotFound
		}
		return nil, err
	}

	return &department.Department{
		ID:        id,
		Name:      name,
		Status:    department.Status(status),
		ManagerID: managerID,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
		Manager: &department.ManagerSnapshot{
			ID:        managerJoinedID,
			FirstName: managerFirstName,
			LastName:  managerLastName,
			Email:     managerEmail,
		},
	}, nil
}

func translateDepartmentPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return department.ErrDepartmentNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case foreignKeyViolationCode:
			switch pgErr.ConstraintName {
			case "departments_manager_id_fkey":
				return department.ErrManagerNotFound
			case "department_memberships_department_id_fkey":
				return department.ErrDepartmentNotFound
			default:
				return err
			}
		case checkViolationCode:
			return department.ErrInvalidStatus
		}
	}

	return err
}
