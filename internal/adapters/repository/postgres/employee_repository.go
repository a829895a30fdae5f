package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/hr-org-service/internal/core/authz"
	"github.com/ogurasousui/hr-org-service/internal/core/employee"
	pgdb "github.com/ogurasousui/hr-org-service/internal/platform/db/postgres"
)

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
)

// EmployeeRepository は PostgreSQL を利用した社員永続化の実装です。
type EmployeeRepository struct {
	pool pgdb.Queryer
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository(pool pgdb.Queryer) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

// Create は社員を新規作成します。
func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO employees (first_name, last_name, email, telephone, status, manager_id, user_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, first_name, last_name, email, telephone, status, manager_id, user_id, created_at, updated_at
    `,
		e.FirstName,
		e.LastName,
		e.Email,
		e.Telephone,
		string(e.Status),
		nullableID(e.ManagerID),
		e.UserID,
		e.CreatedAt,
		e.UpdatedAt,
	)

	created, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return created, nil
}

// Update は社員情報を更新します。
func (r *EmployeeRepository) Update(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE employees
           SET first_name = $1,
               last_name = $2,
               email = $3,
               telephone = $4,
               status = $5,
               manager_id = $6,
               updated_at = $7
         WHERE id = $8
        RETURNING id, first_name, last_name, email, telephone, status, manager_id, user_id, created_at, updated_at
    `,
		e.FirstName,
		e.LastName,
		e.Email,
		e.Telephone,
		string(e.Status),
		nullableID(e.ManagerID),
		e.UpdatedAt,
		e.ID,
	)

	updated, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return updated, nil
}

// FindByID は ID で社員を取得します。
func (r *EmployeeRepository) FindByID(ctx context.Context, id int64) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id,
               first_name,
               last_name,
               email,
               telephone,
               status,
               manager_id,
               user_id,
               created_at,
               updated_at
          FROM employees
         WHERE id = $1
         LIMIT 1
    `, id)

	found, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return found, nil
}

// List は社員の一覧を取得します。
func (r *EmployeeRepository) List(ctx context.Context, filter employee.ListEmployeesFilter) ([]*employee.Employee, string, error) {
	if filter.Limit <= 0 {
		return nil, "", employee.ErrInvalidPageSize
	}
	if filter.Offset < 0 {
		return nil, "", employee.ErrInvalidPageToken
	}

	limitWithBuffer := filter.Limit + 1

	args := make([]any, 0, 3)
	conditions := make([]string, 0, 1)

	if filter.ManagerID != nil {
		placeholder := "$" + strconv.Itoa(len(args)+1)
		conditions = append(conditions, "manager_id = "+placeholder)
		args = append(args, *filter.ManagerID)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	limitPlaceholder := "$" + strconv.Itoa(len(args)+1)
	args = append(args, limitWithBuffer)
	offsetPlaceholder := "$" + strconv.Itoa(len(args)+1)
	args = append(args, filter.Offset)

	query := `
        SELECT id,
               first_name,
               last_name,
               email,
               telephone,
               status,
               manager_id,
               user_id,
               created_at,
               updated_at
          FROM employees` + whereClause + `
         ORDER BY created_at DESC, id DESC
         LIMIT ` + limitPlaceholder + `
        OFFSET ` + offsetPlaceholder + `
    `

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, "", translateEmployeePgError(err)
	}
	defer rows.Close()

	employees := make([]*employee.Employee, 0, filter.Limit)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, "", translateEmployeePgError(err)
		}
		employees = append(employees, emp)
	}

	if err := rows.Err(); err != nil {
		return nil, "", translateEmployeePgError(err)
	}

	var nextToken string
	if len(employees) == limitWithBuffer {
		employees = employees[:filter.Limit]
		nextToken = strconv.Itoa(filter.Offset + filter.Limit)
	}

	return employees, nextToken, nil
}

// CreateCredential は社員に紐づくクレデンシャルを作成します。
func (r *EmployeeRepository) CreateCredential(ctx context.Context, c *employee.Credential) (*employee.Credential, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO users (email, password_hash, role, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, email, password_hash, role, created_at, updated_at
    `,
		c.Email,
		c.PasswordHash,
		string(c.Role),
		c.CreatedAt,
		c.UpdatedAt,
	)

	var (
		id           int64
		email        string
		passwordHash string
		role         string
		createdAt    time.Time
		updatedAt    time.Time
	)

	if err := row.Scan(&id, &email, &passwordHash, &role, &createdAt, &updatedAt); err != nil {
		return nil, translateEmployeePgError(err)
	}

	return &employee.Credential{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         authz.Role(role),
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}, nil
}

// EmailTaken はメールアドレスがクレデンシャルまたは社員で使用済みか判定します。
func (r *EmployeeRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT EXISTS (SELECT 1 FROM users WHERE lower(email) = lower($1))
            OR EXISTS (SELECT 1 FROM employees WHERE lower(email) = lower($1))
    `, email)

	var taken bool
	if err := row.Scan(&taken); err != nil {
		return false, translateEmployeePgError(err)
	}
	return taken, nil
}

// AddMemberships は社員を指定された部門へ所属させます。既存の所属は重複させません。
func (r *EmployeeRepository) AddMemberships(ctx context.Context, employeeID int64, departmentIDs []int64) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	for _, departmentID := range departmentIDs {
		_, err := exec.Exec(ctx, `
            INSERT INTO department_memberships (employee_id, department_id)
            VALUES ($1, $2)
            ON CONFLICT (employee_id, department_id) DO NOTHING
        `, employeeID, departmentID)
		if err != nil {
			return translateEmployeePgError(err)
		}
	}
	return nil
}

func scanEmployee(row pgx.Row) (*employee.Employee, error) {
	var (
		id        int64
		firstName string
		lastName  string
		email     string
		telephone string
		status    string
		managerID sql.NullInt64
		userID    int64
		createdAt time.Time
		updatedAt time.Time
	)

	if err := row.Scan(
		&id,
		&firstName,
		&lastName,
		&email,
		&telephone,
		&status,
		&managerID,
		&userID,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, err
	}

	var managerPtr *int64
	if managerID.Valid {
		value := managerID.Int64
		managerPtr = &value
	}

	return &employee.Employee{
		ID:        id,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Telephone: telephone,
		Status:    employee.Status(status),
		ManagerID: managerPtr,
		UserID:    userID,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

func translateEmployeePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			return employee.ErrEmailAlreadyExists
		case foreignKeyViolationCode:
			switch pgErr.ConstraintName {
			case "employees_manager_id_fkey":
				return employee.ErrManagerNotFound
			case "department_memberships_employee_id_fkey":
				return employee.ErrEmployeeNotFound
			default:
				return err
			}
		case checkViolationCode:
			return employee.ErrInvalidStatus
		}
	}

	return err
}

func nullableID(value *int64) any {
	if value == nil {
		return nil
	}
	return *value
}
