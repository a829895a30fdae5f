package postgres

import (
	"context"

	"github.com/ogurasousui/hr-org-service/internal/core/directory"
	pgdb "github.com/ogurasousui/hr-org-service/internal/platform/db/postgres"
)

// DirectoryRepository は PostgreSQL を利用した管理者名簿の読み取り実装です。
type DirectoryRepository struct {
	pool pgdb.Queryer
}

// NewDirectoryRepository は DirectoryRepository を生成します。
func NewDirectoryRepository(pool pgdb.Queryer) *DirectoryRepository {
	return &DirectoryRepository{pool: pool}
}

// ListManagers はクレデンシャルの役割が MANAGER の社員を、管理する部門と
// 直属の部下と共に取得します。
func (r *DirectoryRepository) ListManagers(ctx context.Context) ([]*directory.ManagerView, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)

	rows, err := exec.Query(ctx, `
        SELECT e.id, e.first_name, e.last_name
          FROM employees e
          JOIN users u ON u.id = e.user_id
         WHERE u.role = 'MANAGER'
         ORDER BY e.last_name ASC, e.first_name ASC, e.id ASC
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make([]*directory.ManagerView, 0)
	byID := make(map[int64]*directory.ManagerView)
	for rows.Next() {
		view := &directory.ManagerView{
			Departments:  make([]directory.DepartmentRef, 0),
			Subordinates: make([]directory.SubordinateRef, 0),
		}
		if err := rows.Scan(&view.ID, &view.FirstName, &view.LastName); err != nil {
			return nil, err
		}
		views = append(views, view)
		byID[view.ID] = view
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(views) == 0 {
		return views, nil
	}

	deptRows, err := exec.Query(ctx, `
        SELECT d.manager_id, d.id, d.name
          FROM departments d
         WHERE d.manager_id IN (
               SELECT e.id
                 FROM employees e
                 JOIN users u ON u.id = e.user_id
                WHERE u.role = 'MANAGER'
           )
         ORDER BY d.name ASC, d.id ASC
    `)
	if err != nil {
		return nil, err
	}
	defer deptRows.Close()

	for deptRows.Next() {
		var (
			managerID int64
			ref       directory.DepartmentRef
		)
		if err := deptRows.Scan(&managerID, &ref.ID, &ref.Name); err != nil {
			return nil, err
		}
		if view, ok := byID[managerID]; ok {
			view.Departments = append(view.Departments, ref)
		}
	}
	if err := deptRows.Err(); err != nil {
		return nil, err
	}

	subRows, err := exec.Query(ctx, `
        SELECT s.manager_id, s.id, s.first_name, s.last_name
          FROM employees s
         WHERE s.manager_id IN (
               SELECT e.id
                 FROM employees e
                 JOIN users u ON u.id = e.user_id
                WHERE u.role = 'MANAGER'
           )
         ORDER BY s.last_name ASC, s.first_name ASC, s.id ASC
    `)
	if err != nil {
		return nil, err
	}
	defer subRows.Close()

	for subRows.Next() {
		var (
			managerID int64
			ref       directory.SubordinateRef
		)
		if err := subRows.Scan(&managerID, &ref.ID, &ref.FirstName, &ref.LastName); err != nil {
			return nil, err
		}
		if view, ok := byID[managerID]; ok {
			view.Subordinates = append(view.Subordinates, ref)
		}
	}
	if err := subRows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}
