package department

import "context"

// Repository は部門と部門所属の永続化の抽象です。
type Repository interface {
	Create(ctx context.Context, department *Department) (*Department, error)
	Update(ctx context.Context, department *Department) (*Department, error)
	FindByID(ctx context.Context, id int64) (*Department, error)
	List(ctx context.Context, filter ListDepartmentsFilter) ([]*Department, error)
	ManagerExists(ctx context.Context, employeeID int64) (bool, error)
	// UpsertMembership は所属行が無ければ作成し、既にあれば何もしません。
	UpsertMembership(ctx context.Context, employeeID, departmentID int64) error
}

// ListDepartmentsFilter は一覧取得用フィルタです。ManagerID を指定すると
// その社員が管理する部門のみに絞り込みます。
type ListDepartmentsFilter struct {
	ManagerID *int64
}
