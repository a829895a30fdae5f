package employee

import "context"

// Repository は社員とクレデンシャルの永続化の抽象です。
type Repository interface {
	Create(ctx context.Context, employee *Employee) (*Employee, error)
	Update(ctx context.Context, employee *Employee) (*Employee, error)
	FindByID(ctx context.Context, id int64) (*Employee, error)
	List(ctx context.Context, filter ListEmployeesFilter) ([]*Employee, string, error)
	CreateCredential(ctx context.Context, credential *Credential) (*Credential, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	AddMemberships(ctx context.Context, employeeID int64, departmentIDs []int64) error
}

// ListEmployeesFilter は一覧取得用フィルタです。ManagerID を指定すると
// 直属の部下のみに絞り込みます。
type ListEmployeesFilter struct {
	ManagerID *int64
	Limit     int
	Offset    int
}
