package directory

import "context"

// Repository は管理者名簿の読み取り専用の抽象です。
type Repository interface {
	ListManagers(ctx context.Context) ([]*ManagerView, error)
}
