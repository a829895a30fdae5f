package employee

import (
	"time"

	"github.com/ogurasousui/hr-org-service/internal/core/authz"
)

// Status は社員の状態を表します。削除の代わりに可視性フラグとして使います。
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Employee は社員エンティティです。ManagerID が nil の社員は上長を持ちません。
// 部下集合は manager_id の逆引きとして導出され、別途保持しません。
type Employee struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Telephone string
	Status    Status
	ManagerID *int64
	UserID    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Credential は社員に 1:1 で紐づく認証レコードです。
// 本コアは作成時に既定のプレースホルダを書き込むだけで、検証は行いません。
type Credential struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         authz.Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
