package department

import "time"

// Status は部門の状態を表します。
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Department は部門エンティティです。ManagerID は必ず既存の社員を指します。
type Department struct {
	ID        int64
	Name      string
	Status    Status
	ManagerID int64
	CreatedAt time.Time
	UpdatedAt time.Time
	Manager   *ManagerSnapshot
}

// ManagerSnapshot は部門に紐づく管理者情報のスナップショットです。
type ManagerSnapshot struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
}
