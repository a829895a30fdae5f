package directory

// SubordinatesStatus は部下の有無を表す導出フラグです。
type SubordinatesStatus string

const (
	SubordinatesNone SubordinatesStatus = "none"
	SubordinatesSome SubordinatesStatus = "some"
)

// DepartmentRef は管理対象の部門への参照です。
type DepartmentRef struct {
	ID   int64
	Name string
}

// SubordinateRef は直属の部下への参照です。
type SubordinateRef struct {
	ID        int64
	FirstName string
	LastName  string
}

// ManagerView は管理者名簿の 1 行です。クレデンシャルの役割が MANAGER の
// 社員ごとに、管理する部門と直属の部下をまとめます。
type ManagerView struct {
	ID                 int64
	FirstName          string
	LastName           string
	Departments        []DepartmentRef
	Subordinates       []SubordinateRef
	SubordinatesStatus SubordinatesStatus
}
