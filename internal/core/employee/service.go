package employee

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ogurasousui/hr-org-service/internal/core/authz"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	ReadOnly(ctx context.Context, fn func(context.Context) error) error
	ReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) ReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) ReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

const (
	defaultListPageSize = 50
	maxListPageSize     = 200

	// 新規社員に書き込む既定クレデンシャルのプレースホルダ。検証はしない。
	defaultCredentialMarker = "{default-credential}"

	// 上長チェーン探索の上限。これを超えるチェーンは既に壊れているとみなす。
	maxManagerChainDepth = 128
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Service は社員に関するユースケースをまとめます。
type Service struct {
	repo        Repository
	clock       Clock
	tx          TransactionManager
	statusRoles []authz.Role
}

// UseCase は社員ユースケースの公開インターフェースです。
type UseCase interface {
	CreateEmployee(ctx context.Context, sess *authz.Session, in CreateEmployeeInput) (*Employee, error)
	UpdateEmployee(ctx context.Context, sess *authz.Session, in UpdateEmployeeInput) (*Employee, error)
	UpdateEmployeeStatus(ctx context.Context, sess *authz.Session, in UpdateEmployeeStatusInput) (*Employee, error)
	GetEmployee(ctx context.Context, sess *authz.Session, in GetEmployeeInput) (*Employee, error)
	ListEmployees(ctx context.Context, sess *authz.Session, in ListEmployeesInput) (*ListEmployeesResult, error)
}

// NewService は Service を生成します。statusRoles は社員ステータス変更を
// 許可する役割の集合で、空の場合は HR-ADMIN のみになります。
func NewService(repo Repository, clock Clock, tx TransactionManager, statusRoles []authz.Role) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	if len(statusRoles) == 0 {
		statusRoles = []authz.Role{authz.RoleHRAdmin}
	}
	return &Service{repo: repo, clock: clock, tx: tx, statusRoles: statusRoles}
}

// CreateEmployeeInput は社員作成時の入力です。
type CreateEmployeeInput struct {
	FirstName     string
	LastName      string
	Telephone     string
	Email         string
	ManagerID     *int64
	Status        *Status
	DepartmentIDs []int64
}

// UpdateEmployeeInput は社員更新時の入力です。ManagerIDSet が true で
// ManagerID が nil の場合、上長の割り当てを解除します。
type UpdateEmployeeInput struct {
	ID           int64
	FirstName    *string
	LastName     *string
	Telephone    *string
	Status       *Status
	ManagerID    *int64
	ManagerIDSet bool
}

// UpdateEmployeeStatusInput はステータス変更時の入力です。
type UpdateEmployeeStatusInput struct {
	ID     int64
	Status Status
}

// GetEmployeeInput は社員取得時の入力です。
type GetEmployeeInput struct {
	ID int64
}

// ListEmployeesInput は一覧取得時の入力です。
type ListEmployeesInput struct {
	PageSize  int
	PageToken string
}

// ListEmployeesResult は一覧取得結果を表します。
type ListEmployeesResult struct {
	Employees     []*Employee
	NextPageToken string
}

// CreateEmployee は HR-ADMIN による社員の新規作成です。クレデンシャル、
// 社員レコード、初期の部門所属を単一トランザクションで書き込みます。
func (s *Service) CreateEmployee(ctx context.Context, sess *authz.Session, in CreateEmployeeInput) (*Employee, error) {
	if err := authz.Authorize(sess, authz.RoleHRAdmin); err != nil {
		return nil, err
	}

	firstName, err := normalizeName(in.FirstName, ErrInvalidFirstName)
	if err != nil {
		return nil, err
	}

	lastName, err := normalizeName(in.LastName, ErrInvalidLastName)
	if err != nil {
		return nil, err
	}

	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}

	telephone, err := normalizeTelephone(in.Telephone)
	if err != nil {
		return nil, err
	}

	status := StatusActive
	if in.Status != nil {
		if !isValidStatus(*in.Status) {
			return nil, ErrInvalidStatus
		}
		status = *in.Status
	}

	var created *Employee
	if err := s.tx.ReadWrite(ctx, func(txCtx context.Context) error {
		taken, err := s.repo.EmailTaken(txCtx, email)
		if err != nil {
			return err
		}
		if taken {
			return ErrEmailAlreadyExists
		}

		if in.ManagerID != nil {
			if err := s.ensureManagerExists(txCtx, *in.ManagerID); err != nil {
				return err
			}
		}

		now := s.clock.Now()
		credential, err := s.repo.CreateCredential(txCtx, &Credential{
			Email:        email,
			PasswordHash: defaultCredentialMarker,
			Role:         authz.RoleEmployee,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return err
		}

		emp := &Employee{
			FirstName: firstName,
			LastName:  lastName,
			Email:     email,
			Telephone: telephone,
			Status:    status,
			ManagerID: cloneID(in.ManagerID),
			UserID:    credential.ID,
			CreatedAt: now,
			UpdatedAt: now,
		}

		result, err := s.repo.Create(txCtx, emp)
		if err != nil {
			return err
		}

		if len(in.DepartmentIDs) > 0 {
			if err := s.repo.AddMemberships(txCtx, result.ID, in.DepartmentIDs); err != nil {
				return err
			}
		}

		created = result
		return nil
	}); err != nil {
		return nil, err
	}

	return created, nil
}

// UpdateEmployee は HR-ADMIN による社員情報の更新です。上長の付け替えでは
// 自己参照および上長チェーン上の循環を拒否します。
func (s *Service) UpdateEmployee(ctx context.Context, sess *authz.Session, in UpdateEmployeeInput) (*Employee, error) {
	if err := authz.Authorize(sess, authz.RoleHRAdmin); err != nil {
		return nil, err
	}

	if in.ID <= 0 {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var updated *Employee
	if err := s.tx.ReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}

		if in.FirstName != nil {
			firstName, err := normalizeName(*in.FirstName, ErrInvalidFirstName)
			if err != nil {
				return err
			}
			existing.FirstName = firstName
		}

		if in.LastName != nil {
			lastName, err := normalizeName(*in.LastName, ErrInvalidLastName)
			if err != nil {
				return err
			}
			existing.LastName = lastName
		}

		if in.Telephone != nil {
			telephone, err := normalizeTelephone(*in.Telephone)
			if err != nil {
				return err
			}
			existing.Telephone = telephone
		}

		if in.Status != nil {
			if !isValidStatus(*in.Status) {
				return ErrInvalidStatus
			}
			existing.Status = *in.Status
		}

		if in.ManagerIDSet {
			if in.ManagerID != nil {
				if err := s.ensureManagerAssignable(txCtx, existing.ID, *in.ManagerID); err != nil {
					return err
				}
			}
			existing.ManagerID = cloneID(in.ManagerID)
		}

		existing.UpdatedAt = s.clock.Now()

		result, err := s.repo.Update(txCtx, existing)
		if err != nil {
			return err
		}

		updated = result
		return nil
	}); err != nil {
		return nil, err
	}

	return updated, nil
}

// UpdateEmployeeStatus は社員ステータスの切り替えです。許可される役割は
// デプロイ方針で設定でき、既定では HR-ADMIN のみです。同じ値への切り替えは
// エラーにならず、そのまま成功します。
func (s *Service) UpdateEmployeeStatus(ctx context.Context, sess *authz.Session, in UpdateEmployeeStatusInput) (*Employee, error) {
	if err := authz.Authorize(sess, s.statusRoles...); err != nil {
		return nil, err
	}

	if in.ID <= 0 {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	if !isValidStatus(in.Status) {
		return nil, ErrInvalidStatus
	}

	var updated *Employee
	if err := s.tx.ReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}

		existing.Status = in.Status
		existing.UpdatedAt = s.clock.Now()

		result, err := s.repo.Update(txCtx, existing)
		if err != nil {
			return err
		}

		updated = result
		return nil
	}); err != nil {
		return nil, err
	}

	return updated, nil
}

// GetEmployee は社員を取得します。HR-ADMIN は全件、MANAGER は自分自身と
// 直属の部下、EMPLOYEE は自分自身のみ参照できます。
func (s *Service) GetEmployee(ctx context.Context, sess *authz.Session, in GetEmployeeInput) (*Employee, error) {
	if err := authz.Authorize(sess, authz.RoleHRAdmin, authz.RoleManager, authz.RoleEmployee); err != nil {
		return nil, err
	}

	if in.ID <= 0 {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var result *Employee
	if err := s.tx.ReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}
		if !visibleTo(sess, found) {
			return authz.ErrForbidden
		}
		result = found
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}

// ListEmployees は社員の一覧を取得します。HR-ADMIN は全件、MANAGER は
// 直属の部下のみです。EMPLOYEE は一覧を参照できません。
func (s *Service) ListEmployees(ctx context.Context, sess *authz.Session, in ListEmployeesInput) (*ListEmployeesResult, error) {
	if err := authz.Authorize(sess, authz.RoleHRAdmin, authz.RoleManager); err != nil {
		return nil, err
	}

	limit, err := normalizePageSize(in.PageSize)
	if err != nil {
		return nil, err
	}

	offset, err := parsePageToken(in.PageToken)
	if err != nil {
		return nil, err
	}

	filter := ListEmployeesFilter{Limit: limit, Offset: offset}
	if sess.Role == authz.RoleManager {
		managerID := sess.UserID
		filter.ManagerID = &managerID
	}

	var (
		employees []*Employee
		nextToken string
	)

	if err := s.tx.ReadOnly(ctx, func(txCtx context.Context) error {
		result, token, err := s.repo.List(txCtx, filter)
		if err != nil {
			return err
		}
		employees = result
		nextToken = token
		return nil
	}); err != nil {
		return nil, err
	}

	return &ListEmployeesResult{Employees: employees, NextPageToken: nextToken}, nil
}

func (s *Service) ensureManagerExists(ctx context.Context, managerID int64) error {
	if _, err := s.repo.FindByID(ctx, managerID); err != nil {
		if errors.Is(err, ErrEmployeeNotFound) {
			return ErrManagerNotFound
		}
		return err
	}
	return nil
}

// ensureManagerAssignable は employeeID の上長として managerID を割り当てて
// よいか検査します。candidate から上長チェーンを遡り、employeeID が現れたら
// 循環として拒否します。
func (s *Service) ensureManagerAssignable(ctx context.Context, employeeID, managerID int64) error {
	if managerID == employeeID {
		return ErrManagerCycle
	}

	current := managerID
	for depth := 0; depth < maxManagerChainDepth; depth++ {
		manager, err := s.repo.FindByID(ctx, current)
		if err != nil {
			if errors.Is(err, ErrEmployeeNotFound) && current == managerID {
				return ErrManagerNotFound
			}
			return err
		}
		if manager.ID == employeeID {
			return ErrManagerCycle
		}
		if manager.ManagerID == nil {
			return nil
		}
		if *manager.ManagerID == employeeID {
			return ErrManagerCycle
		}
		current = *manager.ManagerID
	}

	return ErrManagerCycle
}

func visibleTo(sess *authz.Session, emp *Employee) bool {
	switch sess.Role {
	case authz.RoleHRAdmin:
		return true
	case authz.RoleManager:
		if emp.ID == sess.UserID {
			return true
		}
		return emp.ManagerID != nil && *emp.ManagerID == sess.UserID
	default:
		return emp.ID == sess.UserID
	}
}

// ParseStatus は外部入力を Status に変換します。大文字小文字は区別せず、
// 未知の値は ErrInvalidStatus になります。
func ParseStatus(raw string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(raw))) {
	case StatusActive:
		return StatusActive, nil
	case StatusInactive:
		return StatusInactive, nil
	default:
		return "", ErrInvalidStatus
	}
}

func isValidStatus(status Status) bool {
	switch status {
	case StatusActive, StatusInactive:
		return true
	default:
		return false
	}
}

func normalizeName(raw string, invalid error) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", invalid
	}
	return trimmed, nil
}

func normalizeEmail(raw string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if !emailPattern.MatchString(trimmed) {
		return "", ErrInvalidEmail
	}
	return trimmed, nil
}

func normalizeTelephone(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) < 7 {
		return "", ErrInvalidTelephone
	}
	return trimmed, nil
}

func cloneID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	clone := *id
	return &clone
}

func normalizePageSize(pageSize int) (int, error) {
	if pageSize <= 0 {
		return defaultListPageSize, nil
	}
	if pageSize > maxListPageSize {
		return 0, ErrInvalidPageSize
	}
	return pageSize, nil
}

func parsePageToken(token string) (int, error) {
	if strings.TrimSpace(token) == "" {
		return 0, nil
	}

	offset, err := strconv.Atoi(token)
	if err != nil || offset < 0 {
		return 0, ErrInvalidPageToken
	}

	return offset, nil
}
