package department

import (
	"context"
	"fmt"
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

// Service は部門に関するユースケースをまとめます。
type Service struct {
	repo  Repository
	clock Clock
	tx    TransactionManager
}

// UseCase は部門ユースケースの公開インターフェースです。
type UseCase interface {
	CreateDepartment(ctx context.Context, sess *authz.Session, in CreateDepartmentInput) (*Department, error)
	UpdateDepartment(ctx context.Context, sess *authz.Session, in UpdateDepartmentInput) (*Department, error)
	UpdateDepartmentStatus(ctx context.Context, sess *authz.Session, in UpdateDepartmentStatusInput) (*Department, error)
	GetDepartment(ctx context.Context, sess *authz.Session, in GetDepartmentInput) (*Department, error)
	ListDepartments(ctx context.Context, sess *authz.Session) ([]*Department, error)
}

// NewService は Service を生成します。
func NewService(repo Repository, clock Clock, tx TransactionManager) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, clock: clock, tx: tx}
}

// CreateDepartmentInput は部門作成時の入力です。
type CreateDepartmentInput struct {
	Name      string
	Status    Status
	ManagerID int64
}

// UpdateDepartmentInput は部門更新時の入力です。
type UpdateDepartmentInput struct {
	ID        int64
	Name      string
	Status    Status
	ManagerID int64
}

// UpdateDepartmentStatusInput はステータス変更時の入力です。
type UpdateDepartmentStatusInput struct {
	ID     int64
	Status Status
}

// GetDepartmentInput は部門取得時の入力です。
type GetDepartmentInput struct {
	ID int64
}

// CreateDepartment は HR-ADMIN による部門の新規作成です。部門行と管理者の
// 所属行を単一トランザクションで書き込みます。
func (s *Service) CreateDepartment(ctx context.Context, sess *authz.Session, in CreateDepartmentInput) (*Department, error) {
	if err := authz.Authorize(sess, authz.RoleHRAdmin); err != nil {
		return nil, err
	}

	name, err := normalizeName(in.Name)
	if err != nil {
		return nil, err
	}

	if !isValidStatus(in.Status) {
		return nil, ErrInvalidStatus
	}

	var created *Department
	if err := s.tx.ReadWrite(ctx, func(txCtx context.Context) error {
		if err := s.ensureManagerExists(txCtx, in.ManagerID); err != nil {
			return err
		}

		now := s.clock.Now()
		dept := &Department{
			Name:      name,
			Status:    in.Status,
			ManagerID: in.ManagerID,
			CreatedAt: now,
			UpdatedAt: now,
		}

		result, err := s.repo.Create(txCtx, dept)
		if err != nil {
			return err
		}

		if err := s.repo.UpsertMembership(txCtx, in.ManagerID, result.ID); err != nil {
			return err
		}

		created = result
		return nil
	}); err != nil {
		return nil, err
	}

	return created, nil
}

// UpdateDepartment は HR-ADMIN による部門の更新です。管理者の所属行は
// 冪等に upsert され、同じ管理者への再割り当てを繰り返しても行は増えません。
// 旧管理者の所属行は残します。
func (s *Service) UpdateDepartment(ctx context.Context, sess *authz.Session, in UpdateDepartmentInput) (*Department, error) {
	if err := authz.Authorize(sess, authz.RoleHRAdmin); err != nil {
		return nil, err
	}

	if in.ID <= 0 {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	name, err := normalizeName(in.Name)
	if err != nil {
		return nil, err
	}

	if !isValidStatus(in.Status) {
		return nil, ErrInvalidStatus
	}

	var updated *Department
	if err := s.tx.ReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}

		if err := s.ensureManagerExists(txCtx, in.ManagerID); err != nil {
			return err
		}

		existing.Name = name
		existing.Status = in.Status
		existing.ManagerID = in.ManagerID
		existing.UpdatedAt = s.clock.Now()

		result, err := s.repo.Update(txCtx, existing)
		if err != nil {
			return err
		}

		if err := s.repo.UpsertMembership(txCtx, in.ManagerID, in.ID); err != nil {
			return err
		}

		updated = result
		return nil
	}); err != nil {
		return nil, err
	}

	return updated, nil
}

// UpdateDepartmentStatus は部門ステータスの切り替えです。HR-ADMIN 以外は
// 参照より前に拒否されます。同じ値への切り替えはエラーになりません。
func (s *Service) UpdateDepartmentStatus(ctx context.Context, sess *authz.Session, in UpdateDepartmentStatusInput) (*Department, error) {
	if err := authz.Authorize(sess, authz.RoleHRAdmin); err != nil {
		return nil, err
	}

	if in.ID <= 0 {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	if !isValidStatus(in.Status) {
		return nil, ErrInvalidStatus
	}

	var updated *Department
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

// GetDepartment は部門を取得します。HR-ADMIN は全件、MANAGER は自分が
// 管理する部門のみ参照できます。
func (s *Service) GetDepartment(ctx context.Context, sess *authz.Session, in GetDepartmentInput) (*Department, error) {
	if err := authz.Authorize(sess, authz.RoleHRAdmin, authz.RoleManager); err != nil {
		return nil, err
	}

	if in.ID <= 0 {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var result *Department
	if err := s.tx.ReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}
		if sess.Role == authz.RoleManager && found.ManagerID != sess.UserID {
			return authz.ErrForbidden
		}
		result = found
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}

// ListDepartments は部門の一覧を取得します。HR-ADMIN は全部門、MANAGER は
// 自分が管理する部門のみです。EMPLOYEE は部門一覧を参照できません。
func (s *Service) ListDepartments(ctx context.Context, sess *authz.Session) ([]*Department, error) {
	if err := authz.Authorize(sess, authz.RoleHRAdmin, authz.RoleManager); err != nil {
		return nil, err
	}

	filter := ListDepartmentsFilter{}
	if sess.Role == authz.RoleManager {
		managerID := sess.UserID
		filter.ManagerID = &managerID
	}

	var departments []*Department
	if err := s.tx.ReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.List(txCtx, filter)
		if err != nil {
			return err
		}
		departments = result
		return nil
	}); err != nil {
		return nil, err
	}

	return departments, nil
}

func (s *Service) ensureManagerExists(ctx context.Context, managerID int64) error {
	exists, err := s.repo.ManagerExists(ctx, managerID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrManagerNotFound
	}
	return nil
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

func normalizeName(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) < 2 {
		return "", ErrInvalidName
	}
	return trimmed, nil
}
