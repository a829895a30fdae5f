package directory

import "context"

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

// Service は読み取り専用の名簿ユースケースです。ストアを変更しません。
type Service struct {
	repo Repository
	tx   TransactionManager
}

// UseCase は名簿ユースケースの公開インターフェースです。
type UseCase interface {
	ListManagers(ctx context.Context) ([]*ManagerView, error)
}

// NewService は Service を生成します。
func NewService(repo Repository, tx TransactionManager) *Service {
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, tx: tx}
}

// ListManagers は管理者名簿を取得します。認可は不要な公開読み取りです。
// SubordinatesStatus は部下リストから導出され、保存はされません。
func (s *Service) ListManagers(ctx context.Context) ([]*ManagerView, error) {
	var views []*ManagerView
	if err := s.tx.ReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.ListManagers(txCtx)
		if err != nil {
			return err
		}
		views = result
		return nil
	}); err != nil {
		return nil, err
	}

	for _, view := range views {
		if len(view.Subordinates) == 0 {
			view.SubordinatesStatus = SubordinatesNone
		} else {
			view.SubordinatesStatus = SubordinatesSome
		}
	}

	return views, nil
}
