package postgres

import (
	"context"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func TestDirectoryRepository_ListManagers(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewDirectoryRepository(mock)

	managerRows := pgxmock.NewRows([]string{"id", "first_name", "last_name"}).
		AddRow(int64(3), "Taro", "Yamada").
		AddRow(int64(4), "Jiro", "Tanaka")

	mock.ExpectQuery(`WHERE u\.role = 'MANAGER'`).
		WillReturnRows(managerRows)

	deptRows := pgxmock.NewRows([]string{"manager_id", "id", "name"}).
		AddRow(int64(3), int64(5), "Engineering")

	mock.ExpectQuery(`FROM departments d`).
		WillReturnRows(deptRows)

	subRows := pgxmock.NewRows([]string{"manager_id", "id", "first_name", "last_name"}).
		AddRow(int64(3), int64(11), "Hanako", "Suzuki").
		AddRow(int64(3), int64(12), "Saburo", "Takahashi")

	mock.ExpectQuery(`FROM employees s`).
		WillReturnRows(subRows)

	views, err := repo.ListManagers(context.Background())
	if err != nil {
		t.Fatalf("ListManagers returned error: %v", err)
	}

	if len(views) != 2 {
		t.Fatalf("expected 2 managers, got %d", len(views))
	}

	first := views[0]
	if first.ID != 3 || len(first.Departments) != 1 || len(first.Subordinates) != 2 {
		t.Fatalf("unexpected first manager view %+v", first)
	}

	second := views[1]
	if second.ID != 4 || len(second.Departments) != 0 || len(second.Subordinates) != 0 {
		t.Fatalf("unexpected second manager view %+v", second)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDirectoryRepository_ListManagers_Empty(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewDirectoryRepository(mock)

	mock.ExpectQuery(`WHERE u\.role = 'MANAGER'`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "first_name", "last_name"}))

	views, err := repo.ListManagers(context.Background())
	if err != nil {
		t.Fatalf("ListManagers returned error: %v", err)
	}

	if len(views) != 0 {
		t.Fatalf("expected no managers, got %d", len(views))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
