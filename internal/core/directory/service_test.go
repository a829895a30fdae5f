package directory

import (
	"context"
	"errors"
	"testing"
)

type fakeDirectoryRepo struct {
	views []*ManagerView
	err   error
}

func (r *fakeDirectoryRepo) ListManagers(_ context.Context) ([]*ManagerView, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.views, nil
}

func TestService_ListManagers_DerivesSubordinatesStatus(t *testing.T) {
	t.Parallel()

	repo := &fakeDirectoryRepo{views: []*ManagerView{
		{
			ID:        7,
			FirstName: "Mia",
			LastName:  "Boss",
			Departments: []DepartmentRef{
				{ID: 1, Name: "Engineering"},
			},
			Subordinates: []SubordinateRef{
				{ID: 21, FirstName: "Taro", LastName: "Yamada"},
			},
		},
		{
			ID:        8,
			FirstName: "Len",
			LastName:  "Solo",
		},
	}}

	svc := NewService(repo, nil)

	views, err := svc.ListManagers(context.Background())
	if err != nil {
		t.Fatalf("ListManagers returned error: %v", err)
	}

	if len(views) != 2 {
		t.Fatalf("expected 2 managers, got %d", len(views))
	}
	if views[0].SubordinatesStatus != SubordinatesSome {
		t.Fatalf("expected some, got %s", views[0].SubordinatesStatus)
	}
	if views[1].SubordinatesStatus != SubordinatesNone {
		t.Fatalf("expected none, got %s", views[1].SubordinatesStatus)
	}
}

func TestService_ListManagers_PropagatesError(t *testing.T) {
	t.Parallel()

	expected := errors.New("store failure")
	svc := NewService(&fakeDirectoryRepo{err: expected}, nil)

	_, err := svc.ListManagers(context.Background())
	if !errors.Is(err, expected) {
		t.Fatalf("expected %v, got %v", expected, err)
	}
}
