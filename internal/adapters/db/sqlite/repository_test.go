package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/S-h-i-v-a-y/assignment/internal/domain"
)

func openTestRepo(t *testing.T) *DirectoryRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "directory_test.db")

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return NewDirectoryRepository(db)
}

func TestDirectoryUserLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	created, err := repo.CreateUser(ctx, domain.DirectoryUser{Name: "ana", Email: "ana@example.com", Age: 29, Gender: "f"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected generated id")
	}

	got, err := repo.GetUser(ctx, created.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.Name != "ana" || got.Age != 29 {
		t.Fatalf("unexpected user: %+v", got)
	}

	name := "ana maria"
	age := 30
	updated, err := repo.UpdateUser(ctx, created.ID, domain.DirectoryUserUpdate{Name: &name, Age: &age})
	if err != nil {
		t.Fatalf("update user: %v", err)
	}
	if updated.Name != "ana maria" || updated.Age != 30 {
		t.Fatalf("unexpected update result: %+v", updated)
	}
	if updated.Email != "ana@example.com" {
		t.Fatalf("untouched field changed: %+v", updated)
	}

	unchanged, err := repo.UpdateUser(ctx, created.ID, domain.DirectoryUserUpdate{})
	if err != nil {
		t.Fatalf("empty update: %v", err)
	}
	if unchanged.Name != "ana maria" {
		t.Fatalf("empty update altered row: %+v", unchanged)
	}

	if err := repo.DeleteUser(ctx, created.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if _, err := repo.GetUser(ctx, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound after delete", err)
	}
	if err := repo.DeleteUser(ctx, created.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound on second delete", err)
	}
}

func TestDirectoryUserPagination(t *testing.T) {
	ctx := context.Background()
	repo := openTestRepo(t)

	names := []string{"a", "b", "c", "d", "e"}
	for _, n := range names {
		if _, err := repo.CreateUser(ctx, domain.DirectoryUser{Name: n, Email: n + "@example.com"}); err != nil {
			t.Fatalf("create %s: %v", n, err)
		}
	}

	page, err := repo.ListUsers(ctx, 1, 2)
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("got %d users, want 2", len(page))
	}
	if page[0].Name != "b" || page[1].Name != "c" {
		t.Fatalf("unexpected page order: %+v", page)
	}

	tail, err := repo.ListUsers(ctx, 4, 10)
	if err != nil {
		t.Fatalf("list tail: %v", err)
	}
	if len(tail) != 1 || tail[0].Name != "e" {
		t.Fatalf("unexpected tail: %+v", tail)
	}

	updateMissing := "ghost"
	if _, err := repo.UpdateUser(ctx, 999, domain.DirectoryUserUpdate{Name: &updateMissing}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound for missing row", err)
	}
}
