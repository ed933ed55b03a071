package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Mainadeveloper/food-waste-app/internal/models"
	"github.com/Mainadeveloper/food-waste-app/internal/storage"
)

func TestSQLiteStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	t.Run("Exists is false before signup", func(t *testing.T) {
		exists, err := store.Exists(ctx, "alice")
		if err != nil {
			t.Fatalf("Exists failed: %v", err)
		}
		if exists {
			t.Error("expected alice to not exist")
		}
	})

	t.Run("CreateUser sets CreatedAt and round-trips", func(t *testing.T) {
		user := &models.User{Username: "alice", PasswordHash: "$2a$10$hash"}
		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		if user.CreatedAt == 0 {
			t.Error("expected CreatedAt to be set")
		}

		got, err := store.GetUser(ctx, "alice")
		if err != nil {
			t.Fatalf("GetUser failed: %v", err)
		}
		if got == nil {
			t.Fatal("expected user, got nil")
		}
		if got.PasswordHash != "$2a$10$hash" || got.Logins != 0 {
			t.Errorf("unexpected user: %+v", got)
		}
	})

	t.Run("duplicate CreateUser is rejected", func(t *testing.T) {
		err := store.CreateUser(ctx, &models.User{Username: "alice", PasswordHash: "other"})
		if !errors.Is(err, storage.ErrUserExists) {
			t.Fatalf("expected ErrUserExists, got %v", err)
		}
	})

	t.Run("RecordLogin increments counter", func(t *testing.T) {
		if err := store.RecordLogin(ctx, "alice"); err != nil {
			t.Fatalf("RecordLogin failed: %v", err)
		}
		if err := store.RecordLogin(ctx, "alice"); err != nil {
			t.Fatalf("RecordLogin failed: %v", err)
		}

		got, err := store.GetUser(ctx, "alice")
		if err != nil {
			t.Fatalf("GetUser failed: %v", err)
		}
		if got.Logins != 2 {
			t.Errorf("Logins = %d, want 2", got.Logins)
		}
	})

	t.Run("RecordLogin for unknown user fails", func(t *testing.T) {
		err := store.RecordLogin(ctx, "nobody")
		if !errors.Is(err, storage.ErrUserNotFound) {
			t.Fatalf("expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("AppendLogin stores formatted timestamp", func(t *testing.T) {
		at := time.Date(2025, 3, 14, 12, 30, 45, 0, time.UTC)
		if err := store.AppendLogin(ctx, "alice", at); err != nil {
			t.Fatalf("AppendLogin failed: %v", err)
		}

		var username, timestamp string
		err := store.db.QueryRow(
			"SELECT username, timestamp FROM login_log ORDER BY id DESC LIMIT 1",
		).Scan(&username, &timestamp)
		if err != nil {
			t.Fatalf("failed to read login_log: %v", err)
		}
		if username != "alice" || timestamp != "2025-03-14 12:30:45" {
			t.Errorf("audit row = %s,%s; want alice,2025-03-14 12:30:45", username, timestamp)
		}
	})

	t.Run("GetUser returns nil for nonexistent user", func(t *testing.T) {
		got, err := store.GetUser(ctx, "nobody")
		if err != nil {
			t.Fatalf("GetUser failed: %v", err)
		}
		if got != nil {
			t.Errorf("expected nil, got %+v", got)
		}
	})
}
