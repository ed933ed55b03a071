// Package csvfile provides a flat-file implementation of the storage.Store
// interface, backed by comma-separated tables with a header row.
//
// The on-disk layout matches the legacy planner data files:
//
//	users.csv:     username,password,logins
//	login_log.csv: username,timestamp
//
// Missing or empty files are initialized header-only on open. Mutations are
// whole-table read-modify-write, serialized by a mutex and committed with a
// temp-file rename so a crash cannot leave a truncated table. Concurrent
// writers from other processes are still unsafe; run one server per data dir.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/Mainadeveloper/food-waste-app/internal/models"
	"github.com/Mainadeveloper/food-waste-app/internal/storage"
)

const (
	usersFile = "users.csv"
	logFile   = "login_log.csv"
)

var (
	usersHeader = []string{"username", "password", "logins"}
	logHeader   = []string{"username", "timestamp"}
)

// Ensure CSVStore implements storage.Store
var _ storage.Store = (*CSVStore)(nil)

// CSVStore implements storage.Store using flat CSV tables.
type CSVStore struct {
	mu        sync.Mutex
	usersPath string
	logPath   string
}

// New creates a CSVStore rooted at dataDir. The directory and header-only
// tables are created if they do not exist.
func New(dataDir string) (*CSVStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &CSVStore{
		usersPath: filepath.Join(dataDir, usersFile),
		logPath:   filepath.Join(dataDir, logFile),
	}

	if err := ensureTable(s.usersPath, usersHeader); err != nil {
		return nil, err
	}
	if err := ensureTable(s.logPath, logHeader); err != nil {
		return nil, err
	}

	return s, nil
}

// Close is a no-op; the store holds no open handles between operations.
func (s *CSVStore) Close() error {
	return nil
}

// Exists reports whether a user with the given username is present.
func (s *CSVStore) Exists(ctx context.Context, username string) (bool, error) {
	user, err := s.GetUser(ctx, username)
	if err != nil {
		return false, err
	}
	return user != nil, nil
}

// GetUser retrieves a user by username. Returns nil, nil when absent.
func (s *CSVStore) GetUser(_ context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

// CreateUser appends a new user record and rewrites the table.
// Returns storage.ErrUserExists if the username is already taken.
func (s *CSVStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers()
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.Username == user.Username {
			return storage.ErrUserExists
		}
	}

	users = append(users, user)
	return s.writeUsers(users)
}

// RecordLogin increments the user's login counter and rewrites the table.
func (s *CSVStore) RecordLogin(_ context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers()
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.Username == username {
			u.Logins++
			return s.writeUsers(users)
		}
	}
	return storage.ErrUserNotFound
}

// AppendLogin adds one audit row to the login log.
func (s *CSVStore) AppendLogin(_ context.Context, username string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ensureTable(s.logPath, logHeader); err != nil {
		return err
	}

	f, err := os.OpenFile(s.logPath, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open login log: %w", err)
	}
	defer f.Close()

	event := models.NewLoginEvent(username, at)
	w := csv.NewWriter(f)
	if err := w.Write([]string{event.Username, event.Timestamp}); err != nil {
		return fmt.Errorf("failed to append login event: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush login log: %w", err)
	}
	return nil
}

// loadUsers reads the full users table. Legacy two-column rows (no logins
// counter) load with Logins = 0. Callers must hold the mutex.
func (s *CSVStore) loadUsers() ([]*models.User, error) {
	if err := ensureTable(s.usersPath, usersHeader); err != nil {
		return nil, err
	}

	f, err := os.Open(s.usersPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open users table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate legacy rows without the logins column

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read users table: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var users []*models.User
	for _, rec := range records[1:] { // skip header
		if len(rec) < 2 {
			continue
		}
		user := &models.User{
			Username:     rec[0],
			PasswordHash: rec[1],
		}
		if len(rec) >= 3 {
			if logins, err := strconv.Atoi(rec[2]); err == nil {
				user.Logins = logins
			}
		}
		users = append(users, user)
	}
	return users, nil
}

// writeUsers rewrites the whole users table via a temp file and atomic
// rename. Callers must hold the mutex.
func (s *CSVStore) writeUsers(users []*models.User) error {
	dir := filepath.Dir(s.usersPath)
	tmp, err := os.CreateTemp(dir, "users-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create temp users table: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(usersHeader); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write users header: %w", err)
	}
	for _, u := range users {
		row := []string{u.Username, u.PasswordHash, strconv.Itoa(u.Logins)}
		if err := w.Write(row); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to write user row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to flush users table: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp users table: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.usersPath); err != nil {
		return fmt.Errorf("failed to replace users table: %w", err)
	}
	return nil
}

// ensureTable creates the file with a header row if it is missing or empty.
func ensureTable(path string, header []string) error {
	info, err := os.Stat(path)
	if err == nil && info.Size() > 0 {
		return nil
	}
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header to %s: %w", path, err)
	}
	w.Flush()
	return w.Error()
}
