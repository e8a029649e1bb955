package memory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/shark062/EridesSouzaStudio/internal/model"
	"github.com/shark062/EridesSouzaStudio/internal/repository"
)

const (
	usersFile    = "users.json"
	bookingsFile = "bookings.json"
)

// Store keeps both collections in memory behind one mutex and rewrites
// the backing JSON files wholesale on every mutation. Writes go to a
// temp file first and are renamed into place, so a crash never leaves a
// partial document. With an empty dir the store is purely in-memory.
type Store struct {
	mu       sync.RWMutex
	users    map[string]*model.User // keyed by username
	bookings []*model.Booking
	byID     map[string]*model.Booking
	dir      string
}

// Open loads any existing data files from dir. Missing files are not an
// error; a fresh store starts empty.
func Open(dir string) (*Store, error) {
	s := &Store{
		users: make(map[string]*model.User),
		byID:  make(map[string]*model.Booking),
		dir:   dir,
	}
	if dir == "" {
		return s, nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Users returns the account view of the store.
func (s *Store) Users() repository.UserRepository {
	return &userRepo{s}
}

// Bookings returns the booking view of the store.
func (s *Store) Bookings() repository.BookingRepository {
	return &bookingRepo{s}
}

func (s *Store) load() error {
	var users map[string]*model.User
	if err := readJSON(filepath.Join(s.dir, usersFile), &users); err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}
	if users != nil {
		s.users = users
	}

	var bookings []*model.Booking
	if err := readJSON(filepath.Join(s.dir, bookingsFile), &bookings); err != nil {
		return fmt.Errorf("failed to load bookings: %w", err)
	}
	s.bookings = bookings
	for _, b := range bookings {
		s.byID[b.ID] = b
	}
	return nil
}

// persistUsers is called with the write lock held.
func (s *Store) persistUsers() error {
	if s.dir == "" {
		return nil
	}
	return writeJSON(filepath.Join(s.dir, usersFile), s.users)
}

// persistBookings is called with the write lock held.
func (s *Store) persistBookings() error {
	if s.dir == "" {
		return nil
	}
	return writeJSON(filepath.Join(s.dir, bookingsFile), s.bookings)
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, v)
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
