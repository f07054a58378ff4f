// Package project manages the per-request directories under the images root.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/storyboard-studio/storyboard-relay/internal/relay/domain"
	"github.com/storyboard-studio/storyboard-relay/internal/relay/naming"
)

// Store creates project directories under a single root. Creation is
// "create if absent", so two requests that derive the same folder name in
// the same second share one directory.
type Store struct {
	root string
	now  func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore returns a store rooted at root. Relative roots are made absolute
// against the working directory.
func NewStore(root string, opts ...Option) (*Store, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve images root: %w", err)
	}
	s := &Store{root: abs, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Root returns the absolute images root.
func (s *Store) Root() string {
	return s.root
}

// EnsureRoot creates the images root if it is missing.
func (s *Store) EnsureRoot() error {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return fmt.Errorf("create images root: %w", err)
	}
	return nil
}

// Create derives a project from text and the current time and makes its
// directory.
func (s *Store) Create(text string) (domain.Project, error) {
	createdAt := s.now().Truncate(time.Second)
	folder := naming.FolderName(createdAt, text)

	// Symlinks already under the root are resolved inside it.
	dir, err := securejoin.SecureJoin(s.root, folder)
	if err != nil {
		return domain.Project{}, fmt.Errorf("resolve project dir: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return domain.Project{}, fmt.Errorf("create project dir: %w", err)
	}

	return domain.Project{
		CreatedAt:  createdAt,
		Label:      naming.FolderLabel(text),
		FolderName: folder,
		Dir:        dir,
	}, nil
}
