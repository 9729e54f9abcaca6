package config

import (
	"fmt"

	git "github.com/go-git/go-git/v5"

	"commitpulse/internal/common"
	"commitpulse/pkg/errors"
	"commitpulse/pkg/models"
)

// Store manages the ordered repository list backed by the YAML config file.
// Repository paths are unique; every mutation is persisted immediately.
type Store struct {
	cfg *models.Config

	// verifyWorkTree is swapped out in tests so that plain temp
	// directories can stand in for real clones.
	verifyWorkTree func(path string) error
}

// OpenStore loads the config file and returns a store over it.
func OpenStore() (*Store, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	return NewStore(cfg), nil
}

// NewStore wraps an already-loaded config.
func NewStore(cfg *models.Config) *Store {
	return &Store{
		cfg:            cfg,
		verifyWorkTree: verifyWorkTree,
	}
}

func verifyWorkTree(path string) error {
	if _, err := git.PlainOpen(path); err != nil {
		return errors.Wrap(err, errors.ErrCodeNotAWorkTree,
			fmt.Sprintf("'%s' is not a git work tree", path)).
			WithContext("path", path).
			WithSuggestions("Run 'git init' or clone a repository at that path")
	}
	return nil
}

// Add registers a new repository, enabled by default. The path is
// canonicalized before the duplicate check.
func (s *Store) Add(path string) (*models.Repository, error) {
	cleaned, err := common.CleanPath(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "Invalid repository path")
	}

	if s.cfg.HasPath(cleaned) {
		return nil, errors.New(errors.ErrCodeDuplicateRepo,
			fmt.Sprintf("Repository '%s' is already configured", cleaned)).
			WithContext("path", cleaned)
	}

	if err := s.verifyWorkTree(cleaned); err != nil {
		return nil, err
	}

	repo := models.Repository{
		ID:      common.NewID(),
		Path:    cleaned,
		Enabled: true,
	}
	s.cfg.Repositories = append(s.cfg.Repositories, repo)

	if err := Save(s.cfg); err != nil {
		return nil, err
	}
	return &s.cfg.Repositories[len(s.cfg.Repositories)-1], nil
}

// Remove deletes the repository with the given id.
func (s *Store) Remove(id string) error {
	for i, r := range s.cfg.Repositories {
		if r.ID == id {
			s.cfg.Repositories = append(s.cfg.Repositories[:i], s.cfg.Repositories[i+1:]...)
			return Save(s.cfg)
		}
	}
	return errors.New(errors.ErrCodeRepoNotFound,
		fmt.Sprintf("No repository with id '%s'", id)).
		WithContext("id", id)
}

// Toggle flips the enabled flag of the repository with the given id.
func (s *Store) Toggle(id string) (*models.Repository, error) {
	repo := s.cfg.FindRepository(id)
	if repo == nil {
		return nil, errors.New(errors.ErrCodeRepoNotFound,
			fmt.Sprintf("No repository with id '%s'", id)).
			WithContext("id", id)
	}
	repo.Enabled = !repo.Enabled
	if err := Save(s.cfg); err != nil {
		return nil, err
	}
	return repo, nil
}

// List returns the repositories in insertion order.
func (s *Store) List() []models.Repository {
	out := make([]models.Repository, len(s.cfg.Repositories))
	copy(out, s.cfg.Repositories)
	return out
}

// Enabled returns only the repositories currently enabled for batches.
func (s *Store) Enabled() []models.Repository {
	var out []models.Repository
	for _, r := range s.cfg.Repositories {
		if r.Enabled {
			out = append(out, r)
		}
	}
	return out
}
