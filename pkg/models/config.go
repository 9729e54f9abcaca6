package models

// Config is the on-disk configuration: the ordered list of repositories
// the commit engine may touch.
type Config struct {
	Repositories []Repository `yaml:"repositories"`
}

// Repository is one tracked local clone.
type Repository struct {
	ID      string `yaml:"id"`
	Path    string `yaml:"path"`
	Enabled bool   `yaml:"enabled"`
}

// FindRepository returns the repository with the given id, or nil.
func (c *Config) FindRepository(id string) *Repository {
	for i := range c.Repositories {
		if c.Repositories[i].ID == id {
			return &c.Repositories[i]
		}
	}
	return nil
}

// HasPath reports whether a repository with the given path is already configured.
func (c *Config) HasPath(path string) bool {
	for _, r := range c.Repositories {
		if r.Path == path {
			return true
		}
	}
	return false
}
