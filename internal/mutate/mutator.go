// Package mutate selects a file in a repository and applies a minimal
// textual change so the work tree has something to commit.
package mutate

import (
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"commitpulse/pkg/errors"
)

// Mutator performs one minimal change per commit cycle. The random source
// is injected so tests can pin file selection and insertion position.
type Mutator struct {
	rng *rand.Rand
	now func() time.Time
}

// NewMutator creates a mutator driven by the given random source.
func NewMutator(rng *rand.Rand) *Mutator {
	return &Mutator{rng: rng, now: time.Now}
}

// Candidates walks the repository and returns every file with a supported
// extension, skipping the .git directory.
func (m *Mutator) Candidates(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if IsSupported(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.FileIOError("Failed to walk repository", root, err)
	}
	return files, nil
}

// Mutate picks one candidate uniformly at random and inserts a comment line
// at a random position. It returns the path of the mutated file.
func (m *Mutator) Mutate(root string) (string, error) {
	candidates, err := m.Candidates(root)
	if err != nil {
		return "", err
	}
	if len(candidates) == 0 {
		return "", errors.NoSupportedFilesError(root)
	}

	target := candidates[m.rng.Intn(len(candidates))]
	if err := m.insertComment(target); err != nil {
		return "", err
	}
	return target, nil
}

// insertComment rewrites the file with one extra comment line. The write
// goes through a temp file and an atomic rename so a concurrent reader
// never sees a half-written file.
func (m *Mutator) insertComment(path string) error {
	data, err := os.ReadFile(path) // #nosec G304 - path comes from the walk above
	if err != nil {
		return errors.FileIOError("Failed to read file", path, err)
	}

	lang := DetectLanguage(path)
	comment := fmt.Sprintf("%s %s - %s",
		CommentMarker(lang),
		commentPhrases[lang],
		m.now().Format("2006-01-02 15:04:05"),
	)

	lines := splitLines(string(data))
	index := 0
	if len(lines) > 0 {
		index = m.rng.Intn(len(lines))
	}

	lines = append(lines[:index], append([]string{comment}, lines[index:]...)...)
	content := strings.Join(lines, "\n") + "\n"

	return atomicWrite(path, []byte(content))
}

// splitLines splits file content into lines without a trailing empty
// element for content ending in a newline. A zero-byte file has no lines.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func atomicWrite(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.FileIOError("Failed to stat file", path, err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".commitpulse-*")
	if err != nil {
		return errors.FileIOError("Failed to create temp file", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.FileIOError("Failed to write temp file", tmpName, err)
	}
	if err := tmp.Chmod(info.Mode()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.FileIOError("Failed to set file mode", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.FileIOError("Failed to close temp file", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.FileIOError("Failed to replace file", path, err)
	}
	return nil
}
