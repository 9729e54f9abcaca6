package engine

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"
)

var changeTypes = []string{"feature", "fix", "refactor", "docs", "test"}

// MessageGenerator produces conventional-commit style messages keyed to
// the mutated file.
type MessageGenerator struct {
	rng *rand.Rand
}

// NewMessageGenerator creates a generator over the given random source.
func NewMessageGenerator(rng *rand.Rand) *MessageGenerator {
	return &MessageGenerator{rng: rng}
}

// Generate picks a random change type and fills one of its templates.
func (g *MessageGenerator) Generate(filePath string) string {
	changeType := changeTypes[g.rng.Intn(len(changeTypes))]
	return g.generate(filePath, changeType)
}

func (g *MessageGenerator) generate(filePath, changeType string) string {
	fileName := filepath.Base(filePath)
	scope := strings.TrimPrefix(filepath.Ext(filePath), ".")
	if scope == "" {
		scope = "core"
	}

	var pool []string
	switch changeType {
	case "feature":
		pool = []string{
			fmt.Sprintf("feat(%s): implement new %s functionality", scope, fileName),
			fmt.Sprintf("feat: add %s module", fileName),
			fmt.Sprintf("feat: integrate %s with existing system", fileName),
			"feat: introduce dark mode support",
			"feat: add multi-language support",
		}
	case "fix":
		pool = []string{
			fmt.Sprintf("fix(%s): resolve memory leak in %s", scope, fileName),
			fmt.Sprintf("bugfix: handle edge case in %s", fileName),
			"fix: correct validation logic",
			"hotfix: address critical performance issue",
			"fix: resolve merge conflicts",
		}
	case "refactor":
		pool = []string{
			fmt.Sprintf("refactor(%s): optimize %s performance", scope, fileName),
			fmt.Sprintf("refactor: clean up %s implementation", fileName),
			"style: format code according to guidelines",
			"refactor: simplify error handling",
			"perf: optimize database queries",
		}
	case "docs":
		pool = []string{
			fmt.Sprintf("docs(%s): update %s documentation", scope, fileName),
			fmt.Sprintf("docs: add examples for %s", fileName),
			"docs: fix typos in README",
			"docs: improve API documentation",
			"chore: update dependencies",
		}
	default: // test
		pool = []string{
			fmt.Sprintf("test(%s): add unit tests for %s", scope, fileName),
			fmt.Sprintf("test: improve coverage for %s", fileName),
			"test: add integration tests",
			"test: fix flaky tests",
			"ci: configure GitHub Actions",
		}
	}

	return pool[g.rng.Intn(len(pool))]
}
