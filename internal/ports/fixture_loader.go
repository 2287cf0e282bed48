package ports

import "github.com/yrrapt/yaaade/internal/domain"

// FixtureLoader loads declarative fixtures from a source (e.g., filesystem).
type FixtureLoader interface {
	LoadFixture(path string) (domain.FixtureSpec, error)
	ListFixtures(root string) ([]domain.FixtureRef, error)
}
