package usecase

import (
	"github.com/yrrapt/yaaade/internal/domain"
	"github.com/yrrapt/yaaade/internal/ports"
)

type ListFixtures struct {
	fixtures ports.FixtureLoader
}

func NewListFixtures(fl ports.FixtureLoader) *ListFixtures {
	return &ListFixtures{fixtures: fl}
}

func (uc *ListFixtures) Execute(root string) ([]domain.FixtureRef, error) {
	return uc.fixtures.ListFixtures(root)
}
