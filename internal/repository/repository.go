package repository

import (
	"basstatic/internal/database"
)

type Repositories struct {
	Commits *CommitRepository
}

func NewRepositories(db *database.DB) *Repositories {
	return &Repositories{
		Commits: NewCommitRepository(db),
	}
}
