package storage

import (
	"github.com/Abm32/Neuroshift/internal"
	"github.com/Abm32/Neuroshift/internal/config"
)

func NewFileRepositories(cfg *config.Config, logger internal.Logger) (*Repositories, error) {
	s, err := NewFileStorage(cfg.FileAccounts, cfg.FileProfiles, cfg.FileCheckins, cfg.FileTasks, cfg.FileContent, logger)
	if err != nil {
		return nil, err
	}
	return &Repositories{
		Accounts: s,
		Profiles: s,
		Checkins: s,
		Tasks:    s,
		Content:  s,
		closer:   s,
	}, nil
}

func NewPostgresRepositories(dsn string, logger internal.Logger) (*Repositories, error) {
	s, err := NewPostgresStorage(dsn, logger)
	if err != nil {
		return nil, err
	}
	return &Repositories{
		Accounts: s,
		Profiles: s,
		Checkins: s,
		Tasks:    s,
		Content:  s,
		closer:   s,
	}, nil
}
