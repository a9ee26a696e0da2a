package api

import (
	"github.com/Abm32/Neuroshift/internal"
	"github.com/Abm32/Neuroshift/internal/ai"
	"github.com/Abm32/Neuroshift/internal/auth"
	"github.com/Abm32/Neuroshift/internal/session"
	"github.com/Abm32/Neuroshift/internal/storage"
)

type App interface {
	Logger() internal.Logger
	Auth() *auth.Service
	Sessions() *session.Manager
	Repos() *storage.Repositories
	Generator() *ai.Generator
}

type app struct {
	logger    internal.Logger
	auth      *auth.Service
	sessions  *session.Manager
	repos     *storage.Repositories
	generator *ai.Generator
}

func NewApp(logger internal.Logger, authSvc *auth.Service, sessions *session.Manager, repos *storage.Repositories, generator *ai.Generator) App {
	return &app{
		logger:    logger,
		auth:      authSvc,
		sessions:  sessions,
		repos:     repos,
		generator: generator,
	}
}

func (a *app) Logger() internal.Logger      { return a.logger }
func (a *app) Auth() *auth.Service          { return a.auth }
func (a *app) Sessions() *session.Manager   { return a.sessions }
func (a *app) Repos() *storage.Repositories { return a.repos }
func (a *app) Generator() *ai.Generator     { return a.generator }
