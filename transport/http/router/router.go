package router

import (
	"sheen/internal/handlers/auth"
	"sheen/internal/handlers/availability"
	"sheen/internal/handlers/job"
	"sheen/internal/handlers/photo"
	"sheen/internal/handlers/schedule"
	"sheen/internal/handlers/team"
	"sheen/internal/handlers/user"
	"sheen/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth         auth.Handler
	User         user.Handler
	Schedule     schedule.Handler
	Job          job.Handler
	Availability availability.Handler
	Team         team.Handler
	Photo        photo.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	middleware     middleware.AuthRole
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.middleware.APIKey, r.middleware.Auth, r.middleware.RBAC)

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Schedule.Router(routerGroup)
		r.DomainHandlers.Job.Router(routerGroup)
		r.DomainHandlers.Availability.Router(routerGroup)
		r.DomainHandlers.Team.Router(routerGroup)
		r.DomainHandlers.Photo.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, authRole middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		middleware:     authRole,
	}
}
