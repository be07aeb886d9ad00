//go:build wireinject
// +build wireinject

package di

import (
	"sheen/config"
	"sheen/infras/jwt"
	"sheen/infras/kafka"
	"sheen/infras/otel"
	"sheen/infras/postgres"
	"sheen/infras/redis"
	"sheen/infras/s3"
	"sheen/permissions"
	"sheen/shared/cache"
	"sheen/shared/event"
	"sheen/transport/http"
	"sheen/transport/http/middleware"
	"sheen/transport/http/router"

	authService "sheen/internal/domains/auth/service"
	availabilityRepository "sheen/internal/domains/availability/repository"
	availabilityService "sheen/internal/domains/availability/service"
	jobRepository "sheen/internal/domains/job/repository"
	jobService "sheen/internal/domains/job/service"
	photoRepository "sheen/internal/domains/photo/repository"
	photoService "sheen/internal/domains/photo/service"
	scheduleRepository "sheen/internal/domains/schedule/repository"
	scheduleService "sheen/internal/domains/schedule/service"
	teamRepository "sheen/internal/domains/team/repository"
	teamService "sheen/internal/domains/team/service"
	userRepository "sheen/internal/domains/user/repository"
	userService "sheen/internal/domains/user/service"

	authHandler "sheen/internal/handlers/auth"
	availabilityHandler "sheen/internal/handlers/availability"
	jobHandler "sheen/internal/handlers/job"
	photoHandler "sheen/internal/handlers/photo"
	scheduleHandler "sheen/internal/handlers/schedule"
	teamHandler "sheen/internal/handlers/team"
	userHandler "sheen/internal/handlers/user"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	event.NewPublisher,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
	authService.New,
)

var scheduleDomain = wire.NewSet(
	scheduleRepository.New,
	scheduleService.New,
)

var jobDomain = wire.NewSet(
	jobRepository.New,
	jobService.New,
)

var availabilityDomain = wire.NewSet(
	availabilityRepository.New,
	availabilityService.New,
)

var teamDomain = wire.NewSet(
	teamRepository.New,
	teamService.New,
)

var photoDomain = wire.NewSet(
	photoRepository.New,
	photoService.New,
)

var domains = wire.NewSet(
	userDomain,
	scheduleDomain,
	jobDomain,
	availabilityDomain,
	teamDomain,
	photoDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	scheduleHandler.New,
	jobHandler.New,
	availabilityHandler.New,
	teamHandler.New,
	photoHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
