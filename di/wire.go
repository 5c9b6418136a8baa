//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"camargue/config"
	"camargue/infras/jwt"
	"camargue/infras/kafka"
	"camargue/infras/otel"
	"camargue/infras/postgres"
	"camargue/infras/redis"
	"camargue/infras/s3"
	"camargue/internal/notifications"
	"camargue/shared/cache"
	"camargue/transport/http"
	"camargue/transport/http/middleware"
	"camargue/transport/http/router"

	authRepository "camargue/internal/domains/auth/repository"
	authService "camargue/internal/domains/auth/service"
	bookingRepository "camargue/internal/domains/booking/repository"
	bookingService "camargue/internal/domains/booking/service"
	forumRepository "camargue/internal/domains/forum/repository"
	forumService "camargue/internal/domains/forum/service"
	galleryRepository "camargue/internal/domains/gallery/repository"
	galleryService "camargue/internal/domains/gallery/service"
	userRepository "camargue/internal/domains/user/repository"

	authHandler "camargue/internal/handlers/auth"
	bookingHandler "camargue/internal/handlers/booking"
	forumHandler "camargue/internal/handlers/forum"
	galleryHandler "camargue/internal/handlers/gallery"
)

var configurations = wire.NewSet(
	config.Get,
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
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	notifications.New,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authRepository.New,
	authService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var forumDomain = wire.NewSet(
	forumRepository.NewPost,
	forumRepository.NewReply,
	forumService.New,
)

var galleryDomain = wire.NewSet(
	galleryRepository.New,
	galleryService.New,
)

var domains = wire.NewSet(
	authDomain,
	bookingDomain,
	forumDomain,
	galleryDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	bookingHandler.New,
	forumHandler.New,
	galleryHandler.New,
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
