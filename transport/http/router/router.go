package router

import (
	"github.com/go-chi/chi/v5"

	"camargue/internal/handlers/auth"
	"camargue/internal/handlers/booking"
	"camargue/internal/handlers/forum"
	"camargue/internal/handlers/gallery"
)

type DomainHandlers struct {
	Auth    auth.Handler
	Booking booking.Handler
	Forum   forum.Handler
	Gallery gallery.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Forum.Router(routerGroup)
		r.DomainHandlers.Gallery.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
