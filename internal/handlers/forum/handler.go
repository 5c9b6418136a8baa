package forum

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"camargue/infras/otel"
	"camargue/internal/domains/forum/model/dto"
	"camargue/internal/domains/forum/service"
	"camargue/shared/constant"
	"camargue/shared/validator"
	"camargue/transport/http/middleware"
	"camargue/transport/http/response"
)

type Handler struct {
	service service.Forum
	auth    middleware.Auth
	otel    otel.Otel
}

func New(service service.Forum, auth middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		auth:    auth,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/forum", func(r chi.Router) {
		r.Get("/", handler.GetForum)

		r.Group(func(r chi.Router) {
			r.Use(handler.auth.Auth)
			r.Use(handler.auth.Verified)

			r.Post("/posts", handler.CreatePost)
			r.Post("/posts/{id}/replies", handler.CreateReply)
		})
	})
}

// GetForum retrieves every forum post with its replies.
// @Summary Get the forum
// @Description Retrieve all forum posts, newest first, each with its replies oldest first.
// @Tags Forum
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.GetForumResponse] "Forum posts"
// @Failure 500 {object} response.Error
// @Router /v1/forum [get]
func (handler *Handler) GetForum(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetForum")
	defer scope.End()

	res := handler.service.GetAll(ctx)

	scope.AddEvent("Forum retrieved successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// CreatePost handles the creation of a new forum post.
// @Summary Create a forum post
// @Description Create a new forum post as the authenticated user.
// @Tags Forum
// @Accept json
// @Produce json
// @Param request body dto.CreatePostRequest true "Create Post Request"
// @Success 201 {object} response.Data[dto.PostResponse] "Post created successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/forum/posts [post]
// @Security BearerAuth
func (handler *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePost")
	defer scope.End()

	req := dto.CreatePostRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.CreatePost(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create forum post")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Forum post created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, res)
}

// CreateReply handles the creation of a reply to a forum post.
// @Summary Reply to a forum post
// @Description Create a reply on an existing forum post as the authenticated user.
// @Tags Forum
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param request body dto.CreateReplyRequest true "Create Reply Request"
// @Success 201 {object} response.Data[dto.ReplyResponse] "Reply created successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/forum/posts/{id}/replies [post]
// @Security BearerAuth
func (handler *Handler) CreateReply(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReply")
	defer scope.End()

	postID := chi.URLParam(r, constant.RequestParamID)

	req := dto.CreateReplyRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.CreateReply(ctx, postID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create forum reply")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Forum reply created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, res)
}
