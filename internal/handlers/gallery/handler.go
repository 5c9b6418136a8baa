package gallery

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"camargue/infras/otel"
	"camargue/internal/domains/gallery/model/dto"
	"camargue/internal/domains/gallery/service"
	"camargue/shared/constant"
	"camargue/shared/validator"
	"camargue/transport/http/middleware"
	"camargue/transport/http/response"
)

const (
	formFieldTitle     = "title"
	formFieldCaption   = "caption"
	formFieldSortOrder = "sort_order"
)

type Handler struct {
	service service.Gallery
	auth    middleware.Auth
	otel    otel.Otel
}

func New(service service.Gallery, auth middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		auth:    auth,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/gallery", func(r chi.Router) {
		r.Get("/", handler.GetPhotos)

		r.Group(func(r chi.Router) {
			r.Use(handler.auth.Auth)
			r.Use(handler.auth.Verified)

			r.Post("/", handler.UploadPhoto)
			r.Delete("/{id}", handler.DeletePhoto)
		})
	})
}

// GetPhotos retrieves the public photo gallery.
// @Summary Get the photo gallery
// @Description Retrieve all gallery photos ordered by their configured position.
// @Tags Gallery
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.GetPhotosResponse] "Gallery photos"
// @Failure 500 {object} response.Error
// @Router /v1/gallery [get]
func (handler *Handler) GetPhotos(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPhotos")
	defer scope.End()

	res, err := handler.service.GetAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get photos")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Photos retrieved successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// UploadPhoto handles a new gallery photo upload.
// @Summary Upload a gallery photo
// @Description Upload a photo with its title and caption to the gallery.
// @Tags Gallery
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Photo title"
// @Param caption formData string false "Photo caption"
// @Param sort_order formData int false "Display position"
// @Param file formData file true "Image file"
// @Success 201 {object} response.Data[dto.PhotoResponse] "Photo uploaded successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/gallery [post]
// @Security BearerAuth
func (handler *Handler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadPhoto")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, err)

		return
	}

	file, fileHeader, err := r.FormFile(constant.FormFile)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get file from form")

		response.WithError(w, err)

		return
	}
	defer file.Close()

	sortOrder, _ := strconv.Atoi(r.FormValue(formFieldSortOrder))

	req := dto.UploadPhotoRequest{
		Title:     r.FormValue(formFieldTitle),
		Caption:   r.FormValue(formFieldCaption),
		SortOrder: sortOrder,
		Image:     fileHeader,
		ImageFile: file,
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate upload request")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Upload(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload photo")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Photo uploaded successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, res)
}

// DeletePhoto deletes a gallery photo by its ID.
// @Summary Delete a gallery photo
// @Description Delete a gallery photo and its stored image.
// @Tags Gallery
// @Accept json
// @Produce json
// @Param id path string true "Photo ID"
// @Success 200 {object} response.Message "Photo deleted successfully"
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/gallery/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeletePhoto")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete photo")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Photo deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Photo deleted successfully")
}
