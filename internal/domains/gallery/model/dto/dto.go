package dto

import (
	"mime/multipart"

	"github.com/google/uuid"

	"camargue/internal/domains/gallery/model"
	gDto "camargue/shared/dto"
	gModel "camargue/shared/model"
	"camargue/shared/timezone"
)

type UploadPhotoRequest struct {
	Title     string                `json:"title"      validate:"required,min=3,max=100"`
	Caption   string                `json:"caption"    validate:"omitempty,max=255"`
	SortOrder int                   `json:"sort_order" validate:"omitempty,gte=0"`
	Image     *multipart.FileHeader `json:"image"      swaggerignore:"true" validate:"required,mimetypes=image/png image/jpg image/jpeg"`
	ImageFile multipart.File        `json:"-"`
}

func (c *UploadPhotoRequest) ToModel(user, url string) model.Photo {
	return model.Photo{
		ID:        uuid.NewString(),
		Title:     c.Title,
		Caption:   c.Caption,
		URL:       url,
		SortOrder: c.SortOrder,
		Metadata:  gModel.NewMetadata(timezone.Now(), user),
	}
}

type PhotoResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Caption   string `json:"caption"`
	URL       string `json:"url"`
	SortOrder int    `json:"sort_order"`
	gDto.Metadata
}

func (r *PhotoResponse) FromModel(model model.Photo) {
	r.ID = model.ID
	r.Title = model.Title
	r.Caption = model.Caption
	r.URL = model.URL
	r.SortOrder = model.SortOrder
	r.Metadata.FromModel(model.Metadata)
}

type GetPhotosResponse struct {
	Photos []PhotoResponse `json:"photos"`
}

func (r *GetPhotosResponse) FromModels(models []model.Photo) {
	r.Photos = make([]PhotoResponse, len(models))
	for i, mod := range models {
		r.Photos[i].FromModel(mod)
	}
}
