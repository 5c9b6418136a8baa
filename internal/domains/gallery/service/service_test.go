package service_test

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"camargue/config"
	"camargue/infras/otel/mocks"
	s3Mocks "camargue/infras/s3/mocks"
	galleryMocks "camargue/internal/domains/gallery/mocks"
	"camargue/internal/domains/gallery/model"
	"camargue/internal/domains/gallery/model/dto"
	"camargue/internal/domains/gallery/service"
	"camargue/shared/cache"
	"camargue/shared/constant"
	"camargue/shared/failure"
	gModel "camargue/shared/model"
	"camargue/shared/timezone"
)

// stubCache misses every read and swallows writes; the async cache writes
// would race a gomock controller.
type stubCache struct{}

func (stubCache) Save(_ context.Context, _ string, _ any, _ int) error { return nil }
func (stubCache) Get(_ context.Context, _ string, _ any) error        { return cache.Nil }
func (stubCache) Delete(_ context.Context, _ string) error            { return nil }
func (stubCache) Clear(_ context.Context, _ string) error             { return nil }

func newService(t *testing.T) (
	service.Gallery,
	*galleryMocks.MockPhoto,
	*s3Mocks.MockS3,
) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := galleryMocks.NewMockPhoto(ctrl)
	mockS3 := s3Mocks.NewMockS3(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 60
	cfg.External.S3.BucketName = "camargue-gallery"

	svc := service.New(mockRepo, cfg, stubCache{}, mockOtel, mockS3)

	return svc, mockRepo, mockS3
}

func authedContext(userID string) context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, userID)
}

func uploadRequest() dto.UploadPhotoRequest {
	return dto.UploadPhotoRequest{
		Title:     "Sunset off the salt flats",
		Caption:   "Taken from the foredeck",
		SortOrder: 3,
		Image:     &multipart.FileHeader{Filename: "sunset.jpg"},
	}
}

func TestGalleryService_Upload(t *testing.T) {
	t.Run("successful upload", func(t *testing.T) {
		svc, mockRepo, mockS3 := newService(t)

		mockS3.EXPECT().
			UploadFile(gomock.Any(), constant.Empty, "photos", gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _, directory string, _ multipart.File, _ *multipart.FileHeader, fileName string) (string, error) {
				assert.True(t, strings.HasSuffix(fileName, ".jpg"))

				return "https://cdn.example.com/" + directory + "/" + fileName, nil
			})
		mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		res, err := svc.Upload(authedContext("user-1"), uploadRequest())

		assert.NoError(t, err)
		assert.NotEmpty(t, res.ID)
		assert.Equal(t, "Sunset off the salt flats", res.Title)
		assert.Contains(t, res.URL, "https://cdn.example.com/photos/")
	})

	t.Run("unauthenticated caller", func(t *testing.T) {
		svc, _, _ := newService(t)

		_, err := svc.Upload(context.Background(), uploadRequest())

		assert.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("storage failure removes the uploaded object", func(t *testing.T) {
		svc, mockRepo, mockS3 := newService(t)

		mockS3.EXPECT().
			UploadFile(gomock.Any(), constant.Empty, "photos", gomock.Any(), gomock.Any(), gomock.Any()).
			Return("https://cdn.example.com/photos/sunset.jpg", nil)
		mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))
		mockS3.EXPECT().
			DeleteFile(gomock.Any(), "camargue-gallery", "photos", gomock.Any()).
			Return(nil)

		_, err := svc.Upload(authedContext("user-1"), uploadRequest())

		assert.Error(t, err)
	})

	t.Run("upload failure surfaces without touching storage", func(t *testing.T) {
		svc, _, mockS3 := newService(t)

		mockS3.EXPECT().
			UploadFile(gomock.Any(), constant.Empty, "photos", gomock.Any(), gomock.Any(), gomock.Any()).
			Return(constant.Empty, errors.New("bucket unavailable"))

		_, err := svc.Upload(authedContext("user-1"), uploadRequest())

		assert.Error(t, err)
	})
}

func TestGalleryService_GetAll(t *testing.T) {
	t.Run("photos ordered by position", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		photos := []model.Photo{
			{ID: "photo-1", Title: "Flamingos", SortOrder: 1, Metadata: gModel.NewMetadata(timezone.Now(), "user-1")},
			{ID: "photo-2", Title: "White horses", SortOrder: 2, Metadata: gModel.NewMetadata(timezone.Now(), "user-1")},
		}

		mockRepo.EXPECT().ListOrdered(gomock.Any()).Return(photos, nil)

		res, err := svc.GetAll(context.Background())

		assert.NoError(t, err)
		assert.Len(t, res.Photos, 2)
		assert.Equal(t, "photo-1", res.Photos[0].ID)
		assert.Equal(t, "photo-2", res.Photos[1].ID)
	})

	t.Run("storage failure surfaces", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		mockRepo.EXPECT().ListOrdered(gomock.Any()).Return(nil, errors.New("connection refused"))

		_, err := svc.GetAll(context.Background())

		assert.Error(t, err)
	})
}

func TestGalleryService_Delete(t *testing.T) {
	t.Run("successful delete removes the object too", func(t *testing.T) {
		svc, mockRepo, mockS3 := newService(t)

		photo := model.Photo{ID: "photo-1", URL: "https://cdn.example.com/camargue-gallery/photos/sunset.jpg"}

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(photo, nil)
		mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
		mockS3.EXPECT().GetObjectNameFromURL("camargue-gallery", photo.URL).Return("photos/sunset.jpg")
		mockS3.EXPECT().DeleteFile(gomock.Any(), "camargue-gallery", constant.Empty, "photos/sunset.jpg").Return(nil)

		err := svc.Delete(authedContext("user-1"), "photo-1")

		assert.NoError(t, err)
	})

	t.Run("unknown photo", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Photo{}, nil)

		err := svc.Delete(authedContext("user-1"), "no-such-photo")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("object removal failure does not fail the delete", func(t *testing.T) {
		svc, mockRepo, mockS3 := newService(t)

		photo := model.Photo{ID: "photo-1", URL: "https://cdn.example.com/camargue-gallery/photos/sunset.jpg"}

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(photo, nil)
		mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
		mockS3.EXPECT().GetObjectNameFromURL("camargue-gallery", photo.URL).Return("photos/sunset.jpg")
		mockS3.EXPECT().DeleteFile(gomock.Any(), "camargue-gallery", constant.Empty, "photos/sunset.jpg").
			Return(errors.New("bucket unavailable"))

		err := svc.Delete(authedContext("user-1"), "photo-1")

		assert.NoError(t, err)
	})
}
