package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"path"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"camargue/config"
	"camargue/infras/otel"
	"camargue/infras/s3"
	"camargue/internal/domains/gallery/model"
	"camargue/internal/domains/gallery/model/dto"
	"camargue/internal/domains/gallery/repository"
	"camargue/shared"
	"camargue/shared/cache"
	"camargue/shared/constant"
	"camargue/shared/failure"
)

const (
	cacheGetPhotos = "gallery:gets"

	photoDirectory = "photos"
)

type Gallery interface {
	Upload(ctx context.Context, req dto.UploadPhotoRequest) (dto.PhotoResponse, error)
	GetAll(ctx context.Context) (dto.GetPhotosResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Photo
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Photo, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Gallery {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) Upload(ctx context.Context, req dto.UploadPhotoRequest) (res dto.PhotoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Upload")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user == constant.Empty {
		return res, failure.Unauthorized("authentication required") //nolint:wrapcheck
	}

	fileName := uuid.NewString() + path.Ext(req.Image.Filename)

	url, err := s.s3.UploadFile(ctx, constant.Empty, photoDirectory, req.ImageFile, req.Image, fileName)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload photo")

		return res, fmt.Errorf("failed to upload photo: %w", err)
	}

	photo := req.ToModel(user, url)

	if err = s.repo.Insert(ctx, photo); err != nil {
		log.Error().Err(err).Msg("failed to store photo")

		// The row never landed, remove the orphaned object.
		if delErr := s.s3.DeleteFile(ctx, s.cfg.External.S3.BucketName, photoDirectory, fileName); delErr != nil {
			log.Error().Err(delErr).Str("file_name", fileName).Msg("failed to remove orphaned photo from S3")
		}

		return res, fmt.Errorf("failed to store photo: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetPhotos)
	}()

	res.FromModel(photo)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context) (res dto.GetPhotosResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.cache.Get(ctx, cacheGetPhotos, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheGetPhotos).Msg("cache hit for photos")

		return res, nil
	}

	photos, err := s.repo.ListOrdered(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list photos")

		return res, fmt.Errorf("failed to list photos: %w", err)
	}

	res.FromModels(photos)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheGetPhotos, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save photos to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	photo, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get photo")

		return fmt.Errorf("failed to get photo: %w", err)
	}

	if photo.ID == constant.Empty {
		return failure.NotFound("photo not found") //nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete photo")

		return fmt.Errorf("failed to delete photo: %w", err)
	}

	// Best effort: a leftover S3 object is harmless, the row is gone.
	bucketName := s.cfg.External.S3.BucketName

	objectName := s.s3.GetObjectNameFromURL(bucketName, photo.URL)
	if objectName != constant.Empty {
		if err := s.s3.DeleteFile(ctx, bucketName, constant.Empty, objectName); err != nil {
			log.Error().Err(err).Str("object_name", objectName).Msg("failed to delete photo from S3")
		}
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetPhotos)
	}()

	return nil
}
