package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"sheen/config"
	"sheen/infras/otel"
	"sheen/infras/s3"
	jobModel "sheen/internal/domains/job/model"
	jobRepo "sheen/internal/domains/job/repository"
	"sheen/internal/domains/photo/model"
	"sheen/internal/domains/photo/model/dto"
	"sheen/internal/domains/photo/repository"
	"sheen/shared"
	"sheen/shared/constant"
	gDto "sheen/shared/dto"
	"sheen/shared/failure"
)

type Photo interface {
	Upload(ctx context.Context, req dto.UploadPhotoRequest, cleanerID string) (dto.PhotoResponse, error)
	ForJob(ctx context.Context, bookingID string) (dto.JobPhotosResponse, error)
	Delete(ctx context.Context, id, cleanerID string) error
}

type serviceImpl struct {
	repo    repository.Photo
	jobRepo jobRepo.Job
	cfg     *config.Config
	otel    otel.Otel
	s3      s3.S3
}

func New(repo repository.Photo, jobs jobRepo.Job, cfg *config.Config, otel otel.Otel, s3 s3.S3) Photo {
	return &serviceImpl{
		repo:    repo,
		jobRepo: jobs,
		cfg:     cfg,
		otel:    otel,
		s3:      s3,
	}
}

// Upload attaches a before/after photo to a job. Only the assigned
// cleaner may document a job, and only once work has started.
func (s *serviceImpl) Upload(ctx context.Context, req dto.UploadPhotoRequest, cleanerID string) (res dto.PhotoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Upload")
	defer scope.End()
	defer scope.TraceIfError(err)

	job, err := s.jobRepo.Get(ctx, shared.FilterByID(req.BookingID, jobModel.FieldID, jobModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get job for photo upload")

		return res, fmt.Errorf("failed to get job: %w", err)
	}

	if job.ID == constant.Empty {
		return res, failure.NotFound("job not found") //nolint:wrapcheck
	}

	if job.CleanerID == nil || *job.CleanerID != cleanerID {
		return res, failure.Forbidden("job is not assigned to you") //nolint:wrapcheck
	}

	switch job.Status {
	case jobModel.StatusOnMyWay, jobModel.StatusInProgress, jobModel.StatusCompleted:
	default:
		return res, failure.Conflict(fmt.Sprintf("photos cannot be added while the job is %s", job.Status)) //nolint:wrapcheck
	}

	bucketName := s.cfg.External.S3.BucketName

	url, err := s.s3.UploadFile(ctx, bucketName, model.EntityName, req.ImageFile, req.Image, req.Image.Filename)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload photo to S3")

		return res, fmt.Errorf("failed to upload photo to S3: %w", err)
	}

	photo := req.ToModel(url, cleanerID)

	if err = s.repo.Insert(ctx, photo); err != nil {
		log.Error().Err(err).Msg("failed to save photo")

		return res, fmt.Errorf("failed to save photo: %w", err)
	}

	res.FromModel(photo)

	return res, nil
}

func (s *serviceImpl) ForJob(ctx context.Context, bookingID string) (res dto.JobPhotosResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ForJob")
	defer scope.End()
	defer scope.TraceIfError(err)

	params := gDto.QueryParams{
		SortBy:  constant.FieldCreatedAt,
		SortDir: gDto.SortDirAsc,
	}

	photos, err := s.repo.GetAll(ctx, params, shared.FilterByID(bookingID, model.FieldBookingID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get job photos")

		return res, fmt.Errorf("failed to get job photos: %w", err)
	}

	res.FromModels(bookingID, photos)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id, cleanerID string) (err error) {
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

	if photo.CleanerID != cleanerID {
		return failure.Forbidden("photo does not belong to you") //nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete photo")

		return fmt.Errorf("failed to delete photo: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		bucketName := s.cfg.External.S3.BucketName

		objectName := s.s3.GetObjectNameFromURL(bucketName, photo.URL)
		if objectName == constant.Empty {
			log.Warn().Str("url", photo.URL).Msg("failed to extract object name from URL")

			return
		}

		if err := s.s3.DeleteFile(c, bucketName, model.EntityName, objectName); err != nil {
			log.Error().Err(err).Str("objectName", objectName).Msg("failed to delete photo from S3")
		}
	}()

	return nil
}
