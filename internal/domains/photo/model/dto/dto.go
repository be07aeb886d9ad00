package dto

import (
	"mime/multipart"

	"github.com/google/uuid"

	"sheen/internal/domains/photo/model"
	gDto "sheen/shared/dto"
	gModel "sheen/shared/model"
	"sheen/shared/timezone"
)

type UploadPhotoRequest struct {
	BookingID string                `json:"booking_id" validate:"required,uuid"`
	Phase     string                `json:"phase"      validate:"required,oneof=before after"`
	Caption   string                `json:"caption"    validate:"omitempty,max=200"`
	Image     *multipart.FileHeader `json:"image"      swaggerignore:"true" validate:"required,mimetypes=image/png image/jpg image/jpeg"`
	ImageFile multipart.File        `json:"-"`
}

func (r *UploadPhotoRequest) ToModel(url, cleanerID string) model.Photo {
	return model.Photo{
		ID:        uuid.NewString(),
		BookingID: r.BookingID,
		CleanerID: cleanerID,
		Phase:     model.Phase(r.Phase),
		URL:       url,
		Caption:   r.Caption,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  cleanerID,
			ModifiedBy: cleanerID,
		},
	}
}

type PhotoResponse struct {
	ID        string `json:"id"`
	BookingID string `json:"booking_id"`
	CleanerID string `json:"cleaner_id"`
	Phase     string `json:"phase"`
	URL       string `json:"url"`
	Caption   string `json:"caption,omitempty"`
	gDto.Metadata
}

func (r *PhotoResponse) FromModel(photo model.Photo) {
	r.ID = photo.ID
	r.BookingID = photo.BookingID
	r.CleanerID = photo.CleanerID
	r.Phase = string(photo.Phase)
	r.URL = photo.URL
	r.Caption = photo.Caption
	r.Metadata.FromModel(photo.Metadata)
}

type JobPhotosResponse struct {
	BookingID string          `json:"booking_id"`
	Photos    []PhotoResponse `json:"photos"`
	TotalData int             `json:"total_data"`
}

func (r *JobPhotosResponse) FromModels(bookingID string, models []model.Photo) {
	r.BookingID = bookingID
	r.TotalData = len(models)

	r.Photos = make([]PhotoResponse, len(models))
	for i, mod := range models {
		r.Photos[i].FromModel(mod)
	}
}
