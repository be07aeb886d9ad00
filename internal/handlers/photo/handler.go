package photo

import (
	"net/http"

	"sheen/infras/otel"
	"sheen/internal/domains/photo/model"
	"sheen/internal/domains/photo/model/dto"
	"sheen/internal/domains/photo/service"
	"sheen/shared/constant"
	"sheen/shared/validator"
	"sheen/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Photo
	otel    otel.Otel
}

func New(service service.Photo, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/photos", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.UploadPhoto)
		routerGroup.Get("/", handler.GetJobPhotos)
		routerGroup.Delete("/{id}", handler.DeletePhoto)
	})
}

// UploadPhoto attaches a before/after photo to a job.
// @Summary Upload a job photo
// @Description Upload a before or after photo for a job the calling cleaner is working on.
// @Tags Photo
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Photo file"
// @Param booking_id formData string true "Job ID"
// @Param phase formData string true "before or after"
// @Param caption formData string false "Caption"
// @Success 201 {object} dto.PhotoResponse "Uploaded photo"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/photos [post]
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

	req := dto.UploadPhotoRequest{
		BookingID: r.FormValue(model.FieldBookingID),
		Phase:     r.FormValue(model.FieldPhase),
		Caption:   r.FormValue(model.FieldCaption),
		Image:     fileHeader,
		ImageFile: file,
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate upload request")

		response.WithError(w, err)

		return
	}

	cleanerID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	res, err := handler.service.Upload(ctx, req, cleanerID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload photo")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Photo uploaded by cleaner " + cleanerID)

	response.WithJSON(w, http.StatusCreated, res)
}

// GetJobPhotos lists the photos attached to a job.
// @Summary Get job photos
// @Description List the before/after photos attached to a job.
// @Tags Photo
// @Accept json
// @Produce json
// @Param booking_id query string true "Job ID"
// @Success 200 {object} dto.JobPhotosResponse "Job photos"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/photos [get]
// @Security BearerAuth
func (handler *Handler) GetJobPhotos(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetJobPhotos")
	defer scope.End()

	bookingID := r.URL.Query().Get(model.FieldBookingID)
	if err := validator.ValidateVar(bookingID, "required,uuid"); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	photos, err := handler.service.ForJob(ctx, bookingID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get job photos")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Job photos retrieved successfully")

	response.WithJSON(w, http.StatusOK, photos)
}

// DeletePhoto removes a photo the calling cleaner uploaded.
// @Summary Delete a job photo
// @Description Delete a photo by its ID. Only the uploading cleaner may remove it.
// @Tags Photo
// @Accept json
// @Produce json
// @Param id path string true "Photo ID"
// @Success 200 {object} response.Message "Photo deleted successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/photos/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeletePhoto")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	cleanerID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err := handler.service.Delete(ctx, id, cleanerID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete photo")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Photo deleted by cleaner " + cleanerID)

	response.WithMessage(w, http.StatusOK, "Photo deleted successfully")
}
