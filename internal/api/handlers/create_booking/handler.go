package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TableBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TableBooking/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-TableBooking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidDateTime    = "некорректный формат времени, ожидается YYYY-MM-DDTHH:mm:ss"
	msgInvalidInput       = "некорректные данные бронирования"
	msgInvalidTimeRange   = "начало должно быть раньше конца, в пределах одного дня"
	msgTableNotFound      = "стол не найден"
	msgCapacityExceeded   = "количество гостей превышает вместимость стола"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrInvalidTimeRange):
			h.logger.Warn("POST /bookings - Invalid time range: user_id=%d, start=%s, end=%s",
				actor.UserID, req.Start, req.EndTime)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, createBooking.ErrTableNotFound):
			h.logger.Warn("POST /bookings - Table not found: table_id=%d", req.TableID)
			handlers.RespondNotFound(w, msgTableNotFound)

		case errors.Is(err, createBooking.ErrGuestCountExceedsCapacity):
			h.logger.Warn("POST /bookings - Capacity exceeded: table_id=%d, guests=%d", req.TableID, req.GuestCount)
			handlers.RespondBadRequest(w, msgCapacityExceeded)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, table_id=%d, error=%v",
				actor.UserID, req.TableID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, table_id=%d",
		result.Booking.ID, result.Booking.UserID, result.Booking.TableID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
