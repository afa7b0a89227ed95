package update_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TableBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TableBooking/internal/api/middleware"
	updateBooking "github.com/m04kA/SMC-TableBooking/internal/usecase/update_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат времени, ожидается YYYY-MM-DDTHH:mm:ss"
	msgInvalidInput       = "некорректные данные бронирования"
	msgInvalidTimeRange   = "начало должно быть раньше конца, в пределах одного дня"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgTableNotFound      = "стол не найден"
	msgCapacityExceeded   = "количество гостей превышает вместимость стола"
)

type Handler struct {
	useCase UpdateBookingUseCase
	logger  Logger
}

func NewHandler(useCase UpdateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PUT /bookings/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID, actor)
	if err != nil {
		h.logger.Warn("PUT /bookings/{id} - Failed to parse time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateBooking.ErrBookingNotFound):
			h.logger.Warn("PUT /bookings/{id} - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateBooking.ErrAccessDenied):
			h.logger.Warn("PUT /bookings/{id} - Access denied: booking_id=%d, user_id=%d", bookingID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, updateBooking.ErrInvalidInput):
			h.logger.Warn("PUT /bookings/{id} - Invalid input: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, updateBooking.ErrInvalidTimeRange):
			h.logger.Warn("PUT /bookings/{id} - Invalid time range: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, updateBooking.ErrTableNotFound):
			h.logger.Warn("PUT /bookings/{id} - Table not found: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondNotFound(w, msgTableNotFound)

		case errors.Is(err, updateBooking.ErrGuestCountExceedsCapacity):
			h.logger.Warn("PUT /bookings/{id} - Capacity exceeded: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgCapacityExceeded)

		default:
			h.logger.Error("PUT /bookings/{id} - Failed to update booking: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /bookings/{id} - Booking updated successfully: booking_id=%d, user_id=%d",
		bookingID, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
