package get_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-TableBooking/internal/api/handlers"
	"github.com/m04kA/SMC-TableBooking/internal/domain"
	getAvailability "github.com/m04kA/SMC-TableBooking/internal/usecase/get_availability"
)

const (
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidBookingData = "некорректное время в сохранённом бронировании"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/availability
// Query params: date (optional, YYYY-MM-DD, по умолчанию сегодня)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateStr := r.URL.Query().Get("date")

	useCaseReq, err := ToUseCaseRequest(dateStr)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid date: date=%q, error=%v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidBookingData):
			h.logger.Error("GET /availability - Invalid stored booking data: date=%q, error=%v", dateStr, err)
			handlers.RespondUnprocessable(w, msgInvalidBookingData)

		default:
			h.logger.Error("GET /availability - Failed to get availability: date=%q, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - Availability retrieved successfully: date=%s, tables=%d, slots=%d",
		result.Date.Format(domain.DateFormat), len(result.Tables), result.SlotsCount())
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
