package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/resto-backoffice/floor"
	"github.com/yeremiapane/resto-backoffice/middlewares"
	"github.com/yeremiapane/resto-backoffice/models"
	"github.com/yeremiapane/resto-backoffice/reports"
	"github.com/yeremiapane/resto-backoffice/repository"
	"github.com/yeremiapane/resto-backoffice/reservation"
	"github.com/yeremiapane/resto-backoffice/utils"
	"gorm.io/gorm"
)

const (
	defaultGranularity  = 15
	maxAvailabilityDays = 31
)

type ReservationController struct {
	Engine       *reservation.Engine
	Reservations *repository.ReservationRepository
	Hours        *repository.OpeningHourRepository
	Hub          *floor.Hub
	Restaurant   string
}

func NewReservationController(engine *reservation.Engine, reservations *repository.ReservationRepository, hours *repository.OpeningHourRepository, hub *floor.Hub, restaurant string) *ReservationController {
	return &ReservationController{
		Engine:       engine,
		Reservations: reservations,
		Hours:        hours,
		Hub:          hub,
		Restaurant:   restaurant,
	}
}

type dayAvailability struct {
	Date   string         `json:"date"`
	Starts []models.Clock `json:"starts"`
}

// GetAvailability -> jam mulai yang masih bisa dipesan untuk satu atau beberapa tanggal
func (rc *ReservationController) GetAvailability(c *gin.Context) {
	var q struct {
		Dates       []string `form:"date"`
		Duration    int      `form:"duration" binding:"required"`
		Granularity int      `form:"granularity"`
		People      int      `form:"people" binding:"required"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if len(q.Dates) == 0 {
		utils.RespondError(c, http.StatusBadRequest, errDateRequired)
		return
	}
	if len(q.Dates) > maxAvailabilityDays {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("at most %d dates per request", maxAvailabilityDays))
		return
	}
	if q.Granularity == 0 {
		q.Granularity = defaultGranularity
	}

	dates := make([]time.Time, 0, len(q.Dates))
	for _, raw := range q.Dates {
		d, err := models.ParseDate(raw, rc.Engine.Location())
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid date %q", raw))
			return
		}
		dates = append(dates, d)
	}

	days, err := rc.Engine.AvailableStartsForDays(c.Request.Context(), reservation.AvailabilityQuery{
		Dates:              dates,
		DurationMinutes:    q.Duration,
		GranularityMinutes: q.Granularity,
		PartySize:          q.People,
	})
	if errors.Is(err, reservation.ErrInvalidQuery) {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		utils.ErrorLogger.Printf("Availability lookup failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	out := make([]dayAvailability, len(days))
	for i, d := range days {
		out[i] = dayAvailability{Date: models.DateKey(d.Date), Starts: d.Starts}
	}
	utils.RespondJSON(c, http.StatusOK, "Available start times", out)
}

// CreateReservation -> booking meja. Token opsional: customer yang login otomatis tercatat.
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var req struct {
		Date       string `json:"date" binding:"required"`
		StartTime  string `json:"start_time" binding:"required"`
		EndTime    string `json:"end_time" binding:"required"`
		People     int    `json:"people" binding:"required"`
		Name       string `json:"name" binding:"max=255"`
		Phone      string `json:"phone" binding:"max=50"`
		Notes      string `json:"notes"`
		CustomerID *uint  `json:"customer_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	date, err := models.ParseDate(req.Date, rc.Engine.Location())
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid date %q", req.Date))
		return
	}
	start, err := models.ParseClock(req.StartTime)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	end, err := models.ParseClock(req.EndTime)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	booking := reservation.BookingRequest{
		Date:      date,
		Start:     start,
		End:       end,
		PartySize: req.People,
		Name:      req.Name,
		Phone:     req.Phone,
		Notes:     req.Notes,
	}
	booking.CustomerID = customerFor(c, req.CustomerID)

	r, err := rc.Engine.MakeReservation(c.Request.Context(), booking)
	if reason, ok := reservation.RejectionReason(err); ok {
		utils.RespondRejection(c, rejectionStatus(reason), reason)
		return
	}
	if err != nil {
		utils.ErrorLogger.Printf("Booking failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	rc.Hub.BroadcastReservationCreated(*r)
	utils.RespondJSON(c, http.StatusCreated, "Reservation confirmed", r)
}

// customerFor: customer yang login memesan untuk dirinya sendiri, staff boleh
// memesan atas nama customer lain, tamu anonim tercatat sebagai walk-in.
func customerFor(c *gin.Context, requested *uint) *uint {
	idValue, ok := c.Get(middlewares.ContextUserID)
	if !ok {
		return nil
	}
	userID, _ := idValue.(uint)
	if c.GetString(middlewares.ContextRole) == models.RoleCustomer {
		return &userID
	}
	return requested
}

func rejectionStatus(reason string) int {
	switch reason {
	case reservation.ReasonNoTableAvailable:
		return http.StatusConflict
	case reservation.ReasonBookingTimedOut:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadRequest
	}
}

// GetReservations -> daftar reservasi pada satu tanggal (staff)
func (rc *ReservationController) GetReservations(c *gin.Context) {
	date, ok := rc.dateQuery(c)
	if !ok {
		return
	}
	list, err := rc.Reservations.FindAllByDate(c.Request.Context(), date)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of reservations", list)
}

func (rc *ReservationController) GetReservationByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("reservation_id"), 10, 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errInvalidID)
		return
	}
	r, err := rc.Reservations.FindByID(c.Request.Context(), uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondError(c, http.StatusNotFound, errors.New("reservation not found"))
		return
	}
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation detail", r)
}

// ExportDaySheet -> PDF daftar reservasi untuk meja host
func (rc *ReservationController) ExportDaySheet(c *gin.Context) {
	date, ok := rc.dateQuery(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	list, err := rc.Reservations.FindAllByDate(ctx, date)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	sheet := reports.DaySheet{Restaurant: rc.Restaurant, Date: date, Reservations: list}
	if h, open, err := rc.Hours.Get(ctx, date.Weekday()); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	} else if open {
		sheet.Hours = &models.OpeningHour{Weekday: date.Weekday(), OpeningTime: h.Opening, ClosingTime: h.Closing}
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="reservations-%s.pdf"`, models.DateKey(date)))
	c.Status(http.StatusOK)
	if err := sheet.WritePDF(c.Writer); err != nil {
		utils.ErrorLogger.Printf("Error rendering day sheet: %v", err)
	}
}

func (rc *ReservationController) dateQuery(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		utils.RespondError(c, http.StatusBadRequest, errDateRequired)
		return time.Time{}, false
	}
	date, err := models.ParseDate(raw, rc.Engine.Location())
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid date %q", raw))
		return time.Time{}, false
	}
	return date, true
}
