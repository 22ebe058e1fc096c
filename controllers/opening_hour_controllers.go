package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/resto-backoffice/floor"
	"github.com/yeremiapane/resto-backoffice/models"
	"github.com/yeremiapane/resto-backoffice/repository"
	"github.com/yeremiapane/resto-backoffice/utils"
)

type OpeningHourController struct {
	Hours *repository.OpeningHourRepository
	Hub   *floor.Hub
}

func NewOpeningHourController(hours *repository.OpeningHourRepository, hub *floor.Hub) *OpeningHourController {
	return &OpeningHourController{Hours: hours, Hub: hub}
}

// GetOpeningHours -> jam buka per hari; hari tanpa entri berarti tutup
func (oc *OpeningHourController) GetOpeningHours(c *gin.Context) {
	hours, err := oc.Hours.List(c.Request.Context())
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Opening hours", hours)
}

// SetOpeningHours -> PUT /admin/opening-hours/:weekday
func (oc *OpeningHourController) SetOpeningHours(c *gin.Context) {
	weekday, err := parseWeekday(c.Param("weekday"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var body struct {
		OpeningTime string `json:"opening_time" binding:"required"`
		ClosingTime string `json:"closing_time" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	opening, err := models.ParseClock(body.OpeningTime)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	closing, err := models.ParseClock(body.ClosingTime)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if closing <= opening {
		utils.RespondError(c, http.StatusBadRequest, errors.New("closing_time must be after opening_time"))
		return
	}

	oh, err := oc.Hours.Set(c.Request.Context(), weekday, opening, closing)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Opening hours for %s set to %s-%s", weekday, opening, closing)
	oc.broadcast(c)
	utils.RespondJSON(c, http.StatusOK, "Opening hours updated", oh)
}

// DeleteOpeningHours -> hari tersebut menjadi tutup
func (oc *OpeningHourController) DeleteOpeningHours(c *gin.Context) {
	weekday, err := parseWeekday(c.Param("weekday"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	existed, err := oc.Hours.Delete(c.Request.Context(), weekday)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if !existed {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("no opening hours for %s", weekday))
		return
	}

	utils.InfoLogger.Printf("Restaurant now closed on %s", weekday)
	oc.broadcast(c)
	utils.RespondJSON(c, http.StatusOK, "Opening hours removed", gin.H{"weekday": weekday})
}

func (oc *OpeningHourController) broadcast(c *gin.Context) {
	hours, err := oc.Hours.List(c.Request.Context())
	if err != nil {
		utils.ErrorLogger.Printf("Error reloading opening hours: %v", err)
		return
	}
	oc.Hub.BroadcastOpeningHours(hours)
}

// parseWeekday accepts 0-6 (Sunday first) or an English day name.
func parseWeekday(s string) (time.Weekday, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 6 {
			return 0, fmt.Errorf("weekday %d out of range 0-6", n)
		}
		return time.Weekday(n), nil
	}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if strings.EqualFold(s, wd.String()) || strings.EqualFold(s, wd.String()[:3]) {
			return wd, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}
