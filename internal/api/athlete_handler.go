package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"physique-coach/internal/analysis"
	"physique-coach/internal/service"
	"physique-coach/internal/store"
)

// AthleteHandler serves profile, measurement and report endpoints
type AthleteHandler struct {
	svc    *service.CoachService
	logger *slog.Logger
	now    func() time.Time
}

// NewAthleteHandler creates a handler backed by svc
func NewAthleteHandler(svc *service.CoachService, logger *slog.Logger) *AthleteHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AthleteHandler{svc: svc, logger: logger, now: time.Now}
}

// GetProfile returns GET /athletes/:id
func (h *AthleteHandler) GetProfile(c *gin.Context) {
	p, err := h.svc.Profile(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.abortWithServiceError(c, err, "load profile")
		return
	}
	c.JSON(http.StatusOK, service.NewProfileDoc(*p))
}

// PutProfile creates or replaces the profile at PUT /athletes/:id
func (h *AthleteHandler) PutProfile(c *gin.Context) {
	var doc service.ProfileDoc
	if err := c.ShouldBindJSON(&doc); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	p, err := doc.ToProfile()
	if err != nil {
		h.abortWithServiceError(c, err, "save profile")
		return
	}
	p.ID = c.Param("id")

	if err := h.svc.SaveProfile(c.Request.Context(), &p); err != nil {
		h.abortWithServiceError(c, err, "save profile")
		return
	}
	c.JSON(http.StatusOK, service.NewProfileDoc(p))
}

// ListMeasurements returns GET /athletes/:id/measurements?from=&to=.
// The range defaults to the report history window ending today.
func (h *AthleteHandler) ListMeasurements(c *gin.Context) {
	to, ok := h.dateQuery(c, "to", h.today())
	if !ok {
		return
	}
	from, ok := h.dateQuery(c, "from", to.AddDate(0, 0, -service.HistoryDays))
	if !ok {
		return
	}

	ms, err := h.svc.Measurements(c.Request.Context(), c.Param("id"), from, to)
	if err != nil {
		h.abortWithServiceError(c, err, "retrieve measurements")
		return
	}

	docs := make([]service.MeasurementDoc, 0, len(ms))
	for _, m := range ms {
		docs = append(docs, service.NewMeasurementDoc(m))
	}
	c.JSON(http.StatusOK, docs)
}

// LogMeasurement stores one day's record at POST /athletes/:id/measurements
// and returns it with the derived fields filled in.
func (h *AthleteHandler) LogMeasurement(c *gin.Context) {
	var doc service.MeasurementDoc
	if err := c.ShouldBindJSON(&doc); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	m, err := doc.ToMeasurement(c.Param("id"))
	if err != nil {
		h.abortWithServiceError(c, err, "log measurement")
		return
	}
	if err := h.svc.LogMeasurement(c.Request.Context(), &m); err != nil {
		h.abortWithServiceError(c, err, "log measurement")
		return
	}
	c.JSON(http.StatusCreated, service.NewMeasurementDoc(m))
}

// DeleteMeasurement handles DELETE /athletes/:id/measurements/:date
func (h *AthleteHandler) DeleteMeasurement(c *gin.Context) {
	date, err := time.Parse(store.DateLayout, c.Param("date"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD.")
		return
	}
	if err := h.svc.DeleteMeasurement(c.Request.Context(), c.Param("id"), date); err != nil {
		h.abortWithServiceError(c, err, "delete measurement")
		return
	}
	c.Status(http.StatusNoContent)
}

// GetReport returns GET /athletes/:id/report?date=, defaulting to today
func (h *AthleteHandler) GetReport(c *gin.Context) {
	date, ok := h.dateQuery(c, "date", h.today())
	if !ok {
		return
	}

	r, err := h.svc.BuildReport(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		h.abortWithServiceError(c, err, "build report")
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *AthleteHandler) today() time.Time {
	return analysis.CalendarDate(h.now())
}

// dateQuery parses a YYYY-MM-DD query parameter, aborting with 400 when malformed
func (h *AthleteHandler) dateQuery(c *gin.Context, key string, def time.Time) (time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		return def, true
	}
	t, err := time.Parse(store.DateLayout, raw)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid "+key+" format, expected YYYY-MM-DD.")
		return time.Time{}, false
	}
	return t, true
}
