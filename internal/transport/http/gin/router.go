package httpgin

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/qesmsep/noir-reserve/internal/domain"
	redisrepo "github.com/qesmsep/noir-reserve/internal/repository/redis"
	"github.com/qesmsep/noir-reserve/internal/service"
	"github.com/qesmsep/noir-reserve/internal/service/admin"
	"github.com/qesmsep/noir-reserve/internal/service/availability"
	"github.com/qesmsep/noir-reserve/internal/service/booking"
	"github.com/qesmsep/noir-reserve/internal/service/query"
)

func NewRouter(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
	logger *slog.Logger,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery(), LoggingMiddleware(logger), RequestIDMiddleware(), CORS())
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// health
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public API
	r.GET("/availability", handleGetSlots(svcs))
	r.GET("/availability/next", handleNextAvailable(svcs))

	r.POST("/reservations", handleCreateReservation(svcs, idem))
	r.GET("/reservations/:id", handleGetReservation(svcs))
	r.PATCH("/reservations/:id", handleReschedule(svcs))
	r.DELETE("/reservations/:id", handleCancel(svcs))

	// Admin-API
	// TODO: add admin middleware
	adm := r.Group("/admin")
	{
		adm.POST("/tables", handleCreateTable(svcs))
		adm.GET("/tables", handleListTables(svcs))
		adm.POST("/events", handleCreateBlockEvent(svcs))
		adm.PUT("/hours", handleSetWeeklyHours(svcs))
		adm.POST("/hours/exceptions", handleAddHoursException(svcs))
		adm.GET("/reservations", handleDaySheet(svcs))
	}

	return r
}

// --- Handlers with Swagger annotations ---

// @Summary  List open slots for a date
// @Param    date        query  string  true  "YYYY-MM-DD"
// @Param    party_size  query  int     true  "guests"
// @Success  200  {object}  SlotsResponse
// @Failure  400  {object}  ErrorResponse
// @Router   /availability [get]
func handleGetSlots(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		date := c.Query("date")
		partySize := parseIntDefault(c.Query("party_size"), 0)

		slots, err := svcs.Availability.Slots(c.Request.Context(), date, partySize)
		if err != nil {
			respondErr(c, err)
			return
		}
		// ETag + Cache-Control 15s
		writeJSONWithCache(c, http.StatusOK, SlotsResponse{Date: date, Slots: slots}, "public, max-age=15", true)
	}
}

// @Summary  Next available seating time
// @Param    from          query  string  true   "RFC3339"
// @Param    party_size    query  int     true   "guests"
// @Param    duration_min  query  int     false  "seating length, minutes"
// @Success  200  {object}  NextAvailableResponse
// @Failure  409  {object}  ErrorResponse "party too large"
// @Router   /availability/next [get]
func handleNextAvailable(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		from, err := parseRFC3339(c.Query("from"))
		if err != nil {
			badRequest(c, "invalid from (RFC3339)")
			return
		}
		partySize := parseIntDefault(c.Query("party_size"), 0)
		duration := time.Duration(parseIntDefault(c.Query("duration_min"), 0)) * time.Minute

		next, err := svcs.Availability.NextAvailable(c.Request.Context(), from, partySize, duration)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, NextAvailableResponse{NextAvailableTime: timeToStringPtr(next)})
	}
}

// @Summary  Create reservation (idempotent)
// @Param    req body  CreateReservationRequest true "payload"
// @Header   201 {string} Idempotency-Key "echo"
// @Success  201 {object} ReservationResponse
// @Failure  400 {object} ErrorResponse
// @Failure  409 {object} NoTableResponse "no available table / idem in progress"
// @Failure  429 {object} ErrorResponse "rate limited"
// @Router   /reservations [post]
func handleCreateReservation(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateReservationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		starts, err := parseRFC3339(req.StartsAt)
		if err != nil {
			badRequest(c, "invalid starts_at (RFC3339)")
			return
		}
		var ends time.Time
		if req.EndsAt != "" {
			ends, err = parseRFC3339(req.EndsAt)
			if err != nil {
				badRequest(c, "invalid ends_at (RFC3339)")
				return
			}
		}

		idemKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
		var idemStorageKey string
		if idem != nil && idemKey != "" {
			idemStorageKey = redisrepo.KeyIdemReservation(starts.Format(availability.DateLayout), idemKey)

			if payload, ok, _ := idem.GetResult(c.Request.Context(), idemStorageKey); ok {
				c.Header("Idempotency-Key", idemKey)
				c.Data(http.StatusCreated, "application/json; charset=utf-8", []byte(payload))
				return
			}

			locked, err := idem.AcquireLock(c.Request.Context(), idemStorageKey, 60*time.Second)
			if err != nil {
				respondErr(c, err)
				return
			}
			if !locked {
				if payload, ok, _ := idem.GetResult(c.Request.Context(), idemStorageKey); ok {
					c.Header("Idempotency-Key", idemKey)
					c.Data(http.StatusCreated, "application/json; charset=utf-8", []byte(payload))
					return
				}
				c.Header("Retry-After", "1")
				c.JSON(http.StatusConflict, ErrorResponse{Error: "idempotency key in progress"})
				return
			}
		}

		rlKey := "ip:" + c.ClientIP()

		res, err := svcs.Booking.Create(c.Request.Context(), booking.CreateParams{
			PartySize:  req.PartySize,
			StartsAt:   starts,
			EndsAt:     ends,
			GuestName:  req.GuestName,
			GuestPhone: req.GuestPhone,
			GuestEmail: req.GuestEmail,
			Notes:      req.Notes,
			Hold:       req.Hold,
		}, rlKey)
		if err != nil {
			if idemStorageKey != "" && idem != nil {
				_ = idem.Release(c.Request.Context(), idemStorageKey)
			}
			respondErr(c, err)
			return
		}

		resp := toReservationResponse(res)

		if idemStorageKey != "" && idem != nil {
			b, _ := json.Marshal(resp)
			_ = idem.SaveResult(c.Request.Context(), idemStorageKey, string(b))
			c.Header("Idempotency-Key", idemKey)
		}

		c.JSON(http.StatusCreated, resp)
	}
}

// @Summary  Get reservation
// @Param    id  path  string  true  "Reservation ID (uuid)"
// @Success  200 {object} ReservationResponse
// @Failure  404 {object} ErrorResponse
// @Router   /reservations/{id} [get]
func handleGetReservation(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		res, err := svcs.Query.Reservation(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, toReservationResponse(res))
	}
}

// @Summary  Reschedule reservation
// @Param    id   path  string  true  "Reservation ID (uuid)"
// @Param    req  body  RescheduleReservationRequest true "payload"
// @Success  200 {object} ReservationResponse
// @Failure  404 {object} ErrorResponse
// @Failure  409 {object} NoTableResponse
// @Router   /reservations/{id} [patch]
func handleReschedule(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		var req RescheduleReservationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		starts, err := parseRFC3339(req.StartsAt)
		if err != nil {
			badRequest(c, "invalid starts_at (RFC3339)")
			return
		}
		var ends time.Time
		if req.EndsAt != "" {
			ends, err = parseRFC3339(req.EndsAt)
			if err != nil {
				badRequest(c, "invalid ends_at (RFC3339)")
				return
			}
		}

		res, err := svcs.Booking.Reschedule(c.Request.Context(), id, starts, ends, req.PartySize)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, toReservationResponse(res))
	}
}

// @Summary  Cancel reservation
// @Param    id  path  string  true  "Reservation ID (uuid)"
// @Success  204
// @Failure  404 {object} ErrorResponse
// @Router   /reservations/{id} [delete]
func handleCancel(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}
		if err := svcs.Booking.Cancel(c.Request.Context(), id); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Create table
// @Param    req body  CreateTableRequest true "payload"
// @Success  201 {object} CreateTableResponse
// @Failure  409 {object} ErrorResponse
// @Router   /admin/tables [post]
func handleCreateTable(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateTableRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		bookable := true
		if req.Bookable != nil {
			bookable = *req.Bookable
		}
		id, err := svcs.Admin.CreateTable(c.Request.Context(), req.Number, req.Capacity, bookable)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, CreateTableResponse{TableID: id})
	}
}

// @Summary  List tables
// @Success  200 {array} domain.Table
// @Router   /admin/tables [get]
func handleListTables(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		tables, err := svcs.Admin.ListTables(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, tables)
	}
}

// @Summary  Create block event
// @Param    req body  CreateBlockEventRequest true "payload"
// @Success  201 {object} CreateBlockEventResponse
// @Router   /admin/events [post]
func handleCreateBlockEvent(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateBlockEventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		starts, err := parseRFC3339(req.StartsAt)
		if err != nil {
			badRequest(c, "invalid starts_at (RFC3339)")
			return
		}
		ends, err := parseRFC3339(req.EndsAt)
		if err != nil {
			badRequest(c, "invalid ends_at (RFC3339)")
			return
		}

		id, err := svcs.Admin.CreateBlockEvent(c.Request.Context(), &domain.BlockEvent{
			TableID:  req.TableID,
			Title:    req.Title,
			StartsAt: starts,
			EndsAt:   ends,
			FullDay:  req.FullDay,
		})
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, CreateBlockEventResponse{EventID: id})
	}
}

// @Summary  Replace weekly hours for a weekday
// @Param    req body  SetWeeklyHoursRequest true "payload"
// @Success  204
// @Failure  400 {object} ErrorResponse
// @Router   /admin/hours [put]
func handleSetWeeklyHours(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SetWeeklyHoursRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		ranges := make([]domain.WeeklyHours, 0, len(req.Ranges))
		for _, r := range req.Ranges {
			open, ok := parseClock(r.Open)
			if !ok {
				badRequest(c, "invalid open (HH:MM)")
				return
			}
			cls, ok := parseClock(r.Close)
			if !ok {
				badRequest(c, "invalid close (HH:MM)")
				return
			}
			ranges = append(ranges, domain.WeeklyHours{
				Weekday:     time.Weekday(req.Weekday),
				OpenMinute:  open,
				CloseMinute: cls,
			})
		}

		if err := svcs.Admin.SetWeeklyHours(c.Request.Context(), time.Weekday(req.Weekday), ranges); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Add hours exception for a date
// @Param    req body  AddHoursExceptionRequest true "payload"
// @Success  201 {object} HoursExceptionResponse
// @Router   /admin/hours/exceptions [post]
func handleAddHoursException(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddHoursExceptionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		date, err := time.Parse(availability.DateLayout, req.Date)
		if err != nil {
			badRequest(c, "invalid date (YYYY-MM-DD)")
			return
		}

		ex := domain.HoursException{
			Date:    date,
			Closed:  req.Closed,
			FullDay: req.FullDay,
			Reason:  req.Reason,
		}
		if !req.FullDay {
			open, ok := parseClock(req.Open)
			if !ok {
				badRequest(c, "invalid open (HH:MM)")
				return
			}
			cls, ok := parseClock(req.Close)
			if !ok {
				badRequest(c, "invalid close (HH:MM)")
				return
			}
			ex.OpenMinute = open
			ex.CloseMinute = cls
		}

		id, err := svcs.Admin.AddHoursException(c.Request.Context(), &ex)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusCreated, HoursExceptionResponse{ExceptionID: id})
	}
}

// @Summary  Day sheet
// @Param    date  query  string  true  "YYYY-MM-DD"
// @Success  200 {array} ReservationResponse
// @Router   /admin/reservations [get]
func handleDaySheet(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		sheet, err := svcs.Query.DaySheet(c.Request.Context(), c.Query("date"))
		if err != nil {
			respondErr(c, err)
			return
		}
		out := make([]ReservationResponse, 0, len(sheet))
		for i := range sheet {
			out = append(out, toReservationResponse(&sheet[i]))
		}
		c.JSON(http.StatusOK, out)
	}
}

// --- Helpers ---

func toReservationResponse(res *domain.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:         res.ID.String(),
		TableID:    res.TableID,
		PartySize:  res.PartySize,
		StartsAt:   res.StartsAt.Format(time.RFC3339),
		EndsAt:     res.EndsAt.Format(time.RFC3339),
		Status:     string(res.Status),
		GuestName:  res.GuestName,
		GuestPhone: res.GuestPhone,
		GuestEmail: res.GuestEmail,
		Notes:      res.Notes,
		CreatedAt:  res.CreatedAt.Format(time.RFC3339),
	}
}

func timeToStringPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	v, err := uuid.Parse(c.Param(name))
	if err != nil {
		badRequest(c, "invalid "+name)
		return uuid.Nil, false
	}
	return v, true
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func respondErr(c *gin.Context, err error) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	var noTable *booking.NoTableError
	if errors.As(err, &noTable) {
		c.JSON(http.StatusConflict, NoTableResponse{
			Error:             "No available table",
			NextAvailableTime: timeToStringPtr(noTable.NextAvailable),
		})
		return
	}

	var limited *booking.RateLimitedError
	if errors.As(err, &limited) {
		secs := int(limited.RetryAfter.Seconds())
		if secs < 1 {
			secs = 1
		}
		c.Header("Retry-After", strconv.Itoa(secs))
		c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "rate limit exceeded"})
		return
	}

	switch {
	// availability service
	case errors.Is(err, availability.ErrInvalidDate):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid date"})
	case errors.Is(err, availability.ErrInvalidPartySize):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid party size"})
	case errors.Is(err, availability.ErrPartyTooLarge):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "party too large for any table"})
	// booking service
	case errors.Is(err, booking.ErrInvalidWindow):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid reservation window"})
	case errors.Is(err, booking.ErrInvalidPartySize):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid party size"})
	case errors.Is(err, booking.ErrPartyTooLarge):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "party too large for any table"})
	case errors.Is(err, booking.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "reservation not found"})
	// query service
	case errors.Is(err, query.ErrInvalidDate):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid date"})
	case errors.Is(err, query.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "reservation not found"})
	// admin service
	case errors.Is(err, admin.ErrInvalidTable):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid table definition"})
	case errors.Is(err, admin.ErrDuplicateTable):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "table number already exists"})
	case errors.Is(err, admin.ErrInvalidWindow):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid event window"})
	case errors.Is(err, admin.ErrInvalidHours):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid hours definition"})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
