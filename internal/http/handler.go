package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"tmhire-backend/internal/engine"
	"tmhire-backend/internal/http/middleware"
	"tmhire-backend/internal/model"
	"tmhire-backend/internal/service"
	"tmhire-backend/internal/timeutil"
)

type Handler struct {
	fleetService    *service.FleetService
	scheduleService *service.ScheduleService
	calendarService *service.CalendarService
	log             zerolog.Logger
}

func NewHandler(
	fleetService *service.FleetService,
	scheduleService *service.ScheduleService,
	calendarService *service.CalendarService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		fleetService:    fleetService,
		scheduleService: scheduleService,
		calendarService: calendarService,
		log:             log,
	}
}

// --- plants ---

func (h *Handler) listPlants(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	plants, err := h.fleetService.ListPlants(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(gin.H{"items": plants}))
}

func (h *Handler) createPlant(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	var req struct {
		Name            string  `json:"name" binding:"required"`
		Location        string  `json:"location"`
		CapacityPerHour float64 `json:"capacity_per_hour"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	plant, err := h.fleetService.CreatePlant(c.Request.Context(), principal, service.CreatePlantInput{
		Name:            req.Name,
		Location:        req.Location,
		CapacityPerHour: req.CapacityPerHour,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, successResponse(plant))
}

func (h *Handler) getPlant(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid plant id"))
		return
	}

	plant, err := h.fleetService.GetPlant(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(plant))
}

func (h *Handler) deletePlant(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid plant id"))
		return
	}

	if err := h.fleetService.DeletePlant(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(gin.H{"deleted": true}))
}

// --- transit mixers ---

func (h *Handler) listTMs(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	tms, err := h.fleetService.ListTMs(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(gin.H{"items": tms}))
}

func (h *Handler) averageCapacity(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	avg, err := h.fleetService.AverageCapacity(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(gin.H{"average_capacity": avg}))
}

type tmPayload struct {
	Identifier string  `json:"identifier"`
	Capacity   float64 `json:"capacity"`
	PlantID    string  `json:"plant_id"`
	Status     string  `json:"status"`
}

func (p tmPayload) toInput() (service.TMInput, error) {
	input := service.TMInput{
		Identifier: p.Identifier,
		Capacity:   p.Capacity,
		Status:     model.FleetStatus(strings.ToLower(strings.TrimSpace(p.Status))),
	}
	if strings.TrimSpace(p.PlantID) != "" {
		id, err := uuid.Parse(strings.TrimSpace(p.PlantID))
		if err != nil {
			return input, err
		}
		input.PlantID = &id
	}
	return input, nil
}

func (h *Handler) getTM(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid tm id"))
		return
	}

	tm, err := h.fleetService.GetTM(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(tm))
}

func (h *Handler) createTM(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	var req tmPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}
	input, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid plant_id"))
		return
	}

	tm, err := h.fleetService.CreateTM(c.Request.Context(), principal, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, successResponse(tm))
}

func (h *Handler) updateTM(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid tm id"))
		return
	}

	var req tmPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}
	input, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid plant_id"))
		return
	}

	tm, err := h.fleetService.UpdateTM(c.Request.Context(), principal, id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(tm))
}

func (h *Handler) deleteTM(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid tm id"))
		return
	}

	if err := h.fleetService.DeleteTM(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(gin.H{"deleted": true}))
}

// --- pumps ---

func (h *Handler) listPumps(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	pumps, err := h.fleetService.ListPumps(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(gin.H{"items": pumps}))
}

type pumpPayload struct {
	Identifier string  `json:"identifier"`
	Capacity   float64 `json:"capacity"`
	Type       string  `json:"type"`
	PlantID    string  `json:"plant_id"`
	Status     string  `json:"status"`
}

func (p pumpPayload) toInput() (service.PumpInput, error) {
	input := service.PumpInput{
		Identifier: p.Identifier,
		Capacity:   p.Capacity,
		Type:       model.PumpType(strings.ToLower(strings.TrimSpace(p.Type))),
		Status:     model.FleetStatus(strings.ToLower(strings.TrimSpace(p.Status))),
	}
	if strings.TrimSpace(p.PlantID) != "" {
		id, err := uuid.Parse(strings.TrimSpace(p.PlantID))
		if err != nil {
			return input, err
		}
		input.PlantID = &id
	}
	return input, nil
}

func (h *Handler) getPump(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid pump id"))
		return
	}

	pump, err := h.fleetService.GetPump(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(pump))
}

func (h *Handler) createPump(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	var req pumpPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}
	input, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid plant_id"))
		return
	}

	pump, err := h.fleetService.CreatePump(c.Request.Context(), principal, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, successResponse(pump))
}

func (h *Handler) updatePump(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid pump id"))
		return
	}

	var req pumpPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}
	input, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid plant_id"))
		return
	}

	pump, err := h.fleetService.UpdatePump(c.Request.Context(), principal, id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(pump))
}

func (h *Handler) deletePump(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid pump id"))
		return
	}

	if err := h.fleetService.DeletePump(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(gin.H{"deleted": true}))
}

// --- schedules ---

type inputParamsPayload struct {
	Quantity        float64 `json:"quantity" binding:"required"`
	PumpingSpeed    float64 `json:"pumping_speed" binding:"required"`
	OnwardTime      int     `json:"onward_time" binding:"required"`
	ReturnTime      int     `json:"return_time" binding:"required"`
	BufferTime      int     `json:"buffer_time"`
	LoadTime        int     `json:"load_time"`
	UnloadingTime   int     `json:"unloading_time"`
	PumpOnwardTime  int     `json:"pump_onward_time"`
	PumpFixingTime  int     `json:"pump_fixing_time"`
	PumpRemovalTime int     `json:"pump_removal_time"`
	PumpStart       string  `json:"pump_start" binding:"required"`
	ScheduleDate    string  `json:"schedule_date" binding:"required"`
}

// toModel is the single point where order timestamps enter the system; past
// here everything is a normalized time.Time.
func (p inputParamsPayload) toModel() (model.InputParams, error) {
	pumpStart, err := timeutil.Parse(p.PumpStart)
	if err != nil {
		return model.InputParams{}, engine.ErrMalformedTimestamp
	}
	scheduleDate, err := timeutil.ParseDate(p.ScheduleDate)
	if err != nil {
		return model.InputParams{}, engine.ErrMalformedTimestamp
	}
	return model.InputParams{
		Quantity:        p.Quantity,
		PumpingSpeed:    p.PumpingSpeed,
		OnwardTime:      p.OnwardTime,
		ReturnTime:      p.ReturnTime,
		BufferTime:      p.BufferTime,
		LoadTime:        p.LoadTime,
		UnloadingTime:   p.UnloadingTime,
		PumpOnwardTime:  p.PumpOnwardTime,
		PumpFixingTime:  p.PumpFixingTime,
		PumpRemovalTime: p.PumpRemovalTime,
		PumpStart:       pumpStart,
		ScheduleDate:    scheduleDate,
	}, nil
}

func (h *Handler) listSchedules(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	schedules, err := h.scheduleService.List(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(gin.H{"items": schedules}))
}

func (h *Handler) getSchedule(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid schedule id"))
		return
	}

	schedule, err := h.scheduleService.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(schedule))
}

func (h *Handler) calculateTM(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	var req struct {
		ScheduleNo  string             `json:"schedule_no"`
		ClientName  string             `json:"client_name"`
		ProjectName string             `json:"project_name"`
		SiteAddress string             `json:"site_address"`
		PlantID     string             `json:"plant_id"`
		Type        string             `json:"type"`
		InputParams inputParamsPayload `json:"input_params" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	params, err := req.InputParams.toModel()
	if err != nil {
		h.handleError(c, err)
		return
	}

	input := service.CreateScheduleInput{
		ScheduleNo:  req.ScheduleNo,
		ClientName:  req.ClientName,
		ProjectName: req.ProjectName,
		SiteAddress: req.SiteAddress,
		Type:        model.ScheduleType(strings.ToLower(strings.TrimSpace(req.Type))),
		InputParams: params,
	}
	if strings.TrimSpace(req.PlantID) != "" {
		plantID, err := uuid.Parse(strings.TrimSpace(req.PlantID))
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("invalid plant_id"))
			return
		}
		input.PlantID = &plantID
	}

	result, err := h.scheduleService.CalculateTM(c.Request.Context(), principal, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, successResponse(result))
}

func (h *Handler) updateSchedule(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid schedule id"))
		return
	}

	var req struct {
		ScheduleNo  *string             `json:"schedule_no"`
		ClientName  *string             `json:"client_name"`
		ProjectName *string             `json:"project_name"`
		SiteAddress *string             `json:"site_address"`
		InputParams *inputParamsPayload `json:"input_params"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	input := service.UpdateScheduleInput{
		ScheduleNo:  req.ScheduleNo,
		ClientName:  req.ClientName,
		ProjectName: req.ProjectName,
		SiteAddress: req.SiteAddress,
	}
	if req.InputParams != nil {
		params, err := req.InputParams.toModel()
		if err != nil {
			h.handleError(c, err)
			return
		}
		input.InputParams = &params
	}

	schedule, err := h.scheduleService.Update(c.Request.Context(), principal, id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(schedule))
}

func (h *Handler) deleteSchedule(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid schedule id"))
		return
	}

	if err := h.scheduleService.Delete(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(gin.H{"deleted": true, "schedule_id": id}))
}

func (h *Handler) generateSchedule(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid schedule id"))
		return
	}

	var req struct {
		SelectedTMs []string `json:"selected_tms" binding:"required"`
		Pump        string   `json:"pump"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	tmIDs := make([]uuid.UUID, 0, len(req.SelectedTMs))
	for _, raw := range req.SelectedTMs {
		tmID, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("invalid tm id in selected_tms"))
			return
		}
		tmIDs = append(tmIDs, tmID)
	}

	var pumpID *uuid.UUID
	if strings.TrimSpace(req.Pump) != "" {
		parsed, err := uuid.Parse(strings.TrimSpace(req.Pump))
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("invalid pump id"))
			return
		}
		pumpID = &parsed
	}

	schedule, err := h.scheduleService.Generate(c.Request.Context(), principal, id, tmIDs, pumpID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(schedule))
}

// --- calendar ---

func (h *Handler) calendarRange(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	var req struct {
		StartDate string `json:"start_date" binding:"required"`
		EndDate   string `json:"end_date" binding:"required"`
		PlantID   string `json:"plant_id"`
		TMID      string `json:"tm_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	start, err := timeutil.ParseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid start_date"))
		return
	}
	end, err := timeutil.ParseDate(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid end_date"))
		return
	}
	if end.Before(start) {
		c.JSON(http.StatusBadRequest, errorResponse("end_date before start_date"))
		return
	}

	query := service.CalendarQuery{StartDate: start, EndDate: end}
	if strings.TrimSpace(req.PlantID) != "" {
		plantID, err := uuid.Parse(strings.TrimSpace(req.PlantID))
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("invalid plant_id"))
			return
		}
		query.PlantID = &plantID
	}
	if strings.TrimSpace(req.TMID) != "" {
		tmID, err := uuid.Parse(strings.TrimSpace(req.TMID))
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("invalid tm_id"))
			return
		}
		query.TMID = &tmID
	}

	days, err := h.calendarService.Range(c.Request.Context(), principal, query)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(gin.H{"days": days}))
}

func (h *Handler) checkAvailability(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	day, err := timeutil.ParseDate(strings.TrimSpace(c.Query("date")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid date"))
		return
	}

	tmParam := strings.TrimSpace(c.Query("tm_ids"))
	if tmParam == "" {
		c.JSON(http.StatusBadRequest, errorResponse("tm_ids is required"))
		return
	}
	tmIDs := make([]uuid.UUID, 0)
	for _, raw := range strings.Split(tmParam, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		tmID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("invalid tm id in tm_ids"))
			return
		}
		tmIDs = append(tmIDs, tmID)
	}

	result, err := h.calendarService.CheckAvailability(c.Request.Context(), principal, day, tmIDs)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(result))
}

func (h *Handler) tmAvailability(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	tmID, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid tm id"))
		return
	}
	day, err := timeutil.ParseDate(strings.TrimSpace(c.Query("date")))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid date"))
		return
	}

	slots, err := h.calendarService.TMAvailability(c.Request.Context(), principal, day, tmID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(gin.H{"slots": slots}))
}

func (h *Handler) gantt(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	var req struct {
		QueryDate string `json:"query_date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}
	day, err := timeutil.ParseDate(req.QueryDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid query_date"))
		return
	}

	result, err := h.calendarService.Gantt(c.Request.Context(), principal, day)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(result))
}

func (h *Handler) plantGantt(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("principal missing"))
		return
	}

	var req struct {
		QueryDate string `json:"query_date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}
	day, err := timeutil.ParseDate(req.QueryDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse("invalid query_date"))
		return
	}

	result, err := h.calendarService.Gantt(c.Request.Context(), principal, day)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, successResponse(gin.H{"plants": result.Plants}))
}

// --- shared helpers ---

func (h *Handler) handleError(c *gin.Context, err error) {
	var unavailable *engine.VehicleUnavailableError
	switch {
	case errors.As(err, &unavailable):
		c.JSON(http.StatusConflict, gin.H{
			"error":       "selected vehicles are unavailable",
			"unavailable": unavailable.Identifiers,
		})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse("not found"))
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse("invalid input"))
	case errors.Is(err, service.ErrInvalidStatus):
		c.JSON(http.StatusConflict, errorResponse("invalid status transition"))
	case errors.Is(err, engine.ErrMalformedTimestamp):
		c.JSON(http.StatusBadRequest, errorResponse("malformed timestamp"))
	case errors.Is(err, engine.ErrInvalidFleet),
		errors.Is(err, engine.ErrMissingPump),
		errors.Is(err, engine.ErrNoSuitableVehicle):
		c.JSON(http.StatusUnprocessableEntity, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Msg("internal error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimSpace(c.Param(name)))
}

type responseEnvelope struct {
	Data interface{} `json:"data"`
}

func successResponse(data interface{}) responseEnvelope {
	return responseEnvelope{Data: data}
}

func errorResponse(msg string) gin.H {
	return gin.H{"error": msg}
}
