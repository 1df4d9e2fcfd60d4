package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/petconnect/marketplace/internal/api/metrics"
	"github.com/petconnect/marketplace/internal/core/domain"
	"github.com/petconnect/marketplace/internal/core/ports"
)

// CareRequestHandler handles owner bookings and provider responses.
type CareRequestHandler struct {
	care ports.CareRequestService
}

func NewCareRequestHandler(care ports.CareRequestService) *CareRequestHandler {
	return &CareRequestHandler{care: care}
}

type createCareRequestRequest struct {
	ProviderID   string    `json:"provider_id"   validate:"required"`
	ProviderType string    `json:"provider_type" validate:"required,oneof=pet_sitter pet_shelter"`
	PetName      string    `json:"pet_name"      validate:"required"`
	PetType      string    `json:"pet_type"`
	StartDate    time.Time `json:"start_date"    validate:"required"`
	EndDate      time.Time `json:"end_date"      validate:"required"`
	Notes        string    `json:"notes"`
}

type careTransitionRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted declined completed cancelled"`
	Notes  string `json:"notes"`
}

type listCareRequestsResponse struct {
	Data       []*domain.CareRequest `json:"data"`
	Pagination paginationResponse    `json:"pagination"`
}

// Create books a sitter or shelter for the authenticated owner.
//
// @Summary      Create a care request
// @Tags         care
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCareRequestRequest  true  "Booking details"
// @Success      201   {object}  domain.CareRequest
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/care-requests [post]
func (h *CareRequestHandler) Create(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createCareRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	cr, err := h.care.Create(c.Request().Context(), ports.CreateCareRequestInput{
		OwnerID:      userID,
		ProviderID:   req.ProviderID,
		ProviderType: req.ProviderType,
		PetName:      req.PetName,
		PetType:      req.PetType,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Notes:        req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, cr)
}

// Get returns one care request, visible to its owner or provider only.
//
// @Summary      Get a care request
// @Tags         care
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Care request id"
// @Success      200  {object}  domain.CareRequest
// @Failure      404  {object}  map[string]string
// @Router       /v1/care-requests/{id} [get]
func (h *CareRequestHandler) Get(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	cr, err := h.care.Get(c.Request().Context(), c.Param("id"), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cr)
}

// List returns the caller's care requests: sent bookings for owners,
// received bookings for sitters and shelters.
//
// @Summary      List own care requests
// @Tags         care
// @Produce      json
// @Security     BearerAuth
// @Param        status  query     string  false  "Status filter"
// @Param        page    query     int     false  "Page number (1-based)"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  listCareRequestsResponse
// @Router       /v1/care-requests [get]
func (h *CareRequestHandler) List(c echo.Context) error {
	userID, userType, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	filter := ports.CareRequestFilter{Status: c.QueryParam("status")}
	if userType == domain.UserTypePetSitter || userType == domain.UserTypePetShelter {
		filter.ProviderID = userID
	} else {
		filter.OwnerID = userID
	}
	filter.Page, _ = strconv.Atoi(c.QueryParam("page"))
	filter.Limit, _ = strconv.Atoi(c.QueryParam("limit"))

	result, err := h.care.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listCareRequestsResponse{
		Data: result.Items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// Transition applies a status change: providers accept, decline, or complete;
// owners cancel. The role checks live in the service.
//
// @Summary      Transition a care request
// @Tags         care
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Care request id"
// @Param        body  body      careTransitionRequest  true  "Target status"
// @Success      200   {object}  domain.CareRequest
// @Failure      403   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/care-requests/{id}/status [post]
func (h *CareRequestHandler) Transition(c echo.Context) error {
	userID, userType, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req careTransitionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	cr, err := h.care.Transition(c.Request().Context(), ports.CareTransitionInput{
		RequestID: c.Param("id"),
		ActorID:   userID,
		ActorRole: userType,
		Status:    domain.CareRequestStatus(req.Status),
		Notes:     req.Notes,
	})
	if err != nil {
		return err
	}
	metrics.CareRequestTransitionsTotal.WithLabelValues(string(cr.Status)).Inc()

	return c.JSON(http.StatusOK, cr)
}
