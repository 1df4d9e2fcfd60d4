package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/petconnect/marketplace/internal/core/ports"
)

// ProfileHandler handles the two-step profile setup flow and the
// completeness report the dashboards poll.
type ProfileHandler struct {
	profileService ports.ProfileService
}

func NewProfileHandler(profileService ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

type saveProfileRequest struct {
	UserType string `json:"user_type" validate:"required,oneof=pet_owner pet_sitter pet_shelter"`
	Phone    string `json:"phone"     validate:"required"`
	City     string `json:"city"      validate:"required"`
	Address  string `json:"address"`
	Bio      string `json:"bio"`
}

type saveSitterProfileRequest struct {
	HourlyRate      float64  `json:"hourly_rate"      validate:"required,gt=0"`
	ExperienceYears int      `json:"experience_years" validate:"min=0"`
	Services        []string `json:"services"         validate:"required,min=1"`
	AcceptsDogs     bool     `json:"accepts_dogs"`
	AcceptsCats     bool     `json:"accepts_cats"`
}

type saveShelterProfileRequest struct {
	ShelterName    string `json:"shelter_name"    validate:"required"`
	Capacity       int    `json:"capacity"        validate:"required,gt=0"`
	Website        string `json:"website"`
	RegistrationID string `json:"registration_id"`
}

type completionStatusResponse struct {
	ProfileExists     bool   `json:"profile_exists"`
	ProfileComplete   bool   `json:"profile_complete"`
	RoleProfileExists bool   `json:"role_profile_exists"`
	Dashboard         string `json:"dashboard"`
}

// Get returns the caller's base profile.
//
// @Summary      Get own profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Profile
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	profile, err := h.profileService.Get(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// Save upserts the caller's step-1 profile.
//
// @Summary      Save own profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      saveProfileRequest  true  "Profile fields"
// @Success      200   {object}  domain.Profile
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /v1/profile [put]
func (h *ProfileHandler) Save(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req saveProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.profileService.Save(c.Request().Context(), ports.SaveProfileInput{
		UserID:   userID,
		UserType: req.UserType,
		Phone:    req.Phone,
		City:     req.City,
		Address:  req.Address,
		Bio:      req.Bio,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// SaveSitter upserts the caller's sitter step-2 profile. Rejected with 403
// unless the base profile declares the sitter role.
//
// @Summary      Save sitter profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      saveSitterProfileRequest  true  "Sitter profile fields"
// @Success      200   {object}  domain.SitterProfile
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/profile/sitter [put]
func (h *ProfileHandler) SaveSitter(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req saveSitterProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sp, err := h.profileService.SaveSitterProfile(c.Request().Context(), ports.SaveSitterProfileInput{
		UserID:          userID,
		HourlyRate:      req.HourlyRate,
		ExperienceYears: req.ExperienceYears,
		Services:        req.Services,
		AcceptsDogs:     req.AcceptsDogs,
		AcceptsCats:     req.AcceptsCats,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sp)
}

// SaveShelter upserts the caller's shelter step-2 profile.
//
// @Summary      Save shelter profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      saveShelterProfileRequest  true  "Shelter profile fields"
// @Success      200   {object}  domain.ShelterProfile
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/profile/shelter [put]
func (h *ProfileHandler) SaveShelter(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req saveShelterProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sp, err := h.profileService.SaveShelterProfile(c.Request().Context(), ports.SaveShelterProfileInput{
		UserID:         userID,
		ShelterName:    req.ShelterName,
		Capacity:       req.Capacity,
		Website:        req.Website,
		RegistrationID: req.RegistrationID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sp)
}

// Status reports how far through profile setup the caller is.
//
// @Summary      Get profile completion status
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  completionStatusResponse
// @Failure      401  {object}  map[string]string
// @Router       /v1/profile/status [get]
func (h *ProfileHandler) Status(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	status, err := h.profileService.CompletionStatus(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, completionStatusResponse{
		ProfileExists:     status.ProfileExists,
		ProfileComplete:   status.ProfileComplete,
		RoleProfileExists: status.RoleProfileExists,
		Dashboard:         status.Dashboard,
	})
}
