package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/finops_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/finops_backoffice/internal/core/ports/services"
	"github.com/SscSPs/finops_backoffice/internal/dto"
	"github.com/SscSPs/finops_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// settingsHandler serves users, access rules, role defaults and display preferences.
type settingsHandler struct {
	accessService portssvc.AccessSvcFacade
}

func newSettingsHandler(as portssvc.AccessSvcFacade) *settingsHandler {
	return &settingsHandler{accessService: as}
}

// registerSettingsRoutes registers the settings routes. Writes are authorized in the service.
func registerSettingsRoutes(rg *gin.RouterGroup, accessService portssvc.AccessSvcFacade) {
	h := newSettingsHandler(accessService)

	settings := rg.Group("/settings")
	{
		settings.GET("/users", h.listUsers)
		settings.GET("/users/:user_id/permissions", h.getPermissions)
		settings.GET("/users/:user_id/access", h.getAccessRules)
		settings.PUT("/users/:user_id/access", h.updateAccessRules)
		settings.GET("/users/:user_id/preferences", h.getPreferences)
		settings.PUT("/users/:user_id/preferences", h.updatePreference)
		settings.GET("/roles", h.listRoleDefaults)
		settings.GET("/roles/:role", h.getRoleDefaults)
		settings.PUT("/roles/:role", h.updateRoleDefaults)
	}
}

// listUsers godoc
// @Summary List users
// @Tags settings
// @Produce json
// @Success 200 {array} dto.UserResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /settings/users [get]
func (h *settingsHandler) listUsers(c *gin.Context) {
	users, err := h.accessService.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list users")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponses(users))
}

// getPermissions godoc
// @Summary Get a user's effective permissions
// @Tags settings
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} dto.PermissionsResponse
// @Failure 404 {object} ErrorResponse "Unknown user"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /settings/users/{user_id}/permissions [get]
func (h *settingsHandler) getPermissions(c *gin.Context) {
	userID := c.Param("user_id")
	perms, err := h.accessService.EffectivePermissions(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to resolve permissions")
		return
	}
	c.JSON(http.StatusOK, dto.PermissionsResponse{UserID: userID, Permissions: perms})
}

// getAccessRules godoc
// @Summary Get a user's access rules
// @Tags settings
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} dto.AccessRulesResponse
// @Failure 404 {object} ErrorResponse "Unknown user"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /settings/users/{user_id}/access [get]
func (h *settingsHandler) getAccessRules(c *gin.Context) {
	rules, err := h.accessService.GetAccessRules(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		respondError(c, err, "Failed to load access rules")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccessRulesResponse(rules))
}

// updateAccessRules godoc
// @Summary Replace a user's access rules
// @Description Requires manage_permissions. Overrides are kept but ignored while useDefaults is true.
// @Tags settings
// @Accept json
// @Produce json
// @Param user_id path string true "User ID"
// @Param rules body dto.UpdateAccessRulesRequest true "Access rules"
// @Success 200 {object} dto.AccessRulesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /settings/users/{user_id}/access [put]
func (h *settingsHandler) updateAccessRules(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateAccessRulesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	overrides, err := dto.ParsePermissionMap(req.Overrides)
	if err != nil {
		respondError(c, err, "Invalid overrides")
		return
	}

	targetID := c.Param("user_id")
	rules, err := h.accessService.UpdateAccessRules(c.Request.Context(), actorID, targetID, *req.UseDefaults, overrides)
	if err != nil {
		respondError(c, err, "Failed to update access rules")
		return
	}
	logger.Info("Access rules updated", slog.String("target_user_id", targetID), slog.Bool("use_defaults", rules.UseDefaults))
	c.JSON(http.StatusOK, dto.ToAccessRulesResponse(rules))
}

// getPreferences godoc
// @Summary Get a user's display preferences
// @Description Each preference is shown, hidden or locked (permission not held)
// @Tags settings
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} dto.PreferencesResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /settings/users/{user_id}/preferences [get]
func (h *settingsHandler) getPreferences(c *gin.Context) {
	userID := c.Param("user_id")
	prefs, err := h.accessService.Preferences(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to load preferences")
		return
	}
	c.JSON(http.StatusOK, dto.PreferencesResponse{UserID: userID, Preferences: prefs})
}

// updatePreference godoc
// @Summary Store a display preference
// @Description Users may edit their own preferences; editing another user's needs manage_permissions
// @Tags settings
// @Accept json
// @Produce json
// @Param user_id path string true "User ID"
// @Param preference body dto.UpdatePreferenceRequest true "Preference"
// @Success 200 {object} dto.PreferencesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Not allowed or preference locked"
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /settings/users/{user_id}/preferences [put]
func (h *settingsHandler) updatePreference(c *gin.Context) {
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.UpdatePreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	pref, err := domain.ParsePreference(req.Preference)
	if err != nil {
		respondError(c, err, "Invalid preference")
		return
	}

	targetID := c.Param("user_id")
	prefs, err := h.accessService.UpdatePreference(c.Request.Context(), actorID, targetID, pref, *req.Shown)
	if err != nil {
		respondError(c, err, "Failed to update preference")
		return
	}
	c.JSON(http.StatusOK, dto.PreferencesResponse{UserID: targetID, Preferences: prefs})
}

// listRoleDefaults godoc
// @Summary List role defaults
// @Tags settings
// @Produce json
// @Success 200 {array} dto.RoleDefaultsResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /settings/roles [get]
func (h *settingsHandler) listRoleDefaults(c *gin.Context) {
	defaults, err := h.accessService.RoleDefaults(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load role defaults")
		return
	}
	res := make([]dto.RoleDefaultsResponse, 0, len(domain.Roles))
	for _, role := range domain.Roles {
		res = append(res, dto.RoleDefaultsResponse{Role: role, Permissions: defaults[role]})
	}
	c.JSON(http.StatusOK, res)
}

// getRoleDefaults godoc
// @Summary Get one role's defaults
// @Tags settings
// @Produce json
// @Param role path string true "Role" Enums(admin, finance, collections, ops, readonly)
// @Success 200 {object} dto.RoleDefaultsResponse
// @Failure 400 {object} ErrorResponse "Unknown role"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /settings/roles/{role} [get]
func (h *settingsHandler) getRoleDefaults(c *gin.Context) {
	role, err := domain.ParseRole(c.Param("role"))
	if err != nil {
		respondError(c, err, "Invalid role")
		return
	}
	defaults, err := h.accessService.RoleDefaults(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load role defaults")
		return
	}
	c.JSON(http.StatusOK, dto.RoleDefaultsResponse{Role: role, Permissions: defaults[role]})
}

// updateRoleDefaults godoc
// @Summary Update one role's defaults
// @Description Requires manage_permissions. Permissions not named in the body keep their value.
// @Tags settings
// @Accept json
// @Produce json
// @Param role path string true "Role"
// @Param permissions body dto.UpdateRoleDefaultsRequest true "Permissions to change"
// @Success 200 {object} dto.RoleDefaultsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /settings/roles/{role} [put]
func (h *settingsHandler) updateRoleDefaults(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actorID, ok := currentUserID(c)
	if !ok {
		return
	}
	role, err := domain.ParseRole(c.Param("role"))
	if err != nil {
		respondError(c, err, "Invalid role")
		return
	}
	var req dto.UpdateRoleDefaultsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	perms, err := dto.ParsePermissionMap(req.Permissions)
	if err != nil {
		respondError(c, err, "Invalid permissions")
		return
	}

	updated, err := h.accessService.UpdateRoleDefaults(c.Request.Context(), actorID, role, perms)
	if err != nil {
		respondError(c, err, "Failed to update role defaults")
		return
	}
	logger.Info("Role defaults updated", slog.String("role", string(role)))
	c.JSON(http.StatusOK, dto.RoleDefaultsResponse{Role: role, Permissions: updated})
}
