package handlers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kbukum/vibeapi/internal/auth/authctx"
	"github.com/kbukum/vibeapi/internal/auth/token"
	apperrors "github.com/kbukum/vibeapi/internal/errors"
	"github.com/kbukum/vibeapi/internal/server"
	"github.com/kbukum/vibeapi/internal/users"
	"github.com/kbukum/vibeapi/internal/validation"
)

// UsersHandler serves profile endpoints for the authenticated user and the
// admin user-management endpoints.
type UsersHandler struct {
	svc *users.Service
}

// NewUsersHandler creates a UsersHandler.
func NewUsersHandler(svc *users.Service) *UsersHandler {
	return &UsersHandler{svc: svc}
}

// RegisterRoutes mounts the self-service profile endpoints. The group must
// already carry the authentication middleware.
func (h *UsersHandler) RegisterRoutes(rg *gin.RouterGroup) {
	grp := rg.Group("/users")
	grp.GET("/me", h.me)
	grp.PATCH("/me", h.update)
	grp.DELETE("/me", h.delete)
	grp.PUT("/me/password", h.changePassword)
}

// RegisterAdminRoutes mounts the user-management endpoints. The group must
// carry both the authentication middleware and the admin role guard.
func (h *UsersHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	grp := rg.Group("/users")
	grp.GET("", h.list)
	grp.GET("/:id", h.get)
	grp.DELETE("/:id", h.deleteByID)
}

// RegisterModerationRoutes mounts the read-only user listing available to
// moderators as well as admins.
func (h *UsersHandler) RegisterModerationRoutes(rg *gin.RouterGroup) {
	rg.GET("/users", h.list)
}

// callerID extracts the authenticated user's ID from the request context.
func callerID(c *gin.Context) (uuid.UUID, error) {
	claims, err := authctx.GetOrError[*token.Claims](c.Request.Context())
	if err != nil {
		return uuid.Nil, apperrors.NoAuthContext()
	}
	id, err := claims.UserID()
	if err != nil {
		return uuid.Nil, apperrors.InvalidToken()
	}
	return id, nil
}

func (h *UsersHandler) me(c *gin.Context) {
	id, err := callerID(c)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	resp, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, resp)
}

func (h *UsersHandler) update(c *gin.Context) {
	id, err := callerID(c)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	var req users.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.Validation("invalid request body"))
		return
	}
	if err := validation.Validate(req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, resp)
}

func (h *UsersHandler) delete(c *gin.Context) {
	id, err := callerID(c)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondNoContent(c)
}

func (h *UsersHandler) changePassword(c *gin.Context) {
	id, err := callerID(c)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	var req users.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.Validation("invalid request body"))
		return
	}
	if err := validation.Validate(req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	if err := h.svc.ChangePassword(c.Request.Context(), id, req); err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondNoContent(c)
}

func (h *UsersHandler) list(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	records, total, err := h.svc.List(c.Request.Context(), page, perPage)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	meta := &server.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: int64(math.Ceil(float64(total) / float64(perPage))),
	}
	server.RespondOKWithMeta(c, records, meta)
}

func (h *UsersHandler) get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		server.RespondWithError(c, apperrors.Validation("id must be a valid UUID"))
		return
	}

	resp, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, resp)
}

func (h *UsersHandler) deleteByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		server.RespondWithError(c, apperrors.Validation("id must be a valid UUID"))
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondNoContent(c)
}
