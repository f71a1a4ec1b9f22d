package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lumi-diary/lumi/backend/internal/service"
	"github.com/lumi-diary/lumi/backend/internal/types"
)

// GoalHandler serves goals and joys; both are short user-owned texts.
type GoalHandler struct {
	goalService service.IGoalService
	joyService  service.IJoyService
}

func NewGoalHandler(goalService service.IGoalService, joyService service.IJoyService) *GoalHandler {
	return &GoalHandler{goalService: goalService, joyService: joyService}
}

func (h *GoalHandler) RegisterRoutes(router *gin.RouterGroup) {
	goals := router.Group("/goals")
	{
		goals.GET("", h.ListGoals)
		goals.POST("", h.CreateGoal)
		goals.POST("/:id/toggle", h.ToggleGoal)
		goals.DELETE("/:id", h.DeleteGoal)
	}

	joys := router.Group("/joys")
	{
		joys.GET("", h.ListJoys)
		joys.POST("", h.CreateJoy)
		joys.DELETE("/:id", h.DeleteJoy)
	}
}

func (h *GoalHandler) ListGoals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	goals, err := h.goalService.ListGoals(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to list goals")
		return
	}
	c.JSON(http.StatusOK, goals)
}

func (h *GoalHandler) CreateGoal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req types.TextRequest
	if !bindJSON(c, &req) {
		return
	}

	goal, err := h.goalService.CreateGoal(c.Request.Context(), userID, req.Text)
	if err != nil {
		respondError(c, err, "failed to create goal")
		return
	}
	c.JSON(http.StatusCreated, goal)
}

func (h *GoalHandler) ToggleGoal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	n, err := h.goalService.ToggleGoal(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err, "failed to toggle goal")
		return
	}
	affected(c, n)
}

func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	n, err := h.goalService.DeleteGoal(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err, "failed to delete goal")
		return
	}
	affected(c, n)
}

func (h *GoalHandler) ListJoys(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	joys, err := h.joyService.ListJoys(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to list joys")
		return
	}
	c.JSON(http.StatusOK, joys)
}

func (h *GoalHandler) CreateJoy(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req types.TextRequest
	if !bindJSON(c, &req) {
		return
	}

	joy, err := h.joyService.CreateJoy(c.Request.Context(), userID, req.Text)
	if err != nil {
		respondError(c, err, "failed to create joy")
		return
	}
	c.JSON(http.StatusCreated, joy)
}

func (h *GoalHandler) DeleteJoy(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	n, err := h.joyService.DeleteJoy(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err, "failed to delete joy")
		return
	}
	affected(c, n)
}
