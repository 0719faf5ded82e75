package handlers

import (
	"net/http"

	"github.com/adarshh247/ListIT-doIT/middleware"
	"github.com/adarshh247/ListIT-doIT/models"
	"github.com/adarshh247/ListIT-doIT/tracker"
	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	Tasks *tracker.TaskStore
}

func (h *TaskHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.Tasks.List())
}

func (h *TaskHandler) Create(c *gin.Context) {
	var input struct {
		Title    string `json:"title"`
		Priority string `json:"priority"`
		Sector   string `json:"sector" validate:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid data"})
		return
	}
	if err := middleware.ValidateStruct(input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sector is required"})
		return
	}

	task := h.Tasks.Add(input.Title, models.Priority(input.Priority), input.Sector)
	if task == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title must not be empty"})
		return
	}

	c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) Update(c *gin.Context) {
	var input struct {
		Title     *string          `json:"title"`
		Sector    *string          `json:"sector"`
		Priority  *models.Priority `json:"priority"`
		Completed *bool            `json:"completed"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid data"})
		return
	}

	patch := tracker.TaskPatch{
		Title:     input.Title,
		Sector:    input.Sector,
		Priority:  input.Priority,
		Completed: input.Completed,
	}
	if !h.Tasks.Update(c.Param("id"), patch) {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "task updated"})
}

func (h *TaskHandler) Toggle(c *gin.Context) {
	if !h.Tasks.ToggleCompleted(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "task toggled"})
}

// Move serves board drags. Same-sector moves only reorder the session's
// list; cross-sector moves persist the new sector.
func (h *TaskHandler) Move(c *gin.Context) {
	var input struct {
		Sector string `json:"sector" validate:"required"`
		Index  int    `json:"index" validate:"gte=0"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid data"})
		return
	}
	if err := middleware.ValidateStruct(input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sector and a non-negative index required"})
		return
	}

	if !h.Tasks.Move(c.Param("id"), input.Sector, input.Index) {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "task moved"})
}

func (h *TaskHandler) Delete(c *gin.Context) {
	if !h.Tasks.Delete(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "task deleted"})
}
