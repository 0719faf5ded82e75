package handlers

import (
	"net/http"
	"strings"

	"github.com/adarshh247/ListIT-doIT/tracker"
	"github.com/gin-gonic/gin"
)

type SectorHandler struct {
	Sectors *tracker.SectorStore
}

func (h *SectorHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.Sectors.List())
}

func (h *SectorHandler) Create(c *gin.Context) {
	var input struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid data"})
		return
	}
	if strings.TrimSpace(input.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name must not be empty"})
		return
	}

	sector := h.Sectors.Add(input.Name)
	if sector == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "sector already exists"})
		return
	}

	c.JSON(http.StatusCreated, sector)
}

// Rename also rewrites every referencing task; both happen before the
// response is sent.
func (h *SectorHandler) Rename(c *gin.Context) {
	var input struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid data"})
		return
	}

	if !h.Sectors.Has(c.Param("name")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "sector not found"})
		return
	}
	if !h.Sectors.Rename(c.Param("name"), input.Name) {
		c.JSON(http.StatusConflict, gin.H{"error": "rename rejected"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "sector renamed"})
}

// Delete cascade-deletes the sector's tasks, matching the board semantics.
func (h *SectorHandler) Delete(c *gin.Context) {
	if !h.Sectors.Delete(c.Param("name")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "sector not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "sector deleted"})
}
