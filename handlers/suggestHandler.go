package handlers

import (
	"net/http"

	"github.com/adarshh247/ListIT-doIT/suggest"
	"github.com/gin-gonic/gin"
)

type SuggestHandler struct {
	Client *suggest.Client
}

// Suggest proposes habit/task titles from free text. Best-effort: when the
// helper is unconfigured or fails, the list is simply empty.
func (h *SuggestHandler) Suggest(c *gin.Context) {
	var input struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid data"})
		return
	}

	titles := h.Client.Titles(c.Request.Context(), input.Text)
	if titles == nil {
		titles = []string{}
	}

	c.JSON(http.StatusOK, gin.H{"titles": titles})
}
