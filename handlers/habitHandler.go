package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/adarshh247/ListIT-doIT/cache"
	"github.com/adarshh247/ListIT-doIT/period"
	"github.com/adarshh247/ListIT-doIT/tracker"
	"github.com/gin-gonic/gin"
)

const streakCacheTTL = time.Minute

type HabitHandler struct {
	Habits *tracker.HabitStore
}

func cadenceParam(c *gin.Context) (period.Cadence, bool) {
	cadence := period.Cadence(c.DefaultQuery("cadence", string(period.Daily)))
	if !period.Valid(cadence) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown cadence"})
		return "", false
	}
	return cadence, true
}

// parsePoint accepts a day (2026-08-27) or month (2026-08) date string,
// defaulting to now when empty.
func parsePoint(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Now().UTC(), true
	}
	for _, layout := range []string{"2006-01-02", "2006-01"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func streakCacheKey(id string) string {
	return "streak:" + id
}

func (h *HabitHandler) List(c *gin.Context) {
	cadence, ok := cadenceParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.Habits.List(cadence))
}

func (h *HabitHandler) Create(c *gin.Context) {
	var input struct {
		Title   string `json:"title"`
		Cadence string `json:"cadence"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid data"})
		return
	}

	cadence := period.Cadence(input.Cadence)
	if input.Cadence == "" {
		cadence = period.Daily
	}
	if !period.Valid(cadence) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown cadence"})
		return
	}

	habit := h.Habits.Add(input.Title, cadence)
	if habit == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title must not be empty"})
		return
	}

	c.JSON(http.StatusCreated, habit)
}

func (h *HabitHandler) Toggle(c *gin.Context) {
	var input struct {
		Date    string `json:"date"`
		Cadence string `json:"cadence"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid data"})
		return
	}

	cadence := period.Cadence(input.Cadence)
	if input.Cadence == "" {
		cadence = period.Daily
	}
	if !period.Valid(cadence) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown cadence"})
		return
	}

	point, ok := parsePoint(input.Date)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}

	id := c.Param("id")
	if !h.Habits.Toggle(id, point, cadence) {
		c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
		return
	}
	cache.Delete(streakCacheKey(id))

	habit, _ := h.Habits.Get(id, cadence)
	c.JSON(http.StatusOK, habit)
}

func (h *HabitHandler) Delete(c *gin.Context) {
	cadence, ok := cadenceParam(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if !h.Habits.Delete(id, cadence) {
		c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
		return
	}
	cache.Delete(streakCacheKey(id))

	c.JSON(http.StatusOK, gin.H{"message": "habit deleted"})
}

func (h *HabitHandler) Streak(c *gin.Context) {
	cadence, ok := cadenceParam(c)
	if !ok {
		return
	}

	id := c.Param("id")
	var cached int
	if err := cache.Get(streakCacheKey(id), &cached); err == nil {
		c.JSON(http.StatusOK, gin.H{"habit_id": id, "streak": cached})
		return
	}

	habit, found := h.Habits.Get(id, cadence)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
		return
	}

	streak := tracker.Streak(habit, time.Now().UTC())
	cache.Set(streakCacheKey(id), streak, streakCacheTTL)

	c.JSON(http.StatusOK, gin.H{"habit_id": id, "streak": streak})
}

// Progress returns the grid's per-column completion percentages for the
// most recent N periods. Recomputed on every call; the habit count is small.
func (h *HabitHandler) Progress(c *gin.Context) {
	cadence, ok := cadenceParam(c)
	if !ok {
		return
	}

	n, err := strconv.Atoi(c.DefaultQuery("columns", "7"))
	if err != nil || n <= 0 || n > 366 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid columns"})
		return
	}

	columns := tracker.Columns(time.Now().UTC(), cadence, n)
	fractions := tracker.ProgressFractions(h.Habits.List(cadence), columns)

	keys := make([]string, len(columns))
	for i, col := range columns {
		keys[i] = period.Key(col, cadence)
	}

	c.JSON(http.StatusOK, gin.H{"columns": keys, "fractions": fractions})
}
