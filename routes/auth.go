// Package routes carries the delegated identity surface: register, login
// and profile. Token issuance follows the backend's HS256 JWT scheme; user
// records live in the same persistence backend as everything else.
package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/adarshh247/ListIT-doIT/middleware"
	"github.com/adarshh247/ListIT-doIT/models"
	"github.com/adarshh247/ListIT-doIT/store"
	"github.com/adarshh247/ListIT-doIT/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Auth struct {
	Persistence store.Persistence
	Log         *zap.Logger
}

type credentials struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=8"`
}

func (a *Auth) findUser(c *gin.Context, username string) (*models.User, error) {
	records, err := a.Persistence.ListAll(c.Request.Context(), store.KindUsers)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if name, _ := rec["username"].(string); name == username {
			u := &models.User{ID: rec.ID(), Username: name}
			u.PasswordHash, _ = rec["password_hash"].(string)
			return u, nil
		}
	}
	return nil, nil
}

func (a *Auth) Register(c *gin.Context) {
	var input credentials
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid data"})
		return
	}
	input.Username = strings.TrimSpace(input.Username)
	if err := middleware.ValidateStruct(input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username of 3+ and password of 8+ characters required"})
		return
	}

	existing, err := a.findUser(c, input.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check user"})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "username already exists"})
		return
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	user := models.User{
		ID:           uuid.NewString(),
		Username:     input.Username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	rec := store.Record{
		"id":            user.ID,
		"username":      user.Username,
		"password_hash": user.PasswordHash,
		"created_at":    user.CreatedAt.Format(time.RFC3339Nano),
	}
	if err := a.Persistence.Insert(c.Request.Context(), store.KindUsers, rec); err != nil {
		a.Log.Error("user_insert_failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Username)
	if err != nil {
		a.Log.Error("token_sign_failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}
	a.Log.Info("user_registered", zap.String("username", user.Username))

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
		},
	})
}

func (a *Auth) Login(c *gin.Context) {
	var input credentials
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid data"})
		return
	}

	user, err := a.findUser(c, strings.TrimSpace(input.Username))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check user"})
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	if !utils.CheckPasswordHash(input.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "incorrect password"})
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Username)
	if err != nil {
		a.Log.Error("token_sign_failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
		},
	})
}

func (a *Auth) Profile(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"id":       c.GetString("user_id"),
		"username": c.GetString("username"),
	})
}
