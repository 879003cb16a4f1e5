package controllers

import (
	"net/http"
	"time"

	"citysense-be/config"
	"citysense-be/middlewares"
	"citysense-be/models"
	"citysense-be/store"
	authUtils "citysense-be/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthController serves registration, login and the current user.
type AuthController struct {
	users  *store.UserStore
	cfg    *config.Config
	logger *zap.Logger
}

func NewAuthController(users *store.UserStore, cfg *config.Config, logger *zap.Logger) *AuthController {
	return &AuthController{users: users, cfg: cfg, logger: logger}
}

// RegisterUser handles user registration
func (ac *AuthController) RegisterUser(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"max=50"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	user, err := ac.users.Register(store.Registration{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Password: input.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	ac.logger.Info("user registered", zap.String("user_id", user.ID.Hex()))
	ac.issueToken(c, http.StatusCreated, &user)
}

// LoginUser handles user login
func (ac *AuthController) LoginUser(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}

	user, err := ac.users.Authenticate(input.Email, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	ac.issueToken(c, http.StatusOK, &user)
}

// GetMe retrieves the authenticated user's information
func (ac *AuthController) GetMe(c *gin.Context) {
	current := middlewares.CurrentUser(c)
	if current == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "User not authenticated"})
		return
	}

	user, err := ac.users.FindByID(current.ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": userResponse(&user)})
}

// LogoutUser clears the auth_token cookie. Bearer tokens simply expire.
func (ac *AuthController) LogoutUser(c *gin.Context) {
	c.SetCookie("auth_token", "", -1, "/", "", ac.cfg.Production(), true)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out successfully",
	})
}

func (ac *AuthController) issueToken(c *gin.Context, status int, user *models.User) {
	token, err := authUtils.GenerateAndSetToken(user, ac.cfg.JWTSecret, ac.cfg.TokenTTL)
	if err != nil {
		ac.logger.Error("error generating token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Something went wrong"})
		return
	}

	cookie := &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		MaxAge:   int(ac.cfg.TokenTTL / time.Second),
		Path:     "/",
		Secure:   ac.cfg.Production(),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	http.SetCookie(c.Writer, cookie)

	c.JSON(status, gin.H{
		"success": true,
		"token":   token,
		"user":    userResponse(user),
	})
}

func userResponse(u *models.User) gin.H {
	return gin.H{
		"id":        u.ID,
		"name":      u.Name,
		"email":     u.Email,
		"role":      u.Role,
		"createdAt": u.CreatedAt,
	}
}
