package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/plateful/mealplanner-backend/internal/middleware"
	"github.com/plateful/mealplanner-backend/internal/service"
)

// SessionCookie is the login cookie name; its value is the signed
// session token issued by AuthService.
const SessionCookie = "session_token"

type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) RegisterRoutes(router gin.IRouter) {
	router.POST("/register", h.Register)
	router.POST("/login", h.Login)
	router.GET("/logout", h.Logout)
	router.GET("/check-session", h.CheckSession)
	router.PUT("/update-username", middleware.SessionAuth(SessionCookie, h.auth), h.UpdateUsername)

	router.GET("/users", h.ListUsers)
	router.PUT("/users/:id", h.RenameUser)
	router.DELETE("/users/:id", h.DeleteUser)
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type sessionUser struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

func sessionUserFrom(sess *service.Session) sessionUser {
	return sessionUser{ID: sess.UserID, Username: sess.Username, Email: sess.Email}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, service.Validation("invalid request body: %v", err))
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "id": user.ID})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, service.Validation("invalid request body: %v", err))
		return
	}

	token, sess, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		Error(c, err)
		return
	}

	c.SetCookie(SessionCookie, token, int(service.SessionTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "user": sessionUserFrom(sess)})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(SessionCookie); err == nil {
		if err := h.auth.Logout(c.Request.Context(), token); err != nil {
			Error(c, err)
			return
		}
	}
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// CheckSession reports login state without failing: a missing or invalid
// cookie is simply loggedIn=false.
func (h *AuthHandler) CheckSession(c *gin.Context) {
	token, err := c.Cookie(SessionCookie)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"loggedIn": false})
		return
	}
	sess, err := h.auth.SessionFromToken(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"loggedIn": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"loggedIn": true, "user": sessionUserFrom(sess)})
}

type updateUsernameRequest struct {
	Username string `json:"username" binding:"required"`
}

func (h *AuthHandler) UpdateUsername(c *gin.Context) {
	token := c.GetString(middleware.ContextSessionToken)
	var req updateUsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, service.Validation("invalid request body: %v", err))
		return
	}

	sess, err := h.auth.UpdateUsername(c.Request.Context(), token, req.Username)
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Username updated successfully", "user": sessionUserFrom(sess)})
}

func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.auth.ListUsers(c.Request.Context())
	if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *AuthHandler) RenameUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		Error(c, service.Validation("invalid user id"))
		return
	}
	var req updateUsernameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, service.Validation("invalid request body: %v", err))
		return
	}
	if err := h.auth.RenameUser(c.Request.Context(), id, req.Username); err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully", "id": id})
}

func (h *AuthHandler) DeleteUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		Error(c, service.Validation("invalid user id"))
		return
	}
	if err := h.auth.DeleteUser(c.Request.Context(), id); err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully", "id": id})
}
