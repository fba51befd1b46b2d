package security

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"shortboard/internal/rate_limiter"
	"shortboard/pkg/models"

	"github.com/gin-gonic/gin"
)

// UserFinder is the lookup the login endpoint needs; the users repository
// satisfies it.
type UserFinder interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
}

type LoginHandler struct {
	users       UserFinder
	rateLimiter *rate_limiter.RateLimiter
}

func NewLoginHandler(users UserFinder) *LoginHandler {
	return &LoginHandler{
		users:       users,
		rateLimiter: rate_limiter.NewRateLimiter(10, 5*time.Minute),
	}
}

func (l *LoginHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/auth", l.Login)
}

// Login resolves the username to an account and issues a token. There is no
// credential to verify: the dashboard trusts its network, accounts exist
// only to select a role.
func (l *LoginHandler) Login(c *gin.Context) {
	clientIP := l.clientKey(c)
	if !l.rateLimiter.IsAllowed(clientIP) {
		remaining := l.rateLimiter.GetRemainingRequests(clientIP)
		c.Header("X-RateLimit-Limit", "10")
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":     "Too many login attempts, try again later",
			"remaining": remaining,
		})
		return
	}

	var req struct {
		Username string `json:"username" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return
	}

	user, err := l.users.FindByUsername(c.Request.Context(), req.Username)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown username"})
		return
	}

	token, err := GenerateJWT(user.Username, string(user.Role))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

func (l *LoginHandler) clientKey(c *gin.Context) string {
	clientIP := c.GetHeader("X-Forwarded-For")
	if clientIP == "" {
		clientIP = c.GetHeader("X-Real-IP")
	}
	if clientIP == "" {
		clientIP = c.ClientIP()
	}
	if strings.Contains(clientIP, ",") {
		clientIP = strings.Split(clientIP, ",")[0]
	}
	return clientIP
}
