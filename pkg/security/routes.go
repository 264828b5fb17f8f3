package security

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"assethub/internal/rate_limiter"
	"assethub/internal/repository"
	"assethub/pkg/api"

	"github.com/gin-gonic/gin"
)

type LoginHandler struct {
	repo        *repository.Repository
	rateLimiter *rate_limiter.RateLimiter
}

func NewLoginHandler(r *repository.Repository) *LoginHandler {
	return &LoginHandler{
		repo:        r,
		rateLimiter: rate_limiter.NewRateLimiter(10, 5*time.Minute), // 10 attempts per 5 minutes
	}
}

func (l *LoginHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/auth/login", l.LoginHandler())
}

func (l *LoginHandler) LoginHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientKey := clientIdentifier(c)

		if !l.rateLimiter.IsAllowed(clientKey) {
			remaining := l.rateLimiter.GetRemainingRequests(clientKey)
			c.Header("X-RateLimit-Limit", "10")
			c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
			c.Header("X-RateLimit-Reset", time.Now().Add(5*time.Minute).Format(time.RFC3339))
			api.Error(c, http.StatusTooManyRequests, "Too many login attempts, try again later")
			return
		}

		var req struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required"`
		}

		if err := c.ShouldBindJSON(&req); err != nil {
			api.Error(c, http.StatusBadRequest, "Invalid request payload")
			return
		}

		user, err := AuthenticateUser(req.Email, req.Password, l.repo)
		if err != nil {
			api.Error(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}

		token, err := GenerateJWT(user)
		if err != nil {
			api.Error(c, http.StatusInternalServerError, "Failed to generate token")
			return
		}

		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie("token", token, int(TokenTTL.Seconds()), "/", "", false, true)

		api.OKWithMessage(c, http.StatusOK, gin.H{
			"token": token,
			"user":  user,
		}, "Login successful")
	}
}

// clientIdentifier picks the best available key for rate limiting. Private
// addresses get combined with the user agent so clients behind one NAT are
// not throttled as a group.
func clientIdentifier(c *gin.Context) string {
	clientIP := c.GetHeader("X-Forwarded-For")
	if clientIP == "" {
		clientIP = c.GetHeader("X-Real-IP")
	}
	if clientIP == "" {
		clientIP = c.ClientIP()
	}

	if strings.Contains(clientIP, ",") {
		clientIP = strings.TrimSpace(strings.Split(clientIP, ",")[0])
	}

	if isPrivateIP(clientIP) {
		clientIP = clientIP + ":" + c.GetHeader("User-Agent")
	}

	return clientIP
}

func isPrivateIP(ip string) bool {
	privatePrefixes := []string{
		"10.", "192.168.", "127.", "169.254.", "::1", "fc00::", "fe80::",
	}
	for i := 16; i <= 31; i++ {
		privatePrefixes = append(privatePrefixes, "172."+strconv.Itoa(i)+".")
	}

	for _, prefix := range privatePrefixes {
		if strings.HasPrefix(ip, prefix) {
			return true
		}
	}
	return false
}
