package security

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"assethub/internal/repository"
	"assethub/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// TokenTTL matches the session cookie lifetime.
const TokenTTL = 5 * time.Hour

var (
	jwtSecret     []byte
	jwtSecretOnce sync.Once
)

func secretKey() []byte {
	jwtSecretOnce.Do(func() {
		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			log.Println("Warning: JWT_SECRET not set, using insecure development secret")
			secret = "your-secret-key"
		}
		jwtSecret = []byte(secret)
	})
	return jwtSecret
}

func AuthenticateUser(email, password string, repo *repository.Repository) (*models.User, error) {
	var user models.User

	query := repo.GoquDBWrapper.
		Select("id", "name", "email", "password_hash", "role", "organization_id").
		From("users").
		Where(goqu.Ex{"email": strings.ToLower(email)})

	found, err := query.Executor().ScanStruct(&user)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("user not found")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, err
	}

	return &user, nil
}

func GenerateJWT(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"userID":         user.ID,
		"role":           user.Role,
		"email":          user.Email,
		"name":           user.Name,
		"organizationID": user.OrganizationID,
		"exp":            time.Now().Add(TokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

func GetUserIDFromContext(c *gin.Context) (int, error) {
	value, exists := c.Get("userID")
	if !exists {
		return 0, fmt.Errorf("no authenticated user in context")
	}

	userID, ok := value.(int)
	if !ok {
		return 0, fmt.Errorf("userID is not an int")
	}

	return userID, nil
}

func GetUserNameFromContext(c *gin.Context) string {
	if value, exists := c.Get("name"); exists {
		if name, ok := value.(string); ok {
			return name
		}
	}
	return "unknown"
}
