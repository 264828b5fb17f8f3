package users

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"assethub/pkg/api"
	custom_error "assethub/pkg/errors"
	"assethub/pkg/models"
	"assethub/pkg/roles"
	"assethub/pkg/security"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type UserHandler struct {
	r *UserRepository
}

func NewUserHandler(r *UserRepository) *UserHandler {
	return &UserHandler{r: r}
}

func (h *UserHandler) RegisterRoutes(router *gin.Engine) {
	protectedRoutes := router.Group("")
	protectedRoutes.Use(security.JWTMiddleware())
	{
		protectedRoutes.GET("/users", security.Authorize(roles.OrganizationAdmin), h.ListUsers)
		protectedRoutes.POST("/users", security.Authorize(roles.OrganizationAdmin), h.CreateUser)
		protectedRoutes.GET("/users/:id", h.GetUser)
		protectedRoutes.PUT("/users/:id", security.Authorize(roles.OrganizationAdmin), h.UpdateUser)
		protectedRoutes.DELETE("/users/:id", security.Authorize(roles.Admin), h.DeleteUser)
	}
}

type userRequest struct {
	Name           string  `json:"name" binding:"required"`
	Email          string  `json:"email" binding:"required,email"`
	Password       string  `json:"password"`
	Role           string  `json:"role" binding:"required"`
	OrganizationID int     `json:"organization_id" binding:"required"`
	EmployeeID     *string `json:"employee_id"`
	Department     *string `json:"department"`
	Position       *string `json:"position"`
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	var organizationID int
	var err error
	if orgID := c.Query("organization_id"); orgID != "" {
		if organizationID, err = strconv.Atoi(orgID); err != nil {
			api.Error(c, http.StatusBadRequest, "organization_id must be an integer")
			return
		}
	}

	users, err := h.r.GetUsers(organizationID)
	if err != nil {
		log.Printf("Unable to list users: %v", err)
		api.Error(c, http.StatusInternalServerError, "Failed to fetch users")
		return
	}

	api.OK(c, http.StatusOK, users)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		api.Error(c, http.StatusBadRequest, "User id must be an integer")
		return
	}

	user, err := h.r.GetUser(id)
	if err != nil {
		log.Printf("Unable to get user %d: %v", id, err)
		api.Error(c, http.StatusInternalServerError, "Failed to fetch user")
		return
	}
	if user == nil {
		api.Error(c, http.StatusNotFound, "User not found")
		return
	}

	api.OK(c, http.StatusOK, user)
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Error(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if req.Password == "" {
		api.Error(c, http.StatusBadRequest, "Password is required")
		return
	}
	if !roles.Role(req.Role).IsValid() {
		api.Error(c, http.StatusBadRequest, "Invalid role")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Unable to hash password: %v", err)
		api.Error(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	user := models.User{
		Name:           req.Name,
		Email:          req.Email,
		PasswordHash:   string(hash),
		Role:           req.Role,
		OrganizationID: req.OrganizationID,
		EmployeeID:     req.EmployeeID,
		Department:     req.Department,
		Position:       req.Position,
	}

	if err := h.r.Create(&user); err != nil {
		var uniqueErr *custom_error.UniqueViolationError
		if errors.As(err, &uniqueErr) {
			api.Error(c, http.StatusConflict, "Email already registered")
			return
		}
		log.Printf("Unable to create user: %v", err)
		api.Error(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	c.JSON(http.StatusCreated, api.Response{Success: true, Data: user, Message: "User created successfully"})
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		api.Error(c, http.StatusBadRequest, "User id must be an integer")
		return
	}

	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Error(c, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if !roles.Role(req.Role).IsValid() {
		api.Error(c, http.StatusBadRequest, "Invalid role")
		return
	}

	user := models.User{
		Name:           req.Name,
		Email:          req.Email,
		Role:           req.Role,
		OrganizationID: req.OrganizationID,
		EmployeeID:     req.EmployeeID,
		Department:     req.Department,
		Position:       req.Position,
	}

	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("Unable to hash password: %v", err)
			api.Error(c, http.StatusInternalServerError, "Failed to update user")
			return
		}
		user.PasswordHash = string(hash)
	}

	if err := h.r.Update(id, &user); err != nil {
		var uniqueErr *custom_error.UniqueViolationError
		switch {
		case errors.Is(err, ErrUserNotFound):
			api.Error(c, http.StatusNotFound, "User not found")
		case errors.As(err, &uniqueErr):
			api.Error(c, http.StatusConflict, "Email already registered")
		default:
			log.Printf("Unable to update user %d: %v", id, err)
			api.Error(c, http.StatusInternalServerError, "Failed to update user")
		}
		return
	}

	api.OKWithMessage(c, http.StatusOK, nil, "User updated successfully")
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		api.Error(c, http.StatusBadRequest, "User id must be an integer")
		return
	}

	if err := h.r.Delete(id); err != nil {
		var fkErr *custom_error.ForeignKeyViolationError
		switch {
		case errors.Is(err, ErrUserNotFound):
			api.Error(c, http.StatusNotFound, "User not found")
		case errors.As(err, &fkErr):
			api.Error(c, http.StatusConflict, "User still has assigned assets or requests")
		default:
			log.Printf("Unable to delete user %d: %v", id, err)
			api.Error(c, http.StatusInternalServerError, "Failed to delete user")
		}
		return
	}

	api.OKWithMessage(c, http.StatusOK, nil, "User deleted successfully")
}
