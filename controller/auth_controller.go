// api/controller/auth_controller.go
package controller

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	sage_errors "github.com/sagelms/sage/api/errors"
	"github.com/sagelms/sage/api/model"
	"github.com/sagelms/sage/api/service"
	"github.com/sagelms/sage/api/util"
)

type AuthController struct {
	authService service.IAuthService
}

func NewAuthController(authService service.IAuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// RegisterRoutes registers the API routes. Logout is registered separately
// behind the auth middleware by the router.
func (ac *AuthController) RegisterRoutes(r *gin.RouterGroup) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", ac.Register)
		authGroup.POST("/login", ac.Login)
	}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=student teacher"`
}

// Register endpoint
func (ac *AuthController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid registration data", sage_errors.ErrInvalidInput)
		return
	}

	user, err := ac.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password, model.Role(req.Role))
	if err != nil {
		switch {
		case stderrors.Is(err, sage_errors.ErrUserConflict):
			util.RespondWithError(c, http.StatusConflict, "User already exists", err)
		case stderrors.Is(err, sage_errors.ErrInvalidInput):
			util.RespondWithError(c, http.StatusBadRequest, "Invalid registration data", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to register user", err)
		}
		return
	}

	c.JSON(http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login endpoint
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Email and password are required", sage_errors.ErrInvalidInput)
		return
	}

	token, user, err := ac.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if stderrors.Is(err, sage_errors.ErrCredentials) {
			util.RespondWithError(c, http.StatusUnauthorized, "Invalid email or password", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to log in", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// Logout endpoint. Requires the auth middleware; revokes the presented
// token for the rest of its lifetime.
func (ac *AuthController) Logout(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if token == "" {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", sage_errors.ErrUnauthorized)
		return
	}

	if err := ac.authService.Logout(c.Request.Context(), token); err != nil {
		if stderrors.Is(err, sage_errors.ErrInvalidToken) {
			util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to log out", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me returns the authenticated principal.
func (ac *AuthController) Me(c *gin.Context) {
	principal, err := util.GetPrincipalFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}
	c.JSON(http.StatusOK, principal)
}
