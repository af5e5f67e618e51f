package controllers

import (
	"errors"
	"net/http"

	"loanlink-backend/models"
	"loanlink-backend/repository"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserController struct {
	repo repository.UserRepo
}

func NewUserController(repo repository.UserRepo) *UserController {
	return &UserController{repo: repo}
}

// CreateUser stores a profile on first sign-in. Role defaults to "user".
func (uc *UserController) CreateUser(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}

	id, err := uc.repo.Create(c.Request.Context(), &user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"insertedId": id.Hex()})
}

func (uc *UserController) GetUsers(c *gin.Context) {
	users, err := uc.repo.FindAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, users)
}

func (uc *UserController) GetUserByEmail(c *gin.Context) {
	user, err := uc.repo.FindByEmail(c.Request.Context(), c.Param("email"))
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}

// PatchUser merges arbitrary profile fields into the user identified by email.
func (uc *UserController) PatchUser(c *gin.Context) {
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := uc.repo.UpdateByEmail(c.Request.Context(), c.Param("email"), bson.M(updates))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found", "matchedCount": 0})
		return
	}
	c.JSON(http.StatusOK, result)
}

// SetAdmin upserts the admin role for the email. The route is gated by the
// admin token middleware; this handler never runs for unprivileged callers.
func (uc *UserController) SetAdmin(c *gin.Context) {
	result, err := uc.repo.UpsertRoleByEmail(c.Request.Context(), c.Param("email"), models.RoleAdmin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}
