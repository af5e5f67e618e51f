package controllers

import (
	"net/http"

	"loanlink-backend/models"
	"loanlink-backend/repository"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ApplicationController struct {
	repo repository.ApplicationRepo
}

func NewApplicationController(repo repository.ApplicationRepo) *ApplicationController {
	return &ApplicationController{repo: repo}
}

// GetApplications lists applications filtered by ?status= and ?userEmail=.
func (ac *ApplicationController) GetApplications(c *gin.Context) {
	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}
	if userEmail := c.Query("userEmail"); userEmail != "" {
		filter["userEmail"] = userEmail
	}

	apps, err := ac.repo.Find(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, apps)
}

func (ac *ApplicationController) CreateApplication(c *gin.Context) {
	var app models.Application
	if err := c.ShouldBindJSON(&app); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if app.FeeStatus == "" {
		app.FeeStatus = models.FeeStatusUnpaid
	}

	id, err := ac.repo.Create(c.Request.Context(), &app)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"insertedId": id.Hex()})
}

// PatchApplication merges arbitrary fields (typically status changes).
func (ac *ApplicationController) PatchApplication(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid application id"})
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := ac.repo.UpdateByID(c.Request.Context(), id, bson.M(updates))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Application not found", "matchedCount": 0})
		return
	}
	c.JSON(http.StatusOK, result)
}
