package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"loanlink-backend/models"
	"loanlink-backend/repository"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type LoanController struct {
	repo repository.LoanRepo
}

func NewLoanController(repo repository.LoanRepo) *LoanController {
	return &LoanController{repo: repo}
}

// GetLoans lists loans, optionally capped by ?limit= and filtered by ?createdBy=.
func (lc *LoanController) GetLoans(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.Query("limit"), 10, 64)

	filter := bson.M{}
	if createdBy := c.Query("createdBy"); createdBy != "" {
		filter["createdBy"] = createdBy
	}

	loans, err := lc.repo.Find(c.Request.Context(), filter, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, loans)
}

func (lc *LoanController) CreateLoan(c *gin.Context) {
	var loan models.Loan
	if err := c.ShouldBindJSON(&loan); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := lc.repo.Create(c.Request.Context(), &loan)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"insertedId": id.Hex()})
}

func (lc *LoanController) GetLoanByID(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid loan id"})
		return
	}

	loan, err := lc.repo.FindByID(c.Request.Context(), id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Loan not found"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, loan)
}

// UpdateLoan replaces the loan's editable fields (PUT).
func (lc *LoanController) UpdateLoan(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid loan id"})
		return
	}

	var req struct {
		Title        string  `json:"title"`
		Description  string  `json:"description"`
		InterestRate float64 `json:"interestRate"`
		Category     string  `json:"category"`
		MaxLoan      float64 `json:"maxLoan"`
		Image        string  `json:"image"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := bson.M{
		"title":        req.Title,
		"description":  req.Description,
		"interestRate": req.InterestRate,
		"category":     req.Category,
		"maxLoan":      req.MaxLoan,
		"image":        req.Image,
	}
	result, err := lc.repo.UpdateByID(c.Request.Context(), id, updates)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Loan not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "modifiedCount": result.ModifiedCount})
}

// PatchLoan merges arbitrary fields into the loan (PATCH).
func (lc *LoanController) PatchLoan(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid loan id"})
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := lc.repo.UpdateByID(c.Request.Context(), id, bson.M(updates))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Loan not found", "matchedCount": 0})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (lc *LoanController) DeleteLoan(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid loan id"})
		return
	}

	result, err := lc.repo.DeleteByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Loan not found"})
		return
	}
	c.JSON(http.StatusOK, result)
}
