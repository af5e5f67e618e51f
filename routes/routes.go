package routes

import (
	"net/http"

	"loanlink-backend/controllers"
	"loanlink-backend/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the full HTTP surface onto the engine.
func RegisterRoutes(
	r *gin.Engine,
	lc *controllers.LoanController,
	uc *controllers.UserController,
	ac *controllers.ApplicationController,
	pc *controllers.PaymentController,
	adminToken string,
) {
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "LoanLink server is running")
	})

	loans := r.Group("/loans")
	{
		loans.GET("", lc.GetLoans)
		loans.POST("", lc.CreateLoan)
		loans.GET("/:id", lc.GetLoanByID)
		loans.PUT("/:id", lc.UpdateLoan)
		loans.PATCH("/:id", lc.PatchLoan)
		loans.DELETE("/:id", lc.DeleteLoan)
	}

	users := r.Group("/users")
	{
		users.POST("", uc.CreateUser)
		users.GET("", uc.GetUsers)
		// set-admin must be registered before the :email wildcard and is the
		// only privileged route in the service.
		users.PATCH("/set-admin/:email", middleware.RequireAdminToken(adminToken), uc.SetAdmin)
		users.GET("/:email", uc.GetUserByEmail)
		users.PATCH("/:email", uc.PatchUser)
	}

	applications := r.Group("/applications")
	{
		applications.GET("", ac.GetApplications)
		applications.POST("", ac.CreateApplication)
		applications.PATCH("/:id", ac.PatchApplication)
	}

	r.POST("/create-payment-session", pc.CreatePaymentSession)
	r.POST("/verify-payment", pc.VerifyPayment)
}
