package routes

import (
	"candydash-backend/config"
	"candydash-backend/controllers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5000"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	// Scheduling calendar is the landing view
	r.GET("/", controllers.GetCalendar)
	r.GET("/dashboard", controllers.GetDashboardOverview)

	calendar := r.Group("/calendar")
	{
		calendar.GET("", controllers.GetCalendar)
		calendar.GET("/new_customers", controllers.GetNewCustomers)
		calendar.GET("/overdue", controllers.GetOverdueCustomers)
		calendar.GET("/customers_by_area", controllers.GetCustomersByArea)
	}

	route := r.Group("/route")
	{
		route.GET("", controllers.GetRoute)
		route.POST("/add", controllers.AddToRoute)
		route.POST("/complete/:stop_id", controllers.CompleteStop)
		route.POST("/remove/:stop_id", controllers.RemoveStop)
		route.POST("/:stop_id/notes", controllers.UpdateStopNotes)
	}

	customers := r.Group("/customers")
	{
		customers.GET("", controllers.GetCustomers)
		customers.POST("/add", controllers.AddCustomer)
		customers.POST("/edit/:id", controllers.EditCustomer)
		customers.POST("/delete/:id", controllers.DeleteCustomer)
	}
	r.GET("/api/customers/json", controllers.GetCustomersJSON)

	balances := r.Group("/balances")
	{
		balances.GET("", controllers.GetBalances)
		balances.POST("/record_payment", controllers.RecordPayment)
	}

	return r
}
