package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"pottypal/cmd/fx/account_fx"
	"pottypal/cmd/fx/caregiver_fx"
	"pottypal/cmd/fx/celebration_fx"
	"pottypal/cmd/fx/child_fx"
	"pottypal/cmd/fx/dashboard_fx"
	"pottypal/cmd/fx/db_fx"
	"pottypal/cmd/fx/events_fx"
	"pottypal/cmd/fx/mail_fx"
	"pottypal/cmd/fx/memcache_fx"
	"pottypal/cmd/fx/request_fx"
	"pottypal/cmd/fx/reward_fx"
	"pottypal/cmd/fx/upload_fx"
	"pottypal/internal/api/controllers"
	"pottypal/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	app := fx.New(
		db_fx.Module,
		events_fx.Module,
		memcache_fx.Module,
		mail_fx.Module,
		account_fx.Module,
		child_fx.Module,
		caregiver_fx.Module,
		request_fx.Module,
		reward_fx.Module,
		celebration_fx.Module,
		upload_fx.Module,
		dashboard_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	accountController *controllers.AccountController,
	childController *controllers.ChildController,
	caregiverController *controllers.CaregiverController,
	requestController *controllers.RequestController,
	rewardController *controllers.RewardController,
	celebrationController *controllers.CelebrationController,
	uploadController *controllers.UploadController,
	eventsController *controllers.EventsController,
	dashboardController *controllers.DashboardController) *gin.Engine {

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r,
		accountController,
		childController,
		caregiverController,
		requestController,
		rewardController,
		celebrationController,
		uploadController,
		eventsController,
		dashboardController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	accountController *controllers.AccountController,
	childController *controllers.ChildController,
	caregiverController *controllers.CaregiverController,
	requestController *controllers.RequestController,
	rewardController *controllers.RewardController,
	celebrationController *controllers.CelebrationController,
	uploadController *controllers.UploadController,
	eventsController *controllers.EventsController,
	dashboardController *controllers.DashboardController) {

	accounts := r.Group("/accounts")
	accounts.POST("/register", accountController.Register)
	accounts.POST("/login", accountController.Login)
	accounts.POST("/forgot-password", accountController.ForgotPassword)
	accounts.POST("/reset-password", accountController.ResetPassword)

	// Parent session: child-facing views and catalog reads.
	authed := r.Group("/", middleware.JWTAuthMiddleware())
	authed.POST("/children", childController.Onboard)
	authed.GET("/children", childController.List)
	authed.GET("/children/:childId", childController.Get)
	authed.POST("/children/:childId/caregiver-mode", childController.EnterCaregiverMode)
	authed.POST("/children/:childId/requests", requestController.Create)
	authed.GET("/children/:childId/requests", requestController.List)
	authed.GET("/children/:childId/requests/pending", requestController.GetPending)
	authed.GET("/children/:childId/rewards", rewardController.List)
	authed.GET("/children/:childId/redemptions", rewardController.ListRedemptions)
	authed.GET("/children/:childId/events", eventsController.Stream)
	authed.POST("/rewards/:rewardId/redeem", rewardController.Redeem)
	authed.POST("/celebrations/message", celebrationController.Message)
	authed.POST("/uploads/reward-image", uploadController.RewardImage)

	// Caregiver mode: request resolution and management surfaces.
	caregiver := r.Group("/", middleware.JWTAuthMiddleware(), middleware.CaregiverMiddleware())
	caregiver.POST("/requests/:requestId/complete", requestController.Complete)
	caregiver.POST("/requests/:requestId/cancel", requestController.Cancel)
	caregiver.GET("/children/:childId/dashboard", dashboardController.Get)
	caregiver.PATCH("/children/:childId/passcode", childController.ChangePasscode)
	caregiver.PATCH("/children/:childId/points", childController.AdjustPoints)
	caregiver.POST("/children/:childId/points", childController.AddPoints)
	caregiver.POST("/children/:childId/rewards", rewardController.Create)
	caregiver.PUT("/rewards/:rewardId", rewardController.Update)
	caregiver.POST("/rewards/:rewardId/toggle", rewardController.Toggle)
	caregiver.DELETE("/rewards/:rewardId", rewardController.Delete)
	caregiver.GET("/children/:childId/caregivers", caregiverController.List)
	caregiver.POST("/children/:childId/caregivers", caregiverController.Add)
	caregiver.PUT("/caregivers/:caregiverId", caregiverController.Update)
	caregiver.POST("/caregivers/:caregiverId/toggle-notifications", caregiverController.ToggleNotifications)
	caregiver.DELETE("/caregivers/:caregiverId", caregiverController.Remove)
}
