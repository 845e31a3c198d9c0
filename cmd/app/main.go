package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"tripsmith/cmd/fx/account_fx"
	"tripsmith/cmd/fx/ai_fx"
	"tripsmith/cmd/fx/db_fx"
	"tripsmith/cmd/fx/poi_fx"
	"tripsmith/cmd/fx/trip_fx"
	"tripsmith/internal/api/controllers"
	"tripsmith/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	app := fx.New(
		db_fx.Module,
		ai_fx.Module,
		account_fx.Module,
		poi_fx.Module,
		trip_fx.Module,

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
	tripController *controllers.TripController,
	poiController *controllers.POIController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, accountController, tripController, poiController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	accountController *controllers.AccountController,
	tripController *controllers.TripController,
	poiController *controllers.POIController) {

	accountGroup := r.Group("/accounts")
	accountGroup.POST("/signup", accountController.SignUp)
	accountGroup.POST("/login", accountController.Login)

	tripGroup := r.Group("/trips")
	tripGroup.Use(middleware.JWTAuthMiddleware())
	tripGroup.POST("/plan", tripController.PlanTrip)
	tripGroup.GET("", tripController.ListTrips)
	tripGroup.GET("/:tripId", tripController.GetTripById)

	poiGroup := r.Group("/pois")
	poiGroup.GET("/:destination", poiController.ListByDestination)
	poiGroup.POST("", middleware.JWTAuthMiddleware(), poiController.CreatePOI)
}
