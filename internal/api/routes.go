package api

import (
	"net/http"

	"github.com/CHUNCHUNMARU-d/GYM/internal/domain"
	"github.com/CHUNCHUNMARU-d/GYM/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	coachService service.CoachService,
	exerciseService service.ExerciseService,
	routineService service.RoutineService,
	workoutService service.WorkoutService,
	measurementService service.MeasurementService,
	photoService service.PhotoService,
) {
	authHandler := NewAuthHandler(authService)
	exerciseHandler := NewExerciseHandler(exerciseService)
	coachHandler := NewCoachHandler(coachService, routineService, measurementService, photoService)
	clientHandler := NewClientHandler(routineService, workoutService)

	authMiddleware := AuthMiddleware(jwtSecret)

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":  "healthy",
				"message": "Coach-client tracker is running",
			})
		})

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/coach/login", authHandler.CoachLogin)
			authGroup.POST("/client/login", authHandler.ClientLogin)
		}

		// The exercise library is readable without a token so the client
		// app can browse it before login. Mutations live under /coach.
		exerciseGroup := api.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.GetExercises)
			exerciseGroup.GET("/search", exerciseHandler.SearchExercises)
		}

		coachGroup := api.Group("/coach")
		coachGroup.Use(authMiddleware, RoleMiddleware(domain.RoleCoach), SubjectMiddleware(authService))
		{
			coachGroup.GET("/dashboard", coachHandler.GetDashboard)
			coachGroup.GET("/progress-comparison", coachHandler.GetProgressComparison)

			coachGroup.POST("/clients", coachHandler.CreateClient)
			coachGroup.GET("/clients", coachHandler.GetClients)
			coachGroup.DELETE("/clients/:clientId", coachHandler.DeactivateClient)
			coachGroup.GET("/client/:clientId/progress", coachHandler.GetClientProgress)

			coachGroup.POST("/exercises", exerciseHandler.CreateExercise)
			coachGroup.PUT("/exercises/:exerciseId", exerciseHandler.UpdateExerciseTips)

			coachGroup.POST("/measurements/:clientId", coachHandler.AddMeasurement)
			coachGroup.GET("/measurements/:clientId", coachHandler.GetMeasurements)

			coachGroup.POST("/photos/:clientId/upload-url", coachHandler.RequestPhotoUpload)
			coachGroup.POST("/photos/:clientId/confirm", coachHandler.ConfirmPhotoUpload)
			coachGroup.GET("/photos/:clientId", coachHandler.GetClientPhotos)

			coachGroup.POST("/routines", coachHandler.CreateRoutine)
			coachGroup.GET("/routines", coachHandler.GetRoutines)
			coachGroup.PUT("/routines/:routineId", coachHandler.UpdateRoutine)
		}

		clientGroup := api.Group("/client")
		clientGroup.Use(authMiddleware, RoleMiddleware(domain.RoleClient), SubjectMiddleware(authService))
		{
			clientGroup.GET("/routine", clientHandler.GetActiveRoutine)
			clientGroup.POST("/workouts", clientHandler.LogWorkout)
			clientGroup.GET("/workouts", clientHandler.GetWorkouts)
			clientGroup.DELETE("/workouts/:workoutId", clientHandler.DeleteWorkout)
			clientGroup.GET("/stats", clientHandler.GetStats)
		}
	}
}
