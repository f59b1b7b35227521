package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/CHUNCHUNMARU-d/GYM/internal/domain"
	"github.com/CHUNCHUNMARU-d/GYM/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClientHandler bundles the client-facing services.
type ClientHandler struct {
	routineService service.RoutineService
	workoutService service.WorkoutService
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(routineService service.RoutineService, workoutService service.WorkoutService) *ClientHandler {
	return &ClientHandler{
		routineService: routineService,
		workoutService: workoutService,
	}
}

// --- Request Structs ---

type WorkoutSetRequest struct {
	SetNumber int     `json:"set_number"`
	WeightKg  float64 `json:"weight_kg"`
	Reps      int     `json:"reps"`
	RIR       int     `json:"rir"`
}

type WorkoutExerciseRequest struct {
	ExerciseID   string              `json:"exercise_id" binding:"required"`
	ExerciseName string              `json:"exercise_name" binding:"required"`
	Sets         []WorkoutSetRequest `json:"sets" binding:"required"`
}

type LogWorkoutRequest struct {
	RoutineID       string                   `json:"routine_id"`
	RoutineName     string                   `json:"routine_name"`
	Exercises       []WorkoutExerciseRequest `json:"exercises" binding:"required"`
	Notes           string                   `json:"notes"`
	DurationMinutes int                      `json:"duration_minutes"`
}

// --- Handler Methods ---

// GetActiveRoutine returns the client's current routine, or a null routine
// when none is assigned.
func (h *ClientHandler) GetActiveRoutine(c *gin.Context) {
	clientID, err := getSubjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get subject ID from token")
		return
	}

	routine, err := h.routineService.GetActiveRoutineForClient(c.Request.Context(), clientID)
	if err != nil {
		mapServiceError(c, err, "Failed to load routine")
		return
	}
	c.JSON(http.StatusOK, gin.H{"routine": routine})
}

// LogWorkout records a finished session for the calling client.
func (h *ClientHandler) LogWorkout(c *gin.Context) {
	clientID, err := getSubjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get subject ID from token")
		return
	}

	var req LogWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	workout := &domain.Workout{
		RoutineName:     req.RoutineName,
		Notes:           req.Notes,
		DurationMinutes: req.DurationMinutes,
	}
	if req.RoutineID != "" {
		routineID, err := primitive.ObjectIDFromHex(req.RoutineID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "invalid routine id")
			return
		}
		workout.RoutineID = routineID
	}
	for _, ex := range req.Exercises {
		exerciseID, err := primitive.ObjectIDFromHex(ex.ExerciseID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, fmt.Sprintf("invalid exercise id %q", ex.ExerciseID))
			return
		}
		sets := make([]domain.WorkoutSet, 0, len(ex.Sets))
		for _, s := range ex.Sets {
			sets = append(sets, domain.WorkoutSet{
				SetNumber: s.SetNumber,
				WeightKg:  s.WeightKg,
				Reps:      s.Reps,
				RIR:       s.RIR,
			})
		}
		workout.Exercises = append(workout.Exercises, domain.WorkoutExercise{
			ExerciseID:   exerciseID,
			ExerciseName: ex.ExerciseName,
			Sets:         sets,
		})
	}

	created, err := h.workoutService.LogWorkout(c.Request.Context(), clientID, workout)
	if err != nil {
		mapServiceError(c, err, "Failed to log workout")
		return
	}
	c.JSON(http.StatusOK, created)
}

// GetWorkouts lists the client's history, newest first. The optional limit
// query caps the result; it defaults to the service's history limit.
func (h *ClientHandler) GetWorkouts(c *gin.Context) {
	clientID, err := getSubjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get subject ID from token")
		return
	}

	limit := int64(service.DefaultHistoryLimit)
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			abortWithError(c, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	workouts, err := h.workoutService.GetWorkoutHistory(c.Request.Context(), clientID, limit)
	if err != nil {
		mapServiceError(c, err, "Failed to list workouts")
		return
	}
	c.JSON(http.StatusOK, workouts)
}

// DeleteWorkout removes a logged session by id.
func (h *ClientHandler) DeleteWorkout(c *gin.Context) {
	workoutID, err := primitive.ObjectIDFromHex(c.Param("workoutId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid workout id")
		return
	}

	if err := h.workoutService.DeleteWorkout(c.Request.Context(), workoutID); err != nil {
		mapServiceError(c, err, "Failed to delete workout")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Workout deleted"})
}

// GetStats folds the client's full history into per-exercise statistics.
// An optional exercise_id query narrows the fold to a single exercise.
func (h *ClientHandler) GetStats(c *gin.Context) {
	clientID, err := getSubjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get subject ID from token")
		return
	}

	var exerciseID *primitive.ObjectID
	if raw := c.Query("exercise_id"); raw != "" {
		parsed, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "invalid exercise id")
			return
		}
		exerciseID = &parsed
	}

	summary, err := h.workoutService.GetWorkoutStats(c.Request.Context(), clientID, exerciseID)
	if err != nil {
		mapServiceError(c, err, "Failed to compute stats")
		return
	}
	c.JSON(http.StatusOK, summary)
}
