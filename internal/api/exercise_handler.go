package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/CHUNCHUNMARU-d/GYM/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- Request Structs ---

type CreateExerciseRequest struct {
	Name        string `json:"name" binding:"required"`
	MuscleGroup string `json:"muscle_group" binding:"required"`
	Tips        string `json:"tips"`
}

type UpdateExerciseTipsRequest struct {
	Tips string `json:"tips" binding:"required"`
}

// --- Handler Methods ---

// GetExercises lists the full exercise library. Public, no auth.
func (h *ExerciseHandler) GetExercises(c *gin.Context) {
	exercises, err := h.exerciseService.GetAllExercises(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list exercises")
		return
	}
	c.JSON(http.StatusOK, exercises)
}

// SearchExercises matches the query substring anywhere in the name,
// case-insensitively. Public, no auth.
func (h *ExerciseHandler) SearchExercises(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		abortWithError(c, http.StatusBadRequest, "query parameter is required")
		return
	}

	exercises, err := h.exerciseService.SearchExercises(c.Request.Context(), query)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to search exercises")
		return
	}
	c.JSON(http.StatusOK, exercises)
}

// CreateExercise adds a library entry. Coach only; duplicate names (case-
// insensitive) are rejected with 400.
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	exercise, err := h.exerciseService.CreateExercise(c.Request.Context(), req.Name, req.MuscleGroup, req.Tips)
	if err != nil {
		if errors.Is(err, service.ErrExerciseExists) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create exercise")
		}
		return
	}

	c.JSON(http.StatusOK, exercise)
}

// UpdateExerciseTips replaces the coaching tips on an exercise. Coach only.
func (h *ExerciseHandler) UpdateExerciseTips(c *gin.Context) {
	exerciseID, err := primitive.ObjectIDFromHex(c.Param("exerciseId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid exercise id")
		return
	}

	var req UpdateExerciseTipsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	exercise, err := h.exerciseService.UpdateExerciseTips(c.Request.Context(), exerciseID, req.Tips)
	if err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update exercise")
		}
		return
	}

	c.JSON(http.StatusOK, exercise)
}
