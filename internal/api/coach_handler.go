package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/CHUNCHUNMARU-d/GYM/internal/domain"
	"github.com/CHUNCHUNMARU-d/GYM/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CoachHandler bundles the coach-facing services.
type CoachHandler struct {
	coachService       service.CoachService
	routineService     service.RoutineService
	measurementService service.MeasurementService
	photoService       service.PhotoService
}

// NewCoachHandler creates a new CoachHandler.
func NewCoachHandler(
	coachService service.CoachService,
	routineService service.RoutineService,
	measurementService service.MeasurementService,
	photoService service.PhotoService,
) *CoachHandler {
	return &CoachHandler{
		coachService:       coachService,
		routineService:     routineService,
		measurementService: measurementService,
		photoService:       photoService,
	}
}

// --- Request Structs ---

type CreateClientRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email"`
}

type RoutineExerciseRequest struct {
	ExerciseID   string   `json:"exercise_id" binding:"required"`
	ExerciseName string   `json:"exercise_name" binding:"required"`
	TargetSets   int      `json:"target_sets" binding:"required"`
	TargetReps   string   `json:"target_reps" binding:"required"` // Range string, e.g. "8-10"
	TargetWeight *float64 `json:"target_weight"`
	RestSeconds  int      `json:"rest_seconds"`
}

type CreateRoutineRequest struct {
	Name            string                   `json:"name" binding:"required"`
	Exercises       []RoutineExerciseRequest `json:"exercises" binding:"required"`
	AssignedClients []string                 `json:"assigned_clients"`
}

type UpdateRoutineRequest struct {
	Name            string                   `json:"name" binding:"required"`
	Exercises       []RoutineExerciseRequest `json:"exercises" binding:"required"`
	AssignedClients []string                 `json:"assigned_clients"`
	// IsActive defaults to true when omitted, matching the create default.
	IsActive *bool `json:"is_active"`
}

type AddMeasurementRequest struct {
	WeightKg          *float64           `json:"weight_kg"`
	BodyFatPercentage *float64           `json:"body_fat_percentage"`
	Measurements      map[string]float64 `json:"measurements"`
}

type PhotoUploadRequest struct {
	ContentType string `json:"content_type" binding:"required"`
}

type ConfirmPhotoRequest struct {
	ObjectKey   string `json:"object_key" binding:"required"`
	FileName    string `json:"file_name"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}

// --- Helpers ---

func (r RoutineExerciseRequest) toDomain() (domain.RoutineExercise, error) {
	exerciseID, err := primitive.ObjectIDFromHex(r.ExerciseID)
	if err != nil {
		return domain.RoutineExercise{}, fmt.Errorf("invalid exercise id %q", r.ExerciseID)
	}
	return domain.RoutineExercise{
		ExerciseID:   exerciseID,
		ExerciseName: r.ExerciseName,
		TargetSets:   r.TargetSets,
		TargetReps:   r.TargetReps,
		TargetWeight: r.TargetWeight,
		RestSeconds:  r.RestSeconds,
	}, nil
}

func parseRoutinePayload(exercises []RoutineExerciseRequest, assignedClients []string) ([]domain.RoutineExercise, []primitive.ObjectID, error) {
	routineExercises := make([]domain.RoutineExercise, 0, len(exercises))
	for _, ex := range exercises {
		re, err := ex.toDomain()
		if err != nil {
			return nil, nil, err
		}
		routineExercises = append(routineExercises, re)
	}

	clientIDs := make([]primitive.ObjectID, 0, len(assignedClients))
	for _, raw := range assignedClients {
		clientID, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid client id %q", raw)
		}
		clientIDs = append(clientIDs, clientID)
	}

	return routineExercises, clientIDs, nil
}

// mapServiceError translates common service errors to HTTP responses.
func mapServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrClientNotFound),
		errors.Is(err, service.ErrCoachNotFound),
		errors.Is(err, service.ErrRoutineNotFound),
		errors.Is(err, service.ErrExerciseNotFound),
		errors.Is(err, service.ErrWorkoutNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrValidationFailed),
		errors.Is(err, service.ErrInvalidPhotoType):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}

// --- Handler Methods ---

// GetDashboard returns the coach landing summary.
func (h *CoachHandler) GetDashboard(c *gin.Context) {
	coachID, err := getSubjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get subject ID from token")
		return
	}

	dashboard, err := h.coachService.GetDashboard(c.Request.Context(), coachID)
	if err != nil {
		mapServiceError(c, err, "Failed to load dashboard")
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

// CreateClient adds a client under the calling coach.
func (h *CoachHandler) CreateClient(c *gin.Context) {
	coachID, err := getSubjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get subject ID from token")
		return
	}

	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	client, err := h.coachService.CreateClient(c.Request.Context(), coachID, req.Name, req.Email)
	if err != nil {
		mapServiceError(c, err, "Failed to create client")
		return
	}
	c.JSON(http.StatusOK, client)
}

// GetClients lists the coach's roster.
func (h *CoachHandler) GetClients(c *gin.Context) {
	coachID, err := getSubjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get subject ID from token")
		return
	}

	clients, err := h.coachService.GetClients(c.Request.Context(), coachID)
	if err != nil {
		mapServiceError(c, err, "Failed to list clients")
		return
	}
	c.JSON(http.StatusOK, clients)
}

// DeactivateClient soft-deactivates a client; the record is kept.
func (h *CoachHandler) DeactivateClient(c *gin.Context) {
	coachID, err := getSubjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get subject ID from token")
		return
	}

	clientID, err := primitive.ObjectIDFromHex(c.Param("clientId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid client id")
		return
	}

	if err := h.coachService.DeactivateClient(c.Request.Context(), coachID, clientID); err != nil {
		mapServiceError(c, err, "Failed to deactivate client")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Client deactivated"})
}

// GetClientProgress returns a client's workouts, measurements and folded
// exercise statistics. The client must belong to the calling coach.
func (h *CoachHandler) GetClientProgress(c *gin.Context) {
	coachID, err := getSubjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get subject ID from token")
		return
	}

	clientID, err := primitive.ObjectIDFromHex(c.Param("clientId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid client id")
		return
	}

	progress, err := h.coachService.GetClientProgress(c.Request.Context(), coachID, clientID)
	if err != nil {
		mapServiceError(c, err, "Failed to load client progress")
		return
	}
	c.JSON(http.StatusOK, progress)
}

// CreateRoutine persists a new routine for the calling coach.
func (h *CoachHandler) CreateRoutine(c *gin.Context) {
	coachID, err := getSubjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get subject ID from token")
		return
	}

	var req CreateRoutineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	exercises, clientIDs, err := parseRoutinePayload(req.Exercises, req.AssignedClients)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	routine, err := h.routineService.CreateRoutine(c.Request.Context(), coachID, req.Name, exercises, clientIDs)
	if err != nil {
		mapServiceError(c, err, "Failed to create routine")
		return
	}
	c.JSON(http.StatusOK, routine)
}

// GetRoutines lists the coach's routines.
func (h *CoachHandler) GetRoutines(c *gin.Context) {
	coachID, err := getSubjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get subject ID from token")
		return
	}

	routines, err := h.routineService.GetRoutinesByCoach(c.Request.Context(), coachID)
	if err != nil {
		mapServiceError(c, err, "Failed to list routines")
		return
	}
	c.JSON(http.StatusOK, routines)
}

// UpdateRoutine replaces a routine's mutable fields wholesale.
func (h *CoachHandler) UpdateRoutine(c *gin.Context) {
	coachID, err := getSubjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get subject ID from token")
		return
	}

	routineID, err := primitive.ObjectIDFromHex(c.Param("routineId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid routine id")
		return
	}

	var req UpdateRoutineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	exercises, clientIDs, err := parseRoutinePayload(req.Exercises, req.AssignedClients)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	routine, err := h.routineService.UpdateRoutine(c.Request.Context(), coachID, routineID, req.Name, exercises, clientIDs, isActive)
	if err != nil {
		mapServiceError(c, err, "Failed to update routine")
		return
	}
	c.JSON(http.StatusOK, routine)
}

// AddMeasurement appends a body measurement snapshot for an owned client.
func (h *CoachHandler) AddMeasurement(c *gin.Context) {
	coachID, err := getSubjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get subject ID from token")
		return
	}

	clientID, err := primitive.ObjectIDFromHex(c.Param("clientId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid client id")
		return
	}

	var req AddMeasurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	measurement := &domain.BodyMeasurement{
		WeightKg:          req.WeightKg,
		BodyFatPercentage: req.BodyFatPercentage,
		Measurements:      req.Measurements,
	}

	created, err := h.measurementService.AddMeasurement(c.Request.Context(), coachID, clientID, measurement)
	if err != nil {
		mapServiceError(c, err, "Failed to add measurement")
		return
	}
	c.JSON(http.StatusOK, created)
}

// GetMeasurements lists an owned client's snapshots, date descending.
func (h *CoachHandler) GetMeasurements(c *gin.Context) {
	coachID, err := getSubjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get subject ID from token")
		return
	}

	clientID, err := primitive.ObjectIDFromHex(c.Param("clientId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid client id")
		return
	}

	measurements, err := h.measurementService.GetMeasurements(c.Request.Context(), coachID, clientID)
	if err != nil {
		mapServiceError(c, err, "Failed to list measurements")
		return
	}
	c.JSON(http.StatusOK, measurements)
}

// GetProgressComparison emits the roster-wide comparison, one independent
// record per active client.
func (h *CoachHandler) GetProgressComparison(c *gin.Context) {
	coachID, err := getSubjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get subject ID from token")
		return
	}

	comparisons, err := h.coachService.GetProgressComparison(c.Request.Context(), coachID)
	if err != nil {
		mapServiceError(c, err, "Failed to build progress comparison")
		return
	}
	c.JSON(http.StatusOK, comparisons)
}

// RequestPhotoUpload hands out a presigned PUT URL for a progress photo.
func (h *CoachHandler) RequestPhotoUpload(c *gin.Context) {
	coachID, err := getSubjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get subject ID from token")
		return
	}

	clientID, err := primitive.ObjectIDFromHex(c.Param("clientId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid client id")
		return
	}

	var req PhotoUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	ticket, err := h.photoService.RequestUpload(c.Request.Context(), coachID, clientID, req.ContentType)
	if err != nil {
		mapServiceError(c, err, "Failed to generate upload URL")
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// ConfirmPhotoUpload persists photo metadata after the PUT completed.
func (h *CoachHandler) ConfirmPhotoUpload(c *gin.Context) {
	coachID, err := getSubjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get subject ID from token")
		return
	}

	clientID, err := primitive.ObjectIDFromHex(c.Param("clientId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid client id")
		return
	}

	var req ConfirmPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	photo, err := h.photoService.ConfirmUpload(c.Request.Context(), coachID, clientID, req.ObjectKey, req.FileName, req.Size, req.ContentType)
	if err != nil {
		mapServiceError(c, err, "Failed to confirm photo upload")
		return
	}
	c.JSON(http.StatusOK, photo)
}

// GetClientPhotos lists an owned client's photos with download URLs.
func (h *CoachHandler) GetClientPhotos(c *gin.Context) {
	coachID, err := getSubjectIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get subject ID from token")
		return
	}

	clientID, err := primitive.ObjectIDFromHex(c.Param("clientId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid client id")
		return
	}

	photos, err := h.photoService.GetClientPhotos(c.Request.Context(), coachID, clientID)
	if err != nil {
		mapServiceError(c, err, "Failed to list photos")
		return
	}
	c.JSON(http.StatusOK, photos)
}
