// Package stats folds workout history into per-exercise training statistics.
// The fold is pure and single-pass: O(total sets), no I/O, deterministic
// regardless of input order since every combining operation is commutative.
package stats

import (
	"math"

	"github.com/CHUNCHUNMARU-d/GYM/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseStats accumulates per-exercise figures across a subject's history.
//
// AvgWeightKg is total volume divided by total reps, i.e. weighted by reps
// rather than a simple mean of per-set weights. That definition is part of
// the API contract and must not be "corrected".
type ExerciseStats struct {
	Name          string  `json:"name"`
	TotalSets     int     `json:"total_sets"`
	TotalReps     int     `json:"total_reps"`
	TotalVolumeKg float64 `json:"total_volume_kg"`
	MaxWeightKg   float64 `json:"max_weight_kg"`
	AvgWeightKg   float64 `json:"avg_weight_kg"`
	AvgReps       float64 `json:"avg_reps"`
	Sessions      int     `json:"sessions"`
}

// Summary is the aggregation result, keyed by exercise id (hex).
type Summary struct {
	TotalWorkouts int                       `json:"total_workouts"`
	ExerciseStats map[string]*ExerciseStats `json:"exercise_stats"`
}

// Aggregate folds a subject's workouts into per-exercise statistics. When
// exerciseID is non-nil, only entries for that exercise are folded;
// TotalWorkouts still counts every workout in the input.
func Aggregate(workouts []domain.Workout, exerciseID *primitive.ObjectID) Summary {
	summary := Summary{
		TotalWorkouts: len(workouts),
		ExerciseStats: map[string]*ExerciseStats{},
	}
	if len(workouts) == 0 {
		return summary
	}

	for _, workout := range workouts {
		for _, exercise := range workout.Exercises {
			if exerciseID != nil && exercise.ExerciseID != *exerciseID {
				continue
			}

			key := exercise.ExerciseID.Hex()
			entry, ok := summary.ExerciseStats[key]
			if !ok {
				entry = &ExerciseStats{Name: exercise.ExerciseName}
				summary.ExerciseStats[key] = entry
			}

			// One session per workout the exercise appears in, not per set.
			entry.Sessions++

			for _, set := range exercise.Sets {
				entry.TotalSets++
				entry.TotalReps += set.Reps
				entry.TotalVolumeKg += set.WeightKg * float64(set.Reps)
				entry.MaxWeightKg = math.Max(entry.MaxWeightKg, set.WeightKg)
			}
		}
	}

	// Averages, each guarded against a zero denominator.
	for _, entry := range summary.ExerciseStats {
		if entry.TotalReps > 0 {
			entry.AvgWeightKg = round(entry.TotalVolumeKg/float64(entry.TotalReps), 2)
		}
		if entry.TotalSets > 0 {
			entry.AvgReps = round(float64(entry.TotalReps)/float64(entry.TotalSets), 1)
		}
	}

	return summary
}

// TotalVolume sums weight*reps over every set of every workout. Used for the
// trailing-window progress comparison.
func TotalVolume(workouts []domain.Workout) float64 {
	var volume float64
	for _, workout := range workouts {
		for _, exercise := range workout.Exercises {
			for _, set := range exercise.Sets {
				volume += set.WeightKg * float64(set.Reps)
			}
		}
	}
	return volume
}

// round rounds half away from zero to the given number of decimal places.
func round(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}
