package service

import (
	"context"
	"log"

	"github.com/CHUNCHUNMARU-d/GYM/internal/config"
	"github.com/CHUNCHUNMARU-d/GYM/internal/repository"
)

// defaultExercise is one library entry created on first startup.
type defaultExercise struct {
	name        string
	muscleGroup string
	tips        string
}

var defaultExercises = []defaultExercise{
	{"Bench Press", "Chest", "Keep your shoulder blades retracted and feet planted. Lower the bar to mid-chest with control."},
	{"Squat", "Legs", "Brace your core before descending. Drive through the whole foot and keep knees tracking over toes."},
	{"Deadlift", "Back", "Set your lats before pulling. Keep the bar close to your shins and hinge, don't squat, the weight up."},
	{"Overhead Press", "Shoulders", "Squeeze your glutes to avoid arching. Press slightly back so the bar finishes over mid-foot."},
	{"Barbell Row", "Back", "Hinge to roughly 45 degrees. Pull to your lower ribs and pause briefly at the top."},
	{"Pull-ups", "Back", "Start each rep from a dead hang. Lead with the chest and avoid kipping."},
	{"Dips", "Chest", "Lean slightly forward for chest emphasis. Stop when your upper arms reach parallel."},
	{"Bicep Curls", "Arms", "Pin your elbows to your sides. Control the lowering phase; no swinging."},
	{"Tricep Extensions", "Arms", "Keep your elbows tucked and stationary. Full stretch at the bottom, full lockout at the top."},
	{"Leg Press", "Legs", "Do not let your lower back round off the pad. Lower until your thighs are just past 90 degrees."},
}

// SeedDefaults populates an empty database with the default coach account
// and the starter exercise library. Safe to call on every startup: it only
// writes when the respective collection is empty.
func SeedDefaults(
	ctx context.Context,
	coachRepo repository.CoachRepository,
	exerciseRepo repository.ExerciseRepository,
	authService AuthService,
	exerciseService ExerciseService,
	seedCfg config.SeedConfig,
) error {
	coachCount, err := coachRepo.Count(ctx)
	if err != nil {
		return err
	}
	if coachCount == 0 {
		if _, err := authService.RegisterCoach(ctx, seedCfg.CoachUsername, seedCfg.CoachPassword, seedCfg.CoachName, ""); err != nil {
			return err
		}
		log.Printf("Seeded default coach account '%s'", seedCfg.CoachUsername)
	}

	exerciseCount, err := exerciseRepo.Count(ctx)
	if err != nil {
		return err
	}
	if exerciseCount == 0 {
		for _, ex := range defaultExercises {
			if _, err := exerciseService.CreateExercise(ctx, ex.name, ex.muscleGroup, ex.tips); err != nil {
				return err
			}
		}
		log.Printf("Seeded %d default exercises", len(defaultExercises))
	}

	return nil
}
