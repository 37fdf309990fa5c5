package cli

import (
	"errors"
	"fmt"

	"github.com/terraincognita07/herflow/internal/models"
	"github.com/terraincognita07/herflow/internal/services"
)

// RunStatusCommand prints today's status line followed by the prediction
// details that are available.
func RunStatusCommand(env Env) (err error) {
	env = env.withDefaults()

	store, closeStore, err := openStore(env)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, closeStore())
	}()

	snapshot := store.Snapshot()
	today := models.DateIn(env.Now(), env.Location)
	status := services.BuildCycleStatus(snapshot.Profile, snapshot.Periods, today)
	prediction := services.BuildCyclePrediction(snapshot.Profile, snapshot.Periods, today)

	fmt.Fprintln(env.Stdout, status.Message)
	if prediction.NextPeriodDate != nil {
		fmt.Fprintf(env.Stdout, "Next period: %s\n", prediction.NextPeriodDate)
	}
	if prediction.CycleDay != nil {
		fmt.Fprintf(env.Stdout, "Cycle day: %d\n", *prediction.CycleDay)
	}
	if services.SetupIncomplete(snapshot.Profile, snapshot.Periods) {
		fmt.Fprintln(env.Stdout, "Setup incomplete: finish onboarding to get predictions")
	}
	return nil
}
