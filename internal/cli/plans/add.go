package plans

import (
	"errors"
	"fmt"

	"github.com/julianstephens/weekendly/internal/cli"
	"github.com/julianstephens/weekendly/internal/constants"
	apperrors "github.com/julianstephens/weekendly/internal/errors"
	"github.com/julianstephens/weekendly/internal/models"
	"github.com/julianstephens/weekendly/internal/scheduler"
)

type AddCmd struct {
	ActivityID string `arg:"" help:"Catalog activity ID (see 'weekendly browse')."`
	Slot       string `arg:"" help:"Time slot, e.g. 9am, 2pm or 14:00."`
	Day        string `arg:"" help:"Day: friday, saturday, sunday or monday." default:"saturday"`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	activity, ok := ctx.Catalog.Get(c.ActivityID)
	if !ok {
		return fmt.Errorf("activity %q not found in the catalog", c.ActivityID)
	}
	slot, err := cli.ParseSlot(c.Slot)
	if err != nil {
		return err
	}
	day, err := cli.ParseDay(c.Day)
	if err != nil {
		return err
	}

	engine, err := ctx.Engine()
	if err != nil {
		return err
	}

	rec, err := engine.Schedule(activity, slot, day)
	if err != nil {
		return scheduleError(err, day, slot)
	}

	fmt.Printf("Added %s on %s at %s (%s-%s)\n", rec.Activity.Title, rec.Day, rec.TimeSlot, rec.StartTime(), rec.EndTime())
	fmt.Printf("  ID: %s\n", rec.ScheduledID)
	return nil
}

// scheduleError turns engine sentinels into user-facing messages
func scheduleError(err error, day models.Day, slot models.TimeSlot) error {
	switch {
	case errors.Is(err, scheduler.ErrSlotOccupied):
		return apperrors.WithMessage(err, fmt.Sprintf("%s: %s at %s", constants.SlotConflictMessage, day, slot))
	case errors.Is(err, scheduler.ErrNotFound):
		return apperrors.WithMessage(err, "no scheduled activity with that ID")
	}
	return err
}
