package plans

import (
	"fmt"

	"github.com/julianstephens/weekendly/internal/cli"
)

type RemoveCmd struct {
	ID string `arg:"" help:"Scheduled activity ID."`
}

func (c *RemoveCmd) Run(ctx *cli.Context) error {
	engine, err := ctx.Engine()
	if err != nil {
		return err
	}
	rec, _ := engine.Get(c.ID)
	removed, err := engine.Remove(c.ID)
	if err != nil {
		return fmt.Errorf("failed to remove activity: %w", err)
	}
	if !removed {
		fmt.Printf("Nothing scheduled with ID %s\n", c.ID)
		return nil
	}
	fmt.Printf("Removed %s from %s at %s\n", rec.Activity.Title, rec.Day, rec.TimeSlot)
	return nil
}

type MoveCmd struct {
	ID   string `arg:"" help:"Scheduled activity ID."`
	Slot string `arg:"" help:"New time slot."`
	Day  string `arg:"" help:"New day." optional:""`
}

func (c *MoveCmd) Run(ctx *cli.Context) error {
	engine, err := ctx.Engine()
	if err != nil {
		return err
	}
	rec, ok := engine.Get(c.ID)
	if !ok {
		return fmt.Errorf("no scheduled activity with ID %s", c.ID)
	}

	slot, err := cli.ParseSlot(c.Slot)
	if err != nil {
		return err
	}
	day := rec.Day
	if c.Day != "" {
		if day, err = cli.ParseDay(c.Day); err != nil {
			return err
		}
	}

	if err := engine.Move(c.ID, slot, day); err != nil {
		return scheduleError(err, day, slot)
	}
	fmt.Printf("Moved %s to %s at %s\n", rec.Activity.Title, day, slot)
	return nil
}

type CompleteCmd struct {
	ID   string `arg:"" help:"Scheduled activity ID."`
	Done *bool  `help:"Set completion explicitly (--done or --done=false) instead of toggling."`
}

func (c *CompleteCmd) Run(ctx *cli.Context) error {
	engine, err := ctx.Engine()
	if err != nil {
		return err
	}
	rec, err := engine.SetCompleted(c.ID, c.Done)
	if err != nil {
		return scheduleError(err, "", "")
	}
	state := "not done"
	if rec.Completed {
		state = "done"
	}
	fmt.Printf("Marked %s as %s\n", rec.Activity.Title, state)
	return nil
}

type ReorderCmd struct {
	Day  string `arg:"" help:"Day whose agenda to reorder."`
	From int    `arg:"" help:"Current position (as listed by 'weekendly day')."`
	To   int    `arg:"" help:"New position."`
}

// Run changes the listing order only. Time slots stay as they are.
func (c *ReorderCmd) Run(ctx *cli.Context) error {
	day, err := cli.ParseDay(c.Day)
	if err != nil {
		return err
	}
	engine, err := ctx.Engine()
	if err != nil {
		return err
	}
	if !engine.ReorderActivities(day, c.From-1, c.To-1) {
		return fmt.Errorf("cannot move position %d to %d on %s (%d activities)", c.From, c.To, day, len(engine.Agenda(day)))
	}
	fmt.Print(renderAgenda(day, engine.Agenda(day), ""))
	return nil
}
