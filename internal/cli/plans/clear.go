package plans

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/weekendly/internal/cli"
)

type ClearCmd struct {
	Yes bool `help:"Skip the confirmation prompt." short:"y"`
}

func (c *ClearCmd) Run(ctx *cli.Context) error {
	engine, err := ctx.Engine()
	if err != nil {
		return err
	}

	count := len(engine.All())
	if count == 0 {
		fmt.Println("Nothing to clear")
		return nil
	}

	if !c.Yes {
		confirmed := false
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Remove all %d scheduled activities?", count)).
			Affirmative("Clear").
			Negative("Cancel").
			Value(&confirmed).
			Run()
		if err != nil {
			return fmt.Errorf("confirmation failed: %w", err)
		}
		if !confirmed {
			fmt.Println("Cancelled")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()
	engine.ClearAllActivities()
	fmt.Printf("Cleared %d activities\n", count)
	return nil
}
