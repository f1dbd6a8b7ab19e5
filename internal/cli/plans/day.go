package plans

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/weekendly/internal/cli"
	"github.com/julianstephens/weekendly/internal/constants"
	"github.com/julianstephens/weekendly/internal/holidays"
	"github.com/julianstephens/weekendly/internal/models"
)

type DayCmd struct {
	Day  string `arg:"" help:"Day to show." default:"saturday"`
	Free bool   `help:"Also list the free time slots."`
}

func (c *DayCmd) Run(ctx *cli.Context) error {
	day, err := cli.ParseDay(c.Day)
	if err != nil {
		return err
	}
	engine, err := ctx.Engine()
	if err != nil {
		return err
	}

	fmt.Print(renderAgenda(day, engine.Agenda(day), ""))

	if c.Free {
		free := engine.FreeSlots(day)
		fmt.Printf("\nFree slots (%d): ", len(free))
		for i, s := range free {
			if i > 0 {
				fmt.Print(", ")
			}
			fmt.Print(s)
		}
		fmt.Println()
	}
	return nil
}

type WeekendCmd struct {
	Date string `help:"Any date before the weekend to check (YYYY-MM-DD or 'today')." default:"today"`
}

func (c *WeekendCmd) Run(ctx *cli.Context) error {
	from := time.Now()
	if c.Date != "today" {
		var err error
		from, err = time.ParseInLocation(constants.DateFormat, c.Date, time.Local)
		if err != nil {
			return fmt.Errorf("invalid date format, use YYYY-MM-DD or 'today': %w", err)
		}
	}

	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	engine, err := ctx.Engine()
	if err != nil {
		return err
	}

	resp := ctx.Holidays(settings).WeekendDays(context.Background(), from)
	weekend := resp.Data
	if len(weekend.Days) == 0 {
		weekend = holidays.Weekend{Saturday: holidays.NextSaturday(from), Days: models.PrimaryDays}
	}

	label := "Weekend"
	if weekend.IsLongWeekend() {
		label = "Long weekend"
	}
	fmt.Printf("%s of %s (%s)\n", label, weekend.Saturday.Format(constants.DateFormat), settings.Country)
	if resp.Source == constants.SourceFallback {
		fmt.Println(mutedStyle.Render("Holiday lookup unavailable, showing saturday and sunday"))
	}
	fmt.Println()

	for _, day := range weekend.Days {
		fmt.Print(renderAgenda(day, engine.Agenda(day), weekend.Holidays[string(day)]))
		fmt.Println()
	}

	sum := engine.Summary()
	fmt.Printf("%d planned, %d done, %d minutes total\n", sum.Count, sum.Completed, sum.TotalMinutes)
	return nil
}
