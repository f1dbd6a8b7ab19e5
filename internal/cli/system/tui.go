package system

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/weekendly/internal/cli"
	"github.com/julianstephens/weekendly/internal/models"
	"github.com/julianstephens/weekendly/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	engine, err := ctx.Engine()
	if err != nil {
		return err
	}

	lookupCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	weekend := ctx.Holidays(settings).WeekendDays(lookupCtx, time.Now()).Data
	cancel()

	base := models.SearchFilters{
		Location:     settings.Home(),
		RadiusMeters: settings.RadiusMeters,
	}.WithDefaults(settings.DefaultLimit)
	search := tui.WithSearch(ctx.Manager(settings).GetMixedActivities, base)

	p := tea.NewProgram(tui.NewModel(engine, weekend, search), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui failed: %w", err)
	}
	return nil
}
