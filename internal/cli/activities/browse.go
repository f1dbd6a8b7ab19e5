package activities

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/weekendly/internal/cli"
	"github.com/julianstephens/weekendly/internal/models"
)

var (
	idStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	titleStyle = lipgloss.NewStyle().Bold(true)
	metaStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type BrowseCmd struct {
	cli.FilterFlags `embed:""`

	Source string `help:"Query a single source (places, movies, games, fixture) instead of mixing all of them." short:"s"`
}

func (c *BrowseCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	filters, err := c.Filters(settings)
	if err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	manager := ctx.Manager(settings)
	var resp models.ActivityResponse
	if c.Source != "" {
		var ok bool
		resp, ok = manager.GetActivities(runCtx, c.Source, filters)
		if !ok {
			return fmt.Errorf("unknown source %q, expected one of: %s", c.Source, strings.Join(manager.Adapters(), ", "))
		}
	} else {
		resp = manager.GetMixedActivities(runCtx, filters)
	}

	printActivities(resp)
	return nil
}

type RecommendCmd struct {
	cli.FilterFlags `embed:""`
}

// Run routes each requested mood to the sources best suited to it
func (c *RecommendCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	filters, err := c.Filters(settings)
	if err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	printActivities(ctx.Manager(settings).GetSmartRecommendations(runCtx, filters))
	return nil
}

func printActivities(resp models.ActivityResponse) {
	if len(resp.Data) == 0 {
		if resp.Error != "" {
			fmt.Printf("No activities found: %s\n", resp.Error)
		} else {
			fmt.Println("No activities found")
		}
		return
	}

	for _, a := range resp.Data {
		fmt.Printf("%s  %s\n", idStyle.Render(a.ID), titleStyle.Render(a.Title))
		fmt.Printf("    %s\n", metaStyle.Render(describe(a)))
	}
	fmt.Printf("\n%d activities (source: %s)\n", len(resp.Data), resp.Source)
}

func describe(a models.Activity) string {
	moods := make([]string, len(a.Mood))
	for i, m := range a.Mood {
		moods[i] = string(m)
	}
	parts := []string{string(a.Category), fmt.Sprintf("%dm", a.DurationMin)}
	if a.Price != "" {
		parts = append(parts, string(a.Price))
	}
	if a.WeatherDependent {
		parts = append(parts, "outdoor")
	}
	parts = append(parts, strings.Join(moods, "/"))
	return strings.Join(parts, ", ")
}
