package system

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/weekendly/internal/cli"
	"github.com/julianstephens/weekendly/internal/server"
)

type ServeCmd struct {
	Addr string `help:"Listen address. Defaults to WEEKENDLY_LISTEN_ADDR or :8080."`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	engine, err := ctx.Engine()
	if err != nil {
		return err
	}

	deps := server.Deps{
		Engine:   engine,
		Manager:  ctx.Manager(settings),
		Catalog:  ctx.Catalog,
		Holidays: ctx.Holidays(settings),
	}
	for _, cl := range ctx.Clients() {
		deps.Sweepers = append(deps.Sweepers, cl)
	}

	addr := c.Addr
	if addr == "" {
		addr = ctx.Config.ListenAddr
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Serving weekendly on %s (Ctrl+C to stop)\n", addr)
	return server.New(deps).Run(runCtx, addr, ctx.Config.SweepSpec)
}
