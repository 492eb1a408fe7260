// cmd/crm/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/mattn/go-isatty"

	"github.com/unclebandit/simple-crm/internal/client"
	"github.com/unclebandit/simple-crm/internal/config"
	"github.com/unclebandit/simple-crm/internal/console"
	"github.com/unclebandit/simple-crm/internal/form"
	"github.com/unclebandit/simple-crm/internal/listing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "crm:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	api := client.NewClient(cfg.Client.APIURL, cfg.Client.Timeout)
	term := console.New(os.Stdin, os.Stdout)

	app := &console.App{
		Console:  term,
		Form:     form.New(api, term),
		List:     listing.NewList(api, term, term),
		Activity: api,
	}
	if isatty.IsTerminal(os.Stdin.Fd()) {
		app.Prompt = "crm> "
		term.Printf("Connected to %s. Type help for commands.\n", cfg.Client.APIURL)
	}

	if err := app.Run(ctx); err != nil && ctx.Err() == nil {
		fmt.Fprintln(os.Stderr, "crm:", err)
		os.Exit(1)
	}
}
