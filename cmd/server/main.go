package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/dmitrijs2005/savespace/internal/flagx"
	"github.com/dmitrijs2005/savespace/internal/server"
	"github.com/dmitrijs2005/savespace/internal/server/config"
	"github.com/dmitrijs2005/savespace/internal/server/services"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()

	var token string
	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.StringVar(&token, "token", "", "identity token of the user whose catalog to list")
	if err := fs.Parse(flagx.FilterArgs(os.Args[1:], []string{"-token"})); err != nil {
		log.Fatalf("%v", err)
	}

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Printf("%v", err)
		return
	}
	defer app.Close()

	user, err := app.UserFromToken(token)
	if err != nil {
		log.Printf("invalid token: %v", err)
		return
	}

	refs, err := app.Catalog().Refresh(ctx, user)
	if err != nil {
		log.Printf("refresh failed: %v", err)
		return
	}
	cats, err := app.Catalog().Categories(ctx, user)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSIZE\tCATEGORY")
	for _, ref := range refs {
		fmt.Fprintf(w, "%s\t%s\t%s\n", ref.Name, ref.SizeLabel, services.CategoryName(cats, ref.CategoryID))
	}
	w.Flush()
}
