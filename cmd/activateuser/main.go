// Command activateuser marks a registered account as active. Activation is an
// explicit administrative step; self-registered accounts stay inactive until
// it runs.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/dmitrijs2005/fileshare/internal/flagx"
	"github.com/dmitrijs2005/fileshare/internal/logging"
	"github.com/dmitrijs2005/fileshare/internal/server/config"
	"github.com/dmitrijs2005/fileshare/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/fileshare/internal/server/services"
)

func main() {

	fs := flag.NewFlagSet("activateuser", flag.ExitOnError)
	userID := fs.String("id", "", "id of the account to activate")
	if err := fs.Parse(flagx.FilterArgs(os.Args[1:], []string{"-id"})); err != nil {
		log.Fatalf("%v", err)
	}

	if strings.TrimSpace(*userID) == "" {
		fs.Usage()
		os.Exit(2)
	}

	cfg := config.LoadConfig()

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		log.Fatalf("db migration error: %v", err)
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	userService := services.NewUserService(db, rm, cfg, logger)

	if err := userService.Activate(ctx, *userID); err != nil {
		log.Fatalf("activate error: %v", err)
	}

	fmt.Printf("activated user %s\n", *userID)
}
