// Command createuser inserts an activated user account directly into the
// database. It exists for bootstrapping: the first accounts of a fresh
// deployment are created here, after which registration plus activation
// through the API takes over.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"github.com/dmitrijs2005/fileshare/internal/flagx"
	"github.com/dmitrijs2005/fileshare/internal/server/config"
	"github.com/dmitrijs2005/fileshare/internal/server/models"
	"github.com/dmitrijs2005/fileshare/internal/server/repositories/repomanager"
)

func main() {

	// Only -email is handled here; the connection flags are parsed by the
	// config layer, so the argument lists must not collide.
	fs := flag.NewFlagSet("createuser", flag.ExitOnError)
	email := fs.String("email", "", "email of the account to create")
	if err := fs.Parse(flagx.FilterArgs(os.Args[1:], []string{"-email"})); err != nil {
		log.Fatalf("%v", err)
	}

	if strings.TrimSpace(*email) == "" {
		fs.Usage()
		os.Exit(2)
	}

	password, err := promptPassword()
	if err != nil {
		log.Fatalf("%v", err)
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

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash error: %v", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        strings.TrimSpace(strings.ToLower(*email)),
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}
	if err := rm.Users(db).Create(ctx, user); err != nil {
		log.Fatalf("create user error: %v", err)
	}

	fmt.Printf("created user %s (%s)\n", user.ID, user.Email)
}

func promptPassword() (string, error) {
	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	fmt.Print("Repeat password: ")
	confirm, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	if string(password) != string(confirm) {
		return "", fmt.Errorf("passwords do not match")
	}
	if len(password) < 8 {
		return "", fmt.Errorf("password must be at least 8 characters")
	}
	return string(password), nil
}
