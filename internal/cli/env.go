package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/terraincognita07/herflow/internal/db"
	"github.com/terraincognita07/herflow/internal/models"
	"github.com/terraincognita07/herflow/internal/services"
)

// Env carries what every command needs to reach the local database.
type Env struct {
	DBPath   string
	Theme    models.Theme
	Location *time.Location
	Logger   *slog.Logger
	Stdout   io.Writer
	Now      func() time.Time
}

func (env Env) withDefaults() Env {
	if env.Theme == "" {
		env.Theme = models.ThemeModern
	}
	if env.Location == nil {
		env.Location = time.UTC
	}
	if env.Logger == nil {
		env.Logger = slog.Default()
	}
	if env.Stdout == nil {
		env.Stdout = os.Stdout
	}
	if env.Now == nil {
		env.Now = time.Now
	}
	return env
}

// openStore opens the database and loads the domain store. The returned
// close function closes the store and then the database.
var openStore = func(env Env) (*services.DomainStore, func() error, error) {
	database, err := db.OpenSQLite(env.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("database init failed: %w", err)
	}

	store := services.NewDomainStore(db.NewStateRepository(database), env.Logger, models.Settings{Theme: env.Theme})
	if err := store.Load(); err != nil {
		_ = db.Close(database)
		return nil, nil, fmt.Errorf("load state: %w", err)
	}

	closeFn := func() error {
		return errors.Join(store.Close(), db.Close(database))
	}
	return store, closeFn, nil
}
