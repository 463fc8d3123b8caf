// Package app wires config, storage and handlers into a ready router.
package app

import (
	"fmt"

	"github.com/arnavshah/care-rota-api/pkg/auth"
	"github.com/arnavshah/care-rota-api/pkg/config"
	"github.com/arnavshah/care-rota-api/pkg/database"
	"github.com/arnavshah/care-rota-api/pkg/handlers"
	"github.com/arnavshah/care-rota-api/pkg/loader"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// New opens the database, seeds the admin account, loads the default
// rule set and returns the router.
func New(cfg *config.Config, log *zap.Logger) (*gin.Engine, error) {
	if cfg.GinMode == "" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(cfg.GinMode)
	}

	db, err := database.Open(cfg.DatabaseURL, cfg.DataPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	created, err := auth.EnsureAdminExists(db, cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}
	if created {
		log.Info("created admin user", zap.String("username", cfg.AdminUsername))
	}

	h := handlers.NewHandler(db, log)
	if cfg.DefaultRulesPath != "" {
		rules, err := loader.LoadRules(cfg.DefaultRulesPath)
		if err != nil {
			return nil, fmt.Errorf("load default rules: %w", err)
		}
		h.Rules = rules
		log.Info("loaded default rules",
			zap.String("path", cfg.DefaultRulesPath),
			zap.Int("exact", len(rules.Exact)),
			zap.Int("range", len(rules.Range)),
		)
	}

	return handlers.NewRouter(h), nil
}
