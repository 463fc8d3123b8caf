package handler

import (
	"net/http"

	"github.com/arnavshah/care-rota-api/pkg/app"
	"github.com/arnavshah/care-rota-api/pkg/config"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var r *gin.Engine

func init() {
	// local testing with vercel dev
	config.LoadEnv()
	cfg := config.Load()

	log, err := cfg.NewLogger()
	if err != nil {
		log = zap.NewNop()
	}

	r, err = app.New(cfg, log)
	if err != nil {
		log.Fatal("startup failed", zap.Error(err))
	}
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, req *http.Request) {
	r.ServeHTTP(w, req)
}
