package main

import (
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"go-hrm/internal/app"
	"go-hrm/internal/shared/apperror"
)

func main() {
	_ = godotenv.Load()

	logger := zap.Must(zap.NewDevelopment())
	defer logger.Sync()
	zap.ReplaceGlobals(logger)
	apperror.Init()

	if err := app.RunWorker(); err != nil {
		logger.Fatal("worker exited", zap.Error(err))
	}
}
