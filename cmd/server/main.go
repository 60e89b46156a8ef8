package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/soilpredictor/soil-api/internal/config"
	"github.com/soilpredictor/soil-api/internal/dataset"
	"github.com/soilpredictor/soil-api/internal/handlers"
	"github.com/soilpredictor/soil-api/internal/model"
	"github.com/soilpredictor/soil-api/internal/soil"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("[Main] Failed to load config: %v", err)
	}
	log.SetLevel(cfg.Level())
	if cfg.ReleaseMode {
		log.Info("[Main] Starting gin in release mode")
		gin.SetMode(gin.ReleaseMode)
	}

	opts := handlers.Options{
		ImagesDir:   cfg.ImagesDir,
		ImageWidth:  cfg.ImageWidth,
		PreviewRows: cfg.PreviewRows,
	}

	log.Infof("[Main] Loading model from: %s", cfg.ModelPath)
	modelServer, err := model.NewServer(cfg.ModelPath, cfg.MetadataPath, model.WithLibraryPath(cfg.OnnxLibraryPath))
	if err != nil {
		// Prediction stays disabled; the rest of the dashboard still works.
		log.WithError(err).Error("[Main] Error loading the model")
		opts.ModelErr = err
		opts.Predictor = soil.NewPredictor(nil)
	} else {
		defer modelServer.Close()
		opts.Predictor = soil.NewPredictor(modelServer)
		opts.Classes = modelServer.Metadata.Classes
		log.Infof("[Main] Classes: %v", modelServer.Metadata.Classes)
	}

	ds, err := dataset.Load(cfg.DatasetPath)
	if err != nil {
		log.WithError(err).Error("[Main] Error loading the dataset")
		opts.DatasetErr = err
	} else {
		opts.Dataset = ds
		log.Infof("[Main] Dataset loaded: %d rows, %d skipped", len(ds.Rows), ds.Skipped)
		for _, s := range ds.Describe() {
			log.Debugf("[Main] %s", s)
		}
	}

	router, err := handlers.NewRouter(handlers.NewHandler(opts))
	if err != nil {
		log.Fatalf("[Main] Failed to build router: %v", err)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Infof("[Main] Server starting on port %s", cfg.Port)
	log.Info("[Main] Endpoints:")
	log.Info("  GET  /                  - About")
	log.Info("  GET  /predict           - Soil prediction form")
	log.Info("  GET  /visualize         - Dataset dashboard")
	log.Info("  POST /api/predict       - JSON prediction")
	log.Info("  GET  /api/dataset/...   - Chart data")
	log.Info("  GET  /health            - Health check")

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[Main] Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("[Main] Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("[Main] Graceful shutdown failed")
	}
}
