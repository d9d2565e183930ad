package main

import (
	"context"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"bid-finder/config"
	"bid-finder/middleware"
	"bid-finder/query"
	"bid-finder/services"
)

// datasetQuerier beantwortet die Datenset-Endpunkte.
type datasetQuerier interface {
	Query(ctx context.Context, req services.QueryRequest) (*services.QueryResult, error)
	Dump(ctx context.Context, ds query.Dataset) (*services.DumpResult, error)
}

// metadataReader beantwortet /api/metadata.
type metadataReader interface {
	Metadata(ctx context.Context) (*services.Metadata, error)
}

// setupRouter baut den Router mit Middleware und allen Routen auf.
func setupRouter(cfg *config.Config, log *zap.Logger, queries datasetQuerier, history metadataReader) (*gin.Engine, error) {
	cors, err := middleware.CORS(cfg.AllowedOrigins, cfg.AllowedOriginRegex)
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestLogger(log))
	router.Use(cors)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if info, err := os.Stat(cfg.AssetsDir); err == nil && info.IsDir() {
		router.Static("/assets", cfg.AssetsDir)
		log.Info("Serving static assets", zap.String("dir", cfg.AssetsDir))
	}

	setupHealthRoutes(router)
	setupDatasetRoutes(router, queries, history, log)
	return router, nil
}

func setupHealthRoutes(router *gin.Engine) {
	health := func(c *gin.Context) {
		c.Status(http.StatusOK)
	}
	router.GET("/health", health)
	router.HEAD("/health", health)
}

func setupDatasetRoutes(router *gin.Engine, queries datasetQuerier, history metadataReader, log *zap.Logger) {
	rg := router.Group("/api")

	rg.GET("/metadata", func(c *gin.Context) {
		meta, err := history.Metadata(c.Request.Context())
		if err != nil {
			internalError(c, log, "Failed to read metadata", err)
			return
		}
		c.JSON(http.StatusOK, meta)
	})

	for _, ds := range query.Datasets {
		ds := ds
		rg.GET("/"+ds.Name, func(c *gin.Context) {
			res, err := queries.Dump(c.Request.Context(), ds)
			if err != nil {
				internalError(c, log, "Failed to read dataset", err, zap.String("dataset", ds.Name))
				return
			}
			c.JSON(http.StatusOK, gin.H{"success": true, "data": res.Data, "count": res.Count})
		})
	}

	rg.POST("/query", func(c *gin.Context) {
		var req services.QueryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
			return
		}
		res, err := queries.Query(c.Request.Context(), req)
		if err != nil {
			internalError(c, log, "Query failed", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "df1": res.Standard, "df2": res.Extended})
	})
}

// internalError protokolliert err und antwortet mit 500, ohne Details preiszugeben.
func internalError(c *gin.Context, log *zap.Logger, msg string, err error, fields ...zap.Field) {
	requestID := middleware.GetRequestID(c)
	log.Error(msg, append(fields, zap.Error(err), zap.String("request_id", requestID))...)
	c.JSON(http.StatusInternalServerError, gin.H{
		"success":    false,
		"error":      "internal server error",
		"request_id": requestID,
	})
}
