package web

import (
	"log"
	"net/http"

	"datahealth_api/internal/health/app/web/handlers"
	"datahealth_api/metrics"
)

// SetupRoutes checks database connectivity for every handler and
// registers the API routes.
func SetupRoutes(handlerList ...handlers.Handler) {
	handlerMap := make(map[string]handlers.Handler)

	for _, handler := range handlerList {
		switch h := handler.(type) {
		case *handlers.OverviewHandler:
			handlerMap["OverviewHandler"] = h
		case *handlers.HealthHandler:
			handlerMap["HealthHandler"] = h
		case *handlers.InsightHandler:
			handlerMap["InsightHandler"] = h
		case *handlers.TrendsHandler:
			handlerMap["TrendsHandler"] = h
		case *handlers.ReportHandler:
			handlerMap["ReportHandler"] = h
		case *handlers.SyncHandler:
			handlerMap["SyncHandler"] = h
		default:
			log.Printf("Unknown handler type: %T", h)
		}
	}

	for _, handler := range handlerMap {
		if err := handler.Ping(); err != nil {
			log.Fatalf("Failed to ping database: %v", err)
		}
	}

	if overviewHandler, ok := handlerMap["OverviewHandler"].(*handlers.OverviewHandler); ok {
		http.HandleFunc("/api/overview", overviewHandler.GetOverviewHandler)
		http.HandleFunc("/api/scores", overviewHandler.GetScoresHandler)
	} else {
		log.Fatalf("OverviewHandler not provided")
	}

	if healthHandler, ok := handlerMap["HealthHandler"].(*handlers.HealthHandler); ok {
		http.HandleFunc("/api/health", healthHandler.GetHealthHandler)
	} else {
		log.Fatalf("HealthHandler not provided")
	}

	if insightHandler, ok := handlerMap["InsightHandler"].(*handlers.InsightHandler); ok {
		http.HandleFunc("/api/issues", insightHandler.GetIssuesHandler)
		http.HandleFunc("/api/recommendations", insightHandler.GetRecommendationsHandler)
	} else {
		log.Fatalf("InsightHandler not provided")
	}

	if trendsHandler, ok := handlerMap["TrendsHandler"].(*handlers.TrendsHandler); ok {
		http.HandleFunc("/api/trends", trendsHandler.GetTrendsHandler)
	} else {
		log.Fatalf("TrendsHandler not provided")
	}

	if reportHandler, ok := handlerMap["ReportHandler"].(*handlers.ReportHandler); ok {
		http.HandleFunc("/api/reports/", reportHandler.GetReportHandler)
	} else {
		log.Fatalf("ReportHandler not provided")
	}

	if syncHandler, ok := handlerMap["SyncHandler"].(*handlers.SyncHandler); ok {
		http.HandleFunc("/api/sync", syncHandler.PostSyncHandler)
	} else {
		log.Fatalf("SyncHandler not provided")
	}

	http.Handle("/metrics", metrics.MetricsHandler())
}
