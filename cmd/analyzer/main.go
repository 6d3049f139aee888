package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"github.com/twquant/daytrade-core/internal/analyzer"
	"github.com/twquant/daytrade-core/internal/cache"
	"github.com/twquant/daytrade-core/internal/config"
	"github.com/twquant/daytrade-core/internal/indicators"
	"github.com/twquant/daytrade-core/internal/levels"
	"github.com/twquant/daytrade-core/internal/logger"
	"github.com/twquant/daytrade-core/internal/monitoring"
	"github.com/twquant/daytrade-core/pkg/data"
	"github.com/twquant/daytrade-core/pkg/reporting"
)

func main() {
	var (
		symbol       = flag.String("symbol", "2330", "stock symbol to analyze")
		dataDir      = flag.String("data-dir", "data", "directory holding <symbol>.csv bar files")
		startStr     = flag.String("start", "", "start date YYYY-MM-DD (default: 120 days back)")
		endStr       = flag.String("end", "", "end date YYYY-MM-DD (default: today)")
		forceRefresh = flag.Bool("force", false, "skip the cache read and refresh from the provider")
		excelOut     = flag.String("excel", "", "optional path for an .xlsx export")
		cleanup      = flag.Bool("cleanup", false, "delete cache rows past the retention window and exit")
		logDir       = flag.String("log-dir", "logs", "directory for per-symbol session logs")
	)
	flag.Parse()

	// .env is optional; the environment itself wins either way.
	if err := godotenv.Load(); err == nil {
		log.Println("[INFO] loaded environment from .env")
	}
	cfg := config.Load()

	store, err := cache.Open(cfg.Cache.Path)
	if err != nil {
		log.Fatalf("open cache: %v", err)
	}
	defer store.Close()

	if *cleanup {
		if err := store.Cleanup(cfg.Cache.RetentionDays); err != nil {
			log.Fatalf("cleanup: %v", err)
		}
		if stats, err := store.DatabaseStats(); err == nil {
			log.Printf("[INFO] cache rows: prices=%d institutional=%d news=%d logs=%d",
				stats.PriceRows, stats.InstitutionalRows, stats.ActiveNewsRows, stats.QueryLogRows)
		}
		return
	}

	end := time.Now()
	start := end.AddDate(0, 0, -120)
	if *startStr != "" {
		if start, err = time.Parse("2006-01-02", *startStr); err != nil {
			log.Fatalf("bad -start: %v", err)
		}
	}
	if *endStr != "" {
		if end, err = time.Parse("2006-01-02", *endStr); err != nil {
			log.Fatalf("bad -end: %v", err)
		}
	}

	if cfg.Monitoring.PrometheusPort > 0 {
		go func() {
			addr := fmt.Sprintf(":%d", cfg.Monitoring.PrometheusPort)
			log.Printf("[INFO] metrics listening on %s", addr)
			if err := http.ListenAndServe(addr, monitoring.NewMetricsHandler()); err != nil {
				log.Printf("[WARN] metrics server: %v", err)
			}
		}()
	}

	sessionLog, err := logger.New(*logDir, *symbol)
	if err != nil {
		log.Fatalf("open session log: %v", err)
	}
	defer sessionLog.Close()

	levelCfg := levels.DefaultConfig()
	levelCfg.MaxLevels = cfg.Analysis.LevelCount
	levelCfg.MergeTolerance = cfg.Analysis.LevelTolerance

	pipeline := analyzer.New(
		store,
		data.NewCSVProvider(*dataDir),
		indicators.NewDefaultEngine(),
		levels.NewFinder(levelCfg),
		cfg.Analysis.RiskRewardRatio,
	)

	result, err := pipeline.Analyze(*symbol, start, end, *forceRefresh)
	if err != nil {
		sessionLog.Error("analysis failed: %v", err)
		log.Fatalf("analyze %s: %v", *symbol, err)
	}
	sessionLog.Analysis("score=%+d recommendation=%s rules=%d",
		result.Signal.Score, result.Signal.Recommendation, len(result.Signal.Triggered))

	reporting.NewConsoleReporter().Print(result)

	if *excelOut != "" {
		if err := reporting.NewExcelReporter().Export(result, *excelOut); err != nil {
			log.Fatalf("excel export: %v", err)
		}
		log.Printf("[INFO] workbook written to %s", *excelOut)
	}
}
