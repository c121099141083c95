package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abhayypatel/HeartDiseaseRiskPrediction/internal/adapters/scoring"
	"github.com/abhayypatel/HeartDiseaseRiskPrediction/internal/adapters/storage"
	service "github.com/abhayypatel/HeartDiseaseRiskPrediction/internal/app"
	"github.com/abhayypatel/HeartDiseaseRiskPrediction/internal/config"
	"github.com/abhayypatel/HeartDiseaseRiskPrediction/internal/domain/record"
	"github.com/abhayypatel/HeartDiseaseRiskPrediction/internal/domain/risk"
	"github.com/abhayypatel/HeartDiseaseRiskPrediction/internal/identity"
	"github.com/abhayypatel/HeartDiseaseRiskPrediction/pkg/logger"
	"github.com/abhayypatel/HeartDiseaseRiskPrediction/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTP server timeout constants for the optional metrics listener.
const (
	metricsReadHeaderTimeout = 5 * time.Second
	historySettleTimeout     = 2 * time.Second
	historyPollInterval      = 25 * time.Millisecond
)

// fieldFlags mirrors the patient form. The five free-text numeric fields
// stay strings so the normalizer sees exactly what the user typed.
type fieldFlags struct {
	age, trestbps, chol, thalach, oldpeak *string
	sex, cp, fbs, restecg, exang          *int
	slope, ca, thal                       *int
}

func main() {
	var (
		serviceURL = flag.String("url", "", "Base URL of the scoring service (overrides config)")
		timeout    = flag.Duration("timeout", 0, "HTTP request timeout (overrides config)")
		randomize  = flag.Bool("random", false, "Sample a random patient record instead of using field flags")
	)
	fields := fieldFlags{
		age:      flag.String("age", "50", "Age in years"),
		trestbps: flag.String("trestbps", "120", "Resting blood pressure (mmHg)"),
		chol:     flag.String("chol", "200", "Serum cholesterol (mg/dl)"),
		thalach:  flag.String("thalach", "150", "Maximum heart rate achieved"),
		oldpeak:  flag.String("oldpeak", "0", "ST depression induced by exercise"),
		sex:      flag.Int("sex", 1, "Sex (0 female, 1 male)"),
		cp:       flag.Int("cp", 1, "Chest pain type (0-3)"),
		fbs:      flag.Int("fbs", 0, "Fasting blood sugar > 120 mg/dl (0 or 1)"),
		restecg:  flag.Int("restecg", 0, "Resting ECG result (0-2)"),
		exang:    flag.Int("exang", 0, "Exercise induced angina (0 or 1)"),
		slope:    flag.Int("slope", 1, "Slope of peak exercise ST segment (0-2)"),
		ca:       flag.Int("ca", 0, "Number of major vessels (0-3)"),
		thal:     flag.Int("thal", 2, "Thalassemia category (1-3)"),
	}
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	if *serviceURL != "" {
		cfg.ServiceURL = *serviceURL
	}
	if *timeout > 0 {
		cfg.TimeoutMS = int(timeout.Milliseconds())
	}

	// Durable identity; a broken state store degrades to a session-scoped
	// identity rather than failing the run.
	var kv identity.KV
	if store, err := storage.Open(cfg.StatePath); err != nil {
		log.Warn(ctx, "state store unavailable; identity will not persist",
			logger.String("path", cfg.StatePath), logger.Error(err))
	} else {
		kv = store
		defer func() { _ = store.Close() }()
	}
	userID := identity.New(kv, identity.WithLogger(log)).GetOrCreate(ctx)
	log.Debug(ctx, "using identity", logger.String("user_id", userID))

	if cfg.MetricsAddr != "" {
		go serveMetrics(ctx, cfg.MetricsAddr, log)
	}

	client := scoring.New(cfg.ServiceURL, scoring.WithTimeout(time.Duration(cfg.TimeoutMS)*time.Millisecond))
	if err := client.Ping(ctx); err != nil {
		log.Warn(ctx, "scoring service health check failed", logger.Error(err))
	}

	cache := service.NewCache(client, service.WithCacheLogger(log))
	// Initial load; failure keeps an empty cache and is advisory only.
	_ = cache.Refresh(ctx, userID)
	sess := service.NewSession(client, cache, userID, service.WithLogger(log))

	rec := buildRecord(*randomize, fields)
	if *randomize {
		fmt.Printf("Sampled patient: age %.0f, bp %.0f, chol %.0f, max hr %.0f, oldpeak %.1f\n",
			rec.Age, rec.RestingBP, rec.Cholesterol, rec.MaxHeartRate, rec.OldPeak)
	}

	refreshedAfter := cache.LastRefresh()
	result, err := sess.Submit(ctx, rec)
	if err != nil {
		os.Stderr.WriteString("Prediction failed: " + sess.ErrorMessage() + "\n")
		return
	}

	tier := risk.Classify(result.Probability)
	fmt.Printf("\nHeart disease risk: %.1f%% (%s risk)\n", result.Probability*100, tier)
	if len(result.TopFeatures) > 0 {
		fmt.Println("Top contributing factors:")
		for _, f := range result.TopFeatures {
			fmt.Printf("  %-45s %+.3f\n", f.Feature, f.Importance)
		}
	}

	waitForHistory(ctx, cache, refreshedAfter)
	printHistory(cache, cfg.HistoryLimit)
}

// buildRecord turns flag state into a submission-ready record, either by
// sampling or by normalizing the raw field values.
func buildRecord(randomize bool, f fieldFlags) record.FeatureRecord {
	if randomize {
		return record.Random()
	}
	return record.Normalize(record.FormInput{
		Age:            *f.age,
		RestingBP:      *f.trestbps,
		Cholesterol:    *f.chol,
		MaxHeartRate:   *f.thalach,
		OldPeak:        *f.oldpeak,
		Sex:            *f.sex,
		ChestPain:      *f.cp,
		FastingBS:      *f.fbs,
		RestingECG:     *f.restecg,
		ExerciseAngina: *f.exang,
		Slope:          *f.slope,
		VesselCount:    *f.ca,
		Thalassemia:    *f.thal,
	}, record.DefaultValues())
}

// waitForHistory gives the post-submission refresh a short settle window so
// the printed history usually includes the prediction just made. The
// refresh stays fire-and-forget; a stale print is acceptable.
func waitForHistory(ctx context.Context, cache *service.Cache, since time.Time) {
	deadline := time.Now().Add(historySettleTimeout)
	for time.Now().Before(deadline) {
		if ctx.Err() != nil {
			return
		}
		if cache.LastRefresh().After(since) {
			return
		}
		time.Sleep(historyPollInterval)
	}
}

func printHistory(cache *service.Cache, limit int) {
	entries := cache.Entries()
	if len(entries) == 0 {
		fmt.Println("\nNo prediction history yet")
		return
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	fmt.Printf("\nPrediction history (%d shown):\n", len(entries))
	for _, e := range entries {
		when := e.Timestamp
		if ts, err := e.At(); err == nil {
			when = ts.Format("2006-01-02 15:04")
		}
		fmt.Printf("  %s  %5.1f%%  %s risk\n", when, e.Probability*100, risk.Classify(e.Probability))
	}
}

// serveMetrics exposes the Prometheus registry for scrape-based monitoring.
func serveMetrics(ctx context.Context, addr string, log logger.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: metricsReadHeaderTimeout,
	}
	log.Info(ctx, "serving metrics", logger.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Warn(ctx, "metrics listener failed", logger.Error(err))
	}
}
