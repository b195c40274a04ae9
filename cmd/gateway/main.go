package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"camara-gateway/internal/camara"
	"camara-gateway/internal/catalog"
	"camara-gateway/internal/common/config"
	"camara-gateway/internal/common/logger"
	"camara-gateway/internal/common/observability"
	"camara-gateway/internal/pipeline/dispatch"
	"camara-gateway/internal/pipeline/template"
	gatewayregistry "camara-gateway/internal/registry"
	manifestregistry "camara-gateway/pkg/registry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)
	log.Info("starting gateway", map[string]interface{}{
		"name":        cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	})

	templates, err := template.LoadRegistry(cfg.Tools.TemplateRegistry)
	if err != nil {
		log.Error("load template registry", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	dispatcher := dispatch.NewDispatcher(
		cfg.Backend.BaseURL,
		time.Duration(cfg.Backend.TimeoutMS)*time.Millisecond,
		log,
	)

	var cache *catalog.Cache
	if cfg.Cache.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Address,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		cache = catalog.New(rdb, time.Duration(cfg.Cache.TTLSeconds)*time.Second, log)
	}

	reg, err := gatewayregistry.New(camara.Definitions(), templates, dispatcher, obs, cache, log)
	if err != nil {
		log.Error("build operation registry", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	if cfg.Tools.Manifest != "" {
		manifest, err := manifestregistry.LoadManifest(cfg.Tools.Manifest)
		if err != nil {
			log.Error("load operations manifest", map[string]interface{}{"error": err.Error()})
			os.Exit(1)
		}
		for _, name := range manifest.Names() {
			if !reg.Has(name) {
				log.Error("manifest operation has no bound pipeline", map[string]interface{}{"operation": name})
				os.Exit(1)
			}
		}
	}

	log.Info("operation registry ready", map[string]interface{}{
		"operations": reg.Operations(),
	})

	if cfg.Metrics.Enabled {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cfg.Metrics.Address, mux); err != nil {
				log.Error("metrics endpoint stopped", map[string]interface{}{"error": err.Error()})
			}
		}()
	}

	// The serving surface (MCP transport, HTTP routing) lives outside this
	// process boundary; the gateway blocks here until asked to stop.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down", nil)
}
