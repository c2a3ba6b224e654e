// Brauhaus Core - Brewery Process Control
//
// This is the main entry point for the Brauhaus Core daemon. Brauhaus
// drives a two-vessel HERMS brewing rig: a heated boil kettle, a
// heat-exchanged mash tun and a recirculation pump, sequenced through a
// fixed seventeen-state recipe with closed-loop temperature control.
//
// The daemon also runs the operator HTTP API with WebSocket push, the
// MQTT process-variable bridge, the recipe library and the InfluxDB
// telemetry recorder. A built-in thermal simulator stands in for the
// rig when hardware.mode is "sim".
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/ferment8/brauhaus-core/migrations"

	"github.com/ferment8/brauhaus-core/internal/api"
	"github.com/ferment8/brauhaus-core/internal/auth"
	"github.com/ferment8/brauhaus-core/internal/brewhouse"
	"github.com/ferment8/brauhaus-core/internal/infrastructure/config"
	"github.com/ferment8/brauhaus-core/internal/infrastructure/database"
	"github.com/ferment8/brauhaus-core/internal/infrastructure/influxdb"
	"github.com/ferment8/brauhaus-core/internal/infrastructure/logging"
	"github.com/ferment8/brauhaus-core/internal/infrastructure/mqtt"
	"github.com/ferment8/brauhaus-core/internal/recipe"
	"github.com/ferment8/brauhaus-core/internal/remote"
	"github.com/ferment8/brauhaus-core/internal/telemetry"
	"github.com/ferment8/brauhaus-core/internal/vessel"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Small utility subcommands run and exit before the daemon starts.
	if len(os.Args) > 1 && os.Args[1] == "hash-pin" {
		if err := runHashPIN(os.Args[2:], os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting Brauhaus Core",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open the recipe library database
	db, err := database.Open(ctx, database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	// Initialise the recipe library
	recipeRepo := recipe.NewSQLiteRepository(db.DB)
	recipes := recipe.NewRegistry(recipeRepo)
	recipes.SetLogger(log)

	if refreshErr := recipes.RefreshCache(ctx); refreshErr != nil {
		return fmt.Errorf("loading recipe library: %w", refreshErr)
	}
	if recipes.Count() == 0 && cfg.Brewhouse.RecipeDir != "" {
		seeded, seedErr := recipe.Seed(ctx, recipes, cfg.Brewhouse.RecipeDir)
		if seedErr != nil {
			log.Warn("seeding recipe library failed", "dir", cfg.Brewhouse.RecipeDir, "error", seedErr)
		} else if seeded > 0 {
			log.Info("recipe library seeded", "recipes", seeded)
		}
	}
	log.Info("recipe library initialised", "recipes", recipes.Count())

	// Connect to MQTT broker (optional)
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)

		mqttClient.SetOnConnect(func() {
			log.Info("MQTT reconnected")
		})
		mqttClient.SetOnDisconnect(func(err error) {
			log.Warn("MQTT disconnected", "error", err)
		})
	} else {
		log.Info("MQTT disabled")
	}

	// Connect to InfluxDB (optional)
	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)

		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
	} else {
		log.Info("InfluxDB disabled")
	}

	// Build the hardware layer: probes and relays, real or simulated
	rig, err := buildRig(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("building hardware layer: %w", err)
	}
	defer rig.close(log)

	// Build the plant: two vessels and the pump
	kettle, err := vessel.NewHeated(vessel.HeatedConfig{
		Volume:           cfg.Brewhouse.BoilKettle.VolumeGallons,
		Rating:           cfg.Brewhouse.BoilKettle.ElementRatingWatts,
		GainProportional: cfg.Brewhouse.BoilKettle.Gains.Proportional,
		GainIntegral:     cfg.Brewhouse.BoilKettle.Gains.Integral,
		MinSwitch:        cfg.RelaySafetyThreshold(),
		Sensor:           rig.kettleSensor,
		Actuator:         rig.element,
	})
	if err != nil {
		return fmt.Errorf("building boil kettle: %w", err)
	}
	kettle.SetLogger(log)

	mashTun, err := vessel.NewHeatExchanged(vessel.HeatExchangedConfig{
		Volume:           cfg.Brewhouse.MashTun.VolumeGallons,
		Conductivity:     cfg.Brewhouse.MashTun.HeatExchangerConductivity,
		GainProportional: cfg.Brewhouse.MashTun.Gains.Proportional,
		GainIntegral:     cfg.Brewhouse.MashTun.Gains.Integral,
		MaxSourceDelta:   cfg.Brewhouse.MashTun.MaxSourceDelta,
		Sensor:           rig.mashSensor,
	})
	if err != nil {
		return fmt.Errorf("building mash tun: %w", err)
	}

	pump, err := vessel.NewPump(rig.pump)
	if err != nil {
		return fmt.Errorf("building pump: %w", err)
	}
	pump.SetLogger(log)

	// Operator auth
	authService, err := auth.NewService(
		cfg.Security.JWT.Secret,
		cfg.Security.OperatorPINHash,
		cfg.Security.JWT.AccessTokenTTL,
	)
	if err != nil {
		return fmt.Errorf("initialising auth: %w", err)
	}

	// WebSocket hub is created first so the brewhouse broadcasts through
	// it from its first tick; the API server adopts and runs it.
	hub := api.NewHub(cfg.WebSocket, log)

	// Brewhouse control loop
	brew, err := brewhouse.New(brewhouse.Deps{
		Kettle:      kettle,
		MashTun:     mashTun,
		Pump:        pump,
		TickPeriod:  cfg.GetTickPeriod(),
		Broadcaster: hub,
		Logger:      log,
	})
	if err != nil {
		return fmt.Errorf("building brewhouse: %w", err)
	}
	if startErr := brew.Start(ctx); startErr != nil {
		return fmt.Errorf("starting control loop: %w", startErr)
	}
	// Stop drives both vessels and the pump to their safe state before
	// the rig and connections behind them are released.
	defer brew.Stop()

	// Bridge process variables to MQTT
	if mqttClient != nil {
		binding, bindErr := remote.NewBinding(mqttClient, brew.Variables().All()...)
		if bindErr != nil {
			return fmt.Errorf("building variable binding: %w", bindErr)
		}
		binding.SetLogger(log)
		if startErr := binding.Start(); startErr != nil {
			return fmt.Errorf("starting variable binding: %w", startErr)
		}
		defer binding.Stop()
		log.Info("process variables bridged to MQTT")
	}

	// Telemetry recorder
	if influxClient != nil {
		recorder, recErr := telemetry.NewRecorder(brew, influxClient, cfg.GetTelemetryInterval())
		if recErr != nil {
			return fmt.Errorf("building telemetry recorder: %w", recErr)
		}
		recorder.SetLogger(log)
		if startErr := recorder.Start(ctx); startErr != nil {
			return fmt.Errorf("starting telemetry recorder: %w", startErr)
		}
		defer recorder.Stop()
		log.Info("telemetry recorder started", "interval", cfg.GetTelemetryInterval())
	}

	// HTTP API
	apiServer, err := api.New(api.Deps{
		Config:      cfg.API,
		WS:          cfg.WebSocket,
		Logger:      log,
		Auth:        authService,
		Brewer:      brew,
		Recipes:     recipes,
		MQTT:        mqttClient,
		DB:          db,
		Version:     version,
		ExternalHub: hub,
	})
	if err != nil {
		return fmt.Errorf("building API server: %w", err)
	}
	if startErr := apiServer.Start(ctx); startErr != nil {
		return fmt.Errorf("starting API server: %w", startErr)
	}
	defer func() {
		if closeErr := apiServer.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	// Verify all connections are healthy
	if err := healthCheck(ctx, db, mqttClient, influxClient, apiServer); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	log.Info("initialisation complete, waiting for shutdown signal")

	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred cleanup runs in reverse order: API server, telemetry,
	// variable binding, then the brewhouse fail-safe stop while the rig
	// and connections are still alive, then rig, InfluxDB, MQTT, database.

	log.Info("Brauhaus Core stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses BRAUHAUS_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("BRAUHAUS_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// healthCheck verifies all wired components are healthy. Optional
// components pass as nil and are skipped.
func healthCheck(ctx context.Context, db *database.DB, mqttClient *mqtt.Client, influxClient *influxdb.Client, apiServer *api.Server) error {
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if mqttClient != nil {
		if err := mqttClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("mqtt: %w", err)
		}
	}

	if influxClient != nil {
		if err := influxClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("influxdb: %w", err)
		}
	}

	if err := apiServer.HealthCheck(ctx); err != nil {
		return fmt.Errorf("api: %w", err)
	}

	return nil
}
