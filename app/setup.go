package app

import (
	"fmt"
	"log"
	"os"

	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/saikumarreddyappidi/Education/api"
	"github.com/saikumarreddyappidi/Education/config"
	"github.com/saikumarreddyappidi/Education/database"
	"github.com/saikumarreddyappidi/Education/router"
	"github.com/saikumarreddyappidi/Education/services"
	croncfg "github.com/saikumarreddyappidi/Education/services/cron"
	"github.com/saikumarreddyappidi/Education/services/storage"
)

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	// Select the storage backend. Postgres is the default; DB_DRIVER=memory
	// runs everything against the in-memory store.
	var store database.Storage
	switch getEnv.DB_DRIVER {
	case "memory":
		store, err = database.StartMemory()
		if err != nil {
			return err
		}
	default:
		store, err = database.StartGORM()
		if err != nil {
			print("Check whether the Postgres is running or not\n")
			return err
		}
	}

	if err := store.Init(); err != nil {
		print("Failed to initialize database tables\n")
		return err
	}

	// Request-recovery capture is best effort; a broken directory only
	// disables the feature.
	recoverySvc, err := services.NewRecoveryService(getEnv.RECOVERY_DIR)
	if err != nil {
		log.Printf("Warning: recovery capture disabled: %v", err)
		recoverySvc = nil
	}

	// Initialize Cron Manager (only if enabled via environment variable)
	var cronManager *croncfg.CronManager
	if os.Getenv("CRON_ENABLED") != "false" && recoverySvc != nil { // Default to enabled
		cronManager = croncfg.NewCronManager(recoverySvc, getEnv.RECOVERY_RETENTION_DAYS)
		if err := cronManager.Start(); err != nil {
			print("Warning: Failed to start cron jobs\n")
			print("Error: ", err.Error(), "\n")
		}
	}

	// Spaces offload is optional; without it file payloads stay inline.
	var spacesClient *storage.SpacesClient
	spacesCfg := storage.SpacesConfig{
		AccessKey: getEnv.SPACES_ACCESS_KEY,
		SecretKey: getEnv.SPACES_SECRET_KEY,
		Bucket:    getEnv.SPACES_BUCKET,
		Region:    getEnv.SPACES_REGION,
		Endpoint:  getEnv.SPACES_ENDPOINT,
		CDNURL:    getEnv.SPACES_CDN_URL,
	}
	if spacesCfg.Configured() {
		spacesClient, err = storage.NewSpacesClient(spacesCfg)
		if err != nil {
			log.Printf("Warning: object storage disabled: %v", err)
			spacesClient = nil
		}
	}

	// Defer Closing DB and stopping cron jobs
	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		store.Close()
	}()

	// Init API
	var server *api.APIServer = api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT), store)
	app := server.GetEngine()

	// Attach Middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Setup Routes
	router.SetupRoutes(app, store, router.Dependencies{
		Recovery: recoverySvc,
		Spaces:   spacesClient,
	})

	// Get the PORT & Start the Server
	return server.Run()
}
