package main

import (
	"context"
	"os"
	"time"

	authService "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.ApiService/implementation/auth"
	config "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Config"
	container "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Container"
	logger "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Logger"
	implementation "gitlab.com/maplesense1/wrk.registration_server/src/production/WRK.Repository/Implementation"
)

// Creates the dashboard admin from ADMIN_USERNAME / ADMIN_PASSWORD
func main() {
	ctr, err := container.NewSeedContainer()
	if err != nil {
		// No config means no configured logger yet
		os.Exit(failStartup(logger.NewLogger(&config.LoggingConfig{Output: "stderr"}), err))
	}
	os.Exit(run(ctr))
}

func failStartup(log *logger.Logger, err error) int {
	log.WithComponent("seed").ErrorWithError(err, "Failed to initialize seed")
	return 1
}

func run(ctr *container.SeedContainer) int {
	log := ctr.GetLogger().WithComponent("seed")
	defer ctr.Shutdown(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := ctr.InitializeDatabase(ctx); err != nil {
		log.ErrorWithError(err, "Failed to initialize database")
		return 1
	}

	db, err := ctr.GetDatabase()
	if err != nil {
		log.ErrorWithError(err, "Failed to get database connection")
		return 1
	}

	cfg := ctr.GetConfig()
	initializer := authService.NewAdminInitializerService(
		implementation.NewMongoAdminRepository(db),
		log,
		authService.AdminConfig{
			Username: cfg.Admin.Username,
			Password: cfg.Admin.Password,
		},
	)

	if _, err := initializer.SeedAdmin(ctx); err != nil {
		log.ErrorWithError(err, "Failed to seed admin user")
		return 1
	}
	return 0
}
