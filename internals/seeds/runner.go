package seeds

import (
	"context"

	"go.uber.org/zap"

	"readingroom_backend/internals/appctx"
	systemSeed "readingroom_backend/internals/seeds/system"
	userSeed "readingroom_backend/internals/seeds/users"
)

// RunAllSeeds is idempotent; it runs at every boot.
func RunAllSeeds(ctx context.Context, app *appctx.Context) error {
	log := app.Log()

	//* System settings
	if err := systemSeed.SeedDefaultSettings(ctx, app.Repos.Settings); err != nil {
		return err
	}

	//* Admin user
	created, err := userSeed.SeedAdmin(ctx, app.Repos.Users, app.Config.AdminEmail, app.Config.AdminPassword)
	if err != nil {
		return err
	}
	if created {
		log.Info("admin user created", zap.String("email", app.Config.AdminEmail))
	}
	return nil
}
