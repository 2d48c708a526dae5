package system

import (
	"context"
	"fmt"

	"readingroom_backend/internals/features/system/settings/repository"
)

func SeedDefaultSettings(ctx context.Context, repo repository.SettingsRepository) error {
	if err := repo.EnsureDefaults(ctx); err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}
	return nil
}
