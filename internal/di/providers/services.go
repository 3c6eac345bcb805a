package providers

import (
	"github.com/samber/do/v2"

	"github.com/arohamusic/encore-server/internal/config"
	"github.com/arohamusic/encore-server/internal/logger"
	"github.com/arohamusic/encore-server/internal/lookup"
	"github.com/arohamusic/encore-server/internal/ratelimit"
	"github.com/arohamusic/encore-server/internal/service"
	"github.com/arohamusic/encore-server/internal/validation"
)

// ProvideQuota provides the per-device submission quota.
func ProvideQuota(i do.Injector) (*ratelimit.Quota, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	quota := ratelimit.NewQuota(ratelimit.NewMemoryAttemptStore(), cfg.Quota.Limit, cfg.Quota.Window, log.Logger)

	log.Info("Submission quota configured",
		"limit", cfg.Quota.Limit,
		"window", cfg.Quota.Window,
	)

	return quota, nil
}

// ProvideLookupClient provides the iTunes catalog search client.
func ProvideLookupClient(i do.Injector) (*lookup.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return lookup.NewClient(cfg.Lookup.BaseURL, log.Logger), nil
}

// ProvideRequestService provides the song request service.
func ProvideRequestService(i do.Injector) (*service.RequestService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	quota := do.MustInvoke[*ratelimit.Quota](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewRequestService(storeHandle.Store, quota, v, log.Logger), nil
}

// ProvideLiveService provides the live flag service.
func ProvideLiveService(i do.Injector) (*service.LiveService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewLiveService(storeHandle.Store, log.Logger), nil
}
