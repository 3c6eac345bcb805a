// Package di provides dependency injection configuration for the Encore server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/arohamusic/encore-server/internal/auth"
	"github.com/arohamusic/encore-server/internal/config"
	"github.com/arohamusic/encore-server/internal/di/providers"
	"github.com/arohamusic/encore-server/internal/logger"
	"github.com/arohamusic/encore-server/internal/lookup"
	"github.com/arohamusic/encore-server/internal/ratelimit"
	"github.com/arohamusic/encore-server/internal/service"
	"github.com/arohamusic/encore-server/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)
	do.Provide(injector, providers.ProvideValidator)

	// Database layer
	do.Provide(injector, providers.ProvideSSEManager)
	do.Provide(injector, providers.ProvideStore)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// Business services
	do.Provide(injector, providers.ProvideQuota)
	do.Provide(injector, providers.ProvideLookupClient)
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideRequestService)
	do.Provide(injector, providers.ProvideLiveService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services.
// This triggers lazy initialization of the full dependency graph.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*validation.Validator](injector)
	_ = do.MustInvoke[*providers.SSEManagerHandle](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)

	// Business services
	_ = do.MustInvoke[*ratelimit.Quota](injector)
	_ = do.MustInvoke[*lookup.Client](injector)
	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.RequestService](injector)
	_ = do.MustInvoke[*service.LiveService](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
