// Package di provides dependency injection configuration for the wisher server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/birthdaywisher/wisher-server/internal/config"
	"github.com/birthdaywisher/wisher-server/internal/di/providers"
	"github.com/birthdaywisher/wisher-server/internal/logger"
	"github.com/birthdaywisher/wisher-server/internal/service"
	"github.com/birthdaywisher/wisher-server/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Database layer
	do.Provide(injector, providers.ProvideSSEManager)
	do.Provide(injector, providers.ProvideStore)

	// Search layer
	do.Provide(injector, providers.ProvideNameIndex)

	// Mail layer
	do.Provide(injector, providers.ProvideMailer)

	// Business services
	do.Provide(injector, providers.ProvideValidator)
	do.Provide(injector, providers.ProvideBirthdayService)
	do.Provide(injector, providers.ProvideContactService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.SSEManagerHandle](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.NameIndexHandle](injector)
	_ = do.MustInvoke[*providers.MailerHandle](injector)

	// Business services
	_ = do.MustInvoke[*validation.Validator](injector)
	_ = do.MustInvoke[*service.BirthdayService](injector)
	_ = do.MustInvoke[*service.ContactService](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	// Backfill the autocomplete index if it is empty but records exist
	providers.ReindexNamesIfNeeded(injector)

	return nil
}
