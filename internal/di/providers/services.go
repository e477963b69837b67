package providers

import (
	"github.com/samber/do/v2"

	"github.com/birthdaywisher/wisher-server/internal/config"
	"github.com/birthdaywisher/wisher-server/internal/logger"
	"github.com/birthdaywisher/wisher-server/internal/service"
	"github.com/birthdaywisher/wisher-server/internal/validation"
)

// ProvideValidator provides the request validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideBirthdayService provides the birthday service.
func ProvideBirthdayService(i do.Injector) (*service.BirthdayService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	indexHandle := do.MustInvoke[*NameIndexHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	mailHandle := do.MustInvoke[*MailerHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)

	return service.NewBirthdayService(service.BirthdayServiceOptions{
		Store:      storeHandle.Store,
		Names:      indexHandle.NameIndex,
		Emitter:    sseHandle.Manager,
		Mail:       mailHandle.Sender,
		Validator:  validator,
		Logger:     log.Logger,
		SiteURL:    cfg.Server.SiteURL,
		AdminEmail: cfg.Mail.AdminEmail,
	}), nil
}

// ProvideContactService provides the contact service.
func ProvideContactService(i do.Injector) (*service.ContactService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	mailHandle := do.MustInvoke[*MailerHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)

	return service.NewContactService(mailHandle.Sender, validator, log.Logger, cfg.Mail.AdminEmail), nil
}
