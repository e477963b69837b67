package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/birthdaywisher/wisher-server/internal/config"
	"github.com/birthdaywisher/wisher-server/internal/logger"
	"github.com/birthdaywisher/wisher-server/internal/mailer"
)

// MailerHandle wraps the mailer with its context for lifecycle management.
// When no SMTP host is configured the handle carries a no-op sender and
// there is nothing to shut down.
type MailerHandle struct {
	Sender mailer.Sender
	worker *mailer.Mailer
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *MailerHandle) Shutdown() error {
	if h.worker == nil {
		return nil
	}
	h.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.worker.Shutdown(ctx)
}

// ProvideMailer provides the notification mailer.
func ProvideMailer(i do.Injector) (*MailerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Mail.Host == "" {
		log.Info("No SMTP host configured, email notifications disabled")
		return &MailerHandle{Sender: mailer.Noop{}}, nil
	}

	worker, err := mailer.New(mailer.Options{
		Host:      cfg.Mail.Host,
		Port:      cfg.Mail.Port,
		Username:  cfg.Mail.Username,
		Password:  cfg.Mail.Password,
		From:      cfg.Mail.From,
		QueueSize: cfg.Mail.QueueSize,
		Logger:    log.Logger,
	})
	if err != nil {
		return nil, err
	}

	// Start delivery worker in background
	ctx, cancel := context.WithCancel(context.Background())
	go worker.Start(ctx)

	log.Info("Mailer started", "host", cfg.Mail.Host, "from", cfg.Mail.From)

	return &MailerHandle{
		Sender: worker,
		worker: worker,
		cancel: cancel,
	}, nil
}
