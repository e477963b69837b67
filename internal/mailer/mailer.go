// Package mailer sends notification email asynchronously. Messages are
// queued and delivered by a background worker; delivery failures are logged
// and never surface to the request that triggered them.
package mailer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/wneessen/go-mail"
)

// Message is a queued outbound email.
type Message struct {
	To      string
	Subject string
	HTML    string // Optional HTML body
	Text    string // Plain-text body (or alternative when HTML is set)
}

// Sender queues email for background delivery. Enqueue never blocks and
// never returns an error; failed or dropped messages are logged only.
type Sender interface {
	Enqueue(msg *Message)
}

// Noop is a Sender that discards every message. Used in tests and when no
// SMTP host is configured.
type Noop struct{}

// Enqueue discards the message.
func (Noop) Enqueue(*Message) {}

// sendTimeout bounds a single SMTP delivery attempt.
const sendTimeout = 30 * time.Second

// Mailer delivers queued messages over SMTP with a single background worker.
type Mailer struct {
	client *mail.Client
	from   string
	queue  chan *Message
	logger *slog.Logger
	wg     sync.WaitGroup

	shutdownMu sync.RWMutex
	shutdown   bool
}

// Options configures the mailer.
type Options struct {
	Host      string
	Port      int
	Username  string
	Password  string
	From      string
	QueueSize int
	Logger    *slog.Logger
}

// New creates a Mailer and connects its SMTP client. The client dials
// lazily, so a bad host only surfaces when the first message is sent.
func New(opts Options) (*Mailer, error) {
	clientOpts := []mail.Option{
		mail.WithPort(opts.Port),
		mail.WithTimeout(sendTimeout),
	}
	if opts.Username != "" {
		clientOpts = append(clientOpts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(opts.Username),
			mail.WithPassword(opts.Password),
		)
	}

	client, err := mail.NewClient(opts.Host, clientOpts...)
	if err != nil {
		return nil, err
	}

	queueSize := opts.QueueSize
	if queueSize <= 0 {
		queueSize = 100
	}

	return &Mailer{
		client: client,
		from:   opts.From,
		queue:  make(chan *Message, queueSize),
		logger: opts.Logger,
	}, nil
}

// Start begins the delivery worker.
// This should be called once at server startup in a goroutine.
func (m *Mailer) Start(ctx context.Context) {
	m.wg.Add(1)
	defer m.wg.Done()

	m.logger.Info("mailer starting")

	for {
		select {
		case msg := <-m.queue:
			m.deliver(msg)

		case <-ctx.Done():
			m.logger.Info("mailer stopping")
			return
		}
	}
}

// Shutdown stops accepting new messages, drains the queue, and waits for
// the worker to exit.
func (m *Mailer) Shutdown(ctx context.Context) error {
	m.logger.Info("mailer shutdown initiated")

	m.shutdownMu.Lock()
	m.shutdown = true
	close(m.queue)
	m.shutdownMu.Unlock()

	done := make(chan struct{})
	go func() {
		for msg := range m.queue {
			m.deliver(msg)
		}
		close(done)
	}()

	select {
	case <-done:
		m.logger.Info("mail queue drained")
	case <-ctx.Done():
		m.logger.Warn("mail queue drain timeout, some messages may be lost")
	}

	m.wg.Wait()

	m.logger.Info("mailer shutdown complete")
	return nil
}

// Enqueue queues a message for delivery. Non-blocking; when the queue is
// full or the mailer is shutting down the message is dropped with a log.
func (m *Mailer) Enqueue(msg *Message) {
	m.shutdownMu.RLock()
	defer m.shutdownMu.RUnlock()

	if m.shutdown {
		return
	}

	select {
	case m.queue <- msg:
	default:
		m.logger.Error("mail queue full, dropping message",
			slog.String("to", msg.To),
			slog.String("subject", msg.Subject))
	}
}

// deliver sends one message, logging failures.
func (m *Mailer) deliver(msg *Message) {
	out := mail.NewMsg()
	if err := out.From(m.from); err != nil {
		m.logger.Error("invalid sender address", slog.String("from", m.from), slog.String("error", err.Error()))
		return
	}
	if err := out.To(msg.To); err != nil {
		m.logger.Error("invalid recipient address", slog.String("to", msg.To), slog.String("error", err.Error()))
		return
	}
	out.Subject(msg.Subject)

	if msg.HTML != "" {
		out.SetBodyString(mail.TypeTextHTML, msg.HTML)
		if msg.Text != "" {
			out.AddAlternativeString(mail.TypeTextPlain, msg.Text)
		}
	} else {
		out.SetBodyString(mail.TypeTextPlain, msg.Text)
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	if err := m.client.DialAndSendWithContext(ctx, out); err != nil {
		m.logger.Error("failed to send mail",
			slog.String("to", msg.To),
			slog.String("subject", msg.Subject),
			slog.String("error", err.Error()))
		return
	}

	m.logger.Info("mail sent",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject))
}
