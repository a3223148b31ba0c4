package sweep

import (
	"context"
	"fmt"
	"time"

	"github.com/fuelchain/stationlog_backend/mail"
	"github.com/sirupsen/logrus"
)

// Alert is the per-recipient context for one missing-entry notification.
// EntryFormLink is the deep link to the unit's entry form; UnitName already
// carries the escalation annotation when the escalation sweep sends it.
type Alert struct {
	UserName      string
	UserEmail     string
	UnitName      string
	Date          time.Time
	EntryFormLink string
}

// Dispatcher sends exactly one outbound message per call. It guarantees no
// idempotency: calling it twice sends twice. Addressing each recipient at
// most once per run per unit is the orchestrator's job.
type Dispatcher interface {
	SendMissingEntryAlert(ctx context.Context, alert Alert) error
}

// MailDispatcher renders the alert template and hands it to the SMTP sender.
// Each send is raced against SendTimeout so one unreachable mailbox cannot
// stall the whole sweep (gomail has no context support).
type MailDispatcher struct {
	Sender      mail.Sender
	Logger      *logrus.Logger
	SendTimeout time.Duration
}

func NewMailDispatcher(sender mail.Sender, logger *logrus.Logger) *MailDispatcher {
	return &MailDispatcher{
		Sender:      sender,
		Logger:      logger,
		SendTimeout: 30 * time.Second,
	}
}

func (d *MailDispatcher) SendMissingEntryAlert(ctx context.Context, alert Alert) error {
	subject := fmt.Sprintf("Missing daily entry: %s", alert.UnitName)
	body := fmt.Sprintf(
		"Hello %s,\n\n"+
			"No entry has been recorded for %s on %s.\n\n"+
			"Please submit the entry here: %s\n",
		alert.UserName,
		alert.UnitName,
		alert.Date.Format("02 Jan 2006"),
		alert.EntryFormLink,
	)

	ctx, cancel := context.WithTimeout(ctx, d.SendTimeout)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- d.Sender.Send(alert.UserEmail, subject, body)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return fmt.Errorf("alert to %s timed out: %w", alert.UserEmail, ctx.Err())
	}
}
