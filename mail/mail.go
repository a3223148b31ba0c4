package mail

import (
	"time"

	"github.com/fuelchain/stationlog_backend/config"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// Sender is the delivery channel: one rendered message to one address.
// Success or failure of the SMTP conversation is the only observable signal.
type Sender interface {
	Send(to string, subject, body string) error
}

type smtpSender struct {
	dialer        *gomail.Dialer
	senderAddress string
	senderName    string
	retryCount    int
	retryBackoff  time.Duration
	logger        *logrus.Logger
}

func NewSender(cfg *config.SweepConfig, logger *logrus.Logger) Sender {
	d := gomail.NewDialer(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPassword)
	return &smtpSender{
		dialer:        d,
		senderAddress: cfg.MailSender,
		senderName:    cfg.MailSenderName,
		retryCount:    2,
		retryBackoff:  200 * time.Millisecond,
		logger:        logger,
	}
}

func (s *smtpSender) Send(to string, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", s.senderAddress, s.senderName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	var lastErr error
	backoff := s.retryBackoff

	for attempt := 0; attempt <= s.retryCount; attempt++ {
		err := s.dialer.DialAndSend(msg)
		if err == nil {
			s.logger.WithFields(logrus.Fields{
				"field":   "mail",
				"to":      to,
				"attempt": attempt + 1,
			}).Info("mail sent: " + subject)
			return nil
		}

		lastErr = err
		if attempt < s.retryCount {
			time.Sleep(backoff)
			backoff *= 2
		}
	}

	s.logger.WithFields(logrus.Fields{
		"field":    "mail",
		"to":       to,
		"attempts": s.retryCount + 1,
	}).Error("mail send failed: " + lastErr.Error())
	return lastErr
}
