// Package mail delivers transactional email over SMTP: reset codes and
// lead notifications. Template rendering stays with the caller; bodies are
// passed in as ready HTML.
package mail

import (
	"crypto/tls"
	"fmt"
	"math/rand"
	"mime"
	"net"
	"net/smtp"
	"time"

	"github.com/tdlogistics/tdl/internal/config"
	"github.com/tdlogistics/tdl/internal/logger"
)

type Mailer struct {
	config *config.Email
	auth   smtp.Auth
}

func New(config *config.Email) *Mailer {
	auth := smtp.PlainAuth("", config.Username, config.Password, config.SMTPServer)
	return &Mailer{
		config: config,
		auth:   auth,
	}
}

func (m *Mailer) Send(recipientEmail, subject, html string) error {
	msg := m.buildMessage(recipientEmail, subject, html)
	address := fmt.Sprintf("%s:%d", m.config.SMTPServer, m.config.SMTPPort)

	// Port 465 = implicit TLS, otherwise STARTTLS
	if m.config.SMTPPort == 465 {
		return m.sendImplicitTLS(address, recipientEmail, msg)
	}
	return m.sendSTARTTLS(address, recipientEmail, msg)
}

func (m *Mailer) timeout() time.Duration {
	timeout := time.Duration(m.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return timeout
}

func (m *Mailer) sendImplicitTLS(address, recipientEmail string, msg []byte) error {
	tlsConfig := &tls.Config{ServerName: m.config.SMTPServer}

	conn, err := tls.DialWithDialer(&net.Dialer{Timeout: m.timeout()}, "tcp", address, tlsConfig)
	if err != nil {
		logger.Log.Error("failed to connect to SMTP server (implicit TLS)", "address", address, "error", err)
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, m.config.SMTPServer)
	if err != nil {
		logger.Log.Error("failed to create SMTP client", "error", err)
		return err
	}
	defer client.Close()

	return m.sendViaClient(client, recipientEmail, msg)
}

func (m *Mailer) sendSTARTTLS(address, recipientEmail string, msg []byte) error {
	conn, err := net.DialTimeout("tcp", address, m.timeout())
	if err != nil {
		logger.Log.Error("failed to connect to SMTP server", "address", address, "error", err)
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, m.config.SMTPServer)
	if err != nil {
		logger.Log.Error("failed to create SMTP client", "error", err)
		return err
	}
	defer client.Close()

	tlsConfig := &tls.Config{ServerName: m.config.SMTPServer}
	if err = client.StartTLS(tlsConfig); err != nil {
		logger.Log.Error("failed to start TLS", "error", err)
		return err
	}

	return m.sendViaClient(client, recipientEmail, msg)
}

func (m *Mailer) sendViaClient(client *smtp.Client, recipientEmail string, msg []byte) error {
	if err := client.Auth(m.auth); err != nil {
		logger.Log.Error("SMTP authentication failed", "error", err)
		return err
	}

	if err := client.Mail(m.config.Username); err != nil {
		logger.Log.Error("failed to set sender", "error", err)
		return err
	}

	if err := client.Rcpt(recipientEmail); err != nil {
		logger.Log.Error("failed to set recipient", "recipient", recipientEmail, "error", err)
		return err
	}

	w, err := client.Data()
	if err != nil {
		logger.Log.Error("failed to get data writer", "error", err)
		return err
	}

	if _, err = w.Write(msg); err != nil {
		logger.Log.Error("failed to write message", "error", err)
		return err
	}

	if err = w.Close(); err != nil {
		logger.Log.Error("failed to close data writer", "error", err)
		return err
	}

	return client.Quit()
}

func generateMessageID(domain string) string {
	t := time.Now().UnixNano()
	pid := rand.Int63()
	return fmt.Sprintf("<%d.%d@%s>", t, pid, domain)
}

func (m *Mailer) buildMessage(recipient, subject, html string) []byte {
	encodedSubject := mime.QEncoding.Encode("utf-8", subject)
	encodedSenderName := mime.QEncoding.Encode("utf-8", m.config.SenderName)

	msgID := generateMessageID("tdl-logistics.com")
	date := time.Now().Format(time.RFC1123Z)

	return fmt.Appendf(nil,
		"Message-ID: %s\r\n"+
			"Date: %s\r\n"+
			"To: %s\r\n"+
			"From: %s <%s>\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"utf-8\"\r\n"+
			"\r\n"+
			"%s",
		msgID, date, recipient, encodedSenderName, m.config.Username, encodedSubject, html,
	)
}
