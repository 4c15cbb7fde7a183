// Package mailer resolves an outbound SMTP transport from environment
// configuration and sends HTML email over it.
package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/jordan-wright/email"

	"github.com/overdrivepermits/permit-service/internal/shared/config"
	apperrors "github.com/overdrivepermits/permit-service/internal/shared/errors"
)

const (
	gmailHost       = "smtp.gmail.com"
	gmailPort       = 587
	defaultPort     = 587
	defaultFromName = "OVERDRIVE PERMITS"

	sendTimeout   = 30 * time.Second
	verifyTimeout = 10 * time.Second
)

// Message is one outbound HTML email.
type Message struct {
	To      string
	ReplyTo string
	Subject string
	HTML    string
	Headers map[string]string
}

// Mailer sends messages over a resolved transport. Verify performs a
// lightweight handshake; its failure must never be treated as fatal, the
// real send is the authoritative test.
type Mailer interface {
	Send(ctx context.Context, msg *Message) error
	Verify(ctx context.Context) error
	From() string
}

// Factory builds a Mailer from transport configuration. Production wiring
// uses Resolve; tests substitute fakes.
type Factory func(cfg config.SMTPConfig) (Mailer, error)

// Resolve builds an SMTP-backed Mailer or fails with a configuration error
// naming the environment variable the operator must set. The host may be
// inferred for Gmail accounts; everything else requires SMTP_HOST.
func Resolve(cfg config.SMTPConfig) (Mailer, error) {
	if cfg.Username == "" {
		return nil, apperrors.NewConfigurationError(
			"SMTP_USER is not set. Set it to the email address used to authenticate with your mail server.", nil)
	}
	if cfg.Password == "" {
		return nil, apperrors.NewConfigurationError(
			"SMTP_PASS is not set. Set it to your email password or app password.", nil)
	}

	host := cfg.Host
	if host == "" {
		if strings.HasSuffix(strings.ToLower(cfg.Username), "@gmail.com") {
			host = gmailHost
		} else {
			return nil, apperrors.NewConfigurationError(
				"SMTP_HOST is not set. Set it to your mail server, e.g. smtp.yourprovider.com.", nil)
		}
	}

	fromAddr := cfg.FromEmail
	if fromAddr == "" {
		fromAddr = cfg.Username
	}
	fromName := cfg.FromName
	if fromName == "" {
		fromName = defaultFromName
	}

	m := &SMTPMailer{
		host:     host,
		port:     cfg.Port,
		auth:     smtp.PlainAuth("", cfg.Username, cfg.Password, host),
		fromAddr: fromAddr,
		fromName: fromName,
	}
	if m.port == 0 {
		m.port = defaultPort
	}

	// Gmail rejects generic host/port combinations with relaxed TLS
	// settings; pin the provider preset instead of trusting the raw config.
	if strings.Contains(host, "gmail.com") {
		m.gmail = true
		m.host = gmailHost
		m.port = gmailPort
		m.secure = false
		m.auth = smtp.PlainAuth("", cfg.Username, cfg.Password, gmailHost)
		m.tlsConfig = &tls.Config{
			ServerName: gmailHost,
			MinVersion: tls.VersionTLS12,
		}
		return m, nil
	}

	m.secure = cfg.Secure || m.port == 465
	m.tlsConfig = &tls.Config{
		ServerName:         m.host,
		InsecureSkipVerify: !cfg.RejectUnauthorized,
		MinVersion:         tls.VersionTLS12,
	}
	return m, nil
}

// SMTPMailer sends over a plain SMTP endpoint, using implicit TLS when the
// transport was resolved as secure and STARTTLS otherwise.
type SMTPMailer struct {
	host      string
	port      int
	secure    bool
	gmail     bool
	auth      smtp.Auth
	tlsConfig *tls.Config
	fromAddr  string
	fromName  string
}

// From returns the resolved sender in "Name <addr>" form
func (m *SMTPMailer) From() string {
	if m.fromName != "" {
		return fmt.Sprintf("%s <%s>", m.fromName, m.fromAddr)
	}
	return m.fromAddr
}

// Gmail reports whether the Gmail preset construction path was selected
func (m *SMTPMailer) Gmail() bool {
	return m.gmail
}

func (m *SMTPMailer) addr() string {
	return net.JoinHostPort(m.host, strconv.Itoa(m.port))
}

// Send delivers one message, bounded by the context deadline or the default
// send timeout, whichever is shorter. Expiry is reported as a transport
// failure.
func (m *SMTPMailer) Send(ctx context.Context, msg *Message) error {
	e := email.NewEmail()
	e.From = m.From()
	e.To = []string{msg.To}
	if msg.ReplyTo != "" {
		e.ReplyTo = []string{msg.ReplyTo}
	}
	e.Subject = msg.Subject
	e.HTML = []byte(msg.HTML)
	for k, v := range msg.Headers {
		e.Headers.Set(k, v)
	}

	timeout := sendTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	// The email library sends synchronously without context support; run it
	// on a goroutine so the deadline still applies. The buffered channel
	// lets a late completion finish without blocking.
	errCh := make(chan error, 1)
	go func() {
		if m.secure {
			errCh <- e.SendWithTLS(m.addr(), m.auth, m.tlsConfig)
		} else {
			errCh <- e.SendWithStartTLS(m.addr(), m.auth, m.tlsConfig)
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(timeout):
		return fmt.Errorf("smtp send to %s timed out after %s", m.addr(), timeout)
	}
}

// Verify performs an EHLO/NOOP handshake against the configured endpoint.
func (m *SMTPMailer) Verify(ctx context.Context) error {
	verifyCtx, cancel := context.WithTimeout(ctx, verifyTimeout)
	defer cancel()

	dialer := &net.Dialer{}
	conn, err := dialer.DialContext(verifyCtx, "tcp", m.addr())
	if err != nil {
		return fmt.Errorf("smtp verify: dial %s: %w", m.addr(), err)
	}

	if deadline, ok := verifyCtx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	if m.secure {
		tlsConn := tls.Client(conn, m.tlsConfig)
		if err := tlsConn.HandshakeContext(verifyCtx); err != nil {
			conn.Close()
			return fmt.Errorf("smtp verify: tls handshake: %w", err)
		}
		conn = tlsConn
	}

	client, err := smtp.NewClient(conn, m.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp verify: new client: %w", err)
	}
	defer client.Close()

	if err := client.Hello("localhost"); err != nil {
		return fmt.Errorf("smtp verify: hello: %w", err)
	}
	if !m.secure {
		if ok, _ := client.Extension("STARTTLS"); ok {
			if err := client.StartTLS(m.tlsConfig); err != nil {
				return fmt.Errorf("smtp verify: starttls: %w", err)
			}
		}
	}
	if err := client.Noop(); err != nil {
		return fmt.Errorf("smtp verify: noop: %w", err)
	}
	return client.Quit()
}
