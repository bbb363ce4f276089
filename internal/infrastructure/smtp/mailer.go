package smtp

import (
	"fmt"
	"net/smtp"

	"github.com/clutch-swap/clutch-api/internal/config"
)

// Mailer sends emails. Configured reports whether a delivery channel exists
// at all; callers use it to decide between real delivery and the dev
// disclosure fallback.
type Mailer interface {
	Configured() bool
	SendCode(to, code string) error
}

type mailer struct {
	host     string
	port     string
	from     string
	username string
	password string
}

func NewMailer(cfg *config.Config) Mailer {
	return &mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		from:     cfg.SMTPFrom,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
	}
}

func (m *mailer) Configured() bool {
	return m.host != ""
}

func (m *mailer) SendCode(to, code string) error {
	subject := fmt.Sprintf("Clutch code: %s", code)
	body := codeBody(code)
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=utf-8\r\n\r\n%s",
		m.from, to, subject, body)
	addr := fmt.Sprintf("%s:%s", m.host, m.port)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	return smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg))
}

func codeBody(code string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="margin:0;padding:0;background-color:#ffffff;">
  <div style="font-family:system-ui,-apple-system,sans-serif;max-width:320px;margin:0 auto;padding:24px;">
    <div style="background:linear-gradient(135deg,#f97316 0%%,#fbbf24 100%%);color:#ffffff;font-size:36px;font-weight:bold;letter-spacing:12px;padding:20px;border-radius:12px;text-align:center;margin-bottom:16px;">
      %s
    </div>
    <p style="font-size:13px;color:#6b7280;text-align:center;margin:0;">
      Expires in 10 minutes
    </p>
  </div>
</body>
</html>`, code)
}
