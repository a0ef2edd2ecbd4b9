package checkout

import (
	"context"
	"html"
	"os/exec"
	"runtime"
	"strings"

	"github.com/go-faster/errors"
)

// DefaultWhatsAppNumber is the shop's order line
const DefaultWhatsAppNumber = "212617515466"

// WhatsAppChannel hands the order off by opening a wa.me link
type WhatsAppChannel struct {
	Phone  string
	Opener func(url string) error
}

// NewWhatsAppChannel creates a channel for phone that opens links with opener,
// or the system browser when opener is nil
func NewWhatsAppChannel(phone string, opener func(string) error) *WhatsAppChannel {
	if phone == "" {
		phone = DefaultWhatsAppNumber
	}
	if opener == nil {
		opener = OpenBrowser
	}
	return &WhatsAppChannel{Phone: phone, Opener: opener}
}

var _ MessagingChannel = (*WhatsAppChannel)(nil)

// URL is the hand-off link for msg
func (w *WhatsAppChannel) URL(msg Message) string {
	return "https://wa.me/" + w.Phone + "?text=" + msg.Encoded
}

// Deliver opens the wa.me link for msg
func (w *WhatsAppChannel) Deliver(ctx context.Context, msg Message) error {
	return w.Opener(w.URL(msg))
}

// OpenBrowser starts the platform's URL handler and does not wait for it
func OpenBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return errors.Wrap(err, "open browser")
	}
	go cmd.Wait() //nolint:errcheck
	return nil
}

// Mailer sends an HTML e-mail
type Mailer interface {
	SendEmail(toEmail, subject, htmlContent string) error
}

// EmailChannel mails the order summary to the shop instead of opening WhatsApp
type EmailChannel struct {
	Mailer Mailer
	To     string
}

var _ MessagingChannel = (*EmailChannel)(nil)

// Deliver mails the summary to the shop address
func (e *EmailChannel) Deliver(ctx context.Context, msg Message) error {
	subject := "New order " + msg.Ref.String() + " from " + msg.Customer.Name
	body := strings.ReplaceAll(html.EscapeString(msg.Text), "\n", "<br>")
	if err := e.Mailer.SendEmail(e.To, subject, body); err != nil {
		return errors.Wrap(err, "mail order")
	}
	return nil
}
