package notify

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"

	"github.com/salonflow/booking-api/internal/config"
	"github.com/salonflow/booking-api/internal/models"
)

// Mailer sends booking confirmations over SMTP. Messages are queued and
// delivered by a background worker so the booking request never waits on
// the mail server.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	queue  chan *gomail.Message
}

// NewMailer returns nil when no SMTP host is configured; callers treat a
// nil mailer as "confirmations disabled".
func NewMailer(cfg *config.Config) *Mailer {
	if cfg.SMTPHost == "" {
		return nil
	}

	m := &Mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:   cfg.MailFrom,
		queue:  make(chan *gomail.Message, 100),
	}
	go m.worker()
	return m
}

func (m *Mailer) worker() {
	for msg := range m.queue {
		if err := m.dialer.DialAndSend(msg); err != nil {
			log.Printf("mailer: send failed: %v", err)
		}
	}
}

func (m *Mailer) SendBookingConfirmation(b *models.Booking, biz *models.Business) {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", b.ClientEmail)
	msg.SetHeader("Subject", fmt.Sprintf("Your booking at %s", biz.Name))
	msg.SetBody("text/plain", confirmationBody(b, biz))

	select {
	case m.queue <- msg:
	default:
		log.Printf("mailer: queue full, dropping confirmation for booking %d", b.ID)
	}
}

func confirmationBody(b *models.Booking, biz *models.Business) string {
	return fmt.Sprintf(
		"Hi %s,\n\n"+
			"Your booking at %s is confirmed.\n\n"+
			"Service: %s\n"+
			"Date: %s at %s\n"+
			"Reference: %s\n\n"+
			"If you need to change or cancel, please contact us at %s.\n",
		b.ClientName,
		biz.Name,
		b.Service.Name,
		b.BookingDate.Format("2006-01-02"), b.BookingTime,
		b.Reference,
		biz.Phone,
	)
}
