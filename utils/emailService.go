package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"lms/config"
)

// SendEmail delivers an HTML mail through the configured SMTP account
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password
	if from == "" || password == "" {
		return fmt.Errorf("email sender is not configured")
	}

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Course Platform <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		log.Printf("[EMAIL] Error sending email to %v: %v", to, err)
		return err
	}
	return nil
}

// SendPurchaseConfirmation mails the buyer the list of courses unlocked by a
// confirmed payment. Best-effort; callers run it in a goroutine.
func SendPurchaseConfirmation(email, name string, courseTitles []string, amountCents int64) {
	list := ""
	for _, title := range courseTitles {
		list += fmt.Sprintf("<li>%s</li>", title)
	}

	body := fmt.Sprintf(`
	<div>
		<p>Hi %s,</p>
		<p>Your payment of S/ %.2f was received. You now have access to:</p>
		<ul>%s</ul>
		<p>Happy learning!</p>
	</div>`, name, float64(amountCents)/100, list)

	if err := SendEmail([]string{email}, "Purchase confirmed", body); err != nil {
		log.Printf("[EMAIL] Purchase confirmation to %s failed: %v", email, err)
	}
}
