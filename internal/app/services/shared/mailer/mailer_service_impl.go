package mailer

import (
	"fmt"
	"net/smtp"
	"telecare-service/internal/app/contracts"
	"telecare-service/internal/app/drivers/mailer"
	"telecare-service/internal/pkg/constvars"
	"telecare-service/internal/pkg/exceptions"
)

type mailerService struct {
	Client *mailer.SMTPClient
}

func NewMailerService(client *mailer.SMTPClient) contracts.MailerService {
	return &mailerService{Client: client}
}

func (svc *mailerService) SendEmail(to, subject, body string) error {
	from := svc.Client.EmailSender
	msg := []byte(fmt.Sprintf(constvars.EmailSendBasicEmailSubjectFormat, to, subject, body))
	addr := fmt.Sprintf("%s:%d", svc.Client.Host, svc.Client.Port)
	err := smtp.SendMail(addr, svc.Client.Auth, from, []string{to}, msg)
	if err != nil {
		return exceptions.ErrSMTPSendEmail(err, svc.Client.Host)
	}
	return nil
}
