package smtp

import (
	"context"
	"fmt"
	"net/smtp"
	"rehab-service/internal/app/contracts"
	"rehab-service/internal/app/drivers/mailer"
	"rehab-service/internal/pkg/constvars"
	"rehab-service/internal/pkg/dto/requests"
	"rehab-service/internal/pkg/exceptions"
	"strings"
)

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type smtpService struct {
	Client   *mailer.SMTPClient
	sendMail sendMailFunc
}

func NewSmtpService(client *mailer.SMTPClient) contracts.SMTPService {
	return &smtpService{
		Client:   client,
		sendMail: smtp.SendMail,
	}
}

func (svc *smtpService) SendEmail(ctx context.Context, request *requests.EmailPayload) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	from := svc.Client.EmailSender
	msg := []byte(fmt.Sprintf(constvars.EmailSendBasicEmailSubjectFormat, from, strings.Join(request.To, ", "), request.Subject, request.Body))
	addr := fmt.Sprintf("%s:%d", svc.Client.Host, svc.Client.Port)

	err := svc.sendMail(addr, svc.Client.Auth, from, request.To, msg)
	if err != nil {
		return exceptions.ErrSMTPSendEmail(err, svc.Client.Host)
	}
	return nil
}
