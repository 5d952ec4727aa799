package mail

import (
	"bytes"
	"fmt"
	"io"
	"text/template"

	"gopkg.in/gomail.v2"

	"github.com/xcabral/leaddesk/internal/report"
)

var reportBody = template.Must(template.New("report").Parse(`
<p>Hello,</p>
<p>Your <strong>{{.Kind}}</strong> report for {{.StartDate}} to {{.EndDate}} is attached as CSV.</p>
<p>— LeadDesk</p>
`))

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

// SendReport emails the rendered CSV as an attachment.
func (s *EmailSender) SendReport(to string, data report.Data, csv []byte) error {
	var body bytes.Buffer
	err := reportBody.Execute(&body, reportEmailData{
		Kind:      data.Kind,
		StartDate: data.StartDate,
		EndDate:   data.EndDate,
	})
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Your %s report (%s – %s)", data.Kind, data.StartDate, data.EndDate))
	m.SetBody("text/html", body.String())
	m.Attach(
		fmt.Sprintf("%s-report.csv", data.Kind),
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(csv)
			return err
		}),
	)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email via SMTP: %w", err)
	}

	return nil
}
