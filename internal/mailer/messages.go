package mailer

import (
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/birthdaywisher/wisher-server/internal/domain"
)

// welcomeTemplate renders the HTML body sent to the email address attached
// to a newly created birthday record.
var welcomeTemplate = template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #333;">
  <h1>Your birthday page is ready, {{.Name}}!</h1>
  <p>We'll celebrate you on <strong>{{.Date}}</strong>.</p>
  {{if .Message}}<p>Your message: <em>{{.Message}}</em></p>{{end}}
  <p>Share your page so friends can sign your guestbook:</p>
  <p><a href="{{.PageURL}}">{{.PageURL}}</a></p>
</body>
</html>
`))

type welcomeData struct {
	Name    string
	Date    string
	Message string
	PageURL string
}

// Welcome builds the welcome email for a new birthday record. Returns nil
// when the record carries no email address.
func Welcome(b *domain.Birthday, siteURL string) (*Message, error) {
	if b.Email == "" {
		return nil, nil
	}

	pageURL := strings.TrimRight(siteURL, "/") + "/birthday?name=" + url.QueryEscape(b.Name)

	var body strings.Builder
	err := welcomeTemplate.Execute(&body, welcomeData{
		Name:    b.Name,
		Date:    b.Date.Format("January 2"),
		Message: b.Message,
		PageURL: pageURL,
	})
	if err != nil {
		return nil, fmt.Errorf("render welcome email: %w", err)
	}

	return &Message{
		To:      b.Email,
		Subject: "Your birthday page is ready!",
		HTML:    body.String(),
		Text:    fmt.Sprintf("Your birthday page is ready, %s! Share it: %s", b.Name, pageURL),
	}, nil
}

// GuestbookNotification builds the operator notification for a new
// guestbook message.
func GuestbookNotification(adminEmail, name string, entry domain.GuestbookEntry) *Message {
	return &Message{
		To:      adminEmail,
		Subject: fmt.Sprintf("New guestbook message for %s", name),
		Text: fmt.Sprintf("A new guestbook message was posted for %s at %s:\n\n%s\n",
			name, entry.Timestamp.Format("2006-01-02 15:04:05 MST"), entry.Text),
	}
}

// ContactNotification builds the operator notification for a contact-form
// submission.
func ContactNotification(adminEmail string, msg domain.ContactMessage) *Message {
	return &Message{
		To:      adminEmail,
		Subject: fmt.Sprintf("Contact form message from %s", msg.Email),
		Text:    fmt.Sprintf("From: %s\n\n%s\n", msg.Email, msg.Message),
	}
}
