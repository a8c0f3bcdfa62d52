package meeting

import (
	"bytes"
	htmltemplate "html/template"
	"text/template"
	"time"

	"SDRAdmin/internal/config"
	"SDRAdmin/internal/lead"
)

const invitationDateLayout = "Monday, January 2, 2006"

type invitationData struct {
	Greeting    string
	Title       string
	Date        string
	Time        string
	Duration    int
	Description string
	Type        Type
	Link        string
	Team        string
}

var invitationText = template.Must(template.New("invitation.txt").Parse(`Meeting Invitation: {{.Title}}

Hello {{.Greeting}},

You have been invited to attend a meeting with our team.

Meeting Details:
- Title: {{.Title}}
- Date: {{.Date}}
- Time: {{.Time}}
- Duration: {{.Duration}} minutes
- Description: {{.Description}}
- Type: {{.Type}}

To join the meeting, please visit: {{.Link}}

Important Notes:
- Please join the meeting 5 minutes before the scheduled time
- Ensure you have a stable internet connection
- Test your microphone and camera before joining
- If you have any issues, please contact us immediately

We look forward to meeting with you!

Best regards,
The {{.Team}} Team
`))

var invitationHTML = htmltemplate.Must(htmltemplate.New("invitation.html").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Meeting Invitation</title>
<style>
body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
.container { max-width: 600px; margin: 0 auto; padding: 20px; }
.header { background: #667eea; color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
.content { background: #f9f9f9; padding: 30px; border-radius: 0 0 10px 10px; }
.details { background: white; padding: 20px; margin: 20px 0; border-radius: 8px; border-left: 4px solid #667eea; }
.join { display: inline-block; background: #667eea; color: white; padding: 15px 30px; text-decoration: none; border-radius: 25px; font-weight: bold; }
.footer { text-align: center; margin-top: 30px; color: #666; font-size: 14px; }
</style>
</head>
<body>
<div class="container">
  <div class="header">
    <h1>Meeting Invitation</h1>
    <p>You have been invited to a meeting</p>
  </div>
  <div class="content">
    <h2>Hello {{.Greeting}},</h2>
    <p>You have been invited to attend a meeting with our team. Please find the details below:</p>
    <div class="details">
      <h3>{{.Title}}</h3>
      <p><strong>Date:</strong> {{.Date}}</p>
      <p><strong>Time:</strong> {{.Time}}</p>
      <p><strong>Duration:</strong> {{.Duration}} minutes</p>
      <p><strong>Description:</strong> {{.Description}}</p>
      <p><strong>Type:</strong> {{.Type}}</p>
    </div>
    <p>To join the meeting, please click the button below:</p>
    <a href="{{.Link}}" class="join">Join Meeting</a>
    <p><strong>Meeting Link:</strong> <a href="{{.Link}}">{{.Link}}</a></p>
    <p><strong>Important Notes:</strong></p>
    <ul>
      <li>Please join the meeting 5 minutes before the scheduled time</li>
      <li>Ensure you have a stable internet connection</li>
      <li>Test your microphone and camera before joining</li>
      <li>If you have any issues, please contact us immediately</li>
    </ul>
    <p>We look forward to meeting with you!</p>
    <p>Best regards,<br>The {{.Team}} Team</p>
  </div>
  <div class="footer">
    <p>This is an automated email. Please do not reply to this message.</p>
  </div>
</div>
</body>
</html>
`))

// RenderInvitation builds the invitation email for m. A nil lead gets a generic greeting.
func RenderInvitation(to string, m *Meeting, l *lead.Lead, link, team string) (config.EmailMessage, error) {
	data := invitationData{
		Greeting:    "there",
		Title:       m.Title,
		Date:        m.ScheduledDate.In(time.Local).Format(invitationDateLayout),
		Time:        m.ScheduledTime,
		Duration:    m.Duration,
		Description: m.Description,
		Type:        m.MeetingType,
		Link:        link,
		Team:        team,
	}
	if l != nil && l.Name != "" {
		data.Greeting = l.Name
	}

	var text, html bytes.Buffer
	if err := invitationText.Execute(&text, data); err != nil {
		return config.EmailMessage{}, err
	}
	if err := invitationHTML.Execute(&html, data); err != nil {
		return config.EmailMessage{}, err
	}

	return config.EmailMessage{
		To:      to,
		Subject: "Meeting Invitation: " + m.Title,
		Text:    text.String(),
		HTML:    html.String(),
	}, nil
}
