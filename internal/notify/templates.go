package notify

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"
)

type alertView struct {
	Confirmation string
	Priority     string
	Color        string
	ResponseTime string
	TypeLabel    string
	Property     string
	Unit         string
	GuestName    string
	GuestEmail   string
	GuestPhone   string
	PhotoCount   int
	Message      string
	Generated    string
}

var priorityColors = map[string]string{
	"urgent": "#ef4444",
	"high":   "#f97316",
	"normal": "#3b82f6",
}

func newAlertView(ev Event) alertView {
	r := ev.Request
	v := alertView{
		Confirmation: ev.ConfirmationNumber,
		Priority:     strings.ToUpper(string(r.Priority)),
		Color:        priorityColors[string(r.Priority)],
		ResponseTime: r.ResponseTime(),
		TypeLabel:    r.RequestType.Label(),
		Property:     r.PropertyAddress,
		GuestName:    r.GuestName,
		GuestEmail:   r.GuestEmail,
		PhotoCount:   len(r.Photos),
		Message:      r.Message,
		Generated:    ev.At.Format("January 02, 2006 at 03:04 PM"),
	}
	if v.Color == "" {
		v.Color = priorityColors["normal"]
	}
	if r.GuestPhone != nil {
		v.GuestPhone = *r.GuestPhone
	}
	if r.UnitNumber != nil {
		v.Unit = *r.UnitNumber
	}
	if ev.At.IsZero() {
		v.Generated = time.Now().Format("January 02, 2006 at 03:04 PM")
	}
	return v
}

var staffText = texttemplate.Must(texttemplate.New("staff.txt").Parse(`LuxServ 365 - New Guest Request

PRIORITY: {{.Priority}}
Confirmation Number: {{.Confirmation}}
Response Required Within: {{.ResponseTime}}
Generated: {{.Generated}}

========================================

REQUEST DETAILS:
Request Type: {{.TypeLabel}}
Property: {{.Property}}{{if .Unit}} (Unit {{.Unit}}){{end}}

GUEST INFORMATION:
Name: {{.GuestName}}
Email: {{.GuestEmail}}
{{if .GuestPhone}}Phone: {{.GuestPhone}}
{{end}}{{if .PhotoCount}}Photos Attached: {{.PhotoCount}} photo(s)
{{end}}
MESSAGE:
{{.Message}}

========================================

NEXT STEPS:
1. Review the request details above
2. Contact the guest if needed: {{.GuestEmail}}
3. Update request status in admin dashboard

This is an automated notification from LuxServ 365 Guest Portal.
`))

var staffHTML = htmltemplate.Must(htmltemplate.New("staff.html").Funcs(htmltemplate.FuncMap{
	"lines": func(s string) []string { return strings.Split(s, "\n") },
}).Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>New Guest Request - {{.Confirmation}}</title></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1 style="background: #3b82f6; color: white; padding: 20px; margin: 0;">LuxServ 365 - New Guest Request</h1>
  <div style="background: #f8fafc; padding: 20px;">
    <p><span style="padding: 4px 12px; border-radius: 20px; color: white; font-weight: bold; background: {{.Color}};">{{.Priority}} PRIORITY</span></p>
    <p><strong>Confirmation Number:</strong> {{.Confirmation}}</p>
    <p><strong>Response Required Within:</strong> {{.ResponseTime}}</p>
    <h3>Request Details</h3>
    <p><strong>Request Type:</strong> {{.TypeLabel}}</p>
    <p><strong>Property:</strong> {{.Property}}{{if .Unit}} (Unit {{.Unit}}){{end}}</p>
    <h3>Guest Information</h3>
    <p><strong>Name:</strong> {{.GuestName}}</p>
    <p><strong>Email:</strong> <a href="mailto:{{.GuestEmail}}">{{.GuestEmail}}</a></p>
    {{if .GuestPhone}}<p><strong>Phone:</strong> {{.GuestPhone}}</p>{{end}}
    {{if .PhotoCount}}<p><strong>Photos Attached:</strong> {{.PhotoCount}} photo(s)</p>{{end}}
    <h3>Message</h3>
    <div style="background: white; padding: 15px; border-left: 4px solid {{.Color}};">{{range $i, $l := lines .Message}}{{if $i}}<br>{{end}}{{$l}}{{end}}</div>
  </div>
  <p style="text-align: center; color: #6b7280; font-size: 12px;">Generated on {{.Generated}}</p>
</div>
</body>
</html>
`))

func renderStaffAlert(ev Event) (string, string, error) {
	v := newAlertView(ev)
	var text, html bytes.Buffer
	if err := staffText.Execute(&text, v); err != nil {
		return "", "", fmt.Errorf("render text alert: %w", err)
	}
	if err := staffHTML.Execute(&html, v); err != nil {
		return "", "", fmt.Errorf("render html alert: %w", err)
	}
	return text.String(), html.String(), nil
}
