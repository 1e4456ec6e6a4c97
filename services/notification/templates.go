package notification

import (
	"bytes"
	"fmt"
	"html/template"
)

var templates = template.Must(template.New("emails").Parse(`
{{define "layout_start"}}<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto;color:#1f2937">
<h2 style="color:#1e3a8a">LawEase</h2>{{end}}
{{define "layout_end"}}<p style="color:#6b7280;font-size:12px">This is an automated message from LawEase.</p></div>{{end}}

{{define "booking_details"}}<table style="border-collapse:collapse">
<tr><td><strong>Date</strong></td><td>{{.Date}}</td></tr>
<tr><td><strong>Time</strong></td><td>{{.Time}}</td></tr>
<tr><td><strong>Duration</strong></td><td>{{.Duration}} minutes</td></tr>
<tr><td><strong>Amount</strong></td><td>{{.Currency}} {{printf "%.2f" .Total}}</td></tr>
</table>{{end}}

{{define "booking_request_lawyer"}}{{template "layout_start"}}
<p>Hello {{.LawyerName}},</p>
<p>{{.ClientName}} has requested a consultation with you.</p>
{{template "booking_details" .}}
{{if .Message}}<p><strong>Message from client:</strong> {{.Message}}</p>{{end}}
<p><a href="{{.Link}}">Review the request</a></p>
{{template "layout_end"}}{{end}}

{{define "booking_request_client"}}{{template "layout_start"}}
<p>Hello {{.ClientName}},</p>
<p>Your booking request with {{.LawyerName}} has been sent. You will be notified once the lawyer responds.</p>
{{template "booking_details" .}}
<p><a href="{{.Link}}">View your bookings</a></p>
{{template "layout_end"}}{{end}}

{{define "booking_cancelled"}}{{template "layout_start"}}
<p>Hello {{.RecipientName}},</p>
<p>The consultation between {{.ClientName}} and {{.LawyerName}} has been cancelled.</p>
{{template "booking_details" .}}
{{if .Reason}}<p><strong>Reason:</strong> {{.Reason}}</p>{{end}}
{{template "layout_end"}}{{end}}

{{define "booking_status"}}{{template "layout_start"}}
<p>Hello {{.ClientName}},</p>
<p>{{.LawyerName}} updated your booking to <strong>{{.Status}}</strong>.</p>
{{template "booking_details" .}}
{{if .Note}}<p><strong>Note from lawyer:</strong> {{.Note}}</p>{{end}}
<p><a href="{{.Link}}">View booking</a></p>
{{template "layout_end"}}{{end}}

{{define "booking_reminder"}}{{template "layout_start"}}
<p>Hello {{.RecipientName}},</p>
<p>This is a reminder that the consultation between {{.ClientName}} and {{.LawyerName}} starts in about 24 hours.</p>
{{template "booking_details" .}}
{{template "layout_end"}}{{end}}

{{define "contact_received"}}{{template "layout_start"}}
<p>New contact form submission.</p>
<p><strong>From:</strong> {{.Name}} &lt;{{.Email}}&gt;</p>
<p><strong>Subject:</strong> {{.Subject}}</p>
<p>{{.Message}}</p>
{{template "layout_end"}}{{end}}
`))

// bookingView is the data every booking template renders from.
type bookingView struct {
	RecipientName string
	ClientName    string
	LawyerName    string
	Date          string
	Time          string
	Duration      int
	Currency      string
	Total         float64
	Message       string
	Reason        string
	Note          string
	Status        string
	Link          string
}

func render(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
