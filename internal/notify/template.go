package notify

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/jonesrussell/north-cloud/lead-engine/internal/domain"
)

type alertData struct {
	Lead         *domain.Lead
	Company      *domain.Company
	DashboardURL string
}

// DossierLink builds the dashboard link for this lead, empty when no
// dashboard is configured.
func (d alertData) DossierLink() string {
	if d.DashboardURL == "" {
		return ""
	}
	return fmt.Sprintf("%s/leads/%d", strings.TrimRight(d.DashboardURL, "/"), d.Lead.ID)
}

var alertTemplate = template.Must(template.New("lead_alert").Funcs(template.FuncMap{
	"percent": func(confidence float64) string {
		return fmt.Sprintf("%.0f%%", confidence*100)
	},
	"title": func(s string) string {
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	},
	"join": func(items []string) string {
		return strings.Join(items, ", ")
	},
}).Parse(`<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>New {{title (printf "%s" .Lead.IntentStrength)}} Intent Lead: {{.Company.Name}}</h2>
  <table cellpadding="6" style="border-collapse: collapse;">
    <tr><td><b>Lead Score</b></td><td>{{printf "%.0f" .Lead.LeadScore}} / 100</td></tr>
    <tr><td><b>Intent</b></td><td>{{title (printf "%s" .Lead.IntentStrength)}}</td></tr>
    {{if .Lead.TerritoryState}}<tr><td><b>Territory</b></td><td>{{title .Lead.TerritoryState}}</td></tr>{{end}}
    <tr><td><b>Signal Type</b></td><td>{{title .Lead.SignalType}}</td></tr>
    {{if .Lead.Keywords}}<tr><td><b>Keywords</b></td><td>{{join .Lead.Keywords}}</td></tr>{{end}}
    <tr><td><b>Next Action</b></td><td>{{.Lead.NextAction}} (within {{.Lead.UrgencyDays}} days)</td></tr>
  </table>

  <h3>Recommended Products</h3>
  <ul>
    {{range .Lead.RecommendedProducts}}
    <li><b>{{.Product}}</b> ({{percent .Confidence}} confidence): {{.Reason}}</li>
    {{end}}
  </ul>

  <h3>Signal</h3>
  <p>{{.Lead.SignalText}}</p>
  {{if .Lead.SignalURL}}<p><a href="{{.Lead.SignalURL}}">View original signal</a></p>{{end}}
  {{if .DossierLink}}<p><a href="{{.DossierLink}}">Open lead dossier</a></p>{{end}}
</body>
</html>
`))

func renderAlertBody(data alertData) (string, error) {
	var b strings.Builder
	if err := alertTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to render lead alert template: %w", err)
	}
	return b.String(), nil
}
