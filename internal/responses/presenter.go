package responses

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/SAP-F-2025/survey-service/internal/models"
)

const (
	EmptyStateTitle = "You haven't submitted any responses yet."
	EmptyStateHint  = "Complete some modules to see your responses here."

	DateLayout = "January 2, 2006 at 03:04 PM"
)

// SplitResponse breaks a comma-joined answer into its trimmed parts.
func SplitResponse(response string) []string {
	if response == "" {
		return nil
	}
	parts := strings.Split(response, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// FormatDate renders a submission time, empty for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

const groupedTemplate = `{{define "grouped"}}<div class="modules-container">
{{- range .Parents}}
<div class="module-section">
<h3 class="module-header">{{.Name}}</h3>
{{- range .Modules}}
<div class="module-subsection">
<h4 class="submodule-header">{{.Name}}</h4>
<div class="responses-list">
{{- range .Records}}
<div class="response-item">
<div class="question">{{.QuestionText}}</div>
<div class="answer">{{range $i, $part := split .Response}}{{if $i}}<br>{{end}}{{$part}}{{end}}</div>
<div class="timestamp">Submitted on {{date .CreatedAt}}</div>
</div>
{{- end}}
</div>
</div>
{{- end}}
</div>
{{- end}}
</div>{{end}}`

const emptyTemplate = `{{define "empty"}}<div class="empty-state">
<p>{{.Title}}</p>
<p>{{.Hint}}</p>
</div>{{end}}`

const errorTemplate = `{{define "error"}}<p class="error-message">{{.}}</p>{{end}}`

// Presenter renders response lists to markup.
type Presenter struct {
	tmpl *template.Template
}

func NewPresenter() *Presenter {
	funcs := template.FuncMap{
		"split": SplitResponse,
		"date":  FormatDate,
	}
	tmpl := template.Must(template.New("responses").Funcs(funcs).Parse(groupedTemplate))
	template.Must(tmpl.Parse(emptyTemplate))
	template.Must(tmpl.Parse(errorTemplate))
	return &Presenter{tmpl: tmpl}
}

// Present groups records and renders them. An empty list renders the
// empty state instead of an empty grouping.
func (p *Presenter) Present(records []models.ResponseRecord) (template.HTML, error) {
	grouped := Aggregate(records)
	if grouped.Empty() {
		return p.execute("empty", struct{ Title, Hint string }{EmptyStateTitle, EmptyStateHint})
	}
	return p.execute("grouped", grouped)
}

// Error renders a status message block.
func (p *Presenter) Error(message string) (template.HTML, error) {
	return p.execute("error", message)
}

func (p *Presenter) execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := p.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}
