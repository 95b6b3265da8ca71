package printing

import (
	"bytes"
	"context"
	"html/template"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TemplateEngine renders billing documents to HTML using Go's
// html/template package with formatting helpers.
type TemplateEngine struct {
	funcMap   template.FuncMap
	templates *template.Template
}

// NewTemplateEngine creates a template engine with the built-in invoice
// and receipt templates parsed and ready.
func NewTemplateEngine() (*TemplateEngine, error) {
	e := &TemplateEngine{}
	e.funcMap = template.FuncMap{
		"formatMoney":    formatMoney,
		"formatDecimal":  formatDecimal,
		"formatDate":     formatDate,
		"formatDateTime": formatDateTime,
		"upper":          strings.ToUpper,
		"title":          titleCase,
	}

	tmpl := template.New("documents").Funcs(e.funcMap)
	var err error
	for name, content := range builtinTemplates() {
		tmpl, err = tmpl.New(name).Parse(content)
		if err != nil {
			return nil, NewRenderError(ErrCodeInvalidHTML, "failed to parse template "+name, err)
		}
	}
	e.templates = tmpl
	return e, nil
}

// Render executes a named template against the given view data
func (e *TemplateEngine) Render(ctx context.Context, name string, data interface{}) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	if e.templates.Lookup(name) == nil {
		return "", NewRenderError(ErrCodeInvalidHTML, "unknown template: "+name, nil)
	}

	var buf bytes.Buffer
	if err := e.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", NewRenderError(ErrCodeRenderFailed, "template execution failed: "+name, err)
	}
	return buf.String(), nil
}

func formatMoney(amount decimal.Decimal) string {
	return "KES " + amount.StringFixed(2)
}

func formatDecimal(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006 15:04")
}

var titleCaser = cases.Title(language.English)

func titleCase(s string) string {
	return titleCaser.String(s)
}
