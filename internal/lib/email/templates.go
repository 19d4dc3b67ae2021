package email

import (
	"embed"
	"fmt"
	"html/template"
)

// Template is a string-based enum naming email templates.
type Template string

const (
	// TemplateInvoiceCreated corresponds to templates/invoice_created.html
	TemplateInvoiceCreated Template = "invoice_created"
)

//go:embed templates/*.html
var templateFS embed.FS

// templates is parsed once; a broken template stops the process at start-up.
var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

func lookup(name Template) (*template.Template, error) {
	tmpl := templates.Lookup(fmt.Sprintf("%s.html", name))
	if tmpl == nil {
		return nil, fmt.Errorf("unknown email template %q", name)
	}
	return tmpl, nil
}

// PreviewData holds sample values per template for local previews and
// template tests.
var PreviewData = map[Template]any{
	TemplateInvoiceCreated: InvoiceCreatedData{
		CompanyName:  "Acme",
		CustomerName: "Lee Robinson",
		InvoiceID:    "3958dc9e-712f-4377-85e9-fec4b6a6442a",
		Amount:       "$157.95",
		Status:       "pending",
		Date:         "2024-03-10",
	},
}
