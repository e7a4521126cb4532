package web

import (
	"embed"
	"fmt"
	"html/template"
	"time"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// mustTemplates парсит встроенные шаблоны страниц. Суммы хранятся в центах,
// наружу выводятся через currency.
func mustTemplates() *template.Template {
	funcs := template.FuncMap{
		"currency": func(cents int64) string {
			return fmt.Sprintf("$%.2f", float64(cents)/100) //nolint:mnd
		},
		"dollars": func(cents int64) string {
			return fmt.Sprintf("%.2f", float64(cents)/100) //nolint:mnd
		},
		"shortDate": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
		"isoDate": func(t time.Time) string {
			return t.Format(time.DateOnly)
		},
		"pages": func(total uint) []uint {
			result := make([]uint, 0, total)
			for i := uint(1); i <= total; i++ {
				result = append(result, i)
			}
			return result
		},
	}
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl"))
}
