package web

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"strings"
	"time"

	"tastycorner/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var funcs = template.FuncMap{
	"money": func(v float64) string {
		return fmt.Sprintf("$%.2f", v)
	},
	"hours": func(v float64) string {
		return fmt.Sprintf("%.2f", v)
	},
	"json": func(v interface{}) (template.JS, error) {
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return template.JS(b), nil
	},
	"datetime": func(v interface{}) string {
		switch t := v.(type) {
		case time.Time:
			return t.Format("Jan 2, 2006 3:04 PM")
		case *time.Time:
			if t == nil {
				return "-"
			}
			return t.Format("3:04 PM")
		}
		return ""
	},
	"label": func(v interface{}) string {
		s := strings.ReplaceAll(fmt.Sprint(v), "_", " ")
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	},
	"list": func(v ...string) []string {
		return v
	},
	"weekdays": func() []string {
		return models.Weekdays
	},
	"deref": func(v interface{}) interface{} {
		switch p := v.(type) {
		case *string:
			if p != nil {
				return *p
			}
		case *float64:
			if p != nil {
				return *p
			}
		case *int:
			if p != nil {
				return *p
			}
		}
		return ""
	},
}

// Templates parses every page and partial into one set.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}

// Static returns the stylesheet and scripts served under /static.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
