package httpx

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/plugashop/storefront/internal/domain/i18n"
)

// TemplateRenderer renders HTML pages for browser responses.
type TemplateRenderer struct {
	t       *template.Template
	tfs     fs.FS
	devMode bool
	logger  *slog.Logger
}

// TemplateRendererConfig holds configuration for creating a TemplateRenderer.
type TemplateRendererConfig struct {
	TemplateFS fs.FS        // Filesystem containing templates (required)
	DevMode    bool         // Reparse templates on each render
	Logger     *slog.Logger // Logger for template errors (optional)
}

// NewTemplateRenderer constructs a renderer by parsing templates from the
// provided config. In dev mode templates are reparsed on every render so
// edits show up without a restart.
func NewTemplateRenderer(cfg TemplateRendererConfig) (*TemplateRenderer, error) {
	if cfg.TemplateFS == nil {
		return nil, errors.New("TemplateFS is required")
	}

	t, err := parseTemplates(cfg.TemplateFS)
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Error("template parsing failed",
				slog.Any("error", err),
				slog.String("phase", "initialization"),
			)
		}
		return nil, err
	}

	return &TemplateRenderer{
		t:       t,
		tfs:     cfg.TemplateFS,
		devMode: cfg.DevMode,
		logger:  cfg.Logger,
	}, nil
}

func parseTemplates(fsys fs.FS) (*template.Template, error) {
	return template.New("root").Funcs(templateFuncs()).ParseFS(fsys,
		"*.tmpl",
		"pages/*.tmpl",
		"partials/*.tmpl",
	)
}

// RenderPage renders a full page: the named page template wrapped in the
// shared layout.
func (r *TemplateRenderer) RenderPage(w http.ResponseWriter, page string, data any) error {
	return r.render(w, page, data)
}

// RenderError renders the error page.
func (r *TemplateRenderer) RenderError(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	return r.writeTemplate(w, "error", data)
}

func (r *TemplateRenderer) render(w http.ResponseWriter, name string, data any) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return r.writeTemplate(w, name, data)
}

func (r *TemplateRenderer) writeTemplate(w http.ResponseWriter, name string, data any) error {
	t := r.t
	if r.devMode {
		fresh, err := parseTemplates(r.tfs)
		if err != nil {
			r.logTemplateError(name, err)
			return err
		}
		t = fresh
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		r.logTemplateError(name, err)
		return err
	}
	if _, err := buf.WriteTo(w); err != nil {
		r.logTemplateError(name, err)
		return err
	}
	return nil
}

func (r *TemplateRenderer) logTemplateError(name string, err error) {
	if r.logger == nil || err == nil {
		return
	}
	r.logger.Error("template execution failed",
		slog.String("template", name),
		slog.Any("error", err),
	)
}

// priceLocales maps UI languages to the locale used for currency formatting.
var priceLocales = map[string]language.Tag{
	"pt-BR": language.BrazilianPortuguese,
	"en":    language.AmericanEnglish,
	"es":    language.EuropeanSpanish,
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatPrice": func(lang string, amount float64) string {
			tag, ok := priceLocales[lang]
			if !ok {
				tag = priceLocales["pt-BR"]
			}
			p := message.NewPrinter(tag)
			if lang == "pt-BR" {
				return p.Sprintf("R$ %.2f", amount)
			}
			return p.Sprintf("$%.2f", amount)
		},
		"localized": func(lang string, text i18n.Text) string {
			return text.Resolve(lang)
		},
		"pluralize": func(n int, singular, plural string) string {
			if n == 1 {
				return fmt.Sprintf("%d %s", n, singular)
			}
			return fmt.Sprintf("%d %s", n, plural)
		},
		"deref": func(f *float64) float64 {
			if f == nil {
				return 0
			}
			return *f
		},
		"dict": func(pairs ...any) (map[string]any, error) {
			if len(pairs)%2 != 0 {
				return nil, errors.New("dict requires an even number of arguments")
			}
			m := make(map[string]any, len(pairs)/2)
			for i := 0; i < len(pairs); i += 2 {
				key, ok := pairs[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict key %d is not a string", i)
				}
				m[key] = pairs[i+1]
			}
			return m, nil
		},
	}
}
