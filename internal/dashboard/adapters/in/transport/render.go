package transport

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const notAvailable = "Not Available"

// pages — страницы, у каждой свой набор шаблонов поверх layout
var pages = []string{
	"login",
	"overview",
	"analytics",
	"guides",
	"guide_requests",
	"guide_request",
	"users",
	"bookings",
	"contacts",
	"reports",
}

// mdRenderer — свободный текст (about, сообщения, жалобы) в безопасный HTML.
// Сырой HTML во входе экранируется: WithUnsafe не включён.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// Renderer — html/template страницы и фрагменты строк таблиц
type Renderer struct {
	pages    map[string]*template.Template
	partials *template.Template
	now      func() time.Time
}

// NewRenderer парсит встроенные шаблоны один раз при старте
func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template), now: time.Now}

	base, err := template.New("layout.html").
		Funcs(r.funcs()).
		ParseFS(templateFS, "templates/layout.html", "templates/partials.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	for _, name := range pages {
		t, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layout for %s: %w", name, err)
		}
		if _, err := t.ParseFS(templateFS, "templates/"+name+".html"); err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		r.pages[name] = t
	}
	r.partials = base
	return r, nil
}

// Page рендерит страницу целиком в буфер, затем пишет ответ:
// ошибка шаблона не оставляет полстраницы с кодом 200.
func (r *Renderer) Page(w http.ResponseWriter, status int, name string, data any) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Partial рендерит именованный фрагмент (строки таблицы для live search)
func (r *Renderer) Partial(w io.Writer, name string, data any) error {
	return r.partials.ExecuteTemplate(w, name, data)
}

// Static — встроенные css/js/картинки
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}

func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"date":       formatDate,
		"lastActive": r.lastActive,
		"markdown":   renderMarkdown,
		"avatar":     avatar,
		"initials":   initials,
		"label":      statusLabel,
		"money":      money,
		"join":       strings.Join,
		"resolved":   func(status string) bool { return status == "resolved" },
		"statusForm": func(action string, field template.HTML, returnTo string) statusForm {
			return statusForm{Action: action, CSRFField: field, ReturnTo: returnTo}
		},
	}
}

// statusForm — данные кнопки "Mark as Resolved"
type statusForm struct {
	Action    string
	CSRFField template.HTML
	ReturnTo  string
}

func parseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// formatDate — "Jan 2, 2006"; пустая дата — плейсхолдер
func formatDate(s string) string {
	t, ok := parseTime(s)
	if !ok {
		if s == "" {
			return notAvailable
		}
		return s
	}
	return t.Format("Jan 2, 2006")
}

// lastActive — дата и "N ago", либо плейсхолдер
func (r *Renderer) lastActive(s string) string {
	t, ok := parseTime(s)
	if !ok {
		return notAvailable
	}
	return fmt.Sprintf("%s (%s)", t.Local().Format("Jan 2, 2006 15:04"), ago(r.now().Sub(t)))
}

func ago(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d/time.Minute), "minute") + " ago"
	case d < 24*time.Hour:
		return plural(int(d/time.Hour), "hour") + " ago"
	case d < 30*24*time.Hour:
		return plural(int(d/(24*time.Hour)), "day") + " ago"
	case d < 365*24*time.Hour:
		return plural(int(d/(30*24*time.Hour)), "month") + " ago"
	default:
		return plural(int(d/(365*24*time.Hour)), "year") + " ago"
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

// avatar — фото или плейсхолдер для kind (user | guide)
func avatar(url, kind string) string {
	if strings.TrimSpace(url) != "" {
		return url
	}
	return "/static/placeholder-" + kind + ".svg"
}

func initials(name string) string {
	var out []rune
	for _, part := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(part)
		out = append(out, unicode.ToUpper(r))
		if len(out) == 2 {
			break
		}
	}
	return string(out)
}

// statusLabel — "in-progress" -> "In Progress"
func statusLabel(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == '_' || r == ' ' })
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

func money(v float64) string {
	return fmt.Sprintf("Rs. %.2f", v)
}
