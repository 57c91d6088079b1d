package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"coachpanel/internal/adapters/api"
	"coachpanel/internal/adapters/http/middleware"
	"coachpanel/internal/domain/member"
	"coachpanel/internal/domain/receipt"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// internalError logs the real error and returns a generic message to the client.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// templatesDir is relative to the process working directory (the module
// root). Package tests point it at the local templates directory.
var templatesDir = "internal/adapters/http/templates"

func isHTMLRequest(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html") || strings.Contains(accept, "application/xhtml+xml")
}

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	sess, loggedIn := middleware.GetSessionFromContext(r.Context())

	funcMap := template.FuncMap{
		"isLoggedIn":   func() bool { return loggedIn },
		"currentAdmin": func() string { return sess.Admin.DisplayName() },
		"currentEmail": func() string { return sess.Admin.Email },
		"csrfToken":    func() string { return csrf.Token(r) },
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
		"formatDate": func(t time.Time) string {
			if t.IsZero() {
				return "—"
			}
			return t.Format("2 Jan 2006")
		},
		"formatDateTime": func(t time.Time) string {
			if t.IsZero() {
				return "—"
			}
			return t.Format("2 Jan 2006 15:04")
		},
		"formatCents": func(amount int64, currency string) string {
			if currency == "" {
				currency = "EUR"
			}
			return fmt.Sprintf("%s %.2f", strings.ToUpper(currency), float64(amount)/100)
		},
		"memberStatus": func(m member.Member) string { return m.EffectiveStatus() },
		"statusEditable": func(m member.Member) bool {
			return m.StatusEditable()
		},
		"memberStatuses": func() []string {
			return []string{
				member.StatusPaid,
				member.StatusPending,
				member.StatusFailed,
				member.StatusCancelled,
				member.StatusInactive,
			}
		},
		"isPending": func(status string) bool { return status == receipt.StatusPending },
		"add":       func(a, b int) int { return a + b },
		"sub":       func(a, b int) int { return a - b },
		"paginationQuery": func(page int, search string, perPage int) template.URL {
			q := fmt.Sprintf("page=%d", page)
			if search != "" {
				q += "&q=" + url.QueryEscape(search)
			}
			if perPage > 0 {
				q += fmt.Sprintf("&per_page=%d", perPage)
			}
			return template.URL(q)
		},
	}

	layoutPath := filepath.Join(templatesDir, "layout.html")
	pagePath := filepath.Join(templatesDir, templateName)
	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFiles(layoutPath, pagePath)
	if err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		http.Error(w, "Render error: "+err.Error(), http.StatusInternalServerError)
		return
	}
}

// userMessage maps an error to the line shown in a page banner: backend
// messages and local validation errors verbatim, network failures collapsed
// to the generic line.
func userMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return api.UserMessage(err)
	}
	if errors.Is(err, api.ErrUnavailable) {
		return api.UserMessage(err)
	}
	return err.Error()
}

func urlQueryEscape(s string) string {
	return url.QueryEscape(s)
}

// writeJSON writes v as a JSON response.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// writeJSONError writes the user-facing message for err with the backend's
// status when it reported one, 502 otherwise.
func writeJSONError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		status = apiErr.Status
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": api.UserMessage(err)})
}
