package core

import (
	"bytes"
	"errors"
	"html/template"
	"strings"

	"github.com/ragportal/portal-ui/internal/http/ui/viewmodel"
	"github.com/ragportal/portal-ui/internal/http/uiutil"
)

// Deps holds optional dependencies for constructing the core template func map.
type Deps struct {
	Template           **template.Template
	ContentTemplateFor func(string) string
}

// Funcs returns a template.FuncMap containing helpers that are broadly useful across templates.
func Funcs(deps Deps) template.FuncMap {
	funcs := template.FuncMap{
		"sectionTmpl":  deps.ContentTemplateFor,
		"friendlyTime": uiutil.FriendlyTimestamp,
		"formatBytes":  formatBytes,
		"add":          func(a, b int) int { return a + b },
		"sub":          func(a, b int) int { return a - b },
		"truncateText": TruncateText,
		"toneClass":    toneClass,
		"initial":      initial,
		"navItem":      navItem,
		"pager":        pager,
	}

	funcs["renderSection"] = func(page string, data any) (template.HTML, error) {
		if deps.Template == nil || *deps.Template == nil {
			return "", errors.New("template not initialized")
		}
		var buf bytes.Buffer
		if err := (*deps.Template).ExecuteTemplate(&buf, deps.ContentTemplateFor(page), data); err != nil {
			return "", err
		}
		// #nosec G203 - rendered by our own html/template set; values were escaped during ExecuteTemplate.
		return template.HTML(buf.String()), nil
	}
	return funcs
}

// formatBytes accepts the optional sizes the backend reports.
func formatBytes(v any) string {
	switch n := v.(type) {
	case int64:
		return uiutil.FormatBytes(n)
	case *int64:
		if n == nil {
			return "—"
		}
		return uiutil.FormatBytes(*n)
	case int:
		return uiutil.FormatBytes(int64(n))
	default:
		return "—"
	}
}

// toneClass maps a status tone to a badge class.
func toneClass(tone string) string {
	switch tone {
	case "success":
		return "badge-success"
	case "warning":
		return "badge-warning"
	case "error":
		return "badge-danger"
	default:
		return "badge-light"
	}
}

// initial returns the upper-cased first letter of s, or "?".
func initial(s string) string {
	for _, r := range strings.TrimSpace(s) {
		return strings.ToUpper(string(r))
	}
	return "?"
}

// TruncateText truncates a string to a maximum number of runes (not bytes).
// Adds an ellipsis (…) when truncated.
func TruncateText(s string, maxLen int) string {
	if maxLen <= 0 {
		return s
	}
	return uiutil.TruncateWithEllipsis(s, maxLen)
}

func navItem(href, label string, active bool) viewmodel.NavItem {
	return viewmodel.NavItem{Href: href, Label: label, Active: active}
}

// pager pairs a list's pagination with the element its links replace.
func pager(p viewmodel.Pagination, target string) viewmodel.Pager {
	return viewmodel.Pager{Pagination: p, Target: target}
}
