package templates

import (
	"bytes"
	"fmt"
	"html/template"
)

const Welcome = "welcome"

var welcomeTpl = template.Must(template.New(Welcome).Parse(`<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; color: #222;">
    <h2>Welcome to {{.AppName}}, {{.FullName}}!</h2>
    <p>Your channel <strong>@{{.Username}}</strong> is ready.</p>
    <p>Upload your first video and start building your audience.</p>
    {{if .SupportURL}}<p><a href="{{.SupportURL}}">Need help?</a></p>{{end}}
  </body>
</html>`))

// RenderHTML renders a named template with the given data.
func RenderHTML(name string, data map[string]any) (string, error) {
	switch name {
	case Welcome:
		var buf bytes.Buffer
		if err := welcomeTpl.Execute(&buf, data); err != nil {
			return "", err
		}
		return buf.String(), nil
	default:
		return "", fmt.Errorf("unknown email template %q", name)
	}
}

// SubjectFor maps a template name to its subject line.
func SubjectFor(name string, data map[string]any) string {
	switch name {
	case Welcome:
		if v, ok := data["AppName"]; ok {
			return fmt.Sprintf("Welcome to %v", v)
		}
		return "Welcome"
	default:
		return "Notification"
	}
}
