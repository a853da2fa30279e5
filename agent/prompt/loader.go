package prompt

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"
	"time"

	contractx "github.com/surrogate-labs/surrogate-agent/agent/contract"
)

//go:embed template/system.txt
var systemRaw string

var systemTmpl = template.Must(template.New("system").Parse(strings.TrimSpace(systemRaw)))

// templateData is the flattened view the system template consumes.
type templateData struct {
	Now      string
	UserName string
	Events   string
}

// RenderSystem fills the embedded system instruction with the per-request
// side context. Empty fields fall back to the same defaults the model was
// tuned against ("None" for events, "User" for the name).
func RenderSystem(side contractx.SideContext) (string, error) {
	data := templateData{
		Now:      side.Now.Format(time.RFC1123),
		UserName: side.UserName,
		Events:   side.EventsSummary,
	}
	if data.UserName == "" {
		data.UserName = "User"
	}
	if data.Events == "" {
		data.Events = "None"
	}

	var sb strings.Builder
	if err := systemTmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render system instruction: %w", err)
	}
	return sb.String(), nil
}
