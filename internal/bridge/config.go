package bridge

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"text/template"
)

//go:embed config.js.tmpl
var configSource string

var configTemplate = template.Must(template.New("config").Funcs(template.FuncMap{
	"jsstr": jsLiteral,
}).Parse(configSource))

// ScriptConfig names the page elements and endpoints the inline
// configuration script wires into the module's callbacks.
type ScriptConfig struct {
	HandleName string
	CanvasID   string
	StatusID   string
	ProgressID string
	SpinnerID  string
	OutputID   string
	SocketPath string
}

// ConfigScript renders the inline configuration: print sink, status line,
// progress bar, error banner, and the webglcontextlost guard.
func ConfigScript(id string, cfg ScriptConfig) (Script, error) {
	var buf bytes.Buffer
	data := struct {
		ScriptConfig
		ReloadMessage string
	}{cfg, ReloadMessage}
	if err := configTemplate.Execute(&buf, data); err != nil {
		return Script{}, fmt.Errorf("rendering config script: %w", err)
	}
	return Script{ID: id, Inline: buf.String()}, nil
}

// jsLiteral encodes s as a JavaScript string literal safe inside <script>.
func jsLiteral(s string) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	// json.Marshal escapes <, > and & so "</script>" cannot end the element.
	return string(b), nil
}
