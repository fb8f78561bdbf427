package render

import (
	"encoding/json"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

const (
	defaultTheme     = "dark"
	fallbackTemplate = "base.svg.tmpl"
	themeConfigFile  = "templates.json"
)

// themeConfig mirrors themes/templates.json: the active theme name and
// the template file registered for each theme.
type themeConfig struct {
	CurrentTheme string            `json:"current-theme"`
	Templates    map[string]string `json:"templates"`
}

// resolveTemplate reads the theme configuration and returns the path of
// the active theme's template. The config is read on every render so
// theme edits show up without a restart; a broken config falls back to
// the base template instead of failing the request.
func (p *Pipeline) resolveTemplate() string {
	name := fallbackTemplate

	data, err := os.ReadFile(filepath.Join(p.themeDir, themeConfigFile))
	if err != nil {
		p.logger.Warn("theme config unreadable, using fallback template", zap.Error(err))
		return filepath.Join(p.themeDir, name)
	}

	var cfg themeConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		p.logger.Warn("theme config invalid, using fallback template", zap.Error(err))
		return filepath.Join(p.themeDir, name)
	}

	theme := cfg.CurrentTheme
	if theme == "" {
		theme = defaultTheme
	}
	if file, ok := cfg.Templates[theme]; ok && file != "" {
		name = file
	}

	return filepath.Join(p.themeDir, name)
}
