package pageinit

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"painel-web/middleware/pageinit/domain"

	"gopkg.in/yaml.v3"
)

// FileConfig é o formato YAML da configuração de inicialização.
// Campos ausentes mantêm o padrão (por isso as flags são ponteiros).
type FileConfig struct {
	PageInit struct {
		ForceLightTheme *bool  `yaml:"forceLightTheme"`
		Toasts          *bool  `yaml:"toasts"`
		LoadingSpinner  *bool  `yaml:"loadingSpinner"`
		Tooltips        *bool  `yaml:"tooltips"`
		ThemeAttr       string `yaml:"themeAttr"`
		ThemeKey        string `yaml:"themeKey"`
		SpinnerID       string `yaml:"spinnerId"`
		OptOutAttr      string `yaml:"optOutAttr"`
		ToastClass      string `yaml:"toastClass"`
		TooltipToggle   string `yaml:"tooltipToggle"`
	} `yaml:"pageinit"`
}

// LoadConfig lê o YAML (se path != "") sobre DefaultConfig e aplica overrides
// de ambiente (PAGEINIT_THEME, PAGEINIT_TOASTS, PAGEINIT_SPINNER, PAGEINIT_TOOLTIPS).
func LoadConfig(path string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return domain.Config{}, fmt.Errorf("read pageinit config: %w", err)
		}
		var parsed FileConfig
		if err := yaml.Unmarshal(data, &parsed); err != nil {
			return domain.Config{}, fmt.Errorf("parse pageinit config %s: %w", path, err)
		}
		Merge(&cfg, parsed)
	}

	ApplyEnvOverrides(&cfg)
	return cfg, nil
}

func Merge(dst *domain.Config, src FileConfig) {
	p := src.PageInit
	if p.ForceLightTheme != nil {
		dst.ForceLightTheme = *p.ForceLightTheme
	}
	if p.Toasts != nil {
		dst.Toasts = *p.Toasts
	}
	if p.LoadingSpinner != nil {
		dst.LoadingSpinner = *p.LoadingSpinner
	}
	if p.Tooltips != nil {
		dst.Tooltips = *p.Tooltips
	}
	if p.ThemeAttr != "" {
		dst.ThemeAttr = p.ThemeAttr
	}
	if p.ThemeKey != "" {
		dst.ThemeKey = p.ThemeKey
	}
	if p.SpinnerID != "" {
		dst.SpinnerID = p.SpinnerID
	}
	if p.OptOutAttr != "" {
		dst.OptOutAttr = p.OptOutAttr
	}
	if p.ToastClass != "" {
		dst.ToastClass = p.ToastClass
	}
	if p.TooltipToggle != "" {
		dst.TooltipToggle = p.TooltipToggle
	}
}

func ApplyEnvOverrides(cfg *domain.Config) {
	setBool := func(key string, dst *bool) {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return
		}
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
	setBool("PAGEINIT_THEME", &cfg.ForceLightTheme)
	setBool("PAGEINIT_TOASTS", &cfg.Toasts)
	setBool("PAGEINIT_SPINNER", &cfg.LoadingSpinner)
	setBool("PAGEINIT_TOOLTIPS", &cfg.Tooltips)
}
