package domain

// Config enumera quais categorias de widget inicializar e os seletores usados.
type Config struct {
	ForceLightTheme bool
	Toasts          bool
	LoadingSpinner  bool
	Tooltips        bool

	ThemeAttr     string
	ThemeKey      string
	SpinnerID     string
	OptOutAttr    string
	ToastClass    string
	TooltipToggle string
}

func DefaultConfig() Config {
	return Config{
		ForceLightTheme: true,
		Toasts:          true,
		LoadingSpinner:  true,
		Tooltips:        true,
		ThemeAttr:       "data-theme",
		ThemeKey:        "theme",
		SpinnerID:       "loading-spinner",
		OptOutAttr:      "no-loading",
		ToastClass:      "toast",
		TooltipToggle:   "tooltip",
	}
}

// WithDefaults preenche seletores vazios com os valores padrão.
// As flags de categoria não são tocadas.
func (c Config) WithDefaults() Config {
	def := DefaultConfig()
	if c.ThemeAttr == "" {
		c.ThemeAttr = def.ThemeAttr
	}
	if c.ThemeKey == "" {
		c.ThemeKey = def.ThemeKey
	}
	if c.SpinnerID == "" {
		c.SpinnerID = def.SpinnerID
	}
	if c.OptOutAttr == "" {
		c.OptOutAttr = def.OptOutAttr
	}
	if c.ToastClass == "" {
		c.ToastClass = def.ToastClass
	}
	if c.TooltipToggle == "" {
		c.TooltipToggle = def.TooltipToggle
	}
	return c
}
