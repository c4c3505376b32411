package domain

// Toast é uma notificação já instanciada.
type Toast interface {
	Show() error
}

// Tooltip é um tooltip já instanciado.
type Tooltip interface {
	Title() string
}

// WidgetKit é a biblioteca de widgets (ex.: Bootstrap), tratada como caixa-preta.
type WidgetKit interface {
	NewToast(el Element) (Toast, error)
	NewTooltip(el Element) (Tooltip, error)
}
