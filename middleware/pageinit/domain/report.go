package domain

import "fmt"

type Category string

const (
	CategoryTheme   Category = "theme"
	CategoryToast   Category = "toast"
	CategoryForm    Category = "form"
	CategoryTooltip Category = "tooltip"
)

// Failure é a falha de um único widget; as demais inicializações seguem.
type Failure struct {
	Category Category
	// Index é a posição do elemento na ordem do documento (-1 quando não se aplica).
	Index int
	Err   error
}

func (f Failure) Error() string {
	if f.Index < 0 {
		return fmt.Sprintf("%s: %v", f.Category, f.Err)
	}
	return fmt.Sprintf("%s[%d]: %v", f.Category, f.Index, f.Err)
}

func (f Failure) Unwrap() error { return f.Err }

type Report struct {
	ThemeReset    bool
	ToastsShown   int
	FormsBound    int
	TooltipsReady int
	Failures      []Failure
}
