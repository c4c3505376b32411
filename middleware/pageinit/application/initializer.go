package application

import (
	"context"
	"time"

	"painel-web/middleware/pageinit/domain"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Initializer roda a rotina de "página pronta".
//
// Cada etapa é independente: a falha de um widget não impede os outros.
// Kit nil pula toasts e tooltips; Storage nil pula a limpeza do tema salvo.
type Initializer struct {
	Kit     domain.WidgetKit
	Storage domain.Storage
	Config  domain.Config
	Logger  *zap.Logger

	// FailureLog amostra os logs de falha por widget (padrão: 10 primeiros,
	// depois 1 por minuto). Seguro para uso concorrente.
	FailureLog *rate.Sometimes
}

func NewInitializer(kit domain.WidgetKit, storage domain.Storage, cfg domain.Config, logger *zap.Logger) *Initializer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Initializer{
		Kit:        kit,
		Storage:    storage,
		Config:     cfg.WithDefaults(),
		Logger:     logger,
		FailureLog: &rate.Sometimes{First: 10, Interval: time.Minute},
	}
}

func (in *Initializer) Initialize(ctx context.Context, scope string, doc domain.Document) domain.Report {
	var rep domain.Report
	if doc == nil {
		return rep
	}
	cfg := in.Config.WithDefaults()

	if cfg.ForceLightTheme {
		in.resetTheme(ctx, scope, doc, cfg, &rep)
	}
	if cfg.Toasts && in.Kit != nil {
		in.showToasts(doc, cfg, &rep)
	}
	if cfg.LoadingSpinner {
		in.bindForms(doc, cfg, &rep)
	}
	if cfg.Tooltips && in.Kit != nil {
		in.initTooltips(doc, cfg, &rep)
	}

	for _, f := range rep.Failures {
		in.logFailure(scope, f)
	}
	return rep
}

// resetTheme força o tema claro: remove o atributo do body e a preferência salva.
func (in *Initializer) resetTheme(ctx context.Context, scope string, doc domain.Document, cfg domain.Config, rep *domain.Report) {
	if body := doc.Body(); body != nil {
		body.RemoveAttr(cfg.ThemeAttr)
	}
	if in.Storage != nil {
		if err := in.Storage.Remove(ctx, scope, cfg.ThemeKey); err != nil {
			rep.Failures = append(rep.Failures, domain.Failure{Category: domain.CategoryTheme, Index: -1, Err: err})
			return
		}
	}
	rep.ThemeReset = true
}

func (in *Initializer) showToasts(doc domain.Document, cfg domain.Config, rep *domain.Report) {
	for i, el := range doc.QueryClass(cfg.ToastClass) {
		err := guard(func() error {
			toast, err := in.Kit.NewToast(el)
			if err != nil {
				return err
			}
			return toast.Show()
		})
		if err != nil {
			rep.Failures = append(rep.Failures, domain.Failure{Category: domain.CategoryToast, Index: i, Err: err})
			continue
		}
		rep.ToastsShown++
	}
}

// bindForms liga o spinner ao submit dos formulários sem opt-out.
// O spinner é buscado uma vez; se não existir, o submit não faz nada.
func (in *Initializer) bindForms(doc domain.Document, cfg domain.Config, rep *domain.Report) {
	spinner := doc.ByID(cfg.SpinnerID)

	for i, form := range doc.Forms() {
		form := form
		if _, optOut := form.Attr(cfg.OptOutAttr); optOut {
			continue
		}
		err := guard(func() error {
			form.OnSubmit(func() {
				if form.CheckValidity() && spinner != nil {
					spinner.AddClass("show")
				}
			})
			if spinner != nil {
				form.SetAttr(domain.SubmitMarkerAttr, cfg.SpinnerID)
			}
			return nil
		})
		if err != nil {
			rep.Failures = append(rep.Failures, domain.Failure{Category: domain.CategoryForm, Index: i, Err: err})
			continue
		}
		rep.FormsBound++
	}
}

func (in *Initializer) initTooltips(doc domain.Document, cfg domain.Config, rep *domain.Report) {
	for i, el := range doc.QueryAttr("data-bs-toggle", cfg.TooltipToggle) {
		err := guard(func() error {
			_, err := in.Kit.NewTooltip(el)
			return err
		})
		if err != nil {
			rep.Failures = append(rep.Failures, domain.Failure{Category: domain.CategoryTooltip, Index: i, Err: err})
			continue
		}
		rep.TooltipsReady++
	}
}

func (in *Initializer) logFailure(scope string, f domain.Failure) {
	emit := func() {
		in.logger().Warn("page init: widget failed",
			zap.String("scope", scope),
			zap.String("category", string(f.Category)),
			zap.Int("index", f.Index),
			zap.Error(f.Err),
		)
	}
	if in.FailureLog == nil {
		emit()
		return
	}
	in.FailureLog.Do(emit)
}

func (in *Initializer) logger() *zap.Logger {
	if in.Logger == nil {
		return zap.NewNop()
	}
	return in.Logger
}
