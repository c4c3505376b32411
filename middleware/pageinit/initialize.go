package pageinit

import (
	"context"

	"painel-web/middleware/pageinit/application"
	"painel-web/middleware/pageinit/domain"
)

// InitializePage roda a rotina de "página pronta" uma vez sobre doc.
// É o ponto de entrada explícito para quem já tem o documento em mãos
// (sem passar pelo middleware).
func InitializePage(ctx context.Context, scope string, doc domain.Document, cfg domain.Config, kit domain.WidgetKit, storage domain.Storage) domain.Report {
	return application.NewInitializer(kit, storage, cfg, nil).Initialize(ctx, scope, doc)
}
