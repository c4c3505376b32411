// Package pageinit fornece o adapter HTTP (net/http) que roda a inicialização
// de página sobre o HTML renderizado pelo servidor.
//
// Visão geral (camadas):
//
//   - domain: contratos (Document, Element, Form, Storage, WidgetKit, Config, Report)
//   - application: caso de uso Initializer (tema, toasts, formulários, tooltips) e RewriteGate
//   - infra: HTML via golang.org/x/net/html, BootstrapKit, storages, stats, semáforo
//   - pageinit (este pacote): middleware HTTP + extração de escopo + config YAML
//
// Fluxo no gateway:
//
//   1) Remove Accept-Encoding da request (o upstream devolve HTML sem compressão)
//   2) Bufferiza respostas 200 text/html
//   3) Parseia, roda Initializer.Initialize e renderiza de volta
//   4) Qualquer falha (parse, sem vaga para reescrever) devolve o corpo original
//
// Variáveis de ambiente do binário gateway (cmd/gateway) controlam o comportamento,
// como PAGEINIT_CONFIG, PAGEINIT_STORAGE, PAGEINIT_STATS e PAGEINIT_MAX_REWRITES.
package pageinit
