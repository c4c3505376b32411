package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"painel-web/middleware/pageinit"
	"painel-web/middleware/pageinit/infra"
	"painel-web/utils"
	"painel-web/utils/chartdata"
	"painel-web/utils/currency"

	"go.uber.org/zap"
)

var painelTmpl = template.Must(template.New("painel").Parse(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>Painel</title></head>
<body data-theme="dark">
<div id="loading-spinner" class="spinner-border"></div>
<div class="toast hide" role="alert" data-bs-delay="3000">Bem-vindo de volta!</div>
{{with .Aviso}}<div class="toast hide{{if $.Erro}} text-bg-danger{{end}}" role="status">{{.}}</div>
{{end}}<h1>Painel</h1>
<table>
{{range .Linhas}}<tr><td>{{.Nome}}</td><td>{{.Valor}}</td></tr>
{{end}}</table>
<p><span data-bs-toggle="tooltip" title="Soma de todas as contas">Total: {{.Total}}</span></p>
<form method="post" action="/lancamentos">
  <input name="valor" required>
  <button type="submit">Salvar</button>
</form>
<form method="get" action="/busca" no-loading>
  <input name="q">
</form>
</body>
</html>
`))

type linha struct {
	Nome  string
	Valor string
}

type conta struct {
	nome  string
	valor float64
}

var contas = []conta{
	{"Aluguel", 1850},
	{"Mercado", 932.4},
	{"Internet", 119.9},
}

type painel struct {
	Linhas []linha
	Total  string
	Aviso  string
	Erro   bool
}

func montarPainel() (painel, error) {
	var p painel
	total := 0.0
	for _, c := range contas {
		v, err := utils.FormatCurrency(c.valor)
		if err != nil {
			return painel{}, fmt.Errorf("conta %s: %w", c.nome, err)
		}
		p.Linhas = append(p.Linhas, linha{Nome: c.nome, Valor: v})
		total += c.valor
	}
	t, err := utils.FormatCurrency(total)
	if err != nil {
		return painel{}, err
	}
	p.Total = t
	return p, nil
}

func renderPainel(w http.ResponseWriter, logger *zap.Logger, p painel) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := painelTmpl.Execute(w, p); err != nil {
		logger.Warn("render painel", zap.Error(err))
	}
}

func painelHandler(logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := montarPainel()
		if err != nil {
			logger.Error("format currency", zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		renderPainel(w, logger, p)
	}
}

// lancamentoHandler valida o valor enviado e devolve o painel com um toast
// de confirmação ou de erro.
func lancamentoHandler(logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := montarPainel()
		if err != nil {
			logger.Error("format currency", zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		valor, err := currency.ParseAmount(r.PostFormValue("valor"), false)
		if err != nil {
			p.Aviso, p.Erro = err.Error(), true
			logger.Info("lançamento recusado", zap.Error(err))
		} else {
			p.Aviso = "Lançamento de " + currency.BRL().FormatDecimal(valor) + " registrado."
			logger.Info("lançamento registrado", zap.Stringer("valor", valor))
		}
		renderPainel(w, logger, p)
	}
}

func chartHandler(w http.ResponseWriter, r *http.Request) {
	s := chartdata.Series{}
	for _, c := range contas {
		s.Labels = append(s.Labels, c.nome)
		s.Data = append(s.Data, c.valor)
	}
	if err := s.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s)
}

func newMux(logger *zap.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", painelHandler(logger))
	mux.HandleFunc("POST /lancamentos", lancamentoHandler(logger))
	mux.HandleFunc("GET /api/chart", chartHandler)
	return mux
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	// Exemplo: middleware injetado diretamente no webserver (sem proxy)
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	storage, err := infra.NewCoalescingStorage(infra.NewMemoryStorage(), 500*time.Millisecond, infra.WithCoalesceLogger(logger))
	if err != nil {
		logger.Fatal("storage", zap.Error(err))
	}
	storage.StartJanitor(ctx)

	stats := infra.NewMemoryStatsStore()

	h := pageinit.Middleware(pageinit.Options{
		Storage:               storage,
		Stats:                 stats,
		SessionCookie:         "session",
		MaxConcurrentRewrites: 16,
		AddReportHeaders:      true,
		Logger:                logger,
	})(newMux(logger))

	addr := ":8081"
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		addr = v
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	logger.Info("example server listening", zap.String("addr", addr))
	if err := serve(ctx, srv, func(ctx context.Context) {
		_ = storage.Flush(ctx)
		t := stats.Total()
		logger.Info("pageinit stats",
			zap.Int64("pages", t.Pages),
			zap.Int64("toasts", t.Toasts),
			zap.Int64("forms", t.Forms),
			zap.Int64("tooltips", t.Tooltips),
			zap.Int64("failures", t.Failures),
		)
	}); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

// serve só retorna depois do Shutdown e do drain.
func serve(ctx context.Context, srv *http.Server, drain func(context.Context)) error {
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	drain(shutdownCtx)
	<-errCh
	return err
}
