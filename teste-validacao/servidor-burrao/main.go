package main

import (
	"net/http"

	"go.uber.org/zap"
)

// Página com todos os widgets, inclusive um toast com delay inválido (falha
// isolada) e um tooltip sem título (criado sem conteúdo), para conferir o
// gateway.
const tela = `<!doctype html>
<html>
<head><meta charset="utf-8"><title>Tela do Sistema</title></head>
<body data-theme="dark">
<div id="loading-spinner"></div>
<div class="toast hide">Requisição recebida com sucesso!</div>
<div class="toast hide" data-bs-delay="rápido">Toast quebrado</div>
<h1>Tela do Sistema</h1>
<a href="#" data-bs-toggle="tooltip" title="Ajuda">?</a>
<a href="#" data-bs-toggle="tooltip">sem título</a>
<form method="post" action="/showTela">
  <input name="nome" required>
  <button type="submit">Enviar</button>
</form>
</body>
</html>
`

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	http.HandleFunc("/showTela", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(tela))
		logger.Info("alguém acessou o endpoint /showTela", zap.String("remote", r.RemoteAddr))
	})
	logger.Info("servidor rodando em http://localhost:8081")
	if err := http.ListenAndServe(":8081", nil); err != nil {
		logger.Error("erro ao subir o servidor", zap.Error(err))
	}
}
