package pageinit

import (
	"bytes"
	"mime"
	"net/http"
	"strconv"
	"strings"
)

// rewriteWriter decide no primeiro WriteHeader/Write se a resposta será
// bufferizada (HTML 200 sem Content-Encoding) ou repassada direto.
type rewriteWriter struct {
	w http.ResponseWriter

	decided   bool
	buffering bool
	status    int
	buf       bytes.Buffer
}

func newRewriteWriter(w http.ResponseWriter) *rewriteWriter {
	return &rewriteWriter{w: w}
}

func (rw *rewriteWriter) Header() http.Header { return rw.w.Header() }

func (rw *rewriteWriter) WriteHeader(status int) {
	if rw.decided {
		return
	}
	rw.decided = true
	rw.status = status
	rw.buffering = isRewritable(status, rw.w.Header())
	if !rw.buffering {
		rw.w.WriteHeader(status)
	}
}

func (rw *rewriteWriter) Write(p []byte) (int, error) {
	if !rw.decided {
		h := rw.w.Header()
		if h.Get("Content-Type") == "" && len(p) > 0 {
			h.Set("Content-Type", http.DetectContentType(p))
		}
		rw.WriteHeader(http.StatusOK)
	}
	if rw.buffering {
		return rw.buf.Write(p)
	}
	return rw.w.Write(p)
}

// Flush só repassa quando não estamos segurando o corpo.
func (rw *rewriteWriter) Flush() {
	if rw.buffering {
		return
	}
	if f, ok := rw.w.(http.Flusher); ok {
		f.Flush()
	}
}

// finish escreve o corpo bufferizado (body) com Content-Length corrigido.
// Sem buffering não há nada a fazer.
func (rw *rewriteWriter) finish(body []byte) {
	if !rw.buffering {
		return
	}
	h := rw.w.Header()
	h.Set("Content-Length", strconv.Itoa(len(body)))
	rw.w.WriteHeader(rw.status)
	_, _ = rw.w.Write(body)
}

func isRewritable(status int, h http.Header) bool {
	if status != http.StatusOK {
		return false
	}
	if enc := strings.TrimSpace(h.Get("Content-Encoding")); enc != "" && !strings.EqualFold(enc, "identity") {
		return false
	}
	mt, _, err := mime.ParseMediaType(h.Get("Content-Type"))
	return err == nil && mt == "text/html"
}
