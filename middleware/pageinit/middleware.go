package pageinit

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"painel-web/middleware/pageinit/application"
	"painel-web/middleware/pageinit/domain"
	"painel-web/middleware/pageinit/infra"

	"go.uber.org/zap"
)

type Options struct {
	Kit     domain.WidgetKit
	Storage domain.Storage
	Stats   domain.StatsStore
	// Config nil usa domain.DefaultConfig().
	Config *domain.Config

	KeyFn              KeyFunc
	SessionCookie      string
	KeyHeader          string
	TrustXForwardedFor bool

	MaxConcurrentRewrites int
	AcquireTimeout        time.Duration

	AddReportHeaders bool
	Logger           *zap.Logger
}

func Middleware(opts Options) func(next http.Handler) http.Handler {
	if opts.Kit == nil {
		opts.Kit = infra.BootstrapKit{}
	}
	cfg := domain.DefaultConfig()
	if opts.Config != nil {
		cfg = opts.Config.WithDefaults()
	}
	if opts.KeyFn == nil {
		opts.KeyFn = DefaultKeyFunc(opts.SessionCookie, opts.KeyHeader, opts.TrustXForwardedFor)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	initializer := application.NewInitializer(opts.Kit, opts.Storage, cfg, opts.Logger)
	gate := application.RewriteGate{
		Pool:           infra.NewChanPool(opts.MaxConcurrentRewrites),
		AcquireTimeout: opts.AcquireTimeout,
	}

	rewrite := func(w http.ResponseWriter, r *http.Request, body []byte) []byte {
		release, ok := gate.Acquire(r.Context())
		if !ok {
			opts.Logger.Debug("page init skipped: no rewrite slot", zap.String("path", r.URL.Path))
			return body
		}
		defer release()

		doc, err := infra.ParseHTML(bytes.NewReader(body))
		if err != nil {
			opts.Logger.Warn("page init skipped: parse failed", zap.String("path", r.URL.Path), zap.Error(err))
			return body
		}

		scope := opts.KeyFn(r)
		rep := initializer.Initialize(r.Context(), scope, doc)

		var out bytes.Buffer
		out.Grow(len(body) + 256)
		if err := doc.Render(&out); err != nil {
			opts.Logger.Warn("page init skipped: render failed", zap.String("path", r.URL.Path), zap.Error(err))
			return body
		}

		if opts.AddReportHeaders {
			h := w.Header()
			h.Set("X-PageInit-Toasts", strconv.Itoa(rep.ToastsShown))
			h.Set("X-PageInit-Forms", strconv.Itoa(rep.FormsBound))
			h.Set("X-PageInit-Tooltips", strconv.Itoa(rep.TooltipsReady))
			h.Set("X-PageInit-Failures", strconv.Itoa(len(rep.Failures)))
			h.Set("X-PageInit-Theme-Reset", strconv.FormatBool(rep.ThemeReset))
		}
		if opts.Stats != nil {
			_ = opts.Stats.Record(r.Context(), domain.StatsEvent{
				Scope:  scope,
				Method: r.Method,
				Path:   r.URL.Path,
				Report: rep,
				At:     time.Now(),
			})
		}
		return out.Bytes()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// HEAD não tem corpo; os demais métodos são decididos pela resposta
			if r.Method == http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}

			// o upstream precisa devolver HTML sem compressão para ser reescrito
			upstreamReq := r.Clone(r.Context())
			upstreamReq.Header.Del("Accept-Encoding")

			rw := newRewriteWriter(w)
			next.ServeHTTP(rw, upstreamReq)
			if !rw.buffering {
				return
			}
			rw.finish(rewrite(w, r, rw.buf.Bytes()))
		})
	}
}
