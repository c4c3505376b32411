package pageinit

import (
	"net"
	"net/http"
	"strings"
)

// KeyFunc devolve o escopo do "localStorage" do cliente.
type KeyFunc func(r *http.Request) string

// DefaultKeyFunc procura, nesta ordem: cookie de sessão, header, primeiro IP
// do X-Forwarded-For (se confiável) e host do RemoteAddr.
func DefaultKeyFunc(cookieName, keyHeader string, trustXFF bool) KeyFunc {
	return func(r *http.Request) string {
		if cookieName != "" {
			if c, err := r.Cookie(cookieName); err == nil {
				if v := strings.TrimSpace(c.Value); v != "" {
					return v
				}
			}
		}

		if keyHeader != "" {
			if v := strings.TrimSpace(r.Header.Get(keyHeader)); v != "" {
				return v
			}
		}

		if trustXFF {
			// pega o primeiro IP do X-Forwarded-For (cliente original)
			if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
				first, _, _ := strings.Cut(xff, ",")
				if ip := strings.TrimSpace(first); ip != "" {
					return ip
				}
			}
		}

		// fallback: RemoteAddr
		host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
		if err == nil && host != "" {
			return host
		}
		if r.RemoteAddr != "" {
			return r.RemoteAddr
		}
		return "unknown"
	}
}
