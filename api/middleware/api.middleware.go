// FilePath: api/middleware/api.middleware.go
package middleware

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	nuts "github.com/vaudience/go-nuts"
)

type Config struct {
	AllowedOrigins []string
	// AccessLog receives combined-format access lines; nil means stdout
	AccessLog io.Writer
}

// Wrap applies panic recovery, access logging and CORS around h, outermost first.
func Wrap(h http.Handler, cfg Config) http.Handler {
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	out := cfg.AccessLog
	if out == nil {
		out = os.Stdout
	}

	h = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(h)
	h = handlers.CombinedLoggingHandler(out, h)
	h = handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{}),
		handlers.PrintRecoveryStack(true),
	)(h)
	return h
}

// recoveryLogger routes recovered panics to the shared logger
type recoveryLogger struct{}

func (recoveryLogger) Println(v ...interface{}) {
	nuts.L.Errorf("[API] Recovered from panic: %s", fmt.Sprint(v...))
}
