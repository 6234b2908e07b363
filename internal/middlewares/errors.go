package middlewares

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/saulo-duarte/yt-study-api/internal/config"
)

type errorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Recoverer turns a panic into the JSON 500 envelope. The panic value is only
// echoed back in development mode.
func Recoverer(devMode bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				config.WithContext(r.Context()).
					WithField("panic", fmt.Sprint(rec)).
					WithField("stack", string(debug.Stack())).
					Error("Recovered from panic")

				message := "Something went wrong"
				if devMode {
					message = fmt.Sprint(rec)
				}
				config.JSON(w, http.StatusInternalServerError, errorBody{
					Error:   "Internal Server Error",
					Message: message,
				})
			}()

			next.ServeHTTP(w, r)
		})
	}
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	config.WithContext(r.Context()).WithField("path", r.URL.Path).Warn("Route not found")
	config.JSON(w, http.StatusNotFound, errorBody{
		Error:   "Not Found",
		Message: fmt.Sprintf("Route %s not found", r.URL.Path),
	})
}

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	config.JSON(w, http.StatusMethodNotAllowed, errorBody{
		Error:   "Method Not Allowed",
		Message: fmt.Sprintf("Method %s is not allowed on %s", r.Method, r.URL.Path),
	})
}
