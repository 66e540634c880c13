package auth

import (
	"context"
	"fmt"
	"html"
	"net"
	"net/http"
	"sync/atomic"
	"time"
)

const successPage = `<html><body style="font-family: system-ui; text-align: center; padding: 50px;">
<h1>Authentication Successful!</h1>
<p>You can close this window and return to the terminal.</p>
</body></html>`

const failurePage = `<html><body style="font-family: system-ui; text-align: center; padding: 50px;">
<h1>Authentication Failed</h1>
<p>%s</p>
</body></html>`

type callbackResult struct {
	code string
	err  error
}

// CallbackListener is a short-lived loopback HTTP endpoint that captures a
// single authorization redirect. It resolves exactly once: the first request
// carrying a code or an error decides the outcome, every other request gets
// a bare 400 and leaves the listener waiting.
type CallbackListener struct {
	listener net.Listener
	server   *http.Server
	// result is the single-slot cell the handler hands the outcome through.
	result   chan callbackResult
	resolved atomic.Bool
}

// NewCallbackListener binds localhost:port and starts serving immediately,
// so the port is held before the browser is pointed at it. Port 0 picks a
// free port.
func NewCallbackListener(port int) (*CallbackListener, error) {
	ln, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", port))
	if err != nil {
		return nil, fmt.Errorf("failed to start callback listener: %w", err)
	}
	l := &CallbackListener{
		listener: ln,
		result:   make(chan callbackResult, 1),
	}
	l.server = &http.Server{Handler: http.HandlerFunc(l.handle)}
	go func() {
		_ = l.server.Serve(ln)
	}()
	return l, nil
}

// RedirectURL is the redirect URI registered with the provider for this
// flow. It must be embedded unchanged in both the authorization request and
// the code exchange.
func (l *CallbackListener) RedirectURL() string {
	_, port, _ := net.SplitHostPort(l.listener.Addr().String())
	return "http://localhost:" + port
}

func (l *CallbackListener) handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	switch {
	case r.Method != http.MethodGet, l.resolved.Load():
		w.WriteHeader(http.StatusBadRequest)
	case query.Get("code") != "":
		if !l.resolved.CompareAndSwap(false, true) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprint(w, successPage)
		l.flush(w)
		l.result <- callbackResult{code: query.Get("code")}
	case query.Get("error") != "":
		if !l.resolved.CompareAndSwap(false, true) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		reason := query.Get("error_description")
		if reason == "" {
			reason = query.Get("error")
		}
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = fmt.Fprintf(w, failurePage, html.EscapeString(reason))
		l.flush(w)
		l.result <- callbackResult{err: &AuthorizationError{Reason: reason}}
	default:
		w.WriteHeader(http.StatusBadRequest)
	}
}

// flush pushes the confirmation page onto the wire before Await tears the
// server down, so the browser sees it even though Close follows immediately.
func (l *CallbackListener) flush(w http.ResponseWriter) {
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

// Await blocks until the redirect arrives, the timeout elapses, or ctx is
// cancelled. The listening port is released before it returns, on every
// path.
func (l *CallbackListener) Await(ctx context.Context, timeout time.Duration) (string, error) {
	defer l.Close()
	if timeout <= 0 {
		timeout = DefaultCallbackTimeout
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case res := <-l.result:
		return res.code, res.err
	case <-timer.C:
		return "", ErrCallbackTimeout
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Close releases the port. Safe to call more than once.
func (l *CallbackListener) Close() {
	_ = l.server.Close()
}
