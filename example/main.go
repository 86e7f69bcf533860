// Minimal example for reqkit: prepare a request from merged defaults,
// send it with a plain net/http client against a local test server, and
// turn the failure into a RequestError. The completion callback is guarded
// so the cancel path and the normal path cannot both report.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/ambiyansyah-risyal/reqkit"
)

func main() {
	if err := run(os.Stdout, reqkit.WithSimpleLogger(), reqkit.WithMetrics()); err != nil {
		log.Fatal(err)
	}
}

func run(out io.Writer, options ...reqkit.Option) error {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("type") == "durian" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"error":"durian is not a fruit we serve"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, "ok %s", r.URL.RawQuery)
	}))
	defer server.Close()

	b := reqkit.New(append([]reqkit.Option{
		reqkit.WithBaseURL(server.URL),
		reqkit.WithHeaders(reqkit.Headers{"Accept": "application/json", "User-Agent": "reqkit-example"}),
		reqkit.WithDefaults(reqkit.Options{reqkit.OptURL: "/fruit"}),
	}, options...)...)
	if !b.IsValid() {
		return fmt.Errorf("invalid builder config: %w", b.ValidationError())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for _, fruit := range []string{"apples", "durian"} {
		done := b.Once(func(args ...any) {
			fmt.Fprintln(out, append([]any{"completed:"}, args...)...)
		})

		req, err := b.NewRequest(ctx, reqkit.Options{
			reqkit.OptHeaders: reqkit.Headers{"accept": "text/plain"},
			reqkit.OptQuery:   reqkit.Params{{Key: "type", Value: fruit}, {Key: "bbq", Value: true}},
		})
		if err != nil {
			return fmt.Errorf("prepare request: %w", err)
		}

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			done("transport error", err)
			continue
		}

		if err := b.CheckResponse(nil, resp); err != nil {
			reqErr, _ := reqkit.AsRequestError(err)
			done(reqErr.Name, reqErr.StatusCode, reqErr.Message)
		} else {
			done("status", resp.StatusCode)
		}
		// a late cancellation path firing again is ignored
		done("cancelled")
		_ = resp.Body.Close()
	}
	return nil
}
