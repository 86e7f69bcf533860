// Package reqkit provides the request-preparation and response-interpretation
// helpers an HTTP client composes around net/http:
//
//   - StringifyQuery renders ordered Params as a key=value&key=value string
//   - Merge combines Options where Undefined means "no opinion"
//   - MergeHeaders merges header maps under lowercased names
//   - ParseJSONError turns a failed response body into a RequestError
//   - Once guards completion callbacks against firing twice
//
// The helpers are pure functions over their arguments and safe to call from
// any number of goroutines. Builder wires them together the way a client uses
// them, with functional options, Prometheus metrics and debug logging:
//
//	b := reqkit.New(
//	    reqkit.WithBaseURL("https://api.example.com"),
//	    reqkit.WithHeaders(reqkit.Headers{"Accept": "application/json"}),
//	    reqkit.WithMetrics(),
//	)
//	req, err := b.NewRequest(ctx, reqkit.Options{
//	    reqkit.OptURL:   "/fruit",
//	    reqkit.OptQuery: reqkit.Params{{Key: "type", Value: "apples"}},
//	})
//	...
//	resp, err := http.DefaultClient.Do(req)
//	...
//	if err := b.CheckResponse(nil, resp); err != nil {
//	    reqErr, _ := reqkit.AsRequestError(err)
//	    log.Println(reqErr.StatusCode, reqErr.Message)
//	}
//
// Nothing in this package performs network I/O, retries or pooling.
package reqkit
