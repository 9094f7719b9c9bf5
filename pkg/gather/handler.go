package gather

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrymomot/fanout/core/logger"
)

// maxBatchBody caps the size of a batch request body.
const maxBatchBody = 1 << 20

// Handler serves batches over HTTP. The request body is a JSON object
// mapping paths to parameter objects; the response maps the same paths to
// action results.
//
//	POST /batch
//	{"/feeds": {"limit": 10}, "/messages": {}}
//
//	200 OK
//	{"/feeds": "[...]", "/messages": "{...}"}
func (g *Gatherer) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		var requests map[string]map[string]any
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBatchBody))
		if err := dec.Decode(&requests); err != nil {
			g.logger.DebugContext(r.Context(), "invalid batch request", logger.Error(err))
			http.Error(w, "invalid batch request", http.StatusBadRequest)
			return
		}

		results := g.Gather(r.Context(), requests)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(results); err != nil {
			g.logger.WarnContext(r.Context(), "failed to write batch response", logger.Error(err))
		}
	})
}
