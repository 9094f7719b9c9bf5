// Package gather fans a batch of named requests out to registered actions
// and collects the results by path.
//
//	g, err := gather.New(
//		gather.WithAction(
//			gather.NewAction("/feeds", feeds.Latest),
//			gather.NewAction("/messages", messages.Unread),
//		),
//		gather.WithTimeout(5*time.Second),
//	)
//	if err != nil {
//		return err
//	}
//
//	results := g.Gather(ctx, map[string]map[string]any{
//		"/feeds":    {"limit": 10},
//		"/messages": {"user": "u-1"},
//		"/unknown":  nil,
//	})
//	// results["/unknown"] == gather.NotFoundBody
//
// Actions run concurrently, bounded by WithConcurrency. A failing, panicking
// or slow action yields an empty result instead of failing the batch.
// Handler exposes the same operation as a JSON endpoint.
package gather
