// Package toggle keeps a boolean switch in sync with a remote value.
//
// A Toggle polls a Source on a fixed interval and exposes the last value
// through Enabled. An empty value means enabled; otherwise the value must
// parse with strconv.ParseBool. A failed fetch or an unparsable value keeps
// the previous state, so a flapping backend never flips the switch.
//
//	t, err := toggle.New(toggle.NewHTTPSource("https://flags.internal/notify", nil),
//		toggle.WithInterval(10*time.Second),
//		toggle.WithLogger(log),
//	)
//	if err != nil {
//		return err
//	}
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(t.Run(ctx))
//
//	if t.Enabled() {
//		// ...
//	}
//
// Gate turns a toggle into a predicate for dispatch registrations.
package toggle
