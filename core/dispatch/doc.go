// Package dispatch broadcasts messages to subscribers gated by predicates.
//
// An Engine owns a Registry of subscribers, each registered under a unique
// identity with a predicate.Predicate deciding which messages it receives,
// and a bounded pool of goroutines that runs broadcasts.
//
//	engine, err := dispatch.New[string](4, dispatch.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	defer engine.Dismiss()
//
//	engine.Register(dispatch.WriterSubscriber[string](os.Stdout, ""),
//		predicate.HasPrefix("INFO"), "stdout")
//	engine.Register(dispatch.WriterSubscriber[string](os.Stderr, ""),
//		predicate.HasPrefix("ERROR"), "stderr")
//
//	engine.Dispatch("INFO service started") // stdout only
//
// # Broadcasts
//
// Dispatch accepts a message and returns. A broadcast takes a snapshot of
// the registry, evaluates every predicate against the message and calls
// Receive on the subscribers that match. Registrations added after the
// snapshot do not see the message; registrations removed after it still
// may. There is no ordering between broadcasts.
//
// # Backpressure
//
// The pool has no queue. A broadcast is handed to an idle pool goroutine, or
// to a new one while the pool is below its limit. Otherwise Dispatch runs
// the broadcast on the caller's goroutine and returns when it is done. A
// slow subscriber therefore slows publishers instead of growing memory or
// losing messages. Stats.CallerRuns counts how often this happened.
//
// Pool goroutines exit after an idle period (WithIdleTimeout, 60s default).
//
// # Failures
//
// Subscribers report failure by panicking. The engine recovers the panic,
// stops the broadcast at that subscriber, so later subscribers in the same
// snapshot miss that message, and reports a *DeliveryError:
//
//	engine, _ := dispatch.New[Event](8,
//		dispatch.WithLogger(log),
//		dispatch.WithErrorHandler(func(err *dispatch.DeliveryError) {
//			failures.Inc(err.SubscriberID)
//		}),
//	)
//
// Other broadcasts, the registry and the pool are unaffected. Nothing is
// retried and nothing reaches the Dispatch caller, even when the broadcast
// ran on its goroutine.
//
// # Lifecycle
//
// An engine moves from StateActive to StateDraining when Dismiss is called
// and to StateTerminated once every accepted broadcast has finished. From
// StateDraining on, Dispatch and Register return ErrEngineClosed; Remove
// keeps working. Dismiss waits without a time limit. Shutdown and Run
// bound the wait for callers that need it:
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(engine.Run(ctx))
//
// # Decorators
//
// Timed and Logged wrap a subscriber with explicit timing and logging;
// ApplyDecorators composes several wrappers in order.
package dispatch
