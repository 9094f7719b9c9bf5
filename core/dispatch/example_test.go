package dispatch_test

import (
	"fmt"
	"io"
	"os"

	"github.com/dmitrymomot/fanout/core/dispatch"
	"github.com/dmitrymomot/fanout/core/predicate"
)

func Example() {
	engine, err := dispatch.New[string](2)
	if err != nil {
		panic(err)
	}

	_, _ = engine.Register(dispatch.WriterSubscriber[string](os.Stdout, "stdout: "),
		predicate.HasPrefix("INFO"), "stdout")
	_, _ = engine.Register(dispatch.WriterSubscriber[string](io.Discard, ""),
		predicate.Head(predicate.HasPrefix("ERROR")).Or(predicate.HasPrefix("WARN")), "alerts")

	_ = engine.Dispatch("INFO service started")
	_ = engine.Dispatch("ERROR disk full")

	engine.Dismiss()

	fmt.Println("delivered:", engine.Stats().Delivered)
	fmt.Println(engine.Dispatch("INFO too late"))
	// Output:
	// stdout: INFO service started
	// delivered: 2
	// dispatch engine is closed
}
