package gather

import "context"

// Request is one named call inside a batch.
type Request struct {
	Path   string
	Params map[string]any
}

// Param returns the named parameter or nil.
func (r Request) Param(name string) any {
	return r.Params[name]
}

// Action serves requests for a single path.
type Action interface {
	Path() string
	Apply(ctx context.Context, req Request) (string, error)
}

// ActionFunc is the function form of Action.Apply.
type ActionFunc func(ctx context.Context, req Request) (string, error)

type funcAction struct {
	path string
	fn   ActionFunc
}

func (a funcAction) Path() string { return a.path }

func (a funcAction) Apply(ctx context.Context, req Request) (string, error) {
	return a.fn(ctx, req)
}

// NewAction creates an Action serving path with fn.
func NewAction(path string, fn ActionFunc) Action {
	return funcAction{path: path, fn: fn}
}

// NotFoundBody is the result returned for paths with no registered action.
const NotFoundBody = `{"code":404,"message":"method not found"}`

func notFound(context.Context, Request) (string, error) {
	return NotFoundBody, nil
}

// Call pairs a request with the action that will serve it.
type Call struct {
	Request Request
	Action  Action
}
