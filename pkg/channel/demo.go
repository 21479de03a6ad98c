package channel

import "context"

// Demo is the no-op channel used when no live transport is configured, so
// eligibility and logging can still be exercised end to end.
type Demo struct{}

func NewDemo() *Demo {
	return &Demo{}
}

func (d *Demo) Name() string {
	return "demo"
}

func (d *Demo) Send(_ context.Context, _, _ string) Result {
	return Result{Success: true, Detail: "simulated delivery (demo channel)", Method: d.Name()}
}
