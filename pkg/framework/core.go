package framework

import (
	"context"
	"time"

	"github.com/golang/glog"
)

// Core is a cooperative executor. Its tasks run on separate goroutines
// but only the one holding the core's token makes progress; the token is
// handed over at Sleep and Suspend.
type Core struct {
	name  string
	token chan struct{}
	tasks []Runnable
}

type taskKey struct{}

type task struct {
	core *Core
	name string
	held bool
}

// NewCore creates an idle core.
func NewCore(name string) *Core {
	return &Core{name: name, token: make(chan struct{}, 1)}
}

// Name implements Named.
func (c *Core) Name() string {
	return c.name
}

// Spawn adds a task. Tasks must be spawned before Run.
func (c *Core) Spawn(name string, r Runnable) *Core {
	c.tasks = append(c.tasks, NamedRun(c.name+"/"+name, r))
	return c
}

// Tasks returns the spawned tasks.
func (c *Core) Tasks() []Runnable {
	return c.tasks
}

// Run runs all tasks until they return. A failed task is logged and the
// others keep running. The errors of all tasks are aggregated.
func (c *Core) Run(ctx context.Context) error {
	r := NewRunnerWith(ctx)
	for _, t := range c.tasks {
		r.Go(c.wrap(t))
	}
	return r.Wait()
}

func (c *Core) wrap(r Runnable) Runnable {
	name := r.(Named).Name()
	return NamedRun(name, RunFunc(func(ctx context.Context) error {
		t := &task{core: c, name: name}
		if err := t.acquire(ctx); err != nil {
			return err
		}
		err := r.Run(context.WithValue(ctx, taskKey{}, t))
		t.release()
		if err != nil && err != context.Canceled && err != context.DeadlineExceeded {
			glog.Errorf("%s aborted: %v", name, err)
		}
		return err
	}))
}

func (t *task) acquire(ctx context.Context) error {
	select {
	case t.core.token <- struct{}{}:
		t.held = true
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *task) release() {
	if t.held {
		t.held = false
		<-t.core.token
	}
}

func (c *Core) current(ctx context.Context) *task {
	if t, ok := ctx.Value(taskKey{}).(*task); ok && t.core == c {
		return t
	}
	return nil
}

// Suspend implements Suspender. The calling task gives up the core while
// wait blocks and takes it back before returning. Called outside a task
// of this core, wait simply runs.
func (c *Core) Suspend(ctx context.Context, wait func(context.Context) error) error {
	t := c.current(ctx)
	if t == nil {
		return wait(ctx)
	}
	t.release()
	err := wait(ctx)
	if aerr := t.acquire(ctx); err == nil {
		err = aerr
	}
	return err
}

// Sleep suspends the calling task for d.
func (c *Core) Sleep(ctx context.Context, d time.Duration) error {
	return c.Suspend(ctx, func(ctx context.Context) error {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return nil
		}
	})
}
