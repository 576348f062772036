package registry

import (
	"context"

	"github.com/Masterminds/semver/v3"

	"github.com/vk/gomlgo/internal/ctxlog"
	"github.com/vk/gomlgo/internal/errors"
)

// Version is the runtime version plugins are checked against.
const Version = "1.0.0"

// PluginTask is a deferred registration step. Tasks run in the order they
// were registered.
type PluginTask func(ctx context.Context, r *Registry) error

// Plugin is a named, versioned bundle of registrations.
type Plugin struct {
	Name    string
	Version string
	// Requires is a semver constraint on the runtime Version, e.g. "^1.0".
	// Empty means any version.
	Requires string
	Load     PluginTask
}

// Register queues task for the next ResolvePlugins call.
func (r *Registry) Register(task PluginTask) {
	r.tasks = append(r.tasks, task)
}

// Use checks that p supports the runtime version and queues its Load task.
func (r *Registry) Use(p Plugin) error {
	if p.Name == "" {
		return errors.InvalidOperationf("plugin has no name")
	}
	if p.Load == nil {
		return errors.InvalidOperationf("plugin %s has no load task", p.Name)
	}
	for _, existing := range r.plugins {
		if existing.Name == p.Name {
			return errors.InvalidOperationf("plugin %s is already in use", p.Name)
		}
	}
	if p.Version != "" {
		if _, err := semver.NewVersion(p.Version); err != nil {
			return errors.Mark(errors.Wrapf(err, "plugin %s: version %q", p.Name, p.Version), errors.ErrInvalidOperation)
		}
	}
	if p.Requires != "" {
		constraint, err := semver.NewConstraint(p.Requires)
		if err != nil {
			return errors.Mark(errors.Wrapf(err, "plugin %s: requirement %q", p.Name, p.Requires), errors.ErrInvalidOperation)
		}
		if !constraint.Check(semver.MustParse(Version)) {
			return errors.WithHintf(
				errors.InvalidOperationf("plugin %s requires runtime %s, have %s", p.Name, p.Requires, Version),
				"upgrade the runtime or use a plugin release built for %s", Version,
			)
		}
	}

	r.plugins = append(r.plugins, p)
	load := p.Load
	name := p.Name
	r.Register(func(ctx context.Context, r *Registry) error {
		ctxlog.FromContext(ctx).Debug("Loading plugin.", "plugin", name)
		if err := load(ctx, r); err != nil {
			return errors.Wrapf(err, "plugin %s", name)
		}
		return nil
	})
	r.logger.Debug("Plugin queued.", "plugin", p.Name, "version", p.Version, "requires", p.Requires)
	return nil
}

// Plugins returns the plugins accepted by Use, in order.
func (r *Registry) Plugins() []Plugin {
	return append([]Plugin(nil), r.plugins...)
}

// PendingTasks returns the number of queued tasks.
func (r *Registry) PendingTasks() int { return len(r.tasks) }

// ResolvePlugins runs queued tasks one at a time in FIFO order, including
// tasks queued by running tasks. It stops at the first failure, leaving the
// remaining tasks queued, and checks ctx before each task.
func (r *Registry) ResolvePlugins(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, r.logger)
	resolved := 0
	for len(r.tasks) > 0 {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, "resolving plugins")
		}
		task := r.tasks[0]
		r.tasks = r.tasks[1:]
		if err := task(ctx, r); err != nil {
			r.logger.Error("Plugin task failed.", "index", resolved, "error", err)
			return errors.Wrapf(err, "plugin task %d", resolved)
		}
		resolved++
	}
	r.logger.Debug("Plugins resolved.", "tasks", resolved)
	return nil
}
