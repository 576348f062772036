package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/gomlgo/internal/ctxlog"
	"github.com/vk/gomlgo/internal/errors"
	"github.com/vk/gomlgo/internal/goml"
	"github.com/vk/gomlgo/internal/registry"
)

// variableSource is implemented by modules that expose values to markup
// expressions.
type variableSource interface {
	Variables() map[string]cty.Value
}

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	config    *Config
	registry  *registry.Registry
	variables map[string]cty.Value
	roots     []*goml.Node
}

// NewApp is the constructor for the main application. Logs go to logW and
// the tree dump to outW. When no modules are passed, the modules named in
// the config are used. A module that fails to register is a programming
// error and panics.
func NewApp(outW, logW io.Writer, cfg *Config, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	reg := registry.New(logger)
	if len(modules) == 0 {
		modules = selectModules(cfg.Modules, outW)
	}

	variables := make(map[string]cty.Value)
	for _, mod := range modules {
		if err := mod.Register(reg); err != nil {
			panic(errors.Wrapf(err, "failed to register module %s", mod.Name()))
		}
		if src, ok := mod.(variableSource); ok {
			for name, v := range src.Variables() {
				variables[name] = v
			}
		}
	}
	logger.Debug("All Go modules registered.", "count", len(modules))

	return &App{
		outW:      outW,
		logger:    logger,
		config:    cfg,
		registry:  reg,
		variables: variables,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Roots returns the trees mounted by the last Run.
func (a *App) Roots() []*goml.Node {
	return append([]*goml.Node(nil), a.roots...)
}

// Context returns ctx carrying the application's logger.
func (a *App) Context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
