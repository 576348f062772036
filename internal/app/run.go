package app

import (
	"context"

	"github.com/vk/gomlgo/internal/errors"
	"github.com/vk/gomlgo/internal/loader"
	"github.com/vk/gomlgo/internal/markup"
)

// Run resolves module plugins, loads the configured document, mounts every
// tree it declares and writes the resolved trees to the output.
func (a *App) Run(ctx context.Context) error {
	ctx = a.Context(ctx)
	a.logger.Debug("App.Run method started.")

	if err := a.registry.ResolvePlugins(ctx); err != nil {
		return errors.Wrap(err, "failed to resolve plugins")
	}
	a.logger.Info("Registry ready.",
		"nodes", len(a.registry.Nodes()),
		"components", len(a.registry.Components()),
		"converters", len(a.registry.Converters()),
	)

	doc, err := markup.Load(a.config.DocumentPath, markup.WithVariables(a.variables))
	if err != nil {
		return errors.Wrap(err, "failed to load document")
	}
	a.logger.Debug("Document loaded.", "files", doc.Files, "roots", len(doc.Roots))

	if len(doc.Roots) == 0 {
		a.logger.Warn("No elements found in document, nothing to mount.", "path", a.config.DocumentPath)
		return nil
	}

	roots, err := loader.New(a.registry).MountDocument(ctx, doc)
	a.roots = roots
	if err != nil {
		return errors.Wrap(err, "failed to mount document")
	}

	if err := a.dump(roots); err != nil {
		return errors.Wrap(err, "failed to write tree")
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}
