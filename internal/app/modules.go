package app

import (
	"io"

	"github.com/vk/gomlgo/internal/registry"
	"github.com/vk/gomlgo/modules/env_vars"
	"github.com/vk/gomlgo/modules/print"
)

// moduleFactory builds a fresh module instance writing to out.
type moduleFactory struct {
	name string
	new  func(out io.Writer) registry.Module
}

// coreModules is the definitive list of all modules that are compiled into
// the gomlgo binary.
var coreModules = []moduleFactory{
	{name: "env_vars", new: func(io.Writer) registry.Module { return &env_vars.Module{} }},
	{name: "print", new: func(out io.Writer) registry.Module { return &print.Module{Out: out} }},
}

// ModuleNames returns the names of the bundled modules.
func ModuleNames() []string {
	names := make([]string, 0, len(coreModules))
	for _, m := range coreModules {
		names = append(names, m.name)
	}
	return names
}

func lookupModule(name string) (moduleFactory, bool) {
	for _, m := range coreModules {
		if m.name == name {
			return m, true
		}
	}
	return moduleFactory{}, false
}

// selectModules instantiates the bundled modules named in names, or all of
// them when names is empty. Modules that print write to out.
func selectModules(names []string, out io.Writer) []registry.Module {
	if len(names) == 0 {
		names = ModuleNames()
	}
	selected := make([]registry.Module, 0, len(names))
	for _, name := range names {
		if m, ok := lookupModule(name); ok {
			selected = append(selected, m.new(out))
		}
	}
	return selected
}
