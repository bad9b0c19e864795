package registry

import "github.com/toyz/autoval/internal/extension"

// ExtensionRegistry tracks the extensions the host runs for every value type
type ExtensionRegistry interface {
	Register(name string, factory extension.Factory) error
	Get(name string) (extension.Factory, bool)
	Names() []string
	Instantiate() []extension.Extension
}
