package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/toyz/autoval/internal/errors"
	"github.com/toyz/autoval/internal/utils"
)

// Module is a Go module holding some of the scanned directories
type Module struct {
	Dir  string   // directory containing go.mod
	Path string   // module path declared in go.mod
	Dirs []string // scanned package directories inside the module
}

// ModuleResolver handles resolving Go module information
type ModuleResolver struct {
	goMod *utils.GoModParser
}

// NewModuleResolver creates a new module resolver
func NewModuleResolver() *ModuleResolver {
	return &ModuleResolver{
		goMod: utils.NewGoModParser(utils.NewFileReader()),
	}
}

// ResolveModuleName returns customModule when set and otherwise the
// module path declared by the go.mod above the working directory
func (r *ModuleResolver) ResolveModuleName(customModule string) (string, error) {
	if customModule != "" {
		return customModule, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapFileSystemError("resolve", ".", err)
	}
	_, modulePath, err := r.goMod.ModuleRoot(wd)
	if err != nil {
		return "", errors.WrapConfigurationError("go.mod", "resolve", err).
			WithSuggestion("Run inside a Go module or pass -module")
	}
	return modulePath, nil
}

// GroupByModule assigns every package directory to the module containing
// it. Modules are returned sorted by directory; each module lists its
// directories in the order given.
func (r *ModuleResolver) GroupByModule(dirs []string) ([]*Module, error) {
	byDir := make(map[string]*Module)
	for _, dir := range dirs {
		root, modulePath, err := r.goMod.ModuleRoot(dir)
		if err != nil {
			return nil, errors.WrapConfigurationError("go.mod", "resolve", err).
				WithContext("directory", dir).
				WithSuggestion("Every scanned directory must belong to a Go module")
		}

		module, ok := byDir[root]
		if !ok {
			module = &Module{Dir: root, Path: modulePath}
			byDir[root] = module
		}
		module.Dirs = append(module.Dirs, dir)
	}

	modules := make([]*Module, 0, len(byDir))
	for _, module := range byDir {
		modules = append(modules, module)
	}
	sort.Slice(modules, func(i, j int) bool {
		return modules[i].Dir < modules[j].Dir
	})
	return modules, nil
}

// BuildPackagePath builds the import path of packageDir inside the module
// rooted at moduleDir
func (r *ModuleResolver) BuildPackagePath(moduleName, moduleDir, packageDir string) (string, error) {
	relPath, err := filepath.Rel(moduleDir, packageDir)
	if err != nil {
		return "", fmt.Errorf("failed to calculate relative path: %w", err)
	}

	importPath := filepath.ToSlash(relPath)
	if importPath == "." {
		return moduleName, nil
	}
	if importPath == ".." || strings.HasPrefix(importPath, "../") {
		return "", fmt.Errorf("package directory %s is outside module %s", packageDir, moduleDir)
	}

	return moduleName + "/" + importPath, nil
}
