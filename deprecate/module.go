package deprecate

import "housekeeping/category"

var (
	moduleMessages = category.Messages{
		Deprecated: "`{{.moduleName}}` is deprecated and will be removed in {{.product}} {{.version}}.",
		Pending:    "`{{.moduleName}}` is scheduled to be deprecated in a future version of {{.product}}.",
	}
	movedModuleMessages = category.Messages{
		Deprecated: "`{{.oldModuleName}}` is deprecated and will be removed in {{.product}} {{.version}}. " +
			"Import `{{.newModuleName}}` instead.",
		Pending: "`{{.oldModuleName}}` is scheduled to be deprecated in a future version of {{.product}}. " +
			"To prepare, import `{{.newModuleName}}` instead.",
	}
)

// Module warns that the package name is deprecated. Call it from the
// package's init:
//
//	func init() {
//		deprecate.Module(RemovedIn20, "example.com/product/oldpkg")
//	}
//
// The warning is reported at the caller of the function calling Module.
// Package initialization has no such caller, so there the init function
// itself is reported.
//
// Message keys: moduleName.
func Module(src category.Source, name string, opts ...Option) {
	cfg := newConfig(opts)
	category.Emit(src, cfg.messages(moduleMessages), cfg.level(1), category.Vars{
		"moduleName": name,
	})
}

// ModuleMoved is Module for packages that moved to newName.
//
// Message keys: oldModuleName, newModuleName.
func ModuleMoved(src category.Source, oldName, newName string, opts ...Option) {
	cfg := newConfig(opts)
	category.Emit(src, cfg.messages(movedModuleMessages), cfg.level(1), category.Vars{
		"oldModuleName": oldName,
		"newModuleName": newName,
	})
}
