package api

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/briandipalma/codediff.nvim/internal/version"
)

// VersionModule implements the codediff version API.
type VersionModule struct{}

// NewVersionModule creates a new version module.
func NewVersionModule() *VersionModule {
	return &VersionModule{}
}

// Name returns the module name.
func (m *VersionModule) Name() string {
	return "version"
}

// Register adds the module's functions to the codediff table.
func (m *VersionModule) Register(L *lua.LState, codediff *lua.LTable) error {
	L.SetField(codediff, "get_version", L.NewFunction(m.getVersion))
	return nil
}

// get_version() -> string
// Returns the library version. Takes no arguments, never raises, and
// returns the same string on every call within a build. The Lua string is
// immutable, so callers get a read-only view of the constant.
func (m *VersionModule) getVersion(L *lua.LState) int {
	L.Push(lua.LString(version.Version))
	return 1
}
