package script

import (
	"fmt"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// unsafeGlobals load code from files or strings and are removed.
var unsafeGlobals = []string{"dofile", "loadfile", "load", "loadstring", "module"}

// installSandbox strips code loading, routes print to the configured
// output, and replaces require with a fixed module list.
func (s *State) installSandbox() {
	for _, name := range unsafeGlobals {
		s.L.SetGlobal(name, lua.LNil)
	}
	s.L.SetGlobal("print", s.L.NewFunction(s.print))
	s.L.SetGlobal("require", s.L.NewFunction(s.require))
}

func (s *State) print(L *lua.LState) int {
	parts := make([]string, L.GetTop())
	for i := range parts {
		parts[i] = L.ToStringMeta(L.Get(i + 1)).String()
	}
	fmt.Fprintln(s.out, strings.Join(parts, "\t"))
	return 0
}

func (s *State) require(L *lua.LState) int {
	name := L.CheckString(1)
	switch name {
	case lua.TabLibName, lua.StringLibName, lua.MathLibName, seqModuleName:
		L.Push(L.GetGlobal(name))
		return 1
	}
	L.RaiseError("module %q is not available", name)
	return 0
}
