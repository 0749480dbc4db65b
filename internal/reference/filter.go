package reference

import (
	"fmt"
	"os"

	lua "github.com/yuin/gopher-lua"
)

// Filter runs a user-supplied Lua predicate over the pool before retrieval.
// The script must define a 'keep' function taking one example table and
// returning a boolean. Scripts run in a sandboxed state: no io, no os, no
// loaders, no nondeterministic math.
func Filter(examples []Example, scriptPath string) ([]Example, error) {
	script, err := os.ReadFile(scriptPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read filter script: %w", err)
	}

	L := lua.NewState(lua.Options{
		SkipOpenLibs: true, // Don't load any libraries by default
	})
	defer L.Close()

	openSafeLibs(L)

	if err := L.DoString(string(script)); err != nil {
		return nil, fmt.Errorf("failed to load filter script: %w", err)
	}

	keep := L.GetGlobal("keep")
	if keep == lua.LNil {
		return nil, fmt.Errorf("filter script must define a 'keep' function")
	}

	var kept []Example
	for _, ex := range examples {
		L.Push(keep)
		L.Push(exampleToTable(L, ex))
		if err := L.PCall(1, 1, nil); err != nil {
			return nil, fmt.Errorf("filter script failed on example %q: %w", ex.ID, err)
		}
		ret := L.Get(-1)
		L.Pop(1)

		if lua.LVAsBool(ret) {
			kept = append(kept, ex)
		}
	}

	return kept, nil
}

// openSafeLibs loads only the safe standard libraries
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)

	// Remove dangerous base functions
	L.SetGlobal("loadfile", lua.LNil)
	L.SetGlobal("dofile", lua.LNil)
	L.SetGlobal("load", lua.LNil)
	L.SetGlobal("loadstring", lua.LNil)
	L.SetGlobal("print", lua.LNil)

	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	// Remove non-deterministic math functions
	math := L.GetGlobal("math")
	if tbl, ok := math.(*lua.LTable); ok {
		L.SetField(tbl, "random", lua.LNil)
		L.SetField(tbl, "randomseed", lua.LNil)
	}
}

func exampleToTable(L *lua.LState, ex Example) *lua.LTable {
	tbl := L.NewTable()
	L.SetField(tbl, "id", lua.LString(ex.ID))
	L.SetField(tbl, "caption", lua.LString(ex.Caption))
	L.SetField(tbl, "context", lua.LString(ex.Context))
	L.SetField(tbl, "category", lua.LString(ex.Category))
	return tbl
}
