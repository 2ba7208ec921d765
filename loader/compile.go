package loader

import (
	"fmt"

	"github.com/nathoo/midway/engine/state"
	"github.com/nathoo/midway/types"
	lua "github.com/yuin/gopher-lua"
)

// rawPool holds a pool table before compilation.
type rawPool struct {
	name   string
	table  *lua.LTable
	extend bool
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// compile converts all collected Lua data into a Defs struct.
func compile(coll *collector) (*state.Defs, error) {
	if coll.carnival == nil {
		return nil, fmt.Errorf("no Carnival{} definition found")
	}

	defs := &state.Defs{
		Carnival: compileCarnival(coll.carnival),
		Pools:    map[string][]string{},
	}

	for _, raw := range coll.pools {
		entries, err := compilePool(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling pool %s: %w", raw.name, err)
		}
		if raw.extend {
			defs.Pools[raw.name] = append(defs.Pools[raw.name], entries...)
		} else {
			defs.Pools[raw.name] = entries
		}
	}

	return defs, nil
}

func compileCarnival(tbl *lua.LTable) types.CarnivalDef {
	return types.CarnivalDef{
		Title:   getString(tbl, "title"),
		Author:  getString(tbl, "author"),
		Version: getString(tbl, "version"),
		Intro:   getString(tbl, "intro"),
	}
}

// compilePool reads the array part of a pool table. Every entry must be a
// string.
func compilePool(raw rawPool) ([]string, error) {
	n := raw.table.MaxN()
	entries := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		v := raw.table.RawGetInt(i)
		s, ok := v.(lua.LString)
		if !ok {
			return nil, fmt.Errorf("entry %d is a %s, want string", i, v.Type())
		}
		entries = append(entries, string(s))
	}
	return entries, nil
}
