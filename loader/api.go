package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers the Lua constructors as globals.
func registerAPI(L *lua.LState, coll *collector) {
	// Carnival { title = "...", ... }. A later call replaces an earlier one.
	L.SetGlobal("Carnival", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		coll.carnival = tbl
		return 0
	}))

	// Pool "name" { "entry", ... } is curried: Pool("name") returns a function
	// that takes the entry table. Replaces any earlier pool of that name.
	L.SetGlobal("Pool", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.pools = append(coll.pools, rawPool{name: name, table: tbl})
			return 0
		}))
		return 1
	}))

	// Extend "name" { "entry", ... } appends to a pool.
	L.SetGlobal("Extend", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.pools = append(coll.pools, rawPool{name: name, table: tbl, extend: true})
			return 0
		}))
		return 1
	}))
}
