package script

import (
	"errors"
	"regexp"
	"unicode"
	"unicode/utf8"

	lua "github.com/yuin/gopher-lua"
	"golang.org/x/text/language"

	"github.com/dshills/dequebuf/internal/engine/builder"
	"github.com/dshills/dequebuf/internal/engine/text"
)

const (
	seqModuleName = "seq"
	builderType   = "seq.builder"
)

// installSeq registers the builder metatable and the seq global.
func (s *State) installSeq() {
	mt := s.L.NewTypeMetatable(builderType)
	methods := s.methods()
	for name, fn := range methods {
		methods[name] = s.charged(fn)
	}
	s.L.SetField(mt, "__index", s.L.SetFuncs(s.L.NewTable(), methods))
	s.L.SetField(mt, "__tostring", s.L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(s.check(L, 1).String()))
		return 1
	}))
	s.L.SetField(mt, "__len", s.L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(s.check(L, 1).Len()))
		return 1
	}))

	mod := s.L.SetFuncs(s.L.NewTable(), map[string]lua.LGFunction{
		"new": s.charged(s.seqNew),
	})
	s.L.SetGlobal(seqModuleName, mod)
}

func (s *State) newUserData(b *builder.Builder[rune]) *lua.LUserData {
	ud := s.L.NewUserData()
	ud.Value = b
	s.L.SetMetatable(ud, s.L.GetTypeMetatable(builderType))
	return ud
}

// charged wraps fn so each call spends one unit of the run's budget.
func (s *State) charged(fn lua.LGFunction) lua.LGFunction {
	return func(L *lua.LState) int {
		if !s.charge() {
			L.RaiseError("%s", ErrInstructionLimit)
		}
		return fn(L)
	}
}

func (s *State) check(L *lua.LState, n int) *builder.Builder[rune] {
	ud := L.CheckUserData(n)
	b, ok := ud.Value.(*builder.Builder[rune])
	if !ok {
		L.ArgError(n, "seq builder expected")
	}
	return b
}

// must raises err as a Lua error.
func must(L *lua.LState, err error) {
	if err != nil {
		L.RaiseError("%s", err)
	}
}

// index converts a 1-based Lua index argument.
func index(L *lua.LState, n int) int {
	return L.CheckInt(n) - 1
}

func (s *State) seqNew(L *lua.LState) int {
	b := builder.FromString(L.OptString(1, ""), s.bopts...)
	s.owned = append(s.owned, b)
	L.Push(s.newUserData(b))
	return 1
}

// predicate adapts a Lua function to a rune predicate. Errors raised by the
// function, and budget exhaustion, surface as panics for the builder's Try
// wrappers or builder.Catch to handle.
func (s *State) predicate(L *lua.LState, fn *lua.LFunction) func(rune) bool {
	return func(r rune) bool {
		if !s.charge() {
			panic(ErrInstructionLimit)
		}
		if err := L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, lua.LString(string(r))); err != nil {
			panic(err)
		}
		ret := L.Get(-1)
		L.Pop(1)
		return lua.LVAsBool(ret)
	}
}

// self returns the receiver to allow chaining.
func self(L *lua.LState) int {
	L.Push(L.Get(1))
	return 1
}

func (s *State) methods() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"len": func(L *lua.LState) int {
			L.Push(lua.LNumber(s.check(L, 1).Len()))
			return 1
		},
		"string": func(L *lua.LState) int {
			L.Push(lua.LString(s.check(L, 1).String()))
			return 1
		},
		"at": func(L *lua.LState) int {
			r, err := s.check(L, 1).At(index(L, 2))
			must(L, err)
			L.Push(lua.LString(string(r)))
			return 1
		},
		"sub": func(L *lua.LState) int {
			v, err := s.check(L, 1).Slice(index(L, 2), L.CheckInt(3))
			must(L, err)
			L.Push(lua.LString(v.String()))
			return 1
		},
		"index_of": func(L *lua.LState) int {
			i := s.check(L, 1).IndexOfSeq([]rune(L.CheckString(2)), 0, nil)
			if i < 0 {
				L.Push(lua.LNil)
			} else {
				L.Push(lua.LNumber(i + 1))
			}
			return 1
		},
		"clear": func(L *lua.LState) int {
			s.check(L, 1).Clear()
			return self(L)
		},
		"append": func(L *lua.LState) int {
			must(L, builder.AppendString(s.check(L, 1), L.CheckString(2)))
			return self(L)
		},
		"prepend": func(L *lua.LState) int {
			must(L, builder.PrependString(s.check(L, 1), L.CheckString(2)))
			return self(L)
		},
		"insert": func(L *lua.LState) int {
			must(L, builder.InsertString(s.check(L, 1), index(L, 2), L.CheckString(3)))
			return self(L)
		},
		"remove": func(L *lua.LState) int {
			must(L, s.check(L, 1).Remove(index(L, 2), L.OptInt(3, 1)))
			return self(L)
		},
		"remove_left": func(L *lua.LState) int {
			must(L, s.check(L, 1).RemoveLeft(L.CheckInt(2)))
			return self(L)
		},
		"remove_right": func(L *lua.LState) int {
			must(L, s.check(L, 1).RemoveRight(L.CheckInt(2)))
			return self(L)
		},
		"replace": func(L *lua.LState) int {
			must(L, s.check(L, 1).Replace(index(L, 2), L.CheckInt(3), []rune(L.CheckString(4))))
			return self(L)
		},
		"replace_all": func(L *lua.LState) int {
			n, err := s.check(L, 1).ReplaceAll([]rune(L.CheckString(2)), []rune(L.CheckString(3)), nil)
			must(L, err)
			L.Push(lua.LNumber(n))
			return 1
		},
		"reverse": func(L *lua.LState) int {
			b := s.check(L, 1)
			if L.GetTop() < 2 {
				b.ReverseAll()
			} else {
				must(L, b.Reverse(index(L, 2), L.CheckInt(3)))
			}
			return self(L)
		},
		"swap": func(L *lua.LState) int {
			must(L, s.check(L, 1).Swap(index(L, 2), index(L, 3)))
			return self(L)
		},
		"pad_left": func(L *lua.LState) int {
			must(L, text.PadLeft(s.check(L, 1), L.CheckInt(2), L.OptString(3, " ")))
			return self(L)
		},
		"pad_right": func(L *lua.LState) int {
			must(L, text.PadRight(s.check(L, 1), L.CheckInt(2), L.OptString(3, " ")))
			return self(L)
		},
		"pad_even": func(L *lua.LState) int {
			must(L, text.PadEven(s.check(L, 1), L.CheckInt(2), L.OptString(3, " "), L.OptBool(4, false)))
			return self(L)
		},
		"wrap": func(L *lua.LState) int {
			must(L, text.Wrap(s.check(L, 1), L.CheckString(2), L.CheckString(3)))
			return self(L)
		},
		"unwrap": func(L *lua.LState) int {
			L.Push(lua.LBool(text.Unwrap(s.check(L, 1), L.CheckString(2), L.CheckString(3))))
			return 1
		},
		"trim": func(L *lua.LState) int {
			L.Push(lua.LNumber(text.TrimSpace(s.check(L, 1))))
			return 1
		},
		"collapse": func(L *lua.LState) int {
			L.Push(lua.LNumber(text.CollapseWhitespace(s.check(L, 1))))
			return 1
		},
		"normalize": func(L *lua.LState) int {
			values := []rune(L.OptString(3, ""))
			n, err := s.check(L, 1).NormalizeAdjacent(L.CheckInt(2), nil, len(values) == 0, values...)
			must(L, err)
			L.Push(lua.LNumber(n))
			return 1
		},
		"dedupe": func(L *lua.LState) int {
			L.Push(lua.LNumber(s.check(L, 1).NormalizeDuplicates(nil)))
			return 1
		},
		"remove_where": func(L *lua.LState) int {
			b, pred := s.check(L, 1), s.predicate(L, L.CheckFunction(2))
			var n int
			must(L, builder.Catch(func() { n = b.RemoveWhere(pred) }))
			L.Push(lua.LNumber(n))
			return 1
		},
		"try_remove_where": func(L *lua.LState) int {
			n, ok := s.check(L, 1).TryRemoveWhere(s.predicate(L, L.CheckFunction(2)))
			L.Push(lua.LNumber(n))
			L.Push(lua.LBool(ok))
			return 2
		},
		"replace_where": func(L *lua.LState) int {
			b, pred := s.check(L, 1), s.predicate(L, L.CheckFunction(2))
			with := []rune(L.CheckString(3))
			var n int
			var err error
			must(L, builder.Catch(func() { n, err = b.ReplaceWhere(pred, with) }))
			must(L, err)
			L.Push(lua.LNumber(n))
			return 1
		},
		"split": s.split,
		"case":  s.changeCase,
		"replace_regex": func(L *lua.LState) int {
			b := s.check(L, 1)
			re, err := regexp.Compile(L.CheckString(2))
			if err != nil {
				L.ArgError(2, err.Error())
			}
			n, err := text.ReplaceMatches(b, re, L.CheckString(3))
			must(L, err)
			L.Push(lua.LNumber(n))
			return 1
		},
	}
}

// split returns a table of entries. A one-rune separator splits on that
// rune, a longer one on the whole sequence. The optional third argument is
// a table with trim, remove_empty and limit fields.
func (s *State) split(L *lua.LState) int {
	b := s.check(L, 1)
	sep := L.OptString(2, ",")
	var opts text.SplitOptions
	if t, ok := L.Get(3).(*lua.LTable); ok {
		opts.TrimEntries = lua.LVAsBool(t.RawGetString("trim"))
		opts.RemoveEmpty = lua.LVAsBool(t.RawGetString("remove_empty"))
		if n, ok := t.RawGetString("limit").(lua.LNumber); ok {
			opts.Limit = int(n)
		}
	}

	var parts []string
	if utf8.RuneCountInString(sep) == 1 {
		r, _ := utf8.DecodeRuneInString(sep)
		parts = text.Split(b, text.Rune(r), opts)
	} else if sep == "" {
		parts = text.Split(b, unicode.IsSpace, opts)
	} else {
		var err error
		parts, err = text.SplitSeq(b, sep, opts)
		must(L, err)
	}

	t := L.CreateTable(len(parts), 0)
	for _, p := range parts {
		t.Append(lua.LString(p))
	}
	L.Push(t)
	return 1
}

func (s *State) changeCase(L *lua.LState) int {
	b := s.check(L, 1)
	mode := L.CheckString(2)
	tag, err := language.Parse(L.OptString(3, "und"))
	if err != nil {
		L.ArgError(3, err.Error())
	}
	if err := text.ChangeCase(b, mode, tag); err != nil {
		if errors.Is(err, text.ErrUnknownCase) {
			L.ArgError(2, err.Error())
		}
		must(L, err)
	}
	return self(L)
}
