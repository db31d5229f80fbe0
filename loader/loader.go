package loader

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nathoo/abilitycore/engine/catalog"
	"github.com/nathoo/abilitycore/engine/state"
	"github.com/nathoo/abilitycore/types"
	lua "github.com/yuin/gopher-lua"
)

// collector accumulates Lua definitions during file execution.
type collector struct {
	game      *lua.LTable
	statuses  []rawDef
	abilities []rawDef
	entities  []rawEntity
}

// Content is everything a content directory defines: metadata, the
// immutable catalog and the starting roster.
type Content struct {
	Info     types.GameInfo
	Catalog  *catalog.Catalog
	Entities []types.Entity
}

// NewWorld builds a fresh world from the starting roster. Each call
// returns an independent world.
func (c *Content) NewWorld() (*state.World, error) {
	w := state.NewWorld()
	for _, e := range c.Entities {
		if err := w.Insert(e); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// Option configures Load.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger that receives validation warnings.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Load reads all .lua files from dir, compiles them into definitions,
// validates references, and returns the content. The Lua VM is
// discarded after loading.
func Load(dir string, opts ...Option) (*Content, error) {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	// Discover .lua files.
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading content directory %s: %w", dir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			luaFiles = append(luaFiles, e.Name())
		}
	}
	if len(luaFiles) == 0 {
		return nil, fmt.Errorf("no .lua files found in %s", dir)
	}

	// Sort: game.lua first, rest alphabetical.
	luaFiles = sortedLuaFiles(luaFiles)

	// Create sandboxed VM.
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	openSafeLibs(L)
	sandbox(L)

	// Register API.
	coll := &collector{}
	registerAPI(L, coll)

	// Execute each file.
	for _, f := range luaFiles {
		path := filepath.Join(dir, f)
		if err := L.DoFile(path); err != nil {
			return nil, fmt.Errorf("executing %s: %w", f, err)
		}
	}

	// Compile.
	ve := &ValidationError{}
	c, err := compile(coll, ve)
	if err != nil {
		return nil, fmt.Errorf("compiling content: %w", err)
	}

	// Validate.
	validate(c, ve)
	for _, w := range ve.Warnings {
		o.logger.Warn("content warning", "dir", dir, "warning", w)
	}
	if len(ve.Errors) > 0 {
		return nil, ve
	}

	cat, err := catalog.New(c.abilities, c.statuses)
	if err != nil {
		return nil, fmt.Errorf("building catalog: %w", err)
	}

	o.logger.Debug("content loaded",
		"dir", dir,
		"files", len(luaFiles),
		"abilities", len(c.abilities),
		"statuses", len(c.statuses),
		"entities", len(c.entities))

	return &Content{Info: c.info, Catalog: cat, Entities: c.entities}, nil
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	// Base library (print, type, tostring, tonumber, pairs, ipairs, etc.)
	lua.OpenBase(L)
	// Table library (table.insert, table.sort, etc.)
	lua.OpenTable(L)
	// String library (string.format, string.sub, etc.)
	lua.OpenString(L)
	// Math library (math.floor, math.max, etc.)
	lua.OpenMath(L)
}

// sandbox removes dangerous globals and functions.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	// Remove math.randomseed to preserve determinism.
	if mathTbl := L.GetGlobal("math"); mathTbl != lua.LNil {
		if tbl, ok := mathTbl.(*lua.LTable); ok {
			tbl.RawSetString("randomseed", lua.LNil)
		}
	}
}
