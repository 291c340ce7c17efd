// Copyright © 2025 The Whisker authors

// Package builtin provides the standard macro set for Whisker stories.
package builtin

import (
	"fmt"
	"strings"

	"github.com/whiskertales/whisker/macro"
)

type builtinDef struct {
	name     string
	category string
	pure     bool
	async    bool
	fn       macro.Handler
}

var builtins = []*builtinDef{
	{"print", "text", false, false, builtinPrint},
	{"println", "text", false, false, builtinPrintln},
	{"uppercase", "text", true, false, builtinUppercase},
	{"set", "data", false, false, builtinSet},
	{"get", "data", true, false, builtinGet},
	{"goto", "link", false, false, builtinGoto},
	{"save", "storage", false, true, builtinSave},
	{"load", "storage", false, true, builtinLoad},
	{"play-audio", "audio", false, true, builtinPlayAudio},
}

// Register adds the standard macro set to reg.
func Register(reg *macro.Registry) {
	for _, b := range builtins {
		reg.Register(b.name, macro.Definition{
			Handler:  b.fn,
			Category: b.category,
			Pure:     b.pure,
			Async:    b.async,
		})
	}
}

// NewRegistry returns a registry populated with the standard macro set.
func NewRegistry() *macro.Registry {
	reg := macro.NewRegistry()
	Register(reg)
	return reg
}

func requireArgs(name string, args []interface{}, n int) error {
	if len(args) < n {
		return fmt.Errorf("%s: %w: want %d, got %d",
			name, macro.ErrMissingArgument, n, len(args))
	}
	return nil
}

func stringify(args []interface{}) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprint(a)
	}
	return strings.Join(parts, " ")
}

func builtinPrint(ctx *macro.Context, args []interface{}) (interface{}, error) {
	ctx.Write(stringify(args))
	return nil, nil
}

func builtinPrintln(ctx *macro.Context, args []interface{}) (interface{}, error) {
	ctx.Writeln(stringify(args))
	return nil, nil
}

func builtinUppercase(ctx *macro.Context, args []interface{}) (interface{}, error) {
	if err := requireArgs("uppercase", args, 1); err != nil {
		return nil, err
	}
	return strings.ToUpper(fmt.Sprint(args[0])), nil
}

func builtinSet(ctx *macro.Context, args []interface{}) (interface{}, error) {
	if err := requireArgs("set", args, 2); err != nil {
		return nil, err
	}
	name, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("set: variable name must be a string, got %T", args[0])
	}
	ctx.Set(name, args[1], false)
	return nil, nil
}

func builtinGet(ctx *macro.Context, args []interface{}) (interface{}, error) {
	if err := requireArgs("get", args, 1); err != nil {
		return nil, err
	}
	name, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("get: variable name must be a string, got %T", args[0])
	}
	value, _ := ctx.Get(name)
	return value, nil
}

func builtinGoto(ctx *macro.Context, args []interface{}) (interface{}, error) {
	if err := requireArgs("goto", args, 1); err != nil {
		return nil, err
	}
	ctx.GotoPassage(fmt.Sprint(args[0]))
	return nil, nil
}

// builtinSave requests a host-side save of the context's base variables.
// The host resolves the request and re-enters the story when it completes.
func builtinSave(ctx *macro.Context, args []interface{}) (interface{}, error) {
	if err := requireArgs("save", args, 1); err != nil {
		return nil, err
	}
	vars := make(map[string]interface{})
	for _, name := range saveNames(ctx, args[1:]) {
		if v, ok := ctx.Get(name); ok {
			vars[name] = v
		}
	}
	return macro.Result{
		Tag: "save",
		Data: map[string]interface{}{
			"slot": fmt.Sprint(args[0]),
			"vars": vars,
		},
	}, nil
}

// saveNames returns the variables a save request covers: the explicitly
// listed names, or every resolvable name the host asked the context to
// track when none are listed.
func saveNames(ctx *macro.Context, listed []interface{}) []string {
	if len(listed) == 0 {
		if tracked, ok := ctx.Get("_save_vars"); ok {
			if names, ok := tracked.([]interface{}); ok {
				out := make([]string, 0, len(names))
				for _, n := range names {
					out = append(out, fmt.Sprint(n))
				}
				return out
			}
		}
		return nil
	}
	out := make([]string, 0, len(listed))
	for _, n := range listed {
		out = append(out, fmt.Sprint(n))
	}
	return out
}

func builtinLoad(ctx *macro.Context, args []interface{}) (interface{}, error) {
	if err := requireArgs("load", args, 1); err != nil {
		return nil, err
	}
	return macro.Result{
		Tag:  "load",
		Data: map[string]interface{}{"slot": fmt.Sprint(args[0])},
	}, nil
}

func builtinPlayAudio(ctx *macro.Context, args []interface{}) (interface{}, error) {
	if err := requireArgs("play-audio", args, 1); err != nil {
		return nil, err
	}
	data := map[string]interface{}{"track": fmt.Sprint(args[0])}
	if len(args) > 1 {
		data["volume"] = args[1]
	}
	return macro.Result{Tag: "play-audio", Data: data}, nil
}
