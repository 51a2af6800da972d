// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fillargs defines the inspection that reports Kotlin calls
// whose argument lists do not supply every parameter, and the fix that
// fills in the remaining arguments.
//
// The diagnostic carries the suggested argument list, synthesized at
// scan time; the actual patch is computed by a separate call to
// [SuggestedFix] when the user applies it.
package fillargs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/orange-guo/fill-kotlin-arguments/analysis"
	"github.com/orange-guo/fill-kotlin-arguments/internal/diff"
	"github.com/orange-guo/fill-kotlin-arguments/internal/merge"
	"github.com/orange-guo/fill-kotlin-arguments/internal/synth"
	"github.com/orange-guo/fill-kotlin-arguments/model"
	"github.com/orange-guo/fill-kotlin-arguments/syntax"
)

const FixCategory = "fillargs" // the Category of every diagnostic of this inspection

// FixTitle is the message of the suggested fix.
const FixTitle = "Specify all remaining arguments"

// A Preset is a named configuration of the inspection.
type Preset struct {
	Name    string
	Message string // diagnostic message
	Strings synth.StringGenerator
}

var (
	// Fill fills string parameters with empty strings.
	Fill = Preset{Name: "fill", Message: "Fill all remaining arguments", Strings: synth.Empty}

	// Specify fills string parameters with random strings.
	Specify = Preset{Name: "specify", Message: "Fill empty values", Strings: synth.Random}
)

// LookupPreset returns the preset called name.
func LookupPreset(name string) (Preset, error) {
	for _, p := range []Preset{Fill, Specify} {
		if p.Name == name {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("unknown preset %q", name)
}

// A Call is an argument list of a file, as located by the host.
type Call struct {
	List *syntax.ArgList // positions are offsets into the file

	// InCall reports whether List is the value argument list of a call
	// expression, as opposed to, say, an annotation or enum entry.
	InCall bool

	// TrailingLambda reports whether a lambda follows the parentheses.
	TrailingLambda bool

	Callee string // callee text, for logging
}

// Supplied returns the number of arguments the call passes.
func (c Call) Supplied() int {
	n := len(c.List.Args)
	if c.TrailingLambda {
		n++
	}
	return n
}

// A File is the host's view of one source file.
type File interface {
	Name() string
	Src() []byte

	// Calls returns the argument lists of the file in source order.
	Calls() []Call

	// Resolve returns the function or constructor called by c, or false
	// if it cannot be resolved unambiguously.
	Resolve(c Call) (*model.Signature, bool)

	// Session returns the semantic context for synthesizing values.
	Session() model.Session

	// NewShortener returns a reference shortener for one fix.
	NewShortener() Shortener
}

// A Shortener is a [merge.Shortener] that records the imports its
// shortened references need.
type Shortener interface {
	merge.Shortener

	// Imports returns the edits adding the recorded imports to the file.
	Imports() []diff.Edit
}

// Options configures the inspection.
type Options struct {
	Preset   Preset
	Merge    merge.Options
	Indent   string // indentation unit of split argument lists
	MaxDepth int    // see synth.Options
	Logger   *slog.Logger
}

// DefaultOptions returns the options of the Fill preset.
func DefaultOptions() Options {
	return Options{
		Preset:   Fill,
		Merge:    merge.DefaultOptions(),
		Indent:   merge.DefaultUnit,
		MaxDepth: synth.DefaultMaxDepth,
	}
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// A Problem is a reported call together with its fix payload.
type Problem struct {
	analysis.Diagnostic

	Call      Call
	Signature *model.Signature

	// Suggestion is the complete suggested argument list, with
	// positions into SuggestionText.
	Suggestion     *syntax.ArgList
	SuggestionText string
}

// Diagnose reports the calls of f that do not supply every parameter of
// their callee.
//
// Each diagnostic contains a lazy fix; the actual patch is computed by a
// call to [SuggestedFix].
func Diagnose(ctx context.Context, f File, opts Options) ([]*Problem, error) {
	var problems []*Problem
	for _, c := range f.Calls() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, err := scan(ctx, f, c, opts)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			opts.logger().Error("scanning argument list",
				slog.String("file", f.Name()),
				slog.Int("offset", c.List.Pos()),
				slog.Any("error", err))
			continue
		}
		if p != nil {
			problems = append(problems, p)
		}
	}
	return problems, nil
}

// scan checks one argument list. A panic while checking is reported as
// an error, so that one list cannot stop the scan of the file.
func scan(ctx context.Context, f File, c Call, opts Options) (p *Problem, err error) {
	defer func() {
		if r := recover(); r != nil {
			p, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()
	log := opts.logger()

	if !c.InCall {
		return nil, nil
	}
	sig, ok := f.Resolve(c)
	if !ok {
		log.Debug("unresolved call", slog.String("file", f.Name()), slog.String("callee", c.Callee))
		return nil, nil
	}
	if len(sig.Params) == 0 || c.Supplied() >= len(sig.Params) {
		return nil, nil
	}

	st := synth.NewState(sig.Name, synth.SyntaxFactory{}, f.Session(), synth.Options{
		Strings:  opts.Preset.Strings,
		MaxDepth: opts.MaxDepth,
	})
	list, err := synth.BuildArgumentList(ctx, sig, st)
	if errors.Is(err, synth.ErrAnonymous) {
		log.Debug("callee without a name", slog.String("file", f.Name()), slog.String("callee", c.Callee))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	text := list.Text()
	suggestion, err := st.Factory.ParseArgs(text)
	if err != nil {
		return nil, fmt.Errorf("parsing suggestion for %s: %w", sig.Name, err)
	}

	return &Problem{
		Diagnostic: analysis.Diagnostic{
			File:     f.Name(),
			Pos:      c.List.Pos(),
			End:      c.List.End(),
			Category: FixCategory,
			Message:  opts.Preset.Message,
			SuggestedFixes: []analysis.SuggestedFix{{
				Message: FixTitle,
				// No TextEdits => computed later by SuggestedFix.
			}},
		},
		Call:           c,
		Signature:      sig,
		Suggestion:     suggestion,
		SuggestionText: text,
	}, nil
}

// SuggestedFix computes the fix for p, whose positions must be valid for
// the current content of f. If surface is non-nil, the inserted values
// are presented on it as tab stops.
func SuggestedFix(ctx context.Context, f File, p *Problem, opts Options, surface merge.Surface) (*analysis.SuggestedFix, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	shortener := f.NewShortener()
	engine := &merge.Engine{
		Options:   opts.Merge,
		Splitter:  merge.LineSplitter{Unit: opts.Indent},
		Shortener: shortener,
		Surface:   surface,
	}
	res, err := engine.Apply(merge.Input{
		Src:            f.Src(),
		List:           p.Call.List,
		Suggested:      p.Suggestion,
		SuggestedSrc:   p.SuggestionText,
		TrailingLambda: p.Call.TrailingLambda,
	})
	if err != nil {
		return nil, err
	}
	edits, ok := diff.Merge([]diff.Edit{res.Edit}, shortener.Imports())
	if !ok {
		return nil, fmt.Errorf("imports overlap the argument list of %s", p.Signature.Name)
	}

	fix := &analysis.SuggestedFix{Message: FixTitle, Snippet: res.Snippet}
	for _, e := range edits {
		fix.TextEdits = append(fix.TextEdits, analysis.TextEdit{Pos: e.Start, End: e.End, NewText: []byte(e.New)})
	}
	opts.logger().Debug("computed fix",
		slog.String("file", f.Name()),
		slog.String("callee", p.Signature.Name),
		slog.Any("added", res.Added))
	return fix, nil
}
