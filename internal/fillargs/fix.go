// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fillargs

import (
	"context"
	"log/slog"

	"github.com/orange-guo/fill-kotlin-arguments/internal/diff"
)

// maxPasses bounds the number of passes of FixAll.
const maxPasses = 10

// An Opener returns the host's view of a file with the given content.
type Opener func(src []byte) (File, error)

// FixAll applies the fixes of every problem of a file and returns the
// new content and the number of fixes applied.
//
// Fixes whose edits overlap an earlier fix of the same pass, such as a
// call nested in the arguments of another reported call, are deferred to
// a later pass over the edited content.
func FixAll(ctx context.Context, src []byte, open Opener, opts Options) ([]byte, int, error) {
	applied := 0
	for pass := 0; pass < maxPasses; pass++ {
		f, err := open(src)
		if err != nil {
			return nil, 0, err
		}
		problems, err := Diagnose(ctx, f, opts)
		if err != nil {
			return nil, 0, err
		}
		var edits []diff.Edit
		n := 0
		for _, p := range problems {
			fix, err := SuggestedFix(ctx, f, p, opts, nil)
			if err != nil {
				if ctx.Err() != nil {
					return nil, 0, ctx.Err()
				}
				opts.logger().Debug("skipping fix", slog.String("file", f.Name()), slog.Any("error", err))
				continue
			}
			merged, ok := diff.Merge(edits, fix.Edits())
			if !ok {
				continue // deferred
			}
			edits = merged
			n++
		}
		if n == 0 {
			break
		}
		if src, err = diff.ApplyBytes(src, edits); err != nil {
			return nil, 0, err
		}
		applied += n
	}
	return src, applied, nil
}
