// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synth

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// A StringGenerator returns the contents of a synthesized string literal.
type StringGenerator func() string

// Empty generates empty strings.
func Empty() string { return "" }

// Random generates a fresh random UUID for every string.
func Random() string { return uuid.NewString() }

// Generator returns the generator called name: "empty" or "random".
func Generator(name string) (StringGenerator, error) {
	switch name {
	case "", "empty":
		return Empty, nil
	case "random":
		return Random, nil
	}
	return nil, fmt.Errorf("unknown string generator %q", name)
}

var escaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	`$`, `\$`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// quote returns s as a Kotlin string literal.
func quote(s string) string {
	return `"` + escaper.Replace(s) + `"`
}
