// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kotlin

import "github.com/orange-guo/fill-kotlin-arguments/model"

// builtins maps the simple names visible in every file through the
// default imports to their qualified names.
var builtins = map[string]string{}

func init() {
	for pkg, names := range map[string][]string{
		"kotlin": {
			"Any", "Unit", "Nothing", "Boolean", "Char", "String", "CharSequence",
			"Byte", "Short", "Int", "Long", "Float", "Double", "Number",
			"UByte", "UShort", "UInt", "ULong",
			"Array", "BooleanArray", "CharArray", "ByteArray", "ShortArray",
			"IntArray", "LongArray", "FloatArray", "DoubleArray",
			"Comparable", "Throwable", "Exception", "RuntimeException",
			"Pair", "Triple", "Lazy", "Result",
		},
		"kotlin.collections": {
			"Iterable", "Collection", "List", "Set", "Map",
			"MutableIterable", "MutableCollection", "MutableList", "MutableSet", "MutableMap",
			"ArrayList", "HashMap", "HashSet", "LinkedHashMap", "LinkedHashSet",
		},
		"kotlin.ranges":    {"IntRange", "LongRange", "CharRange"},
		"kotlin.sequences": {"Sequence"},
		"kotlin.text":      {"Regex", "StringBuilder"},
	} {
		for _, name := range names {
			builtins[name] = pkg + "." + name
		}
	}
}

// isBuiltin reports whether fqn names a class of the default imports.
func isBuiltin(fqn string) bool {
	return builtins[lastSegment(fqn)] == fqn
}

// builtinKinds classifies the builtin types the synthesizer has
// dedicated values for. Any other builtin is a Class.
var builtinKinds = map[string]model.Kind{
	"kotlin.Boolean":      model.Boolean,
	"kotlin.Char":         model.Char,
	"kotlin.String":       model.String,
	"kotlin.CharSequence": model.String,
	"kotlin.Double":       model.Double,
	"kotlin.Float":        model.Float,
	"kotlin.Int":          model.Integer,
	"kotlin.Long":         model.Integer,
	"kotlin.Short":        model.Integer,
	"kotlin.Array":        model.Array,
	"kotlin.BooleanArray": model.Array,
	"kotlin.CharArray":    model.Array,
	"kotlin.ByteArray":    model.Array,
	"kotlin.ShortArray":   model.Array,
	"kotlin.IntArray":     model.Array,
	"kotlin.LongArray":    model.Array,
	"kotlin.FloatArray":   model.Array,
	"kotlin.DoubleArray":  model.Array,
}

// varargArrays maps element types to the array type of a vararg
// parameter declared with them.
var varargArrays = map[string]string{
	"kotlin.Boolean": "kotlin.BooleanArray",
	"kotlin.Char":    "kotlin.CharArray",
	"kotlin.Byte":    "kotlin.ByteArray",
	"kotlin.Short":   "kotlin.ShortArray",
	"kotlin.Int":     "kotlin.IntArray",
	"kotlin.Long":    "kotlin.LongArray",
	"kotlin.Float":   "kotlin.FloatArray",
	"kotlin.Double":  "kotlin.DoubleArray",
}

// A builtinSym is the symbol of a builtin class type.
type builtinSym string
