package archive

import (
	"strings"

	"acgarden/pkg/logger"
)

// FallbackFileName is used for languages missing from the table
const FallbackFileName = "Main.txt"

// languageFileNames maps a judge language name (version/compiler suffix
// stripped) to the archived source file name.
var languageFileNames = map[string]string{
	"C++":          "Main.cpp",
	"C++14":        "Main.cpp",
	"C++17":        "Main.cpp",
	"C++20":        "Main.cpp",
	"Bash":         "Main.sh",
	"C":            "Main.c",
	"C#":           "Main.cs",
	"Clojure":      "Main.clj",
	"Common Lisp":  "Main.lisp",
	"D":            "Main.d",
	"Fortran":      "Main.f08",
	"Go":           "Main.go",
	"Haskell":      "Main.hs",
	"JavaScript":   "Main.js",
	"Java":         "Main.java",
	"OCaml":        "Main.ml",
	"Pascal":       "Main.pas",
	"Perl":         "Main.pl",
	"PHP":          "Main.php",
	"Python":       "Main.py",
	"Python3":      "Main.py",
	"PyPy2":        "Main.py",
	"PyPy3":        "Main.py",
	"Ruby":         "Main.rb",
	"Scala":        "Main.scala",
	"Scheme":       "Main.scm",
	"Visual Basic": "Main.vb",
	"Objective-C":  "Main.m",
	"Swift":        "Main.swift",
	"Rust":         "Main.rs",
	"Sed":          "Main.sed",
	"Awk":          "Main.awk",
	"Brainfuck":    "Main.bf",
	"Standard ML":  "Main.sml",
	"Crystal":      "Main.cr",
	"F#":           "Main.fs",
	"Unlambda":     "Main.unl",
	"Lua":          "Main.lua",
	"LuaJIT":       "Main.lua",
	"MoonScript":   "Main.moon",
	"Ceylon":       "Main.ceylon",
	"Julia":        "Main.jl",
	"Octave":       "Main.m",
	"Nim":          "Main.nim",
	"TypeScript":   "Main.ts",
	"Perl6":        "Main.p6",
	"Kotlin":       "Main.kt",
	"COBOL":        "Main.cob",
}

// LanguageFileName picks the source file name for a judge language.
// Language names often carry a parenthesized compiler or version suffix,
// e.g. "C++ (GCC 9.2.1)" or "PyPy3 (7.3.0)"; the suffix is ignored.
// Unknown languages fall back to a plain text name with a warning, never
// an error.
func LanguageFileName(language string) string {
	name := language
	if idx := strings.Index(name, "("); idx >= 0 {
		name = strings.TrimSpace(name[:idx])
	}

	if fileName, ok := languageFileNames[name]; ok {
		return fileName
	}

	logger.WithField("language", language).Warn("unknown language, using fallback file name")
	return FallbackFileName
}
