package archive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLanguageFileName(t *testing.T) {
	tests := []struct {
		language string
		want     string
	}{
		{"C++14", "Main.cpp"},
		{"C++ (GCC 9.2.1)", "Main.cpp"},
		{"C++17 (Clang 10.0.0)", "Main.cpp"},
		{"Python3", "Main.py"},
		{"PyPy3 (7.3.0)", "Main.py"},
		{"Go (1.14.1)", "Main.go"},
		{"Rust (1.42.0)", "Main.rs"},
		{"Brainfuck", "Main.bf"},
		{"LuaJIT", "Main.lua"},
		{"Octave", "Main.m"},
		{"Objective-C", "Main.m"},
		{"Visual Basic", "Main.vb"},
	}

	for _, tt := range tests {
		t.Run(tt.language, func(t *testing.T) {
			assert.Equal(t, tt.want, LanguageFileName(tt.language))
		})
	}
}

func TestLanguageFileNameUnknownFallsBack(t *testing.T) {
	assert.Equal(t, FallbackFileName, LanguageFileName("Zig"))
	assert.Equal(t, FallbackFileName, LanguageFileName(""))
}
