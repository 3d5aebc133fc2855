package syntax

// Builtins returns fresh copies of the built-in profiles.
func Builtins() []*Profile {
	return []*Profile{
		NewProfile(cDefinition),
		NewProfile(goDefinition),
		NewProfile(pythonDefinition),
		NewProfile(shellDefinition),
	}
}

// cDefinition is the C/C++ filetype.
var cDefinition = Definition{
	Name:  "c",
	Match: []string{".c", ".h", ".cpp"},
	Keywords: []string{
		"switch", "if", "while", "for", "break", "continue", "return", "else",
		"struct", "union", "typedef", "static", "enum", "class", "case",
		"int|", "long|", "double|", "float|", "char|", "unsigned|", "signed|",
		"void|",
	},
	LineComment:       "//",
	BlockCommentStart: "/*",
	BlockCommentEnd:   "*/",
	Flags:             HighlightNumbers | HighlightStrings,
}

// goDefinition is the Go filetype.
var goDefinition = Definition{
	Name:  "go",
	Match: []string{".go"},
	Keywords: []string{
		"break", "case", "chan", "const", "continue", "default", "defer",
		"else", "fallthrough", "for", "func", "go", "goto", "if", "import",
		"interface", "map", "package", "range", "return", "select", "struct",
		"switch", "type", "var",
		"bool|", "byte|", "error|", "float32|", "float64|", "int|", "int8|",
		"int16|", "int32|", "int64|", "rune|", "string|", "uint|", "uint8|",
		"uint16|", "uint32|", "uint64|", "uintptr|", "any|",
		"true|", "false|", "nil|", "iota|",
	},
	LineComment:       "//",
	BlockCommentStart: "/*",
	BlockCommentEnd:   "*/",
	Flags:             HighlightNumbers | HighlightStrings,
}

// pythonDefinition has no block comments.
var pythonDefinition = Definition{
	Name:  "python",
	Match: []string{".py"},
	Keywords: []string{
		"and", "as", "assert", "break", "class", "continue", "def", "del",
		"elif", "else", "except", "finally", "for", "from", "global", "if",
		"import", "in", "is", "lambda", "nonlocal", "not", "or", "pass",
		"raise", "return", "try", "while", "with", "yield",
		"True|", "False|", "None|", "int|", "str|", "float|", "bool|",
		"list|", "dict|", "tuple|", "set|",
	},
	LineComment: "#",
	Flags:       HighlightNumbers | HighlightStrings,
}

// shellDefinition covers POSIX shell scripts and rc files.
var shellDefinition = Definition{
	Name:  "shell",
	Match: []string{".sh", ".bash", "bashrc", "profile"},
	Keywords: []string{
		"if", "then", "else", "elif", "fi", "case", "esac", "for", "while",
		"until", "do", "done", "in", "function", "return", "select",
		"echo|", "export|", "local|", "readonly|", "set|", "unset|", "shift|",
		"source|", "exit|",
	},
	LineComment: "#",
	Flags:       HighlightNumbers | HighlightStrings,
}
