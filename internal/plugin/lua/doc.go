// Package lua runs filetype scripts in a sandboxed gopher-lua state.
//
// Scripts declare filetypes by calling the global filetype function:
//
//	filetype{
//	    name = "lua",
//	    match = {".lua"},
//	    keywords = {"if", "then", "end", "function", "local"},
//	    types = {"nil", "true", "false"},
//	    line_comment = "--",
//	    block_comment = {"--[[", "]]"},
//	    numbers = true,
//	    strings = true,
//	}
//
// Only the base, table, string and math libraries are available. The
// io, os, debug and package libraries are never opened, and the loaders
// that read or compile code at runtime are removed.
package lua
