package clangx

import (
	"path/filepath"

	"github.com/go-clang/clang-v14/clang"
	"github.com/pkg/errors"
)

// CompilationDatabase wraps a directory's compile_commands.json, letting a
// Project resolve the exact build flags a source file was compiled with
// instead of relying on the argument vector supplied by OPTIONS.
type CompilationDatabase struct {
	db clang.CompilationDatabase
}

// LoadCompilationDatabase opens the compile_commands.json found in dir.
func LoadCompilationDatabase(dir string) (*CompilationDatabase, error) {
	code, db := clang.FromDirectory(dir)
	if code != clang.CompilationDatabase_NoError {
		return nil, errors.Errorf("loading compilation database from %q", dir)
	}
	return &CompilationDatabase{db: db}, nil
}

// Dispose releases the compilation database.
func (c *CompilationDatabase) Dispose() {
	c.db.Dispose()
}

// ArgsFor returns the compiler arguments the database records for path, or
// nil if no compile command matches it. Matching is by absolute path
// equality, the same comparison reqtraq's findMatchingCommand uses; -MD and
// -MF are stripped, since they only affect dependency-file output and play
// no part in parsing.
func (c *CompilationDatabase) ArgsFor(path string) []string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	commands := c.db.AllCompileCommands()
	n := commands.Size()
	for i := uint32(0); i < n; i++ {
		cmd := commands.Command(i)
		cmdPath := cmd.Filename()
		if !filepath.IsAbs(cmdPath) {
			cmdPath, err = filepath.Abs(filepath.Join(cmd.Directory(), cmdPath))
			if err != nil {
				continue
			}
		}
		if cmdPath != abs {
			continue
		}
		return translateCommandArgs(cmd)
	}
	return nil
}

// translateCommandArgs drops -MD/-MF (and the file the latter names) from a
// compile command's argument list, mirroring reqtraq's translateCommand.
func translateCommandArgs(cmd clang.CompileCommand) []string {
	out := make([]string, 0, cmd.NumArgs())
	skipNext := false
	for i := uint32(0); i < cmd.NumArgs(); i++ {
		if skipNext {
			skipNext = false
			continue
		}
		arg := cmd.Arg(i)
		if arg == "-MF" {
			skipNext = true
			continue
		}
		if arg == "-MD" {
			continue
		}
		out = append(out, arg)
	}
	return out
}
