// Package shell implements the interactive command-line surface. One
// shell drives one manager; commands run on the readline goroutine, so
// no locking is needed here.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/quirelabs/quire/internal/audit"
	"github.com/quirelabs/quire/internal/notes"
	"github.com/quirelabs/quire/internal/settings"
)

// errExit signals a clean exit out of the command loop.
var errExit = errors.New("exit requested")

// Shell is the interactive front end over a note manager.
type Shell struct {
	mgr     *notes.Manager
	prefs   *settings.Store
	auditDB *audit.DB
	logger  *slog.Logger
	rl      *readline.Instance
}

// New creates a shell. The readline instance is created in Run.
func New(mgr *notes.Manager, prefs *settings.Store, auditDB *audit.DB, logger *slog.Logger) *Shell {
	return &Shell{mgr: mgr, prefs: prefs, auditDB: auditDB, logger: logger}
}

// Run starts the readline loop and blocks until exit or ctx cancel.
func (s *Shell) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.prompt(),
		HistoryFile:     s.prefs.Get("history.file", ""),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("shell: init readline: %w", err)
	}
	s.rl = rl
	defer rl.Close()

	fmt.Println("Quire shell. Use 'help' for the list of commands.")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			fmt.Println("Use 'exit' to leave the shell.")
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if err := s.execute(parseArgs(line)); err != nil {
			if errors.Is(err, errExit) {
				fmt.Println("Goodbye!")
				return nil
			}
			fmt.Println("Error:", err)
		}

		rl.SetPrompt(s.prompt())
	}
}

func (s *Shell) prompt() string {
	return s.mgr.CurrentPath() + "> "
}

// parseArgs splits a command line on spaces, honoring double quotes.
func parseArgs(input string) []string {
	var args []string
	var current strings.Builder
	inQuotes := false

	for _, char := range input {
		switch char {
		case '"':
			inQuotes = !inQuotes
		case ' ':
			if !inQuotes {
				if current.Len() > 0 {
					args = append(args, current.String())
					current.Reset()
				}
			} else {
				current.WriteRune(char)
			}
		default:
			current.WriteRune(char)
		}
	}

	if current.Len() > 0 {
		args = append(args, current.String())
	}

	return args
}

// resolveNote accepts a numeric id or a title within the current folder.
func (s *Shell) resolveNote(arg string) (int, error) {
	if id, err := strconv.Atoi(arg); err == nil {
		if _, err := s.mgr.Note(id); err != nil {
			return 0, err
		}
		return id, nil
	}
	folderNotes, _, err := s.mgr.ListContents(s.mgr.CurrentFolder())
	if err != nil {
		return 0, err
	}
	for _, n := range folderNotes {
		if n.Title == arg {
			return n.ID, nil
		}
	}
	return 0, fmt.Errorf("no note %q in the current folder", arg)
}

// resolveFolder accepts a numeric id or a path.
func (s *Shell) resolveFolder(arg string) (int, error) {
	if id, err := strconv.Atoi(arg); err == nil {
		if _, err := s.mgr.Folder(id); err != nil {
			return 0, err
		}
		return id, nil
	}
	f, err := s.mgr.FindFolderByPath(arg)
	if err != nil {
		return 0, err
	}
	return f.ID, nil
}

// readBody reads lines until a line containing only "EOF".
func (s *Shell) readBody() (string, error) {
	s.rl.SetPrompt("... ")
	defer s.rl.SetPrompt(s.prompt())

	fmt.Println("Enter content, finish with a line containing only EOF:")
	var lines []string
	for {
		line, err := s.rl.Readline()
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(line) == "EOF" {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}
