// Package session drives a page cursor from line-oriented text commands.
//
// It backs both the one-shot `nav` command and the interactive `repl`.
// A Session serializes command execution and cursor replacement so the page
// watcher can swap in a rebuilt cursor while a REPL is running.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/bft-labs/pageturn/internal/pagefile"
	"github.com/bft-labs/pageturn/pkg/log"
	"github.com/bft-labs/pageturn/pkg/pagination"
)

var (
	// ErrQuit is returned by Exec for quit/exit.
	ErrQuit = errors.New("pageturn: quit")

	// ErrUnknownCommand is returned by Exec for an unrecognized command.
	ErrUnknownCommand = errors.New("pageturn: unknown command")

	// ErrBadArgument is returned by Exec when a command argument is missing
	// or not an integer.
	ErrBadArgument = errors.New("pageturn: bad argument")
)

// Cursor is the page cursor a session drives.
type Cursor = pagination.Cursor[pagefile.Page]

// Session executes commands against one cursor at a time.
type Session struct {
	mu     sync.Mutex
	cursor *Cursor
	out    io.Writer
	logger log.Logger
	prompt string
}

// Option configures optional behavior of a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(logger log.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithPrompt sets the prompt Run prints before reading each line.
func WithPrompt(prompt string) Option {
	return func(s *Session) {
		s.prompt = prompt
	}
}

// New returns a session writing command output to out.
func New(cursor *Cursor, out io.Writer, opts ...Option) *Session {
	s := &Session{cursor: cursor, out: out}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = log.Or(s.logger)
	return s
}

// Replace swaps in a new cursor, carrying the current 0-based index over.
// The index is normalized by the new cursor's own policy.
func (s *Session) Replace(next *Cursor) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.cursor.CurrentIndex()
	next.JumpTo(prev)
	s.cursor = next
	s.logger.Info("page collection reloaded",
		log.Int("pages", len(next.All())),
		log.Int("previous_index", prev),
		log.String("indicator", next.Indicator()),
	)
}

// Reload builds a cursor from b and replaces the current one with it.
// The session keeps its cursor when b carries an error.
func (s *Session) Reload(b *pagination.Builder[pagefile.Page], opts ...pagination.Option) error {
	next, err := b.Build(opts...)
	if err != nil {
		return fmt.Errorf("rebuild cursor: %w", err)
	}
	s.Replace(next)
	return nil
}

// Indicator returns the current "current/total" string.
func (s *Session) Indicator() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor.Indicator()
}

// Exec runs one command line. Blank lines are ignored.
func (s *Session) Exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	name, args := strings.ToLower(fields[0]), fields[1:]

	if _, plain := plainCommands[name]; plain && len(args) > 0 {
		return fmt.Errorf("%w: %s takes no arguments", ErrBadArgument, name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cursor

	switch name {
	case "next", "n":
		s.printPage(c.Next())
	case "prev", "p":
		s.printPage(c.Prev())
	case "first":
		s.printPage(c.First())
	case "last":
		s.printPage(c.Last())
	case "current", "show":
		s.printPage(c.Current())
	case "goto", "g":
		h, err := intArg(name, args)
		if err != nil {
			return err
		}
		s.printPage(c.JumpToHuman(h))
	case "jump", "j":
		i, err := intArg(name, args)
		if err != nil {
			return err
		}
		s.printPage(c.JumpTo(i))
	case "peek":
		h, err := intArg(name, args)
		if err != nil {
			return err
		}
		page, ok := c.PeekHuman(h)
		fmt.Fprintf(s.out, "(peek) %s\n", render(page, ok))
	case "status":
		v := c.View()
		fmt.Fprintf(s.out, "page %s (next %d, prev %d, infinite %t)\n",
			v.Indicator, v.HumanNextIndex, v.HumanPrevIndex, c.Options().InfinitePages)
	case "list", "ls":
		current := c.CurrentIndex()
		for i, page := range c.All() {
			marker := " "
			if i == current {
				marker = ">"
			}
			fmt.Fprintf(s.out, "%s %d. %s\n", marker, i+1, page.Title)
		}
	case "help", "?":
		io.WriteString(s.out, helpText)
	case "quit", "exit", "q":
		return ErrQuit
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	return nil
}

// Run reads commands from in until EOF, quit, or ctx is done.
// Command errors are reported to the output and do not stop the loop.
// Lines are read on a separate goroutine so that ctx ends Run even while
// in is idle; that goroutine stays blocked in Read until in yields.
func (s *Session) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.prompt != "" {
			io.WriteString(s.out, s.prompt)
		}

		var line string
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-readErr:
			return err
		case line = <-lines:
		}

		err := s.Exec(line)
		switch {
		case errors.Is(err, ErrQuit):
			return nil
		case err != nil:
			s.logger.Debug("command failed", log.Err(err))
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
}

// indexCommands take exactly one integer argument.
var indexCommands = map[string]struct{}{
	"goto": {}, "g": {}, "jump": {}, "j": {}, "peek": {},
}

// plainCommands take no arguments.
var plainCommands = map[string]struct{}{
	"next": {}, "n": {}, "prev": {}, "p": {}, "first": {}, "last": {},
	"current": {}, "show": {}, "status": {}, "list": {}, "ls": {},
	"help": {}, "?": {}, "quit": {}, "exit": {}, "q": {},
}

// TakesIndex reports whether the command name expects an index argument.
func TakesIndex(name string) bool {
	_, ok := indexCommands[strings.ToLower(name)]
	return ok
}

func (s *Session) printPage(page pagefile.Page, ok bool) {
	fmt.Fprintf(s.out, "[%s] %s\n", s.cursor.Indicator(), render(page, ok))
}

func render(page pagefile.Page, ok bool) string {
	if !ok {
		return "(no pages)"
	}
	return page.String()
}

func intArg(cmd string, args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: %s takes one index", ErrBadArgument, cmd)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrBadArgument, cmd, err)
	}
	return n, nil
}

const helpText = `commands:
  next, n        advance one page
  prev, p        go back one page
  first, last    go to the first or last page
  current, show  print the current page
  goto N         go to page N (1-based)
  jump I         go to index I (0-based)
  peek N         print page N without moving
  status         print the position and neighbours
  list, ls       list page titles
  help, ?        print this help
  quit, exit     leave
`
