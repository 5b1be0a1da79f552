package session

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/bft-labs/pageturn/internal/pagefile"
	"github.com/bft-labs/pageturn/pkg/pagination"
)

func newSession(t *testing.T, infinite bool, titles ...string) (*Session, *bytes.Buffer) {
	t.Helper()
	b := pagination.NewBuilder[pagefile.Page]().SetOptions(pagination.Options{InfinitePages: infinite})
	for _, title := range titles {
		b.AddPage(pagefile.Page{Title: title})
	}
	c, err := b.Build()
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}
	var out bytes.Buffer
	return New(c, &out), &out
}

func TestExec_Navigation(t *testing.T) {
	tests := []struct {
		name     string
		infinite bool
		commands []string
		want     string
	}{
		{
			name:     "circular next wraps",
			infinite: true,
			commands: []string{"next", "n"},
			want:     "[2/2] B\n[1/2] A\n",
		},
		{
			name:     "clamping next holds",
			infinite: false,
			commands: []string{"last", "next", "first", "prev"},
			want:     "[2/2] B\n[2/2] B\n[1/2] A\n[1/2] A\n",
		},
		{
			name:     "goto and jump",
			infinite: false,
			commands: []string{"goto 2", "jump 0", "show"},
			want:     "[2/2] B\n[1/2] A\n[1/2] A\n",
		},
		{
			name:     "peek keeps position",
			infinite: false,
			commands: []string{"peek 2", "current"},
			want:     "(peek) B\n[1/2] A\n",
		},
		{
			name:     "status",
			infinite: true,
			commands: []string{"status"},
			want:     "page 1/2 (next 2, prev 2, infinite true)\n",
		},
		{
			name:     "list marks current",
			infinite: false,
			commands: []string{"next", "list"},
			want:     "[2/2] B\n  1. A\n> 2. B\n",
		},
		{
			name:     "blank line ignored",
			commands: []string{"   "},
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, out := newSession(t, tt.infinite, "A", "B")
			for _, cmd := range tt.commands {
				if err := s.Exec(cmd); err != nil {
					t.Fatalf("Exec(%q) unexpected error: %v", cmd, err)
				}
			}
			if out.String() != tt.want {
				t.Fatalf("output = %q, want %q", out.String(), tt.want)
			}
		})
	}
}

func TestExec_Errors(t *testing.T) {
	tests := []struct {
		cmd  string
		want error
	}{
		{"dance", ErrUnknownCommand},
		{"goto", ErrBadArgument},
		{"goto x", ErrBadArgument},
		{"jump 1 2", ErrBadArgument},
		{"peek", ErrBadArgument},
		{"next 2", ErrBadArgument},
		{"status now", ErrBadArgument},
		{"quit", ErrQuit},
		{"EXIT", ErrQuit},
	}

	for _, tt := range tests {
		t.Run(tt.cmd, func(t *testing.T) {
			s, _ := newSession(t, false, "A")
			if err := s.Exec(tt.cmd); !errors.Is(err, tt.want) {
				t.Fatalf("Exec(%q) = %v, want %v", tt.cmd, err, tt.want)
			}
		})
	}
}

func TestExec_EmptyCollection(t *testing.T) {
	s, out := newSession(t, true)
	if err := s.Exec("next"); err != nil {
		t.Fatalf("Exec unexpected error: %v", err)
	}
	if out.String() != "[1/1] (no pages)\n" {
		t.Fatalf("output = %q", out.String())
	}
}

func TestRun(t *testing.T) {
	s, out := newSession(t, false, "A", "B", "C")

	in := strings.NewReader("next\nbogus\nlast\nquit\nnext\n")
	if err := s.Run(context.Background(), in); err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "[2/3] B\n") || !strings.Contains(got, "[3/3] C\n") {
		t.Errorf("output missing moves: %q", got)
	}
	if !strings.Contains(got, "error: pageturn: unknown command") {
		t.Errorf("output missing error report: %q", got)
	}
	if s.Indicator() != "3/3" {
		t.Errorf("commands after quit should not run, indicator = %s", s.Indicator())
	}
}

func TestRun_Prompt(t *testing.T) {
	c, err := pagination.NewBuilder[pagefile.Page]().AddPage(pagefile.Page{Title: "A"}).Build()
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}
	var out bytes.Buffer
	s := New(c, &out, WithPrompt("> "))

	if err := s.Run(context.Background(), strings.NewReader("show\n")); err != nil {
		t.Fatalf("Run() unexpected error: %v", err)
	}
	if out.String() != "> [1/1] A\n> " {
		t.Fatalf("output = %q", out.String())
	}
}

func TestRun_ContextCanceled(t *testing.T) {
	s, _ := newSession(t, false, "A")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Run(ctx, strings.NewReader("next\n")); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() = %v, want context.Canceled", err)
	}
}

func TestReplace_CarriesIndex(t *testing.T) {
	tests := []struct {
		name     string
		infinite bool
		titles   []string
		want     string
	}{
		{"same size", false, []string{"x", "y", "z"}, "3/3"},
		{"shrunk clamps", false, []string{"x"}, "1/1"},
		{"shrunk wraps", true, []string{"x", "y"}, "1/2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newSession(t, false, "A", "B", "C")
			if err := s.Exec("last"); err != nil {
				t.Fatalf("Exec: %v", err)
			}

			b := pagination.NewBuilder[pagefile.Page]().SetOptions(pagination.Options{InfinitePages: tt.infinite})
			for _, title := range tt.titles {
				b.AddPage(pagefile.Page{Title: title})
			}
			if err := s.Reload(b); err != nil {
				t.Fatalf("Reload() unexpected error: %v", err)
			}
			if got := s.Indicator(); got != tt.want {
				t.Fatalf("Indicator() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestReload_KeepsCursorOnError(t *testing.T) {
	s, _ := newSession(t, false, "A", "B")
	if err := s.Exec("last"); err != nil {
		t.Fatalf("Exec: %v", err)
	}

	b := pagination.NewBuilder[pagefile.Page]().SetPagesValue("not pages")
	if err := s.Reload(b); !errors.Is(err, pagination.ErrInvalidArgument) {
		t.Fatalf("Reload() = %v, want ErrInvalidArgument", err)
	}
	if s.Indicator() != "2/2" {
		t.Fatalf("Indicator() = %s, want 2/2", s.Indicator())
	}
}

func TestRun_CancelWhileIdle(t *testing.T) {
	s, out := newSession(t, false, "A", "B")

	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Run(ctx, pr)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Run() = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run() still blocked after cancel with idle input")
	}

	// A line arriving after cancel must not be executed.
	go pw.Write([]byte("next\n"))
	time.Sleep(50 * time.Millisecond)
	if out.Len() != 0 {
		t.Fatalf("unexpected output after cancel: %q", out.String())
	}
	if s.Indicator() != "1/2" {
		t.Fatalf("Indicator() = %s, want 1/2", s.Indicator())
	}
}
