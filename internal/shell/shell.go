// Package shell is the interactive front end of travelctl. Each command maps
// onto one controller operation and the current view is printed afterwards.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/Lynguyen817/Travel-Itinerary-Manager/internal/core/domain"
	"github.com/Lynguyen817/Travel-Itinerary-Manager/internal/core/ports"
)

// LineReader is satisfied by *readline.Instance.
type LineReader interface {
	Readline() (string, error)
	Close() error
}

// Options tunes shell output.
type Options struct {
	// ShowErrors prints remote failures. They are always in the diagnostic log.
	ShowErrors bool
}

type Shell struct {
	ctrl ports.Controller
	in   LineReader
	out  io.Writer
	opts Options
}

func New(ctrl ports.Controller, in LineReader, out io.Writer, opts Options) *Shell {
	return &Shell{ctrl: ctrl, in: in, out: out, opts: opts}
}

var (
	errUsage   = errors.New("usage")
	errBadArgs = errors.New("bad arguments")
)

// Run reads commands until exit, EOF or ctx cancellation.
func (s *Shell) Run(ctx context.Context) error {
	Render(s.out, s.ctrl.View())
	for {
		if ctx.Err() != nil {
			return nil
		}
		line, err := s.in.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			fmt.Fprintln(s.out, "Use 'exit' to quit.")
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return err
		}

		quit, err := s.Execute(ctx, line)
		if err != nil {
			s.report(err)
		}
		if quit {
			return nil
		}
	}
}

// Execute runs one command line. It reports quit=true for exit.
func (s *Shell) Execute(ctx context.Context, line string) (quit bool, err error) {
	args := splitArgs(strings.TrimSpace(line))
	if len(args) == 0 {
		return false, nil
	}
	name, rest := strings.ToLower(args[0]), args[1:]

	switch name {
	case "exit", "quit":
		return true, nil
	case "help":
		s.printHelp(rest)
		return false, nil
	case "show":
		Render(s.out, s.ctrl.View())
		return false, nil
	}

	cmd, ok := commands[name]
	if !ok {
		return false, fmt.Errorf("%w: unknown command %q, try 'help'", errUsage, name)
	}
	if v := s.ctrl.View(); !v.CanShow(cmd.view) {
		if v.State == domain.StateLoggedIn {
			return false, fmt.Errorf("%w: already logged in as %s", errUsage, v.User.Username)
		}
		return false, fmt.Errorf("%w: %w", errUsage, domain.ErrNotAuthenticated)
	}

	err = cmd.run(ctx, s, rest)
	if errors.Is(err, errBadArgs) {
		return false, fmt.Errorf("%w: usage: %s", errUsage, cmd.usage)
	}
	if !errors.Is(err, errUsage) {
		Render(s.out, s.ctrl.View())
	}
	return false, err
}

func (s *Shell) report(err error) {
	if errors.Is(err, errUsage) {
		fmt.Fprintln(s.out, strings.TrimPrefix(err.Error(), errUsage.Error()+": "))
		return
	}
	if s.opts.ShowErrors {
		fmt.Fprintln(s.out, errorStyle.Render("error: "+err.Error()))
	}
}

type command struct {
	view  domain.ViewName
	usage string
	run   func(ctx context.Context, s *Shell, args []string) error
}

var commands = map[string]command{
	"login": {
		view:  domain.ViewLoginForm,
		usage: "login <username|email> <password>",
		run: func(ctx context.Context, s *Shell, args []string) error {
			if len(args) != 2 {
				return errBadArgs
			}
			creds := domain.Credentials{Password: args[1]}
			if strings.Contains(args[0], "@") {
				creds.Email = args[0]
			} else {
				creds.Username = args[0]
			}
			return s.ctrl.Login(ctx, creds)
		},
	},
	"register": {
		view:  domain.ViewRegistrationForm,
		usage: "register <username> <email> <password>",
		run: func(ctx context.Context, s *Shell, args []string) error {
			if len(args) != 3 {
				return errBadArgs
			}
			return s.ctrl.Register(ctx, domain.Registration{Username: args[0], Email: args[1], Password: args[2]})
		},
	},
	"logout": {
		view:  domain.ViewLogoutControl,
		usage: "logout",
		run: func(ctx context.Context, s *Shell, _ []string) error {
			return s.ctrl.Logout(ctx)
		},
	},
	"list": {
		view:  domain.ViewDestinationList,
		usage: "list",
		run: func(ctx context.Context, s *Shell, _ []string) error {
			return s.ctrl.FetchDestinations(ctx)
		},
	},
	"add": {
		view:  domain.ViewAddDestinationForm,
		usage: `add <name> [poster_url] [activities] [accommodations] [transportation]`,
		run: func(ctx context.Context, s *Shell, args []string) error {
			if len(args) < 1 || len(args) > 5 {
				return errBadArgs
			}
			fields := make([]string, 5)
			copy(fields, args)
			return s.ctrl.AddDestination(ctx, domain.NewDestination{
				Name:           fields[0],
				PosterURL:      fields[1],
				Activities:     fields[2],
				Accommodations: fields[3],
				Transportation: fields[4],
			})
		},
	},
	"delete": {
		view:  domain.ViewDestinationList,
		usage: "delete <id>",
		run: func(ctx context.Context, s *Shell, args []string) error {
			if len(args) != 1 {
				return errBadArgs
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return s.ctrl.DeleteDestination(ctx, id)
		},
	},
	"update": {
		view:  domain.ViewDestinationList,
		usage: "update <id> field=value... (poster_url, activities, accommodations, transportation)",
		run: func(ctx context.Context, s *Shell, args []string) error {
			if len(args) < 2 {
				return errBadArgs
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			upd, err := parseUpdate(args[1:])
			if err != nil {
				return err
			}
			return s.ctrl.UpdateDestination(ctx, id, upd)
		},
	},
	"select": {
		view:  domain.ViewDestinationList,
		usage: "select <id>",
		run: func(_ context.Context, s *Shell, args []string) error {
			if len(args) != 1 {
				return errBadArgs
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			d, ok := domain.FindDestination(s.ctrl.View().Destinations, id)
			if !ok {
				return fmt.Errorf("%w: %w", errUsage, domain.ErrDestinationNotFound)
			}
			s.ctrl.SelectDestination(d)
			return nil
		},
	},
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid destination id %q", errUsage, s)
	}
	return id, nil
}

func parseUpdate(pairs []string) (domain.DestinationUpdate, error) {
	var u domain.DestinationUpdate
	for _, p := range pairs {
		key, val, ok := strings.Cut(p, "=")
		if !ok {
			return u, fmt.Errorf("%w: expected field=value, got %q", errUsage, p)
		}
		switch strings.ToLower(key) {
		case "poster", "poster_url":
			u.PosterURL = val
		case "activities":
			u.Activities = val
		case "accommodations":
			u.Accommodations = val
		case "transportation":
			u.Transportation = val
		default:
			return u, fmt.Errorf("%w: unknown field %q", errUsage, key)
		}
	}
	if u.IsEmpty() {
		return u, fmt.Errorf("%w: nothing to update", errUsage)
	}
	return u, nil
}

// splitArgs splits on spaces, keeping double-quoted runs together.
func splitArgs(input string) []string {
	var args []string
	var cur strings.Builder
	inQuotes, quoted := false, false

	flush := func() {
		if cur.Len() > 0 || quoted {
			args = append(args, cur.String())
			cur.Reset()
		}
		quoted = false
	}

	for _, r := range input {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			quoted = true
		case (r == ' ' || r == '\t') && !inQuotes:
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return args
}

func (s *Shell) printHelp(args []string) {
	if len(args) > 0 {
		if cmd, ok := commands[strings.ToLower(args[0])]; ok {
			fmt.Fprintln(s.out, cmd.usage)
			return
		}
		fmt.Fprintf(s.out, "Unknown command: %s\n", args[0])
		return
	}
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintln(s.out, headingStyle.Render("Commands"))
	for _, name := range names {
		fmt.Fprintf(s.out, "  %s\n", commands[name].usage)
	}
	fmt.Fprintln(s.out, "  show")
	fmt.Fprintln(s.out, "  help [command]")
	fmt.Fprintln(s.out, "  exit")
}
