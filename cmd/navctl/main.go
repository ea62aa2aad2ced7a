// navctl drives an abstract-mode router from a route table file and prints
// how each navigation settles. It is handy for checking redirects, aliases
// and named routes without a browser.
//
// Usage:
//
//	navctl --routes routes.toml push /users/3 back resolve /people/3
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"

	"github.com/vcrobe/nojs-router/config"
	"github.com/vcrobe/nojs-router/console"
	"github.com/vcrobe/nojs-router/history"
	"github.com/vcrobe/nojs-router/metrics"
	"github.com/vcrobe/nojs-router/route"
	"github.com/vcrobe/nojs-router/router"
)

var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	var (
		routesPath string
		logLevel   string
		stats      bool
		blockMeta  string
		timeout    time.Duration
	)

	flagSet := pflag.NewFlagSet("navctl", pflag.ContinueOnError)
	flagSet.SetOutput(stdout)
	flagSet.StringVar(&routesPath, "routes", "", "route table file (.toml, .yaml or .json)")
	flagSet.StringVar(&logLevel, "log-level", "warn", "minimum log level: debug, info, warn or error")
	flagSet.BoolVar(&stats, "stats", false, "print navigation counters after the last command")
	flagSet.StringVar(&blockMeta, "block-meta", "blocked", "abort navigations into routes whose meta sets this key")
	flagSet.DurationVar(&timeout, "timeout", 5*time.Second, "how long to wait for a navigation to settle")
	flagSet.Usage = func() { printHelp(stdout, flagSet) }

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	console.SetLevel(logLevel)

	if routesPath == "" {
		return fmt.Errorf("%w: --routes is required", errUsage)
	}
	file, err := config.Load(routesPath)
	if err != nil {
		return err
	}
	opts, err := file.Options(nil)
	if err != nil {
		return err
	}
	opts.Mode = history.ModeAbstract
	opts.Window = nil

	r := router.New(opts)
	reg := prometheus.NewRegistry()
	metrics.New(reg).Instrument(r)
	if blockMeta != "" {
		r.BeforeEach(blockGuard(blockMeta))
	}

	s := &session{router: r, out: stdout, timeout: timeout}
	if err := s.exec(flagSet.Args()); err != nil {
		return err
	}
	if stats {
		return printStats(stdout, reg)
	}
	return nil
}

// blockGuard aborts navigations into any route whose meta sets key to true.
func blockGuard(key string) route.Guard {
	return func(to, _ *route.Route, next route.Next) {
		for _, record := range to.Matched {
			if blocked, _ := record.Meta[key].(bool); blocked {
				next(route.Abort())
				return
			}
		}
		next(route.Continue())
	}
}

type session struct {
	router  *router.Router
	out     io.Writer
	timeout time.Duration
}

func (s *session) exec(args []string) error {
	for len(args) > 0 {
		cmd := args[0]
		args = args[1:]

		arg := func() (string, error) {
			if len(args) == 0 {
				return "", fmt.Errorf("%w: %s needs an argument", errUsage, cmd)
			}
			v := args[0]
			args = args[1:]
			return v, nil
		}

		switch cmd {
		case "push", "replace":
			loc, err := arg()
			if err != nil {
				return err
			}
			s.navigate(cmd, loc)
		case "go":
			raw, err := arg()
			if err != nil {
				return err
			}
			n, err := strconv.Atoi(raw)
			if err != nil {
				return fmt.Errorf("%w: go: %v", errUsage, err)
			}
			s.router.Go(n)
			s.printf("go %d -> %s\n", n, s.router.CurrentRoute().FullPath)
		case "back":
			s.router.Back()
			s.printf("back -> %s\n", s.router.CurrentRoute().FullPath)
		case "forward":
			s.router.Forward()
			s.printf("forward -> %s\n", s.router.CurrentRoute().FullPath)
		case "resolve":
			loc, err := arg()
			if err != nil {
				return err
			}
			res := s.router.Resolve(route.Path(loc))
			s.printf("resolve %s -> %s %s\n", loc, res.Href, describe(res.Route))
		case "current":
			s.printf("current -> %s %s\n", s.router.CurrentRoute().FullPath, describe(s.router.CurrentRoute()))
		case "routes":
			for _, record := range s.router.Routes() {
				name := record.Name
				if name == "" {
					name = "-"
				}
				s.printf("%s\t%s\n", record.Path, name)
			}
		default:
			return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
		}
	}
	return nil
}

func (s *session) navigate(cmd, loc string) {
	var nav *router.Navigation
	if cmd == "replace" {
		nav = s.router.Replace(route.Path(loc))
	} else {
		nav = s.router.Push(route.Path(loc))
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	got, err := nav.Wait(ctx)

	var failure *history.NavigationFailure
	switch {
	case err == nil:
		s.printf("%s %s -> %s\n", cmd, loc, got.FullPath)
	case errors.As(err, &failure):
		s.printf("%s %s -> %s: %s\n", cmd, loc, failure.Type, err)
	default:
		s.printf("%s %s -> error: %s\n", cmd, loc, err)
	}
}

func (s *session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func describe(r *route.Route) string {
	if len(r.Matched) == 0 {
		return "(no match)"
	}
	name := r.Name
	if name == "" {
		name = "-"
	}
	components := make([]string, 0, len(r.Matched))
	for _, c := range r.MatchedComponents() {
		components = append(components, fmt.Sprint(c))
	}
	return fmt.Sprintf("(name=%s components=%s)", name, strings.Join(components, ","))
}

func printStats(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, family := range families {
		if family.GetName() != "nojs_router_navigations_total" {
			continue
		}
		for _, m := range family.GetMetric() {
			outcome := ""
			for _, label := range m.GetLabel() {
				if label.GetName() == "outcome" {
					outcome = label.GetValue()
				}
			}
			fmt.Fprintf(w, "%s\t%.0f\n", outcome, m.GetCounter().GetValue())
		}
	}
	return nil
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `navctl runs navigations against a route table and prints how each settles.

Usage:
  navctl --routes FILE [flags] COMMAND...

Commands:
  push LOCATION       navigate to LOCATION
  replace LOCATION    navigate to LOCATION without a new history entry
  go N                move N entries through history
  back, forward       shorthand for go -1 and go 1
  resolve LOCATION    print the href and route LOCATION resolves to
  current             print the current route
  routes              list the route table in match order

Flags:
`)
	flagSet.PrintDefaults()
}
