// Command statuswatch follows an organization's public status page in the
// terminal.
//
// While running, type a number of days (e.g. 7) and enter to change the
// window, or "r" to refetch.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"statuspage/pkg/logger"
	"statuspage/pkg/statusclient"

	"golang.org/x/sync/errgroup"
)

func main() {
	var (
		api      = flag.String("api", "http://localhost:8080/api/v1", "API root URL")
		org      = flag.String("org", "", "organization id or exact name")
		days     = flag.Int("days", 30, "timeline window in days (1-365)")
		interval = flag.Duration("interval", 30*time.Second, "poll interval")
		once     = flag.Bool("once", false, "print once and exit")
		debug    = flag.Bool("debug", false, "log every API call to stderr")
	)
	flag.Parse()

	if *org == "" {
		fmt.Fprintln(os.Stderr, "Usage: statuswatch -org ORG [-api URL] [-days N] [-interval D] [-once]")
		os.Exit(2)
	}
	if *days < 1 || *days > 365 {
		fmt.Fprintln(os.Stderr, "Error: -days must be between 1 and 365")
		os.Exit(2)
	}

	env := "production"
	if *debug {
		env = "development"
	}
	log := logger.New(env, "statuswatch", os.Stderr)

	client := statusclient.New(*api, statusclient.WithLogger(log))
	fetch := func(ctx context.Context, days int) (view, error) {
		var v view
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			v.Snapshot, err = client.Status(gctx, *org)
			return err
		})
		g.Go(func() error {
			var err error
			v.Timeline, err = client.Timeline(gctx, *org, days)
			return err
		})
		return v, g.Wait()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *once {
		v, err := fetch(ctx, *days)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		render(os.Stdout, v, time.Now())
		return
	}

	w := statusclient.NewWatcher(fetch, *days, *interval, log)
	go w.Run(ctx)
	go readCommands(w)

	for res := range w.Results() {
		fmt.Print("\033[H\033[2J")
		if res.Err != nil {
			fmt.Printf("Error: %v\n(type r and enter to retry)\n", res.Err)
			continue
		}
		render(os.Stdout, res.Value, res.FetchedAt)
	}
}

func readCommands(w *statusclient.Watcher[int, view]) {
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "r" {
			w.Refresh()
			continue
		}
		if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= 365 {
			w.SetParams(n)
		}
	}
}
