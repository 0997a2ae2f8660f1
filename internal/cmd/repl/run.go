package replrun

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	cfgpkg "github.com/rzbill/reel/internal/config"
	"github.com/rzbill/reel/internal/journal"
	"github.com/rzbill/reel/internal/runtime"
	journalsvc "github.com/rzbill/reel/internal/services/journals"
	logpkg "github.com/rzbill/reel/pkg/log"
)

// Options configures a script run.
type Options struct {
	// Journal names the journal every command targets.
	Journal string
	// Filter is an optional CEL expression applied to replay and txns.
	Filter string
	// SimulateTime paces replay to the original append gaps.
	SimulateTime bool
	// Script is the command stream; Out receives results.
	Script io.Reader
	Out    io.Writer

	Config cfgpkg.Config
	Logger logpkg.Logger
}

// Run executes the script line by line and blocks until it is exhausted,
// a command fails, or ctx is cancelled. The first failing line aborts the
// run with its line number attached.
func Run(ctx context.Context, opts Options) error {
	if opts.Journal == "" {
		opts.Journal = opts.Config.DefaultJournalName
	}
	if opts.Journal == "" {
		opts.Journal = cfgpkg.Default().DefaultJournalName
	}
	rt, err := runtime.Open(runtime.Options{Config: opts.Config, Logger: opts.Logger})
	if err != nil {
		return err
	}
	defer rt.Close()
	svc := journalsvc.NewWithLogger(rt, opts.Logger)

	scanner := bufio.NewScanner(opts.Script)
	lineNo := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := runLine(ctx, rt, svc, opts, line); err != nil {
			return fmt.Errorf("line %d (%s): %w", lineNo, line, err)
		}
	}
	return scanner.Err()
}

func runLine(ctx context.Context, rt *runtime.Runtime, svc *journalsvc.Service, opts Options, line string) error {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "open":
		j, ok := rt.Journal(opts.Journal)
		if !ok {
			// First use; EnsureJournal opens it.
			_, err := rt.EnsureJournal(opts.Journal)
			return err
		}
		return j.Open()
	case "close":
		j, err := rt.EnsureJournal(opts.Journal)
		if err != nil {
			return err
		}
		return j.Close()
	case "clear":
		j, err := rt.EnsureJournal(opts.Journal)
		if err != nil {
			return err
		}
		return j.Clear()
	case "append":
		if len(args) == 0 {
			return fmt.Errorf("append needs a payload")
		}
		payload := strings.TrimSpace(strings.TrimPrefix(line, "append"))
		return svc.Append(ctx, opts.Journal, []byte(payload))
	case "commit":
		c, err := svc.Commit(ctx, opts.Journal)
		if err != nil {
			return err
		}
		fmt.Fprintf(opts.Out, "commit: txns %v\n", c.TransactionIDs)
		return nil
	case "counts":
		counts, err := svc.GetCounts(ctx, opts.Journal)
		if err != nil {
			return err
		}
		fmt.Fprintf(opts.Out, "commits=%d transactions=%d\n", counts.Commits, counts.Transactions)
		return nil
	case "txns":
		start, finish, err := parseRange(args)
		if err != nil {
			return err
		}
		msgs, err := svc.RangeTransactions(ctx, opts.Journal, start, finish, opts.Filter)
		if err != nil {
			return err
		}
		for _, m := range msgs {
			fmt.Fprintf(opts.Out, "txn %d: %s\n", m.Seq, m.Payload)
		}
		return nil
	case "commits":
		start, finish, err := parseRange(args)
		if err != nil {
			return err
		}
		infos, err := svc.RangeCommits(ctx, opts.Journal, start, finish)
		if err != nil {
			return err
		}
		for _, info := range infos {
			fmt.Fprintf(opts.Out, "commit %d (%d txns)\n", info.ID, len(info.Transactions))
			for _, txn := range info.Transactions {
				fmt.Fprintf(opts.Out, "  %s\n", txn.Data)
			}
		}
		return nil
	case "replay":
		ropts := journal.ReplayOptions{SimulateTime: opts.SimulateTime}
		return svc.Replay(ctx, opts.Journal, opts.Filter, ropts, func(m journalsvc.Message) {
			fmt.Fprintf(opts.Out, "replay %d: %s\n", m.Seq, m.Payload)
		})
	case "sleep":
		if len(args) != 1 {
			return fmt.Errorf("sleep needs a duration")
		}
		d, err := time.ParseDuration(args[0])
		if err != nil {
			return err
		}
		timer := time.NewTimer(d)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		return nil
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func parseRange(args []string) (start, finish uint64, err error) {
	if len(args) < 1 || len(args) > 2 {
		return 0, 0, fmt.Errorf("expected <start> [finish]")
	}
	start, err = strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad start: %w", err)
	}
	if len(args) == 2 {
		finish, err = strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("bad finish: %w", err)
		}
	}
	return start, finish, nil
}
