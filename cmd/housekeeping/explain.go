package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"

	"housekeeping/stack"
	"housekeeping/warnings"
)

var ErrUnknownSink = errors.New("unknown sink")

// namedCategory stands in for a category declared by some product.
type namedCategory struct {
	name   string
	family warnings.Family
}

func (c namedCategory) Family() warnings.Family { return c.family }
func (c namedCategory) String() string          { return c.name }

func newExplainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explain <filters.yaml|filters.toml>",
		Short: "Show the action a filter file assigns to a warning",
		Long: `Resolve the action for a warning against the rules of a filter file, ` +
			`falling back to the built-in defaults`,
		Args: cobra.ExactArgs(1),
		RunE: runExplain,
	}

	cmd.Flags().String("category", "", "warning category name, e.g. RemovedInMyProduct20Warning")
	cmd.Flags().Bool("pending", false, "the category is a pending deprecation")
	cmd.Flags().String("message", "", "warning message")
	cmd.Flags().String("module", "main", "package the warning is reported in")
	cmd.Flags().Int("line", 1, "line the warning is reported on")
	cmd.Flags().String("emit", "", "also dispatch the warning to a sink (text|log)")

	return cmd
}

func runExplain(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	name, err := flags.GetString("category")
	if err != nil {
		return fmt.Errorf("failed to get category flag: %w", err)
	}

	pending, err := flags.GetBool("pending")
	if err != nil {
		return fmt.Errorf("failed to get pending flag: %w", err)
	}

	message, err := flags.GetString("message")
	if err != nil {
		return fmt.Errorf("failed to get message flag: %w", err)
	}

	module, err := flags.GetString("module")
	if err != nil {
		return fmt.Errorf("failed to get module flag: %w", err)
	}

	line, err := flags.GetInt("line")
	if err != nil {
		return fmt.Errorf("failed to get line flag: %w", err)
	}

	emit, err := flags.GetString("emit")
	if err != nil {
		return fmt.Errorf("failed to get emit flag: %w", err)
	}

	filters, err := warnings.LoadFilters(args[0])
	if err != nil {
		return err
	}

	cat := namedCategory{name: name, family: warnings.FamilyDeprecation}
	if pending {
		cat.family = warnings.FamilyPendingDeprecation
	}

	if cat.name == "" {
		cat.name = cat.family.String() + "Warning"
	}

	record := warnings.Record{
		Category: cat,
		Message:  message,
		Frame: stack.Frame{
			Function: module + ".init",
			File:     strings.ReplaceAll(module, "/", "_") + ".go",
			Line:     line,
		},
	}

	out := cmd.OutOrStdout()
	all := append(filters, warnings.DefaultFilters()...)

	f, ok := warnings.Match(all, record)
	if !ok {
		fmt.Fprintf(out, "%s (no filter matches)\n", actionColor.Sprint(warnings.ActionDefault))
	} else {
		fmt.Fprintf(out, "%s (%s)\n", actionColor.Sprint(f.Action), f)
	}

	if emit == "" {
		return nil
	}

	var sink warnings.Sink

	switch emit {
	case "text":
		sink = warnings.NewTextSink(out, warnings.WithSourceLine(false))
	case "log":
		sink = warnings.NewLogSink(&log.Logger{
			Level:  log.InfoLevel,
			Writer: &log.IOWriter{Writer: out},
		})
	default:
		return fmt.Errorf("%w %q (want text|log)", ErrUnknownSink, emit)
	}

	d := warnings.NewDispatcher(sink)
	d.SetFilters(all)

	return dispatch(d, record)
}

// dispatch turns the panic of an error filter into the command's error.
func dispatch(d *warnings.Dispatcher, r warnings.Record) (err error) {
	defer func() {
		if p := recover(); p != nil {
			werr, ok := p.(*warnings.Error)
			if !ok {
				panic(p)
			}

			err = werr
		}
	}()

	d.Dispatch(r)

	return nil
}
