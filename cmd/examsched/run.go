package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rhyrak/examsched/internal/csvio"
	"github.com/rhyrak/examsched/internal/logging"
	"github.com/rhyrak/examsched/internal/scheduler"
	"github.com/rhyrak/examsched/pkg/model"
)

type runOptions struct {
	exams string
	rooms string
	out   string
	days  int
	print bool
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Schedule exams from CSV files and write the timetable",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchedule(cmd, root, opts)
		},
	}
	cmd.Flags().StringVar(&opts.exams, "exams", "", "exam sections CSV")
	cmd.Flags().StringVar(&opts.rooms, "rooms", "", "rooms CSV")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "schedule.csv", "output CSV")
	cmd.Flags().IntVar(&opts.days, "days", 0, "number of exam days (overrides config)")
	cmd.Flags().BoolVar(&opts.print, "print", false, "print the timetable grouped by department")
	_ = cmd.MarkFlagRequired("exams")
	_ = cmd.MarkFlagRequired("rooms")
	return cmd
}

func runSchedule(cmd *cobra.Command, root *rootOptions, opts *runOptions) error {
	cfg, logr, err := root.setup()
	if err != nil {
		return err
	}
	defer logr.Sync() //nolint:errcheck

	delim := cfg.CSV.Rune()
	exams, err := csvio.LoadExamsFile(opts.exams, delim)
	if err != nil {
		return err
	}
	rooms, err := csvio.LoadRoomsFile(opts.rooms, delim)
	if err != nil {
		return err
	}

	engineCfg := cfg.Scheduler.Engine()
	if opts.days != 0 {
		engineCfg.NumberOfDays = opts.days
	}
	engine, err := scheduler.New(engineCfg, logging.NewEventSink(logr))
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := engine.Run(cmd.Context(), exams, model.RoomIDs(rooms))
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if err := csvio.ExportSchedule(res.Scheduled, opts.out, delim); err != nil {
		return err
	}
	logr.Info("schedule exported", zap.String("path", opts.out), zap.Duration("elapsed", elapsed))

	out := cmd.OutOrStdout()
	if opts.print {
		csvio.PrintSchedule(out, res.Scheduled)
	}
	report := scheduler.Validate(res)
	if report.Valid {
		fmt.Fprintln(out, "Passed all tests")
	} else {
		fmt.Fprintln(out, "Invalid schedule:")
	}
	fmt.Fprint(out, report.Message)
	if len(res.Excluded) > 0 {
		fmt.Fprintf(out, "Excluded sections: %d\n", len(res.Excluded))
	}
	fmt.Fprintf(out, "Coverage: %.2f%% (%d/%d)\n", res.Coverage(), res.ScheduledSections(), res.Eligible)
	fmt.Fprintf(out, "Timer: %f ms\n", float64(elapsed.Microseconds())/1000.0)
	fmt.Fprintln(out, "Exported output to: "+opts.out)
	return nil
}
