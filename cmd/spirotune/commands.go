// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/katalvlaran/lvspiro/profile"
	"github.com/katalvlaran/lvspiro/store"
	"github.com/katalvlaran/lvspiro/tuner"
)

func runTrials(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var tf trialFlags
	tf.register(fs)
	jsonOut := fs.Bool("json", false, "emit reports as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := tf.resolve()
	if err != nil {
		return err
	}
	log := newLogger(stderr, tf.verbose)

	reports, err := tf.newTuner(log, s.table).RunAll(ctx, s.levels, tf.samples, s.constraint, s.evolution)
	if err != nil {
		return err
	}
	if tf.save {
		if err := saveReports(ctx, tf.storeFlags, reports, log); err != nil {
			return err
		}
	}

	if *jsonOut {
		return writeJSON(stdout, reports)
	}
	for _, rep := range reports {
		writeReport(stdout, rep)
	}
	writeCorrelationRanking(stdout, reports)

	return nil
}

func runAutoTune(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("autotune", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var tf trialFlags
	tf.register(fs)
	lim := tuner.DefaultLimits()
	fs.IntVar(&lim.Samples, "auto-samples", lim.Samples, "samples per auto-tune trial")
	fs.IntVar(&lim.Iterations, "iterations", lim.Iterations, "max auto-tune iterations")
	fs.IntVar(&lim.StepMCandidates, "step-m", lim.StepMCandidates, "step for constructed_m_candidates")
	fs.IntVar(&lim.StepTopN, "step-top", lim.StepTopN, "step for constructed_top_n")
	fs.IntVar(&lim.StepSamples, "step-samples", lim.StepSamples, "step for sample_count")
	fs.IntVar(&lim.StepRetry, "step-retry", lim.StepRetry, "step for lobes_retry_count")
	fs.IntVar(&lim.MaxMCandidates, "max-m", lim.MaxMCandidates, "cap for constructed_m_candidates")
	fs.IntVar(&lim.MaxTopN, "max-top", lim.MaxTopN, "cap for constructed_top_n")
	fs.IntVar(&lim.MaxSamples, "max-samples", lim.MaxSamples, "cap for sample_count")
	fs.IntVar(&lim.MaxRetry, "max-retry", lim.MaxRetry, "cap for lobes_retry_count")
	outPath := fs.String("out", "", "write the tuned table as JSON to this file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := tf.resolve()
	if err != nil {
		return err
	}
	log := newLogger(stderr, tf.verbose)

	tuned, results, err := tf.newTuner(log, s.table).AutoTune(ctx, s.levels, lim, s.constraint, s.evolution)
	if err != nil {
		return err
	}
	for _, res := range results {
		log.Info("tuned",
			slog.String("level", res.Level.String()),
			slog.Bool("improved", res.Improved()),
			slog.Float64("lobes_outside_pct", res.Final.LobesOutside),
			slog.Float64("ratio_outside_pct", res.Final.RatioOutside),
		)
	}

	reports, err := tf.newTuner(log, tuned).RunAll(ctx, s.levels, tf.samples, s.constraint, s.evolution)
	if err != nil {
		return err
	}
	if tf.save {
		if err := saveReports(ctx, tf.storeFlags, reports, log); err != nil {
			return err
		}
	}
	for _, rep := range reports {
		writeReport(stdout, rep)
	}

	picked := profile.Table{}
	for _, level := range s.levels {
		picked[level] = tuned[level]
	}
	data, err := profile.MarshalTable(picked)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "tuned profiles:\n%s\n", data)

	if *outPath != "" {
		full, err := profile.MarshalTable(tuned)
		if err != nil {
			return err
		}
		if err := os.WriteFile(*outPath, append(full, '\n'), 0o644); err != nil {
			return err
		}
		log.Info("wrote tuned table", slog.String("path", *outPath))
	}

	return nil
}

func runReports(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("reports", flag.ContinueOnError)
	var sf storeFlags
	sf.register(fs)
	jsonOut := fs.Bool("json", false, "emit the listing as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	st, err := openStore(ctx, sf)
	if err != nil {
		return err
	}
	defer func() {
		_ = store.CloseIfSupported(st)
	}()

	entries, err := st.ListReports(ctx)
	if err != nil {
		return err
	}
	if *jsonOut {
		return writeJSON(stdout, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(stdout, "no reports found")
		return nil
	}
	writeEntries(stdout, entries, sf)

	return nil
}

func runShow(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	var sf storeFlags
	sf.register(fs)
	id := fs.String("id", "", "report id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" && fs.NArg() > 0 {
		*id = fs.Arg(0)
	}
	if *id == "" {
		return errors.New("show: -id is required")
	}

	st, err := openStore(ctx, sf)
	if err != nil {
		return err
	}
	defer func() {
		_ = store.CloseIfSupported(st)
	}()

	rep, ok, err := st.GetReport(ctx, *id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("show: report %s not found", *id)
	}

	return writeJSON(stdout, rep)
}

func runProfiles(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("profiles", flag.ContinueOnError)
	path := fs.String("profiles", "", "JSON file with profile overrides")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tbl := profile.Defaults()
	if *path != "" {
		var err error
		if tbl, err = profile.LoadTable(*path); err != nil {
			return err
		}
	}
	data, err := profile.MarshalTable(tbl)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "%s\n", data)

	return err
}

func openStore(ctx context.Context, sf storeFlags) (store.Store, error) {
	st, err := store.NewStore(sf.kind, sf.dbPath)
	if err != nil {
		return nil, err
	}
	if err := st.Init(ctx); err != nil {
		_ = store.CloseIfSupported(st)
		return nil, err
	}

	return st, nil
}

func saveReports(ctx context.Context, sf storeFlags, reports []tuner.Report, log *slog.Logger) error {
	st, err := openStore(ctx, sf)
	if err != nil {
		return err
	}
	defer func() {
		_ = store.CloseIfSupported(st)
	}()

	for _, rep := range reports {
		if err := st.SaveReport(ctx, rep); err != nil {
			return err
		}
		log.Info("saved report", slog.String("id", rep.ID), slog.String("level", rep.Level.String()), slog.String("store", sf.kind))
	}

	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
