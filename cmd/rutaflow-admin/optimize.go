package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/rutaflow/rutaflow/internal/data"
	"github.com/rutaflow/rutaflow/internal/orchestrator"
	"github.com/rutaflow/rutaflow/internal/util"
)

func runPending(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("pending", flag.ContinueOnError)
	limit := fs.Int("limit", 20, "maximum number of pending routes to list")
	if err := fs.Parse(args); err != nil {
		return err
	}

	db, err := connectDB(ctx)
	if err != nil {
		return err
	}
	defer closeDB(ctx, db)

	routeRepo := data.NewRouteRepo(db, ctx.Logger)
	infos, err := routeRepo.ListPending(ctx.Ctx, *limit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writef(w, "ID\tSTATUS\tRESULT\tCREATED\tAGE\n"); err != nil {
		return err
	}
	for _, info := range infos {
		result := "-"
		if info.ResultStatus != nil {
			result = string(*info.ResultStatus)
		}
		if err := writef(w, "%s\t%s\t%s\t%s\t%s\n",
			info.ID, info.Status, result,
			info.CreatedAt.Format("2006-01-02 15:04:05"),
			util.FormatDuration(time.Since(info.CreatedAt))); err != nil {
			return err
		}
	}
	return w.Flush()
}

func runOptimize(ctx *commandContext, args []string) error {
	fs := flag.NewFlagSet("optimize", flag.ContinueOnError)
	payloadPath := fs.String("payload", "", "path to an optimization payload JSON file (required)")
	baseURL := fs.String("base-url", ctx.Config.HTTP.BaseURL, "API base URL to dispatch against")
	timeout := fs.Duration("timeout", 10*time.Minute, "give up waiting for a result after this long")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *payloadPath == "" {
		return errors.New("-payload is required")
	}

	payload, err := os.ReadFile(*payloadPath)
	if err != nil {
		return fmt.Errorf("read payload: %w", err)
	}
	if !json.Valid(payload) {
		return errors.New("payload file is not valid JSON")
	}

	o := orchestrator.New(orchestrator.Options{
		Client: orchestrator.NewAPIClient(orchestrator.APIClientOptions{
			BaseURL:        *baseURL,
			RequestTimeout: ctx.Config.Poll.RequestTimeout,
		}),
		Config: orchestrator.Config{
			Interval: ctx.Config.Poll.Interval,
			Logger:   ctx.Logger,
		},
	})
	defer o.Close()

	waitCtx, cancel := context.WithTimeout(ctx.Ctx, *timeout)
	defer cancel()

	if err := o.Submit(waitCtx, payload); err != nil {
		return err
	}

	settled, err := o.Wait(waitCtx)
	if err != nil {
		return err
	}

	switch settled.Outcome {
	case orchestrator.OutcomeSuccess:
		return writef(os.Stdout, "%s\n", settled.Result)
	case orchestrator.OutcomeNoSolution:
		return writef(os.Stdout, "no feasible route assignment for pending route %s\n", settled.PendingRouteID)
	default:
		return fmt.Errorf("optimization failed: %w", settled.Err)
	}
}
