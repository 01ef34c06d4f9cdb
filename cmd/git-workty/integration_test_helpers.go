//go:build integration

package main

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/spf13/cobra"

	"github.com/W1Real/workty/internal/config"
	"github.com/W1Real/workty/internal/log"
	"github.com/W1Real/workty/internal/output"
)

// testContext returns a context for running a command in dir with default
// config, silent logging and stdout captured in the returned buffer.
func testContext(t *testing.T, dir string) (context.Context, *bytes.Buffer) {
	t.Helper()
	return testContextWithConfig(t, dir, config.Default())
}

func testContextWithConfig(t *testing.T, dir string, cfg config.Config) (context.Context, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	ctx := context.Background()
	ctx = log.WithLogger(ctx, log.New(io.Discard, false, false))
	ctx = output.WithPrinter(ctx, &out)
	ctx = config.WithConfig(ctx, &cfg)
	ctx = withWorkDir(ctx, dir)
	return ctx, &out
}

// execute runs cmd with args in ctx.
func execute(ctx context.Context, cmd *cobra.Command, args ...string) error {
	cmd.SetContext(ctx)
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	return cmd.Execute()
}
