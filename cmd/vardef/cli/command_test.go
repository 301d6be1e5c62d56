// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func run(called *string, name string) func(context.Context, []string, *slog.Logger) error {
	return func(context.Context, []string, *slog.Logger) error {
		*called = name
		return nil
	}
}

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "vardef",
		Subcommands: []*Command{
			{Name: "merge", Run: run(&called, "merge")},
			{Name: "resolve", Run: run(&called, "resolve")},
		},
	}

	if err := root.Execute(context.Background(), []string{"resolve"}, nil); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "resolve" {
		t.Errorf("dispatched to %q, want %q", called, "resolve")
	}
}

func TestCommand_Execute_PassesRemainingArgs(t *testing.T) {
	var receivedArgs []string
	var receivedLogger *slog.Logger
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	root := &Command{
		Name: "vardef",
		Subcommands: []*Command{
			{
				Name: "check",
				Run: func(_ context.Context, args []string, logger *slog.Logger) error {
					receivedArgs = args
					receivedLogger = logger
					return nil
				},
			},
		},
	}

	if err := root.Execute(context.Background(), []string{"check", "base.toml", "site.yaml"}, logger); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if len(receivedArgs) != 2 || receivedArgs[0] != "base.toml" || receivedArgs[1] != "site.yaml" {
		t.Errorf("args = %v, want [base.toml site.yaml]", receivedArgs)
	}
	if receivedLogger != logger {
		t.Error("Run did not receive the logger passed to Execute")
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var to string
	var target string

	command := &Command{
		Name: "convert",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("convert", pflag.ContinueOnError)
			flagSet.StringVar(&to, "to", "json", "output format")
			return flagSet
		},
		Run: func(_ context.Context, args []string, _ *slog.Logger) error {
			if len(args) > 0 {
				target = args[0]
			}
			return nil
		},
	}

	if err := command.Execute(context.Background(), []string{"--to", "yaml", "base.toml"}, nil); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if to != "yaml" {
		t.Errorf("to = %q, want %q", to, "yaml")
	}
	if target != "base.toml" {
		t.Errorf("target = %q, want %q", target, "base.toml")
	}
}

func TestCommand_Execute_UnknownFlagSuggestion(t *testing.T) {
	command := &Command{
		Name: "merge",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("merge", pflag.ContinueOnError)
			flagSet.Bool("strict", false, "refuse locked overrides")
			flagSet.String("to", "json", "output format")
			return flagSet
		},
		Run: func(context.Context, []string, *slog.Logger) error { return nil },
	}

	err := command.Execute(context.Background(), []string{"--strcit"}, nil)
	if err == nil {
		t.Fatal("expected error for unknown flag")
	}
	if !strings.Contains(err.Error(), "did you mean --strict?") {
		t.Errorf("error = %q, want suggestion for --strict", err)
	}
	var toolErr *ToolError
	if !errors.As(err, &toolErr) || toolErr.Category != CategoryValidation {
		t.Errorf("error = %#v, want validation ToolError", err)
	}
}

func TestCommand_Execute_UnknownCommandSuggestion(t *testing.T) {
	root := &Command{
		Name: "vardef",
		Subcommands: []*Command{
			{Name: "resolve", Run: func(context.Context, []string, *slog.Logger) error { return nil }},
			{Name: "convert", Run: func(context.Context, []string, *slog.Logger) error { return nil }},
		},
	}

	err := root.Execute(context.Background(), []string{"reslove"}, nil)
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
	if !strings.Contains(err.Error(), `did you mean "resolve"`) {
		t.Errorf("error = %q, want suggestion for resolve", err)
	}
}

func TestCommand_Execute_UnknownCommandNoSuggestion(t *testing.T) {
	root := &Command{
		Name: "vardef",
		Subcommands: []*Command{
			{Name: "merge", Run: func(context.Context, []string, *slog.Logger) error { return nil }},
		},
	}

	err := root.Execute(context.Background(), []string{"xyzzyplugh"}, nil)
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %q, want no suggestion", err)
	}
}

func TestCommand_Execute_HelpFlag(t *testing.T) {
	var help bytes.Buffer
	called := false
	command := &Command{
		Name:       "check",
		Summary:    "Validate variable files",
		HelpOutput: &help,
		Run: func(context.Context, []string, *slog.Logger) error {
			called = true
			return nil
		},
	}

	for _, flag := range []string{"-h", "--help", "help"} {
		help.Reset()
		if err := command.Execute(context.Background(), []string{flag}, nil); err != nil {
			t.Fatalf("Execute(%q) error: %v", flag, err)
		}
		if called {
			t.Fatalf("Execute(%q) ran the command", flag)
		}
		if !strings.Contains(help.String(), "Validate variable files") {
			t.Errorf("Execute(%q) help = %q, want summary", flag, help.String())
		}
	}
}

func TestCommand_Execute_SubcommandRequired(t *testing.T) {
	root := &Command{
		Name:       "vardef",
		HelpOutput: &bytes.Buffer{},
		Subcommands: []*Command{
			{Name: "merge", Run: func(context.Context, []string, *slog.Logger) error { return nil }},
		},
	}

	err := root.Execute(context.Background(), nil, nil)
	if err == nil || !strings.Contains(err.Error(), "subcommand required") {
		t.Errorf("Execute() error = %v, want subcommand required", err)
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	var to string
	root := &Command{Name: "vardef"}
	command := &Command{
		Name:        "convert",
		Description: "Re-encode a variable document in another format.",
		Usage:       "vardef convert [flags] [FILE]",
		Examples: []Example{
			{Description: "TOML to YAML", Command: "vardef convert --to yaml base.toml"},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("convert", pflag.ContinueOnError)
			flagSet.StringVar(&to, "to", "json", "output format")
			return flagSet
		},
		parent: root,
	}

	var buffer bytes.Buffer
	command.PrintHelp(&buffer)
	output := buffer.String()

	for _, want := range []string{
		"Re-encode a variable document",
		"Usage:\n  vardef convert [flags] [FILE]",
		"--to string",
		"# TOML to YAML",
		"vardef convert --to yaml base.toml",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q:\n%s", want, output)
		}
	}
}

func TestCommand_FullName(t *testing.T) {
	root := &Command{Name: "vardef"}
	child := &Command{Name: "merge", parent: root}
	if got := child.fullName(); got != "vardef merge" {
		t.Errorf("fullName() = %q, want %q", got, "vardef merge")
	}
}
