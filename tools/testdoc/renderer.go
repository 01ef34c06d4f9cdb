package main

import (
	"fmt"
	"io"
	"maps"
	"regexp"
	"slices"
	"strings"
	"time"
)

// RenderMarkdown writes the test documentation as markdown.
func RenderMarkdown(w io.Writer, packages []TestPackage) error {
	fmt.Fprintf(w, "# git-workty Test Documentation\n\n")
	fmt.Fprintf(w, "Generated: %s\n\n", time.Now().Format("2006-01-02"))

	commandMap := make(map[string][]TestFunc)

	for _, pkg := range packages {
		for _, file := range pkg.Files {
			for _, test := range file.Tests {
				cmd := extractCommand(test.Name)
				commandMap[cmd] = append(commandMap[cmd], test)
			}
		}
	}

	commands := slices.Sorted(maps.Keys(commandMap))

	fmt.Fprintf(w, "## Summary\n\n")
	fmt.Fprintf(w, "| Command | Tests |\n")
	fmt.Fprintf(w, "|---------|-------|\n")

	totalTests := 0
	for _, cmd := range commands {
		tests := commandMap[cmd]
		fmt.Fprintf(w, "| [%s](#%s) | %d |\n", cmd, toAnchor(cmd), len(tests))
		totalTests += len(tests)
	}
	fmt.Fprintf(w, "| **Total** | **%d** |\n\n", totalTests)

	for _, cmd := range commands {
		tests := commandMap[cmd]
		renderCommandSection(w, cmd, tests)
	}

	return nil
}

func renderCommandSection(w io.Writer, cmd string, tests []TestFunc) {
	fmt.Fprintf(w, "## %s\n\n", cmd)
	fmt.Fprintf(w, "| Test | Description | Scenario | Expected |\n")
	fmt.Fprintf(w, "|------|-------------|----------|----------|\n")

	for _, test := range tests {
		fmt.Fprintf(w, "| `%s` | %s | %s | %s |\n",
			test.Name,
			cell(extractDescription(test.Doc, test.Name)),
			cell(test.Scenario),
			cell(test.Expected),
		)
	}
	fmt.Fprintf(w, "\n")
}

// cell escapes pipes for a markdown table cell; empty cells get a dash.
func cell(s string) string {
	if s == "" {
		return "-"
	}
	return strings.ReplaceAll(s, "|", "\\|")
}

// commandPrefixes maps test name prefixes to the command they cover.
var commandPrefixes = map[string]string{
	"List":   "git workty list",
	"Go":     "git workty go",
	"Pick":   "git workty pick",
	"New":    "git workty new",
	"Rm":     "git workty rm",
	"Fetch":  "git workty fetch",
	"Clean":  "git workty clean",
	"Sync":   "git workty sync",
	"Doctor": "git workty doctor",
}

// extractCommand extracts the command name from a test function name.
// Examples:
//   - TestClean_Merged -> git workty clean
//   - TestSync_Fetch -> git workty sync
//   - TestSelectCandidates_Stale -> selectcandidates
func extractCommand(testName string) string {
	name := strings.TrimPrefix(testName, "Test")
	prefix, _, _ := strings.Cut(name, "_")
	if prefix == "" {
		return "other"
	}
	if mapped, ok := commandPrefixes[prefix]; ok {
		return mapped
	}
	return strings.ToLower(prefix)
}

// extractDescription gets the first line of the doc comment as description.
// It strips the test function name from the beginning if present.
func extractDescription(doc string, testName string) string {
	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		// "TestRm_Force tests removing..." -> "Tests removing..."
		line = strings.TrimPrefix(line, testName+" ")
		return strings.ToUpper(line[:1]) + line[1:]
	}
	return "_No documentation_"
}

var anchorRe = regexp.MustCompile(`[^a-zA-Z0-9-]`)

// toAnchor converts a command name to a markdown anchor.
func toAnchor(cmd string) string {
	anchor := strings.ReplaceAll(cmd, " ", "-")
	return strings.ToLower(anchorRe.ReplaceAllString(anchor, ""))
}
