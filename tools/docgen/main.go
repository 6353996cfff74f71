// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// docgen renders docs/commands/*.md into man pages under
// docs/man/share/man1 and tldr pages under docs/tldr.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	md2man "github.com/cpuguy83/go-md2man/v2/md2man"
)

const binary = "seqctl"

func main() {
	var (
		repoRoot           string
		writeOnlyIfChanged bool
	)

	flag.StringVar(&repoRoot, "root", ".", "repo root (default current dir)")
	flag.BoolVar(&writeOnlyIfChanged, "only-if-changed", true, "only write files if content changed")
	flag.Parse()

	n, err := generate(repoRoot, writeOnlyIfChanged)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("rendered %d command docs\n", n)
}

// generate renders every command doc under root and returns how many it
// processed.
func generate(root string, onlyIfChanged bool) (int, error) {
	commandsDir := filepath.Join(root, "docs", "commands")
	manOutDir := filepath.Join(root, "docs", "man", "share", "man1")
	tldrOutDir := filepath.Join(root, "docs", "tldr")

	for _, dir := range []string{manOutDir, tldrOutDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	entries, err := os.ReadDir(commandsDir)
	if err != nil {
		return 0, fmt.Errorf("reading commands dir %s: %w", commandsDir, err)
	}

	var processed int
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		cmd := strings.TrimSuffix(e.Name(), ".md")
		raw, err := os.ReadFile(filepath.Join(commandsDir, e.Name()))
		if err != nil {
			return processed, err
		}

		manPath := filepath.Join(manOutDir, fmt.Sprintf("%s-%s.1", binary, cmd))
		if err := writeFileIfChanged(manPath, md2man.Render(raw), onlyIfChanged); err != nil {
			return processed, fmt.Errorf("writing man page for %s: %w", cmd, err)
		}

		title, short := extractTitleAndShortDesc(string(raw))
		tldr := buildTLDR(cmd, title, short, extractQuickExamples(string(raw)))
		tldrPath := filepath.Join(tldrOutDir, fmt.Sprintf("%s-%s.md", binary, cmd))
		if err := writeFileIfChanged(tldrPath, []byte(tldr), onlyIfChanged); err != nil {
			return processed, fmt.Errorf("writing tldr page for %s: %w", cmd, err)
		}

		processed++
	}

	if processed == 0 {
		return 0, fmt.Errorf("no command markdown found under %s", commandsDir)
	}
	return processed, nil
}

func writeFileIfChanged(path string, content []byte, onlyIfChanged bool) error {
	if onlyIfChanged {
		old, err := os.ReadFile(path)
		switch {
		case err == nil && bytes.Equal(bytes.TrimSpace(old), bytes.TrimSpace(content)):
			return nil
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			return err
		}
	}
	return os.WriteFile(path, content, 0o644)
}

var (
	h1Re      = regexp.MustCompile(`(?m)^#\s+(.+)$`)
	sectionRe = regexp.MustCompile(`(?im)^##\s+(.+)$`)
)

// section returns the body of the "## name" section, up to the next "##".
func section(md, name string) string {
	locs := sectionRe.FindAllStringSubmatchIndex(md, -1)
	for i, loc := range locs {
		if !strings.EqualFold(strings.TrimSpace(md[loc[2]:loc[3]]), name) {
			continue
		}
		end := len(md)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		return md[loc[1]:end]
	}
	return ""
}

func extractTitleAndShortDesc(md string) (title, short string) {
	if m := h1Re.FindStringSubmatch(md); m != nil {
		title = strings.TrimSpace(m[1])
	}

	// First paragraph of the "Short description" section.
	var b strings.Builder
	for _, ln := range strings.Split(section(md, "Short description"), "\n") {
		if strings.TrimSpace(ln) == "" {
			if b.Len() > 0 {
				break
			}
			continue
		}
		b.WriteString(strings.TrimSpace(ln))
		b.WriteString(" ")
	}
	short = strings.TrimSpace(b.String())

	if short == "" && title != "" {
		short = title + "."
	}
	return
}

type example struct {
	Desc string
	Cmd  string
}

// extractQuickExamples reads the first fenced block of the "Quick examples"
// section. A "# comment" line describes the command line that follows it.
func extractQuickExamples(md string) []example {
	body := section(md, "Quick examples")
	parts := strings.SplitN(body, "```", 3)
	if len(parts) < 3 {
		return nil
	}

	var (
		exs  []example
		desc string
	)
	for _, ln := range strings.Split(parts[1], "\n") {
		s := strings.TrimSpace(strings.TrimRight(ln, "\r"))
		switch {
		case s == "":
		case strings.HasPrefix(s, "#"):
			desc = strings.TrimSpace(strings.TrimPrefix(s, "#"))
		case strings.HasPrefix(s, binary+" "):
			if desc == "" {
				desc = "Example"
			}
			exs = append(exs, example{Desc: desc, Cmd: strings.Join(strings.Fields(s), " ")})
			desc = ""
		}
	}
	return exs
}

func buildTLDR(cmd, title, short string, exs []example) string {
	var b strings.Builder
	b.WriteString("# " + binary + "-" + cmd + "\n\n")
	switch {
	case short != "":
		b.WriteString("> " + short + "\n")
	case title != "":
		b.WriteString("> " + title + "\n")
	default:
		b.WriteString("> " + binary + " " + cmd + "\n")
	}
	b.WriteString("> More information: https://github.com/staranto/seqctl.\n\n")

	if len(exs) == 0 {
		b.WriteString("- Show help for the command:\n\n")
		b.WriteString("`" + binary + " " + cmd + " --help`\n")
		return b.String()
	}

	for i, ex := range exs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- " + ex.Desc + ":\n\n")
		b.WriteString("`" + ex.Cmd + "`\n")
	}
	return b.String()
}
