package dsl

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/vk/wetware/internal/config"
	"github.com/vk/wetware/internal/portref"
)

// Extension is the file extension of graph language files.
const Extension = ".bio"

// SyntaxError reports a malformed line.
type SyntaxError struct {
	Source config.Source
	Text   string
	Msg    string
}

// Error implements the error interface for SyntaxError.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s: %q", e.Source, e.Msg, e.Text)
}

// Parse parses graph language text.
func Parse(src string) (*config.Graph, error) {
	return ParseReader("", strings.NewReader(src))
}

// ParseReader parses graph language text from r. file is only used to
// label statement sources and errors.
func ParseReader(file string, r io.Reader) (*config.Graph, error) {
	g := &config.Graph{}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		line := stripComment(raw)
		if line == "" {
			continue
		}

		src := config.Source{File: file, Line: lineNo}
		stmt, err := parseLine(strings.Fields(line))
		if err != nil {
			return nil, &SyntaxError{Source: src, Text: strings.TrimSpace(raw), Msg: err.Error()}
		}
		stmt.Source = src
		g.Append(stmt)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read graph description: %w", err)
	}
	return g, nil
}

func stripComment(line string) string {
	if i := strings.Index(line, "//"); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

func parseLine(tokens []string) (config.Statement, error) {
	switch tokens[0] {
	case "COMPONENT":
		if len(tokens) != 4 || tokens[2] != "FROM" {
			return config.Statement{}, fmt.Errorf("expected COMPONENT <name> FROM <type>")
		}
		if err := portref.CheckName(tokens[1]); err != nil {
			return config.Statement{}, err
		}
		return config.Component(tokens[1], tokens[3]), nil

	case "CONNECT":
		if len(tokens) != 4 || tokens[2] != "TO" {
			return config.Statement{}, fmt.Errorf("expected CONNECT <comp>.<port> TO <comp>.<port>")
		}
		from, err := portref.Parse(tokens[1])
		if err != nil {
			return config.Statement{}, err
		}
		to, err := portref.Parse(tokens[3])
		if err != nil {
			return config.Statement{}, err
		}
		return config.Connect(from, to), nil

	case "SET":
		if len(tokens) != 4 || tokens[2] != "=" {
			return config.Statement{}, fmt.Errorf("expected SET <comp>.<port> = <number>")
		}
		target, err := portref.Parse(tokens[1])
		if err != nil {
			return config.Statement{}, err
		}
		v, err := strconv.ParseFloat(tokens[3], 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return config.Statement{}, fmt.Errorf("value %q is not a finite number", tokens[3])
		}
		return config.Set(target, v), nil

	default:
		return config.Statement{}, fmt.Errorf("unknown keyword %q", tokens[0])
	}
}
