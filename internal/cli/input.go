package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/quotient/pkg/automata"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// ErrNoInput is returned when no file is given and stdin is an interactive terminal.
var ErrNoInput = errors.New("no input: pass a file or pipe an automaton on stdin")

// Format identifies the encoding of an automaton document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Input is a raw automaton document and its encoding.
type Input struct {
	Name   string
	Data   []byte
	Format Format
}

// ReadInput reads the automaton named by path, or stdin when path is empty or "-".
// Files are decoded by extension; stdin is sniffed.
func ReadInput(path string, stdin *os.File) (Input, error) {
	if path == "" || path == "-" {
		if term.IsTerminal(int(stdin.Fd())) {
			return Input{}, ErrNoInput
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return Input{}, fmt.Errorf("failed to read stdin: %w", err)
		}
		return Input{Name: "stdin", Data: data, Format: sniff(data)}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Input{}, fmt.Errorf("failed to read input: %w", err)
	}
	format := sniff(data)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		format = FormatJSON
	case ".yaml", ".yml":
		format = FormatYAML
	}
	return Input{Name: path, Data: data, Format: format}, nil
}

// sniff treats anything starting with a brace as JSON.
func sniff(data []byte) Format {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		return FormatJSON
	}
	return FormatYAML
}

// DecodeNfa decodes the input as a raw NFA.
func (in Input) DecodeNfa() (automata.RawNfa, error) {
	var raw automata.RawNfa
	err := in.decode(&raw)
	return raw, err
}

// DecodeDfa decodes the input as a raw DFA.
func (in Input) DecodeDfa() (automata.RawDfa, error) {
	var raw automata.RawDfa
	err := in.decode(&raw)
	return raw, err
}

func (in Input) decode(dst any) error {
	var err error
	switch in.Format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(in.Data))
		dec.DisallowUnknownFields()
		err = dec.Decode(dst)
	default:
		dec := yaml.NewDecoder(bytes.NewReader(in.Data))
		dec.KnownFields(true)
		err = dec.Decode(dst)
	}
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%s: empty document", in.Name)
	}
	if err != nil {
		return fmt.Errorf("%s: invalid %s: %w", in.Name, in.Format, err)
	}
	return nil
}
