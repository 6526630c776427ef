// Package prompt provides interactive confirmation and input primitives for quartainer.
//
// The Prompter interface abstracts terminal interaction so the resolution and
// mapping logic stays pure and testable without simulating a TTY. Three
// implementations are provided:
//   - Stdio: interactive prompts over an io.Reader/io.Writer pair
//   - AutoAccept: accepts every default without asking (--no-prompt mode)
//   - Script: replays canned answers, for tests
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter is the capability interface consumed by the generate flow.
// Confirm asks a yes/no question; Input asks for free text. Both return
// the supplied default when the user just presses enter.
type Prompter interface {
	Confirm(message string, def bool) (bool, error)
	Input(message string, def string) (string, error)
}

// Stdio prompts interactively, reading answers line by line.
type Stdio struct {
	in  *bufio.Reader
	out io.Writer
}

// NewStdio creates a Stdio prompter reading from in and writing prompts to out.
func NewStdio(in io.Reader, out io.Writer) *Stdio {
	return &Stdio{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Confirm asks a yes/no question. The default is indicated in the prompt
// ([Y/n] or [y/N]) and returned on an empty answer. Answers starting with
// "y" or "n" (case-insensitive) are accepted; anything else falls back to
// the default.
func (s *Stdio) Confirm(message string, def bool) (bool, error) {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}
	fmt.Fprintf(s.out, "%s %s: ", message, hint)

	line, err := s.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return def, err
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	switch {
	case answer == "":
		return def, nil
	case strings.HasPrefix(answer, "y"):
		return true, nil
	case strings.HasPrefix(answer, "n"):
		return false, nil
	default:
		return def, nil
	}
}

// Input asks for a free-text value, returning the default on an empty answer.
func (s *Stdio) Input(message string, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(s.out, "%s [%s]: ", message, def)
	} else {
		fmt.Fprintf(s.out, "%s: ", message)
	}

	line, err := s.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return def, err
	}

	answer := strings.TrimSpace(line)
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// AutoAccept accepts every default without asking. Used by --no-prompt.
type AutoAccept struct{}

// Confirm returns the default unchanged.
func (AutoAccept) Confirm(_ string, def bool) (bool, error) {
	return def, nil
}

// Input returns the default unchanged.
func (AutoAccept) Input(_ string, def string) (string, error) {
	return def, nil
}

// Script replays canned answers in order. Confirm consumes from Confirms,
// Input from Inputs; running past the end returns the default, mirroring
// AutoAccept. Asked records every prompt message for assertions.
type Script struct {
	Confirms []bool
	Inputs   []string
	Asked    []string

	confirmIdx int
	inputIdx   int
}

// Confirm replays the next scripted yes/no answer.
func (s *Script) Confirm(message string, def bool) (bool, error) {
	s.Asked = append(s.Asked, message)
	if s.confirmIdx >= len(s.Confirms) {
		return def, nil
	}
	answer := s.Confirms[s.confirmIdx]
	s.confirmIdx++
	return answer, nil
}

// Input replays the next scripted text answer.
func (s *Script) Input(message string, def string) (string, error) {
	s.Asked = append(s.Asked, message)
	if s.inputIdx >= len(s.Inputs) {
		return def, nil
	}
	answer := s.Inputs[s.inputIdx]
	s.inputIdx++
	return answer, nil
}
