package rsp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Messages printed when an answer is rejected.
const (
	requiredMsg = "This field is required! enter again"
	boolMsg     = "Invalid input. Please enter 'true' or 'false'."
	sortMsg     = "Invalid input. Please enter 'ABC' or 'Type'."
)

// Prompter asks questions on out and reads line answers from in.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter returns a Prompter reading from in and writing to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// readLine returns the next answer without its line ending. A final line
// without a newline is still an answer.
func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrNoInput
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// String asks once and returns the answer as typed.
func (p *Prompter) String(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	return p.readLine()
}

// Required asks until a non-empty answer is given.
func (p *Prompter) Required(prompt string) (string, error) {
	answer, err := p.String(prompt)
	for err == nil && answer == "" {
		fmt.Fprintln(p.out, requiredMsg)
		answer, err = p.readLine()
	}
	return answer, err
}

// Bool asks until the answer is "true" or "false", in any case.
func (p *Prompter) Bool(prompt string) (bool, error) {
	for {
		answer, err := p.String(prompt)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		fmt.Fprintln(p.out, boolMsg)
	}
}

// OneOf asks until the answer equals one of choices exactly.
func (p *Prompter) OneOf(prompt, invalidMsg string, choices ...string) (string, error) {
	answer, err := p.String(prompt)
	for err == nil && !contains(choices, answer) {
		fmt.Fprintln(p.out, invalidMsg)
		answer, err = p.readLine()
	}
	return answer, err
}

func contains(choices []string, s string) bool {
	for _, c := range choices {
		if c == s {
			return true
		}
	}
	return false
}

// Gather collects every bundle option interactively.
func Gather(p *Prompter) (Options, error) {
	var (
		o   Options
		err error
	)

	if o.Output, err = p.Required("Enter output file path: "); err != nil {
		return o, fmt.Errorf("output: %w", err)
	}
	if o.Language, err = p.Required("Enter programming languages (all for all languages): "); err != nil {
		return o, fmt.Errorf("language: %w", err)
	}
	if o.Note, err = p.Bool("Do you want to list the source code as a comment? (true/false): "); err != nil {
		return o, fmt.Errorf("note: %w", err)
	}
	if o.Sort, err = p.OneOf("Do you want to sort by name or code type? (ABC/Type): ", sortMsg, "ABC", "Type"); err != nil {
		return o, fmt.Errorf("sort: %w", err)
	}
	if o.RemoveEmptyLines, err = p.Bool("Do you want to remove empty lines from code? (true/false): "); err != nil {
		return o, fmt.Errorf("remove empty lines: %w", err)
	}
	if o.Author, err = p.String("Enter the creator's name of the file: "); err != nil {
		if errors.Is(err, ErrNoInput) {
			return o, nil
		}
		return o, fmt.Errorf("author: %w", err)
	}
	return o, nil
}
