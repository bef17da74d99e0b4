package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var (
	// ErrNotANumber is returned when input cannot be parsed as a number.
	ErrNotANumber = errors.New("not a number")

	// ErrOutOfRange is returned when a parsed number falls outside the
	// accepted range.
	ErrOutOfRange = errors.New("value out of range")

	// ErrEmptyInput is returned when required input is blank.
	ErrEmptyInput = errors.New("empty input")
)

// Prompter reads and validates interactive input. Invalid entries are
// reported and re-prompted; only read failures (EOF, closed pipe) surface
// as errors.
type Prompter struct {
	in      *bufio.Reader
	printer *Printer
}

// NewPrompter creates a Prompter reading from in and reporting validation
// failures through printer.
func NewPrompter(in io.Reader, printer *Printer) *Prompter {
	return &Prompter{
		in:      bufio.NewReader(in),
		printer: printer,
	}
}

func (p *Prompter) readLine(prompt string) (string, error) {
	fmt.Fprint(p.printer.out, prompt)

	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read input: %w", err)
	}

	return strings.TrimSpace(line), nil
}

// Line prompts once and returns the trimmed input, which may be empty.
func (p *Prompter) Line(prompt string) (string, error) {
	return p.readLine(prompt)
}

// NonEmptyLine prompts until the user enters a non-blank line.
func (p *Prompter) NonEmptyLine(prompt string) (string, error) {
	for {
		line, err := p.readLine(prompt)
		if err != nil {
			return "", err
		}

		if line != "" {
			return line, nil
		}

		p.printer.Error("Input must not be empty.")
	}
}

// IntInRange prompts until the user enters an integer within [minVal, maxVal].
func (p *Prompter) IntInRange(prompt string, minVal, maxVal int) (int, error) {
	for {
		line, err := p.readLine(prompt)
		if err != nil {
			return 0, err
		}

		val, parseErr := ParseIntInRange(line, minVal, maxVal)
		if parseErr == nil {
			return val, nil
		}

		p.reportNumberError(parseErr, fmt.Sprintf("%d", minVal), fmt.Sprintf("%d", maxVal))
	}
}

// FloatInRange prompts until the user enters a number within [minVal, maxVal].
func (p *Prompter) FloatInRange(prompt string, minVal, maxVal float64) (float64, error) {
	for {
		line, err := p.readLine(prompt)
		if err != nil {
			return 0, err
		}

		val, parseErr := ParseFloatInRange(line, minVal, maxVal)
		if parseErr == nil {
			return val, nil
		}

		p.reportNumberError(parseErr, formatFloat(minVal), formatFloat(maxVal))
	}
}

// OptionalIntInRange behaves like IntInRange but accepts a blank line,
// reported through the ok return.
func (p *Prompter) OptionalIntInRange(prompt string, minVal, maxVal int) (val int, ok bool, err error) {
	for {
		line, err := p.readLine(prompt)
		if err != nil {
			return 0, false, err
		}

		if line == "" {
			return 0, false, nil
		}

		val, parseErr := ParseIntInRange(line, minVal, maxVal)
		if parseErr == nil {
			return val, true, nil
		}

		p.reportNumberError(parseErr, fmt.Sprintf("%d", minVal), fmt.Sprintf("%d", maxVal))
	}
}

// OptionalFloatInRange behaves like FloatInRange but accepts a blank line,
// reported through the ok return.
func (p *Prompter) OptionalFloatInRange(prompt string, minVal, maxVal float64) (val float64, ok bool, err error) {
	for {
		line, err := p.readLine(prompt)
		if err != nil {
			return 0, false, err
		}

		if line == "" {
			return 0, false, nil
		}

		val, parseErr := ParseFloatInRange(line, minVal, maxVal)
		if parseErr == nil {
			return val, true, nil
		}

		p.reportNumberError(parseErr, formatFloat(minVal), formatFloat(maxVal))
	}
}

// YesNo prompts until the user answers y or n.
func (p *Prompter) YesNo(prompt string) (bool, error) {
	for {
		line, err := p.readLine(prompt)
		if err != nil {
			return false, err
		}

		switch strings.ToLower(line) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}

		p.printer.Error("Please answer y or n.")
	}
}

func (p *Prompter) reportNumberError(err error, minStr, maxStr string) {
	if errors.Is(err, ErrOutOfRange) {
		p.printer.Error("Value must be between %s and %s.", minStr, maxStr)

		return
	}

	p.printer.Error("Please enter a number.")
}

// ParseIntInRange parses s as an integer and checks it lies within
// [minVal, maxVal].
func ParseIntInRange(s string, minVal, maxVal int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrEmptyInput
	}

	val, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, s)
	}

	if val < minVal || val > maxVal {
		return 0, fmt.Errorf("%w: %d not in [%d, %d]", ErrOutOfRange, val, minVal, maxVal)
	}

	return val, nil
}

// ParseFloatInRange parses s as a float and checks it lies within
// [minVal, maxVal].
func ParseFloatInRange(s string, minVal, maxVal float64) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrEmptyInput
	}

	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, s)
	}

	if val < minVal || val > maxVal {
		return 0, fmt.Errorf("%w: %g not in [%g, %g]", ErrOutOfRange, val, minVal, maxVal)
	}

	return val, nil
}

func formatFloat(val float64) string {
	return strconv.FormatFloat(val, 'g', -1, 64)
}
