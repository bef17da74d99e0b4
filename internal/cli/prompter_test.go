package cli_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/mkrupp/movieshelf/internal/cli"
)

func newTestPrompter(input string) (*cli.Prompter, *bytes.Buffer) {
	var out bytes.Buffer

	printer := cli.NewPrinter(&out, false)

	return cli.NewPrompter(strings.NewReader(input), printer), &out
}

func TestParseIntInRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		minVal  int
		maxVal  int
		want    int
		wantErr error
	}{
		{name: "accepts value in range", input: "7", minVal: 0, maxVal: 13, want: 7},
		{name: "accepts lower bound", input: "0", minVal: 0, maxVal: 13, want: 0},
		{name: "accepts upper bound", input: "13", minVal: 0, maxVal: 13, want: 13},
		{name: "trims whitespace", input: "  5 ", minVal: 0, maxVal: 13, want: 5},
		{name: "rejects below range", input: "-1", minVal: 0, maxVal: 13, wantErr: cli.ErrOutOfRange},
		{name: "rejects above range", input: "14", minVal: 0, maxVal: 13, wantErr: cli.ErrOutOfRange},
		{name: "rejects garbage", input: "seven", minVal: 0, maxVal: 13, wantErr: cli.ErrNotANumber},
		{name: "rejects empty", input: "", minVal: 0, maxVal: 13, wantErr: cli.ErrEmptyInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := cli.ParseIntInRange(tt.input, tt.minVal, tt.maxVal)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ParseIntInRange() error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("ParseIntInRange() error = %v", err)
			}

			if got != tt.want {
				t.Errorf("ParseIntInRange() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseFloatInRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr error
	}{
		{name: "accepts value in range", input: "7.5", want: 7.5},
		{name: "accepts bounds", input: "10", want: 10},
		{name: "rejects out of range", input: "10.1", wantErr: cli.ErrOutOfRange},
		{name: "rejects garbage", input: "great", wantErr: cli.ErrNotANumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := cli.ParseFloatInRange(tt.input, 0, 10)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ParseFloatInRange() error = %v, want %v", err, tt.wantErr)
				}

				return
			}

			if err != nil {
				t.Fatalf("ParseFloatInRange() error = %v", err)
			}

			if got != tt.want {
				t.Errorf("ParseFloatInRange() = %g, want %g", got, tt.want)
			}
		})
	}
}

func TestPrompter_IntInRange_RepromptsOnInvalid(t *testing.T) {
	t.Parallel()

	prompter, out := newTestPrompter("abc\n99\n4\n")

	got, err := prompter.IntInRange("choice: ", 0, 13)
	if err != nil {
		t.Fatalf("IntInRange() error = %v", err)
	}

	if got != 4 {
		t.Errorf("IntInRange() = %d, want 4", got)
	}

	output := out.String()
	if !strings.Contains(output, "Please enter a number.") {
		t.Error("IntInRange() did not report non-numeric input")
	}

	if !strings.Contains(output, "Value must be between 0 and 13.") {
		t.Error("IntInRange() did not report out-of-range input")
	}
}

func TestPrompter_OptionalFloatInRange_BlankSkips(t *testing.T) {
	t.Parallel()

	prompter, _ := newTestPrompter("\n")

	_, ok, err := prompter.OptionalFloatInRange("min rating: ", 0, 10)
	if err != nil {
		t.Fatalf("OptionalFloatInRange() error = %v", err)
	}

	if ok {
		t.Error("OptionalFloatInRange() ok = true for blank input")
	}
}

func TestPrompter_NonEmptyLine(t *testing.T) {
	t.Parallel()

	prompter, out := newTestPrompter("\n  \nAlien\n")

	got, err := prompter.NonEmptyLine("title: ")
	if err != nil {
		t.Fatalf("NonEmptyLine() error = %v", err)
	}

	if got != "Alien" {
		t.Errorf("NonEmptyLine() = %q, want %q", got, "Alien")
	}

	if !strings.Contains(out.String(), "Input must not be empty.") {
		t.Error("NonEmptyLine() did not report blank input")
	}
}

func TestPrompter_ReadFailure(t *testing.T) {
	t.Parallel()

	prompter, _ := newTestPrompter("")

	if _, err := prompter.Line("title: "); err == nil {
		t.Error("Line() expected error on exhausted input")
	}
}

func TestPrompter_YesNo(t *testing.T) {
	t.Parallel()

	prompter, out := newTestPrompter("maybe\nYES\n")

	got, err := prompter.YesNo("favorite? ")
	if err != nil {
		t.Fatalf("YesNo() error = %v", err)
	}

	if !got {
		t.Error("YesNo() = false, want true")
	}

	if !strings.Contains(out.String(), "Please answer y or n.") {
		t.Error("YesNo() did not report invalid answer")
	}
}
