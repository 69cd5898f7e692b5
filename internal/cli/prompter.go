package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/Akash50142/expense-tracker/internal/model"
)

// ErrInputTerminated is returned when input ends before an answer is given.
var ErrInputTerminated = errors.New("input terminated")

// Prompter asks questions on a terminal.
type Prompter struct {
	reader *NonBlockingReader
	writer io.Writer
}

// NewPrompter creates a prompter reading answers from reader.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	return &Prompter{
		reader: NewNonBlockingReader(reader),
		writer: writer,
	}
}

// Confirm asks a yes/no question. Anything other than "y" or "yes" is no.
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	if _, err := fmt.Fprint(p.writer, FormatPrompt(question+" [y/N]")); err != nil {
		return false, fmt.Errorf("failed to write prompt: %w", err)
	}

	answer, err := p.readLine(ctx)
	if err != nil {
		return false, err
	}

	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Ask repeats a question until validate accepts the answer. An empty answer
// returns def when def is not empty.
func (p *Prompter) Ask(ctx context.Context, question, def string, validate func(string) error) (string, error) {
	label := question
	if def != "" {
		label = fmt.Sprintf("%s [%s]", question, def)
	}

	for {
		if _, err := fmt.Fprint(p.writer, FormatPrompt(label)); err != nil {
			return "", fmt.Errorf("failed to write prompt: %w", err)
		}

		answer, err := p.readLine(ctx)
		if err != nil {
			return "", err
		}
		if answer == "" {
			answer = def
		}

		if validate == nil {
			return answer, nil
		}
		if err := validate(answer); err != nil {
			if _, werr := fmt.Fprintln(p.writer, FormatError(err.Error())); werr != nil {
				slog.Warn("Failed to write validation error", "error", werr)
			}
			continue
		}
		return answer, nil
	}
}

// PromptExpense collects the fields of a new expense. today is offered as
// the default date.
func (p *Prompter) PromptExpense(ctx context.Context, today string) (model.ExpenseInput, error) {
	var in model.ExpenseInput

	amount, err := p.Ask(ctx, "Amount", "", func(s string) error {
		v, err := ParseAmount(s)
		if err != nil || v <= 0 {
			return model.ErrInvalidAmount
		}
		return nil
	})
	if err != nil {
		return in, err
	}
	in.Amount, _ = ParseAmount(amount)

	if _, err := fmt.Fprintln(p.writer, SubtleStyle.Render(categoryChoices())); err != nil {
		slog.Warn("Failed to write category list", "error", err)
	}
	category, err := p.Ask(ctx, "Category", string(model.CategoryOther), func(s string) error {
		_, err := parseCategoryChoice(s)
		return err
	})
	if err != nil {
		return in, err
	}
	in.Category, _ = parseCategoryChoice(category)

	in.Date, err = p.Ask(ctx, "Date", today, func(s string) error {
		if _, err := model.ParseDate(s); err != nil {
			return model.ErrInvalidDate
		}
		return nil
	})
	if err != nil {
		return in, err
	}

	in.Description, err = p.Ask(ctx, "Description", "", func(s string) error {
		if strings.TrimSpace(s) == "" {
			return model.ErrEmptyDescription
		}
		return nil
	})
	if err != nil {
		return in, err
	}

	return in, nil
}

func categoryChoices() string {
	var b strings.Builder
	for i, opt := range model.CategoryOptions() {
		fmt.Fprintf(&b, "  %2d. %-22s (%s)\n", i+1, opt.Label, opt.Value)
	}
	return strings.TrimRight(b.String(), "\n")
}

// parseCategoryChoice accepts a category value or its 1-based list number.
func parseCategoryChoice(s string) (model.Category, error) {
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		categories := model.Categories()
		if n < 1 || n > len(categories) {
			return "", fmt.Errorf("%w: choose 1-%d", model.ErrInvalidCategory, len(categories))
		}
		return categories[n-1], nil
	}
	return model.ParseCategory(s)
}

func (p *Prompter) readLine(ctx context.Context) (string, error) {
	line, err := p.reader.ReadLine(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", ErrInputTerminated
		}
		return "", err
	}
	return line, nil
}

// NewProgressBar creates the progress bar used by long-running commands.
func NewProgressBar(w io.Writer, total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]"+description+"[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(w); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}
