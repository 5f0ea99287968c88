package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abhisek/codemaster/internal/quiz"
	"github.com/abhisek/codemaster/internal/tutor"
	"github.com/abhisek/codemaster/internal/ui/components"
	"github.com/spf13/cobra"
)

var practiceCmd = &cobra.Command{
	Use:   "practice <file>",
	Short: "Take the quiz for a source file in line mode",
	Long: `Generate a learning module for a source file and answer its quiz on the
command line. Choice questions take a letter (A-D); code answers are typed
line by line and ended with a single "." on its own line.`,
	Args: cobra.ExactArgs(1),
	RunE: runPractice,
}

func runPractice(cmd *cobra.Command, args []string) error {
	if args[0] == "-" {
		return errors.New("practice reads answers from stdin; pass a file path")
	}
	src, err := readSource(args[0])
	if err != nil {
		return err
	}

	client, closeFn, err := newTutorClient(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	fmt.Println("Generating learning module...")
	mod, err := client.RequestModule(cmd.Context(), src)
	if err != nil {
		return err
	}
	if len(mod.Quiz) == 0 {
		fmt.Println("This module has no quiz.")
		return nil
	}

	fmt.Printf("%s MODULE  ·  %d questions\n\n", strings.ToUpper(mod.Language), len(mod.Quiz))
	p := &practiceSession{
		engine:  quiz.New(mod),
		grader:  client,
		scanner: bufio.NewScanner(os.Stdin),
		out:     cmd.OutOrStdout(),
	}
	return p.run(cmd)
}

type practiceSession struct {
	engine  *quiz.Engine
	grader  quiz.Grader
	scanner *bufio.Scanner
	out     io.Writer
}

func (p *practiceSession) run(cmd *cobra.Command) error {
	e := p.engine
	for !e.Finished() {
		fmt.Fprintf(p.out, "── Question %d/%d ──\n", e.Index()+1, e.Total())
		fmt.Fprintln(p.out, components.RenderMarkdown(e.Current().Prompt(), 100))

		var err error
		switch q := e.Current().(type) {
		case *tutor.ChoiceQuestion:
			err = p.answerChoice(q)
		case *tutor.CodeQuestion:
			err = p.answerCode(cmd, q)
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(p.out, "\n(input closed)")
			return nil
		}
		if err != nil {
			return err
		}

		p.printFeedback()
		if err := e.Advance(); err != nil {
			return err
		}
	}

	fmt.Fprintf(p.out, "── Quiz Completed: %d/%d ──\n", e.Score(), e.Total())
	if e.Perfect() {
		fmt.Fprintln(p.out, "Perfect! You've mastered this concept.")
	} else {
		fmt.Fprintln(p.out, "Good effort! Keep practicing.")
	}
	return nil
}

func (p *practiceSession) answerChoice(q *tutor.ChoiceQuestion) error {
	for i, opt := range q.Options {
		fmt.Fprintf(p.out, "  %s) %s\n", components.OptionLabels[i], opt)
	}
	for {
		fmt.Fprint(p.out, "\nYour answer (A-D): ")
		line, err := p.readLine()
		if err != nil {
			return err
		}
		idx, ok := optionIndex(line)
		if !ok || !p.engine.SelectOption(idx) {
			fmt.Fprintln(p.out, "Please enter a letter between A and D.")
			continue
		}
		_, err = p.engine.Submit()
		return err
	}
}

func (p *practiceSession) answerCode(cmd *cobra.Command, q *tutor.CodeQuestion) error {
	if q.Task != "" && q.Task != q.Text {
		fmt.Fprintln(p.out, components.RenderMarkdown(q.Task, 100))
	}
	if q.StarterCode != "" {
		fmt.Fprintf(p.out, "Starter code:\n%s\n", q.StarterCode)
	}
	for {
		fmt.Fprintln(p.out, "\nEnter your code, then a line with a single \".\":")
		code, err := p.readBlock()
		if err != nil {
			return err
		}
		p.engine.EditCode(code)

		fmt.Fprintln(p.out, "Evaluating...")
		err = p.engine.SubmitAndWait(cmd.Context(), p.grader)
		if errors.Is(err, quiz.ErrBlankCode) {
			fmt.Fprintln(p.out, "Please write some code first.")
			continue
		}
		return err
	}
}

func (p *practiceSession) printFeedback() {
	e := p.engine
	if e.LastCorrect() {
		fmt.Fprintln(p.out, "\033[32m✓ Correct!\033[0m")
	} else {
		fmt.Fprintln(p.out, "\033[31m✗ Incorrect.\033[0m")
	}

	switch q := e.Current().(type) {
	case *tutor.ChoiceQuestion:
		if !e.LastCorrect() {
			fmt.Fprintf(p.out, "Answer: %s) %s\n", components.OptionLabels[q.CorrectIndex], q.Options[q.CorrectIndex])
		}
	case *tutor.CodeQuestion:
		if res := e.Result(); res != nil {
			fmt.Fprintf(p.out, "Score: %d/100\n%s\n", res.Score, res.Feedback)
		}
		if e.RevealSolution() {
			fmt.Fprintf(p.out, "Reference solution:\n%s\n", q.Solution)
		}
	}

	if why := e.Current().Explanation(); why != "" {
		fmt.Fprintf(p.out, "Explanation: %s\n", why)
	}
	fmt.Fprintln(p.out)
}

func (p *practiceSession) readLine() (string, error) {
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}

// readBlock reads lines until a lone "." or end of input.
func (p *practiceSession) readBlock() (string, error) {
	var lines []string
	for p.scanner.Scan() {
		line := p.scanner.Text()
		if strings.TrimSpace(line) == "." {
			return strings.Join(lines, "\n"), nil
		}
		lines = append(lines, line)
	}
	if err := p.scanner.Err(); err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return "", io.EOF
	}
	return strings.Join(lines, "\n"), nil
}

// optionIndex maps "a".."d" or "1".."4" to an option index.
func optionIndex(s string) (int, bool) {
	if len(s) != 1 {
		return 0, false
	}
	c := s[0]
	switch {
	case c >= 'a' && c <= 'd':
		return int(c - 'a'), true
	case c >= 'A' && c <= 'D':
		return int(c - 'A'), true
	case c >= '1' && c <= '4':
		return int(c - '1'), true
	}
	return 0, false
}
