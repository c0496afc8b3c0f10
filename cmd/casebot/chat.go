package main

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"
)

// exitCommands end a chat session. Matching ignores case.
var exitCommands = []string{"exit", "quit", "выход", "q"}

// sampleQuestions are shown when a chat session starts.
var sampleQuestions = []string{
	"Что вы можете сделать для ритейлеров?",
	"Есть ли опыт с HR автоматизацией?",
	"Работали с поиском по изображениям?",
	"Какие решения для банков?",
}

func isExit(input string) bool {
	return slices.Contains(exitCommands, strings.ToLower(strings.TrimSpace(input)))
}

// Run executes the chat command.
func (c *ChatCmd) Run(deps *Dependencies) error {
	session, closeIndex, err := openSession(deps, c.SessionOptions)
	if err != nil {
		return err
	}
	defer closeIndex()

	st := deps.Styles
	fmt.Fprintln(deps.Stdout, st.Render(st.Title, "Чат-бот по проектам компании"))
	fmt.Fprintln(deps.Stdout, "Введите 'exit' для выхода.")
	fmt.Fprintln(deps.Stdout)
	fmt.Fprintln(deps.Stdout, st.Render(st.Muted, "Примеры вопросов:"))
	for _, q := range sampleQuestions {
		fmt.Fprintln(deps.Stdout, st.Render(st.Muted, "  • "+q))
	}
	fmt.Fprintln(deps.Stdout)

	done := make(chan struct{})
	defer close(done)
	lines := scanLines(done, deps.Stdin)

	for {
		fmt.Fprint(deps.Stdout, st.Render(st.Prompt, "> "))

		var line string
		select {
		case <-deps.Ctx.Done():
			fmt.Fprintln(deps.Stdout)
			return nil
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(deps.Stdout)
				return nil
			}
			line = l
		}

		question := strings.TrimSpace(line)
		if question == "" {
			continue
		}
		if isExit(question) {
			fmt.Fprintln(deps.Stdout, "До свидания!")
			return nil
		}

		answer, docs, err := session.AskWithSources(deps.Ctx, question)
		if err != nil {
			if deps.Ctx.Err() != nil {
				fmt.Fprintln(deps.Stdout)
				return nil
			}
			fmt.Fprintln(deps.Stdout, st.Render(st.Error, "Ошибка: "+errorText(err)))
			continue
		}

		printAnswer(deps, answer, docs, c.Sources)
		fmt.Fprintln(deps.Stdout)
	}
}

// scanLines sends the lines of r until EOF or until done is closed. A read
// cannot be interrupted, so after done is closed the goroutine stays blocked
// in Scan until r yields a line or EOF, then exits without sending. It never
// touches session state, and the process exits when the command returns.
func scanLines(done <-chan struct{}, r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
	}()
	return lines
}
