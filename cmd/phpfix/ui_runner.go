package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"phpfix/internal/driver"
	"phpfix/internal/ui"
)

type fixOutcome struct {
	report *driver.Report
	err    error
}

// runFixWithUI runs FixFiles while a progress view renders its events.
// Quitting the view cancels the run.
func runFixWithUI(ctx context.Context, title string, files []string, req driver.Request) (*driver.Report, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan fixOutcome, 1)

	go func() {
		reqCopy := req
		reqCopy.Sink = driver.ChannelSink{Ch: events}
		report, err := driver.FixFiles(ctx, files, reqCopy)
		outcomeCh <- fixOutcome{report: report, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()

	// если экран закрыли раньше, не даём воркерам зависнуть на отправке
	cancel()
	go func() {
		for range events {
		}
	}()

	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.report, uiErr
	}
	return outcome.report, outcome.err
}
