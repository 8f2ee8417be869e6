package tui

import (
	"context"
	"os/exec"
	"runtime"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/bmpage/internal/bridge"
	"github.com/nikbrunner/bmpage/internal/page"
)

// taskTimeout bounds a single backend call.
const taskTimeout = 10 * time.Second

type subscriptionClosedMsg struct{}

type taskDoneMsg struct {
	task *page.Task
	err  error
}

type openDoneMsg struct {
	err error
}

// listen waits for the next backend notification and delivers it as the
// message itself. The handler re-arms it.
func listen(ch <-chan bridge.Notification) tea.Cmd {
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return subscriptionClosedMsg{}
		}
		return n
	}
}

// runTask performs a backend call off the UI goroutine and reports back.
func runTask(task *page.Task) tea.Cmd {
	if task == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), taskTimeout)
		defer cancel()
		return taskDoneMsg{task: task, err: task.Run(ctx)}
	}
}

func openCmd(open func(string) error, url string) tea.Cmd {
	return func() tea.Msg {
		return openDoneMsg{err: open(url)}
	}
}

// OpenURL opens a URL in the default browser.
func OpenURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}
