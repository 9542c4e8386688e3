package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"pos/internal/checkout"
	"pos/internal/platform/config"
	"pos/internal/platform/logger"
	"pos/internal/session"
)

// Session is what the terminal drives. *session.Controller satisfies it.
type Session interface {
	View() session.View
	EnterCode(code string) session.View
	Search(ctx context.Context, code string) session.View
	AddToCart(ctx context.Context) (session.View, error)
	Purchase(ctx context.Context) (session.View, error)
	DismissPopup() session.View
}

type model struct {
	session Session
	view    session.View
	status  string
	busy    bool
}

// viewMsg carries the view produced by an action that ran off the UI loop.
type viewMsg struct {
	view session.View
	err  error
}

func initialModel(s Session) model {
	return model{session: s, view: s.View(), status: "Ready"}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			m.busy = true
			m.status = "Searching..."
			return m, searchCmd(m.session, m.view.InputCode)
		case tea.KeyCtrlA:
			v, err := m.session.AddToCart(context.Background())
			m.view = v
			m.status = statusFor(err, "Added")
		case tea.KeyCtrlP:
			m.busy = true
			m.status = "Submitting purchase..."
			return m, purchaseCmd(m.session)
		case tea.KeyEsc:
			m.view = m.session.DismissPopup()
			m.status = "Ready"
		case tea.KeyBackspace:
			code := []rune(m.view.InputCode)
			if len(code) > 0 {
				m.view = m.session.EnterCode(string(code[:len(code)-1]))
			}
		case tea.KeyRunes:
			m.view = m.session.EnterCode(m.view.InputCode + string(msg.Runes))
		}
	case viewMsg:
		m.busy = false
		m.view = msg.view
		m.status = statusFor(msg.err, "Ready")
	}
	return m, nil
}

func statusFor(err error, ok string) string {
	if err != nil {
		return "Rejected: " + err.Error()
	}
	return ok
}

func searchCmd(s Session, code string) tea.Cmd {
	return func() tea.Msg {
		return viewMsg{view: s.Search(context.Background(), code)}
	}
}

func purchaseCmd(s Session) tea.Cmd {
	return func() tea.Msg {
		v, err := s.Purchase(context.Background())
		return viewMsg{view: v, err: err}
	}
}

func (m model) View() string {
	v := m.view
	b := &strings.Builder{}
	fmt.Fprintln(b, "POS checkout")
	fmt.Fprintln(b, "")
	fmt.Fprintf(b, "Code: %s_\n", v.InputCode)
	if v.Product != nil {
		fmt.Fprintf(b, "Found: %s  %s  ¥%d\n", v.Product.Code, v.Product.Name, v.Product.Price)
	}
	if v.Error != "" {
		fmt.Fprintf(b, "Error: %s\n", v.Error)
	}

	fmt.Fprintln(b, "")
	fmt.Fprintln(b, "Cart:")
	if len(v.Lines) == 0 {
		fmt.Fprintln(b, "  (empty)")
	}
	for i, line := range v.Lines {
		fmt.Fprintf(b, "  %2d. %-6s %-20s x%d  ¥%d\n", i+1, line.Product.Code, line.Product.Name, line.Quantity, line.Subtotal())
	}
	fmt.Fprintf(b, "Subtotal: ¥%d   With tax: ¥%d\n", v.Provisional.ExclTax, v.Provisional.InclTax)

	if v.Popup != nil {
		fmt.Fprintln(b, "")
		fmt.Fprintln(b, "+--------------------------------+")
		fmt.Fprintln(b, "| Purchase complete              |")
		fmt.Fprintf(b, "| Excl. tax: ¥%-18d|\n", v.Popup.ExclTax)
		fmt.Fprintf(b, "| Incl. tax: ¥%-18d|\n", v.Popup.InclTax)
		if v.TransactionID != "" {
			fmt.Fprintf(b, "| Transaction: %-17s|\n", v.TransactionID)
		}
		fmt.Fprintln(b, "+--------------------------------+")
	}

	fmt.Fprintln(b, "")
	fmt.Fprintf(b, "Status: %s\n", m.status)
	fmt.Fprintln(b, "\nControls: type a code, enter to search, ctrl+a add, ctrl+p purchase, esc dismiss, ctrl+c quit")
	return b.String()
}

func main() {
	logFile := flag.String("log-file", "", "write logs to this file (the terminal owns stdout)")
	flag.Parse()

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	var w io.Writer = io.Discard
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}
	log := logger.NewWithWriter(w, cfg.LogLevel, cfg.LogFormat)

	controller, err := checkout.NewController(cfg, log, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build session: %v\n", err)
		os.Exit(1)
	}

	if _, err := tea.NewProgram(initialModel(controller)).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "terminal error: %v\n", err)
		os.Exit(1)
	}
}
