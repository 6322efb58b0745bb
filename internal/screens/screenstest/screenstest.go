// Package screenstest wires screen environments over a temporary store.
package screenstest

import (
	"context"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/novapath/trident/internal/bank/banktest"
	"github.com/novapath/trident/internal/guidance"
	"github.com/novapath/trident/internal/metrics"
	"github.com/novapath/trident/internal/ordering"
	"github.com/novapath/trident/internal/screens"
	"github.com/novapath/trident/internal/session"
	"github.com/novapath/trident/internal/store"
)

// NewEnv returns an Env over banktest.Small with static guidance.
func NewEnv(t testing.TB) screens.Env {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "trident.db"))
	if err != nil {
		t.Fatalf("screenstest: open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	m, err := metrics.New(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("screenstest: metrics: %v", err)
	}
	cache := ordering.NewCache(banktest.New(t, banktest.Small()), 8)
	return screens.Env{
		Ctx:      context.Background(),
		Sessions: session.NewService(cache, st.ProgressRepo(), st.EventRepo(), m, nil),
		Guidance: guidance.NewService(nil, guidance.DefaultConfig(), nil, m),
		TopN:     2,
	}
}

// Key builds a key press for r.
func Key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// Run executes cmd and returns its message, or nil for a nil command.
func Run(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}
