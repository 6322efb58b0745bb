package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/novapath/trident/internal/screen"
)

type stubScreen struct {
	title   string
	initRan bool
	got     []tea.Msg
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}

func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.got = append(s.got, msg)
	return s, nil
}
func (s *stubScreen) View(int, int) string { return s.title }
func (s *stubScreen) Title() string        { return s.title }

func titles(r *Router) []string {
	var out []string
	for _, s := range r.stack {
		out = append(out, s.Title())
	}
	return out
}

func TestNavigation(t *testing.T) {
	tests := []struct {
		name string
		msgs []tea.Msg
		want []string
	}{
		{"push", []tea.Msg{PushScreenMsg{&stubScreen{title: "quiz"}}}, []string{"identify", "quiz"}},
		{"pop", []tea.Msg{PushScreenMsg{&stubScreen{title: "quiz"}}, PopScreenMsg{}}, []string{"identify"}},
		{"pop at bottom", []tea.Msg{PopScreenMsg{}}, []string{"identify"}},
		{"replace bottom", []tea.Msg{ReplaceScreenMsg{&stubScreen{title: "quiz"}}}, []string{"quiz"}},
		{"replace top", []tea.Msg{
			PushScreenMsg{&stubScreen{title: "quiz"}},
			ReplaceScreenMsg{&stubScreen{title: "results"}},
		}, []string{"identify", "results"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(&stubScreen{title: "identify"})
			for _, msg := range tt.msgs {
				r.Update(msg)
			}
			got := titles(r)
			if len(got) != len(tt.want) {
				t.Fatalf("stack = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("stack = %v, want %v", got, tt.want)
				}
			}
			if r.Depth() != len(tt.want) {
				t.Errorf("Depth() = %d, want %d", r.Depth(), len(tt.want))
			}
		})
	}
}

func TestInitRunsOnPushAndReplace(t *testing.T) {
	r := New(&stubScreen{title: "identify"})
	pushed := &stubScreen{title: "quiz"}
	replaced := &stubScreen{title: "results"}

	r.Push(pushed)
	r.Replace(replaced)

	if !pushed.initRan || !replaced.initRan {
		t.Errorf("Init ran: pushed=%v replaced=%v, want both", pushed.initRan, replaced.initRan)
	}
}

func TestUpdateForwardsToActive(t *testing.T) {
	bottom := &stubScreen{title: "identify"}
	top := &stubScreen{title: "quiz"}
	r := New(bottom)
	r.Push(top)

	r.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if len(top.got) != 1 || len(bottom.got) != 0 {
		t.Errorf("messages: top=%d bottom=%d, want 1 and 0", len(top.got), len(bottom.got))
	}
	if r.View(80, 24) != "quiz" {
		t.Errorf("View() = %q, want %q", r.View(80, 24), "quiz")
	}
}
