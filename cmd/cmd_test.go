package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novapath/trident/internal/bank"
	"github.com/novapath/trident/internal/bank/banktest"
	"github.com/novapath/trident/internal/report"
	"github.com/novapath/trident/internal/store"
)

type env struct {
	dir    string
	config string
	db     string
	bank   string
}

// newEnv writes a one-question-per-trait bank and a config that selects the
// mock model provider with no retries.
func newEnv(t *testing.T) env {
	t.Helper()
	dir := t.TempDir()
	e := env{
		dir:    dir,
		config: filepath.Join(dir, "trident.yaml"),
		db:     filepath.Join(dir, "data", "trident.db"),
		bank:   filepath.Join(dir, "question_bank.json"),
	}

	cat := bank.DefaultCatalog()
	cat.QuestionsPerTrait = 1
	data, err := json.Marshal(banktest.Sections(cat))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(e.bank, data, 0o644))

	conf := "questions_per_trait: 1\n" +
		"top_n: 3\n" +
		"log:\n  level: error\n" +
		"llm:\n  provider: mock\n  retry:\n    max_attempts: 1\n"
	require.NoError(t, os.WriteFile(e.config, []byte(conf), 0o644))
	return e
}

func (e env) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", e.config, "--db", e.db, "--bank", e.bank}, args...))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

// complete answers every question for id with value.
func (e env) complete(t *testing.T, id string, value int) {
	t.Helper()
	_, err := e.run(t, "bank", "validate")
	require.NoError(t, err)

	d, err := openDeps(context.Background(), depsOptions{})
	require.NoError(t, err)
	defer d.Close()

	sess, err := d.sessions.Start(context.Background(), id)
	require.NoError(t, err)
	for !sess.Complete() {
		require.NoError(t, d.sessions.Answer(context.Background(), sess, value))
	}
}

func TestBankValidate(t *testing.T) {
	e := newEnv(t)
	out, err := e.run(t, "bank", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "ok (unversioned)")
	assert.Contains(t, out, "RIASEC")
	assert.Contains(t, out, "35 questions")
}

func TestBankValidate_Broken(t *testing.T) {
	e := newEnv(t)
	broken := filepath.Join(e.dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{"RIASEC": {}}`), 0o644))

	_, err := e.run(t, "bank", "validate", broken)
	require.Error(t, err)
	assert.ErrorIs(t, err, bank.ErrConfiguration)
}

func TestReport_Text(t *testing.T) {
	e := newEnv(t)
	e.complete(t, "student-1", 4)

	out, err := e.run(t, "report", "student-1", "--json=false", "--guidance=true")
	require.NoError(t, err)
	assert.Contains(t, out, "Holland code:")
	assert.Contains(t, out, "RIASEC")
	assert.Contains(t, out, "Career guidance (static)")
}

func TestReport_JSON(t *testing.T) {
	e := newEnv(t)
	e.complete(t, "student-2", 5)

	out, err := e.run(t, "report", "student-2", "--json", "--guidance=false", "--top", "2")
	require.NoError(t, err)

	var got report.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 5, got.MaxScore)
	require.Len(t, got.Sections, 5)
	assert.Len(t, got.Sections[0].Top, 2)
	assert.Equal(t, "RIA", got.HollandCode)
}

func TestReport_Errors(t *testing.T) {
	e := newEnv(t)

	_, err := e.run(t, "report", "nobody", "--json=false", "--guidance=false")
	assert.ErrorContains(t, err, `no assessment found for "nobody"`)

	d, err := openDeps(context.Background(), depsOptions{})
	require.NoError(t, err)
	_, err = d.sessions.Start(context.Background(), "halfway")
	require.NoError(t, err)
	require.NoError(t, d.Close())

	_, err = e.run(t, "report", "halfway", "--json=false", "--guidance=false")
	assert.ErrorContains(t, err, "not complete: 0 of 35 answered")
}

func TestReset(t *testing.T) {
	e := newEnv(t)
	e.complete(t, "student-3", 2)

	out, err := e.run(t, "reset", "student-3")
	require.NoError(t, err)
	assert.Contains(t, out, `Reset "student-3": 0 of 35 answered.`)

	_, err = e.run(t, "report", "student-3", "--json=false", "--guidance=false")
	assert.ErrorContains(t, err, "not complete")

	_, err = e.run(t, "reset", "ghost")
	assert.ErrorContains(t, err, "no assessment found")
}

func TestLLMCommands(t *testing.T) {
	e := newEnv(t)
	out, err := e.run(t, "llm", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "No LLM usage recorded yet.")

	e.complete(t, "student-4", 3)
	_, err = e.run(t, "report", "student-4", "--json=false", "--guidance=true")
	require.NoError(t, err)

	out, err = e.run(t, "llm", "list", "--purpose", "")
	require.NoError(t, err)
	assert.Contains(t, out, "guidance")
	assert.Contains(t, out, "✗")

	out, err = e.run(t, "llm", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Usage by Purpose")
	assert.Contains(t, out, "Pricing unavailable for: mock")
}

func TestVersion(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "trident (devel)\n", out.String())
}

func TestFormatCost(t *testing.T) {
	tests := []struct {
		usd  float64
		want string
	}{
		{0.004, "$0.0040"},
		{0.01, "$0.01"},
		{12.345, "$12.35"},
	}
	for _, tt := range tests {
		if got := formatCost(tt.usd); got != tt.want {
			t.Errorf("formatCost(%v) = %q, want %q", tt.usd, got, tt.want)
		}
	}
}

func TestWriteLLMEvent(t *testing.T) {
	var out bytes.Buffer
	e := &store.LLMEvent{ID: 7}
	e.Provider = "mock"
	e.Model = "mock"
	e.Purpose = "guidance"
	e.ErrorMessage = "provider unavailable"
	require.NoError(t, writeLLMEvent(&out, e))

	got := out.String()
	assert.Contains(t, got, "ID:        7\n")
	assert.Contains(t, got, "Error:     provider unavailable\n")
	assert.Contains(t, got, "REQUEST")
	assert.Contains(t, got, "(not captured)")
}
