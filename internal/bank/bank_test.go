package bank_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novapath/trident/internal/bank"
	"github.com/novapath/trident/internal/bank/banktest"
)

func TestDefaultCatalog(t *testing.T) {
	cat := bank.DefaultCatalog()
	require.NoError(t, cat.Validate())

	want := map[string]int{"RIASEC": 6, "Personality": 10, "Aptitude": 6, "EQ": 5, "Learning": 8}
	if cat.SectionCount() != len(want) {
		t.Fatalf("SectionCount() = %d, want %d", cat.SectionCount(), len(want))
	}
	for i, s := range cat.Sections {
		if got := cat.TraitCount(i); got != want[s.Name] {
			t.Errorf("TraitCount(%s) = %d, want %d", s.Name, got, want[s.Name])
		}
	}
	if got := cat.TotalQuestions(); got != 35*12 {
		t.Errorf("TotalQuestions() = %d, want %d", got, 35*12)
	}
	if got := cat.SectionIndex("EQ"); got != 3 {
		t.Errorf("SectionIndex(EQ) = %d, want 3", got)
	}
	if got := cat.SectionIndex("Nope"); got != -1 {
		t.Errorf("SectionIndex(Nope) = %d, want -1", got)
	}
}

func TestCatalogValidate(t *testing.T) {
	tests := []struct {
		name string
		cat  bank.Catalog
	}{
		{"no sections", bank.Catalog{QuestionsPerTrait: 1}},
		{"zero questions", bank.Catalog{Sections: []bank.SectionSpec{{Name: "X", Traits: []string{"A"}}}}},
		{"no traits", bank.Catalog{Sections: []bank.SectionSpec{{Name: "X"}}, QuestionsPerTrait: 1}},
		{"duplicate section", bank.Catalog{Sections: []bank.SectionSpec{
			{Name: "X", Traits: []string{"A"}}, {Name: "X", Traits: []string{"B"}},
		}, QuestionsPerTrait: 1}},
		{"duplicate trait", bank.Catalog{Sections: []bank.SectionSpec{
			{Name: "X", Traits: []string{"A", "A"}},
		}, QuestionsPerTrait: 1}},
		{"empty trait", bank.Catalog{Sections: []bank.SectionSpec{
			{Name: "X", Traits: []string{""}},
		}, QuestionsPerTrait: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cat.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, bank.ErrConfiguration)
		})
	}
}

func TestNew_Valid(t *testing.T) {
	b := banktest.New(t, banktest.Small())

	assert.Equal(t, 2, b.QuestionsPerTrait())
	assert.Equal(t, []string{"A q1", "A q2"}, b.Questions(0, 0))
	assert.Equal(t, []string{"C q1", "C q2"}, b.Questions(1, 0))
	assert.Nil(t, b.Questions(1, 1))
	assert.Nil(t, b.Questions(2, 0))
	assert.Nil(t, b.Questions(-1, 0))
}

func TestNew_QuestionsAreCopies(t *testing.T) {
	b := banktest.New(t, banktest.Small())
	qs := b.Questions(0, 0)
	qs[0] = "mutated"
	assert.Equal(t, "A q1", b.Questions(0, 0)[0])

	cat := b.Catalog()
	cat.Sections[0].Traits[0] = "mutated"
	assert.Equal(t, "A", b.Catalog().Sections[0].Traits[0])
}

func TestNew_Rejects(t *testing.T) {
	cat := banktest.Small()
	tests := []struct {
		name   string
		mutate func(m map[string]map[string][]string)
	}{
		{"missing section", func(m map[string]map[string][]string) { delete(m, "Y") }},
		{"missing trait", func(m map[string]map[string][]string) { delete(m["X"], "B") }},
		{"unknown section", func(m map[string]map[string][]string) {
			m["Z"] = map[string][]string{"D": {"1", "2"}}
		}},
		{"unknown trait", func(m map[string]map[string][]string) { m["Y"]["D"] = []string{"1", "2"} }},
		{"too few questions", func(m map[string]map[string][]string) { m["X"]["A"] = []string{"only"} }},
		{"too many questions", func(m map[string]map[string][]string) {
			m["X"]["A"] = []string{"1", "2", "3"}
		}},
		{"blank question", func(m map[string]map[string][]string) { m["Y"]["C"][1] = "   " }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := banktest.Sections(cat)
			tt.mutate(m)
			_, err := bank.New(cat, m)
			require.Error(t, err)

			var cfgErr *bank.ConfigurationError
			require.True(t, errors.As(err, &cfgErr), "want *ConfigurationError, got %T", err)
			assert.ErrorIs(t, err, bank.ErrConfiguration)
		})
	}
}

func TestLoad_JSONVersioned(t *testing.T) {
	b, err := bank.Load(filepath.Join("testdata", "small.json"), banktest.Small())
	require.NoError(t, err)
	assert.Equal(t, "v1.2.0", b.Version())
	assert.Equal(t, []string{"B q1", "B q2"}, b.Questions(0, 1))
}

func TestLoad_YAMLBare(t *testing.T) {
	b, err := bank.Load(filepath.Join("testdata", "small.yaml"), banktest.Small())
	require.NoError(t, err)
	assert.Equal(t, "", b.Version())
	// Declared order wins over document order.
	assert.Equal(t, []string{"A q1", "A q2"}, b.Questions(0, 0))
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join("testdata", "nope.json")},
		{"bad extension", filepath.Join("testdata", "small.txt")},
		{"wrong count", filepath.Join("testdata", "bad_count.json")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := bank.Load(tt.path, banktest.Small())
			require.Error(t, err)

			var cfgErr *bank.ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.path, cfgErr.Path)
			assert.Contains(t, err.Error(), tt.path)
		})
	}
}

func TestParse_Version(t *testing.T) {
	body := func(v string) []byte {
		return []byte(`{"version": "` + v + `", "sections": {
			"X": {"A": ["1", "2"], "B": ["1", "2"]},
			"Y": {"C": ["1", "2"]}}}`)
	}
	tests := []struct {
		version string
		want    string
		wantErr bool
	}{
		{"1.0.0", "v1.0.0", false},
		{"v1.4", "v1.4.0", false},
		{"2.0.0", "", true},
		{"v0.9.0", "", true},
		{"banana", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			b, err := bank.Parse(body(tt.version), bank.FormatJSON, banktest.Small())
			if tt.wantErr {
				require.ErrorIs(t, err, bank.ErrConfiguration)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, b.Version())
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	_, err := bank.Parse([]byte(`{"X": [`), bank.FormatJSON, banktest.Small())
	require.ErrorIs(t, err, bank.ErrConfiguration)

	_, err = bank.Parse([]byte(`{}`), bank.FormatJSON, banktest.Small())
	require.ErrorIs(t, err, bank.ErrConfiguration)

	_, err = bank.Parse([]byte(`X: {A: [1, 2]`), bank.FormatYAML, banktest.Small())
	require.ErrorIs(t, err, bank.ErrConfiguration)
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want bank.Format
	}{
		{"q.json", bank.FormatJSON},
		{"q.JSON", bank.FormatJSON},
		{"q.yaml", bank.FormatYAML},
		{"dir/q.yml", bank.FormatYAML},
	}
	for _, tt := range tests {
		got, err := bank.FormatFromPath(tt.path)
		require.NoError(t, err)
		if got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
