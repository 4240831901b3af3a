package schema

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marte-community/scorer-dev-tools/internal/parser"
)

func TestDefaultVocabulary(t *testing.T) {
	s := DefaultSchema()
	vocab, err := s.Vocabulary()
	require.NoError(t, err)

	assert.Equal(t, []string{"Nclass", "classes", "lbl_pred", "lbl_true", "n_lbl", "n_pred", "n_true"}, vocab.Names())

	lbl, ok := vocab.Lookup("lbl_true")
	require.True(t, ok)
	assert.Equal(t, RawInput{Name: "lbl_true", Access: parser.AccessArray, Expr: "lblTrue", Stage: 0}, lbl)

	nclass, ok := vocab.Lookup("Nclass")
	require.True(t, ok)
	assert.Equal(t, "classes", nclass.Follows)
	assert.Equal(t, parser.AccessScalar, nclass.Access)

	classes, ok := vocab.Lookup("classes")
	require.True(t, ok)
	assert.True(t, classes.Fallback)
	assert.Equal(t, "s.Classes", classes.Expr)

	assert.Equal(t, "classes", s.ClassList())
}

func TestValidateUnit(t *testing.T) {
	s := DefaultSchema()
	ok := &parser.Unit{
		Name:   "TPR",
		Label:  "TPR(Sensitivity)",
		Group:  parser.GroupClass,
		Inputs: []parser.Input{{Name: "TP", Access: parser.AccessArray}, {Name: "Nclass"}},
	}
	assert.NoError(t, s.ValidateUnit(ok))

	tests := map[string]*parser.Unit{
		"empty label":        {Name: "TPR", Group: parser.GroupClass},
		"leading digit":      {Name: "1TPR", Label: "x", Group: parser.GroupClass},
		"classes not common": {Name: "classes", Label: "Classes", Group: parser.GroupClass},
	}
	for name, u := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, s.ValidateUnit(u))
		})
	}
}

func TestLoadFullSchemaMergesProjectFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectFile), []byte(`#Unit: name: !="forbidden"`), 0o644))

	s, err := LoadFullSchema(dir)
	require.NoError(t, err)
	assert.Error(t, s.ValidateUnit(&parser.Unit{Name: "forbidden", Label: "x", Group: parser.GroupOverall}))
	assert.NoError(t, s.ValidateUnit(&parser.Unit{Name: "allowed", Label: "x", Group: parser.GroupOverall}))
}

func TestLoadFullSchemaWithoutProjectFile(t *testing.T) {
	s, err := LoadFullSchema(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "classes", s.ClassList())
}

func TestMergeCannotExtendRawInputs(t *testing.T) {
	s := DefaultSchema()
	err := s.Merge("extra.cue", []byte(`raw: weights: {access: "array", expr: "w", stage: 0}`))
	assert.Error(t, err)
}
