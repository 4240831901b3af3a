package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marte-community/scorer-dev-tools/internal/index"
	"github.com/marte-community/scorer-dev-tools/internal/parser"
	"github.com/marte-community/scorer-dev-tools/internal/schema"
)

func validate(t *testing.T, files map[string]string) *Validator {
	t.Helper()
	catalog := index.NewCatalog()
	// Add in a fixed order so duplicate reporting is stable.
	for _, name := range []string{"a.unit", "b.unit"} {
		src, ok := files[name]
		if !ok {
			continue
		}
		f, err := parser.NewParser(name, src).Parse()
		require.NoError(t, err)
		catalog.AddFile(name, f)
	}
	v, err := NewValidator(catalog, schema.DefaultSchema())
	require.NoError(t, err)
	v.Validate()
	return v
}

func TestValidateClean(t *testing.T) {
	v := validate(t, map[string]string{"a.unit": `
unit common // Classes
{
	(*lbl_true, *lbl_pred)
} get_classes;

unit class // Population
{
	(*classes, &n_true)
} get_POP;
`})
	assert.Empty(t, v.Diagnostics)
	assert.False(t, v.HasErrors())
	assert.NoError(t, v.Err())
}

func TestValidateClassListGroup(t *testing.T) {
	v := validate(t, map[string]string{"a.unit": `
unit overall // Classes
{
	(*lbl_true)
} get_classes;
`})
	require.True(t, v.HasErrors())
	require.NotEmpty(t, v.Diagnostics)
	for _, d := range v.Diagnostics {
		assert.Equal(t, "schema", d.Code)
	}
	d := v.Diagnostics[0]
	assert.Contains(t, d.Message, "unit 'classes' violates the schema")
	assert.Equal(t, "a.unit", d.File)
	assert.Equal(t, parser.Position{Line: 2, Column: 1}, d.Position)
}

func TestValidateDuplicates(t *testing.T) {
	v := validate(t, map[string]string{
		"a.unit": "unit overall // One\n{\n\t()\n} get_one;\n",
		"b.unit": "\n\nunit overall // One again\n{\n\t()\n} get_one;\n",
	})
	require.Len(t, v.Diagnostics, 1)
	d := v.Diagnostics[0]
	assert.Equal(t, "duplicate_unit", d.Code)
	assert.Equal(t, "b.unit", d.File)
	assert.Equal(t, 3, d.Position.Line)
	assert.Contains(t, d.Message, "already declared at a.unit:1:1")
}

func TestValidateRawInputs(t *testing.T) {
	v := validate(t, map[string]string{"a.unit": `
unit overall // Shadow
{
	()
} get_n_true;

unit overall // Wrong tag
{
	(&lbl_true, *Nclass)
} get_wrong;
`})
	codes := make([]string, len(v.Diagnostics))
	for i, d := range v.Diagnostics {
		codes[i] = d.Code
	}
	assert.Equal(t, []string{"shadowed_raw_input", "raw_access", "raw_access"}, codes)
	assert.Contains(t, v.Diagnostics[1].Message, "must be declared *lbl_true")
	assert.Equal(t, parser.Position{Line: 9, Column: 3}, v.Diagnostics[1].Position)
}

func TestValidateFallbackClassList(t *testing.T) {
	// Without a classes unit the class list is a raw array.
	v := validate(t, map[string]string{"a.unit": "unit overall // Count\n{\n\t(&classes)\n} get_count;\n"})
	require.Len(t, v.Diagnostics, 1)
	assert.Equal(t, "raw_access", v.Diagnostics[0].Code)

	v = validate(t, map[string]string{"a.unit": "unit overall // Count\n{\n\t(*classes)\n} get_count;\n"})
	assert.Empty(t, v.Diagnostics)
}

func TestErrWrapsMalformedDeclaration(t *testing.T) {
	v := validate(t, map[string]string{"a.unit": "unit overall // Bad\n{\n\t(*n_lbl)\n} get_bad;\n"})
	err := v.Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, parser.ErrMalformedDeclaration))

	var verr *Error
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Diagnostics, 1)
	assert.Equal(t, "a.unit:3:3: ERROR: raw input 'n_lbl' of unit 'bad' must be declared &n_lbl (scalar)", err.Error())
}
