package formatter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marte-community/scorer-dev-tools/internal/parser"
)

func format(t *testing.T, src string) string {
	t.Helper()
	file, err := parser.NewParser("fmt.unit", src).Parse()
	require.NoError(t, err)
	var buf bytes.Buffer
	Format(file, &buf)
	return buf.String()
}

func TestFormatCanonicalLayout(t *testing.T) {
	src := `//Confusion based statistics


unit   class //TP(True positive/hit)
{ (*confusion_matrix,&Nclass) }   get_TP;
unit overall // Overall ACC
{
  // accuracy over every class
  ( *TP , *POP , &Nclass )
} get_overall_accuracy; // trailing
//end
`
	want := `// Confusion based statistics

unit class // TP(True positive/hit)
{
	(*confusion_matrix, &Nclass)
} get_TP;

unit overall // Overall ACC
{
	// accuracy over every class
	(*TP, *POP, &Nclass)
} get_overall_accuracy; // trailing

// end
`
	assert.Equal(t, want, format(t, src))
}

func TestFormatIsIdempotent(t *testing.T) {
	src := `// header
unit common // Population
{
	(*classes, &n_true)
} get_POP;
`
	once := format(t, src)
	assert.Equal(t, src, once)
	assert.Equal(t, once, format(t, once))
}

func TestFormatOnlyComments(t *testing.T) {
	assert.Equal(t, "// nothing yet\n", format(t, "//nothing yet\n"))
}
