package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/majin-ml/majin/internal/autodiff/ops"
)

func TestLoadFile_Neuron(t *testing.T) {
	def, err := LoadFile(filepath.Join("testdata", "neuron.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "neuron", def.Name)
	assert.Equal(t, "o", def.Root)
	require.Len(t, def.Nodes, 10)
	assert.True(t, def.Nodes[0].IsLeaf())
	assert.Equal(t, "mul", def.Nodes[5].Op)
	assert.Equal(t, []string{"x1", "w1"}, def.Nodes[5].Operands)
	assert.NoError(t, def.Validate())
}

func TestBuild_Neuron(t *testing.T) {
	def, err := LoadFile(filepath.Join("testdata", "neuron.yaml"))
	require.NoError(t, err)

	built, err := Build[float64](def)
	require.NoError(t, err)

	assert.Equal(t, "neuron", built.Name)
	assert.Equal(t, 10, built.Graph.Len())
	assert.Equal(t, "o", built.Root.Label())
	assert.Equal(t, ops.Tanh, built.Root.Op())
	assert.InDelta(t, 0.7071, built.Root.Value(), 1e-4)

	built.Root.Backward()

	assert.InDelta(t, -1.5, built.Nodes["x1"].Grad(), 1e-4)
	assert.InDelta(t, 0.5, built.Nodes["x2"].Grad(), 1e-4)
	assert.InDelta(t, 1.0, built.Nodes["w1"].Grad(), 1e-4)
	assert.InDelta(t, 0.0, built.Nodes["w2"].Grad(), 1e-4)
	assert.InDelta(t, 0.5, built.Nodes["b"].Grad(), 1e-4)
}

func TestBuild_SharedOperand(t *testing.T) {
	def, err := Parse([]byte(`
root: p
nodes:
  - {label: x, value: 1}
  - {label: y, value: 2}
  - {label: s, op: "+", operands: [x, y]}
  - {label: p, op: "*", operands: [s, s]}
`))
	require.NoError(t, err)

	built, err := Build[float64](def)
	require.NoError(t, err)
	built.Root.Backward()

	assert.Equal(t, 9.0, built.Root.Value())
	assert.Equal(t, 6.0, built.Nodes["s"].Grad())
	assert.Equal(t, 6.0, built.Nodes["x"].Grad())
}

func TestBuild_Variadic(t *testing.T) {
	def, err := Parse([]byte(`
root: total
nodes:
  - {label: a, value: 1}
  - {label: b, value: 2}
  - {label: c, value: 3}
  - {label: total, op: sum, operands: [a, b, c, a]}
`))
	require.NoError(t, err)

	built, err := Build[int64](def)
	require.NoError(t, err)
	built.Root.Backward()

	assert.Equal(t, int64(7), built.Root.Value())
	assert.Equal(t, int64(2), built.Nodes["a"].Grad())
	assert.Equal(t, int64(1), built.Nodes["c"].Grad())
}

func TestBuild_IntegerRejectsFraction(t *testing.T) {
	def, err := Parse([]byte(`
root: x
nodes:
  - {label: x, value: 1.5}
`))
	require.NoError(t, err)

	_, err = Build[int32](def)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidGraph))

	built, err := Build[float32](def)
	require.NoError(t, err)
	assert.Equal(t, float32(1.5), built.Root.Value())
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	def, err := LoadFile(filepath.Join("testdata", "invalid.yaml"))
	require.NoError(t, err)

	err = def.Validate()
	require.Error(t, err)

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	for _, e := range merr.Errors {
		assert.True(t, errors.Is(e, ErrInvalidGraph), "%v", e)
	}

	msg := err.Error()
	for _, want := range []string{
		`node 1 (a): label already used by node 0`,
		`node 2: empty label`,
		`node 3 (leafops): leaf with operands`,
		`node 4 (novalue): leaf without value`,
		`node 5 (valued): op node "add" must not set a value`,
		`node 6 (badop): "pow": unknown operation`,
		`node 7 (arity): tanh takes 1 operands, got 2`,
		`node 8 (forward): operand "later" is declared later`,
		`node 9 (undefined): undefined operand "ghost"`,
		`node 10 (self): operand "self" refers to the node itself`,
		`root "missing" is not a declared node`,
	} {
		assert.Contains(t, msg, want)
	}
	assert.Len(t, merr.Errors, 11)

	_, err = Build[float64](def)
	assert.Error(t, err)
}

func TestValidate_Empty(t *testing.T) {
	def := &GraphYAML{}

	err := def.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no nodes")
	assert.Contains(t, err.Error(), "root not set")
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse([]byte(`
root: x
nodes:
  - {label: x, value: 1, grad: 3}
`))
	assert.Error(t, err)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestMarshal_RoundTrip(t *testing.T) {
	def, err := LoadFile(filepath.Join("testdata", "neuron.yaml"))
	require.NoError(t, err)

	data, err := Marshal(def)
	require.NoError(t, err)

	again, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, def, again)
}
