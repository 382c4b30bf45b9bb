package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productGraph = `name: product
root: c
nodes:
  - {label: a, value: 2}
  - {label: b, value: -3}
  - {label: c, op: mul, operands: [a, b]}
`

const danglingGraph = `name: dangling
root: o
nodes:
  - {label: x1, value: 2}
  - {label: x2, value: 0}
  - {label: w1, value: -3}
  - {label: w2, value: 1}
  - {label: b, value: 6.8813735870195432}
  - {label: n, op: sum, operands: [x1w1, x2w2, b]}
  - {label: o, op: tanh, operands: [n]}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// run executes the root command with an isolated home directory.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "majin "+version+"\n", out)
}

func TestTrace(t *testing.T) {
	path := writeFile(t, "product.yaml", productGraph)

	out, err := run(t, "trace", path)
	require.NoError(t, err)
	assert.Equal(t, "Node 2: Value: -6\nNode 0: Value: 2\nNode 1: Value: -3\n\nEdges:\n0 -> 2\n1 -> 2\n", out)
}

func TestGrad_ASCII(t *testing.T) {
	path := writeFile(t, "product.yaml", productGraph)

	out, err := run(t, "grad", "--format", "ascii", path)
	require.NoError(t, err)
	assert.Contains(t, out, "grad 2 (c): 1\n")
	assert.Contains(t, out, "grad 0 (a): -3\n")
	assert.Contains(t, out, "grad 1 (b): 2\n")
}

func TestGrad_Table(t *testing.T) {
	path := writeFile(t, "product.yaml", productGraph)

	out, err := run(t, "grad", path)
	require.NoError(t, err)
	for _, col := range []string{"ID", "LABEL", "OP", "VALUE", "GRAD", "OPERANDS"} {
		assert.Contains(t, out, col)
	}
	assert.Contains(t, out, "a, b")
}

func TestGrad_Int64(t *testing.T) {
	path := writeFile(t, "product.yaml", productGraph)

	out, err := run(t, "grad", "--dtype", "int64", "-o", "ascii", path)
	require.NoError(t, err)
	assert.Contains(t, out, "grad 0 (a): -3\n")
}

func TestGrad_Int64RejectsFraction(t *testing.T) {
	path := writeFile(t, "half.yaml", `root: y
nodes:
  - {label: x, value: 0.5}
  - {label: y, op: neg, operands: [x]}
`)

	_, err := run(t, "grad", "--dtype", "int64", path)
	assert.ErrorContains(t, err, "not representable")
}

func TestGrad_DTypeFromEnv(t *testing.T) {
	path := writeFile(t, "half.yaml", `root: y
nodes:
  - {label: x, value: 0.5}
  - {label: y, op: neg, operands: [x]}
`)
	t.Setenv("MAJIN_DTYPE", "int64")

	_, err := run(t, "grad", path)
	assert.ErrorContains(t, err, "not representable")
}

func TestGrad_FormatFromConfig(t *testing.T) {
	path := writeFile(t, "product.yaml", productGraph)
	cfg := writeFile(t, "majin.yaml", "format: ascii\n")

	out, err := run(t, "--config", cfg, "grad", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Edges:\n")
}

func TestGrad_Errors(t *testing.T) {
	path := writeFile(t, "product.yaml", productGraph)

	_, err := run(t, "grad", "--format", "svg", path)
	assert.ErrorContains(t, err, "unsupported format")

	_, err = run(t, "grad", "--dtype", "complex128", path)
	assert.ErrorContains(t, err, "unsupported dtype")

	_, err = run(t, "grad", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = run(t, "grad")
	assert.Error(t, err)
}

func TestGrad_InvalidGraphReportsAllProblems(t *testing.T) {
	path := writeFile(t, "bad.yaml", danglingGraph)

	_, err := run(t, "grad", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `undefined operand "x1w1"`)
	assert.Contains(t, err.Error(), `undefined operand "x2w2"`)
}

func TestCheck(t *testing.T) {
	path := writeFile(t, "neuron.yaml", `root: o
nodes:
  - {label: x1, value: 2}
  - {label: x2, value: 0}
  - {label: w1, value: -3}
  - {label: w2, value: 1}
  - {label: b, value: 6.8813735870195432}
  - {label: x1w1, op: mul, operands: [x1, w1]}
  - {label: x2w2, op: mul, operands: [x2, w2]}
  - {label: n, op: sum, operands: [x1w1, x2w2, b]}
  - {label: o, op: tanh, operands: [n]}
`)

	out, err := run(t, "check", "--workers", "2", path)
	require.NoError(t, err)
	for _, leaf := range []string{"x1", "x2", "w1", "w2", "b"} {
		assert.Contains(t, out, leaf)
	}
	assert.NotContains(t, out, "FAIL")
}

func TestCheck_FailsOutsideTolerance(t *testing.T) {
	path := writeFile(t, "relu.yaml", `root: y
nodes:
  - {label: x, value: 0}
  - {label: y, op: relu, operands: [x]}
`)

	// The kink at 0 gives a numeric slope of 0.5.
	out, err := run(t, "check", "--epsilon", "0.001", path)
	assert.ErrorContains(t, err, "gradient check failed for 1 of 1 leaves")
	assert.Contains(t, out, "FAIL")
}

func TestCheck_RejectsIntegerDType(t *testing.T) {
	path := writeFile(t, "product.yaml", productGraph)

	_, err := run(t, "check", "--dtype", "int64", path)
	assert.ErrorContains(t, err, "float dtype")
}

func TestFmt(t *testing.T) {
	path := writeFile(t, "product.yaml", `# product of two leaves
root: c
name: product
nodes:
- label: a
  value: 2
- {label: b, value: -3}
- {operands: [a, b], op: mul, label: c}
`)

	out, err := run(t, "fmt", path)
	require.NoError(t, err)
	assert.Equal(t, `name: product
root: c
nodes:
  - label: a
    value: 2
  - label: b
    value: -3
  - label: c
    op: mul
    operands:
      - a
      - b
`, out)

	// Canonical output formats to itself.
	again, err := run(t, "fmt", writeFile(t, "canonical.yaml", out))
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestFmt_RejectsInvalid(t *testing.T) {
	path := writeFile(t, "bad.yaml", danglingGraph)

	out, err := run(t, "fmt", path)
	assert.ErrorContains(t, err, `undefined operand "x1w1"`)
	assert.Empty(t, out)
}
