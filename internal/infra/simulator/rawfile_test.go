package simulator

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yrrapt/yaaade/internal/domain"
)

func TestReadRawFile_Transient(t *testing.T) {
	res, err := ReadRawFile(filepath.Join("testdata", "tran.raw"))
	require.NoError(t, err)

	require.Equal(t, "Transient Analysis", res.Plotname)
	require.False(t, res.Complex)
	require.Equal(t, "time", res.Scale.Name)
	require.Equal(t, []float64{0, 1e-9, 2e-9}, res.Scale.Values)
	require.Len(t, res.Traces, 2)

	out, ok := res.Trace("v(out)")
	require.True(t, ok)
	require.Equal(t, "voltage", out.Unit)
	require.Equal(t, []float64{0, 1.8, 1.2}, out.Values)
}

func TestReadRawFile_ComplexMagnitude(t *testing.T) {
	res, err := ReadRawFile(filepath.Join("testdata", "ac.raw"))
	require.NoError(t, err)

	require.True(t, res.Complex)
	require.Equal(t, []float64{1, 10}, res.Scale.Values)
	out, ok := res.Trace("v(out)")
	require.True(t, ok)
	require.InDeltaSlice(t, []float64{5, 1}, out.Values, 1e-12)
}

func TestReadRawFile_Missing(t *testing.T) {
	_, err := ReadRawFile(filepath.Join(t.TempDir(), "nope.raw"))
	require.True(t, domain.IsKind(err, domain.KindNotFound), "got %v", err)
}

func TestParseRaw_TruncatedValuesKeepsCompletePoints(t *testing.T) {
	raw := `Plotname: Transient Analysis
No. Variables: 2
No. Points: 10
Variables:
	0	time	time
	1	v(a)	voltage
Values:
 0	0
	1
 1	1e-9
	2
 2	2e-9
`
	res, err := ParseRaw(strings.NewReader(raw))
	require.NoError(t, err)
	require.Equal(t, 2, res.Points())
	require.Equal(t, []float64{1, 2}, res.Traces[0].Values)
}

func TestParseRaw_StopsAtNextPlot(t *testing.T) {
	raw := `Plotname: Operating Point
No. Variables: 2
No. Points: 1
Variables:
	0	v(a)	voltage
	1	v(b)	voltage
Values:
 0	1.0
	2.0
Title: second
Plotname: Transient Analysis
No. Variables: 2
`
	res, err := ParseRaw(strings.NewReader(raw))
	require.NoError(t, err)
	require.Equal(t, "Operating Point", res.Plotname)
	require.Equal(t, []float64{2}, res.Traces[0].Values)
}

func TestParseRaw_Errors(t *testing.T) {
	cases := map[string]string{
		"no variables": "Plotname: x\nValues:\n",
		"binary":       "No. Variables: 1\nVariables:\n\t0\ttime\ttime\nBinary:\n",
		"bad value":    "No. Variables: 1\nNo. Points: 1\nVariables:\n\t0\ttime\ttime\nValues:\n 0\tabc\n",
		"no values":    "No. Variables: 1\nVariables:\n\t0\ttime\ttime\n",
		"bad count":    "No. Variables: many\n",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseRaw(strings.NewReader(raw))
			require.Error(t, err)
		})
	}
}
