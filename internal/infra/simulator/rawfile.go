package simulator

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/yrrapt/yaaade/internal/domain"
)

// ReadRawFile parses the first plot of an ASCII (nutmeg) raw file, the
// output format shared by ngspice, Xyce and Spectre's nutascii mode.
func ReadRawFile(path string) (domain.Results, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Results{}, &domain.OpError{
			Op:   "simulator.read_results",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}
	defer f.Close()

	res, err := ParseRaw(f)
	if err != nil {
		return domain.Results{}, &domain.OpError{
			Op:   "simulator.read_results",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}
	return res, nil
}

type rawVar struct {
	name string
	unit string
}

// ParseRaw reads one ASCII raw plot. Complex values are reduced to their
// magnitude. A truncated Values section keeps the complete points only.
func ParseRaw(r io.Reader) (domain.Results, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var (
		res      domain.Results
		nVars    = -1
		nPoints  = -1
		vars     []rawVar
		values   []string
		inValues bool
	)

	for sc.Scan() {
		line := sc.Text()
		trimmed := strings.TrimSpace(line)

		if inValues {
			if strings.HasPrefix(trimmed, "Title:") || strings.HasPrefix(trimmed, "Plotname:") {
				break // next plot
			}
			values = append(values, strings.Fields(trimmed)...)
			continue
		}

		key, val, ok := strings.Cut(trimmed, ":")
		if !ok {
			continue
		}
		val = strings.TrimSpace(val)

		switch strings.ToLower(key) {
		case "title":
			res.Title = val
		case "plotname":
			res.Plotname = val
		case "flags":
			res.Complex = strings.Contains(strings.ToLower(val), "complex")
		case "no. variables":
			n, err := strconv.Atoi(val)
			if err != nil {
				return domain.Results{}, fmt.Errorf("bad variable count %q", val)
			}
			nVars = n
		case "no. points":
			n, err := strconv.Atoi(val)
			if err != nil {
				return domain.Results{}, fmt.Errorf("bad point count %q", val)
			}
			nPoints = n
		case "variables":
			if nVars <= 0 {
				return domain.Results{}, errors.New("variables listed before a valid variable count")
			}
			var err error
			vars, err = scanVariables(sc, val, nVars)
			if err != nil {
				return domain.Results{}, err
			}
		case "values":
			inValues = true
			values = append(values, strings.Fields(val)...)
		case "binary":
			return domain.Results{}, errors.New("binary raw files are not supported; use ASCII output")
		}
	}
	if err := sc.Err(); err != nil {
		return domain.Results{}, err
	}
	if len(vars) == 0 {
		return domain.Results{}, errors.New("no variables section")
	}
	if !inValues {
		return domain.Results{}, errors.New("no values section")
	}

	stride := len(vars) + 1
	avail := len(values) / stride
	if nPoints < 0 || avail < nPoints {
		nPoints = avail
	}

	columns := make([][]float64, len(vars))
	for i := range columns {
		columns[i] = make([]float64, 0, nPoints)
	}
	for p := 0; p < nPoints; p++ {
		row := values[p*stride : (p+1)*stride]
		// row[0] is the point index
		for i, tok := range row[1:] {
			v, err := parseRawValue(tok)
			if err != nil {
				return domain.Results{}, fmt.Errorf("point %d, %s: %w", p, vars[i].name, err)
			}
			columns[i] = append(columns[i], v)
		}
	}

	res.Scale = domain.Trace{Name: vars[0].name, Unit: vars[0].unit, Values: columns[0]}
	for i := 1; i < len(vars); i++ {
		res.Traces = append(res.Traces, domain.Trace{Name: vars[i].name, Unit: vars[i].unit, Values: columns[i]})
	}
	return res, nil
}

// scanVariables reads the n "index name unit" entries. The first one may sit
// on the "Variables:" line itself (rest).
func scanVariables(sc *bufio.Scanner, rest string, n int) ([]rawVar, error) {
	vars := make([]rawVar, 0, n)
	add := func(line string) error {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return fmt.Errorf("malformed variable line %q", line)
		}
		vars = append(vars, rawVar{name: fields[1], unit: fields[2]})
		return nil
	}

	if strings.TrimSpace(rest) != "" {
		if err := add(rest); err != nil {
			return nil, err
		}
	}
	for len(vars) < n && sc.Scan() {
		if strings.TrimSpace(sc.Text()) == "" {
			continue
		}
		if err := add(sc.Text()); err != nil {
			return nil, err
		}
	}
	if len(vars) != n {
		return nil, fmt.Errorf("expected %d variables, got %d", n, len(vars))
	}
	return vars, nil
}

func parseRawValue(tok string) (float64, error) {
	re, im, complexVal := strings.Cut(tok, ",")
	r, err := strconv.ParseFloat(re, 64)
	if err != nil {
		return 0, fmt.Errorf("bad value %q", tok)
	}
	if !complexVal {
		return r, nil
	}
	i, err := strconv.ParseFloat(im, 64)
	if err != nil {
		return 0, fmt.Errorf("bad value %q", tok)
	}
	return math.Hypot(r, i), nil
}
