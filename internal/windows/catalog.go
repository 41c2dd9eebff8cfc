package windows

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Record is one line of windowSizes.txt, written when the network was trained.
type Record struct {
	Chrom      string
	Samples    int
	WindowSize int
	MinSnps    int
	MeanSnps   int
	MaxSnps    int
	Bins       int // 0 when the file has no bin count column
}

// Catalog lists the records in file order.
type Catalog []Record

// LoadCatalog reads the window size file at path.
func LoadCatalog(path string) (Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open window size file")
	}
	defer f.Close()
	c, err := ParseCatalog(f)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to parse %s", path)
	}
	return c, nil
}

// ParseCatalog reads whitespace separated lines of
// chrom samples windowSize minSnps meanSnps maxSnps [bins].
func ParseCatalog(r io.Reader) (Catalog, error) {
	var c Catalog
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		ar := strings.Fields(sc.Text())
		if len(ar) == 0 {
			continue
		}
		if len(ar) < 6 {
			return nil, errors.Errorf("line %d: expected at least 6 columns, got %d", line, len(ar))
		}
		vals := make([]int, len(ar)-1)
		for i, s := range ar[1:] {
			v, err := strconv.Atoi(s)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d column %d", line, i+2)
			}
			vals[i] = v
		}
		rec := Record{
			Chrom:      ar[0],
			Samples:    vals[0],
			WindowSize: vals[1],
			MinSnps:    vals[2],
			MeanSnps:   vals[3],
			MaxSnps:    vals[4],
		}
		if len(vals) > 5 {
			rec.Bins = vals[5]
		}
		if rec.WindowSize <= 0 {
			return nil, errors.Errorf("line %d: window size must be a positive integer, got %d", line, rec.WindowSize)
		}
		c = append(c, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(c) == 0 {
		return nil, errors.New("no chromosomes listed")
	}
	return c, nil
}

func (c Catalog) MaxSnps() int {
	return lo.Max(lo.Map(c, func(r Record, _ int) int { return r.MaxSnps }))
}

func (c Catalog) MaxMeanSnps() int {
	return lo.Max(lo.Map(c, func(r Record, _ int) int { return r.MeanSnps }))
}

func (c Catalog) MaxWindowSize() int {
	return lo.Max(lo.Map(c, func(r Record, _ int) int { return r.WindowSize }))
}

func (c Catalog) Chroms() []string {
	return lo.Map(c, func(r Record, _ int) string { return r.Chrom })
}
