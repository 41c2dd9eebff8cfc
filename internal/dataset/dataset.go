// Package dataset reads the metadata pickled next to each simulated dataset
// (train, vali, test).
package dataset

import (
	"math/big"

	"github.com/nlpodyssey/gopickle/pickle"
	"github.com/nlpodyssey/gopickle/types"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Info is the subset of info.p the prediction step consumes.
type Info struct {
	Path     string
	SegSites []int
}

// MaxSegSites returns the largest number of segregating sites simulated in
// the dataset, or 0 for an empty dataset.
func (i *Info) MaxSegSites() int {
	if len(i.SegSites) == 0 {
		return 0
	}
	return lo.Max(i.SegSites)
}

// Load unpickles an info.p file.
func Load(path string) (*Info, error) {
	obj, err := pickle.Load(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to unpickle %s", path)
	}
	dict, ok := obj.(*types.Dict)
	if !ok {
		return nil, errors.Errorf("%s: expected a dict, got %T", path, obj)
	}
	raw, ok := dict.Get("segSites")
	if !ok {
		return nil, errors.Errorf("%s: no segSites entry", path)
	}
	segSites, err := intSlice(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: segSites", path)
	}
	return &Info{Path: path, SegSites: segSites}, nil
}

// LoadAll loads every path, failing on the first unreadable one.
func LoadAll(paths ...string) ([]*Info, error) {
	infos := make([]*Info, 0, len(paths))
	for _, p := range paths {
		info, err := Load(p)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func intSlice(obj interface{}) ([]int, error) {
	var items []interface{}
	switch v := obj.(type) {
	case *types.List:
		for i := 0; i < v.Len(); i++ {
			items = append(items, v.Get(i))
		}
	case *types.Tuple:
		for i := 0; i < v.Len(); i++ {
			items = append(items, v.Get(i))
		}
	default:
		return nil, errors.Errorf("expected a list or tuple, got %T", obj)
	}

	out := make([]int, len(items))
	for i, item := range items {
		switch n := item.(type) {
		case int:
			out[i] = n
		case int64:
			out[i] = int(n)
		case *big.Int:
			if !n.IsInt64() {
				return nil, errors.Errorf("item %d overflows: %s", i, n)
			}
			out[i] = int(n.Int64())
		case float64:
			out[i] = int(n)
		case bool:
			out[i] = lo.Ternary(n, 1, 0)
		default:
			return nil, errors.Errorf("item %d is not a number: %T", i, item)
		}
	}
	return out, nil
}
