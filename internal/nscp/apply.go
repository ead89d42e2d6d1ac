package nscp

import (
	"fmt"

	errtree "github.com/Konstantin8105/errors"

	"github.com/alexiusacademia/goframe/internal/model"
)

// ApplyBeam returns a copy of the document with every load multiplied by
// the factor of its case. Loads whose factor is zero are dropped.
func ApplyBeam(doc *model.BeamDocument, lc LoadCombination) (*model.BeamDocument, error) {
	out := doc.Clone()
	loads, err := factorLoads(out.Loads, lc)
	if err != nil {
		return nil, err
	}
	out.Loads = loads
	out.Name = comboName(doc.Name, lc)
	return out, nil
}

// ApplyFrame is ApplyBeam for frame documents
func ApplyFrame(doc *model.FrameDocument, lc LoadCombination) (*model.FrameDocument, error) {
	out := doc.Clone()
	loads, err := factorLoads(out.Loads, lc)
	if err != nil {
		return nil, err
	}
	out.Loads = loads
	out.Name = comboName(doc.Name, lc)
	return out, nil
}

func factorLoads(loads []model.Load, lc LoadCombination) ([]model.Load, error) {
	et := errtree.New("load cases")
	out := make([]model.Load, 0, len(loads))
	for i, l := range loads {
		f, ok := lc.Factor(l.Case)
		if !ok {
			et.Add(fmt.Errorf("load %d: unknown load case %q", i+1, l.Case))
			continue
		}
		if f == 0 {
			continue
		}
		out = append(out, l.Scaled(f))
	}
	if et.IsError() {
		return nil, &model.InputError{Err: et}
	}
	return out, nil
}

func comboName(name string, lc LoadCombination) string {
	if name == "" {
		return lc.Description
	}
	return name + " [" + lc.Description + "]"
}
