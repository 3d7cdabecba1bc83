package hcl

import (
	"fmt"
	"math"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// evalNumber evaluates expr and converts the result to a finite float64.
// Strings holding numbers are accepted through cty's implicit conversion.
func evalNumber(expr hcl.Expression, evalCtx *hcl.EvalContext) (float64, error) {
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return 0, diags
	}
	if !val.IsKnown() || val.IsNull() {
		return 0, fmt.Errorf("value must be a known, non-null number")
	}

	num, err := convert.Convert(val, cty.Number)
	if err != nil {
		return 0, fmt.Errorf("cannot convert %s to number: %w", val.Type().FriendlyName(), err)
	}

	var f float64
	if err := gocty.FromCtyValue(num, &f); err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("value %v is not a finite number", f)
	}
	return f, nil
}
