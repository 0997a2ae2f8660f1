package journalsvc

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/cel-go/cel"
)

// celFilter wraps a compiled CEL program shared by range queries and
// replay. When disabled, Eval always returns true.
type celFilter struct {
	prog    cel.Program
	enabled bool
}

func newCELFilter(expr string) (celFilter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return celFilter{enabled: false}, nil
	}
	env, err := cel.NewEnv(
		cel.Variable("sequence", cel.IntType),
		cel.Variable("ts_ms", cel.IntType),
		cel.Variable("size", cel.IntType),
		cel.Variable("text", cel.StringType),
		// Expose parsed JSON payload (map/list/values) for field filtering
		cel.Variable("json", cel.DynType),
		// Current time in ms for windowed filters
		cel.Variable("now_ms", cel.IntType),
	)
	if err != nil {
		return celFilter{}, err
	}
	ast, iss := env.Parse(expr)
	if iss != nil && iss.Err() != nil {
		return celFilter{}, iss.Err()
	}
	checked, iss2 := env.Check(ast)
	if iss2 != nil && iss2.Err() != nil {
		return celFilter{}, iss2.Err()
	}
	prog, err := env.Program(checked)
	if err != nil {
		return celFilter{}, err
	}
	return celFilter{prog: prog, enabled: true}, nil
}

// Eval evaluates the compiled expression against an entry. When disabled,
// returns true; an evaluation error drops the entry.
func (f celFilter) Eval(seq uint64, ts time.Time, payload []byte) bool {
	if !f.enabled {
		return true
	}
	var jsonObj any
	_ = json.Unmarshal(payload, &jsonObj)
	out, _, err := f.prog.Eval(map[string]any{
		"sequence": int64(seq),
		"ts_ms":    ts.UnixMilli(),
		"size":     int64(len(payload)),
		"text":     string(payload),
		"json":     jsonObj,
		"now_ms":   time.Now().UnixMilli(),
	})
	if err != nil {
		return false
	}
	b, ok := out.Value().(bool)
	return ok && b
}
