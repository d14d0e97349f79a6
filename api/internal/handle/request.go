package handle

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"bfhl/api/internal/config"
	"bfhl/api/internal/validate"
)

type Op string

const (
	OpFibonacci Op = "fibonacci"
	OpPrime     Op = "prime"
	OpLCM       Op = "lcm"
	OpHCF       Op = "hcf"
	OpAI        Op = "AI"
)

var knownOps = []Op{OpFibonacci, OpPrime, OpLCM, OpHCF, OpAI}

// Request is the validated form of a /bfhl body. Only the field that
// belongs to Op is set.
type Request struct {
	Op       Op
	N        int
	Values   []int64
	Question string
}

// ParseRequest decodes body, enforces the exactly-one-key rule and
// validates the value of that key. All failures are *validate.Error.
func ParseRequest(body []byte, lim config.Limits) (Request, error) {
	obj, err := decodeObject(body)
	if err != nil {
		return Request{}, err
	}

	var active []Op
	for _, op := range knownOps {
		if _, ok := obj[string(op)]; ok {
			active = append(active, op)
		}
	}
	if len(active) != 1 {
		return Request{}, &validate.Error{Msg: validate.MsgExactlyOneKey}
	}

	req := Request{Op: active[0]}
	v := obj[string(req.Op)]
	switch req.Op {
	case OpFibonacci:
		req.N, err = validate.Fibonacci(v, lim)
	case OpPrime, OpLCM, OpHCF:
		req.Values, err = validate.Array(v, string(req.Op), lim)
	case OpAI:
		req.Question, err = validate.Question(v, lim)
	}
	if err != nil {
		return Request{}, err
	}
	return req, nil
}

// decodeObject accepts an object or an array at the top level; an array
// has no keys. An empty body counts as an empty object.
func decodeObject(body []byte) (map[string]any, error) {
	invalid := &validate.Error{Msg: validate.MsgInvalidJSON}

	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return map[string]any{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, invalid
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, invalid
	}

	switch t := v.(type) {
	case map[string]any:
		return t, nil
	case []any:
		return map[string]any{}, nil
	default:
		return nil, invalid
	}
}
