// Package script adapts github.com/google/cel-go as Comrade's embedded
// expression evaluator, the black-box collaborator spec.md §1 and §6
// describe: named host functions, boolean short-circuit ||, a
// boolean-typed top-level expression, and a print/trace sink.
//
// CEL has no statement-sequencing operator (no semicolons); a lock or
// unlock script that needs to run more than one side-effecting operator
// in order is written using && instead, which CEL also short-circuits.
// spec.md's literal example "push(a); push(b);" is expressed here as
// "push(a) && push(b)" — documented in DESIGN.md.
package script

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/sirupsen/logrus"
)

// ResultKind is the CEL return type a host Func produces.
type ResultKind int

const (
	// ResultBool is a boolean result (push and the check operators).
	ResultBool ResultKind = iota
	// ResultStr is a string result (branch).
	ResultStr
)

// Func is a host operator bound into the embedded expression evaluator:
// a fixed-arity function of string arguments returning either a bool or
// a string, matching spec.md §6's operator table.
type Func struct {
	Name    string
	Arity   int
	Returns ResultKind
	BoolFn  func(args []string) bool
	StrFn   func(args []string) string
}

// Evaluator is a compiled, ready-to-run binding of a fixed operator set.
// A new Evaluator is built for every stage transition and every try-lock
// clone, since the operators themselves close over a particular Context.
type Evaluator struct {
	env *cel.Env
}

// New builds an Evaluator with funcs registered, plus the always-on
// print/trace sink spec.md §6 requires of the embedded language.
func New(funcs []Func) (*Evaluator, error) {
	opts := make([]cel.EnvOption, 0, len(funcs)+1)
	opts = append(opts, declarePrint())
	for _, f := range funcs {
		opts = append(opts, declareFunc(f))
	}
	env, err := cel.NewEnv(opts...)
	if err != nil {
		return nil, fmt.Errorf("script: new env: %w", err)
	}
	return &Evaluator{env: env}, nil
}

// Run compiles expr and evaluates it, requiring a boolean top-level
// result (spec.md §6).
func (e *Evaluator) Run(expr string) (bool, error) {
	ast, iss := e.env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return false, fmt.Errorf("script: compile: %w", iss.Err())
	}
	prg, err := e.env.Program(ast)
	if err != nil {
		return false, fmt.Errorf("script: program: %w", err)
	}
	out, _, err := prg.Eval(cel.NoVars())
	if err != nil {
		return false, fmt.Errorf("script: eval: %w", err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("script: result %v is not boolean", out)
	}
	return result, nil
}

func declarePrint() cel.EnvOption {
	return cel.Function("print",
		cel.Overload("print_string", []*cel.Type{cel.StringType}, cel.BoolType,
			cel.UnaryBinding(func(arg ref.Val) ref.Val {
				msg, ok := arg.Value().(string)
				if !ok {
					return types.NewErr("print: argument is not a string")
				}
				logrus.WithField("component", "comrade/script").Debug(msg)
				return types.Bool(true)
			}),
		),
	)
}

func declareFunc(f Func) cel.EnvOption {
	argTypes := make([]*cel.Type, f.Arity)
	for i := range argTypes {
		argTypes[i] = cel.StringType
	}
	retType := cel.StringType
	if f.Returns == ResultBool {
		retType = cel.BoolType
	}

	bind := func(values ...ref.Val) ref.Val {
		args := make([]string, len(values))
		for i, v := range values {
			s, ok := v.Value().(string)
			if !ok {
				return types.NewErr("%s: argument %d is not a string", f.Name, i)
			}
			args[i] = s
		}
		if f.Returns == ResultBool {
			return types.Bool(f.BoolFn(args))
		}
		return types.String(f.StrFn(args))
	}

	overloadID := f.Name + "_overload"
	switch f.Arity {
	case 1:
		return cel.Function(f.Name, cel.Overload(overloadID, argTypes, retType,
			cel.UnaryBinding(func(a ref.Val) ref.Val { return bind(a) }),
		))
	case 2:
		return cel.Function(f.Name, cel.Overload(overloadID, argTypes, retType,
			cel.BinaryBinding(func(a, b ref.Val) ref.Val { return bind(a, b) }),
		))
	default:
		return cel.Function(f.Name, cel.Overload(overloadID, argTypes, retType,
			cel.FunctionBinding(bind),
		))
	}
}
