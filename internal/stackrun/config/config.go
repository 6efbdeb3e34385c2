package config

import (
	"encoding/json"
	"fmt"
	"io"

	"go.lepovirta.org/intstack/internal/duration"
	"go.lepovirta.org/intstack/internal/envvar"
	"go.lepovirta.org/intstack/internal/matcher"
	"go.lepovirta.org/intstack/internal/validation"
)

const (
	AppName            = "intstack"
	defaultProgramName = "main"
)

// Config is a set of stack programs that are run independently
// of each other. Each program owns its own stack.
type Config struct {
	// Timeout limits how long running all of the programs may take.
	// Zero means no limit.
	Timeout duration.D `json:"timeout"`

	// Programs contains the stack programs to run.
	Programs []Program `json:"programs"`
}

// Program creates a stack and applies a sequence of steps to it.
type Program struct {
	// Name identifies the program in output and logs.
	// Default is "main" when a config contains a single program.
	Name string `json:"name"`

	// Capacity creates an empty stack with the given capacity.
	// Mutually exclusive with Seed.
	Capacity *int `json:"capacity"`

	// Seed creates a stack from existing elements.
	// Mutually exclusive with Capacity.
	Seed *Seed `json:"seed"`

	// Steps are applied to the stack in order.
	Steps []Step `json:"steps"`
}

// Seed specifies the initial contents of a stack. The capacity of the
// stack is the number of elements and the first Count elements are
// placed on the stack, with the last of them on top.
type Seed struct {
	Elements []int `json:"elements"`
	Count    int   `json:"count"`
}

// Step is a single operation applied to a stack.
type Step struct {
	// Op is the stack operation to perform.
	Op Op `json:"op"`

	// Value is the operand of a push.
	Value Value `json:"value"`

	// Expect is matched against the textual result of the step.
	// An empty matcher accepts any result.
	Expect matcher.M `json:"expect"`

	// When Fails is set to `true`, the step is expected to be rejected
	// by the stack, e.g. a pop on an empty stack.
	Fails bool `json:"fails"`
}

/////////////////////////////////////////////////
// Environment variable substitution
/////////////////////////////////////////////////

func (this *Program) resolveEnvVars(envVars map[string]string, v *validation.V) {
	stepsV := v.Sub("steps")
	for i := range this.Steps {
		if err := this.Steps[i].Value.resolve(envVars); err != nil {
			stepsV.IndexedSub(i).FailF("value", "%s", err)
		}
	}
}

func (this *Config) resolveEnvVars(envVars map[string]string, v *validation.V) {
	programsV := v.Sub("programs")
	for i := range this.Programs {
		this.Programs[i].resolveEnvVars(envVars, programsV.IndexedSub(i))
	}
}

/////////////////////////////////////////////////
// Validation
/////////////////////////////////////////////////

func (this *Config) validate(v *validation.V) {
	v.FailWhen(
		this.Timeout.Nanoseconds() < 0,
		"timeout",
		"must not be negative",
	)
	v.FailWhen(
		len(this.Programs) == 0,
		"programs",
		"at least one program must be specified",
	)

	names := make(map[string]int, len(this.Programs))
	programsV := v.Sub("programs")
	for i := range this.Programs {
		program := &this.Programs[i]
		programV := programsV.IndexedSub(i)
		program.validate(programV)

		if program.Name == "" {
			continue
		}
		if first, ok := names[program.Name]; ok {
			programV.FailF("name", "name %s is already used by program %d", program.Name, first)
		} else {
			names[program.Name] = i
		}
	}
}

func (this *Program) validate(v *validation.V) {
	v.FailWhen(
		this.Name == "",
		"name",
		"name cannot be an empty string",
	)
	v.FailWhen(
		this.Capacity == nil && this.Seed == nil,
		"capacity/seed",
		"either capacity or seed must be specified",
	)
	v.FailWhen(
		this.Capacity != nil && this.Seed != nil,
		"capacity/seed",
		"capacity and seed cannot be specified at the same time",
	)
	if this.Capacity != nil {
		v.FailFWhen(
			*this.Capacity < 0,
			"capacity",
			"capacity %d must not be negative",
			*this.Capacity,
		)
	}
	if this.Seed != nil {
		this.Seed.validate(v.Sub("seed"))
	}
	v.FailWhen(
		len(this.Steps) == 0,
		"steps",
		"at least one step must be specified",
	)

	stepsV := v.Sub("steps")
	for i := range this.Steps {
		this.Steps[i].validate(stepsV.IndexedSub(i))
	}
}

func (this *Seed) validate(v *validation.V) {
	v.FailWhen(
		this.Elements == nil,
		"elements",
		"elements must be specified",
	)
	v.FailFWhen(
		this.Count < 0 || this.Count > len(this.Elements),
		"count",
		"count %d must be between 0 and %d",
		this.Count,
		len(this.Elements),
	)
}

func (this *Step) validate(v *validation.V) {
	switch this.Op {
	case OpUndefined:
		v.Fail("op", "op must be specified")
	case OpPush:
		v.FailWhen(
			!this.Value.IsSet(),
			"value",
			"push requires a value",
		)
	case OpPop, OpTop, OpLen, OpCapacity, OpEmpty, OpFull, OpHash, OpString, OpClone:
		v.FailFWhen(
			this.Value.IsSet(),
			"value",
			"%s does not take a value",
			this.Op,
		)
	default:
		v.FailF("op", "unexpected op %s", this.Op)
	}
	v.FailWhen(
		this.Fails && !this.Expect.IsEmpty(),
		"expect",
		"a failing step cannot have an expected result",
	)
}

/////////////////////////////////////////////////
// Parsing
/////////////////////////////////////////////////

func (this *Config) Parse(
	envVars envvar.Vars,
	program io.Reader,
) error {
	var temp struct {
		Program
		Config
	}

	// Read program stream (JSON)
	if err := json.NewDecoder(program).Decode(&temp); err != nil {
		return fmt.Errorf("failed to parse program: %w", err)
	}

	// No program list specified, so we assume there's a single program
	if len(temp.Config.Programs) == 0 {
		if temp.Program.Name == "" {
			temp.Program.Name = defaultProgramName
		}
		temp.Config.Programs = []Program{temp.Program}
	}

	if err := temp.Config.parse(envVars); err != nil {
		return err
	}
	*this = temp.Config
	return nil
}

func (this *Config) parse(envVars envvar.Vars) error {
	var v validation.V
	v.Init()

	// Resolve any environment variables used in values
	this.resolveEnvVars(envVars.ToMap(), &v)

	// Validate the config
	this.validate(&v)
	return v.ToError()
}
