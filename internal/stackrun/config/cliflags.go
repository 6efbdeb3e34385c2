package config

import (
	"flag"
	"fmt"
	"io"

	"go.lepovirta.org/intstack/internal/envvar"
)

const StdinPath = "-"

type CliFlags struct {
	Run         bool
	Json        bool
	Parallelism int
	ProgramPath string
}

func (this *CliFlags) validate() error {
	if this.ProgramPath == "" {
		return fmt.Errorf("program path not specified")
	}
	if this.Parallelism < 0 {
		return fmt.Errorf("parallelism must not be negative")
	}
	return nil
}

func (this *CliFlags) Parse(
	envVars envvar.Vars,
	args []string,
	output io.Writer,
) error {
	var flagSet flag.FlagSet
	flagSet.Init(AppName, flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprintf(
			flagSet.Output(),
			"Usage: %s [-program <path>] [-run] [-json] [-parallelism <n>] [-h | --help]\n\nOptions:\n",
			args[0],
		)
		flagSet.PrintDefaults()
	}

	flagSet.BoolVar(
		&this.Run,
		"run",
		false,
		"Run the stack programs. If not enabled, a dry run will be executed instead.",
	)
	flagSet.BoolVar(
		&this.Json,
		"json",
		false,
		"Print the final state of each stack as JSON after running the programs.",
	)
	flagSet.IntVar(
		&this.Parallelism,
		"parallelism",
		0,
		"Maximum number of programs to run at the same time. Zero means no limit.",
	)
	flagSet.StringVar(
		&this.ProgramPath,
		"program",
		"",
		"Path to a stack program file. Use '-' to read from STDIN. By default, the program is read from STDIN.",
	)

	if err := flagSet.Parse(args[1:]); err != nil {
		return err
	}

	// Fall back to env vars
	if this.ProgramPath == "" {
		this.ProgramPath = envVars.GetForAppOr(AppName, "PROGRAM_PATH", StdinPath)
	}
	if !this.Run {
		this.Run = envVars.GetForApp(AppName, "RUN") == "true"
	}
	return this.validate()
}
