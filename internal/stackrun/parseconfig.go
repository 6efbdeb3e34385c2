package stackrun

import (
	"bufio"
	"fmt"

	"go.lepovirta.org/intstack/internal/file"
	"go.lepovirta.org/intstack/internal/osenv"
	"go.lepovirta.org/intstack/internal/stackrun/config"
)

func parseConfig(
	osEnv osenv.OsEnv,
	cliFlags *config.CliFlags,
	cfg *config.Config,
) error {
	if cliFlags.ProgramPath == config.StdinPath {
		return cfg.Parse(osEnv.EnvVars, osEnv.Stdin)
	}

	var fileReader file.Reader
	fileReader.Init(osEnv.Fs, 1)

	programFile, err := fileReader.Open(cliFlags.ProgramPath)
	if err != nil {
		_ = fileReader.Close()
		return fmt.Errorf(
			"failed to open program in path '%s': %w",
			cliFlags.ProgramPath,
			err,
		)
	}

	if err := cfg.Parse(osEnv.EnvVars, bufio.NewReader(programFile)); err != nil {
		_ = fileReader.Close()
		return err
	}
	return fileReader.Close()
}
