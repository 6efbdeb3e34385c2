package stackrun

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"

	"github.com/rs/zerolog"
	"go.lepovirta.org/intstack/internal/intstack"
	"go.lepovirta.org/intstack/internal/logging"
	"go.lepovirta.org/intstack/internal/osenv"
	"go.lepovirta.org/intstack/internal/sighandle"
	"go.lepovirta.org/intstack/internal/stackrun/config"
	"golang.org/x/sync/errgroup"
)

type Core struct {
	osEnv    osenv.OsEnv
	cliFlags config.CliFlags
	cfg      config.Config
}

func (this *Core) Init(osEnv osenv.OsEnv) error {
	this.osEnv = osEnv

	var logConfig logging.Config
	logConfig.FromEnv(config.AppName, this.osEnv.EnvVars)
	logConfig.SetupGlobal(config.AppName, this.osEnv.Stderr)

	if err := this.cliFlags.Parse(
		this.osEnv.EnvVars,
		this.osEnv.Args,
		this.osEnv.Stderr,
	); err != nil {
		if err == flag.ErrHelp {
			return err
		}
		return fmt.Errorf("failed to parse CLI flags: %w", err)
	}

	if err := parseConfig(this.osEnv, &this.cliFlags, &this.cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

func (this *Core) Run(ctx context.Context) error {
	log := zerolog.Ctx(ctx)

	if !this.cliFlags.Run {
		log.Debug().Msg("run dry-run")
		return this.dryRun()
	}
	log.Debug().Int("programs", len(this.cfg.Programs)).Msg("run programs")
	return this.runPrograms(ctx)
}

func (this *Core) dryRun() error {
	return dryRun(this.osEnv.Stdout, &this.cfg)
}

func (this *Core) runPrograms(ctx context.Context) error {
	ctx, sigCancel := sighandle.CancelOnSignals(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer sigCancel()

	if timeout := this.cfg.Timeout.Duration; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	runners := make([]Runner, len(this.cfg.Programs))
	errs := make([]error, len(this.cfg.Programs))

	var eg errgroup.Group
	if this.cliFlags.Parallelism > 0 {
		eg.SetLimit(this.cliFlags.Parallelism)
	}
	for i := range this.cfg.Programs {
		runner := &runners[i]
		program := &this.cfg.Programs[i]
		eg.Go(func() error {
			if err := runner.Init(program); err != nil {
				errs[i] = err
				return nil
			}
			errs[i] = runner.Run(ctx)
			return nil
		})
	}
	_ = eg.Wait()

	for i := range runners {
		if _, err := runners[i].WriteTo(this.osEnv.Stdout); err != nil {
			return fmt.Errorf("failed to write program output: %w", err)
		}
	}
	if this.cliFlags.Json {
		if err := writeStacks(this.osEnv.Stdout, runners); err != nil {
			return err
		}
	}
	return errors.Join(errs...)
}

func writeStacks(out io.Writer, runners []Runner) error {
	stacks := make(map[string]*intstack.Stack, len(runners))
	for i := range runners {
		if runners[i].Stack() != nil {
			stacks[runners[i].program.Name] = runners[i].Stack()
		}
	}
	e := json.NewEncoder(out)
	e.SetIndent("", "  ")
	if err := e.Encode(stacks); err != nil {
		return fmt.Errorf("failed to write stacks: %w", err)
	}
	return nil
}
