package stackrun

import (
	"fmt"
	"io"

	"go.lepovirta.org/intstack/internal/stackrun/config"
)

const (
	programHeader = "program:"
	stepIndent    = "        "
)

func dryRun(
	out io.Writer,
	cfg *config.Config,
) error {
	if err := dryRun_(out, cfg); err != nil {
		return fmt.Errorf("failed to write dry run info: %w", err)
	}
	return nil
}

func dryRun_(
	out io.Writer,
	cfg *config.Config,
) (err error) {
	_, err = fmt.Fprintln(out, "!! DRY RUN !! Use flag -run to run the following stack programs")
	if err != nil {
		return
	}
	if cfg.Timeout.Duration > 0 {
		_, err = fmt.Fprintf(out, "timeout: %s\n", cfg.Timeout.String())
		if err != nil {
			return
		}
	}
	for i := range cfg.Programs {
		p := &cfg.Programs[i]
		_, err = fmt.Fprintf(out, "\n%s %s (%s)\n", programHeader, p.Name, stackOrigin(p))
		if err != nil {
			return
		}
		for j, step := range p.Steps {
			_, err = fmt.Fprintf(out, "%s%d. %s\n", stepIndent, j+1, stepString(&step))
			if err != nil {
				return
			}
		}
	}
	return
}

func stackOrigin(p *config.Program) string {
	if p.Seed != nil {
		return fmt.Sprintf(
			"seed: %d of %v",
			p.Seed.Count,
			p.Seed.Elements,
		)
	}
	if p.Capacity != nil {
		return fmt.Sprintf("capacity: %d", *p.Capacity)
	}
	return "no stack"
}

func stepString(step *config.Step) string {
	s := step.Op.String()
	if step.Value.IsSet() {
		s += " " + step.Value.String()
	}
	if step.Fails {
		s += " (expect failure)"
	} else if !step.Expect.IsEmpty() {
		s += fmt.Sprintf(" (expect %s)", step.Expect.String())
	}
	return s
}
