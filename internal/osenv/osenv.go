package osenv

import (
	"io"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"go.lepovirta.org/intstack/internal/envvar"
)

type OsEnv struct {
	Args    []string
	Fs      billy.Filesystem
	EnvVars envvar.Vars
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
}

func (this *OsEnv) FromRealEnv() {
	this.Args = os.Args
	this.Fs = osfs.New("")
	this.EnvVars.FromEnv()
	this.Stdin = os.Stdin
	this.Stdout = os.Stdout
	this.Stderr = os.Stderr
}

// FromMemory sets up an environment that is detached from the host:
// an in-memory file system and the given args, env vars and streams.
func (this *OsEnv) FromMemory(
	args []string,
	envVars map[string]string,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
) {
	this.Args = args
	this.Fs = memfs.New()
	this.EnvVars.FromMap(envVars)
	this.Stdin = stdin
	this.Stdout = stdout
	this.Stderr = stderr
}
