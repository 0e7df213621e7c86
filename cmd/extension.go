package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/rs/zerolog/log"
)

// Environment of the extensions.
const (
	EnvConfigFile = "CARTERA_CONFIG"
	EnvDataDir    = "CARTERA_DATA_DIR"
	EnvVerbose    = "CARTERA_VERBOSE"
)

// extensionEnv returns the environment of an extension: the current one plus the global flags.
func extensionEnv() []string {
	env := os.Environ()
	env = append(env, EnvConfigFile+"="+*configFile)
	env = append(env, EnvDataDir+"="+cfg.DataDir)
	env = append(env, EnvVerbose+"="+strconv.FormatBool(*verbose))
	return env
}

// RunExtension attempts to find and execute an external cartera-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "cartera-" + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		log.Debug().Err(err).Str("command", externalCmdName).Msg("extension not found in PATH")
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = extensionEnv()

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}
	return true, 0
}
