package elevutils

import (
	_ "embed"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:generate sh -c "printf %s $(git rev-parse HEAD) > githash.txt"
//go:embed githash.txt
var gitHash string

func GetGitHash() string {
	return strings.TrimSpace(gitHash)
}

type CmdArgs struct {
	ConfigPath string
	EnvFile    string
	LogLevel   string //empty keeps the level from the config
	Help       bool
	Version    bool
}

// ParseCmdArgs parses args without the program name.
func ParseCmdArgs(args []string, output io.Writer) (CmdArgs, *flag.FlagSet, error) {
	cmdArgs := CmdArgs{}
	flags := flag.NewFlagSet("elevsim", flag.ContinueOnError)
	flags.SetOutput(output)

	flags.BoolVar(&cmdArgs.Help, "help", false, "Show Help Window")
	flags.BoolVar(&cmdArgs.Version, "version", false, "Show Version")
	flags.StringVar(&cmdArgs.ConfigPath, "config", "", "Path to a YAML config file. Defaults to built in values")
	flags.StringVar(&cmdArgs.EnvFile, "env", ".env", "Path to a dotenv file with ELEVSIM_* overrides")
	flags.StringVar(&cmdArgs.LogLevel, "loglevel", "", "Override the log level (trace, debug, info, warn, error)")

	if err := flags.Parse(args); err != nil {
		return cmdArgs, flags, err
	}
	if flags.NArg() > 0 {
		return cmdArgs, flags, fmt.Errorf("unexpected arguments %v", flags.Args())
	}
	return cmdArgs, flags, nil
}

func ProcessCmdArgs() CmdArgs {
	cmdArgs, flags, err := ParseCmdArgs(os.Args[1:], os.Stderr)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	if cmdArgs.Version {
		fmt.Println("Version:", GetGitHash())
		os.Exit(0)
	}

	if cmdArgs.Help {
		fmt.Println("Usage: ./elevsim [OPTIONS]")
		fmt.Println("Multi elevator dispatch simulator")
		fmt.Println()
		fmt.Println("Options:")
		flags.SetOutput(os.Stdout)
		flags.PrintDefaults()
		fmt.Println()
		fmt.Println("Controls:")
		fmt.Println("	q, Esc or Ctrl-C stops the simulation")
		os.Exit(0)
	}

	return cmdArgs
}
