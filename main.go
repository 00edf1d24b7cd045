package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/jessevdk/go-flags"

	logger "fedsweep.io/logger"
)

var parser = flags.NewNamedParser("fedsweep", flags.HelpFlag|flags.PassDoubleDash)

var (
	stdout         io.Writer = os.Stdout
	commandContext           = context.Background()
)

func printHelp(parser *flags.Parser) {
	// Print help for active command
	if parser.Command.Active != nil {
		parser.Command = parser.Command.Active
	}
	var b bytes.Buffer
	parser.WriteHelp(&b)
	fmt.Println(b.String())
}

func run(args []string) error {
	parser.SubcommandsOptional = true
	parser.Command.Active = nil
	if _, err := parser.ParseArgs(args); err != nil {
		return err
	}
	// no command: submit the configured sweep
	if parser.Active == nil {
		return submitOptions.Submit()
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	commandContext = ctx

	err := run(os.Args[1:])
	if err == nil {
		os.Exit(0)
	}
	switch flagsErr := err.(type) {
	case *flags.Error:
		if flagsErr.Type == flags.ErrHelp {
			printHelp(parser)
			os.Exit(0)
		} else if flagsErr.Type == flags.ErrCommandRequired ||
			flagsErr.Type == flags.ErrRequired {
			fmt.Println(flagsErr.Error())
			printHelp(parser)
			os.Exit(1)
		} else if flagsErr.Type == flags.ErrUnknownCommand {
			fmt.Printf("%v\n\n", flagsErr.Message)
			printHelp(parser)
			os.Exit(1)
		} else if flagsErr.Type == flags.ErrMarshal {
			fmt.Printf("Invalid syntax: %v\n\n", flagsErr.Message)
			printHelp(parser)
			os.Exit(1)
		}
		fmt.Println(flagsErr.Error())
		os.Exit(1)

	default:
		logger.FailurePrintf("%v", err)
		os.Exit(1)
	}
}
