package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/averahq/avera/internal/cli"
)

func main() {
	dbPath := flag.String("db", filepath.Join("data", "avera.db"), "path to the SQLite database")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	switch args[0] {
	case "reset-password":
		resetFlags := flag.NewFlagSet("reset-password", flag.ExitOnError)
		email := resetFlags.String("email", "", "account email")
		resetFlags.Parse(args[1:])
		if err := cli.RunResetPasswordCommand(*dbPath, *email); err != nil {
			log.Fatalf("reset-password: %v", err)
		}
	case "grant-credits":
		grantFlags := flag.NewFlagSet("grant-credits", flag.ExitOnError)
		email := grantFlags.String("email", "", "account email")
		amount := grantFlags.Int("amount", 0, "credits to add")
		grantFlags.Parse(args[1:])
		if err := cli.RunGrantCreditsCommand(*dbPath, *email, *amount); err != nil {
			log.Fatalf("grant-credits: %v", err)
		}
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: averactl [-db path] <command> [options]")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  reset-password -email <email>")
	fmt.Fprintln(os.Stderr, "  grant-credits  -email <email> -amount <n>")
}
