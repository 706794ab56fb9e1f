// Command sixlock is the clean/smudge filter and its supporting
// subcommands: clean and smudge read a stream on stdin and write the
// transformed stream to stdout, the way a VCS content filter is invoked;
// init and diagnose are ambient convenience commands for bootstrapping
// and inspecting the master key file. Subcommand dispatch on os.Args[1]
// follows the same flag-per-binary convention the pack's multi-binary
// tools use (each nfctools command parses its own flag.FlagSet), scaled
// here to one binary with several subcommands instead of several binaries.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/oxcrypt/sixlock/internal/engine"
	"github.com/oxcrypt/sixlock/internal/keystore"
	"github.com/oxcrypt/sixlock/internal/sixconfig"
	"github.com/oxcrypt/sixlock/internal/sixerr"
	"github.com/oxcrypt/sixlock/internal/sixlog"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "clean":
		err = runClean(os.Args[2:])
	case "smudge":
		err = runSmudge(os.Args[2:])
	case "init":
		err = runInit(os.Args[2:])
	case "diagnose":
		err = runDiagnose(os.Args[2:])
	case "-h", "--help", "help":
		printUsage()
		return
	default:
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		var sixErr *sixerr.Error
		if errors.As(err, &sixErr) {
			fmt.Fprintln(os.Stderr, sixErr.Error())
			os.Exit(sixErr.Kind.ExitCode())
		}
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `usage: sixlock <command> [arguments]

commands:
  clean <path>    encrypt stdin, write blob to stdout
  smudge <path>   decrypt stdin, write plaintext to stdout
  init            generate and persist a new master secret
  diagnose        report master key status without loading it`)
}

func loadConfig(configDir string) sixconfig.Config {
	cfg, err := sixconfig.Load(configDir)
	if err != nil {
		cfg = sixconfig.Default()
	}
	sixlog.SetLevel(cfg.LogLevel)
	return cfg
}

func runClean(args []string) error {
	fs := flag.NewFlagSet("clean", flag.ContinueOnError)
	configDir := fs.String("config-dir", ".", "directory to look for .sixlock.yml")
	if err := fs.Parse(args); err != nil {
		return err
	}
	path := fs.Arg(0)
	if path == "" {
		return sixerr.New(sixerr.IoError, "clean requires a path argument")
	}

	cfg := loadConfig(*configDir)
	secret, err := keystore.LoadMaster(cfg.KeyFile)
	if err != nil {
		sixlog.KeyUnavailable(cfg.KeyFile, err.Error())
		return sixerr.Wrap(sixerr.KeyUnavailable, "loading master key", err)
	}

	plaintext, err := io.ReadAll(os.Stdin)
	if err != nil {
		sixlog.IOError("read stdin", len(path), err)
		return sixerr.Wrap(sixerr.IoError, "reading stdin", err)
	}

	blob, err := engine.Encrypt(secret, path, plaintext)
	if err != nil {
		return err
	}

	if _, err := os.Stdout.Write(blob); err != nil {
		sixlog.IOError("write stdout", len(path), err)
		return sixerr.Wrap(sixerr.IoError, "writing stdout", err)
	}

	epoch, _ := keystore.LoadEpoch(cfg.KeyFile)
	sixlog.Cleaned(len(path), len(plaintext), len(blob), epoch.ID)
	return nil
}

func runSmudge(args []string) error {
	fs := flag.NewFlagSet("smudge", flag.ContinueOnError)
	configDir := fs.String("config-dir", ".", "directory to look for .sixlock.yml")
	if err := fs.Parse(args); err != nil {
		return err
	}
	path := fs.Arg(0)
	if path == "" {
		return sixerr.New(sixerr.IoError, "smudge requires a path argument")
	}

	cfg := loadConfig(*configDir)
	secret, err := keystore.LoadMaster(cfg.KeyFile)
	if err != nil {
		sixlog.KeyUnavailable(cfg.KeyFile, err.Error())
		return sixerr.Wrap(sixerr.KeyUnavailable, "loading master key", err)
	}

	blob, err := io.ReadAll(os.Stdin)
	if err != nil {
		sixlog.IOError("read stdin", len(path), err)
		return sixerr.Wrap(sixerr.IoError, "reading stdin", err)
	}

	plaintext, err := engine.Decrypt(secret, path, blob)
	if err != nil {
		var sixErr *sixerr.Error
		if errors.As(err, &sixErr) && sixErr.Kind == sixerr.AuthenticationFailure {
			sixlog.AuthFailure(len(path))
		} else if errors.As(err, &sixErr) && sixErr.Kind == sixerr.MalformedBlob {
			sixlog.MalformedBlob(len(path), sixErr.Msg)
		}
		return err
	}

	if _, err := os.Stdout.Write(plaintext); err != nil {
		sixlog.IOError("write stdout", len(path), err)
		return sixerr.Wrap(sixerr.IoError, "writing stdout", err)
	}

	sixlog.Smudged(len(path), len(blob), len(plaintext))
	return nil
}

func runInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	configDir := fs.String("config-dir", ".", "directory to look for .sixlock.yml")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := loadConfig(*configDir)
	if keystore.Exists(cfg.KeyFile) {
		return sixerr.New(sixerr.IoError, fmt.Sprintf("master key already exists at %s", cfg.KeyFile))
	}

	secret, err := keystore.GenerateSecret()
	if err != nil {
		return sixerr.Wrap(sixerr.InternalCryptoError, "generating master secret", err)
	}

	epoch, err := keystore.Persist(cfg.KeyFile, secret, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return sixerr.Wrap(sixerr.IoError, "persisting master secret", err)
	}

	sixlog.KeyInitialized(cfg.KeyFile, epoch.ID)
	fmt.Printf("initialized master key at %s (epoch %s)\n", cfg.KeyFile, epoch.ID)
	return nil
}

func runDiagnose(args []string) error {
	fs := flag.NewFlagSet("diagnose", flag.ContinueOnError)
	configDir := fs.String("config-dir", ".", "directory to look for .sixlock.yml")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := loadConfig(*configDir)
	fmt.Printf("key_file: %s\n", cfg.KeyFile)

	if !keystore.Exists(cfg.KeyFile) {
		fmt.Println("status: missing")
		return nil
	}
	fmt.Println("status: present")

	info, err := os.Stat(cfg.KeyFile)
	if err == nil {
		fmt.Printf("permissions: %04o\n", info.Mode().Perm())
	}

	epoch, err := keystore.LoadEpoch(cfg.KeyFile)
	if err != nil {
		fmt.Println("epoch: unavailable")
		return nil
	}
	fmt.Printf("epoch: %s\n", epoch.ID)
	fmt.Printf("created_at: %s\n", epoch.CreatedAt)
	return nil
}
