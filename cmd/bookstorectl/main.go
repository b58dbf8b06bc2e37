// Command bookstorectl browses the catalog and edits the saved cart from the
// terminal, using the same storage and catalog as the server.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/digitalbookstore/storefront/internal/catalog"
	"github.com/digitalbookstore/storefront/internal/config"
	"github.com/digitalbookstore/storefront/internal/di"
	"github.com/digitalbookstore/storefront/internal/logger"
	"github.com/digitalbookstore/storefront/internal/notify"
	"github.com/digitalbookstore/storefront/internal/storefront"
	"github.com/digitalbookstore/storefront/internal/validation"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// app holds the state shared by every subcommand for one invocation.
type app struct {
	storageBackend string
	storagePath    string
	catalogPath    string
	locale         string
	envFile        string
	verbose        bool

	log        *logger.Logger
	injector   *do.RootScope
	storefront *storefront.Storefront
	collator   *catalog.Collator
	validator  *validation.Validator
}

// run executes one command line and always releases storage afterwards,
// including when the command fails.
func run(args []string, out, errOut io.Writer) error {
	a := &app{}
	defer a.close()

	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	return rootCmd.Execute()
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bookstorectl",
		Short: "Browse the catalog and manage the saved cart",
		Long: `bookstorectl works on the same catalog and cart storage as the
storefront server. Flags override environment variables and the .env file.

The badger backend locks its directory, so stop the server before using
bookstorectl against it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.storageBackend, "storage-backend", "", "Cart storage backend (badger, sqlite, memory)")
	flags.StringVar(&a.storagePath, "storage-path", "", "Cart storage location")
	flags.StringVar(&a.catalogPath, "catalog", "", "Path to catalog JSON (default: bundled catalog)")
	flags.StringVar(&a.locale, "locale", "", "Locale for title sorting")
	flags.StringVar(&a.envFile, "env-file", ".env", "Path to .env file")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Log at info level")

	rootCmd.AddCommand(
		catalogCmd(a),
		cartCmd(a),
	)

	return rootCmd
}

// open loads configuration and resolves the storefront.
func (a *app) open(out, errOut io.Writer) error {
	args := []string{"-env-file", a.envFile}
	for flag, value := range map[string]string{
		"-storage-backend": a.storageBackend,
		"-storage-path":    a.storagePath,
		"-catalog":         a.catalogPath,
		"-locale":          a.locale,
	} {
		if value != "" {
			args = append(args, flag, value)
		}
	}

	cfg, err := config.Load(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelInfo
	}
	a.log = logger.New(logger.Config{
		Writer:      errOut,
		Level:       level,
		Environment: cfg.App.Environment,
	})

	a.injector = di.NewLocalContainer(cfg, a.log, toastPrinter(out))

	if a.storefront, err = di.Storefront(a.injector); err != nil {
		return err
	}
	a.collator = do.MustInvoke[*catalog.Collator](a.injector)
	a.validator = do.MustInvoke[*validation.Validator](a.injector)

	return nil
}

// close releases the storage backend.
func (a *app) close() {
	if a.injector == nil {
		return
	}
	if report := a.injector.Shutdown(); report != nil {
		a.log.Debug("Container shut down", "report", report)
	}
}

// toastPrinter prints toasts as they are emitted.
func toastPrinter(w io.Writer) notify.Sink {
	return notify.Func(func(severity notify.Severity, text string) {
		switch severity {
		case notify.Success:
			fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", text)
		default:
			fmt.Fprintf(w, "\033[36mi\033[0m %s\n", text)
		}
	})
}
