package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"library-catalog/auth"
	"library-catalog/config"
	"library-catalog/export"
	"library-catalog/library"
)

var version = "dev"

// seedUser adds books from the seed file before anyone logs in.
var seedUser = library.User{Name: "seed", ID: "0", Role: library.RoleLibrarian}

// app is the state shared by every command once configuration is loaded.
type app struct {
	cfg    config.Config
	mgr    *library.Manager
	creds  *auth.Credentials
	logger *slog.Logger

	stdin io.Reader
	in    *bufio.Scanner
	out   io.Writer

	username   string
	configPath string
	user       library.User
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "library-catalog",
		Short:         "In-memory library catalog manager",
		Long:          `Track books, patrons and checkouts from a staff terminal. Log in as a librarian or administrator and work through the numbered menu.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.setup(cmd, v)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.login(); err != nil {
				return err
			}
			a.runMenu()
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default ./"+config.DefaultFile+" when present)")
	pf.StringVarP(&a.username, "user", "u", "", "username to log in as (prompted when empty)")
	pf.String("seed", "", "catalog CSV to load at start-up")
	pf.String("log-level", "", "debug, info, warn or error")
	pf.Bool("strict-keys", true, "reject duplicate ISBNs and patron IDs")
	_ = v.BindPFlag("seed_file", pf.Lookup("seed"))
	_ = v.BindPFlag("log_level", pf.Lookup("log-level"))
	_ = v.BindPFlag("strict_keys", pf.Lookup("strict-keys"))

	rootCmd.AddCommand(newReportCmd(a, v), newExportCmd(a), newVersionCmd())
	return rootCmd
}

// setup loads configuration and builds the logger, credentials and an
// optionally seeded manager.
func (a *app) setup(cmd *cobra.Command, v *viper.Viper) error {
	cfg, err := config.Load(v, a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	a.creds, err = auth.NewCredentials(cfg.Users)
	if err != nil {
		return err
	}

	a.mgr, err = library.NewManager(
		library.WithLogger(a.logger),
		library.WithStrictKeys(cfg.StrictKeys),
	)
	if err != nil {
		return err
	}

	a.stdin = cmd.InOrStdin()
	a.in = bufio.NewScanner(a.stdin)
	a.out = cmd.OutOrStdout()

	if cfg.SeedFile != "" {
		if err := a.seed(cfg.SeedFile); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) seed(path string) error {
	books, err := export.LoadBooks(path)
	if err != nil {
		return fmt.Errorf("load seed %s: %w", path, err)
	}
	for _, b := range books {
		if err := a.mgr.AddBook(seedUser, b); err != nil {
			return fmt.Errorf("seed %s: %w", path, err)
		}
	}
	a.logger.Info("catalog seeded", "path", path, "books", len(books))
	return nil
}

// login resolves the acting user for this session.
func (a *app) login() error {
	fmt.Fprintln(a.out, "Welcome to the Library Management System")
	username := a.username
	if username == "" {
		var ok bool
		if username, ok = a.prompt("Username: "); !ok {
			return io.ErrUnexpectedEOF
		}
	}
	password, err := a.readPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	id, err := a.creds.Login(username, password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		fmt.Fprintln(a.out, "Login failed. Please check your username and password.")
		return err
	}
	if err != nil {
		return err
	}

	a.user = id.ActingUser()
	a.logger = a.logger.With("session", uuid.NewString(), "user", id.Username)
	a.logger.Info("login", "role", id.Role.String())
	fmt.Fprintf(a.out, "Login successful as %s. Role: %s\n", id.Username, id.Role)
	return nil
}

// prompt prints label and reads one trimmed line.
func (a *app) prompt(label string) (string, bool) {
	fmt.Fprint(a.out, label)
	if !a.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}

// readPassword masks input when stdin is a terminal.
func (a *app) readPassword(label string) (string, error) {
	if f, ok := a.stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(a.out, label)
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		fmt.Fprintln(a.out)
		return strings.TrimSpace(string(b)), nil
	}
	password, ok := a.prompt(label)
	if !ok {
		return "", io.ErrUnexpectedEOF
	}
	return password, nil
}
