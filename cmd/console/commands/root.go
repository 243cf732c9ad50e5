// Package commands implements the operator console CLI.
package commands

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/zonagamer/console/internal/pkg/config"
	httpclient "github.com/zonagamer/console/internal/pkg/http"
	"github.com/zonagamer/console/internal/pkg/logger"
	"github.com/zonagamer/console/internal/pkg/models"
	"github.com/zonagamer/console/services/games"
	gamesgw "github.com/zonagamer/console/services/games/gateway"
	"github.com/zonagamer/console/services/guard"
	"github.com/zonagamer/console/services/session"
	sessiongw "github.com/zonagamer/console/services/session/gateway"
	"github.com/zonagamer/console/services/session/repository"
	sessionuc "github.com/zonagamer/console/services/session/usecase"
)

// application holds the wired components shared by every command
type application struct {
	cfg      *models.Config
	log      *logger.ZapLogger
	creds    *httpclient.Credentials
	store    *repository.SessionStore
	sessions session.SessionUC
	games    games.GamesGW
	guard    *guard.Guard
}

var (
	app        *application
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "console",
	Short: "Zona Gamer operator console",
	Long: `console is the Zona Gamer operator console.

It manages the operator session against the platform's identity issuer,
queries the game service, and (for administrators) watches the real-time
operational alert channel.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initApp(cmd.Context())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		app.close()
	},
}

// Execute runs the console with SIGINT/SIGTERM cancelling the context
func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(errorStyle.Render("Error: " + err.Error()))
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to console.yaml (default: working dir or the user config dir)")
}

// initApp wires the application and restores the stored session. Restore
// always completes before any command runs, so restored and fresh sessions
// configure the outbound credential identically.
func initApp(ctx context.Context) error {
	cfg := config.InitConfig(configPath)

	zapLogger, err := logger.NewZapLogger(logger.Config{
		Level:    cfg.Logger.Level,
		FilePath: cfg.Logger.FilePath,
	})
	if err != nil {
		log.Printf("Warning: failed to create logger: %v", err)
	} else {
		logger.SetGlobalLogger(zapLogger)
	}

	creds := httpclient.NewCredentials()

	storePath := cfg.Store.Path
	if storePath == "" {
		storePath, err = repository.DefaultPath()
		if err != nil {
			return fmt.Errorf("failed to resolve session store path: %w", err)
		}
	}
	store, err := repository.NewSessionStore(storePath, creds)
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}

	issuer := sessiongw.NewIssuerGW(cfg.Auth.URL, time.Duration(cfg.Auth.Timeout)*time.Second, creds)
	sessions := sessionuc.NewSessionManager(store, issuer)
	if err := sessions.Restore(ctx); err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}

	app = &application{
		cfg:      cfg,
		log:      zapLogger,
		creds:    creds,
		store:    store,
		sessions: sessions,
		games:    gamesgw.NewGamesGW(cfg.Games.URL, time.Duration(cfg.Games.Timeout)*time.Second, creds),
		guard:    guard.NewGuard(sessions),
	}
	return nil
}

func (a *application) close() {
	if a == nil {
		return
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			logger.Debug("failed to close session store", logger.Err(err))
		}
	}
	if a.log != nil {
		_ = a.log.Close()
	}
}

// requireAccess evaluates the access rule for a command and translates the
// verdict into a user-facing error
func requireAccess(from, requiredRole string) error {
	decision := app.guard.Evaluate(from, requiredRole)
	switch decision.Verdict {
	case guard.VerdictAllow:
		return nil
	case guard.VerdictLogin:
		return fmt.Errorf("you must log in first: run 'console login', then retry '%s'", decision.From)
	case guard.VerdictUnauthorized:
		return fmt.Errorf("your role does not allow '%s'", from)
	default:
		return fmt.Errorf("session state is not ready yet, try again")
	}
}
