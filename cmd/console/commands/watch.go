package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"github.com/zonagamer/console/internal/pkg/health"
	"github.com/zonagamer/console/internal/pkg/middleware"
	"github.com/zonagamer/console/internal/pkg/models"
	"github.com/zonagamer/console/internal/pkg/roles"
	"github.com/zonagamer/console/internal/pkg/server"
	"github.com/zonagamer/console/internal/utils"
	"github.com/zonagamer/console/services/notifier"
	"github.com/zonagamer/console/services/notifier/audio"
	notifieruc "github.com/zonagamer/console/services/notifier/usecase"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the real-time admin alert channel",
	Long: `watch connects to the alert broker and shows operational alerts as they
arrive. Administrators only. Each pending alert can be disposed of with
pause, view, or dismiss.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAccess("watch", roles.RoleAdmin); err != nil {
			return err
		}

		cue := audio.NewToneCue(app.cfg.Audio)
		channel := notifieruc.NewNotificationChannel(app.cfg.Broker, app.sessions, app.games, cue)
		if err := channel.Start(cmd.Context()); err != nil {
			return err
		}

		sm := server.NewShutdownManager()
		sm.Register(func(ctx context.Context) error {
			channel.Stop()
			return nil
		})
		sm.Register(func(ctx context.Context) error {
			cue.Close()
			return nil
		})

		if app.cfg.Status.Enabled {
			e := echo.New()
			e.Use(middleware.PanicRecoveryMiddleware())
			e.Use(middleware.RequestLoggerMiddleware())
			health.RegisterStatusEndpoints(e, app.cfg.App.Name, func() health.StatusReport {
				return health.StatusReport{
					SessionState:  app.sessions.State().String(),
					BrokerState:   channel.ConnState().String(),
					PendingAlerts: len(channel.Pending()),
				}
			})
			statusSrv := server.NewStatusServer(e, app.cfg.Status.Port)
			statusSrv.Start()
			sm.Register(func(ctx context.Context) error {
				return statusSrv.Shutdown()
			})
		}

		runWatch(cmd.Context(), channel)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return sm.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

// runWatch drives the interactive alert loop until the context is cancelled
// or the operator quits
func runWatch(ctx context.Context, channel *notifieruc.NotificationChannel) {
	fmt.Println(titleStyle.Render("Zona Gamer alert console"))
	fmt.Println(mutedStyle.Render("commands: list | pause <alert> | view <alert> | dismiss <alert> | quit"))
	renderAlerts(channel.Pending(), channel.ConnState())

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	lastCount := 0
	for {
		select {
		case <-ctx.Done():
			fmt.Println()
			fmt.Println(mutedStyle.Render("shutting down"))
			return

		case <-ticker.C:
			pending := channel.Pending()
			if len(pending) != lastCount {
				lastCount = len(pending)
				renderAlerts(pending, channel.ConnState())
			}

		case line, ok := <-lines:
			if !ok {
				return
			}
			if handleWatchCommand(ctx, channel, strings.TrimSpace(line)) {
				return
			}
			pending := channel.Pending()
			lastCount = len(pending)
			renderAlerts(pending, channel.ConnState())
		}
	}
}

// handleWatchCommand runs one operator command; it reports whether the
// operator asked to quit
func handleWatchCommand(ctx context.Context, channel *notifieruc.NotificationChannel, line string) bool {
	if line == "" {
		return false
	}

	fields := strings.Fields(line)
	switch fields[0] {
	case "quit", "exit":
		return true

	case "list":
		// The rendering after this call shows the current state

	case "pause":
		alertID, ok := parseAlertID(fields)
		if !ok {
			return false
		}
		gameID, err := channel.Pause(ctx, alertID)
		if err != nil {
			fmt.Println(errorStyle.Render("Could not pause the game: " + err.Error()))
			return false
		}
		fmt.Println(warnStyle.Render(fmt.Sprintf("Game %d paused for maintenance", gameID)))
		showGame(ctx, gameID)

	case "view":
		alertID, ok := parseAlertID(fields)
		if !ok {
			return false
		}
		gameID, err := channel.View(alertID)
		if err != nil {
			fmt.Println(errorStyle.Render(err.Error()))
			return false
		}
		showGame(ctx, gameID)

	case "dismiss":
		alertID, ok := parseAlertID(fields)
		if !ok {
			return false
		}
		if err := channel.Dismiss(alertID); err != nil {
			fmt.Println(errorStyle.Render(err.Error()))
		}

	default:
		fmt.Println(mutedStyle.Render("unknown command: " + fields[0]))
	}
	return false
}

func parseAlertID(fields []string) (uint64, bool) {
	if len(fields) < 2 {
		fmt.Println(mutedStyle.Render("usage: " + fields[0] + " <alert>"))
		return 0, false
	}
	id, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		fmt.Println(mutedStyle.Render("invalid alert id: " + fields[1]))
		return 0, false
	}
	return id, true
}

// showGame prints the affected game after a pause or view disposition, the
// console's equivalent of navigating to the game page
func showGame(ctx context.Context, gameID int64) {
	game, err := app.games.Get(ctx, gameID)
	if err != nil {
		fmt.Println(mutedStyle.Render("could not load game details: " + err.Error()))
		return
	}
	fmt.Printf("  %s  status=%s players=%d\n", game.Name, renderStatus(game.Status), game.Players)
}

func renderAlerts(pending []models.Alert, state notifier.ConnState) {
	fmt.Println()
	switch state {
	case notifier.ConnConnected:
		fmt.Println(okStyle.Render("● connected"))
	case notifier.ConnConnecting:
		fmt.Println(warnStyle.Render("● reconnecting"))
	default:
		fmt.Println(mutedStyle.Render("● disconnected"))
	}

	if len(pending) == 0 {
		fmt.Println(mutedStyle.Render("no pending alerts"))
		return
	}

	for _, alert := range pending {
		header := errorStyle.Render("¡Problema reportado!")
		body := fmt.Sprintf("%s\n[%d] %s  %s\n%s",
			header,
			alert.ID,
			alert.Kind,
			mutedStyle.Render("game "+alert.GameID.String()),
			utils.Truncate(alert.Message, 72))
		fmt.Println(alertPanelStyle.Render(body))
	}
}
