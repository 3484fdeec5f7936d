package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/qiniu/x/log"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/careerbot/internal/panel"
	"github.com/ziadkadry99/careerbot/internal/preview"
	"github.com/ziadkadry99/careerbot/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the five panels in a local browser preview",
	Long: `Starts a local web page with all five panels. Requests are forwarded to the
career-advice server and replies are formatted and pushed back over a
WebSocket. Account forms are validated before being handed to the server.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		port := a.cfg.Serve.Port
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetInt("port")
		}
		allowAll := a.cfg.Serve.AllowAllOrigins
		if cmd.Flags().Changed("allow-all-origins") {
			allowAll, _ = cmd.Flags().GetBool("allow-all-origins")
		}

		var cache panel.Cache
		if a.store != nil {
			cache = a.store
		}
		pv := preview.New(a.client, a.formatter, a.session, cache)
		pv.AllowAllOrigins = allowAll
		srv := server.New(server.Config{
			Port:     port,
			AllowAll: allowAll,
		}, pv)

		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down preview...")
			if err := srv.Shutdown(context.Background()); err != nil {
				log.Warnf("shutdown: %v", err)
			}
		}()

		fmt.Fprintf(os.Stderr, "careerbot %s preview on http://localhost:%d\n", Version, port)
		fmt.Fprintf(os.Stderr, "  Upstream: %s\n", a.cfg.API.BaseURL)
		fmt.Fprintf(os.Stderr, "  Logged in: %t\n", a.session.LoggedIn)

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().Int("port", 8080, "port to listen on (overrides serve.port)")
	serveCmd.Flags().Bool("allow-all-origins", false, "allow cross-origin requests from any origin")
	rootCmd.AddCommand(serveCmd)
}
