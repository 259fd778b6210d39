package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/harvest-client/internal/constants"
	"github.com/fivetwenty-io/harvest-client/internal/events"
	"github.com/fivetwenty-io/harvest-client/pkg/harvest"
	"github.com/fivetwenty-io/harvest-client/pkg/metrics"
)

// NewMonitorCommand creates the monitor command.
func NewMonitorCommand() *cobra.Command {
	var (
		interval      time.Duration
		natsURL       string
		subjectPrefix string
		metricsAddr   string
	)

	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Keep a session alive and report its state",
		Long: `Open a session and ping it periodically. Expired sessions are reopened.

Session events can be published to NATS and request metrics served for
Prometheus.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger := newLogger(cmd)
			recorder := metrics.New()
			expired := make(chan struct{}, 1)

			observers := []harvest.SessionObserver{
				harvest.SessionObserverFunc(func(event harvest.SessionEvent) {
					logger.Info("session "+string(event.Type), map[string]interface{}{
						"url":   event.URL,
						"error": event.Error,
					})

					if event.Type == harvest.SessionExpired {
						select {
						case expired <- struct{}{}:
						default:
						}
					}
				}),
			}

			if natsURL != "" {
				conn, err := events.Dial(natsURL)
				if err != nil {
					return err
				}
				defer conn.Close()

				observers = append(observers, events.NewPublisher(conn, subjectPrefix, logger))
			}

			client, err := createClient(cmd, func(config *harvest.Config) {
				config.MonitorInterval = interval
				config.Metrics = recorder
				config.Observers = observers
			})
			if err != nil {
				return err
			}
			defer client.Close()

			if metricsAddr != "" {
				server := &http.Server{
					Addr:              metricsAddr,
					Handler:           recorder.Handler(),
					ReadHeaderTimeout: constants.ShortHTTPTimeout,
				}

				go func() {
					serveErr := server.ListenAndServe()
					if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
						logger.Error("metrics server failed", map[string]interface{}{"error": serveErr.Error()})
					}
				}()

				defer func() {
					_ = server.Shutdown(context.WithoutCancel(ctx))
				}()
			}

			return monitorSession(ctx, cmd, client, expired, interval)
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", constants.DefaultMonitorInterval, "ping interval")
	cmd.Flags().StringVar(&natsURL, "nats-url", "", "NATS server to publish session events to")
	cmd.Flags().StringVar(&subjectPrefix, "subject-prefix", constants.DefaultSubjectPrefix, "NATS subject prefix")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "address to serve Prometheus metrics on")

	return cmd
}

// monitorSession opens the session and reopens it after every expiry until ctx
// is done. A failed reopen is retried after interval.
func monitorSession(
	ctx context.Context,
	cmd *cobra.Command,
	client harvest.Client,
	expired <-chan struct{},
	interval time.Duration,
) error {
	err := client.Open(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to open session: %w", err)
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Session opened, press Ctrl+C to stop")

	var retry <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-expired:
		case <-retry:
		}

		retry = nil

		err := client.Open(ctx, nil)
		if err != nil && ctx.Err() == nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Failed to reopen session: %v\n", err)

			retry = time.After(max(interval, constants.ShortHTTPTimeout))
		}
	}
}
