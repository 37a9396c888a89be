package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/matst80/slask-jewelry/pkg/common/jsoncompat"
	"github.com/matst80/slask-jewelry/pkg/messaging"
	"github.com/matst80/slask-jewelry/pkg/tracking"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var eventsJSON bool

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Print search events from the tracking topic until interrupted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if app.cfg.Tracking.RabbitURL == "" {
			return errors.New("RABBIT_URL is not configured")
		}
		conn, err := amqp.Dial(app.cfg.Tracking.RabbitURL)
		if err != nil {
			return err
		}
		defer conn.Close()
		ch, err := conn.Channel()
		if err != nil {
			return err
		}
		defer ch.Close()

		printEvent := eventPrinter(cmd.OutOrStdout(), eventsJSON)
		err = messaging.Listen(ch, messaging.GlobalPrefix, messaging.Tracking, app.logger, func(e tracking.SearchEvent) {
			if err := printEvent(e); err != nil {
				app.logger.Warn("failed to print search event", zap.Error(err))
			}
		})
		if err != nil {
			return err
		}
		<-cmd.Context().Done()
		return nil
	},
}

func init() {
	eventsCmd.Flags().BoolVar(&eventsJSON, "json", false, "print one JSON document per event")
}

// eventPrinter writes events as text lines, or as JSON lines when asJSON.
func eventPrinter(w io.Writer, asJSON bool) func(tracking.SearchEvent) error {
	if asJSON {
		enc := jsoncompat.NewEncoder(w)
		return func(e tracking.SearchEvent) error { return enc.Encode(e) }
	}
	return func(e tracking.SearchEvent) error {
		_, err := fmt.Fprintf(w, "%s page=%d results=%d query=%q filters=%s sort=%s\n",
			e.Category, e.Page, e.Results, e.Query, e.Filters, e.Sort)
		return err
	}
}
