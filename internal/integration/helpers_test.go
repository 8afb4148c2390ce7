//go:build integration

package integration_test

import (
	"context"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"

	"github.com/nickhafer/ufo-sightings-dashboard/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka runs a single-node broker and returns its address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()
	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("ufo-sightings-test"),
	)
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(container) })

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

// createTopic creates a single-partition topic through the cluster controller.
func createTopic(t *testing.T, broker, topic string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)
	ctrl, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer ctrl.Close()

	require.NoError(t, ctrl.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

func mockRows() []domain.RawRow {
	return []domain.RawRow{
		{
			domain.ColDateTime: "2004-07-04 21:15:00", domain.ColSeason: "Summer", domain.ColCountryCode: "USA",
			domain.ColLatitude: "47.6", domain.ColLongitude: "-122.3", domain.ColShape: "Fireball",
			domain.ColHour: "21", domain.ColDescription: "Orange light over the sound.",
		},
		{
			domain.ColDateTime: "2004-12-24 03:00:00", domain.ColSeason: "Winter", domain.ColCountryCode: "CAN",
			domain.ColLatitude: "49.28", domain.ColLongitude: "-123.12", domain.ColShape: "Disk",
			domain.ColHour: "3", domain.ColDescription: "Metallic disk seen from the bridge.",
		},
		{
			domain.ColDateTime: "2011-03-15 12:30:00", domain.ColSeason: "Spring", domain.ColCountryCode: "USA",
			domain.ColLatitude: "not a number", domain.ColLongitude: "-97.7", domain.ColShape: "Fireball",
			domain.ColHour: "12",
		},
		{
			domain.ColDateTime: "sometime last year", domain.ColCountryCode: "GBR",
			domain.ColLatitude: "51.5", domain.ColLongitude: "-0.13", domain.ColShape: "Light",
		},
	}
}
