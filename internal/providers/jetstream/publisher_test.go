package jetstream_test

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	natsjetstream "github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/encorelab/moment-nft-service/internal/adapter"
	"github.com/encorelab/moment-nft-service/internal/logger"
	"github.com/encorelab/moment-nft-service/internal/messaging"
	"github.com/encorelab/moment-nft-service/internal/mocks"
	"github.com/encorelab/moment-nft-service/internal/providers/jetstream"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func newTestPublisher(t *testing.T) (messaging.Publisher, *mocks.MockJetStream, *mocks.MockNatsConn) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	conn := mocks.NewMockNatsConn(ctrl)
	js := mocks.NewMockJetStream(ctrl)
	dialer := mocks.NewMockNatsJetStream(ctrl)
	dialer.EXPECT().Connect("nats://localhost:4222", gomock.Any()).
		Return(conn, js, nil)

	publisher, err := jetstream.NewPublisher(jetstream.Config{
		URL:            "nats://localhost:4222",
		StreamName:     "EDITION_EVENTS",
		MaxReconnects:  3,
		ReconnectWait:  time.Second,
		ConnectionName: "test",
	}, dialer, adapter.NewJSON())
	require.NoError(t, err)
	return publisher, js, conn
}

func TestPublishLedgerEvent(t *testing.T) {
	publisher, js, _ := newTestPublisher(t)

	event := &messaging.LedgerEvent{
		Type:        messaging.EventMintRecorded,
		MomentID:    42,
		TxHash:      "0xmint",
		Quantity:    2,
		MintedCount: 12,
		Timestamp:   time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC),
	}

	js.EXPECT().Publish(gomock.Any(), "EDITION_EVENTS.mint.recorded", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, data []byte, _ ...natsjetstream.PublishOpt) (*natsjetstream.PubAck, error) {
			var decoded messaging.LedgerEvent
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, *event, decoded)
			return &natsjetstream.PubAck{Stream: "EDITION_EVENTS", Sequence: 1}, nil
		})

	require.NoError(t, publisher.PublishLedgerEvent(context.Background(), event))
}

func TestPublishLedgerEvent_PublishFailure(t *testing.T) {
	publisher, js, _ := newTestPublisher(t)

	js.EXPECT().Publish(gomock.Any(), "EDITION_EVENTS.edition.created", gomock.Any()).
		Return(nil, assert.AnError)

	err := publisher.PublishLedgerEvent(context.Background(), &messaging.LedgerEvent{
		Type:     messaging.EventEditionCreated,
		MomentID: 7,
	})
	assert.Error(t, err)
}

func TestPublisher_Close(t *testing.T) {
	publisher, _, conn := newTestPublisher(t)
	conn.EXPECT().Close()
	publisher.Close()
}

func TestNopPublisher(t *testing.T) {
	publisher := messaging.NewNopPublisher()
	assert.NoError(t, publisher.PublishLedgerEvent(context.Background(), &messaging.LedgerEvent{
		Type: messaging.EventEditionEnded,
	}))
	publisher.Close()
}
