package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/radieske/bet-settlement-poc/internal/matchstate-ingest/publisher"
	"github.com/radieske/bet-settlement-poc/pkg/contracts/events"
)

// WSClient consome snapshots de estado de partida do provedor via WebSocket
// e repassa cada um para o tópico Kafka de match_states.
type WSClient struct {
	URL       string                    // URL do endpoint WebSocket do provedor
	Log       *zap.Logger               // Logger estruturado
	Publisher *publisher.KafkaPublisher // Publisher Kafka de estados de partida
}

// Start inicia o loop de conexão e escuta do WebSocket.
// Em caso de desconexão, tenta reconectar automaticamente com backoff.
func (c *WSClient) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			c.Log.Info("context canceled, stopping WS client")
			return
		default:
			if err := c.connectAndListen(ctx); err != nil {
				c.Log.Warn("connection closed", zap.Error(err))
				time.Sleep(3 * time.Second) // Aguarda antes de tentar reconectar
			}
		}
	}
}

// connectAndListen estabelece a conexão WebSocket e processa mensagens.
// Mensagens sem match_id são descartadas sem derrubar a conexão.
func (c *WSClient) connectAndListen(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.URL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()
	c.Log.Info("connected to provider WS", zap.String("url", c.URL))

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) || errors.Is(err, context.Canceled) {
				return nil
			}
			c.Log.Error("read message failed", zap.Error(err))
			return err
		}

		var state events.MatchState
		if err := json.Unmarshal(message, &state); err != nil || state.MatchID == "" {
			c.Log.Warn("invalid message", zap.Error(err))
			continue
		}

		// Publica o snapshot recebido no Kafka
		if err := c.Publisher.Publish(ctx, state); err != nil {
			c.Log.Error("failed to publish to Kafka", zap.Error(err))
		}
	}
}
