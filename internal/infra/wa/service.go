// Package wa wraps the WhatsApp transport. It owns all whatsmeow types:
// the rest of the bot only ever sees (userID, text) in and reply text out.
package wa

import (
	"context"
	"fmt"
	"os"

	"github.com/mdp/qrterminal"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types/events"
	walog "go.mau.fi/whatsmeow/util/log"
	_ "modernc.org/sqlite"
)

// MessageHandler processes one inbound message and returns the reply
// text. An empty reply means "do not respond".
type MessageHandler func(ctx context.Context, userID, text string) string

type Service struct {
	client    *whatsmeow.Client
	storePath string
	log       walog.Logger
	handler   MessageHandler
}

func NewService(storePath string, logger walog.Logger) *Service {
	return &Service{storePath: storePath, log: logger}
}

func (s *Service) SetMessageHandler(handler MessageHandler) {
	s.handler = handler
}

// Initialize opens the session store and builds the client. It does not
// connect; call Connect (or PrintQR / Pair for first login) afterwards.
func (s *Service) Initialize(ctx context.Context) error {
	// WAL mode and a busy timeout keep the session store usable next to
	// the bot's own sqlite connection.
	address := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", s.storePath)
	container, err := sqlstore.New(ctx, "sqlite", address, s.log)
	if err != nil {
		return fmt.Errorf("opening session store: %w", err)
	}

	devices, err := container.GetAllDevices(ctx)
	if err != nil {
		return fmt.Errorf("loading devices: %w", err)
	}
	var device *store.Device
	if len(devices) > 0 {
		device = devices[0]
	} else {
		device = container.NewDevice()
	}

	s.client = whatsmeow.NewClient(device, s.log)
	s.client.AddEventHandler(func(evt interface{}) {
		if msg, ok := evt.(*events.Message); ok {
			go s.handleMessage(context.Background(), msg)
		}
	})
	return nil
}

func (s *Service) handleMessage(ctx context.Context, evt *events.Message) {
	if s.handler == nil || evt.Info.IsFromMe {
		return
	}

	text := ""
	if evt.Message.Conversation != nil {
		text = *evt.Message.Conversation
	} else if evt.Message.ExtendedTextMessage != nil && evt.Message.ExtendedTextMessage.Text != nil {
		text = *evt.Message.ExtendedTextMessage.Text
	}
	if text == "" {
		return
	}

	reply := s.handler(ctx, evt.Info.Sender.User, text)
	if reply == "" {
		return
	}

	_, err := s.client.SendMessage(ctx, evt.Info.Chat, &waE2E.Message{Conversation: &reply})
	if err != nil {
		s.log.Errorf("Failed to send reply: %v", err)
	}
}

func (s *Service) Connect() error {
	if s.client == nil {
		return fmt.Errorf("client not initialized")
	}
	if s.client.IsConnected() {
		return nil
	}
	return s.client.Connect()
}

func (s *Service) Disconnect() {
	if s.client != nil {
		s.client.Disconnect()
	}
}

func (s *Service) IsLoggedIn() bool {
	return s.client.Store.ID != nil
}

// Pair generates a pairing code for phone-number login. The client must
// already be connected.
func (s *Service) Pair(ctx context.Context, phone string) (string, error) {
	if s.IsLoggedIn() {
		return "", fmt.Errorf("already logged in")
	}
	if !s.client.IsConnected() {
		return "", fmt.Errorf("client not connected")
	}
	return s.client.PairPhone(ctx, phone, true, whatsmeow.PairClientChrome, "Chrome (Linux)")
}

// PrintQR connects and renders login QR codes to the terminal until the
// session is established.
func (s *Service) PrintQR() {
	if s.client.Store.ID != nil {
		return
	}
	qrChan, _ := s.client.GetQRChannel(context.Background())
	if err := s.client.Connect(); err != nil {
		s.log.Errorf("Failed to connect for QR: %v", err)
		return
	}
	for evt := range qrChan {
		if evt.Event == "code" {
			qrterminal.GenerateHalfBlock(evt.Code, qrterminal.L, os.Stdout)
		} else {
			s.log.Infof("Login event: %s", evt.Event)
		}
	}
}
