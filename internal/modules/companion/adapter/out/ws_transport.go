package out

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	companionout "zazen/internal/modules/companion/port/out"
)

const writeTimeout = 5 * time.Second

// WSTransport accepts companion-device connections on a local websocket
// endpoint. Paired devices are trusted; there is no auth beyond being able
// to reach the configured listen address.
type WSTransport struct {
	upgrader websocket.Upgrader
	log      zerolog.Logger

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

func NewWSTransport(log zerolog.Logger) *WSTransport {
	return &WSTransport{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(_ *http.Request) bool { return true },
		},
		log:   log,
		conns: make(map[*websocket.Conn]struct{}),
	}
}

func (t *WSTransport) Run(ctx context.Context, addr string, onMessage func(context.Context, []byte)) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		t.handle(ctx, w, r, onMessage)
	})
	server := &http.Server{Addr: addr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
		t.closeAll()
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (t *WSTransport) handle(ctx context.Context, w http.ResponseWriter, r *http.Request, onMessage func(context.Context, []byte)) {
	conn, err := t.upgrader.Upgrade(w, r, nil)
	if err != nil {
		t.log.Warn().Err(err).Msg("companion upgrade failed")
		return
	}
	t.add(conn)
	defer t.remove(conn)

	for {
		kind, payload, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if kind != websocket.TextMessage {
			continue
		}
		onMessage(ctx, payload)
	}
}

func (t *WSTransport) Broadcast(_ context.Context, payload []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for conn := range t.conns {
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			t.log.Warn().Err(err).Msg("companion write failed, dropping connection")
			conn.Close()
			delete(t.conns, conn)
		}
	}
	return nil
}

func (t *WSTransport) add(conn *websocket.Conn) {
	t.mu.Lock()
	t.conns[conn] = struct{}{}
	t.mu.Unlock()
}

func (t *WSTransport) remove(conn *websocket.Conn) {
	t.mu.Lock()
	if _, ok := t.conns[conn]; ok {
		conn.Close()
		delete(t.conns, conn)
	}
	t.mu.Unlock()
}

func (t *WSTransport) closeAll() {
	t.mu.Lock()
	for conn := range t.conns {
		conn.Close()
		delete(t.conns, conn)
	}
	t.mu.Unlock()
}

var _ companionout.Transport = (*WSTransport)(nil)
