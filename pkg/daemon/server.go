package daemon

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

var ErrAlreadyRunning = errors.New("shell server already running")

// ClientInfo tracks per-client state for renderers
type ClientInfo struct {
	Conn           net.Conn
	Width          int
	Height         int
	ViewportOffset int
	ColorProfile   string // "Ascii", "ANSI", "ANSI256", "TrueColor"
}

// Server shares one shell session with every attached renderer.
type Server struct {
	socketPath string
	pidPath    string
	listener   net.Listener
	clients    map[string]*ClientInfo
	clientsMu  sync.RWMutex
	done       chan struct{}
	stopOnce   sync.Once
	logger     *zap.Logger

	sequenceNum uint64
	seqMu       sync.Mutex
	writeMu     sync.Mutex

	// OnRenderNeeded builds the frame for one client at its size.
	OnRenderNeeded func(clientID string, width, height int) *RenderPayload

	// OnInput receives key and resolved mouse input.
	OnInput func(clientID string, input *InputPayload)

	// OnResize is called before the resized client is re-rendered.
	OnResize func(clientID string, width, height int)

	// OnSubscribe is called when a renderer attaches.
	OnSubscribe func(clientID string, info ClientInfo)
}

func NewServer(sessionID string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		socketPath:  SocketPath(sessionID),
		pidPath:     PidPath(sessionID),
		clients:     make(map[string]*ClientInfo),
		done:        make(chan struct{}),
		sequenceNum: 1,
		logger:      logger.Named("daemon"),
	}
}

// Start begins listening for client connections
func (s *Server) Start() error {
	if err := s.checkAndClaimPid(); err != nil {
		return err
	}

	// Safe to remove a stale socket now that we own the pidfile.
	os.Remove(s.socketPath)

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		os.Remove(s.pidPath)
		return fmt.Errorf("failed to listen on socket: %w", err)
	}
	s.listener = listener
	s.logger.Info("listening", zap.String("socket", s.socketPath))

	go s.acceptLoop()
	return nil
}

// Serve starts the server and blocks until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
	case <-s.done:
	}
	s.Stop()
	return nil
}

// checkAndClaimPid refuses to start when a live server owns the pidfile.
func (s *Server) checkAndClaimPid() error {
	if data, err := os.ReadFile(s.pidPath); err == nil {
		pidStr := strings.TrimSpace(string(data))
		if pid, err := strconv.Atoi(pidStr); err == nil && pid > 0 {
			if process, err := os.FindProcess(pid); err == nil {
				// FindProcess always succeeds on Unix; signal 0 probes liveness.
				if err := process.Signal(syscall.Signal(0)); err == nil {
					return fmt.Errorf("%w with pid %d", ErrAlreadyRunning, pid)
				}
			}
		}
		os.Remove(s.pidPath)
	}

	pid := os.Getpid()
	if err := os.WriteFile(s.pidPath, []byte(strconv.Itoa(pid)), 0644); err != nil {
		return fmt.Errorf("failed to write pidfile: %w", err)
	}
	return nil
}

// Stop shuts down the server. It is safe to call more than once.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
		if s.listener != nil {
			s.listener.Close()
		}
		s.clientsMu.Lock()
		for id, client := range s.clients {
			client.Conn.Close()
			delete(s.clients, id)
		}
		s.clientsMu.Unlock()
		os.Remove(s.socketPath)
		os.Remove(s.pidPath)
		s.logger.Info("stopped")
	})
}

// ClientCount returns the number of connected clients
func (s *Server) ClientCount() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

func (s *Server) SocketPath() string {
	return s.socketPath
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.done:
				return
			default:
				s.logger.Warn("accept failed", zap.Error(err))
				continue
			}
		}
		go s.handleClient(conn)
	}
}

// decodePayload re-marshals a generic payload into its concrete type.
func decodePayload(payload interface{}, into interface{}) bool {
	if payload == nil {
		return false
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return false
	}
	return json.Unmarshal(data, into) == nil
}

func (s *Server) handleClient(conn net.Conn) {
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	var clientID string

	for scanner.Scan() {
		var msg Message
		if err := json.Unmarshal(scanner.Bytes(), &msg); err != nil {
			s.logger.Debug("dropping malformed message", zap.Error(err))
			continue
		}

		switch msg.Type {
		case MsgSubscribe:
			clientID = msg.ClientID
			info := ClientInfo{Conn: conn, Width: 80, Height: 24, ColorProfile: "ANSI256"}
			var resize ResizePayload
			if decodePayload(msg.Payload, &resize) {
				if resize.Width > 0 {
					info.Width = resize.Width
				}
				if resize.Height > 0 {
					info.Height = resize.Height
				}
				if resize.ColorProfile != "" {
					info.ColorProfile = resize.ColorProfile
				}
			}
			s.clientsMu.Lock()
			s.clients[clientID] = &info
			s.clientsMu.Unlock()
			s.logger.Info("renderer attached",
				zap.String("client_id", clientID),
				zap.Int("width", info.Width),
				zap.Int("height", info.Height),
				zap.String("color_profile", info.ColorProfile))
			if s.OnSubscribe != nil {
				s.OnSubscribe(clientID, info)
			}
			s.sendRenderToClient(clientID)

		case MsgUnsubscribe:
			s.removeClient(clientID)
			return

		case MsgResize:
			var resize ResizePayload
			if decodePayload(msg.Payload, &resize) {
				s.clientsMu.Lock()
				if client, ok := s.clients[clientID]; ok {
					client.Width = resize.Width
					client.Height = resize.Height
				}
				s.clientsMu.Unlock()
				if s.OnResize != nil {
					s.OnResize(clientID, resize.Width, resize.Height)
				}
				s.sendRenderToClient(clientID)
			}

		case MsgViewportUpdate:
			var vp ViewportUpdatePayload
			if decodePayload(msg.Payload, &vp) {
				s.clientsMu.Lock()
				if client, ok := s.clients[clientID]; ok {
					client.ViewportOffset = vp.ViewportOffset
				}
				s.clientsMu.Unlock()
			}

		case MsgInput:
			var input InputPayload
			if decodePayload(msg.Payload, &input) && s.OnInput != nil {
				s.OnInput(clientID, &input)
			}

		case MsgPing:
			s.sendMessage(conn, Message{Type: MsgPong})
		}
	}

	s.removeClient(clientID)
}

func (s *Server) removeClient(clientID string) {
	if clientID == "" {
		return
	}
	s.clientsMu.Lock()
	_, ok := s.clients[clientID]
	delete(s.clients, clientID)
	s.clientsMu.Unlock()
	if ok {
		s.logger.Info("renderer detached", zap.String("client_id", clientID))
	}
}

// BroadcastRender sends a fresh frame to every connected renderer
func (s *Server) BroadcastRender() {
	for _, id := range s.ClientIDs() {
		s.sendRenderToClient(id)
	}
}

func (s *Server) sendRenderToClient(clientID string) {
	s.clientsMu.RLock()
	client, ok := s.clients[clientID]
	if !ok {
		s.clientsMu.RUnlock()
		return
	}
	conn := client.Conn
	width := client.Width
	height := client.Height
	s.clientsMu.RUnlock()

	if s.OnRenderNeeded == nil {
		return
	}
	render := s.OnRenderNeeded(clientID, width, height)
	if render == nil {
		return
	}

	s.seqMu.Lock()
	render.SequenceNum = s.sequenceNum
	s.sequenceNum++
	s.seqMu.Unlock()

	if err := s.sendMessage(conn, Message{Type: MsgRender, ClientID: clientID, Payload: render}); err != nil {
		s.logger.Warn("render send failed", zap.String("client_id", clientID), zap.Error(err))
	}
}

// ClientInfo returns a copy of a client's state without its connection.
func (s *Server) ClientInfo(clientID string) (ClientInfo, bool) {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	client, ok := s.clients[clientID]
	if !ok {
		return ClientInfo{}, false
	}
	return ClientInfo{
		Width:          client.Width,
		Height:         client.Height,
		ViewportOffset: client.ViewportOffset,
		ColorProfile:   client.ColorProfile,
	}, true
}

func (s *Server) ClientIDs() []string {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	ids := make([]string, 0, len(s.clients))
	for id := range s.clients {
		ids = append(ids, id)
	}
	return ids
}

// colorProfileOrder defines the capability order (lowest to highest)
var colorProfileOrder = map[string]int{
	"Ascii":     0,
	"ANSI":      1,
	"ANSI256":   2,
	"TrueColor": 3,
}

// MinColorProfile returns the weakest color profile among connected clients,
// so one shared frame renders legibly everywhere.
func (s *Server) MinColorProfile() string {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()

	if len(s.clients) == 0 {
		return "ANSI256"
	}

	minProfile := "TrueColor"
	minOrder := colorProfileOrder[minProfile]
	for _, client := range s.clients {
		profile := client.ColorProfile
		order, ok := colorProfileOrder[profile]
		if !ok {
			profile, order = "ANSI256", 2
		}
		if order < minOrder {
			minOrder = order
			minProfile = profile
		}
	}
	return minProfile
}

func (s *Server) sendMessage(conn net.Conn, msg Message) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return writeMessage(conn, msg)
}

// writeMessage writes one JSON line with a short deadline.
func writeMessage(conn net.Conn, msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(time.Second))
	_, err = conn.Write(append(data, '\n'))
	return err
}
