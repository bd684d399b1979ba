package webservice

import (
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"

	"github.com/nickng/chopsticks/philosopher"
	"github.com/nickng/chopsticks/report"
)

// Server serves the status view of a running table.
type Server struct {
	listener net.Listener
	iface    string
	port     string
	table    *philosopher.Table
	recorder *report.Recorder
	srv      *http.Server

	listenerMtx sync.Mutex
}

// NewServer creates a status server for table. Recent events are read from
// recorder, which may be nil.
func NewServer(iface string, port string, table *philosopher.Table, recorder *report.Recorder) *Server {
	return &Server{
		iface:    iface,
		port:     port,
		table:    table,
		recorder: recorder,
	}
}

// Handler returns the routes of the status view.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", wsHandler(s.indexHandler))
	mux.Handle("/state", wsHandler(s.stateHandler))
	mux.Handle("/dot", wsHandler(s.dotHandler))
	mux.Handle("/cfsm", wsHandler(s.cfsmHandler))
	mux.Handle("/migo", wsHandler(s.migoHandler))
	mux.Handle("/events", wsHandler(s.eventsHandler))
	return mux
}

// Start serves until Close is called.
func (s *Server) Start() error {
	l, err := s.Listener()
	if err != nil {
		return err
	}
	s.listenerMtx.Lock()
	s.srv = &http.Server{Handler: s.Handler()}
	srv := s.srv
	s.listenerMtx.Unlock()

	log.Printf("Listening at %s", s.URL())
	if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}

// Close stops the server and its listener.
func (s *Server) Close() error {
	s.listenerMtx.Lock()
	defer s.listenerMtx.Unlock()
	if s.srv != nil {
		return s.srv.Close()
	}
	if s.listener != nil {
		return s.listener.Close()
	}
	return nil
}

func (s *Server) URL() string {
	l, err := s.Listener()
	if err != nil {
		return ""
	}
	return fmt.Sprintf("http://%s/", l.Addr())
}

func (s *Server) Listener() (net.Listener, error) {
	s.listenerMtx.Lock()
	defer s.listenerMtx.Unlock()

	if s.listener != nil {
		return s.listener, nil
	}

	ifaceAndPort := net.JoinHostPort(s.iface, s.port)
	listener, err := net.Listen("tcp4", ifaceAndPort)
	if err != nil {
		return nil, err
	}

	s.listener = listener
	return s.listener, nil
}
