package nats

import (
	"errors"
	"fmt"
	"time"

	"github.com/jothom/inquiry/internal/logger"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

var log = logger.Named("nats")

// Startup and shutdown limits.
const (
	readyTimeout    = 4 * time.Second
	drainTimeout    = 2 * time.Second
	shutdownTimeout = 5 * time.Second
)

// Embedded bundles an in-process NATS server with its client connection and
// JetStream context.
type Embedded struct {
	Server *server.Server
	Conn   *nats.Conn
	JS     jetstream.JetStream
}

// Open starts an embedded JetStream server storing under dataDir and connects
// to it in process. Callers must Close it.
func Open(dataDir string) (*Embedded, error) {
	ns, err := StartEmbeddedNATS(dataDir)
	if err != nil {
		return nil, err
	}
	nc, err := ConnectInProcess(ns)
	if err != nil {
		_ = Shutdown(nil, ns)
		return nil, err
	}
	js, err := CreateJetStream(nc)
	if err != nil {
		_ = Shutdown(nc, ns)
		return nil, fmt.Errorf("creating jetstream context: %w", err)
	}
	return &Embedded{Server: ns, Conn: nc, JS: js}, nil
}

// Close drains the connection and stops the server.
func (e *Embedded) Close() error {
	if e == nil {
		return nil
	}
	return Shutdown(e.Conn, e.Server)
}

// StartEmbeddedNATS starts a JetStream-enabled server that accepts no network
// connections and keeps its file storage in dataDir.
func StartEmbeddedNATS(dataDir string) (*server.Server, error) {
	log.Debug("Starting embedded NATS server with data dir: %s", dataDir)

	opts := &server.Options{
		ServerName: "inquiry",
		JetStream:  true,
		StoreDir:   dataDir,
		DontListen: true,
		NoSigs:     true,
	}

	ns, err := server.NewServer(opts)
	if err != nil {
		log.Error("Failed to create NATS server: %v", err)
		return nil, fmt.Errorf("creating nats server: %w", err)
	}

	go ns.Start()

	if !ns.ReadyForConnections(readyTimeout) {
		log.Error("NATS server failed to start within %s", readyTimeout)
		ns.Shutdown()
		return nil, errors.New("nats server failed to start within timeout")
	}

	log.Debug("NATS server ready for connections")
	return ns, nil
}

// ConnectInProcess connects to ns without using network ports.
func ConnectInProcess(ns *server.Server) (*nats.Conn, error) {
	conn, err := nats.Connect("", nats.InProcessServer(ns), nats.Name("inquiry"))
	if err != nil {
		log.Error("Failed to connect to NATS in-process: %v", err)
		return nil, fmt.Errorf("connecting in process: %w", err)
	}
	return conn, nil
}

// CreateJetStream creates a JetStream context from a NATS connection.
func CreateJetStream(nc *nats.Conn) (jetstream.JetStream, error) {
	return jetstream.New(nc)
}

// Shutdown drains nc and stops ns. Both steps are bounded so a stuck server
// cannot hang the process on exit.
func Shutdown(nc *nats.Conn, ns *server.Server) error {
	if nc != nil {
		drainDone := make(chan error, 1)
		go func() {
			drainDone <- nc.Drain()
		}()

		select {
		case err := <-drainDone:
			if err != nil {
				log.Warn("NATS drain failed, forcing close: %v", err)
				nc.Close()
			}
		case <-time.After(drainTimeout):
			log.Warn("NATS drain timed out after %s, forcing close", drainTimeout)
			nc.Close()
		}
	}

	if ns != nil {
		ns.Shutdown()

		shutdownDone := make(chan struct{})
		go func() {
			ns.WaitForShutdown()
			close(shutdownDone)
		}()

		select {
		case <-shutdownDone:
			log.Debug("NATS server shut down cleanly")
		case <-time.After(shutdownTimeout):
			log.Error("NATS server shutdown timed out after %s", shutdownTimeout)
			return errors.New("nats server shutdown timed out")
		}
	}

	return nil
}
