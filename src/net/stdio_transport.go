package net

import (
	"bufio"
	"io"
	"sync"

	"github.com/roG0d/distributed-challenges/src/wire"
	"github.com/sirupsen/logrus"
)

// StdioTransport exchanges line-framed JSON envelopes over a pair of byte
// streams, normally the process's stdin and stdout. Writes are serialized
// under a lock so concurrent handlers never interleave partial lines.
type StdioTransport struct {
	reader io.Reader
	writer io.Writer

	writeLock sync.Mutex

	consumeCh chan wire.Envelope

	shutdown     bool
	shutdownLock sync.Mutex

	logger *logrus.Entry
}

// NewStdioTransport creates a transport reading envelopes from r and writing
// envelopes to w.
func NewStdioTransport(r io.Reader, w io.Writer, logger *logrus.Entry) *StdioTransport {
	if logger == nil {
		log := logrus.New()
		log.Level = logrus.DebugLevel
		logger = logrus.NewEntry(log)
	}

	return &StdioTransport{
		reader:    r,
		writer:    w,
		consumeCh: make(chan wire.Envelope),
		logger:    logger,
	}
}

// Listen starts the read loop in the background. The consumer channel is
// closed when the input stream ends.
func (s *StdioTransport) Listen() {
	go s.listen()
}

func (s *StdioTransport) listen() {
	defer close(s.consumeCh)

	scanner := bufio.NewScanner(s.reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var env wire.Envelope
		if err := wire.Unmarshal(line, &env); err != nil {
			// A malformed line is skipped; the stream itself is still good.
			s.logger.WithError(err).WithField("line", string(line)).Error("Decoding envelope")
			continue
		}

		s.consumeCh <- env
	}

	if err := scanner.Err(); err != nil {
		s.logger.WithError(err).Error("Reading input stream")
	}
}

// Consumer implements the Transport interface.
func (s *StdioTransport) Consumer() <-chan wire.Envelope {
	return s.consumeCh
}

// LocalAddr implements the Transport interface.
func (s *StdioTransport) LocalAddr() string {
	return "stdio"
}

// Send implements the Transport interface. The envelope is written as a
// single line followed by a newline.
func (s *StdioTransport) Send(env wire.Envelope) error {
	data, err := wire.Marshal(env)
	if err != nil {
		return err
	}

	s.shutdownLock.Lock()
	down := s.shutdown
	s.shutdownLock.Unlock()
	if down {
		return ErrTransportShutdown
	}

	s.writeLock.Lock()
	defer s.writeLock.Unlock()

	if _, err := s.writer.Write(data); err != nil {
		return err
	}
	if _, err := s.writer.Write([]byte("\n")); err != nil {
		return err
	}

	return nil
}

// Close is used to permanently disable the transport.
func (s *StdioTransport) Close() error {
	s.shutdownLock.Lock()
	defer s.shutdownLock.Unlock()

	s.shutdown = true

	return nil
}
