package engine

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"time"

	"tempo/internal/vocab"
)

// ConnState is the sync client's connection lifecycle state.
type ConnState int32

const (
	StateDisconnected ConnState = iota
	StateConnecting
	StateConnected
)

func (s ConnState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	}
	return "unknown"
}

// DefaultSettleDelay gives a freshly advertised engine time to finish
// booting before we dial it.
const DefaultSettleDelay = 500 * time.Millisecond

// DialFunc opens the engine socket. Overridable in tests.
type DialFunc func(addr string) (net.Conn, error)

// Options configures a SyncClient.
type Options struct {
	Registry    *vocab.Registry
	Discovery   Discovery
	SettleDelay time.Duration
	Logf        func(format string, args ...any)
	Dial        DialFunc
}

// SyncClient maintains zero or one live connection to the engine and keeps
// the registry's dynamic vocabulary current. Connectivity problems degrade
// the vocabulary to defaults; they never surface as user diagnostics.
type SyncClient struct {
	registry *vocab.Registry
	disc     Discovery
	settle   time.Duration
	logf     func(format string, args ...any)
	dial     DialFunc

	mu        sync.Mutex
	state     ConnState
	conn      net.Conn
	current   *State
	target    *State
	reconnect *time.Timer
	stopWatch func()
	closed    bool
}

func NewSyncClient(opts Options) *SyncClient {
	settle := opts.SettleDelay
	if settle <= 0 {
		settle = DefaultSettleDelay
	}
	logf := opts.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}
	dial := opts.Dial
	if dial == nil {
		dial = func(addr string) (net.Conn, error) {
			return net.DialTimeout("tcp", addr, 2*time.Second)
		}
	}
	return &SyncClient{
		registry: opts.Registry,
		disc:     opts.Discovery,
		settle:   settle,
		logf:     logf,
		dial:     dial,
	}
}

// Start reads the discovery signal once and begins watching it.
func (c *SyncClient) Start() {
	c.mu.Lock()
	if c.closed || c.stopWatch != nil {
		c.mu.Unlock()
		return
	}
	c.stopWatch = c.disc.Watch(c.onDiscoveryChange)
	c.mu.Unlock()
	c.onDiscoveryChange()
}

// Stop tears the client down: discovery watch first, then any pending
// reconnect timer, then the socket. That order prevents a reconnect from
// firing mid-teardown.
func (c *SyncClient) Stop() {
	c.mu.Lock()
	c.closed = true
	stopWatch := c.stopWatch
	c.stopWatch = nil
	if c.reconnect != nil {
		c.reconnect.Stop()
		c.reconnect = nil
	}
	conn := c.conn
	c.conn = nil
	c.current = nil
	c.state = StateDisconnected
	c.mu.Unlock()

	if stopWatch != nil {
		stopWatch()
	}
	if conn != nil {
		conn.Close()
	}
}

// State returns the current connection state.
func (c *SyncClient) State() ConnState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Engine returns the advertisement of the engine we are connected to.
func (c *SyncClient) Engine() *State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// onDiscoveryChange reacts to the discovery signal: connect to a new live
// engine, tear down when the engine is gone, ignore no-ops.
func (c *SyncClient) onDiscoveryChange() {
	st, err := c.disc.Read()
	if err != nil {
		c.logf("engine discovery read failed: %v", err)
		st = nil
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if st == nil || !st.Running() {
		conn := c.dropConnLocked()
		c.mu.Unlock()
		if conn != nil {
			conn.Close()
			c.logf("engine gone, disconnected")
		}
		return
	}
	if st.Equal(c.current) && c.state != StateDisconnected {
		c.mu.Unlock()
		return
	}
	conn := c.dropConnLocked()
	c.scheduleReconnectLocked(st)
	c.mu.Unlock()
	if conn != nil {
		conn.Close()
	}
}

// dropConnLocked detaches the current socket and resets state; the caller
// closes the returned conn outside the lock.
func (c *SyncClient) dropConnLocked() net.Conn {
	conn := c.conn
	c.conn = nil
	c.current = nil
	c.target = nil
	c.state = StateDisconnected
	if c.reconnect != nil {
		c.reconnect.Stop()
		c.reconnect = nil
	}
	return conn
}

// scheduleReconnectLocked arms the settle-delay timer. At most one timer is
// live: arming a new one cancels a pending one. The target records which
// advertisement the attempt is for, so a stale dial can be recognized.
func (c *SyncClient) scheduleReconnectLocked(st *State) {
	if c.reconnect != nil {
		c.reconnect.Stop()
	}
	c.state = StateConnecting
	c.target = st
	c.reconnect = time.AfterFunc(c.settle, func() {
		c.connect(st)
	})
}

// connect dials the advertised engine. Every re-check of c.target below
// guards against a dial finishing after discovery has moved to a different
// engine: a stale attempt must never displace the newer connection.
func (c *SyncClient) connect(st *State) {
	c.mu.Lock()
	if c.closed || c.target != st {
		c.mu.Unlock()
		return
	}
	c.state = StateConnecting
	c.mu.Unlock()

	addr := fmt.Sprintf("127.0.0.1:%d", st.Port)
	conn, err := c.dial(addr)
	if err != nil {
		c.logf("engine dial %s failed: %v", addr, err)
		c.mu.Lock()
		if !c.closed && c.target == st {
			c.state = StateDisconnected
		}
		c.mu.Unlock()
		return
	}

	c.mu.Lock()
	if c.closed || c.target != st {
		c.mu.Unlock()
		conn.Close()
		return
	}
	c.conn = conn
	c.current = st
	c.state = StateConnected
	c.mu.Unlock()
	c.logf("connected to engine on %s (pid %d)", addr, st.Pid)

	for _, t := range []string{reqGetSamples, reqGetBanks, reqGetSounds} {
		if err := writeRequest(conn, t); err != nil {
			c.logf("engine request %s failed: %v", t, err)
			break
		}
	}
	go c.readLoop(conn)
}

func writeRequest(conn net.Conn, typ string) error {
	payload, err := json.Marshal(request{Type: typ})
	if err != nil {
		return err
	}
	_, err = conn.Write(append(payload, '\n'))
	return err
}

// readLoop drains the socket. TCP has no message boundaries, so frames are
// reassembled by splitting on newlines; a partial line stays buffered until
// its terminator arrives.
func (c *SyncClient) readLoop(conn net.Conn) {
	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var msg message
		if err := json.Unmarshal(line, &msg); err != nil {
			continue
		}
		c.handleMessage(&msg)
	}
	if err := scanner.Err(); err != nil {
		c.logf("engine socket error: %v", err)
	}

	c.mu.Lock()
	if c.conn == conn {
		c.conn = nil
		c.current = nil
		c.state = StateDisconnected
	}
	c.mu.Unlock()
	conn.Close()
}

func (c *SyncClient) handleMessage(msg *message) {
	switch msg.Type {
	case msgSamples:
		c.registry.ReplaceSamples(msg.Samples)
	case msgBanks:
		c.registry.ReplaceBanks(msg.Banks)
	case msgSounds:
		c.registry.ReplaceSounds(msg.Sounds)
	}
}
