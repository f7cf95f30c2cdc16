package engine

import (
	"bufio"
	"encoding/json"
	"net"
	"os"
	"sync"
	"testing"
	"time"

	"tempo/internal/vocab"
)

// fakeDiscovery is a hand-driven discovery signal.
type fakeDiscovery struct {
	mu       sync.Mutex
	state    *State
	onChange func()
}

func (d *fakeDiscovery) Read() (*State, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state, nil
}

func (d *fakeDiscovery) Watch(onChange func()) func() {
	d.mu.Lock()
	d.onChange = onChange
	d.mu.Unlock()
	return func() {}
}

func (d *fakeDiscovery) set(state *State) {
	d.mu.Lock()
	d.state = state
	fire := d.onChange
	d.mu.Unlock()
	if fire != nil {
		fire()
	}
}

// livePid is a pid Running() reports as alive.
func livePid() int {
	return os.Getpid()
}

func startClient(t *testing.T) (*SyncClient, *fakeDiscovery, *vocab.Registry, chan net.Conn) {
	t.Helper()
	reg := vocab.New()
	disc := &fakeDiscovery{}
	serverSide := make(chan net.Conn, 4)
	client := NewSyncClient(Options{
		Registry:    reg,
		Discovery:   disc,
		SettleDelay: 5 * time.Millisecond,
		Dial: func(addr string) (net.Conn, error) {
			a, b := net.Pipe()
			serverSide <- b
			return a, nil
		},
	})
	client.Start()
	t.Cleanup(client.Stop)
	return client, disc, reg, serverSide
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestConnectSendsThreeRequests(t *testing.T) {
	client, disc, _, serverSide := startClient(t)
	disc.set(&State{Port: 5720, Pid: livePid()})

	conn := <-serverSide
	defer conn.Close()
	reader := bufio.NewReader(conn)
	var types []string
	for i := 0; i < 3; i++ {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			t.Fatalf("read request %d: %v", i, err)
		}
		var req request
		if err := json.Unmarshal(line, &req); err != nil {
			t.Fatalf("bad request frame %q: %v", line, err)
		}
		types = append(types, req.Type)
	}
	want := []string{"getSamples", "getBanks", "getSounds"}
	for i := range want {
		if types[i] != want[i] {
			t.Fatalf("requests = %v, want %v", types, want)
		}
	}
	waitFor(t, "connected state", func() bool { return client.State() == StateConnected })
}

func TestSamplesMessageReplacesRegistry(t *testing.T) {
	_, disc, reg, serverSide := startClient(t)
	disc.set(&State{Port: 5720, Pid: livePid()})
	conn := <-serverSide
	defer conn.Close()
	drainRequests(t, conn)

	conn.Write([]byte(`{"type":"samples","samples":["zz1"]}` + "\n"))
	waitFor(t, "sample update", func() bool { return reg.HasSample("zz1") })
	if !reg.HasSample("bd") {
		t.Fatal("defaults must survive the engine update")
	}

	conn.Write([]byte(`{"type":"samples","samples":["zz2"]}` + "\n"))
	waitFor(t, "wholesale replace", func() bool { return reg.HasSample("zz2") && !reg.HasSample("zz1") })
}

func TestPartialFramesReassembled(t *testing.T) {
	_, disc, reg, serverSide := startClient(t)
	disc.set(&State{Port: 5720, Pid: livePid()})
	conn := <-serverSide
	defer conn.Close()
	drainRequests(t, conn)

	full := `{"type":"banks","banks":["TestBank"]}` + "\n"
	conn.Write([]byte(full[:10]))
	time.Sleep(10 * time.Millisecond)
	if reg.HasBank("TestBank") {
		t.Fatal("partial frame must stay buffered")
	}
	conn.Write([]byte(full[10:]))
	waitFor(t, "bank update", func() bool { return reg.HasBank("TestBank") })
}

func TestMalformedAndUnknownLinesIgnored(t *testing.T) {
	_, disc, reg, serverSide := startClient(t)
	disc.set(&State{Port: 5720, Pid: livePid()})
	conn := <-serverSide
	defer conn.Close()
	drainRequests(t, conn)

	conn.Write([]byte("not json at all\n"))
	conn.Write([]byte(`{"type":"mystery","samples":["zz9"]}` + "\n"))
	conn.Write([]byte(`{"type":"sounds","sounds":["synthy"]}` + "\n"))
	waitFor(t, "sound update", func() bool { return reg.HasSample("synthy") })
	if reg.HasSample("zz9") {
		t.Fatal("unknown message type must be ignored")
	}
}

func TestEngineGoneTearsDown(t *testing.T) {
	client, disc, _, serverSide := startClient(t)
	disc.set(&State{Port: 5720, Pid: livePid()})
	conn := <-serverSide
	defer conn.Close()
	drainRequests(t, conn)
	waitFor(t, "connected", func() bool { return client.State() == StateConnected })

	disc.set(nil)
	waitFor(t, "disconnected", func() bool { return client.State() == StateDisconnected })
}

func TestNewEngineTriggersReconnect(t *testing.T) {
	client, disc, _, serverSide := startClient(t)
	disc.set(&State{Port: 5720, Pid: livePid()})
	first := <-serverSide
	defer first.Close()
	drainRequests(t, first)
	waitFor(t, "connected", func() bool { return client.State() == StateConnected })

	disc.set(&State{Port: 5721, Pid: livePid()})
	second := <-serverSide
	defer second.Close()
	drainRequests(t, second)
	waitFor(t, "reconnected", func() bool {
		st := client.Engine()
		return client.State() == StateConnected && st != nil && st.Port == 5721
	})
}

func TestRapidDiscoveryChangesSingleTimer(t *testing.T) {
	client, disc, _, serverSide := startClient(t)
	// Burst of changes before any settle delay elapses: only the last
	// engine should be dialed.
	for port := 5720; port < 5725; port++ {
		disc.set(&State{Port: port, Pid: livePid()})
	}
	conn := <-serverSide
	defer conn.Close()
	drainRequests(t, conn)
	waitFor(t, "connected", func() bool { return client.State() == StateConnected })

	select {
	case extra := <-serverSide:
		extra.Close()
		t.Fatal("more than one dial after a change burst")
	case <-time.After(50 * time.Millisecond):
	}
	if st := client.Engine(); st == nil || st.Port != 5724 {
		t.Fatalf("connected to %+v, want port 5724", st)
	}
}

func TestStaleDialDoesNotDisplaceNewerConnection(t *testing.T) {
	reg := vocab.New()
	disc := &fakeDiscovery{}
	serverSide := make(chan net.Conn, 4)
	release := make(chan struct{})
	client := NewSyncClient(Options{
		Registry:    reg,
		Discovery:   disc,
		SettleDelay: 5 * time.Millisecond,
		Dial: func(addr string) (net.Conn, error) {
			if addr == "127.0.0.1:1111" {
				<-release
			}
			a, b := net.Pipe()
			serverSide <- b
			return a, nil
		},
	})
	client.Start()
	t.Cleanup(client.Stop)

	disc.set(&State{Port: 1111, Pid: livePid()})
	// Let the first attempt enter its blocked dial before the engine moves.
	time.Sleep(20 * time.Millisecond)

	disc.set(&State{Port: 2222, Pid: livePid()})
	live := <-serverSide
	defer live.Close()
	drainRequests(t, live)
	waitFor(t, "connected to the new engine", func() bool {
		st := client.Engine()
		return client.State() == StateConnected && st != nil && st.Port == 2222
	})

	// The old dial finally completes; its socket must be discarded.
	close(release)
	stale := <-serverSide
	defer stale.Close()
	stale.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, err := stale.Read(make([]byte, 1)); err == nil {
		t.Fatal("stale dial's socket must be closed, not adopted")
	}
	if st := client.Engine(); st == nil || st.Port != 2222 {
		t.Fatalf("engine = %+v, want port 2222", st)
	}
	if client.State() != StateConnected {
		t.Fatalf("state = %v, want connected", client.State())
	}
}

func TestStopIsIdempotentAndFinal(t *testing.T) {
	client, disc, _, _ := startClient(t)
	client.Stop()
	client.Stop()
	disc.set(&State{Port: 5720, Pid: livePid()})
	time.Sleep(20 * time.Millisecond)
	if client.State() != StateDisconnected {
		t.Fatal("stopped client must not reconnect")
	}
}

func drainRequests(t *testing.T, conn net.Conn) {
	t.Helper()
	reader := bufio.NewReader(conn)
	for i := 0; i < 3; i++ {
		if _, err := reader.ReadBytes('\n'); err != nil {
			t.Fatalf("drain request %d: %v", i, err)
		}
	}
}
