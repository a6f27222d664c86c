package ziftr

import (
	"sync"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dominant-strategies/go-ziftr/log"
)

// Mode defines the type and amount of PoW verification a ziftr engine makes.
type Mode uint

const (
	ModeNormal Mode = iota
	ModeFake
)

const defaultCacheSize = 1024

// Config are the configuration parameters of the ziftr engine.
type Config struct {
	PowMode Mode

	// Threads is the initial number of mining threads. Zero uses every core,
	// a negative value disables local mining.
	Threads int

	// CacheSize bounds the number of memoised seal verifications.
	CacheSize int

	Log log.Logger `toml:"-"`
}

// Ziftr is a proof-of-work engine using the ziftr hash cascade.
type Ziftr struct {
	config Config

	// Mining related fields
	threads int           // Number of threads to mine on if mining
	update  chan struct{} // Notification channel to update mining parameters
	meter   hashMeter
	exitCh  chan struct{}

	verified *lru.Cache[sealKey, error]

	lock      sync.Mutex // Ensures thread safety for the mining fields
	closeOnce sync.Once  // Ensures exit channel will not be closed twice.
}

// New creates a ziftr engine.
func New(config Config) *Ziftr {
	if config.Log == nil {
		config.Log = log.Global
	}
	if config.CacheSize <= 0 {
		config.CacheSize = defaultCacheSize
	}
	verified, err := lru.New[sealKey, error](config.CacheSize)
	if err != nil {
		config.Log.WithField("err", err).Fatal("Failed to create seal verification cache")
	}
	return &Ziftr{
		config:   config,
		threads:  config.Threads,
		update:   make(chan struct{}),
		exitCh:   make(chan struct{}),
		verified: verified,
	}
}

// NewFaker creates a ziftr engine with a fake PoW scheme that accepts every
// seal and seals without hashing.
func NewFaker() *Ziftr {
	return New(Config{PowMode: ModeFake, Log: log.NewNullLogger()})
}

// Close closes the exit channel to notify all backend threads exiting.
func (ziftr *Ziftr) Close() error {
	ziftr.closeOnce.Do(func() {
		close(ziftr.exitCh)
	})
	return nil
}

// Threads returns the number of mining threads currently enabled. This doesn't
// necessarily mean that mining is running!
func (ziftr *Ziftr) Threads() int {
	ziftr.lock.Lock()
	defer ziftr.lock.Unlock()

	return ziftr.threads
}

// SetThreads updates the number of mining threads currently enabled. Calling
// this method does not start mining, only sets the thread count. If zero is
// specified, the miner will use all cores of the machine. Setting a thread
// count below zero disables local mining: Seal returns ErrMiningDisabled.
func (ziftr *Ziftr) SetThreads(threads int) {
	ziftr.lock.Lock()
	defer ziftr.lock.Unlock()

	// Update the threads and ping any running seal to pull in any changes
	ziftr.threads = threads
	select {
	case ziftr.update <- struct{}{}:
	default:
	}
}

// Hashrate returns the candidates evaluated per second since the last seal
// started.
func (ziftr *Ziftr) Hashrate() float64 {
	return ziftr.meter.rate()
}

// hashMeter averages evaluated candidates over the current sealing session.
type hashMeter struct {
	hashes  atomic.Uint64
	started atomic.Int64
}

func (m *hashMeter) reset() {
	m.hashes.Store(0)
	m.started.Store(time.Now().UnixNano())
}

func (m *hashMeter) mark(n uint64) {
	m.hashes.Add(n)
}

func (m *hashMeter) rate() float64 {
	started := m.started.Load()
	if started == 0 {
		return 0
	}
	elapsed := time.Since(time.Unix(0, started)).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(m.hashes.Load()) / elapsed
}
