package ziftr

import (
	"context"
	"errors"
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/dominant-strategies/go-ziftr/common"
	"github.com/dominant-strategies/go-ziftr/log"
	"github.com/dominant-strategies/go-ziftr/metrics_config"
)

// searchBatch is the number of nonces a worker searches between meter updates.
const searchBatch = 1 << 15

var (
	ErrEmptyNonceRange     = errors.New("empty nonce range")
	ErrNonceRangeExhausted = errors.New("nonce range exhausted without a solution")
	ErrMiningDisabled      = errors.New("local mining disabled")
	ErrEngineClosed        = errors.New("ziftr engine closed")
)

var (
	hashesCounter    = metrics_config.NewCounter("ziftr_hashes_total", "Candidate headers evaluated by local workers")
	solutionsCounter = metrics_config.NewCounter("ziftr_solutions_total", "Solutions found by local workers")
	hashrateGauge    = metrics_config.NewGauge("ziftr_hashrate", "Candidate headers evaluated per second in the current seal")
)

// Work is a sealing task: a header template, the target its final digest must
// meet and the nonce range [NonceStart, NonceMax) to search.
type Work struct {
	Header     Header
	Target     Target
	NonceStart uint32
	NonceMax   uint32
}

// Solution is an accepted header together with search bookkeeping.
type Solution struct {
	Header          Header
	Nonce           uint32
	Hash            common.Hash
	HashesAttempted uint64
	Worker          int
}

// Seal attempts to find a nonce in the work range whose final digest meets the
// work target. The range is split into disjoint slices, one per thread, and
// the first solution is sent on results. Sealing stops when stop is closed,
// when the engine is closed or when every slice is exhausted.
func (ziftr *Ziftr) Seal(work *Work, results chan<- *Solution, stop <-chan struct{}) error {
	return ziftr.seal(work, results, stop, nil, nil)
}

// Mine seals work and blocks until a solution is found, the range is
// exhausted, a thread count update disables mining or ctx is done.
func (ziftr *Ziftr) Mine(ctx context.Context, work *Work) (*Solution, error) {
	var (
		results   = make(chan *Solution, 1)
		stop      = make(chan struct{})
		exhausted = make(chan struct{})
		errc      = make(chan error, 1)
	)
	defer close(stop)
	if err := ziftr.seal(work, results, stop, exhausted, errc); err != nil {
		return nil, err
	}
	select {
	case result := <-results:
		return result, nil
	case <-exhausted:
		return nil, ErrNonceRangeExhausted
	case err := <-errc:
		return nil, err
	case <-ziftr.exitCh:
		return nil, ErrEngineClosed
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// seal starts the workers for work. exhausted is closed once every slice has
// been searched and errc receives the error of a failed restart; either may
// be nil.
func (ziftr *Ziftr) seal(work *Work, results chan<- *Solution, stop <-chan struct{}, exhausted chan<- struct{}, errc chan<- error) error {
	if work.NonceStart >= work.NonceMax {
		return ErrEmptyNonceRange
	}
	// If we're running a fake PoW, simply return the first nonce immediately
	if ziftr.config.PowMode == ModeFake {
		header := work.Header
		header.SetNonce(work.NonceStart)
		select {
		case results <- &Solution{Header: header, Nonce: work.NonceStart}:
		default:
			ziftr.config.Log.WithField("mode", "fake").Warn("Sealing result is not read by miner")
		}
		return nil
	}
	ziftr.lock.Lock()
	threads := ziftr.threads
	ziftr.lock.Unlock()
	if threads == 0 {
		threads = runtime.NumCPU()
	}
	if threads < 0 {
		threads = 0 // Allows disabling local mining without tearing down the engine
	}
	span := uint64(work.NonceMax - work.NonceStart)
	if threads == 0 {
		return ErrMiningDisabled
	}
	if uint64(threads) > span {
		threads = int(span)
	}
	ziftr.meter.reset()

	var (
		pend    sync.WaitGroup
		abort   = make(chan struct{})
		locals  = make(chan *Solution)
		done    = make(chan struct{})
		cancels = make([]*atomic.Bool, threads)
	)
	for i := 0; i < threads; i++ {
		first, last := nonceRange(work.NonceStart, span, threads, i)
		cancels[i] = new(atomic.Bool)
		pend.Add(1)
		go func(id int, first, last uint32, cancel *atomic.Bool) {
			defer func() {
				if r := recover(); r != nil {
					ziftr.config.Log.WithFields(log.Fields{
						"error":      r,
						"stacktrace": string(debug.Stack()),
					}).Error("Ziftr worker panicked")
				}
			}()
			defer pend.Done()
			ziftr.mine(work, id, first, last, cancel, abort, locals)
		}(i, first, last, cancels[i])
	}
	go func() {
		pend.Wait()
		close(done)
	}()
	// Wait until sealing is terminated or a nonce is found
	go func() {
		abortAll := func() {
			for _, cancel := range cancels {
				cancel.Store(true)
			}
			close(abort)
		}
		select {
		case <-stop:
			// Outside abort, stop all miner threads
			abortAll()
		case <-ziftr.exitCh:
			abortAll()
		case result := <-locals:
			// One of the threads found a block, abort all others
			solutionsCounter.Inc()
			select {
			case results <- result:
			default:
				ziftr.config.Log.WithFields(log.Fields{
					"mode":  "local",
					"nonce": result.Nonce,
					"hash":  result.Hash,
				}).Warn("Sealing result is not read by miner")
			}
			abortAll()
		case <-ziftr.update:
			// Thread count was changed on user request, restart
			abortAll()
			<-done
			if err := ziftr.seal(work, results, stop, exhausted, errc); err != nil {
				ziftr.config.Log.WithField("err", err).Error("Failed to restart sealing after update")
				if errc != nil {
					select {
					case errc <- err:
					default:
					}
				}
			}
			return
		case <-done:
			close(abort)
			ziftr.config.Log.WithFields(log.Fields{
				"first": work.NonceStart,
				"last":  work.NonceMax,
			}).Debug("Ziftr nonce range exhausted")
			if exhausted != nil {
				close(exhausted)
			}
			return
		}
		// Wait for all miners to terminate
		<-done
	}()
	return nil
}

// mine is the actual proof-of-work miner that searches [first, last) in
// batches, updating the hash meter between batches.
func (ziftr *Ziftr) mine(work *Work, id int, first, last uint32, cancel *atomic.Bool, abort <-chan struct{}, found chan<- *Solution) {
	logger := ziftr.config.Log.WithFields(log.Fields{
		"worker": id,
		"first":  first,
		"last":   last,
	})
	logger.Trace("Started ziftr search for new nonces")

	var attempts uint64
	for lo := first; lo < last; {
		hi := last
		if last-lo > searchBatch {
			hi = lo + searchBatch
		}
		outcome := Search(work.Header, work.Target, lo, hi, cancel)
		attempts += outcome.HashesAttempted
		ziftr.meter.mark(outcome.HashesAttempted)
		hashesCounter.Add(float64(outcome.HashesAttempted))
		hashrateGauge.Set(ziftr.meter.rate())

		switch outcome.Status {
		case Cancelled:
			logger.WithField("attempts", attempts).Trace("Ziftr nonce search aborted")
			return
		case Found:
			solution := &Solution{
				Header:          outcome.Header,
				Nonce:           outcome.Nonce,
				Hash:            outcome.Hash,
				HashesAttempted: attempts,
				Worker:          id,
			}
			select {
			case found <- solution:
				logger.WithFields(log.Fields{"attempts": attempts, "nonce": outcome.Nonce}).Trace("Ziftr nonce found and reported")
			case <-abort:
				logger.WithFields(log.Fields{"attempts": attempts, "nonce": outcome.Nonce}).Trace("Ziftr nonce found but discarded")
			}
			return
		}
		lo = hi
	}
	logger.WithField("attempts", attempts).Trace("Ziftr nonce slice exhausted")
}

// nonceRange returns the i-th of n contiguous slices of [start, start+span).
// Slice sizes differ by at most one.
func nonceRange(start uint32, span uint64, n, i int) (uint32, uint32) {
	size, rem := span/uint64(n), span%uint64(n)
	idx := uint64(i)
	first := uint64(start) + idx*size + min(idx, rem)
	last := first + size
	if idx < rem {
		last++
	}
	return uint32(first), uint32(last)
}
