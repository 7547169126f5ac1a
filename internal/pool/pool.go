package pool

import (
	"sync"
	"time"

	"github.com/lottolab/powerpick/pkg/common/logger"
)

// recoveryInterval is how long a failed endpoint sits out before it is
// eligible for rotation again.
const recoveryInterval = 30 * time.Second

// Pool rotates through feed endpoints, skipping ones that recently
// failed so a flaky mirror does not stall every refresh.
type Pool struct {
	endpoints  []string
	currentIdx int
	failed     map[string]time.Time
	mutex      sync.RWMutex
}

func New(endpoints []string) *Pool {
	return &Pool{
		endpoints: endpoints,
		failed:    make(map[string]time.Time),
	}
}

// Next returns the next healthy endpoint in round-robin order. When every
// endpoint is marked failed the failure map is reset and the first one is
// returned, since retrying a known-bad endpoint beats returning nothing.
func (p *Pool) Next() string {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if len(p.endpoints) == 0 {
		return ""
	}

	for i := 0; i < len(p.endpoints); i++ {
		endpoint := p.endpoints[p.currentIdx]
		p.currentIdx = (p.currentIdx + 1) % len(p.endpoints)

		if failTime, exists := p.failed[endpoint]; !exists || time.Since(failTime) > recoveryInterval {
			return endpoint
		}
	}

	p.failed = make(map[string]time.Time)
	return p.endpoints[0]
}

func (p *Pool) MarkFailed(endpoint string) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.failed[endpoint] = time.Now()
	logger.Debug("Feed endpoint marked as failed", "endpoint", endpoint)
}

func (p *Pool) MarkHealthy(endpoint string) {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	delete(p.failed, endpoint)
	logger.Debug("Feed endpoint marked as healthy", "endpoint", endpoint)
}

func (p *Pool) Stats() (total, healthy, failed int) {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	total = len(p.endpoints)
	failed = len(p.failed)
	healthy = total - failed
	return
}
