// Package client provides the admin-panel SDK for the identity service,
// currently the pending-action notification counter.
package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// DefaultPollInterval is how often the aggregator refreshes its count
const DefaultPollInterval = 60 * time.Second

// account is the subset of the /users payload the fallback filter needs
type account struct {
	Role       string `json:"role"`
	IsApproved bool   `json:"is_approved"`
}

// Aggregator polls the identity service for the number of items awaiting
// admin action. The primary source is the notifications feed; when it yields
// nothing the pending-employer list is derived from /users instead. The two
// sources are never summed. Every failure collapses the count to zero so the
// badge never alarms falsely.
type Aggregator struct {
	baseURL    string
	token      string
	interval   time.Duration
	httpClient *http.Client
	onCount    func(int)

	mu      sync.Mutex
	stopped bool
	stop    chan struct{}
}

// Option configures an Aggregator
type Option func(*Aggregator)

// WithInterval overrides the polling interval
func WithInterval(interval time.Duration) Option {
	return func(a *Aggregator) {
		a.interval = interval
	}
}

// WithHTTPClient overrides the HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(a *Aggregator) {
		a.httpClient = httpClient
	}
}

// NewAggregator creates a new notification-count aggregator. onCount receives
// every change to the displayed count and must be safe to call from another
// goroutine.
func NewAggregator(baseURL, token string, onCount func(int), opts ...Option) *Aggregator {
	a := &Aggregator{
		baseURL:  baseURL,
		token:    token,
		interval: DefaultPollInterval,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		onCount: onCount,
		stop:    make(chan struct{}),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start begins polling: once immediately, then on every interval tick. Polls
// are fire-and-forget with respect to each other; a slow response simply gets
// overwritten by whichever poll publishes last.
func (a *Aggregator) Start() {
	go func() {
		a.poll()

		ticker := time.NewTicker(a.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				go a.poll()
			case <-a.stop:
				return
			}
		}
	}()
}

// Stop tears the aggregator down. In-flight requests are not aborted, but a
// response arriving after Stop no longer reaches the callback.
func (a *Aggregator) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopped {
		return
	}
	a.stopped = true
	close(a.stop)
}

// publish delivers a count unless the aggregator has been torn down
func (a *Aggregator) publish(count int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopped {
		return
	}
	a.onCount(count)
}

// poll resets the count, fetches a fresh one and publishes it
func (a *Aggregator) poll() {
	a.publish(0)
	a.publish(a.currentCount())
}

// currentCount composes the two sources: primary preferred, fallback only
// when the primary yields nothing, zero on any failure.
func (a *Aggregator) currentCount() int {
	notifications, err := a.fetchNotifications()
	if err != nil {
		return 0
	}
	if len(notifications) > 0 {
		return len(notifications)
	}

	accounts, err := a.fetchAccounts()
	if err != nil {
		return 0
	}

	pending := 0
	for _, acct := range accounts {
		if acct.Role == "employer" && !acct.IsApproved {
			pending++
		}
	}
	return pending
}

func (a *Aggregator) get(path string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, a.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+a.token)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}

	return io.ReadAll(resp.Body)
}

// fetchNotifications tolerates both the {"notifications": [...]} envelope and
// a bare array. A body that is neither decodes to an empty list, which routes
// the poll to the fallback source.
func (a *Aggregator) fetchNotifications() ([]json.RawMessage, error) {
	body, err := a.get("/notifications")
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Notifications []json.RawMessage `json:"notifications"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Notifications != nil {
		return envelope.Notifications, nil
	}

	var bare []json.RawMessage
	if err := json.Unmarshal(body, &bare); err == nil {
		return bare, nil
	}

	return nil, nil
}

// fetchAccounts tolerates a bare array and the {"data": [...]} envelope
func (a *Aggregator) fetchAccounts() ([]account, error) {
	body, err := a.get("/users")
	if err != nil {
		return nil, err
	}

	var bare []account
	if err := json.Unmarshal(body, &bare); err == nil {
		return bare, nil
	}

	var envelope struct {
		Data []account `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Data != nil {
		return envelope.Data, nil
	}

	return nil, fmt.Errorf("unrecognized /users payload")
}
