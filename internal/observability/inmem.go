package observability

import "sync"

type observe struct {
	Kind   string  `json:"kind"`
	Name   string  `json:"name,omitempty"`
	Detail string  `json:"detail,omitempty"`
	Status int     `json:"status,omitempty"`
	DurMs  float64 `json:"durMs,omitempty"`
	DbMs   float64 `json:"dbMs,omitempty"`
}

type Totals struct {
	CacheHits     int               `json:"cacheHits"`
	CacheMisses   int               `json:"cacheMisses"`
	CacheErrors   int               `json:"cacheErrors"`
	NotifySent    int               `json:"notifySent"`
	NotifyFailed  int               `json:"notifyFailed"`
	NotifyDropped int               `json:"notifyDropped"`
	Breakers      map[string]string `json:"breakers"`
}

type Snapshot struct {
	Totals Totals    `json:"totals"`
	Recent []observe `json:"recent"`
}

// Inmem keeps counters and the last max observations.
type Inmem struct {
	mu     sync.Mutex
	last   []observe
	max    int
	totals Totals
}

func NewInmem(max int) *Inmem {
	return &Inmem{
		max: max,
	}
}

func (m *Inmem) push(v observe) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.max <= 0 {
		return
	}
	m.last = append(m.last, v)
	if len(m.last) > m.max {
		m.last = m.last[1:]
	}
}

func (m *Inmem) ObserveLookup(source string, cacheMs, dbMs float64) {
	m.push(observe{Kind: "lookup", Name: source, DurMs: cacheMs, DbMs: dbMs})
}

func (m *Inmem) ObserveWrite(op string, dbWriteMs float64) {
	m.push(observe{Kind: "write", Name: op, DbMs: dbWriteMs})
}

func (m *Inmem) ObserveHTTP(method, route string, status int, durMs float64) {
	m.push(observe{Kind: "http", Name: route, Detail: method, Status: status, DurMs: durMs})
}

func (m *Inmem) ObserveRemote(client, outcome string, durMs float64) {
	m.push(observe{Kind: "remote", Name: client, Detail: outcome, DurMs: durMs})
}

func (m *Inmem) ObserveBreaker(client, from, to string) {
	m.mu.Lock()
	if m.totals.Breakers == nil {
		m.totals.Breakers = make(map[string]string)
	}
	m.totals.Breakers[client] = to
	m.mu.Unlock()
	m.push(observe{Kind: "breaker", Name: client, Detail: from + "->" + to})
}

func (m *Inmem) ObserveNotify(transport string, ok bool) {
	m.mu.Lock()
	if ok {
		m.totals.NotifySent++
	} else {
		m.totals.NotifyFailed++
	}
	m.mu.Unlock()
	detail := "ok"
	if !ok {
		detail = "failed"
	}
	m.push(observe{Kind: "notify", Name: transport, Detail: detail})
}

func (m *Inmem) IncNotifyDropped() {
	m.mu.Lock()
	m.totals.NotifyDropped++
	m.mu.Unlock()
}

func (m *Inmem) IncCacheHit() {
	m.mu.Lock()
	m.totals.CacheHits++
	m.mu.Unlock()
}

func (m *Inmem) IncCacheMiss() {
	m.mu.Lock()
	m.totals.CacheMisses++
	m.mu.Unlock()
}

func (m *Inmem) IncCacheError() {
	m.mu.Lock()
	m.totals.CacheErrors++
	m.mu.Unlock()
}

// Snapshot returns a copy safe to serialize while observations keep coming.
func (m *Inmem) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := Snapshot{
		Totals: m.totals,
		Recent: append([]observe(nil), m.last...),
	}
	s.Totals.Breakers = make(map[string]string, len(m.totals.Breakers))
	for k, v := range m.totals.Breakers {
		s.Totals.Breakers[k] = v
	}
	return s
}
