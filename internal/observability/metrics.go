package observability

type Metrics interface {
	ObserveLookup(source string, cacheMs, dbMs float64)
	ObserveWrite(op string, dbWriteMs float64)
	ObserveHTTP(method, route string, status int, durMs float64)
	ObserveRemote(client, outcome string, durMs float64)
	ObserveBreaker(client, from, to string)
	ObserveNotify(transport string, ok bool)
	IncNotifyDropped()
	IncCacheHit()
	IncCacheMiss()
	IncCacheError()
}

type Noop struct{}

func NewNoop() Noop { return Noop{} }

func (Noop) ObserveLookup(string, float64, float64)   {}
func (Noop) ObserveWrite(string, float64)             {}
func (Noop) ObserveHTTP(string, string, int, float64) {}
func (Noop) ObserveRemote(string, string, float64)    {}
func (Noop) ObserveBreaker(string, string, string)    {}
func (Noop) ObserveNotify(string, bool)               {}
func (Noop) IncNotifyDropped()                        {}
func (Noop) IncCacheHit()                             {}
func (Noop) IncCacheMiss()                            {}
func (Noop) IncCacheError()                           {}
