package metrics

var _ Metrics = (*Usage)(nil)

// NewUsage returns a Metrics implementation that persists counters in s.
func NewUsage(s MetricsStore) *Usage {
	return &Usage{store: s}
}

func (u *Usage) IncPredictionRequests() { u.store.Increment(KeyPredictionRequests) }
func (u *Usage) IncPredictionFailures() { u.store.Increment(KeyPredictionFailures) }
func (u *Usage) IncLoginAttempts()      { u.store.Increment(KeyLoginAttempts) }
func (u *Usage) IncLoginFailures()      { u.store.Increment(KeyLoginFailures) }
func (u *Usage) IncCatalogRequests()    { u.store.Increment(KeyCatalogRequests) }
func (u *Usage) IncSlackNotifSent()     { u.store.Increment(KeySlackNotifSent) }
func (u *Usage) IncSlackNotifFailed()   { u.store.Increment(KeySlackNotifFailed) }
func (u *Usage) IncEventsPublished()    { u.store.Increment(KeyEventsPublished) }

func (u *Usage) ObservePredictionDuration(float64) {}
func (u *Usage) SetCatalogTeams(int)               {}
func (u *Usage) SetStartupTime(float64)            {}
