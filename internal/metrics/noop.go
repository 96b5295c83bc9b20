package metrics

var _ Metrics = Noop{}

// Noop discards every metric.
type Noop struct{}

func (Noop) IncPredictionRequests()            {}
func (Noop) IncPredictionFailures()            {}
func (Noop) ObservePredictionDuration(float64) {}
func (Noop) IncLoginAttempts()                 {}
func (Noop) IncLoginFailures()                 {}
func (Noop) IncCatalogRequests()               {}
func (Noop) IncSlackNotifSent()                {}
func (Noop) IncSlackNotifFailed()              {}
func (Noop) IncEventsPublished()               {}
func (Noop) SetCatalogTeams(int)               {}
func (Noop) SetStartupTime(float64)            {}
