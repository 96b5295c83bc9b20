package processor

import (
	"github.com/mauv0809/keybet/internal/catalog"
	"github.com/mauv0809/keybet/internal/history"
	"github.com/mauv0809/keybet/internal/notifier"
)

// Lookup is the catalog view used to validate a selection.
type Lookup interface {
	catalog.Lookup
}

// Store defines the history operations required by the processor.
type Store interface {
	history.Store
}

// Notifier defines the notification operations required by the processor.
type Notifier interface {
	notifier.Notifier
}
