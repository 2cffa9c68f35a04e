package comrade

import "github.com/sirupsen/logrus"

// SetLogger swaps the package-level logrus.Entry Comrade logs through.
// Comrade builds no logging setup of its own (formatter/writer wiring,
// rotation, sampling — that belongs to the embedding CLI, out of scope
// per spec.md §1); embedders that already run logrus can simply pass
// their own entry so Comrade's Warn/Debug lines carry their fields.
func SetLogger(entry *logrus.Entry) {
	log = entry
}
