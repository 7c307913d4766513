package loader

import "github.com/gofiber/fiber/v2"

// Feature is a self-contained vertical that can register routes on the app.
type Feature interface {
	// Name returns the name of the feature.
	Name() string
	// IsEnabled checks if the feature is enabled.
	IsEnabled() bool
	// Load registers the feature's routes.
	Load(app fiber.Router) error
}

// Manager registers and loads features in order.
type Manager struct {
	features []Feature
}

// NewManager creates an empty feature manager.
func NewManager() *Manager {
	return &Manager{}
}

// Register adds a feature to the manager.
func (m *Manager) Register(f Feature) {
	m.features = append(m.features, f)
}

// LoadAll loads every enabled feature.
func (m *Manager) LoadAll(app fiber.Router) error {
	for _, f := range m.features {
		if !f.IsEnabled() {
			continue
		}
		if err := f.Load(app); err != nil {
			return err
		}
	}
	return nil
}
