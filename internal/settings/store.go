package settings

// Change describes the effect of a successful update.
type Change struct {
	// BoundaryChanged is set when the boundary circle radius differs from the
	// previous value. Placed charges must be cleared in response.
	BoundaryChanged bool
}

// Store owns the default and the user settings.
// It is written only from the UI goroutine; readers take snapshots with Get.
type Store struct {
	defaults Settings
	current  Settings
}

// NewStore creates a store whose user settings start equal to defaults.
// Lim is always forced to DomainLimit.
func NewStore(defaults Settings) *Store {
	defaults.Lim = DomainLimit
	return &Store{defaults: defaults, current: defaults}
}

// Get returns the current effective settings.
func (s *Store) Get() Settings {
	return s.current
}

// Defaults returns the default settings.
func (s *Store) Defaults() Settings {
	return s.defaults
}

// Update validates and applies c atomically. On error nothing changes.
func (s *Store) Update(c Candidate) (Change, error) {
	next, err := Apply(s.current, c)
	if err != nil {
		return Change{}, err
	}
	change := Change{BoundaryChanged: next.Radius != s.current.Radius}
	s.current = next
	return change, nil
}

// Reset returns a copy of the defaults for staging in a form.
// The stored settings are not modified until Update is called.
func (s *Store) Reset() Settings {
	return s.defaults
}
