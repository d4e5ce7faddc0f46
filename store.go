package awesomemap

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const stateObject = "viewport"

// savedState is the persisted form of a TransformState.
type savedState struct {
	TranslateX float64 `yaml:"translateX"`
	TranslateY float64 `yaml:"translateY"`
	Scale      float64 `yaml:"scale"`
}

// StateStore persists committed map states per key through gdata, so a
// viewer can reopen where it was left. A nil manager gives a store that
// saves nothing and loads nothing.
type StateStore struct {
	data   *gdata.Manager
	logger *log.Logger
}

// NewStateStore creates a store on data, which may be nil.
func NewStateStore(data *gdata.Manager, logger *log.Logger) *StateStore {
	if logger == nil {
		logger = defaultLogger(DefaultConfig())
	}
	return &StateStore{data: data, logger: logger}
}

// Persistent reports whether the store writes anywhere.
func (s *StateStore) Persistent() bool {
	return s.data != nil
}

// Save stores state under key. Timing and easing are not saved.
func (s *StateStore) Save(key string, state TransformState) error {
	if s.data == nil {
		return nil
	}
	if err := state.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(savedState{
		TranslateX: state.TranslateX,
		TranslateY: state.TranslateY,
		Scale:      state.Scale,
	})
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := s.data.SaveObjectProp(stateObject, key, data); err != nil {
		return fmt.Errorf("save state %q: %w", key, err)
	}
	s.logger.Debug("state saved", "key", key, "state", state)
	return nil
}

// Load returns the state stored under key. ok is false when nothing usable
// is stored.
func (s *StateStore) Load(key string) (state TransformState, ok bool, err error) {
	if s.data == nil || !s.data.ObjectPropExists(stateObject, key) {
		return IdentityState(), false, nil
	}
	data, err := s.data.LoadObjectProp(stateObject, key)
	if err != nil {
		return IdentityState(), false, fmt.Errorf("load state %q: %w", key, err)
	}
	var saved savedState
	if err := yaml.Unmarshal(data, &saved); err != nil {
		return IdentityState(), false, fmt.Errorf("unmarshal state %q: %w", key, err)
	}
	state = TransformState{TranslateX: saved.TranslateX, TranslateY: saved.TranslateY, Scale: saved.Scale}
	if err := state.Validate(); err != nil || state.Scale <= 0 {
		s.logger.Warn("ignoring stored state", "key", key, "state", state)
		return IdentityState(), false, nil
	}
	return state, true, nil
}
