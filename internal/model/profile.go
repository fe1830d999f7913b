package model

import "strconv"

// ProfileSlots is the number of connection slots kept in ConnectionConfig.
const ProfileSlots = 3

// ConnectionProfile is one saved server connection.
type ConnectionProfile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ConnectionConfig is the persisted state of the config store (blob "config-storage").
type ConnectionConfig struct {
	Profiles        []ConnectionProfile `json:"profiles"`
	ActiveProfileID string              `json:"activeProfileId"`
}

// DefaultConnectionConfig returns three empty slots named "Connection 1".."Connection 3"
// with slot "1" active. No server URL is compiled in.
func DefaultConnectionConfig() ConnectionConfig {
	profiles := make([]ConnectionProfile, 0, ProfileSlots)

	for i := 1; i <= ProfileSlots; i++ {
		id := strconv.Itoa(i)
		profiles = append(profiles, ConnectionProfile{
			ID:   id,
			Name: "Connection " + id,
		})
	}

	return ConnectionConfig{
		Profiles:        profiles,
		ActiveProfileID: "1",
	}
}

// Find returns the index of the profile with the given id, or -1.
func (c ConnectionConfig) Find(id string) int {
	for i, p := range c.Profiles {
		if p.ID == id {
			return i
		}
	}

	return -1
}

// Clone returns a deep copy.
func (c ConnectionConfig) Clone() ConnectionConfig {
	out := ConnectionConfig{ActiveProfileID: c.ActiveProfileID}
	out.Profiles = append([]ConnectionProfile(nil), c.Profiles...)

	return out
}
