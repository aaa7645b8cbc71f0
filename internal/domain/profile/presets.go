package profile

// PresetAvatar is one of the built-in avatar choices
type PresetAvatar struct {
	ID  int    `json:"id"`
	Key string `json:"key"`
}

// The six built-in avatars shipped with the app. Keys point into the
// shared avatar storage bucket.
var presetAvatars = []PresetAvatar{
	{ID: 1, Key: "avatars/presets/avatar1.png"},
	{ID: 2, Key: "avatars/presets/avatar2.png"},
	{ID: 3, Key: "avatars/presets/avatar3.png"},
	{ID: 4, Key: "avatars/presets/avatar4.png"},
	{ID: 5, Key: "avatars/presets/avatar5.png"},
	{ID: 6, Key: "avatars/presets/avatar6.png"},
}

// PresetByID returns the preset with the given ID, or nil
func PresetByID(id int) *PresetAvatar {
	for i := range presetAvatars {
		if presetAvatars[i].ID == id {
			return &presetAvatars[i]
		}
	}
	return nil
}

// Presets returns all built-in avatars
func Presets() []PresetAvatar {
	return presetAvatars
}
