package db

// Repositories provides access to all database repositories
type Repositories struct {
	Channels      *ChannelRepository
	Videos        *VideoRepository
	ProgramBlocks *ProgramBlockRepository
	Preferences   *PreferenceRepository
	Settings      *SettingsRepository
}

// NewRepositories creates a new repository collection
func NewRepositories(db *DB) *Repositories {
	return &Repositories{
		Channels:      NewChannelRepository(db),
		Videos:        NewVideoRepository(db),
		ProgramBlocks: NewProgramBlockRepository(db),
		Preferences:   NewPreferenceRepository(db),
		Settings:      NewSettingsRepository(db),
	}
}
