package config

// SeedConfig controls the demo-data seeder.
type SeedConfig struct {
	// OnStart ensures seed data exists during application startup. The
	// seeder is idempotent, so leaving this on is safe across restarts.
	OnStart bool `env:"ON_START" envDefault:"true"`

	// Jobs, Candidates, and Assessments are the dataset volumes generated
	// into an empty database. Zero falls back to the seeder defaults.
	Jobs        int `env:"JOBS"        envDefault:"25"`
	Candidates  int `env:"CANDIDATES"  envDefault:"1000"`
	Assessments int `env:"ASSESSMENTS" envDefault:"3"`

	// RandomSeed fixes the generator for reproducible datasets.
	// Zero derives a fresh seed per process.
	RandomSeed uint64 `env:"RANDOM_SEED" envDefault:"0"`
}

// Sanitize applies guardrails to seeder configuration values.
func (s *SeedConfig) Sanitize() {
	if s.Jobs < 0 {
		s.Jobs = 0
	}
	if s.Candidates < 0 {
		s.Candidates = 0
	}
	if s.Assessments < 0 {
		s.Assessments = 0
	}
	// Each assessment attaches to a distinct job.
	if s.Assessments > s.Jobs && s.Jobs > 0 {
		s.Assessments = s.Jobs
	}
}
