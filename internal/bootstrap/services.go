package bootstrap

import (
	"database/sql"
	"log/slog"

	"github.com/talentflow/ui-api/config"
	"github.com/talentflow/ui-api/internal/core"
	"github.com/talentflow/ui-api/internal/data"
	"github.com/talentflow/ui-api/internal/seed"
	"github.com/talentflow/ui-api/internal/service"
	"github.com/talentflow/ui-api/internal/simulator"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Jobs        *service.JobService
	Candidates  *service.CandidateService
	Assessments *service.AssessmentService
	Seeder      *seed.Seeder
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config *config.AppConfig
	DB     *sql.DB
	Logger *slog.Logger
}

// serviceRepositories groups data adapters backing service ports.
type serviceRepositories struct {
	Jobs        *data.JobRepo
	Candidates  *data.CandidateRepo
	Events      *data.EventRepo
	Assessments *data.AssessmentRepo
	Responses   *data.ResponseRepo
	Meta        *data.MetaRepo
}

// buildRepositories builds repositories backing service ports; no business rules here.
func buildRepositories(db *sql.DB) *serviceRepositories {
	return &serviceRepositories{
		Jobs:        data.NewJobRepo(db),
		Candidates:  data.NewCandidateRepo(db),
		Events:      data.NewEventRepo(db),
		Assessments: data.NewAssessmentRepo(db),
		Responses:   data.NewResponseRepo(db),
		Meta:        data.NewMetaRepo(db),
	}
}

// buildInjector returns the configured failure injector, or nil when the
// simulator is off. Services treat a nil injector as "never fail".
func buildInjector(cfg config.SimulatorConfig) core.FailureInjector {
	if !cfg.Enabled {
		return nil
	}
	return simulator.NewInjector(simulator.InjectorOptions{
		WriteRate:   cfg.WriteFailureRate,
		ReorderRate: cfg.ReorderFailureRate,
	})
}

// buildLatencyPolicy returns the per-request delay policy for the simulator
// configuration.
func buildLatencyPolicy(cfg config.SimulatorConfig) simulator.LatencyPolicy {
	if !cfg.Enabled {
		return simulator.NoLatency{}
	}
	return simulator.UniformLatency{Min: cfg.MinLatency, Max: cfg.MaxLatency}
}

// NewServices wires repositories, the failure injector, and the seeder into
// the application service container.
func NewServices(deps *ServiceDeps) ServiceContainer {
	if deps == nil {
		return ServiceContainer{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config
	if cfg == nil {
		cfg = &config.AppConfig{}
	}

	repos := buildRepositories(deps.DB)
	injector := buildInjector(cfg.Simulator)

	return ServiceContainer{
		Jobs: service.NewJobService(service.JobServiceOptions{
			Jobs:     repos.Jobs,
			Injector: injector,
		}),
		Candidates: service.NewCandidateService(service.CandidateServiceOptions{
			Candidates: repos.Candidates,
			Events:     repos.Events,
			Jobs:       repos.Jobs,
			Injector:   injector,
		}),
		Assessments: service.NewAssessmentService(service.AssessmentServiceOptions{
			Assessments: repos.Assessments,
			Responses:   repos.Responses,
			Jobs:        repos.Jobs,
			Candidates:  repos.Candidates,
			Injector:    injector,
		}),
		Seeder: seed.NewSeeder(seed.SeederOptions{
			DB:     deps.DB,
			Meta:   repos.Meta,
			Logger: logger,
			Counts: seed.Counts{
				Jobs:        cfg.Seed.Jobs,
				Candidates:  cfg.Seed.Candidates,
				Assessments: cfg.Seed.Assessments,
			},
			RandomSeed: cfg.Seed.RandomSeed,
		}),
	}
}
