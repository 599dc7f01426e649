package installer

import (
	"context"

	"go.trai.ch/setup-cpp/internal/core/domain"
	"go.trai.ch/setup-cpp/internal/core/ports"
	"go.trai.ch/zerr"
)

// Planner is implemented by installers that download a release archive.
type Planner interface {
	Plan(spec domain.ToolSpec) (ArchivePlan, error)
}

// Dispatcher routes install requests to the installer registered for the tool.
type Dispatcher struct {
	installers map[string]ports.Installer
	settings   domain.Settings
}

// NewDispatcher creates a Dispatcher over installers.
func NewDispatcher(settings domain.Settings, installers ...ports.Installer) *Dispatcher {
	d := &Dispatcher{
		installers: make(map[string]ports.Installer, len(installers)),
		settings:   settings,
	}
	for _, inst := range installers {
		d.installers[inst.Name()] = inst
	}
	return d
}

// Resolve builds the ToolSpec for req and returns its installer.
// Unsupported platforms fail here, before any network access.
func (d *Dispatcher) Resolve(req domain.Request) (domain.ToolSpec, ports.Installer, error) {
	inst, ok := d.installers[req.Tool]
	if !ok {
		return domain.ToolSpec{}, nil, zerr.With(domain.ErrUnknownTool, "tool", req.Tool)
	}

	spec, err := domain.NewToolSpec(req.Tool, req.Version, d.settings.OS, d.settings.Arch)
	if err != nil {
		return domain.ToolSpec{}, nil, err
	}

	if planner, ok := inst.(Planner); ok {
		if _, err := planner.Plan(spec); err != nil {
			return domain.ToolSpec{}, nil, zerr.With(err, "tool", req.Tool)
		}
	}
	return spec, inst, nil
}

// Install installs the tool named by req.
func (d *Dispatcher) Install(ctx context.Context, req domain.Request) (*domain.CacheEntry, error) {
	spec, inst, err := d.Resolve(req)
	if err != nil {
		return nil, err
	}
	return inst.Install(ctx, spec)
}

// Describe returns the download URL for req, or "" for tools installed
// without an archive.
func (d *Dispatcher) Describe(req domain.Request) (string, error) {
	spec, inst, err := d.Resolve(req)
	if err != nil {
		return "", err
	}
	planner, ok := inst.(Planner)
	if !ok {
		return "", nil
	}
	plan, err := planner.Plan(spec)
	if err != nil {
		return "", err
	}
	return plan.URL, nil
}

// Tools returns the registered tool names in installation order.
func (d *Dispatcher) Tools() []string {
	tools := make([]string, 0, len(d.installers))
	for _, tool := range domain.ToolOrder {
		if _, ok := d.installers[tool]; ok {
			tools = append(tools, tool)
		}
	}
	return tools
}

// New builds a Dispatcher with every supported installer.
func New(
	settings domain.Settings,
	cache ports.ToolCache,
	fetcher ports.Fetcher,
	paths ports.PathRegistrar,
	runner ports.CommandRunner,
	tracer ports.Tracer,
) *Dispatcher {
	workflow := NewWorkflow(cache, fetcher, paths, tracer, settings)
	return NewDispatcher(settings,
		NewCmake(workflow),
		NewNinja(workflow),
		NewConan(runner, paths, tracer, settings),
		NewMeson(runner, paths, tracer, settings),
		NewLLVM(workflow),
		NewDoxygen(workflow),
	)
}
