package compose

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/compose-spec/compose-go/v2/loader"
	"github.com/compose-spec/compose-go/v2/types"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// Dev Stack Contract
// =============================================================================

const (
	// ServicePostgres is the database service name in the dev stack.
	ServicePostgres = "postgres"
	// ServiceRedis is the task queue backing service name.
	ServiceRedis = "redis"
	// ServiceWeb is the application service name.
	ServiceWeb = "storefront"
)

// requiredPostgresEnv are the variables the database service must carry so
// the application containers can derive their connection settings.
var requiredPostgresEnv = []string{
	"POSTGRES_HOST",
	"POSTGRES_PORT",
	"POSTGRES_DB",
	"POSTGRES_USER",
	"POSTGRES_PASSWORD",
}

// =============================================================================
// Parser Functions
// =============================================================================

// ParseStack parses Docker Compose YAML into a Stack.
// This is a pure function - no I/O, no side effects.
func ParseStack(yamlContent string) (*Stack, error) {
	if strings.TrimSpace(yamlContent) == "" {
		return nil, ErrEmptyInput
	}

	project, err := loadProject(yamlContent)
	if err != nil {
		return nil, err
	}

	if len(project.Services) == 0 {
		return nil, ErrNoServices
	}

	stack := &Stack{
		Services: make([]Service, 0, len(project.Services)),
		Volumes:  make([]Volume, 0, len(project.Volumes)),
	}

	for _, svc := range project.Services {
		converted, err := convertService(svc)
		if err != nil {
			return nil, err
		}
		stack.Services = append(stack.Services, converted)
	}

	for name, vol := range project.Volumes {
		stack.Volumes = append(stack.Volumes, convertVolume(name, vol))
	}

	return stack, nil
}

// loadProject loads a compose project using compose-go.
func loadProject(yamlContent string) (*types.Project, error) {
	// Parse YAML into a map first so syntax errors surface as ErrInvalidYAML.
	var dict map[string]interface{}
	if err := yaml.Unmarshal([]byte(yamlContent), &dict); err != nil {
		return nil, NewStackError("", "invalid YAML syntax", ErrInvalidYAML)
	}
	if dict == nil {
		return nil, NewStackError("", "invalid YAML syntax", ErrInvalidYAML)
	}

	project, err := loader.LoadWithContext(context.Background(), types.ConfigDetails{
		ConfigFiles: []types.ConfigFile{
			{
				Content: []byte(yamlContent),
				Config:  dict,
			},
		},
	}, func(opts *loader.Options) {
		opts.SetProjectName("storefront-dev", false)
		opts.SkipValidation = false
		opts.SkipInterpolation = false
		// In-memory content, nothing to resolve on disk.
		opts.SkipNormalization = true
		opts.SkipExtends = true
	})
	if err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "image") && strings.Contains(errStr, "build") {
			return nil, NewStackError("", "service must have image or build", ErrServiceNoImage)
		}
		return nil, NewStackError("", errStr, ErrInvalidYAML)
	}

	return project, nil
}

// convertService converts a compose-go service to our Service type.
func convertService(svc types.ServiceConfig) (Service, error) {
	service := Service{
		Name:        svc.Name,
		Image:       svc.Image,
		Command:     svc.Command,
		Environment: make(map[string]string),
		DependsOn:   make([]string, 0),
	}

	if svc.Build != nil {
		service.Build = &BuildConfig{
			Context:    svc.Build.Context,
			Dockerfile: svc.Build.Dockerfile,
		}
	}

	if service.Image == "" && service.Build == nil {
		return Service{}, NewStackError("services."+svc.Name, "service must have image or build", ErrServiceNoImage)
	}

	for _, p := range svc.Ports {
		var published uint32
		if p.Published != "" {
			pub, err := strconv.ParseUint(p.Published, 10, 32)
			if err == nil {
				published = uint32(pub)
			}
		}
		service.Ports = append(service.Ports, Port{
			Target:    p.Target,
			Published: published,
			Protocol:  p.Protocol,
		})
	}

	for k, v := range svc.Environment {
		if v != nil {
			service.Environment[k] = *v
		}
	}

	for _, v := range svc.Volumes {
		mount := VolumeMount{
			Source:   v.Source,
			Target:   v.Target,
			ReadOnly: v.ReadOnly,
		}
		switch v.Type {
		case "bind":
			mount.Type = VolumeMountTypeBind
		case "volume":
			mount.Type = VolumeMountTypeVolume
		case "tmpfs":
			mount.Type = VolumeMountTypeTmpfs
		default:
			// Infer type from source the way the compose CLI does.
			if strings.HasPrefix(v.Source, "./") || strings.HasPrefix(v.Source, "/") || strings.HasPrefix(v.Source, "~") {
				mount.Type = VolumeMountTypeBind
			} else {
				mount.Type = VolumeMountTypeVolume
			}
		}
		service.Volumes = append(service.Volumes, mount)
	}

	for dep := range svc.DependsOn {
		service.DependsOn = append(service.DependsOn, dep)
	}

	return service, nil
}

// convertVolume converts a compose-go volume to our Volume type.
func convertVolume(name string, vol types.VolumeConfig) Volume {
	return Volume{
		Name:     name,
		Driver:   vol.Driver,
		External: bool(vol.External),
	}
}

// =============================================================================
// Dev Stack Validation
// =============================================================================

// ValidateDevStack checks a parsed stack against the expected development
// topology. It returns all violations rather than stopping at the first so
// the CLI can print a complete report.
func ValidateDevStack(stack *Stack) []error {
	var errs []error

	pg := stack.Service(ServicePostgres)
	if pg == nil {
		errs = append(errs, NewStackError("services", fmt.Sprintf("service %q is not defined", ServicePostgres), ErrMissingService))
	}
	rd := stack.Service(ServiceRedis)
	if rd == nil {
		errs = append(errs, NewStackError("services", fmt.Sprintf("service %q is not defined", ServiceRedis), ErrMissingService))
	}
	web := stack.Service(ServiceWeb)
	if web == nil {
		errs = append(errs, NewStackError("services", fmt.Sprintf("service %q is not defined", ServiceWeb), ErrMissingService))
	}

	if pg != nil {
		for _, key := range requiredPostgresEnv {
			if _, ok := pg.Environment[key]; !ok {
				errs = append(errs, NewStackError(
					"services."+ServicePostgres+".environment",
					fmt.Sprintf("%s is not set", key),
					ErrMissingEnv,
				))
			}
		}
		named := false
		for _, m := range pg.Volumes {
			if m.Type == VolumeMountTypeVolume {
				named = true
				break
			}
		}
		if !named {
			errs = append(errs, NewStackError(
				"services."+ServicePostgres+".volumes",
				"no named volume is mounted for data persistence",
				ErrMissingVolume,
			))
		}
	}

	if web != nil {
		if !web.DependsOnService(ServicePostgres) {
			errs = append(errs, NewStackError(
				"services."+ServiceWeb+".depends_on",
				fmt.Sprintf("missing dependency on %q", ServicePostgres),
				ErrMissingDependsOn,
			))
		}
		if !web.DependsOnService(ServiceRedis) {
			errs = append(errs, NewStackError(
				"services."+ServiceWeb+".depends_on",
				fmt.Sprintf("missing dependency on %q", ServiceRedis),
				ErrMissingDependsOn,
			))
		}
		published := false
		for _, p := range web.Ports {
			if p.Published != 0 {
				published = true
				break
			}
		}
		if !published {
			errs = append(errs, NewStackError(
				"services."+ServiceWeb+".ports",
				"no host port is published",
				ErrNoPublishedPort,
			))
		}
	}

	if len(stack.Volumes) < 2 {
		errs = append(errs, NewStackError(
			"volumes",
			fmt.Sprintf("expected at least 2 named volumes, found %d", len(stack.Volumes)),
			ErrMissingVolume,
		))
	}

	return errs
}
