package compose

// =============================================================================
// Stack - Main Output Type
// =============================================================================

// Stack is the parsed shape of the development compose file, decoupled from
// compose-go types.
type Stack struct {
	Services []Service `json:"services"`
	Volumes  []Volume  `json:"volumes,omitempty"`
}

// Service lists which services are defined in the stack.
func (s *Stack) Service(name string) *Service {
	for i := range s.Services {
		if s.Services[i].Name == name {
			return &s.Services[i]
		}
	}
	return nil
}

// HasVolume reports whether a named volume is defined.
func (s *Stack) HasVolume(name string) bool {
	for _, v := range s.Volumes {
		if v.Name == name {
			return true
		}
	}
	return false
}

// =============================================================================
// Service Types
// =============================================================================

// Service represents a single service definition.
type Service struct {
	Name        string            `json:"name"`
	Image       string            `json:"image,omitempty"`
	Build       *BuildConfig      `json:"build,omitempty"`
	Command     []string          `json:"command,omitempty"`
	Ports       []Port            `json:"ports,omitempty"`
	Environment map[string]string `json:"environment,omitempty"`
	Volumes     []VolumeMount     `json:"volumes,omitempty"`
	DependsOn   []string          `json:"depends_on,omitempty"`
}

// DependsOnService reports whether the service declares a dependency on name.
func (s *Service) DependsOnService(name string) bool {
	for _, dep := range s.DependsOn {
		if dep == name {
			return true
		}
	}
	return false
}

// MountsVolume reports whether the service mounts the named volume.
func (s *Service) MountsVolume(name string) bool {
	for _, m := range s.Volumes {
		if m.Type == VolumeMountTypeVolume && m.Source == name {
			return true
		}
	}
	return false
}

// PublishesPort reports whether any port mapping publishes the given host port.
func (s *Service) PublishesPort(published uint32) bool {
	for _, p := range s.Ports {
		if p.Published == published {
			return true
		}
	}
	return false
}

// BuildConfig represents build configuration (optional).
type BuildConfig struct {
	Context    string `json:"context"`
	Dockerfile string `json:"dockerfile,omitempty"`
}

// Port represents a port mapping.
type Port struct {
	Target    uint32 `json:"target"`              // Container port
	Published uint32 `json:"published,omitempty"` // Host port (0 = dynamic)
	Protocol  string `json:"protocol,omitempty"`  // tcp, udp
}

// VolumeMount represents a volume mount in a service.
type VolumeMount struct {
	Type     VolumeMountType `json:"type"`   // bind, volume, tmpfs
	Source   string          `json:"source"` // Path or volume name
	Target   string          `json:"target"` // Container path
	ReadOnly bool            `json:"readonly"`
}

// VolumeMountType represents the type of volume mount.
type VolumeMountType string

const (
	VolumeMountTypeBind   VolumeMountType = "bind"
	VolumeMountTypeVolume VolumeMountType = "volume"
	VolumeMountTypeTmpfs  VolumeMountType = "tmpfs"
)

// =============================================================================
// Volume Types
// =============================================================================

// Volume represents a named volume definition.
type Volume struct {
	Name     string `json:"name"`
	Driver   string `json:"driver,omitempty"`
	External bool   `json:"external"`
}
