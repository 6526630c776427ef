// Package devcontainer defines the devcontainer.json document written by
// quartainer and handles serialization to and from disk.
//
// Only the fields this tool emits are modeled. Field names and nesting follow
// the Dev Container specification exactly so the generated file works with
// VS Code Dev Containers, the Dev Container CLI, and GitHub Codespaces.
// Existing files are read with github.com/tidwall/jsonc because the
// specification allows JSONC (JSON with Comments).
package devcontainer

import "strconv"

// PortAttributes holds metadata for a single forwarded port.
type PortAttributes struct {
	Label            string `json:"label,omitempty"`            // User-visible label for the port
	RequireLocalPort *bool  `json:"requireLocalPort,omitempty"` // Require this specific local port (fail if unavailable)
	OnAutoForward    string `json:"onAutoForward,omitempty"`    // notify, openBrowser, silent, ignore
}

// VSCodeCustomizations holds VS Code specific settings.
// Extensions is reserved for future use and currently always empty.
type VSCodeCustomizations struct {
	Extensions []string `json:"extensions,omitempty"`
}

// Customizations groups tool-specific settings under the "customizations" key.
type Customizations struct {
	VSCode *VSCodeCustomizations `json:"vscode,omitempty"`
}

// Codespaces holds GitHub Codespaces settings, in particular the list of
// files opened automatically when the workspace starts.
type Codespaces struct {
	OpenFiles []string `json:"openFiles,omitempty"`
}

// Spec is the devcontainer.json document. All fields are optional; empty
// values are omitted from the serialized output.
type Spec struct {
	Name              string                    `json:"name,omitempty"`
	Image             string                    `json:"image,omitempty"`
	Customizations    *Customizations           `json:"customizations,omitempty"`
	Features          map[string]interface{}    `json:"features,omitempty"`
	PostCreateCommand string                    `json:"postCreateCommand,omitempty"`
	PostAttachCommand string                    `json:"postAttachCommand,omitempty"`
	PostStartCommand  string                    `json:"postStartCommand,omitempty"`
	ForwardPorts      []int                     `json:"forwardPorts,omitempty"`
	PortsAttributes   map[string]PortAttributes `json:"portsAttributes,omitempty"`
	Codespaces        *Codespaces               `json:"codespaces,omitempty"`
	ContainerEnv      map[string]string         `json:"containerEnv,omitempty"`
}

// SetPortAttributes records attributes for a port. The portsAttributes map
// is keyed by the stringified port number per the devcontainer spec.
func (s *Spec) SetPortAttributes(port int, attrs PortAttributes) {
	if s.PortsAttributes == nil {
		s.PortsAttributes = make(map[string]PortAttributes)
	}
	s.PortsAttributes[strconv.Itoa(port)] = attrs
}
