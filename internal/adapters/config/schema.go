package config

// Smokefile represents the structure of the smoke.yaml configuration file.
// Every field is optional; unset fields keep the built-in value.
type Smokefile struct {
	Version string               `yaml:"version"`
	Root    string               `yaml:"root"`
	Journal string               `yaml:"journal"`
	Project ProjectDTO           `yaml:"project"`
	Tools   ToolsDTO             `yaml:"tools"`
	Targets map[string]TargetDTO `yaml:"targets"`
}

// ProjectDTO represents the project layout in the configuration.
type ProjectDTO struct {
	Library     string   `yaml:"library"`
	LibraryName string   `yaml:"libraryName"`
	Header      string   `yaml:"header"`
	Consumer    string   `yaml:"consumer"`
	Sources     []string `yaml:"sources"`
	Headers     []string `yaml:"headers"`
	Profile     string   `yaml:"profile"`
	Binary      string   `yaml:"binary"`
}

// ToolsDTO names the library build and header generation tools.
type ToolsDTO struct {
	Builder   []string `yaml:"builder"`
	HeaderGen []string `yaml:"headerGen"`
}

// TargetDTO represents a target descriptor in the configuration.
// Pointer fields distinguish "unset" from an explicit zero value.
type TargetDTO struct {
	Triple    string            `yaml:"triple"`
	Cross     *bool             `yaml:"cross"`
	Compiler  []string          `yaml:"compiler"`
	LinkFlags []string          `yaml:"linkFlags"`
	ExeSuffix *string           `yaml:"exeSuffix"`
	Runner    []string          `yaml:"runner"`
	Env       map[string]string `yaml:"env"`
}
