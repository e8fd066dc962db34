package reference

// yamlEntry is one row of a reference table.
type yamlEntry struct {
	Code        string   `yaml:"code"`
	Description string   `yaml:"desc"`
	Engines     []string `yaml:"engines,omitempty"`
}

// yamlTablesFile is the top-level structure of a tables YAML file.
// A file may carry either table or both.
type yamlTablesFile struct {
	Syntax    []yamlEntry `yaml:"syntax,omitempty"`
	Modifiers []yamlEntry `yaml:"modifiers,omitempty"`
}
