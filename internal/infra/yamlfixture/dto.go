package yamlfixture

// yamlFixture is the file form of domain.FixtureSpec.
type yamlFixture struct {
	Name         string            `yaml:"name"`
	DUT          yamlDUT           `yaml:"dut"`
	Settings     string            `yaml:"settings"`
	Corner       string            `yaml:"corner"`
	Params       map[string]string `yaml:"params"`
	Includes     []yamlInclude     `yaml:"includes"`
	PowerDomains []yamlPowerDomain `yaml:"power_domains"`
	Components   []yamlComponent   `yaml:"components"`
	Simulation   *yamlSimulation   `yaml:"simulation"`
	Checks       []yamlCheck       `yaml:"checks"`
}

type yamlDUT struct {
	Name    string   `yaml:"name"`
	Library string   `yaml:"library"`
	Cell    string   `yaml:"cell"`
	Netlist string   `yaml:"netlist"`
	Pins    []string `yaml:"pins"`
}

type yamlInclude struct {
	Path   string `yaml:"path"`
	Corner string `yaml:"corner"`
}

type yamlPowerDomain struct {
	Name    string   `yaml:"name"`
	Voltage quantity `yaml:"voltage"`
	Ground  string   `yaml:"ground"`
	Nets    []string `yaml:"nets"`
}

type yamlComponent struct {
	Type  string   `yaml:"type"`
	Name  string   `yaml:"name"`
	Nodes []string `yaml:"nodes"`
	Value quantity `yaml:"value"`

	DC    quantity   `yaml:"dc"`
	AC    quantity   `yaml:"ac"`
	Pulse *yamlPulse `yaml:"pulse"`

	Text string `yaml:"text"`
}

type yamlPulse struct {
	V1     quantity `yaml:"v1"`
	V2     quantity `yaml:"v2"`
	Delay  quantity `yaml:"delay"`
	Rise   quantity `yaml:"rise"`
	Fall   quantity `yaml:"fall"`
	Width  quantity `yaml:"width"`
	Period quantity `yaml:"period"`
}

// yamlSimulation holds exactly one analysis.
type yamlSimulation struct {
	Tran *struct {
		Step  quantity `yaml:"step"`
		Stop  quantity `yaml:"stop"`
		Start quantity `yaml:"start"`
	} `yaml:"tran"`
	AC *struct {
		Sweep  string   `yaml:"sweep"`
		Points int      `yaml:"points"`
		FStart quantity `yaml:"fstart"`
		FStop  quantity `yaml:"fstop"`
	} `yaml:"ac"`
	DC *struct {
		Source string   `yaml:"source"`
		Start  quantity `yaml:"start"`
		Stop   quantity `yaml:"stop"`
		Step   quantity `yaml:"step"`
	} `yaml:"dc"`
	OP bool `yaml:"op"`
}

type yamlCheck struct {
	Expr     string   `yaml:"expr"`
	Exists   bool     `yaml:"exists"`
	Eq       *string  `yaml:"eq"`
	Contains *string  `yaml:"contains"`
	Matches  *string  `yaml:"matches"`
	Gt       *float64 `yaml:"gt"`
	Lt       *float64 `yaml:"lt"`
}
