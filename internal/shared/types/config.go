package types

// Config represents the application configuration that can be loaded from a
// TOML, YAML or JSON file, with environment overrides applied on top.
type Config struct {
	ValueMode  string            `json:"value_mode" yaml:"value_mode" toml:"value_mode" envconfig:"VALUE_MODE"`
	Products   []string          `json:"products" yaml:"products" toml:"products" envconfig:"PRODUCTS"`
	SKU        string            `json:"sku" yaml:"sku" toml:"sku" envconfig:"SKU"`
	Workflow   string            `json:"workflow" yaml:"workflow" toml:"workflow" envconfig:"WORKFLOW"`
	Top        int               `json:"top" yaml:"top" toml:"top" envconfig:"TOP"`
	ReportName string            `json:"report_name" yaml:"report_name" toml:"report_name" envconfig:"REPORT_NAME"`
	ReportType []string          `json:"report_type" yaml:"report_type" toml:"report_type" envconfig:"REPORT_TYPE"`
	Dir        string            `json:"dir" yaml:"dir" toml:"dir" envconfig:"DIR"`
	SKULabels  map[string]string `json:"sku_labels" yaml:"sku_labels" toml:"sku_labels" ignored:"true"`
}
