package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile string
	File       string
	ValueMode  string
	SKU        string
	Workflow   string
	Products   []string
	StartDate  string
	EndDate    string
	Top        int
	ReportName string
	ReportType []string
	Dir        string
	Verbose    bool
}
