package configs

// Data selects where ad event rows come from. "postgres" reads the
// ad_events table; "csv" reads a local file export.
type Data struct {
	Source  string `env:"SOURCE" envDefault:"postgres"`
	CSVPath string `env:"CSV_PATH" envDefault:"data/ad_data.csv"`
}
