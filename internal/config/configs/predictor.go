package configs

// Predictor configures the optional click-prediction pipeline: where the
// trained model is persisted and the shape of the tree ensemble. The
// fixed seed keeps training deterministic across runs.
type Predictor struct {
	// Path is the model file location. The store writes it atomically
	// (temp file then rename) so readers never see a partial model.
	Path     string `env:"PATH" envDefault:"data/click_model.gob"`
	Trees    int    `env:"TREES" envDefault:"100"`
	MaxDepth int    `env:"MAX_DEPTH" envDefault:"12"`
	MinLeaf  int    `env:"MIN_LEAF" envDefault:"2"`
	Seed     int64  `env:"SEED" envDefault:"42"`
}
