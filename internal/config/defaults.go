package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Catalog.CategoriesPath == "" {
		cfg.Catalog.CategoriesPath = "category.json"
	}
	if cfg.Catalog.EmbeddingsPath == "" {
		cfg.Catalog.EmbeddingsPath = "category_embeddings.bin"
	}
	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = "text-embedding-3-large"
	}
	if cfg.Embedding.Dimensions == 0 {
		cfg.Embedding.Dimensions = 3072
	}
	if cfg.Titles.Database == "" {
		cfg.Titles.Database = "Activlink"
	}
	if cfg.Titles.Collection == "" {
		cfg.Titles.Collection = "Category"
	}
}
