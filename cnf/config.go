package cnf

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// YamlConfig – fitxer opcional cnf/db.yaml per sobreescriure la connexió a BD
// (útil per desplegaments on la BD gestionada es configura a part del config.cfg).
type YamlConfig struct {
	Database struct {
		Type     string `yaml:"type"`
		Postgres struct {
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			User     string `yaml:"user"`
			Password string `yaml:"password"`
			DBName   string `yaml:"dbname"`
		} `yaml:"postgresql"`
		SQLite struct {
			Path string `yaml:"path"`
		} `yaml:"sqlite"`
	} `yaml:"database"`
}

// LoadDBOverrides llegeix el yaml si existeix i aplica els valors sobre ac.
// Si el fitxer no hi és, no fa res.
func LoadDBOverrides(path string, ac *AppConfig) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("error obrint fitxer de configuració de BD: %w", err)
	}
	defer file.Close()

	config := &YamlConfig{}
	if err := yaml.NewDecoder(file).Decode(config); err != nil {
		return fmt.Errorf("error decodificant YAML: %w", err)
	}

	switch config.Database.Type {
	case "postgresql", "postgres":
		ac.DBEngine = "postgres"
		ac.DBHost = config.Database.Postgres.Host
		ac.DBPort = fmt.Sprintf("%d", config.Database.Postgres.Port)
		ac.DBUser = config.Database.Postgres.User
		ac.DBPass = config.Database.Postgres.Password
		ac.DBName = config.Database.Postgres.DBName
	case "sqlite":
		ac.DBEngine = "sqlite"
		if config.Database.SQLite.Path != "" {
			ac.DBPath = config.Database.SQLite.Path
		}
	case "":
		// yaml present però sense tipus: el deixem com estava
	default:
		return fmt.Errorf("tipus de base de dades no suportat: %s", config.Database.Type)
	}

	return nil
}
