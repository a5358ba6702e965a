package cnf

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config – Variable pública amb les opcions de configuració
var Config map[string]string

// AppConfig – Configuració tipada per facilitar l'ús
type AppConfig struct {
	DBEngine string
	DBPath   string
	RecreaDB bool
	LogLevel string
	Env      string
	Port     string
	DBHost   string
	DBUser   string
	DBPass   string
	DBPort   string
	DBName   string

	// Proveïdor de completions (API estil chat-completions amb mode JSON)
	IAURLBase string
	IAModel   string
	IAAPIKey  string

	// Generació d'imatges
	IAModelImatges string

	// Magatzem d'objectes (buckets d'àudio i imatges)
	MagatzemURL   string
	MagatzemToken string
	BucketAudio   string
	BucketImatges string
}

// LoadConfig carrega el fitxer en format clau=valor, ignorant línies buides o comentaris.
func LoadConfig(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("no s'ha pogut obrir el fitxer de configuració: %w", err)
	}
	defer file.Close()

	config := make(map[string]string)
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		if strings.Contains(line, "=") {
			parts := strings.SplitN(line, "=", 2)
			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])
			if value != "" {
				commentIdx := -1
				for _, marker := range []string{" #", "\t#", " ;", "\t;"} {
					if idx := strings.Index(value, marker); idx >= 0 && (commentIdx == -1 || idx < commentIdx) {
						commentIdx = idx
					}
				}
				if commentIdx >= 0 {
					value = strings.TrimSpace(value[:commentIdx])
				}
			}
			config[key] = value
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error llegint config: %w", err)
	}

	Config = config
	return config, nil
}

// ParseConfig converteix map[string]string en AppConfig amb valors per defecte.
// Els secrets (claus d'API, token del magatzem) es llegeixen sempre de l'entorn.
func ParseConfig(cfg map[string]string) (AppConfig, error) {
	ac := AppConfig{
		DBEngine:       strings.TrimSpace(cfg["DB_ENGINE"]),
		DBPath:         cfg["DB_PATH"],
		LogLevel:       strings.TrimSpace(cfg["LOG_LEVEL"]),
		Env:            strings.TrimSpace(cfg["ENVIRONMENT"]),
		Port:           strings.TrimSpace(cfg["PORT"]),
		DBHost:         cfg["DB_HOST"],
		DBUser:         cfg["DB_USR"],
		DBPass:         cfg["DB_PASS"],
		DBPort:         cfg["DB_PORT"],
		DBName:         cfg["DB_NAME"],
		IAURLBase:      strings.TrimSpace(cfg["IA_URL_BASE"]),
		IAModel:        strings.TrimSpace(cfg["IA_MODEL"]),
		IAModelImatges: strings.TrimSpace(cfg["IA_MODEL_IMATGES"]),
		MagatzemURL:    strings.TrimSpace(cfg["MAGATZEM_URL"]),
		BucketAudio:    strings.TrimSpace(cfg["MAGATZEM_BUCKET_AUDIO"]),
		BucketImatges:  strings.TrimSpace(cfg["MAGATZEM_BUCKET_IMATGES"]),
	}

	if ac.DBEngine == "" {
		ac.DBEngine = "sqlite"
	}
	if ac.DBPath == "" {
		ac.DBPath = "./cronica.db"
	}
	if ac.LogLevel == "" {
		ac.LogLevel = "info"
	}
	if ac.Port == "" {
		ac.Port = "8080"
	}
	if ac.Env == "" {
		ac.Env = os.Getenv("ENVIRONMENT")
		if ac.Env == "" {
			ac.Env = "development"
		}
	}

	if v, ok := cfg["RECREADB"]; ok {
		ac.RecreaDB, _ = strconv.ParseBool(strings.ToLower(strings.TrimSpace(v)))
	}

	if ac.IAURLBase == "" {
		ac.IAURLBase = "https://api.openai.com/v1"
	}
	if ac.IAModel == "" {
		ac.IAModel = "gpt-4o-mini"
	}
	if ac.IAModelImatges == "" {
		ac.IAModelImatges = "gpt-image-1"
	}
	if ac.BucketAudio == "" {
		ac.BucketAudio = "session-audio"
	}
	if ac.BucketImatges == "" {
		ac.BucketImatges = "images"
	}

	ac.IAAPIKey = os.Getenv("IA_API_KEY")
	if ac.IAAPIKey == "" {
		ac.IAAPIKey = os.Getenv("OPENAI_API_KEY")
	}
	ac.MagatzemToken = os.Getenv("MAGATZEM_TOKEN")

	return ac, nil
}

// ToDBConfig prepara el mapa de claus que espera db.NewDB.
func (ac AppConfig) ToDBConfig() map[string]string {
	m := map[string]string{
		"DB_ENGINE": ac.DBEngine,
		"DB_PATH":   ac.DBPath,
		"DB_HOST":   ac.DBHost,
		"DB_USR":    ac.DBUser,
		"DB_PASS":   ac.DBPass,
		"DB_PORT":   ac.DBPort,
		"DB_NAME":   ac.DBName,
	}
	if ac.RecreaDB {
		m["RECREADB"] = "true"
	}
	return m
}
